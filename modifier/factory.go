package modifier

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/solution"
)

// Options configures a Factory.
type Options struct {
	// SkipLegacyProjects leaves projects with a ToolsVersion attribute out
	// of the session, logging a warning for each.
	SkipLegacyProjects bool

	// Logger receives progress and warnings. Nil discards them.
	Logger observability.Logger
}

// Factory opens solution editing sessions.
type Factory struct {
	fs     afero.Fs
	opts   Options
	logger observability.Logger
}

// NewFactory creates a factory reading from fs.
func NewFactory(fs afero.Fs, opts Options) *Factory {
	return &Factory{fs: fs, opts: opts, logger: observability.OrNull(opts.Logger)}
}

// Create loads the solution at path with every project it references. A
// missing project fails the whole load with ErrProjectFileNotFound.
func (f *Factory) Create(path string) (*SolutionModifier, error) {
	return f.CreateContext(context.Background(), path)
}

// CreateContext is Create with a context for tracing.
func (f *Factory) CreateContext(ctx context.Context, path string) (*SolutionModifier, error) {
	descriptor, err := solution.NewDescriptorParser(f.fs, f.logger).ParseContext(ctx, path)
	if err != nil {
		return nil, err
	}

	dir := descriptor.Solution.SolutionDir
	m := &SolutionModifier{
		fs:            f.fs,
		logger:        f.logger,
		solution:      descriptor.Solution,
		path:          descriptor.FilePath,
		buildProps:    sharedFile{path: filepath.Join(dir, project.DirectoryBuildProps)},
		packagesProps: sharedFile{path: filepath.Join(dir, project.DirectoryPackagesProps)},
	}

	for _, projectPath := range descriptor.ProjectPaths() {
		file := descriptor.Projects[projectPath]
		if f.opts.SkipLegacyProjects && !file.IsSdkStyle() {
			f.logger.WarnContext(ctx, "Project {Path} use legacy csproj format and will be skipped.", projectPath)
			observability.ProjectsSkippedTotal.Inc()
			continue
		}
		m.projects = append(m.projects, &ProjectModifier{Path: projectPath, File: file})
	}

	for _, shared := range []*sharedFile{&m.buildProps, &m.packagesProps} {
		if err := f.loadShared(shared); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (f *Factory) loadShared(s *sharedFile) error {
	exists, err := afero.Exists(f.fs, s.path)
	if err != nil || !exists {
		return err
	}
	file, err := project.Load(f.fs, s.path)
	if err != nil {
		return err
	}
	s.file = file
	return nil
}
