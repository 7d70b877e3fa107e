package solution

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/project"
)

// Descriptor is a solution together with every project it references,
// loaded through the project model.
type Descriptor struct {
	// FilePath is the solution file path.
	FilePath string

	// Solution is the parsed solution.
	Solution *Solution

	// Projects maps each project file path, resolved against the solution
	// directory, to the loaded document.
	Projects map[string]*project.File
}

// ProjectPaths returns the resolved project paths in solution order.
func (d *Descriptor) ProjectPaths() []string {
	paths := make([]string, 0, len(d.Solution.Projects))
	for i := range d.Solution.Projects {
		path := ResolveProjectPath(d.Solution.SolutionDir, d.Solution.Projects[i].Path)
		if _, ok := d.Projects[path]; ok {
			paths = append(paths, path)
		}
	}
	return paths
}

// DescriptorParser loads a solution and its projects from a file system.
type DescriptorParser struct {
	fs     afero.Fs
	logger observability.Logger
}

// NewDescriptorParser creates a parser. A nil logger discards output.
func NewDescriptorParser(fs afero.Fs, logger observability.Logger) *DescriptorParser {
	return &DescriptorParser{fs: fs, logger: observability.OrNull(logger)}
}

// Parse loads the solution at path and all projects it lists.
func (p *DescriptorParser) Parse(path string) (*Descriptor, error) {
	return p.ParseContext(context.Background(), path)
}

// ParseContext loads the solution at path and all projects it lists. A
// missing solution fails with ErrSolutionFileNotFound and a missing project
// with ErrProjectFileNotFound; nothing is returned partially loaded.
func (p *DescriptorParser) ParseContext(ctx context.Context, path string) (_ *Descriptor, err error) {
	ctx, span := observability.StartSolutionParseSpan(ctx, path)
	defer func() { observability.EndSpanWithError(span, err) }()
	start := time.Now()

	p.logger.InfoContext(ctx, "Parsing solution {SolutionPath}", path)

	sol, err := ParseSolution(p.fs, path)
	if err != nil {
		return nil, err
	}

	projects := make(map[string]*project.File, len(sol.Projects))
	for i := range sol.Projects {
		projectPath := ResolveProjectPath(sol.SolutionDir, sol.Projects[i].Path)
		f, err := p.loadProject(ctx, projectPath)
		if err != nil {
			return nil, err
		}
		p.logger.VerboseContext(ctx, "Loaded project {ProjectName} from {ProjectPath}", sol.Projects[i].Name, projectPath)
		projects[projectPath] = f
	}

	p.logger.InfoContext(ctx, "Loaded {ProjectCount} projects", len(projects))
	observability.SolutionParseDuration.Observe(time.Since(start).Seconds())

	return &Descriptor{
		FilePath: filepath.Clean(path),
		Solution: sol,
		Projects: projects,
	}, nil
}

func (p *DescriptorParser) loadProject(ctx context.Context, path string) (_ *project.File, err error) {
	_, span := observability.StartProjectLoadSpan(ctx, path)
	defer func() { observability.EndSpanWithError(span, err) }()

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProjectFileNotFound, path)
	}

	f, err := project.Load(p.fs, path)
	if err != nil {
		return nil, err
	}

	format := "sdk"
	if !f.IsSdkStyle() {
		format = "legacy"
	}
	observability.ProjectsLoadedTotal.WithLabelValues(format).Inc()
	return f, nil
}
