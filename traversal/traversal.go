// Package traversal lists the source files that belong to each project of
// a solution.
package traversal

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/solution"
)

// excludedDirs are the build output directories below a project directory.
var excludedDirs = []string{"bin", "obj"}

// ProjectSources is the source file list of one project.
type ProjectSources struct {
	ProjectPath string
	Files       []string
}

// SourceFileFinder resolves project source files against a file system.
type SourceFileFinder struct {
	fs     afero.Fs
	logger observability.Logger
}

// NewSourceFileFinder creates a finder. A nil logger discards output.
func NewSourceFileFinder(fs afero.Fs, logger observability.Logger) *SourceFileFinder {
	return &SourceFileFinder{fs: fs, logger: observability.OrNull(logger)}
}

// FindSourceFiles returns the source files of every project in the
// descriptor, in solution order.
func (f *SourceFileFinder) FindSourceFiles(d *solution.Descriptor) ([]ProjectSources, error) {
	return f.FindSourceFilesContext(context.Background(), d)
}

// FindSourceFilesContext is FindSourceFiles with a context for logging.
func (f *SourceFileFinder) FindSourceFilesContext(ctx context.Context, d *solution.Descriptor) ([]ProjectSources, error) {
	f.logger.InfoContext(ctx, "Extract source file paths for solution {SolutionPath}", d.FilePath)

	var result []ProjectSources
	for _, path := range d.ProjectPaths() {
		files, err := f.projectFiles(path, d.Projects[path])
		if err != nil {
			return nil, err
		}
		f.logger.DebugContext(ctx, "Found {FileCount} source files in {ProjectPath}", len(files), path)
		result = append(result, ProjectSources{ProjectPath: path, Files: files})
	}
	return result, nil
}

// projectFiles returns the explicit Compile items followed by the
// default-item files, without duplicates.
func (f *SourceFileFinder) projectFiles(path string, file *project.File) ([]string, error) {
	dir := filepath.Dir(path)
	seen := map[string]bool{}
	files := []string{}

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, item := range file.GetItems(project.CompileItem) {
		add(filepath.Clean(filepath.Join(dir, solution.ToSystemPath(item.Include))))
	}

	enabled, err := file.IsDefaultItemsEnabled()
	if err != nil {
		return nil, err
	}
	if !enabled {
		return files, nil
	}

	walked, err := f.walk(dir, path)
	if err != nil {
		return nil, err
	}
	for _, p := range walked {
		add(p)
	}
	return files, nil
}

func (f *SourceFileFinder) walk(dir, projectPath string) ([]string, error) {
	var files []string
	err := afero.Walk(f.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && isExcluded(dir, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if path == projectPath {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isExcluded(dir, path string) bool {
	for _, name := range excludedDirs {
		excluded := filepath.Join(dir, name)
		if path == excluded || strings.HasPrefix(path, excluded+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
