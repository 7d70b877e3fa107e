package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/solution"
)

// resolveProjectPath returns path, or the single project file in the
// current directory when path is empty. Solution files are rejected.
func resolveProjectPath(env *cli.Env, path string) (string, error) {
	if path != "" {
		if solution.IsSolutionFile(path) {
			return "", &InvalidProjectFileError{Path: path}
		}
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	found, err := project.FindProjectFile(env.Fs, dir)
	if err != nil {
		return "", fmt.Errorf("failed to find project file: %w", err)
	}
	return found, nil
}

// resolveSolutionPath returns path, or the single solution file found under
// the current directory when path is empty.
func resolveSolutionPath(env *cli.Env, path string) (string, error) {
	if path != "" {
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	result, err := solution.NewDetector(env.Fs, dir).DetectSolution()
	if err != nil {
		return "", fmt.Errorf("failed to detect solution: %w", err)
	}
	if !result.Found {
		return "", fmt.Errorf("no solution file found in %s", dir)
	}
	if result.Ambiguous {
		return "", fmt.Errorf("multiple solution files found in %s; specify one", dir)
	}
	return result.SolutionPath, nil
}

// loadProject loads the project at path.
func loadProject(env *cli.Env, path string) (*project.File, error) {
	f, err := project.Load(env.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", path, err)
	}
	return f, nil
}

// saveDocument writes f to path, or prints its diff against the file on
// disk in dry-run mode.
func saveDocument(env *cli.Env, path, kind string, f *project.File) error {
	if !env.DryRun {
		if err := f.Save(env.Fs, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		env.Console.Detail("Saved %s", path)
		return nil
	}

	after, err := f.ToXMLString()
	if err != nil {
		return err
	}
	before := ""
	if exists, _ := afero.Exists(env.Fs, path); exists {
		data, err := afero.ReadFile(env.Fs, path)
		if err != nil {
			return err
		}
		before = string(data)
	}
	if before != after {
		showDiff(env, modifier.DocumentDiff{Path: path, Kind: kind, Before: before, After: after})
	}
	return nil
}

// saveSolution writes every document of the session, or prints their diffs
// in dry-run mode.
func saveSolution(ctx context.Context, env *cli.Env, m *modifier.SolutionModifier) error {
	if !env.DryRun {
		return m.SaveContext(ctx)
	}

	diffs, err := m.Diff()
	if err != nil {
		return err
	}
	if len(diffs) == 0 {
		env.Console.Info("No changes")
	}
	for _, d := range diffs {
		showDiff(env, d)
	}
	return nil
}

func showDiff(env *cli.Env, d modifier.DocumentDiff) {
	if d.Created() {
		env.Console.Detail("%s would be created", d.Path)
	}
	env.Console.Diff(d.Path, d.LineDiffs())
}

// findPackagesProps returns the nearest Directory.Packages.props at or
// above the project directory, or "".
func findPackagesProps(fs afero.Fs, projectPath string) string {
	dir := filepath.Dir(projectPath)
	for {
		candidate := filepath.Join(dir, project.DirectoryPackagesProps)
		if exists, err := afero.Exists(fs, candidate); err == nil && exists {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
