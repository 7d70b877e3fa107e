package project

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Load reads and parses the project file at path.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	f, err := Create(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Save writes the formatted document to path. A byte order mark present in
// the source is kept.
func (f *File) Save(fs afero.Fs, path string) error {
	text, err := f.ToXMLString()
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadTargetsFile reads and parses the targets file at path.
func LoadTargetsFile(fs afero.Fs, path string) (*TargetsFile, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	return CreateTargetsFile(string(data))
}

// FindProjectFile returns the single project file in dir. It fails with
// ErrNoProjectFile or ErrMultipleProjectFiles otherwise.
func FindProjectFile(fs afero.Fs, dir string) (string, error) {
	var matches []string
	for _, ext := range ProjectExtensions {
		found, err := afero.Glob(fs, filepath.Join(dir, "*"+ext))
		if err != nil {
			return "", err
		}
		matches = append(matches, found...)
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in directory: %s", ErrNoProjectFile, dir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%w in directory: %s. Specify which project to use", ErrMultipleProjectFiles, dir)
}
