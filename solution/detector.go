package solution

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Detector finds solution files below a directory.
type Detector struct {
	fs afero.Fs

	// SearchDir is the directory to search for solution files
	SearchDir string
}

// NewDetector creates a detector rooted at searchDir, "." when empty.
func NewDetector(fs afero.Fs, searchDir string) *Detector {
	if searchDir == "" {
		searchDir = "."
	}
	return &Detector{fs: fs, SearchDir: searchDir}
}

// DetectionResult contains the result of solution file detection
type DetectionResult struct {
	// Found indicates if any solution file was found
	Found bool

	// Ambiguous indicates if multiple solution files were found
	Ambiguous bool

	// SolutionPath is set when exactly one solution file was found
	SolutionPath string

	// FoundFiles lists all solution files found, sorted
	FoundFiles []string

	// Format is the detected solution format
	Format string
}

// DetectSolution walks SearchDir, skipping hidden directories as well as
// node_modules, bin and obj.
func (d *Detector) DetectSolution() (*DetectionResult, error) {
	result := &DetectionResult{FoundFiles: []string{}}

	err := afero.Walk(d.fs, d.SearchDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != d.SearchDir && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "bin" || name == "obj") {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSolutionFile(path) {
			result.FoundFiles = append(result.FoundFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error searching for solution files: %w", err)
	}

	sort.Strings(result.FoundFiles)

	switch len(result.FoundFiles) {
	case 0:
	case 1:
		result.Found = true
		result.SolutionPath = result.FoundFiles[0]
		result.Format = GetSolutionFormat(result.SolutionPath)
	default:
		result.Found = true
		result.Ambiguous = true
	}
	return result, nil
}

// ValidateSolutionFile checks that path is an existing solution file.
func ValidateSolutionFile(fs afero.Fs, path string) error {
	if !IsSolutionFile(path) {
		return fmt.Errorf("not a solution file (must have .sln, .slnx, or .slnf extension): %s", path)
	}

	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSolutionFileNotFound, path)
		}
		return fmt.Errorf("cannot access solution file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a solution file: %s", path)
	}
	return nil
}
