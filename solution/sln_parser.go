package solution

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var (
	formatVersionPattern = regexp.MustCompile(`(?m)^Microsoft Visual Studio Solution File, Format Version (\S+)`)
	vsVersionPattern     = regexp.MustCompile(`(?m)^VisualStudioVersion\s*=\s*(\S+)`)
	minVSVersionPattern  = regexp.MustCompile(`(?m)^MinimumVisualStudioVersion\s*=\s*(\S+)`)
)

// SlnParser parses text-based .sln files.
type SlnParser struct {
	fs afero.Fs
}

// NewSlnParser creates a .sln parser reading from fs.
func NewSlnParser(fs afero.Fs) *SlnParser {
	return &SlnParser{fs: fs}
}

// CanParse checks if this parser supports the given file
func (p *SlnParser) CanParse(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".sln"
}

// Parse reads and parses a .sln file. Paths are kept relative to the
// solution directory, which is derived from path as given.
func (p *SlnParser) Parse(path string) (*Solution, error) {
	if !p.CanParse(path) {
		return nil, &ParseError{FilePath: path, Message: "not a .sln file"}
	}

	text, err := readSolutionText(p.fs, path)
	if err != nil {
		return nil, err
	}

	sol, err := ParseText(text)
	if err != nil {
		return nil, withFilePath(err, path)
	}

	sol.FilePath = filepath.Clean(path)
	sol.SolutionDir = filepath.Dir(sol.FilePath)
	return sol, nil
}

// ParseText parses solution text that has no file behind it.
func ParseText(text string) (*Solution, error) {
	c, err := parseContent(text)
	if err != nil {
		return nil, err
	}

	return &Solution{
		FormatVersion:              firstGroup(formatVersionPattern, text),
		VisualStudioVersion:        firstGroup(vsVersionPattern, text),
		MinimumVisualStudioVersion: firstGroup(minVSVersionPattern, text),
		Projects:                   c.projects,
		SolutionFolders:            c.folders,
	}, nil
}

func readSolutionText(fs afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("cannot access solution file: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrSolutionFileNotFound, path)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", &ParseError{FilePath: path, Message: fmt.Sprintf("cannot read file: %v", err), Err: err}
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func withFilePath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.FilePath == "" {
		pe.FilePath = path
	}
	return err
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(m[1], "\r")
	}
	return ""
}
