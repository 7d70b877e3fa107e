package solution

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Parser defines the interface for parsing solution files
type Parser interface {
	// Parse reads and parses a solution file
	Parse(path string) (*Solution, error)

	// CanParse checks if this parser supports the given file
	CanParse(path string) bool
}

// GetParser returns the parser for the solution format of path.
func GetParser(fs afero.Fs, path string) (Parser, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".sln":
		return NewSlnParser(fs), nil
	case ".slnx":
		return NewSlnxParser(fs), nil
	case ".slnf":
		return NewSlnfParser(fs), nil
	default:
		return nil, fmt.Errorf("unsupported solution format: %s (supported: .sln, .slnx, .slnf)", ext)
	}
}

// ParseSolution selects the parser for path and parses it.
func ParseSolution(fs afero.Fs, path string) (*Solution, error) {
	parser, err := GetParser(fs, path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(path)
}
