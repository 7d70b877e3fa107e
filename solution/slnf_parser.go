package solution

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SlnfParser parses JSON-based .slnf solution filter files.
type SlnfParser struct {
	fs afero.Fs
}

// NewSlnfParser creates a .slnf parser reading from fs.
func NewSlnfParser(fs afero.Fs) *SlnfParser {
	return &SlnfParser{fs: fs}
}

// CanParse checks if this parser supports the given file
func (p *SlnfParser) CanParse(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".slnf"
}

type slnfDocument struct {
	Solution slnfSolution `json:"solution"`
}

type slnfSolution struct {
	Path     string   `json:"path"`
	Projects []string `json:"projects"`
}

// ReadFilter reads a .slnf file without resolving its parent solution.
func (p *SlnfParser) ReadFilter(path string) (*SolutionFilter, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, &ParseError{FilePath: path, Message: fmt.Sprintf("cannot open file: %v", err), Err: err}
	}

	var doc slnfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{FilePath: path, Message: fmt.Sprintf("failed to parse JSON: %v", err), Err: err}
	}
	if doc.Solution.Path == "" {
		return nil, &ParseError{FilePath: path, Message: "missing solution path in filter file"}
	}

	return &SolutionFilter{
		SolutionPath: ResolveProjectPath(filepath.Dir(filepath.Clean(path)), doc.Solution.Path),
		Projects:     doc.Solution.Projects,
	}, nil
}

// Parse reads the filter and returns its parent solution restricted to the
// listed projects. Solution folders are kept as they are.
func (p *SlnfParser) Parse(path string) (*Solution, error) {
	if !p.CanParse(path) {
		return nil, &ParseError{FilePath: path, Message: "not a .slnf file"}
	}

	filter, err := p.ReadFilter(path)
	if err != nil {
		return nil, err
	}

	parentParser, err := GetParser(p.fs, filter.SolutionPath)
	if err != nil {
		return nil, &ParseError{FilePath: path, Message: fmt.Sprintf("unsupported parent solution format: %v", err), Err: err}
	}
	parent, err := parentParser.Parse(filter.SolutionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent solution of %s: %w", path, err)
	}

	included := make(map[string]bool, len(filter.Projects))
	for _, projPath := range filter.Projects {
		included[NormalizePath(projPath)] = true
	}

	filtered := *parent
	filtered.FilePath = filepath.Clean(path)
	filtered.Projects = []Project{}
	for _, project := range parent.Projects {
		if included[NormalizePath(project.Path)] {
			filtered.Projects = append(filtered.Projects, project)
		}
	}

	return &filtered, nil
}
