// Package solution reads Visual Studio solution files (.sln, .slnx, .slnf)
// and writes the minimal .sln template this module produces.
//
// The .sln reader recovers projects and solution folders from the loosely
// structured text with two independent passes: one regular expression
// extracts every Project(...) ... EndProject block, and a line scan reads the
// NestedProjects section. The two are joined through the GUID map to give
// each project its solution structure path, such as Dir1/Dir11/App.
package solution

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrSolutionFileNotFound is returned when the solution path does not exist.
	ErrSolutionFileNotFound = errors.New("solution file not found")

	// ErrProjectFileNotFound is returned when a project referenced by a solution does not exist.
	ErrProjectFileNotFound = errors.New("project file not found")

	// ErrMalformedNestedProjectEntry is returned for a NestedProjects line that is not {guid} = {guid}.
	ErrMalformedNestedProjectEntry = errors.New("malformed nested project entry")

	// ErrInvalidGuid is returned when a project or type GUID does not parse.
	ErrInvalidGuid = errors.New("invalid guid")
)

// Solution is a parsed solution file.
type Solution struct {
	// FilePath is the absolute path to the solution file.
	FilePath string

	// SolutionDir is the directory containing the solution file.
	SolutionDir string

	FormatVersion              string
	VisualStudioVersion        string
	MinimumVisualStudioVersion string

	// Projects holds the project entries. Solution folders and entries that
	// are not project files are left out.
	Projects []Project

	// SolutionFolders holds the virtual folders.
	SolutionFolders []SolutionFolder
}

// Project is a project entry of a solution.
type Project struct {
	Name string

	// Path is the project file path relative to the solution, using the
	// host path separator.
	Path string

	// StructurePath is the logical location inside solution folders, e.g.
	// Dir1/Dir11/App with the host separator.
	StructurePath string

	// GUID and TypeGUID are in braced upper-case form.
	GUID     string
	TypeGUID string

	// ParentFolderGUID is the containing solution folder, empty at the top level.
	ParentFolderGUID string
}

// SolutionFolder is a virtual folder of a solution.
type SolutionFolder struct {
	Name             string
	GUID             string
	ParentFolderGUID string

	// Items are the files listed in the folder's SolutionItems section.
	Items []string
}

// SolutionFilter is a parsed .slnf file.
type SolutionFilter struct {
	SolutionPath string
	Projects     []string
}

// ParseError is a solution parse failure with its location.
type ParseError struct {
	FilePath string
	Line     int
	Column   int
	Message  string

	// Err is the sentinel behind the failure, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		b.WriteString(":")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, "%d:", e.Column)
		}
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap returns the underlying sentinel.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Project type GUIDs.
const (
	ProjectTypeCSProject      = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"
	ProjectTypeCSProjectSDK   = "{9A19103F-16F7-4668-BE54-9A1E7A4F7556}"
	ProjectTypeVBProject      = "{F184B08F-C81C-45F6-A57F-5ABD9991F28F}"
	ProjectTypeFSProject      = "{F2A71F9B-5D33-465A-A702-920D77279786}"
	ProjectTypeSolutionFolder = "{2150E333-8FDC-42A3-9474-1A3956D46DE8}"
	ProjectTypeSharedProject  = "{D954291E-2A0B-460D-934E-DC6B0785DB48}"
	ProjectTypeWebSite        = "{E24C65DC-7377-472B-9ABA-BC803B73C61A}"
)

// IsNETProject reports whether the entry is a C#, VB or F# project.
func (p *Project) IsNETProject() bool {
	switch strings.ToUpper(p.TypeGUID) {
	case ProjectTypeCSProject, ProjectTypeCSProjectSDK, ProjectTypeVBProject, ProjectTypeFSProject:
		return true
	}
	return false
}

// GetAbsolutePath resolves the project path against solutionDir.
func (p *Project) GetAbsolutePath(solutionDir string) string {
	if filepath.IsAbs(p.Path) {
		return p.Path
	}
	return filepath.Join(solutionDir, p.Path)
}

// GetProjects returns the absolute paths of all projects.
func (s *Solution) GetProjects() []string {
	paths := make([]string, 0, len(s.Projects))
	for i := range s.Projects {
		paths = append(paths, s.Projects[i].GetAbsolutePath(s.SolutionDir))
	}
	return paths
}

// GetProjectByName finds a project by name, ignoring case.
func (s *Solution) GetProjectByName(name string) (*Project, bool) {
	for i := range s.Projects {
		if strings.EqualFold(s.Projects[i].Name, name) {
			return &s.Projects[i], true
		}
	}
	return nil, false
}

// GetProjectByPath finds a project by its path, relative to the solution or absolute.
func (s *Solution) GetProjectByPath(path string) (*Project, bool) {
	search := filepath.Clean(ToSystemPath(path))
	if !filepath.IsAbs(search) {
		search = filepath.Join(s.SolutionDir, search)
	}
	for i := range s.Projects {
		if filepath.Clean(s.Projects[i].GetAbsolutePath(s.SolutionDir)) == search {
			return &s.Projects[i], true
		}
	}
	return nil, false
}

func formatGUID(id uuid.UUID) string {
	return "{" + strings.ToUpper(id.String()) + "}"
}
