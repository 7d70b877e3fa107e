// Package modifier edits a whole solution at once: every project it lists
// plus the shared Directory.Build.props and Directory.Packages.props files.
//
// Nothing touches the file system until Save. A shared file that does not
// exist is only created in memory when one of its accessors is called, and
// only written if that happened.
package modifier

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/observability"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/solution"
)

var (
	// ErrProjectFileNotFound is returned when a project listed by the solution is missing.
	ErrProjectFileNotFound = solution.ErrProjectFileNotFound

	// ErrAlreadyMigrated is returned when central package management is already enabled.
	ErrAlreadyMigrated = errors.New("central package management is already enabled")
)

// Document kinds, also used as metric labels.
const (
	KindProject       = "project"
	KindBuildProps    = "build_props"
	KindPackagesProps = "packages_props"
)

// ProjectModifier is one loaded project of a solution session.
type ProjectModifier struct {
	Path string
	File *project.File
}

// sharedFile holds a shared props file that is either loaded from disk,
// created on first access, or absent.
type sharedFile struct {
	path string
	file *project.File
}

func (s *sharedFile) get() *project.File {
	if s.file == nil {
		s.file = project.CreateEmpty()
	}
	return s.file
}

func (s *sharedFile) materialized() bool {
	return s.file != nil
}

// SolutionModifier is an editing session over a solution.
type SolutionModifier struct {
	fs       afero.Fs
	logger   observability.Logger
	solution *solution.Solution
	path     string

	projects      []*ProjectModifier
	buildProps    sharedFile
	packagesProps sharedFile
}

// SolutionPath returns the path of the solution file.
func (m *SolutionModifier) SolutionPath() string {
	return m.path
}

// Solution returns the parsed solution.
func (m *SolutionModifier) Solution() *solution.Solution {
	return m.solution
}

// Projects returns the loaded projects in solution order.
func (m *SolutionModifier) Projects() []*ProjectModifier {
	return m.projects
}

// Project returns the project loaded from path.
func (m *SolutionModifier) Project(path string) (*ProjectModifier, bool) {
	clean := filepath.Clean(path)
	for _, p := range m.projects {
		if p.Path == clean {
			return p, true
		}
	}
	return nil, false
}

// DirectoryBuildProps returns the Directory.Build.props next to the solution,
// creating an empty one in memory if it does not exist.
func (m *SolutionModifier) DirectoryBuildProps() *project.BuildProps {
	return project.NewBuildProps(m.buildProps.get())
}

// DirectoryPackagesProps returns the Directory.Packages.props next to the
// solution, creating an empty one in memory if it does not exist.
func (m *SolutionModifier) DirectoryPackagesProps() *project.PackagesProps {
	return project.NewPackagesProps(m.packagesProps.get())
}

// HasDirectoryPackagesProps reports whether the packages file exists on disk
// or was created during this session.
func (m *SolutionModifier) HasDirectoryPackagesProps() bool {
	return m.packagesProps.materialized()
}

// Apply runs strategy over every project.
func (m *SolutionModifier) Apply(strategy project.ModifyStrategy) {
	for _, p := range m.projects {
		p.File.Apply(strategy)
	}
}

// Document is a file the session would write on Save.
type Document struct {
	Path string
	Kind string
	File *project.File
}

// Documents returns every document Save writes: all projects, then the
// shared files that were loaded or created.
func (m *SolutionModifier) Documents() []Document {
	docs := make([]Document, 0, len(m.projects)+2)
	for _, p := range m.projects {
		docs = append(docs, Document{Path: p.Path, Kind: KindProject, File: p.File})
	}
	if m.buildProps.materialized() {
		docs = append(docs, Document{Path: m.buildProps.path, Kind: KindBuildProps, File: m.buildProps.file})
	}
	if m.packagesProps.materialized() {
		docs = append(docs, Document{Path: m.packagesProps.path, Kind: KindPackagesProps, File: m.packagesProps.file})
	}
	return docs
}

// Save writes every document through the formatter.
func (m *SolutionModifier) Save() error {
	return m.SaveContext(context.Background())
}

// SaveContext writes every document through the formatter. Documents are
// formatted before the first write, so a formatting failure leaves the disk
// untouched.
func (m *SolutionModifier) SaveContext(ctx context.Context) (err error) {
	docs := m.Documents()
	ctx, span := observability.StartSaveSpan(ctx, len(docs))
	defer func() { observability.EndSpanWithError(span, err) }()

	texts := make([]string, len(docs))
	for i, doc := range docs {
		text, err := doc.File.ToXMLString()
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", doc.Path, err)
		}
		texts[i] = text
	}

	for i, doc := range docs {
		if dir := filepath.Dir(doc.Path); dir != "." {
			if err := m.fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		}
		if err := afero.WriteFile(m.fs, doc.Path, []byte(texts[i]), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", doc.Path, err)
		}
		observability.DocumentsSavedTotal.WithLabelValues(doc.Kind).Inc()
		m.logger.DebugContext(ctx, "Saved {Kind} {Path}", doc.Kind, doc.Path)
	}

	m.logger.InfoContext(ctx, "Saved {Count} documents", len(docs))
	return nil
}
