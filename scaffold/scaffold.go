// Package scaffold writes solutions and projects to a file system. The
// dotnetproj "solution new" command uses it, and so do the tests of the
// packages that read solutions back.
package scaffold

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/solution"
)

// DefaultTargetFramework is the framework of projects built without one.
const DefaultTargetFramework = "net8.0"

const (
	sdkProjectTemplate    = `<Project Sdk="Microsoft.NET.Sdk"></Project>`
	legacyProjectTemplate = `<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003"></Project>`
)

// ProjectBuilder describes one project to write.
type ProjectBuilder struct {
	name       string
	content    string
	legacy     bool
	properties [][2]string
	packages   [][2]string
	items      [][2]string
	files      map[string]string
}

// NewProjectBuilder starts an SDK-style project targeting DefaultTargetFramework.
func NewProjectBuilder(name string) *ProjectBuilder {
	return &ProjectBuilder{
		name:       name,
		properties: [][2]string{{project.TargetFrameworkProperty, DefaultTargetFramework}},
		files:      map[string]string{},
	}
}

// Name returns the project name.
func (b *ProjectBuilder) Name() string {
	return b.name
}

// RelativePath returns the project file path relative to the solution.
func (b *ProjectBuilder) RelativePath() string {
	return filepath.Join(b.name, b.name+".csproj")
}

// WithContent uses text verbatim as the project file, ignoring every other
// project setting.
func (b *ProjectBuilder) WithContent(text string) *ProjectBuilder {
	b.content = text
	return b
}

// Legacy marks the project as a non-SDK project.
func (b *ProjectBuilder) Legacy() *ProjectBuilder {
	b.legacy = true
	return b
}

// WithProperty sets a property.
func (b *ProjectBuilder) WithProperty(name, value string) *ProjectBuilder {
	for i := range b.properties {
		if b.properties[i][0] == name {
			b.properties[i][1] = value
			return b
		}
	}
	b.properties = append(b.properties, [2]string{name, value})
	return b
}

// WithPackage adds a PackageReference. An empty version leaves the attribute off.
func (b *ProjectBuilder) WithPackage(id, version string) *ProjectBuilder {
	b.packages = append(b.packages, [2]string{id, version})
	return b
}

// WithItem adds an item such as a Compile include.
func (b *ProjectBuilder) WithItem(group, include string) *ProjectBuilder {
	b.items = append(b.items, [2]string{group, include})
	return b
}

// WithFile adds a file relative to the project directory.
func (b *ProjectBuilder) WithFile(path, content string) *ProjectBuilder {
	b.files[path] = content
	return b
}

// Build returns the project file text.
func (b *ProjectBuilder) Build() (string, error) {
	if b.content != "" {
		return b.content, nil
	}

	template := sdkProjectTemplate
	if b.legacy {
		template = legacyProjectTemplate
	}
	f, err := project.Create(template)
	if err != nil {
		return "", err
	}

	props := f.Properties()
	for _, p := range b.properties {
		if err := props.SetProperty(p[0], p[1]); err != nil {
			return "", err
		}
	}
	for _, item := range b.items {
		f.AddItem(item[0], item[1])
	}
	refs := f.PackageReferences()
	for _, pkg := range b.packages {
		if pkg[1] == "" {
			refs.Add(pkg[0])
		} else {
			refs.AddWithVersion(pkg[0], pkg[1])
		}
	}
	return f.ToXMLString()
}

// Save writes the project and its files below dir.
func (b *ProjectBuilder) Save(fs afero.Fs, dir string) (string, error) {
	text, err := b.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build project %s: %w", b.name, err)
	}

	path := filepath.Join(dir, b.RelativePath())
	if err := writeFile(fs, path, text); err != nil {
		return "", err
	}
	for _, rel := range sortedKeys(b.files) {
		if err := writeFile(fs, filepath.Join(dir, b.name, rel), b.files[rel]); err != nil {
			return "", err
		}
	}
	return path, nil
}

// SolutionBuilder describes a solution and its projects.
type SolutionBuilder struct {
	name          string
	projects      []*ProjectBuilder
	buildProps    *string
	packagesProps *string
	files         map[string]string
}

// NewSolutionBuilder starts an empty solution.
func NewSolutionBuilder(name string) *SolutionBuilder {
	return &SolutionBuilder{name: name, files: map[string]string{}}
}

// AddProject adds a project at <name>/<name>.csproj.
func (b *SolutionBuilder) AddProject(p *ProjectBuilder) *SolutionBuilder {
	b.projects = append(b.projects, p)
	return b
}

// WithDirectoryBuildProps writes a Directory.Build.props next to the solution.
func (b *SolutionBuilder) WithDirectoryBuildProps(text string) *SolutionBuilder {
	b.buildProps = &text
	return b
}

// WithDirectoryPackagesProps writes a Directory.Packages.props next to the solution.
func (b *SolutionBuilder) WithDirectoryPackagesProps(text string) *SolutionBuilder {
	b.packagesProps = &text
	return b
}

// WithFile adds a file relative to the solution directory.
func (b *SolutionBuilder) WithFile(path, content string) *SolutionBuilder {
	b.files[path] = content
	return b
}

// Save writes everything below dir and returns the solution file path.
func (b *SolutionBuilder) Save(fs afero.Fs, dir string) (string, error) {
	sln := solution.NewSolutionFileStringBuilder()
	for _, p := range b.projects {
		if _, err := p.Save(fs, dir); err != nil {
			return "", err
		}
		sln.AddProject(p.Name(), p.RelativePath())
	}

	path := filepath.Join(dir, b.name+".sln")
	if err := writeFile(fs, path, sln.Build()); err != nil {
		return "", err
	}

	if b.buildProps != nil {
		if err := writeFile(fs, filepath.Join(dir, project.DirectoryBuildProps), *b.buildProps); err != nil {
			return "", err
		}
	}
	if b.packagesProps != nil {
		if err := writeFile(fs, filepath.Join(dir, project.DirectoryPackagesProps), *b.packagesProps); err != nil {
			return "", err
		}
	}
	for _, rel := range sortedKeys(b.files) {
		if err := writeFile(fs, filepath.Join(dir, rel), b.files[rel]); err != nil {
			return "", err
		}
	}
	return path, nil
}

func writeFile(fs afero.Fs, path, content string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
