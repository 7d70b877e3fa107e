package solution

import (
	"strings"

	"github.com/google/uuid"
)

const (
	solutionHeader = "Microsoft Visual Studio Solution File, Format Version 12.00\n" +
		"# Visual Studio Version 17\n" +
		"VisualStudioVersion = 17.9.34310.174\n" +
		"MinimumVisualStudioVersion = 10.0.40219.1\n"

	solutionFooter = "Global\n" +
		"  GlobalSection(SolutionProperties) = preSolution\n" +
		"    HideSolutionNode = FALSE\n" +
		"  EndGlobalSection\n" +
		"EndGlobal"
)

// SolutionFileStringBuilder emits the minimal .sln template: the header,
// one Project block per project and the SolutionProperties footer. It writes
// no configuration, platform or solution item sections.
type SolutionFileStringBuilder struct {
	projects []Project
	newGUID  func() uuid.UUID
}

// NewSolutionFileStringBuilder creates an empty builder.
func NewSolutionFileStringBuilder() *SolutionFileStringBuilder {
	return &SolutionFileStringBuilder{newGUID: uuid.New}
}

// AddProject adds an SDK-style C# project with a fresh GUID. path is kept
// as written.
func (b *SolutionFileStringBuilder) AddProject(name, path string) *SolutionFileStringBuilder {
	return b.AddProjectEntry(Project{
		Name:     name,
		Path:     path,
		GUID:     formatGUID(b.newGUID()),
		TypeGUID: ProjectTypeCSProjectSDK,
	})
}

// AddProjectEntry adds p with its own GUIDs.
func (b *SolutionFileStringBuilder) AddProjectEntry(p Project) *SolutionFileStringBuilder {
	b.projects = append(b.projects, p)
	return b
}

// Build returns the solution text.
func (b *SolutionFileStringBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString(solutionHeader)
	for _, p := range b.projects {
		sb.WriteString(`Project("`)
		sb.WriteString(p.TypeGUID)
		sb.WriteString(`") = "`)
		sb.WriteString(p.Name)
		sb.WriteString(`", "`)
		sb.WriteString(p.Path)
		sb.WriteString(`", "`)
		sb.WriteString(p.GUID)
		sb.WriteString("\"\nEndProject\n")
	}
	sb.WriteString(solutionFooter)
	return sb.String()
}
