package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// JSON output types matching the schema contract

// SolutionListOutput represents the JSON output for solution list command
type SolutionListOutput struct {
	SchemaVersion string            `json:"schemaVersion"`
	Solution      string            `json:"solution"`
	Projects      []SolutionProject `json:"projects"`
	ElapsedMs     int64             `json:"elapsedMs"`
}

// SolutionProject represents a solution entry in JSON output
type SolutionProject struct {
	Name          string `json:"name"`
	StructurePath string `json:"structurePath"`
	Path          string `json:"path"`
	GUID          string `json:"guid"`
}

// PackageListOutput represents the JSON output for package list command
type PackageListOutput struct {
	SchemaVersion string             `json:"schemaVersion"`
	Project       string             `json:"project"`
	Packages      []PackageReference `json:"packages"`
	ElapsedMs     int64              `json:"elapsedMs"`
}

// PackageReference represents a package reference in JSON output
type PackageReference struct {
	ID      string `json:"id"`
	Version string `json:"version,omitempty"`
}

// SourcesOutput represents the JSON output for solution sources command
type SourcesOutput struct {
	SchemaVersion string          `json:"schemaVersion"`
	Solution      string          `json:"solution"`
	Projects      []ProjectSource `json:"projects"`
	ElapsedMs     int64           `json:"elapsedMs"`
}

// ProjectSource represents the source files of one project in JSON output
type ProjectSource struct {
	Project string   `json:"project"`
	Files   []string `json:"files"`
}

// WriteJSON writes a JSON object to the specified writer (typically stdout)
// When --format json is used, ALL JSON goes to stdout and ALL messages go to stderr
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// MeasureElapsed returns elapsed time in milliseconds since start
func MeasureElapsed(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

// CurrentSchemaVersion is the schema version for all JSON outputs
const CurrentSchemaVersion = "1.0.0"

// NewSolutionListOutput creates a new SolutionListOutput with schema version
func NewSolutionListOutput(solution string, start time.Time) *SolutionListOutput {
	return &SolutionListOutput{
		SchemaVersion: CurrentSchemaVersion,
		Solution:      solution,
		Projects:      []SolutionProject{},
		ElapsedMs:     MeasureElapsed(start),
	}
}

// NewPackageListOutput creates a new PackageListOutput with schema version
func NewPackageListOutput(project string, start time.Time) *PackageListOutput {
	return &PackageListOutput{
		SchemaVersion: CurrentSchemaVersion,
		Project:       project,
		Packages:      []PackageReference{},
		ElapsedMs:     MeasureElapsed(start),
	}
}

// NewSourcesOutput creates a new SourcesOutput with schema version
func NewSourcesOutput(solution string, start time.Time) *SourcesOutput {
	return &SourcesOutput{
		SchemaVersion: CurrentSchemaVersion,
		Solution:      solution,
		Projects:      []ProjectSource{},
		ElapsedMs:     MeasureElapsed(start),
	}
}

// ValidateFormat checks a --format value
func ValidateFormat(format string) error {
	switch format {
	case "", "console", "json":
		return nil
	}
	return fmt.Errorf("invalid format %q (expected console or json)", format)
}
