package solution

import (
	"path/filepath"
	"strings"
)

// ToSystemPath rewrites both '\' and '/' to the host path separator.
func ToSystemPath(path string) string {
	sep := string(filepath.Separator)
	return strings.ReplaceAll(strings.ReplaceAll(path, "\\", sep), "/", sep)
}

// NormalizePath converts a path to forward slashes and collapses repeated
// separators. A UNC prefix keeps its two leading slashes.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}

	unc := strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
	normalized := strings.ReplaceAll(path, "\\", "/")
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	if unc {
		normalized = "/" + normalized
	}
	return normalized
}

// ResolveProjectPath resolves a project path written in a solution file
// against the solution directory.
func ResolveProjectPath(solutionDir, projectPath string) string {
	if projectPath == "" {
		return ""
	}
	p := ToSystemPath(projectPath)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(solutionDir, p))
}

// IsProjectPath reports whether a solution entry path names a project file.
// Setup projects (.vdproj) are not buildable project files and are excluded.
func IsProjectPath(path string) bool {
	return strings.HasSuffix(path, "proj") && !strings.HasSuffix(path, "vdproj")
}

// IsSolutionFile reports whether path has a solution file extension.
func IsSolutionFile(path string) bool {
	return GetSolutionFormat(path) != ""
}

// IsProjectFile reports whether path has a .NET project file extension.
func IsProjectFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csproj", ".vbproj", ".fsproj":
		return true
	}
	return false
}

// GetSolutionFormat returns "sln", "slnx" or "slnf", or "" for other files.
func GetSolutionFormat(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".sln", ".slnx", ".slnf":
		return ext[1:]
	}
	return ""
}
