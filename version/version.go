// Package version parses and compares the package versions written in
// PackageReference and PackageVersion items.
//
// Both SemVer 2.0 versions (1.2.3-beta.1+build) and legacy four-part versions
// (1.2.3.4) are accepted. Missing minor and patch components default to zero.
//
// Example:
//
//	v, err := version.Parse("13.0.3")
//	if err != nil {
//	    return err
//	}
//	if v.GreaterThan(version.MustParse("12.0.1")) {
//	    fmt.Println("upgrade")
//	}
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// NuGetVersion is a parsed package version.
type NuGetVersion struct {
	Major int
	Minor int

	// Patch is the third component, called Build in legacy versions.
	Patch int

	// Revision is only set for legacy four-part versions.
	Revision int

	// IsLegacyVersion marks a four-part version.
	IsLegacyVersion bool

	// ReleaseLabels are the dot-separated prerelease labels, e.g. ["beta", "1"].
	ReleaseLabels []string

	// Metadata is the build metadata after '+'. It never takes part in comparison.
	Metadata string

	original string
}

// String returns the version as it was written, or its normalized form for
// versions built in code.
func (v *NuGetVersion) String() string {
	if v.original != "" {
		return v.original
	}
	return v.ToNormalizedString()
}

// Parse parses a version string with one to four numeric components.
func Parse(s string) (*NuGetVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("version string cannot be empty")
	}

	v := &NuGetVersion{original: s}

	core, metadata, hasMetadata := strings.Cut(s, "+")
	if hasMetadata {
		if metadata == "" {
			return nil, fmt.Errorf("invalid version %q: empty metadata", s)
		}
		v.Metadata = metadata
	}

	numbers, labels, hasLabels := strings.Cut(core, "-")
	if hasLabels {
		if labels == "" {
			return nil, fmt.Errorf("invalid version %q: empty prerelease label", s)
		}
		v.ReleaseLabels = strings.Split(labels, ".")
		for _, l := range v.ReleaseLabels {
			if l == "" {
				return nil, fmt.Errorf("invalid version %q: empty prerelease label", s)
			}
		}
	}

	parts := strings.Split(numbers, ".")
	if len(parts) > 4 {
		return nil, fmt.Errorf("invalid version %q: too many components", s)
	}

	fields := []*int{&v.Major, &v.Minor, &v.Patch, &v.Revision}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		*fields[i] = n
	}
	v.IsLegacyVersion = len(parts) == 4

	return v, nil
}

// MustParse is like Parse but panics on an invalid version.
func MustParse(s string) *NuGetVersion {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}
