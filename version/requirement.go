package version

import (
	"fmt"
	"strings"
)

// RequirementKind classifies the value of a Version attribute.
type RequirementKind int

const (
	// Exact is a plain version such as 1.2.3 (a minimum in NuGet terms).
	Exact RequirementKind = iota
	// Interval is bracket syntax such as [1.0,2.0).
	Interval
	// Floating is a wildcard version such as 1.2.* or 1.0.0-*.
	Floating
)

func (k RequirementKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Interval:
		return "interval"
	case Floating:
		return "floating"
	default:
		return "unknown"
	}
}

// Requirement is the parsed value of a PackageReference or PackageVersion
// Version attribute.
type Requirement struct {
	Kind RequirementKind

	// Min is the lower bound, nil for an interval open below or for "*".
	Min          *NuGetVersion
	MinInclusive bool

	// Max is the upper bound of an interval, nil when unbounded.
	Max          *NuGetVersion
	MaxInclusive bool

	// FloatPrerelease is set for the "1.0.0-*" form.
	FloatPrerelease bool

	// floatIndex is the position of the wildcard component for floating versions.
	floatIndex int

	raw string
}

// ParseRequirement parses a plain version, an interval or a floating version.
func ParseRequirement(s string) (*Requirement, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("version requirement cannot be empty")
	case strings.HasPrefix(s, "[") || strings.HasPrefix(s, "("):
		return parseInterval(s)
	case strings.Contains(s, "*"):
		return parseFloating(s)
	}

	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return &Requirement{Kind: Exact, Min: v, MinInclusive: true, raw: s}, nil
}

func parseInterval(s string) (*Requirement, error) {
	if !strings.HasSuffix(s, "]") && !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("invalid version interval %q: must end with ] or )", s)
	}

	r := &Requirement{
		Kind:         Interval,
		MinInclusive: s[0] == '[',
		MaxInclusive: s[len(s)-1] == ']',
		raw:          s,
	}

	body := s[1 : len(s)-1]
	lower, upper, hasComma := strings.Cut(body, ",")
	if !hasComma {
		// [1.0] pins a single version.
		upper = lower
	}
	if strings.Contains(upper, ",") {
		return nil, fmt.Errorf("invalid version interval %q: too many bounds", s)
	}

	var err error
	if lower = strings.TrimSpace(lower); lower != "" {
		if r.Min, err = Parse(lower); err != nil {
			return nil, fmt.Errorf("invalid lower bound in %q: %w", s, err)
		}
	}
	if upper = strings.TrimSpace(upper); upper != "" {
		if r.Max, err = Parse(upper); err != nil {
			return nil, fmt.Errorf("invalid upper bound in %q: %w", s, err)
		}
	}
	if r.Min == nil && r.Max == nil {
		return nil, fmt.Errorf("invalid version interval %q: no bounds", s)
	}
	return r, nil
}

func parseFloating(s string) (*Requirement, error) {
	r := &Requirement{Kind: Floating, MinInclusive: true, raw: s}

	if base, ok := strings.CutSuffix(s, "-*"); ok {
		v, err := Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid floating version %q: %w", s, err)
		}
		r.Min = v
		r.FloatPrerelease = true
		return r, nil
	}

	parts := strings.Split(s, ".")
	idx := -1
	for i, p := range parts {
		if p == "*" {
			idx = i
			break
		}
	}
	if idx < 0 || idx != len(parts)-1 || idx > 3 {
		return nil, fmt.Errorf("invalid floating version %q", s)
	}

	r.floatIndex = idx
	if idx > 0 {
		v, err := Parse(strings.Join(parts[:idx], "."))
		if err != nil {
			return nil, fmt.Errorf("invalid floating version %q: %w", s, err)
		}
		r.Min = v
	}
	return r, nil
}

// Floor returns the lowest version the requirement can resolve to. An
// unbounded requirement floors at 0.0.0.
func (r *Requirement) Floor() *NuGetVersion {
	if r.Min != nil {
		return r.Min
	}
	return &NuGetVersion{}
}

// Compare orders two requirements by their floors.
func (r *Requirement) Compare(other *Requirement) int {
	return r.Floor().Compare(other.Floor())
}

// Satisfies reports whether v falls within the requirement.
func (r *Requirement) Satisfies(v *NuGetVersion) bool {
	if v == nil {
		return false
	}

	if r.Kind == Floating {
		return r.floatMatches(v)
	}

	if r.Min != nil {
		c := v.Compare(r.Min)
		if c < 0 || (c == 0 && !r.MinInclusive) {
			return false
		}
	}
	if r.Max != nil {
		c := v.Compare(r.Max)
		if c > 0 || (c == 0 && !r.MaxInclusive) {
			return false
		}
	}
	return true
}

func (r *Requirement) floatMatches(v *NuGetVersion) bool {
	if r.Min == nil {
		return true
	}
	if r.FloatPrerelease {
		return v.Major == r.Min.Major && v.Minor == r.Min.Minor && v.Patch == r.Min.Patch
	}

	have := []int{v.Major, v.Minor, v.Patch, v.Revision}
	want := []int{r.Min.Major, r.Min.Minor, r.Min.Patch, r.Min.Revision}
	for i := 0; i < r.floatIndex; i++ {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// String returns the requirement as written.
func (r *Requirement) String() string {
	return r.raw
}
