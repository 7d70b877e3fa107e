package version

import (
	"strconv"
	"strings"
)

// Compare returns -1, 0 or 1 as v is lower than, equal to or higher than other.
//
// Numeric components are compared first. A release sorts above any prerelease
// of the same numbers. Prerelease labels compare pairwise: numeric labels
// numerically and below alphanumeric ones, which compare case-insensitively.
// When all shared labels are equal, the shorter list is lower. Build metadata
// is ignored. The revision is only compared when both versions are legacy.
func (v *NuGetVersion) Compare(other *NuGetVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	if v.IsLegacyVersion && other.IsLegacyVersion {
		if c := compareInt(v.Revision, other.Revision); c != 0 {
			return c
		}
	}

	switch {
	case !v.IsPrerelease() && !other.IsPrerelease():
		return 0
	case !v.IsPrerelease():
		return 1
	case !other.IsPrerelease():
		return -1
	}

	for i := 0; i < len(v.ReleaseLabels) && i < len(other.ReleaseLabels); i++ {
		if c := compareLabel(v.ReleaseLabels[i], other.ReleaseLabels[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(v.ReleaseLabels), len(other.ReleaseLabels))
}

// Equals reports whether both versions have the same precedence.
func (v *NuGetVersion) Equals(other *NuGetVersion) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v sorts below other.
func (v *NuGetVersion) LessThan(other *NuGetVersion) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v sorts above other.
func (v *NuGetVersion) GreaterThan(other *NuGetVersion) bool {
	return v.Compare(other) > 0
}

// IsPrerelease reports whether the version carries release labels.
func (v *NuGetVersion) IsPrerelease() bool {
	return len(v.ReleaseLabels) > 0
}

// ToNormalizedString formats the version without leading zeros and with at
// least three numeric components.
func (v *NuGetVersion) ToNormalizedString() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(v.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.Patch))
	if v.IsLegacyVersion {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(v.Revision))
	}
	if v.IsPrerelease() {
		b.WriteByte('-')
		b.WriteString(strings.Join(v.ReleaseLabels, "."))
	}
	if v.Metadata != "" {
		b.WriteByte('+')
		b.WriteString(v.Metadata)
	}
	return b.String()
}

// Max returns the highest of the given versions, or nil for none.
// Of two equal versions the first one wins.
func Max(versions ...*NuGetVersion) *NuGetVersion {
	var best *NuGetVersion
	for _, v := range versions {
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	return best
}

func compareLabel(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	aNum, bNum := aErr == nil, bErr == nil

	switch {
	case aNum && bNum:
		return compareInt(an, bn)
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
