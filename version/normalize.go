package version

import "fmt"

// Normalize returns the canonical form of a version string:
// "1.01.1" becomes "1.1.1", "1" becomes "1.0.0" and legacy versions keep
// their fourth component.
func Normalize(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", fmt.Errorf("cannot normalize version: %w", err)
	}
	return v.ToNormalizedString(), nil
}

// NormalizeOrOriginal normalizes s, returning it unchanged when it does not
// parse. Ranges, floating versions and MSBuild property references such as
// $(SerilogVersion) come back as written.
func NormalizeOrOriginal(s string) string {
	normalized, err := Normalize(s)
	if err != nil {
		return s
	}
	return normalized
}
