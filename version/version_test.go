package version

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   NuGetVersion
		legacy bool
	}{
		{"1.0.0", NuGetVersion{Major: 1}, false},
		{"1", NuGetVersion{Major: 1}, false},
		{"1.2", NuGetVersion{Major: 1, Minor: 2}, false},
		{"13.0.3", NuGetVersion{Major: 13, Patch: 3}, false},
		{"1.2.3-beta", NuGetVersion{Major: 1, Minor: 2, Patch: 3, ReleaseLabels: []string{"beta"}}, false},
		{"1.0.0-rc.1+build.123", NuGetVersion{Major: 1, ReleaseLabels: []string{"rc", "1"}, Metadata: "build.123"}, false},
		{"2.5.3.1", NuGetVersion{Major: 2, Minor: 5, Patch: 3, Revision: 1}, true},
		{" 4.0.1 ", NuGetVersion{Major: 4, Patch: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			tt.want.IsLegacyVersion = tt.legacy
			got.original = ""
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"abc",
		"-1.0.0",
		"1.0.0.0.0",
		"1..0",
		"1.0.0-",
		"1.0.0+",
		"1.0.0-beta..1",
		"$(SerilogVersion)",
	}

	for _, input := range inputs {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) expected error", input)
		}
	}
}

func TestNuGetVersion_String(t *testing.T) {
	if got := MustParse("1.01").String(); got != "1.01" {
		t.Errorf("String() = %q, want original text", got)
	}

	built := &NuGetVersion{Major: 1, Minor: 2, Patch: 3, ReleaseLabels: []string{"beta", "1"}, Metadata: "sha"}
	if got := built.String(); got != "1.2.3-beta.1+sha" {
		t.Errorf("String() = %q", got)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse() should panic on an invalid version")
		}
	}()
	MustParse("not-a-version")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1.0.0", "1.0.0", false},
		{"1.01.1", "1.1.1", false},
		{"1", "1.0.0", false},
		{"1.2", "1.2.0", false},
		{"1.0.0.0", "1.0.0.0", false},
		{"1.0.0-rc.1+build.123", "1.0.0-rc.1+build.123", false},
		{"abc", "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Normalize(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}

	if got := NormalizeOrOriginal("$(Version)"); got != "$(Version)" {
		t.Errorf("NormalizeOrOriginal() = %q", got)
	}
}
