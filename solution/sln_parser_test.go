package solution

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlnParser_Parse(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/repo", "App.sln")
	require.NoError(t, afero.WriteFile(fs, path, []byte("\ufeff"+nestedSolution), 0o644))

	sol, err := NewSlnParser(fs).Parse(path)
	require.NoError(t, err)

	assert.Equal(t, path, sol.FilePath)
	assert.Equal(t, "/repo", sol.SolutionDir)
	assert.Equal(t, "12.00", sol.FormatVersion)
	assert.Equal(t, "17.9.34310.174", sol.VisualStudioVersion)
	assert.Equal(t, "10.0.40219.1", sol.MinimumVisualStudioVersion)
	assert.Len(t, sol.Projects, 2)
	assert.Len(t, sol.SolutionFolders, 2)

	assert.Equal(t, []string{
		filepath.Join("/repo", "App", "App.csproj"),
		filepath.Join("/repo", "src", "Lib", "Lib.csproj"),
	}, sol.GetProjects())

	p, ok := sol.GetProjectByName("app")
	require.True(t, ok)
	assert.Equal(t, "App", p.Name)
	assert.True(t, p.IsNETProject())

	p, ok = sol.GetProjectByPath(`src\Lib\Lib.csproj`)
	require.True(t, ok)
	assert.Equal(t, "Lib", p.Name)

	_, ok = sol.GetProjectByName("Missing")
	assert.False(t, ok)
}

func TestSlnParser_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	parser := NewSlnParser(fs)

	_, err := parser.Parse("missing.sln")
	assert.ErrorIs(t, err, ErrSolutionFileNotFound)

	_, err = parser.Parse("App.slnx")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "not a .sln file", pe.Message)

	bad := "Global\n\tGlobalSection(NestedProjects) = preSolution\n\tgarbage\n\tEndGlobalSection\nEndGlobal\n"
	require.NoError(t, afero.WriteFile(fs, "bad.sln", []byte(bad), 0o644))
	_, err = parser.Parse("bad.sln")
	assert.ErrorIs(t, err, ErrMalformedNestedProjectEntry)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.sln", pe.FilePath)
	assert.Equal(t, 3, pe.Line)
}

func TestParseText(t *testing.T) {
	sol, err := ParseText(NewSolutionFileStringBuilder().AddProject("App", `App\App.csproj`).Build())
	require.NoError(t, err)
	assert.Equal(t, "12.00", sol.FormatVersion)
	assert.Empty(t, sol.FilePath)
	require.Len(t, sol.Projects, 1)
}

func TestGetParser(t *testing.T) {
	fs := afero.NewMemMapFs()

	tests := []struct {
		path    string
		want    any
		wantErr bool
	}{
		{"App.sln", &SlnParser{}, false},
		{"App.SLNX", &SlnxParser{}, false},
		{"App.slnf", &SlnfParser{}, false},
		{"App.csproj", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			parser, err := GetParser(fs, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, parser)
			assert.True(t, parser.CanParse(tt.path))
		})
	}
}
