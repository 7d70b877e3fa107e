package solution

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slnxSolution = `<Solution>
  <Properties Name="Visual Studio">
    <Property Name="VisualStudioVersion" Value="17.12.35506.116" />
  </Properties>
  <Folder Name="/src/">
    <Project Path="src/App/App.csproj" />
  </Folder>
  <Folder Name="/src/libs/">
    <Project Path="src\Lib\Lib.fsproj" Id="44444444-4444-4444-4444-444444444444" />
    <File Path="src/libs/README.md" />
  </Folder>
  <Project Path="build/Build.csproj" />
</Solution>
`

func TestSlnxParser_Parse(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "App.slnx", []byte(slnxSolution), 0o644))

	sol, err := NewSlnxParser(fs).Parse("App.slnx")
	require.NoError(t, err)

	assert.Equal(t, "17.12.35506.116", sol.VisualStudioVersion)
	require.Len(t, sol.SolutionFolders, 2)
	src, libs := sol.SolutionFolders[0], sol.SolutionFolders[1]
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, "libs", libs.Name)
	assert.Equal(t, src.GUID, libs.ParentFolderGUID)
	assert.Equal(t, []string{filepath.Join("src", "libs", "README.md")}, libs.Items)

	require.Len(t, sol.Projects, 3)
	assert.Equal(t, "Build", sol.Projects[0].Name)
	assert.Equal(t, "Build", sol.Projects[0].StructurePath)
	assert.Empty(t, sol.Projects[0].ParentFolderGUID)

	app := sol.Projects[1]
	assert.Equal(t, filepath.Join("src", "App"), app.StructurePath)
	assert.Equal(t, src.GUID, app.ParentFolderGUID)
	assert.Equal(t, ProjectTypeCSProjectSDK, app.TypeGUID)

	lib := sol.Projects[2]
	assert.Equal(t, "{44444444-4444-4444-4444-444444444444}", lib.GUID)
	assert.Equal(t, filepath.Join("src", "Lib", "Lib.fsproj"), lib.Path)
	assert.Equal(t, filepath.Join("src", "libs", "Lib"), lib.StructurePath)
	assert.Equal(t, ProjectTypeFSProject, lib.TypeGUID)
}

func TestSlnxParser_StableGUIDs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "App.slnx", []byte(slnxSolution), 0o644))

	first, err := NewSlnxParser(fs).Parse("App.slnx")
	require.NoError(t, err)
	second, err := NewSlnxParser(fs).Parse("App.slnx")
	require.NoError(t, err)

	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, first.SolutionFolders, second.SolutionFolders)
}

func TestSlnxParser_SyntaxError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "Bad.slnx", []byte("<Solution>\n  <Folder Name=\"/a/\">\n</Solution>"), 0o644))

	_, err := NewSlnxParser(fs).Parse("Bad.slnx")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Positive(t, pe.Line)
}
