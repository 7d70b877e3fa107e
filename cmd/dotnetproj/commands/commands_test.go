package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/cli"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/scaffold"
)

type testEnv struct {
	*cli.Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	var out, errOut bytes.Buffer
	console := output.NewConsole(&out, &errOut, output.VerbosityNormal)
	console.SetColors(false)
	return &testEnv{Env: cli.NewEnv(console, afero.NewMemMapFs()), out: &out, err: &errOut}
}

func (e *testEnv) run(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(e.out)
	cmd.SetErr(e.err)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func (e *testEnv) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(e.Fs, path)
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(e.Fs, path, []byte(content), 0o644))
}

func (e *testEnv) solution(t *testing.T, b *scaffold.SolutionBuilder) string {
	t.Helper()
	path, err := b.Save(e.Fs, "/repo")
	require.NoError(t, err)
	return path
}

var webProject = filepath.Join("/repo", "Web", "Web.csproj")

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(NewVersionCommand(env.Console)))
	assert.Contains(t, env.out.String(), "dotnetproj version")
}

func TestPropertyCommand(t *testing.T) {
	env := newTestEnv(t)
	env.solution(t, scaffold.NewSolutionBuilder("App").AddProject(scaffold.NewProjectBuilder("Web")))

	require.NoError(t, env.run(NewPropertyCommand(env.Env), "get", "TargetFramework", "--project", webProject))
	assert.Equal(t, "net8.0\n", env.out.String())

	require.NoError(t, env.run(NewPropertyCommand(env.Env), "set", "Nullable", "enable", "--project", webProject))
	assert.Contains(t, env.read(t, webProject), "    <TargetFramework>net8.0</TargetFramework>\n    <Nullable>enable</Nullable>\n")

	require.NoError(t, env.run(NewPropertyCommand(env.Env), "remove", "Nullable", "--project", webProject))
	assert.NotContains(t, env.read(t, webProject), "Nullable")

	err := env.run(NewPropertyCommand(env.Env), "get", "Nullable", "--project", webProject)
	assert.ErrorContains(t, err, "property 'Nullable' not found")

	err = env.run(NewPropertyCommand(env.Env), "remove", "Nullable", "--project", webProject)
	assert.ErrorContains(t, err, "not found")
}

func TestPropertyCommand_RejectsSolution(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App"))

	err := env.run(NewPropertyCommand(env.Env), "get", "TargetFramework", "--project", path)
	var invalid *InvalidProjectFileError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, path, invalid.Path)
}

func TestPropertyCommand_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.solution(t, scaffold.NewSolutionBuilder("App").AddProject(scaffold.NewProjectBuilder("Web")))
	before := env.read(t, webProject)
	env.DryRun = true

	require.NoError(t, env.run(NewPropertyCommand(env.Env), "set", "Nullable", "enable", "--project", webProject))

	assert.Equal(t, before, env.read(t, webProject))
	assert.Contains(t, env.out.String(), "+    <Nullable>enable</Nullable>\n")
}

func TestPackageCommand(t *testing.T) {
	env := newTestEnv(t)
	env.solution(t, scaffold.NewSolutionBuilder("App").AddProject(scaffold.NewProjectBuilder("Web")))

	require.NoError(t, env.run(NewPackageCommand(env.Env), "add", "Serilog", "--version", "3.1.1", "--project", webProject))
	assert.Contains(t, env.read(t, webProject), `<PackageReference Include="Serilog" Version="3.1.1" />`)
	assert.Contains(t, env.out.String(), "Added package 'Serilog'")

	require.NoError(t, env.run(NewPackageCommand(env.Env), "update", "Serilog", "--version", "4.0.0", "--project", webProject))
	assert.Contains(t, env.read(t, webProject), `<PackageReference Include="Serilog" Version="4.0.0" />`)

	env.out.Reset()
	require.NoError(t, env.run(NewPackageCommand(env.Env), "list", "--format", "json", "--project", webProject))
	var listed output.PackageListOutput
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &listed))
	assert.Equal(t, []output.PackageReference{{ID: "Serilog", Version: "4.0.0"}}, listed.Packages)

	require.NoError(t, env.run(NewPackageCommand(env.Env), "remove", "Serilog", "--project", webProject))
	assert.NotContains(t, env.read(t, webProject), "Serilog")

	err := env.run(NewPackageCommand(env.Env), "remove", "Serilog", "--project", webProject)
	assert.ErrorContains(t, err, "package 'Serilog' not found")

	err = env.run(NewPackageCommand(env.Env), "add", "Serilog", "--version", "not-a-version", "--project", webProject)
	assert.ErrorContains(t, err, "invalid package version")
}

func TestPackageCommand_CentralPackageManagement(t *testing.T) {
	env := newTestEnv(t)
	env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web")).
		WithDirectoryPackagesProps("<Project>\n  <PropertyGroup>\n    <ManagePackageVersionsCentrally>true</ManagePackageVersionsCentrally>\n  </PropertyGroup>\n</Project>"))
	propsPath := filepath.Join("/repo", project.DirectoryPackagesProps)

	require.NoError(t, env.run(NewPackageCommand(env.Env), "add", "Polly", "--version", "8.2.0", "--project", webProject))
	assert.Contains(t, env.read(t, webProject), `<PackageReference Include="Polly" />`)
	assert.Contains(t, env.read(t, propsPath), `<PackageVersion Include="Polly" Version="8.2.0" />`)

	require.NoError(t, env.run(NewPackageCommand(env.Env), "update", "polly", "--version", "8.3.0", "--project", webProject))
	assert.Contains(t, env.read(t, propsPath), `<PackageVersion Include="Polly" Version="8.3.0" />`)

	env.out.Reset()
	require.NoError(t, env.run(NewPackageCommand(env.Env), "list", "--project", webProject))
	assert.Contains(t, env.out.String(), "8.3.0 (central)")
}

func TestSolutionCommand_List(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web")).
		AddProject(scaffold.NewProjectBuilder("Core")))

	require.NoError(t, env.run(NewSolutionCommand(env.Env), "list", path))
	assert.Equal(t,
		"Web   "+filepath.Join("Web", "Web.csproj")+"\n"+
			"Core  "+filepath.Join("Core", "Core.csproj")+"\n",
		env.out.String())

	env.out.Reset()
	require.NoError(t, env.run(NewSolutionCommand(env.Env), "list", path, "--format", "json"))
	var listed output.SolutionListOutput
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &listed))
	require.Len(t, listed.Projects, 2)
	assert.Equal(t, "Core", listed.Projects[1].Name)

	err := env.run(NewSolutionCommand(env.Env), "list", path, "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestSolutionCommand_New(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(NewSolutionCommand(env.Env), "new", "/work", "Shop", "--project", "Api", "--project", "Domain", "--framework", "net9.0"))

	sln := env.read(t, filepath.Join("/work", "Shop.sln"))
	assert.Contains(t, sln, `"Api", "`+filepath.Join("Api", "Api.csproj")+`"`)
	assert.Contains(t, env.read(t, filepath.Join("/work", "Domain", "Domain.csproj")), "<TargetFramework>net9.0</TargetFramework>")
}

func TestSolutionCommand_Sources(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web").
			WithFile("Program.cs", "").
			WithFile(filepath.Join("obj", "gen.cs"), "")))

	require.NoError(t, env.run(NewSolutionCommand(env.Env), "sources", path, "--format", "json"))

	var result output.SourcesOutput
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &result))
	require.Len(t, result.Projects, 1)
	assert.Equal(t, []string{filepath.Join("/repo", "Web", "Program.cs")}, result.Projects[0].Files)
}

func TestCPMCommand_Migrate(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web").WithPackage("Serilog", "3.1.1")).
		AddProject(scaffold.NewProjectBuilder("Core").WithPackage("Serilog", "3.0.0")))

	require.NoError(t, env.run(NewCPMCommand(env.Env), "migrate", path))

	props := env.read(t, filepath.Join("/repo", project.DirectoryPackagesProps))
	assert.Contains(t, props, "<ManagePackageVersionsCentrally>true</ManagePackageVersionsCentrally>")
	assert.Contains(t, props, `<PackageVersion Include="Serilog" Version="3.1.1" />`)
	assert.Contains(t, env.read(t, webProject), `<PackageReference Include="Serilog" />`)

	require.NoError(t, env.run(NewCPMCommand(env.Env), "migrate", path))
	assert.Contains(t, env.err.String(), "Warning: Central package management is already enabled")
}

func TestCPMCommand_MigrateDryRun(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web").WithPackage("Serilog", "3.1.1")))
	before := env.read(t, webProject)
	env.DryRun = true

	require.NoError(t, env.run(NewCPMCommand(env.Env), "migrate", path))

	assert.Equal(t, before, env.read(t, webProject))
	exists, err := afero.Exists(env.Fs, filepath.Join("/repo", project.DirectoryPackagesProps))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Contains(t, env.out.String(), `-    <PackageReference Include="Serilog" Version="3.1.1" />`)
	assert.Contains(t, env.out.String(), `+    <PackageVersion Include="Serilog" Version="3.1.1" />`)
}

func TestFrameworkCommand_Set(t *testing.T) {
	env := newTestEnv(t)
	path := env.solution(t, scaffold.NewSolutionBuilder("App").
		AddProject(scaffold.NewProjectBuilder("Web")).
		AddProject(scaffold.NewProjectBuilder("Core")))

	require.NoError(t, env.run(NewFrameworkCommand(env.Env), "set", path, "net9.0"))

	for _, p := range []string{webProject, filepath.Join("/repo", "Core", "Core.csproj")} {
		assert.Contains(t, env.read(t, p), "<TargetFramework>net9.0</TargetFramework>")
	}
	assert.Contains(t, env.out.String(), "in 2 projects")
}

func TestFormatCommand(t *testing.T) {
	env := newTestEnv(t)
	path := "/repo/App.csproj"
	env.write(t, path, "<Project Sdk=\"Microsoft.NET.Sdk\"><PropertyGroup><TargetFramework>net8.0</TargetFramework></PropertyGroup></Project>")

	require.NoError(t, env.run(NewFormatCommand(env.Env), path))
	assert.Equal(t,
		"<Project Sdk=\"Microsoft.NET.Sdk\">\n  <PropertyGroup>\n    <TargetFramework>net8.0</TargetFramework>\n  </PropertyGroup>\n</Project>",
		env.read(t, path))
	assert.Contains(t, env.out.String(), "Formatted "+path)

	env.out.Reset()
	require.NoError(t, env.run(NewFormatCommand(env.Env), path))
	assert.NotContains(t, env.out.String(), "Formatted")

	err := env.run(NewFormatCommand(env.Env), "/repo/missing.csproj")
	assert.Error(t, err)
}

func TestSuggestNounFirst(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "package", "Serilog"}, "dotnetproj package add"},
		{[]string{"Set", "Property"}, "dotnetproj property set"},
		{[]string{"migrate"}, "dotnetproj cpm migrate"},
		{[]string{"package", "add"}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, suggestNounFirst(tt.args), "%v", tt.args)
	}
}
