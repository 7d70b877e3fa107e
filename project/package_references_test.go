package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageReferences_Get(t *testing.T) {
	f, err := Create(sdkProject)
	require.NoError(t, err)

	refs := f.PackageReferences().GetPackageReferences()
	assert.Equal(t, []PackageReference{
		{Name: "Newtonsoft.Json", Version: "13.0.3"},
		{Name: "Serilog"},
	}, refs)
	assert.True(t, refs[0].HasVersion())
	assert.False(t, refs[1].HasVersion())

	ref, ok := f.PackageReferences().Find("newtonsoft.json")
	assert.True(t, ok)
	assert.Equal(t, "13.0.3", ref.Version)

	_, ok = f.PackageReferences().Find("Missing")
	assert.False(t, ok)
}

func TestPackageReferences_Add(t *testing.T) {
	f := CreateEmpty()
	refs := f.PackageReferences()

	refs.Add("Serilog")
	refs.AddWithVersion("Newtonsoft.Json", "13.0.3")

	text, err := f.ToXMLString()
	require.NoError(t, err)
	assert.Equal(t, `<Project>
  <ItemGroup>
    <PackageReference Include="Serilog" />
    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
  </ItemGroup>
</Project>`, text)
}

func TestPackageReferences_AddOrUpdate(t *testing.T) {
	f, err := Create(sdkProject)
	require.NoError(t, err)
	refs := f.PackageReferences()

	assert.True(t, refs.AddOrUpdate("Newtonsoft.Json", "13.0.1"))
	assert.False(t, refs.AddOrUpdate("Polly", "8.2.0"))
	assert.True(t, refs.AddOrUpdate("Newtonsoft.Json", ""))

	assert.Equal(t, []PackageReference{
		{Name: "Newtonsoft.Json"},
		{Name: "Serilog"},
		{Name: "Polly", Version: "8.2.0"},
	}, refs.GetPackageReferences())
}

func TestPackageReferences_SetVersion(t *testing.T) {
	f, err := Create(sdkProject)
	require.NoError(t, err)
	refs := f.PackageReferences()

	assert.True(t, refs.SetVersion("Serilog", "3.1.1"))
	assert.False(t, refs.SetVersion("Missing", "1.0.0"))

	text, err := f.ToXMLString()
	require.NoError(t, err)
	assert.Contains(t, text, `<PackageReference Include="Serilog" Version="3.1.1" />`)
}

func TestPackageReferences_Remove(t *testing.T) {
	f, err := Create(sdkProject)
	require.NoError(t, err)
	refs := f.PackageReferences()

	assert.True(t, refs.Remove("SERILOG"))
	assert.False(t, refs.Remove("Serilog"))
	assert.Len(t, refs.GetPackageReferences(), 1)
}

func TestPackageReferences_RemoveVersion(t *testing.T) {
	f, err := Create(sdkProject)
	require.NoError(t, err)
	refs := f.PackageReferences()

	refs.RemoveVersion("Newtonsoft.Json")

	text, err := f.ToXMLString()
	require.NoError(t, err)
	assert.Contains(t, text, "    <PackageReference Include=\"Newtonsoft.Json\" />\n    <PackageReference Include=\"Serilog\" />\n")

	before := f.Document()
	refs.RemoveVersion("Serilog")
	assert.Same(t, before, f.Document())
}

func TestPackageReferences_RemoveAllVersions(t *testing.T) {
	f, err := Create(`<Project>
  <ItemGroup>
    <PackageReference Include="A" Version="1.0.0" PrivateAssets="all" />
    <PackageReference Include="B" Version="2.0.0" />
  </ItemGroup>
</Project>`)
	require.NoError(t, err)

	f.PackageReferences().RemoveAllVersions()

	text, err := f.ToXMLString()
	require.NoError(t, err)
	assert.Equal(t, `<Project>
  <ItemGroup>
    <PackageReference Include="A" PrivateAssets="all" />
    <PackageReference Include="B" />
  </ItemGroup>
</Project>`, text)
}
