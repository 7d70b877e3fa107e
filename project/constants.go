package project

// Element and attribute names of the MSBuild vocabulary.
const (
	ProjectElement           = "Project"
	PropertyGroupElement     = "PropertyGroup"
	ItemGroupElement         = "ItemGroup"
	TargetElement            = "Target"
	CompileItem              = "Compile"
	PackageReferenceItem     = "PackageReference"
	PackageVersionItem       = "PackageVersion"
	ProjectReferenceItem     = "ProjectReference"
	IncludeAttribute         = "Include"
	VersionAttribute         = "Version"
	ToolsVersionAttribute    = "ToolsVersion"
	SdkAttribute             = "Sdk"
	ConditionAttribute       = "Condition"
	TargetNameAttribute      = "Name"
	DefaultItemsProperty     = "EnableDefaultItems"
	CentralPackagesProperty  = "ManagePackageVersionsCentrally"
	ArtifactsOutputProperty  = "UseArtifactsOutput"
	TargetFrameworkProperty  = "TargetFramework"
	TargetFrameworksProperty = "TargetFrameworks"
)

// Well-known shared file names.
const (
	DirectoryBuildProps    = "Directory.Build.props"
	DirectoryPackagesProps = "Directory.Packages.props"
	DirectoryBuildTargets  = "Directory.Build.targets"
)

// ProjectExtensions lists the project file extensions FindProjectFile looks for.
var ProjectExtensions = []string{".csproj", ".fsproj", ".vbproj"}

const emptyProject = "<Project></Project>"
