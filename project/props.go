package project

// BuildProps is a Directory.Build.props file.
type BuildProps struct {
	*File
}

// NewBuildProps wraps f as a Directory.Build.props file.
func NewBuildProps(f *File) *BuildProps {
	return &BuildProps{File: f}
}

// ArtifactsOutputEnabled reports whether UseArtifactsOutput is set to true.
func (b *BuildProps) ArtifactsOutputEnabled() (bool, error) {
	enabled, _, err := b.Properties().FindBool(ArtifactsOutputProperty)
	return enabled, err
}

// PackagesProps is a Directory.Packages.props file, the home of central
// package versions.
type PackagesProps struct {
	*File
}

// NewPackagesProps wraps f as a Directory.Packages.props file.
func NewPackagesProps(f *File) *PackagesProps {
	return &PackagesProps{File: f}
}

// GetCentralPackageManagement reports whether ManagePackageVersionsCentrally
// is set to true.
func (p *PackagesProps) GetCentralPackageManagement() (bool, error) {
	enabled, _, err := p.Properties().FindBool(CentralPackagesProperty)
	return enabled, err
}

// SetCentralPackageManagement writes ManagePackageVersionsCentrally.
func (p *PackagesProps) SetCentralPackageManagement(enabled bool) error {
	return p.Properties().SetBool(CentralPackagesProperty, enabled)
}
