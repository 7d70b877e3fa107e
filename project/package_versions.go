package project

import (
	"fmt"
	"strings"

	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// PackageVersion is a <PackageVersion> item of a central packages file.
type PackageVersion struct {
	Name    string
	Version string
}

// PackageVersions reads and edits the PackageVersion items of a File.
type PackageVersions struct {
	file *File
}

// PackageVersions returns the package version accessor of f.
func (f *File) PackageVersions() *PackageVersions {
	return &PackageVersions{file: f}
}

// GetPackageVersions returns every central package version. An item without
// a Version attribute fails with ErrPackageVersionMissing.
func (v *PackageVersions) GetPackageVersions() ([]PackageVersion, error) {
	var out []PackageVersion
	for _, el := range v.file.GetNodesByName(PackageVersionItem) {
		name, ok := el.AttrValue(IncludeAttribute)
		if !ok {
			continue
		}
		ver, ok := el.AttrValue(VersionAttribute)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPackageVersionMissing, name)
		}
		out = append(out, PackageVersion{Name: name, Version: ver})
	}
	return out, nil
}

// Find returns the central version of the named package.
func (v *PackageVersions) Find(name string) (PackageVersion, bool, error) {
	all, err := v.GetPackageVersions()
	if err != nil {
		return PackageVersion{}, false, err
	}
	for _, pv := range all {
		if strings.EqualFold(pv.Name, name) {
			return pv, true, nil
		}
	}
	return PackageVersion{}, false, nil
}

// Add appends a PackageVersion item to the first ItemGroup.
func (v *PackageVersions) Add(name, version string) {
	v.file.appendToGroup(ItemGroupElement,
		xmlsyntax.NewItemElement(PackageVersionItem, name, VersionAttribute, version))
}

// Set updates the version of the named package, adding it when absent.
// It reports whether an existing item was updated.
func (v *PackageVersions) Set(name, version string) bool {
	matches := v.elements(name)
	if len(matches) == 0 {
		v.Add(name, version)
		return false
	}
	v.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceElements(matches, func(el *xmlsyntax.Element) *xmlsyntax.Element {
			return el.WithAttr(VersionAttribute, version)
		})
	})
	return true
}

// Remove deletes the named package's items and reports whether one existed.
func (v *PackageVersions) Remove(name string) bool {
	matches := v.elements(name)
	if len(matches) == 0 {
		return false
	}
	v.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.RemoveElements(matches)
	})
	return true
}

func (v *PackageVersions) elements(name string) []*xmlsyntax.Element {
	var out []*xmlsyntax.Element
	for _, el := range v.file.GetNodesByName(PackageVersionItem) {
		if include, ok := el.AttrValue(IncludeAttribute); ok && strings.EqualFold(include, name) {
			out = append(out, el)
		}
	}
	return out
}
