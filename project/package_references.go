package project

import (
	"strings"

	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// PackageReference is a <PackageReference> item. Version is empty for a
// centrally managed reference.
type PackageReference struct {
	Name    string
	Version string
}

// HasVersion reports whether the reference pins its own version.
func (r PackageReference) HasVersion() bool {
	return r.Version != ""
}

// PackageReferences reads and edits the PackageReference items of a File.
// Package names match case-insensitively.
type PackageReferences struct {
	file *File
}

// PackageReferences returns the package reference accessor of f.
func (f *File) PackageReferences() *PackageReferences {
	return &PackageReferences{file: f}
}

// GetPackageReferences returns every package reference in document order.
func (r *PackageReferences) GetPackageReferences() []PackageReference {
	var refs []PackageReference
	for _, el := range r.file.GetNodesByName(PackageReferenceItem) {
		name, ok := el.AttrValue(IncludeAttribute)
		if !ok {
			continue
		}
		v, _ := el.AttrValue(VersionAttribute)
		refs = append(refs, PackageReference{Name: name, Version: v})
	}
	return refs
}

// Find returns the first reference to the named package.
func (r *PackageReferences) Find(name string) (PackageReference, bool) {
	for _, ref := range r.GetPackageReferences() {
		if strings.EqualFold(ref.Name, name) {
			return ref, true
		}
	}
	return PackageReference{}, false
}

// Add appends a version-less reference to the first ItemGroup.
func (r *PackageReferences) Add(name string) {
	r.file.appendToGroup(ItemGroupElement, xmlsyntax.NewItemElement(PackageReferenceItem, name))
}

// AddWithVersion appends a reference with a Version attribute to the first ItemGroup.
func (r *PackageReferences) AddWithVersion(name, version string) {
	r.file.appendToGroup(ItemGroupElement,
		xmlsyntax.NewItemElement(PackageReferenceItem, name, VersionAttribute, version))
}

// AddOrUpdate sets the version of an existing reference or adds a new one.
// It reports whether an existing reference was updated. An empty version adds
// a version-less reference and strips the version of an existing one.
func (r *PackageReferences) AddOrUpdate(name, version string) bool {
	if _, ok := r.Find(name); ok {
		if version == "" {
			r.RemoveVersion(name)
		} else {
			r.SetVersion(name, version)
		}
		return true
	}
	if version == "" {
		r.Add(name)
	} else {
		r.AddWithVersion(name, version)
	}
	return false
}

// Remove deletes every reference to the named package and reports whether
// one existed.
func (r *PackageReferences) Remove(name string) bool {
	matches := r.elements(name)
	if len(matches) == 0 {
		return false
	}
	r.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.RemoveElements(matches)
	})
	return true
}

// SetVersion replaces the Version attribute of every reference to the named
// package and reports whether one existed.
func (r *PackageReferences) SetVersion(name, version string) bool {
	matches := r.elements(name)
	if len(matches) == 0 {
		return false
	}
	r.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceElements(matches, func(el *xmlsyntax.Element) *xmlsyntax.Element {
			return el.WithAttr(VersionAttribute, version)
		})
	})
	return true
}

// RemoveVersion strips the Version attribute from every reference to the
// named package, leaving the references in place.
func (r *PackageReferences) RemoveVersion(name string) {
	var versioned []*xmlsyntax.Element
	for _, el := range r.elements(name) {
		if el.HasAttr(VersionAttribute) {
			versioned = append(versioned, el)
		}
	}
	if len(versioned) == 0 {
		return
	}
	r.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceElements(versioned, func(el *xmlsyntax.Element) *xmlsyntax.Element {
			return el.RemoveAttr(VersionAttribute)
		})
	})
}

// RemoveAllVersions strips the Version attribute from every reference.
func (r *PackageReferences) RemoveAllVersions() {
	r.file.Apply(RemoveAttributeStrategy{Element: PackageReferenceItem, Attribute: VersionAttribute})
}

func (r *PackageReferences) elements(name string) []*xmlsyntax.Element {
	var out []*xmlsyntax.Element
	for _, el := range r.file.GetNodesByName(PackageReferenceItem) {
		if include, ok := el.AttrValue(IncludeAttribute); ok && strings.EqualFold(include, name) {
			out = append(out, el)
		}
	}
	return out
}
