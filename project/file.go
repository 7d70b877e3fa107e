// Package project provides a typed, format-preserving model over MSBuild
// project files (.csproj, .fsproj, .vbproj) and the shared Directory.*.props
// files that sit next to them.
//
// A File wraps one immutable xmlsyntax tree. Every edit replaces the tree
// wholesale, and serialization always goes through the xmlsyntax formatter
// so inserted elements come out indented like the rest of the file.
package project

import (
	"fmt"
	"strings"

	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// File is an MSBuild project document.
type File struct {
	doc      *xmlsyntax.Document
	source   string
	modified bool
}

// Create parses text into a File. Empty text yields an empty <Project></Project>.
// Any other root element fails with ErrInvalidRoot.
func Create(text string) (*File, error) {
	f, err := parse(text)
	if err != nil {
		return nil, err
	}
	root := f.doc.Root()
	if root == nil || root.Name != ProjectElement {
		name := "<none>"
		if root != nil {
			name = root.Name
		}
		return nil, fmt.Errorf("%w: found %s", ErrInvalidRoot, name)
	}
	return f, nil
}

// CreateEmpty returns a File holding <Project></Project>.
func CreateEmpty() *File {
	f, _ := parse("")
	return f
}

func parse(text string) (*File, error) {
	source := text
	if strings.TrimSpace(text) == "" {
		text = emptyProject
	}
	doc, err := xmlsyntax.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project XML: %w", err)
	}
	return &File{doc: doc, source: source}, nil
}

// Document returns the current syntax tree.
func (f *File) Document() *xmlsyntax.Document {
	return f.doc
}

// Root returns the <Project> element of the current tree.
func (f *File) Root() *xmlsyntax.Element {
	return f.doc.Root()
}

// UpdateDocument replaces the tree with fn applied to it.
func (f *File) UpdateDocument(fn func(*xmlsyntax.Document) *xmlsyntax.Document) {
	next := fn(f.doc)
	if next == nil || next == f.doc {
		return
	}
	f.doc = next
	f.modified = true
}

// Modified reports whether the tree changed since the File was created.
func (f *File) Modified() bool {
	return f.modified
}

// Source returns the text the File was created from.
func (f *File) Source() string {
	return f.source
}

// ToXMLString renders the formatted document.
func (f *File) ToXMLString() (string, error) {
	formatted, err := xmlsyntax.NewFormatter().Format(f.doc)
	if err != nil {
		return "", err
	}
	return formatted.String(), nil
}

// GetNodesByName returns every element named name, in document order.
func (f *File) GetNodesByName(name string) []*xmlsyntax.Element {
	return f.doc.GetNodesByName(name)
}

// GetOrAddGroup returns the first direct child of the root named name,
// appending an empty one when the root has none.
func (f *File) GetOrAddGroup(name string) *xmlsyntax.Element {
	root := f.Root()
	if group := root.FirstChild(name); group != nil {
		return group
	}
	group := xmlsyntax.NewElement(name)
	f.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceNode(root, root.AddChild(group))
	})
	return group
}

// appendToGroup adds child to the first group named name.
func (f *File) appendToGroup(name string, child xmlsyntax.Node) {
	group := f.GetOrAddGroup(name)
	f.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceNode(group, group.AddChild(child))
	})
}

// Apply runs a modify strategy over the current tree.
func (f *File) Apply(s ModifyStrategy) {
	f.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceElements(s.SelectNodes(d), s.ApplyChanges)
	})
}

// IsSdkStyle reports whether the project uses the SDK format, which is the
// case when the root carries no ToolsVersion attribute.
func (f *File) IsSdkStyle() bool {
	return !f.Root().HasAttr(ToolsVersionAttribute)
}

// IsDefaultItemsEnabled reports whether the SDK globs source files for this
// project. An explicit EnableDefaultItems property wins; otherwise SDK-style
// projects have default items and legacy ones do not.
func (f *File) IsDefaultItemsEnabled() (bool, error) {
	enabled, ok, err := f.Properties().FindBool(DefaultItemsProperty)
	if err != nil {
		return false, err
	}
	if ok {
		return enabled, nil
	}
	return f.IsSdkStyle(), nil
}

// TargetFrameworks returns the frameworks from TargetFramework or the
// semicolon-separated TargetFrameworks property.
func (f *File) TargetFrameworks() ([]string, error) {
	props := f.Properties()

	if p, ok, err := props.FindProperty(TargetFrameworksProperty); err != nil {
		return nil, err
	} else if ok {
		var out []string
		for _, tfm := range strings.Split(p.Value, ";") {
			if tfm = strings.TrimSpace(tfm); tfm != "" {
				out = append(out, tfm)
			}
		}
		return out, nil
	}

	p, ok, err := props.FindProperty(TargetFrameworkProperty)
	if err != nil || !ok {
		return nil, err
	}
	return []string{strings.TrimSpace(p.Value)}, nil
}
