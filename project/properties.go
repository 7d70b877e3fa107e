package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// Property is a name/value pair declared in a PropertyGroup.
type Property struct {
	Name  string
	Value string
}

// Properties reads and edits the properties of a File.
//
// Lookups consider every element with the given name anywhere in the
// document. A property declared more than once is ambiguous and every
// lookup or update of it fails with ErrDuplicatedProperty.
type Properties struct {
	file *File
}

// Properties returns the property accessor of f.
func (f *File) Properties() *Properties {
	return &Properties{file: f}
}

// FindProperty returns the property named name. ok is false when it is not declared.
func (p *Properties) FindProperty(name string) (prop Property, ok bool, err error) {
	el, err := p.find(name)
	if err != nil || el == nil {
		return Property{}, false, err
	}
	return Property{Name: name, Value: el.Text()}, true, nil
}

// GetProperty returns the property named name, failing with ErrPropertyMissing
// when it is not declared.
func (p *Properties) GetProperty(name string) (Property, error) {
	prop, ok, err := p.FindProperty(name)
	if err != nil {
		return Property{}, err
	}
	if !ok {
		return Property{}, fmt.Errorf("%w: %s", ErrPropertyMissing, name)
	}
	return prop, nil
}

// SetProperty updates the property named name, adding it to the first
// PropertyGroup when it is not declared yet.
func (p *Properties) SetProperty(name, value string) error {
	el, err := p.find(name)
	if err != nil {
		return err
	}

	if el == nil {
		p.file.appendToGroup(PropertyGroupElement, xmlsyntax.NewPropertyElement(name, value))
		return nil
	}

	if el.Text() == value && !el.HasChildElements() && !el.SelfClosing {
		return nil
	}
	p.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.ReplaceNode(el, el.WithText(value))
	})
	return nil
}

// RemoveProperty removes every declaration of name. Removing an undeclared
// property is not an error.
func (p *Properties) RemoveProperty(name string) {
	nodes := p.file.GetNodesByName(name)
	if len(nodes) == 0 {
		return
	}
	p.file.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.RemoveElements(nodes)
	})
}

// FindBool returns a boolean property. Values are matched case-insensitively;
// anything other than true or false fails with ErrInvalidBoolProperty.
func (p *Properties) FindBool(name string) (value, ok bool, err error) {
	prop, ok, err := p.FindProperty(name)
	if err != nil || !ok {
		return false, false, err
	}

	switch strings.ToLower(strings.TrimSpace(prop.Value)) {
	case "true":
		return true, true, nil
	case "false":
		return false, true, nil
	}
	return false, false, fmt.Errorf("%w: %s=%q", ErrInvalidBoolProperty, name, prop.Value)
}

// SetBool writes a boolean property in lower case.
func (p *Properties) SetBool(name string, value bool) error {
	return p.SetProperty(name, strconv.FormatBool(value))
}

func (p *Properties) find(name string) (*xmlsyntax.Element, error) {
	nodes := p.file.GetNodesByName(name)
	switch len(nodes) {
	case 0:
		return nil, nil
	case 1:
		return nodes[0], nil
	}
	return nil, fmt.Errorf("%w: %s (%d declarations)", ErrDuplicatedProperty, name, len(nodes))
}
