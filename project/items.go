package project

import (
	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// Item is an element of an ItemGroup identified by its Include attribute.
type Item struct {
	Group   string
	Include string
}

// GetItems returns every element named group that carries an Include attribute.
func (f *File) GetItems(group string) []Item {
	var items []Item
	for _, el := range f.GetNodesByName(group) {
		if include, ok := el.AttrValue(IncludeAttribute); ok {
			items = append(items, Item{Group: group, Include: include})
		}
	}
	return items
}

// AddItem appends <group Include="include" /> to the first ItemGroup.
func (f *File) AddItem(group, include string) {
	f.appendToGroup(ItemGroupElement, xmlsyntax.NewItemElement(group, include))
}

// RemoveItems removes every group element whose Include equals include.
// It reports whether anything was removed.
func (f *File) RemoveItems(group, include string) bool {
	var matches []*xmlsyntax.Element
	for _, el := range f.GetNodesByName(group) {
		if v, ok := el.AttrValue(IncludeAttribute); ok && v == include {
			matches = append(matches, el)
		}
	}
	if len(matches) == 0 {
		return false
	}
	f.UpdateDocument(func(d *xmlsyntax.Document) *xmlsyntax.Document {
		return d.RemoveElements(matches)
	})
	return true
}
