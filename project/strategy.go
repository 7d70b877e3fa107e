package project

import "github.com/willibrandon/dotnetproj/xmlsyntax"

// ModifyStrategy is a bulk edit: it selects elements of a document and
// returns the replacement for each. Returning nil removes the element.
type ModifyStrategy interface {
	SelectNodes(doc *xmlsyntax.Document) []*xmlsyntax.Element
	ApplyChanges(el *xmlsyntax.Element) *xmlsyntax.Element
}

// SetElementTextStrategy replaces the text of every element named Element.
type SetElementTextStrategy struct {
	Element string
	Value   string
}

// SelectNodes implements ModifyStrategy.
func (s SetElementTextStrategy) SelectNodes(doc *xmlsyntax.Document) []*xmlsyntax.Element {
	return doc.GetNodesByName(s.Element)
}

// ApplyChanges implements ModifyStrategy.
func (s SetElementTextStrategy) ApplyChanges(el *xmlsyntax.Element) *xmlsyntax.Element {
	return el.WithText(s.Value)
}

// RemoveAttributeStrategy strips Attribute from every element named Element.
type RemoveAttributeStrategy struct {
	Element   string
	Attribute string
}

// SelectNodes implements ModifyStrategy.
func (s RemoveAttributeStrategy) SelectNodes(doc *xmlsyntax.Document) []*xmlsyntax.Element {
	var out []*xmlsyntax.Element
	for _, el := range doc.GetNodesByName(s.Element) {
		if el.HasAttr(s.Attribute) {
			out = append(out, el)
		}
	}
	return out
}

// ApplyChanges implements ModifyStrategy.
func (s RemoveAttributeStrategy) ApplyChanges(el *xmlsyntax.Element) *xmlsyntax.Element {
	return el.RemoveAttr(s.Attribute)
}
