package project

import (
	"fmt"
	"strings"

	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// TargetsFile is a Directory.Build.targets file. Unlike File it accepts any
// root element.
type TargetsFile struct {
	doc *xmlsyntax.Document
}

// Target is a <Target> element of a targets file.
type Target struct {
	Name    string
	Element *xmlsyntax.Element
}

// CreateTargetsFile parses text. Empty text yields an empty <Project></Project>.
func CreateTargetsFile(text string) (*TargetsFile, error) {
	if strings.TrimSpace(text) == "" {
		text = emptyProject
	}
	doc, err := xmlsyntax.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse targets XML: %w", err)
	}
	return &TargetsFile{doc: doc}, nil
}

// GetTargets returns every Target element in document order.
func (t *TargetsFile) GetTargets() []Target {
	var out []Target
	for _, el := range t.doc.GetNodesByName(TargetElement) {
		name, _ := el.AttrValue(TargetNameAttribute)
		out = append(out, Target{Name: name, Element: el})
	}
	return out
}

// GetNodesByName returns every element named name.
func (t *TargetsFile) GetNodesByName(name string) []*xmlsyntax.Element {
	return t.doc.GetNodesByName(name)
}

// UpdateDocument replaces the tree with fn applied to it.
func (t *TargetsFile) UpdateDocument(fn func(*xmlsyntax.Document) *xmlsyntax.Document) {
	if next := fn(t.doc); next != nil {
		t.doc = next
	}
}

// ToXMLString renders the formatted document.
func (t *TargetsFile) ToXMLString() (string, error) {
	formatted, err := xmlsyntax.NewFormatter().Format(t.doc)
	if err != nil {
		return "", err
	}
	return formatted.String(), nil
}
