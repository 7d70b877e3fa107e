package modifier

import (
	"github.com/willibrandon/dotnetproj/project"
	"github.com/willibrandon/dotnetproj/xmlsyntax"
)

// SetTargetFrameworkStrategy replaces the text of every TargetFramework
// element. Projects that declare TargetFrameworks instead are left alone.
type SetTargetFrameworkStrategy struct {
	Value string
}

// NewSetTargetFrameworkStrategy returns a strategy setting the framework to value.
func NewSetTargetFrameworkStrategy(value string) SetTargetFrameworkStrategy {
	return SetTargetFrameworkStrategy{Value: value}
}

// SelectNodes implements project.ModifyStrategy.
func (s SetTargetFrameworkStrategy) SelectNodes(doc *xmlsyntax.Document) []*xmlsyntax.Element {
	return doc.GetNodesByName(project.TargetFrameworkProperty)
}

// ApplyChanges implements project.ModifyStrategy.
func (s SetTargetFrameworkStrategy) ApplyChanges(el *xmlsyntax.Element) *xmlsyntax.Element {
	return el.WithText(s.Value)
}
