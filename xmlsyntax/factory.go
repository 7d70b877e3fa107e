package xmlsyntax

import (
	"html"
	"strings"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

// EscapeText escapes s for use as character data.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

func unescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// NewElement creates an element with an empty content section: <name></name>.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// NewEmptyElement creates a self-closing element: <name />.
func NewEmptyElement(name string) *Element {
	return &Element{Name: name, SelfClosing: true, CloseLeading: " "}
}

// NewAttr creates a double-quoted attribute preceded by a single space.
func NewAttr(name, value string) Attr {
	return Attr{Leading: " ", Name: name, Quote: '"', Raw: EscapeAttr(value)}
}

// NewText creates a text node holding value.
func NewText(value string) *Text {
	return &Text{Raw: EscapeText(value)}
}

// NewComment creates a comment node. The text must not contain "--".
func NewComment(text string) *Comment {
	return &Comment{Raw: "<!--" + text + "-->"}
}

// NewPropertyElement creates <name>value</name>.
func NewPropertyElement(name, value string) *Element {
	el := NewElement(name)
	if value != "" {
		el.Children = []Node{NewText(value)}
	}
	return el
}

// NewItemElement creates a self-closing item element with an Include attribute
// followed by the given metadata attributes, given as name/value pairs.
func NewItemElement(name, include string, metadata ...string) *Element {
	el := NewEmptyElement(name)
	el.Attrs = append(el.Attrs, NewAttr("Include", include))
	for i := 0; i+1 < len(metadata); i += 2 {
		el.Attrs = append(el.Attrs, NewAttr(metadata[i], metadata[i+1]))
	}
	return el
}
