// Package xmlsyntax provides a full-fidelity XML syntax tree for MSBuild files.
//
// Parsing keeps every byte of the input: whitespace between nodes is stored as
// leading trivia on the node that follows it, attribute spacing and quote style
// are recorded per attribute, and comments, processing instructions and CDATA
// sections are kept verbatim. Rendering an unmodified tree reproduces the input
// exactly.
//
// Trees are persistent. Edit operations never mutate a node; they return a new
// node (or document) that shares every untouched subtree with the original.
//
// Example:
//
//	doc, err := xmlsyntax.Parse(`<Project><PropertyGroup /></Project>`)
//	if err != nil {
//	    return err
//	}
//	group := doc.Root().FindFirst("PropertyGroup")
//	doc = doc.ReplaceNode(group, group.AddChild(xmlsyntax.NewPropertyElement("Nullable", "enable")))
package xmlsyntax

import (
	"strings"
)

// Node is a node of the syntax tree: *Element, *Text, *Comment, *ProcInst or *Directive.
type Node interface {
	// LeadingTrivia returns the whitespace that precedes the node.
	LeadingTrivia() string

	writeTo(b *strings.Builder)
}

// ElementKind distinguishes self-closing elements from elements with a content section.
type ElementKind int

const (
	// EmptyElement is a self-closing element such as <Compile Include="a.cs" />.
	EmptyElement ElementKind = iota
	// ContentElement has a start tag, content and an end tag.
	ContentElement
)

// String returns the kind name.
func (k ElementKind) String() string {
	if k == EmptyElement {
		return "EmptyElement"
	}
	return "ContentElement"
}

// Attr is an attribute of an element with its surrounding trivia.
type Attr struct {
	// Leading is the whitespace before the attribute name.
	Leading string

	// Name is the attribute name including any namespace prefix.
	Name string

	// BeforeEq and AfterEq are the whitespace around '='.
	BeforeEq string
	AfterEq  string

	// Quote is the quote character, '"' or '\''.
	Quote byte

	// Raw is the attribute value as written in the source, still escaped.
	Raw string
}

// Value returns the unescaped attribute value.
func (a Attr) Value() string {
	return unescape(a.Raw)
}

func (a Attr) writeTo(b *strings.Builder) {
	q := a.Quote
	if q == 0 {
		q = '"'
	}
	b.WriteString(a.Leading)
	b.WriteString(a.Name)
	b.WriteString(a.BeforeEq)
	b.WriteByte('=')
	b.WriteString(a.AfterEq)
	b.WriteByte(q)
	b.WriteString(a.Raw)
	b.WriteByte(q)
}

// Element is an XML element.
type Element struct {
	// Leading is the whitespace before '<'.
	Leading string

	// Name is the tag name including any namespace prefix.
	Name string

	// Attrs holds the attributes in source order.
	Attrs []Attr

	// CloseLeading is the whitespace between the last attribute (or the name) and '>' or '/>'.
	CloseLeading string

	// SelfClosing reports whether the element is written as <Name ... />.
	SelfClosing bool

	// Children holds the content of a content element.
	Children []Node

	// EndLeading is the whitespace before '</'.
	EndLeading string

	// EndTrailing is the whitespace between the end tag name and '>'.
	EndTrailing string
}

// LeadingTrivia implements Node.
func (e *Element) LeadingTrivia() string { return e.Leading }

// Kind reports whether the element is self-closing or has content.
func (e *Element) Kind() ElementKind {
	if e.SelfClosing {
		return EmptyElement
	}
	return ContentElement
}

func (e *Element) writeTo(b *strings.Builder) {
	b.WriteString(e.Leading)
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		a.writeTo(b)
	}
	b.WriteString(e.CloseLeading)
	if e.SelfClosing {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.Children {
		c.writeTo(b)
	}
	b.WriteString(e.EndLeading)
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteString(e.EndTrailing)
	b.WriteByte('>')
}

// String renders the element and its subtree, including its leading trivia.
func (e *Element) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

// clone returns a shallow copy whose slices may be modified independently.
func (e *Element) clone() *Element {
	cp := *e
	cp.Attrs = append([]Attr(nil), e.Attrs...)
	cp.Children = append([]Node(nil), e.Children...)
	return &cp
}

// Text is a run of character data. Raw may mix escaped text and CDATA sections.
type Text struct {
	Raw string
}

// LeadingTrivia implements Node. Whitespace inside text is content, not trivia.
func (t *Text) LeadingTrivia() string { return "" }

func (t *Text) writeTo(b *strings.Builder) { b.WriteString(t.Raw) }

// Value returns the decoded character data.
func (t *Text) Value() string {
	const open, end = "<![CDATA[", "]]>"

	raw := t.Raw
	if !strings.Contains(raw, open) {
		return unescape(raw)
	}

	var b strings.Builder
	for {
		i := strings.Index(raw, open)
		if i < 0 {
			b.WriteString(unescape(raw))
			return b.String()
		}
		b.WriteString(unescape(raw[:i]))
		raw = raw[i+len(open):]
		j := strings.Index(raw, end)
		if j < 0 {
			b.WriteString(raw)
			return b.String()
		}
		b.WriteString(raw[:j])
		raw = raw[j+len(end):]
	}
}

// Comment is an XML comment kept verbatim, delimiters included.
type Comment struct {
	Leading string
	Raw     string
}

// LeadingTrivia implements Node.
func (c *Comment) LeadingTrivia() string { return c.Leading }

func (c *Comment) writeTo(b *strings.Builder) {
	b.WriteString(c.Leading)
	b.WriteString(c.Raw)
}

// ProcInst is a processing instruction such as the XML declaration.
type ProcInst struct {
	Leading string
	Raw     string
}

// LeadingTrivia implements Node.
func (p *ProcInst) LeadingTrivia() string { return p.Leading }

func (p *ProcInst) writeTo(b *strings.Builder) {
	b.WriteString(p.Leading)
	b.WriteString(p.Raw)
}

// Directive is a <!...> declaration other than a comment, such as DOCTYPE.
type Directive struct {
	Leading string
	Raw     string
}

// LeadingTrivia implements Node.
func (d *Directive) LeadingTrivia() string { return d.Leading }

func (d *Directive) writeTo(b *strings.Builder) {
	b.WriteString(d.Leading)
	b.WriteString(d.Raw)
}

// Document is a parsed XML document.
type Document struct {
	// BOM reports whether the source started with a UTF-8 byte order mark.
	BOM bool

	// Children holds the top-level nodes: prolog, root element and trailing comments.
	Children []Node

	// Trailing is the whitespace after the last node.
	Trailing string
}

// Root returns the first top-level element, or nil for a document without one.
func (d *Document) Root() *Element {
	for _, n := range d.Children {
		if el, ok := n.(*Element); ok {
			return el
		}
	}
	return nil
}

// String renders the document.
func (d *Document) String() string {
	var b strings.Builder
	if d.BOM {
		b.WriteString(bom)
	}
	for _, n := range d.Children {
		n.writeTo(&b)
	}
	b.WriteString(d.Trailing)
	return b.String()
}

func (d *Document) clone() *Document {
	cp := *d
	cp.Children = append([]Node(nil), d.Children...)
	return &cp
}

const bom = "\ufeff"
