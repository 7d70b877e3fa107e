package xmlsyntax

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultIndent is one level of indentation in formatted output.
const DefaultIndent = "  "

// MaxDepth bounds element nesting during formatting. MSBuild files are shallow;
// anything deeper indicates a broken tree.
const MaxDepth = 10

// ErrDepthOverflow is returned when formatting descends past MaxDepth.
var ErrDepthOverflow = errors.New("xml element depth overflow")

// Formatter re-derives element indentation after tree edits.
//
// Each element is placed on its own line, indented by its depth. Blank lines
// the author put between elements survive because the newline count of the
// existing leading trivia is kept. Comments and text are written verbatim.
type Formatter struct {
	// Indent is the per-level indentation. Empty means DefaultIndent.
	Indent string
}

// NewFormatter creates a formatter with two-space indentation.
func NewFormatter() *Formatter {
	return &Formatter{Indent: DefaultIndent}
}

// Format returns a formatted copy of doc.
func (f *Formatter) Format(doc *Document) (*Document, error) {
	out := doc.clone()
	for i, n := range doc.Children {
		el, ok := n.(*Element)
		if !ok {
			continue
		}

		// The root stays on the first line unless a prolog precedes it.
		leading := ""
		if i > 0 {
			leading = newlines(el.Leading)
		}

		formatted, err := f.formatElement(el, 0, leading)
		if err != nil {
			return nil, err
		}
		out.Children[i] = formatted
	}
	return out, nil
}

// FormatString parses, formats and renders text.
func (f *Formatter) FormatString(text string) (string, error) {
	doc, err := Parse(text)
	if err != nil {
		return "", err
	}
	formatted, err := f.Format(doc)
	if err != nil {
		return "", err
	}
	return formatted.String(), nil
}

func (f *Formatter) formatElement(el *Element, depth int, leading string) (*Element, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: <%s> is nested deeper than %d levels", ErrDepthOverflow, el.Name, MaxDepth)
	}

	cp := el.clone()
	cp.Leading = leading

	if len(cp.Attrs) > 0 {
		for i := range cp.Attrs {
			cp.Attrs[i].Leading = " "
			cp.Attrs[i].BeforeEq = ""
			cp.Attrs[i].AfterEq = ""
		}
		if cp.SelfClosing {
			cp.CloseLeading = " "
		} else {
			cp.CloseLeading = ""
		}
	}

	if cp.SelfClosing {
		return cp, nil
	}

	indent := f.indent(depth)
	childIndent := indent + f.unit()
	hasElements := false

	for i, c := range cp.Children {
		child, ok := c.(*Element)
		if !ok {
			continue
		}
		hasElements = true
		formatted, err := f.formatElement(child, depth+1, newlines(child.Leading)+childIndent)
		if err != nil {
			return nil, err
		}
		cp.Children[i] = formatted
	}

	switch {
	case hasElements:
		cp.EndLeading = "\n" + indent
	case strings.Contains(cp.EndLeading, "\n"):
		cp.EndLeading = "\n" + indent
	}
	cp.EndTrailing = ""

	return cp, nil
}

func (f *Formatter) unit() string {
	if f.Indent == "" {
		return DefaultIndent
	}
	return f.Indent
}

func (f *Formatter) indent(depth int) string {
	return strings.Repeat(f.unit(), depth)
}

// newlines keeps the line breaks of existing trivia, at least one.
func newlines(trivia string) string {
	n := strings.Count(trivia, "\n")
	if n < 1 {
		n = 1
	}
	return strings.Repeat("\n", n)
}
