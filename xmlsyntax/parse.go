package xmlsyntax

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMismatchedTag is returned when an end tag does not close the innermost open element.
	ErrMismatchedTag = errors.New("mismatched end tag")

	// ErrUnclosedElement is returned when the input ends inside an element.
	ErrUnclosedElement = errors.New("unclosed element")

	// ErrUnexpectedEndTag is returned for an end tag with no open element.
	ErrUnexpectedEndTag = errors.New("unexpected end tag")
)

// SyntaxError describes malformed XML input.
type SyntaxError struct {
	// Offset is the byte offset of the token that failed.
	Offset int64

	// Err is the underlying decoder or structural error.
	Err error
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses text into a full-fidelity document.
//
// Empty input yields a document without a root element; callers decide what
// an empty file means for them.
func Parse(text string) (*Document, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes parses src into a full-fidelity document.
func ParseBytes(src []byte) (*Document, error) {
	doc := &Document{}
	if bytes.HasPrefix(src, []byte(bom)) {
		doc.BOM = true
		src = src[len(bom):]
	}

	p := &parser{src: src, doc: doc}
	if err := p.run(); err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	src     []byte
	doc     *Document
	stack   []*Element
	pending string
}

func (p *parser) run() error {
	d := xml.NewDecoder(bytes.NewReader(p.src))
	// The declared encoding is informational; project files are read as UTF-8.
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var prev int64
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &SyntaxError{Offset: prev, Err: err}
		}

		end := d.InputOffset()
		raw := string(p.src[prev:end])
		offset := prev
		prev = end

		switch tok.(type) {
		case xml.StartElement:
			el, err := lexStartTag(raw)
			if err != nil {
				return &SyntaxError{Offset: offset, Err: err}
			}
			el.Leading = p.takePending()
			p.appendNode(el)
			p.stack = append(p.stack, el)

		case xml.EndElement:
			if len(p.stack) == 0 {
				return &SyntaxError{Offset: offset, Err: ErrUnexpectedEndTag}
			}
			top := p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]

			// The decoder synthesizes the end of <a/> without consuming input.
			if raw == "" {
				continue
			}

			name, trailing := lexEndTag(raw)
			if name != top.Name {
				return &SyntaxError{
					Offset: offset,
					Err:    fmt.Errorf("%w: </%s> closes <%s>", ErrMismatchedTag, name, top.Name),
				}
			}
			top.EndLeading = p.takePending()
			top.EndTrailing = trailing

		case xml.CharData:
			if isSpace(raw) {
				p.pending += raw
				continue
			}
			// A line break ending the text belongs to whatever follows it,
			// so the formatter can re-indent that node without growing the text.
			text, rest := splitTrailingBreak(raw)
			p.appendNode(&Text{Raw: p.takePending() + text})
			p.pending = rest

		case xml.Comment:
			p.appendNode(&Comment{Leading: p.takePending(), Raw: raw})

		case xml.ProcInst:
			p.appendNode(&ProcInst{Leading: p.takePending(), Raw: raw})

		case xml.Directive:
			p.appendNode(&Directive{Leading: p.takePending(), Raw: raw})
		}
	}

	if len(p.stack) > 0 {
		return &SyntaxError{
			Offset: prev,
			Err:    fmt.Errorf("%w: <%s>", ErrUnclosedElement, p.stack[len(p.stack)-1].Name),
		}
	}

	p.doc.Trailing = p.takePending()
	return nil
}

func (p *parser) appendNode(n Node) {
	if len(p.stack) == 0 {
		p.doc.Children = append(p.doc.Children, n)
		return
	}
	top := p.stack[len(p.stack)-1]
	top.Children = append(top.Children, n)
}

// splitTrailingBreak cuts raw at the start of its trailing whitespace when
// that whitespace contains a newline.
func splitTrailingBreak(raw string) (string, string) {
	text := strings.TrimRight(raw, " \t\r\n")
	rest := raw[len(text):]
	if !strings.Contains(rest, "\n") {
		return raw, ""
	}
	return text, rest
}

func (p *parser) takePending() string {
	s := p.pending
	p.pending = ""
	return s
}

// lexStartTag splits a start tag the decoder has already validated into
// name, attributes and the trivia between them.
func lexStartTag(raw string) (*Element, error) {
	if len(raw) < 2 || raw[0] != '<' || raw[len(raw)-1] != '>' {
		return nil, fmt.Errorf("malformed start tag %q", raw)
	}

	s := &scanner{s: raw, i: 1}
	el := &Element{Name: s.until(isNameEnd)}

	for {
		ws := s.until(func(c byte) bool { return !isSpaceByte(c) })
		if s.done() {
			return nil, fmt.Errorf("malformed start tag %q", raw)
		}

		switch s.peek() {
		case '/':
			el.CloseLeading = ws
			el.SelfClosing = true
			return el, nil
		case '>':
			el.CloseLeading = ws
			return el, nil
		}

		attr := Attr{Leading: ws}
		attr.Name = s.until(func(c byte) bool { return isSpaceByte(c) || c == '=' })
		attr.BeforeEq = s.until(func(c byte) bool { return !isSpaceByte(c) })
		if s.done() || s.peek() != '=' {
			return nil, fmt.Errorf("attribute %q without value in %q", attr.Name, raw)
		}
		s.i++
		attr.AfterEq = s.until(func(c byte) bool { return !isSpaceByte(c) })
		if s.done() || (s.peek() != '"' && s.peek() != '\'') {
			return nil, fmt.Errorf("unquoted attribute %q in %q", attr.Name, raw)
		}
		attr.Quote = s.peek()
		s.i++
		attr.Raw = s.until(func(c byte) bool { return c == attr.Quote })
		if s.done() {
			return nil, fmt.Errorf("unterminated attribute %q in %q", attr.Name, raw)
		}
		s.i++
		el.Attrs = append(el.Attrs, attr)
	}
}

// lexEndTag returns the name of an end tag and the whitespace before its '>'.
func lexEndTag(raw string) (name, trailing string) {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "</"), ">")
	i := strings.IndexAny(body, " \t\r\n")
	if i < 0 {
		return body, ""
	}
	return body[:i], body[i:]
}

type scanner struct {
	s string
	i int
}

func (s *scanner) done() bool { return s.i >= len(s.s) }

func (s *scanner) peek() byte { return s.s[s.i] }

// until consumes bytes up to the first one for which stop reports true.
func (s *scanner) until(stop func(byte) bool) string {
	start := s.i
	for s.i < len(s.s) && !stop(s.s[s.i]) {
		s.i++
	}
	return s.s[start:s.i]
}

func isNameEnd(c byte) bool {
	return isSpaceByte(c) || c == '/' || c == '>'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpaceByte(s[i]) {
			return false
		}
	}
	return true
}
