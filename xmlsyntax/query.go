package xmlsyntax

import "strings"

// Attr returns the attribute with the given name.
func (e *Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// AttrValue returns the unescaped value of the named attribute.
func (e *Element) AttrValue(name string) (string, bool) {
	a, ok := e.Attr(name)
	if !ok {
		return "", false
	}
	return a.Value(), true
}

// HasAttr reports whether the element carries the named attribute.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Text returns the decoded text content of the element's direct text children.
func (e *Element) Text() string {
	var b strings.Builder
	for _, c := range e.Children {
		if t, ok := c.(*Text); ok {
			b.WriteString(t.Value())
		}
	}
	return b.String()
}

// ChildElements returns the direct child elements.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// HasChildElements reports whether any direct child is an element.
func (e *Element) HasChildElements() bool {
	for _, c := range e.Children {
		if _, ok := c.(*Element); ok {
			return true
		}
	}
	return false
}

// Descendants returns every element below e in document order, e excluded.
func (e *Element) Descendants() []*Element {
	var out []*Element
	walkElements(e.Children, func(el *Element) { out = append(out, el) })
	return out
}

// FindAll returns every descendant element named name, in document order.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	walkElements(e.Children, func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
	})
	return out
}

// FindFirst returns the first descendant element named name, or nil.
func (e *Element) FindFirst(name string) *Element {
	all := e.FindAll(name)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// FirstChild returns the first direct child element named name, or nil.
func (e *Element) FirstChild(name string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Name == name {
			return el
		}
	}
	return nil
}

// Elements returns every element of the document in document order, the root included.
func (d *Document) Elements() []*Element {
	var out []*Element
	walkElements(d.Children, func(el *Element) { out = append(out, el) })
	return out
}

// GetNodesByName returns every element of the document named name.
func (d *Document) GetNodesByName(name string) []*Element {
	var out []*Element
	walkElements(d.Children, func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
	})
	return out
}

func walkElements(nodes []Node, visit func(*Element)) {
	for _, n := range nodes {
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		visit(el)
		walkElements(el.Children, visit)
	}
}
