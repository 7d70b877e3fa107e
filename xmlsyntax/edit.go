package xmlsyntax

import "strings"

// AddChild returns a copy of e with n appended to its content.
// A self-closing element becomes a content element.
func (e *Element) AddChild(n Node) *Element {
	cp := e.toContent()
	cp.Children = append(cp.Children, n)
	return cp
}

// RemoveChild returns a copy of e without the direct child n.
func (e *Element) RemoveChild(n Node) *Element {
	cp := e.clone()
	cp.Children = cp.Children[:0]
	for _, c := range e.Children {
		if c != n {
			cp.Children = append(cp.Children, c)
		}
	}
	return cp
}

// RemoveAllChildren returns a copy of e with an empty content section.
func (e *Element) RemoveAllChildren() *Element {
	cp := e.clone()
	cp.Children = nil
	cp.EndLeading = ""
	return cp
}

// WithText returns a copy of e whose content is the single text value.
func (e *Element) WithText(value string) *Element {
	cp := e.toContent()
	cp.Children = nil
	if value != "" {
		cp.Children = []Node{NewText(value)}
	}
	cp.EndLeading = ""
	return cp
}

// WithAttr returns a copy of e with the named attribute set to value.
// An existing attribute keeps its position, trivia and quote style.
func (e *Element) WithAttr(name, value string) *Element {
	cp := e.clone()
	for i, a := range cp.Attrs {
		if a.Name != name {
			continue
		}
		if a.Quote == '\'' {
			a.Raw = strings.ReplaceAll(EscapeText(value), "'", "&apos;")
		} else {
			a.Raw = EscapeAttr(value)
		}
		cp.Attrs[i] = a
		return cp
	}
	cp.Attrs = append(cp.Attrs, NewAttr(name, value))
	return cp
}

// RemoveAttr returns a copy of e without the named attribute.
func (e *Element) RemoveAttr(name string) *Element {
	cp := e.clone()
	cp.Attrs = cp.Attrs[:0]
	for _, a := range e.Attrs {
		if a.Name != name {
			cp.Attrs = append(cp.Attrs, a)
		}
	}
	return cp
}

// WithLeading returns a copy of e with different leading trivia.
func (e *Element) WithLeading(leading string) *Element {
	cp := e.clone()
	cp.Leading = leading
	return cp
}

// ReplaceNode returns a copy of e in which the descendant old is replaced by n.
// If old is not below e, e itself is returned.
func (e *Element) ReplaceNode(old, n Node) *Element {
	children, changed := rewrite(e.Children, func(c Node) (Node, bool) {
		if c == old {
			return n, true
		}
		return nil, false
	})
	if !changed {
		return e
	}
	cp := e.clone()
	cp.Children = children
	return cp
}

func (e *Element) toContent() *Element {
	cp := e.clone()
	if cp.SelfClosing {
		cp.SelfClosing = false
		if len(cp.Attrs) == 0 {
			cp.CloseLeading = ""
		}
	}
	return cp
}

// ReplaceNode returns a document in which old is replaced by n.
// Every subtree that does not contain old is shared with d.
func (d *Document) ReplaceNode(old, n Node) *Document {
	return d.ReplaceNodes([]Node{old}, func(Node) Node { return n })
}

// ReplaceNodes replaces each of targets with fn(target). Targets nested inside
// another target are not visited; fn receives the original node.
func (d *Document) ReplaceNodes(targets []Node, fn func(Node) Node) *Document {
	if len(targets) == 0 {
		return d
	}
	set := make(map[Node]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}

	children, changed := rewrite(d.Children, func(c Node) (Node, bool) {
		if _, ok := set[c]; ok {
			return fn(c), true
		}
		return nil, false
	})
	if !changed {
		return d
	}
	cp := d.clone()
	cp.Children = children
	return cp
}

// ReplaceElements is ReplaceNodes for element targets.
func (d *Document) ReplaceElements(targets []*Element, fn func(*Element) *Element) *Document {
	nodes := make([]Node, len(targets))
	for i, t := range targets {
		nodes[i] = t
	}
	return d.ReplaceNodes(nodes, func(n Node) Node {
		if el := fn(n.(*Element)); el != nil {
			return el
		}
		return nil
	})
}

// RemoveNodes returns a document without the given nodes. The trivia of a
// removed node is dropped along with it.
func (d *Document) RemoveNodes(nodes ...Node) *Document {
	return d.ReplaceNodes(nodes, func(Node) Node { return nil })
}

// RemoveElements is RemoveNodes for element targets.
func (d *Document) RemoveElements(elements []*Element) *Document {
	nodes := make([]Node, len(elements))
	for i, el := range elements {
		nodes[i] = el
	}
	return d.RemoveNodes(nodes...)
}

// rewrite rebuilds nodes, asking visit about each node before descending into it.
// visit returns the replacement (nil removes the node) and whether it matched.
// Unchanged slices are returned as-is so untouched subtrees stay shared.
func rewrite(nodes []Node, visit func(Node) (Node, bool)) ([]Node, bool) {
	var out []Node
	changed := false

	for i, n := range nodes {
		repl, hit := visit(n)
		if !hit {
			if el, ok := n.(*Element); ok {
				if children, ch := rewrite(el.Children, visit); ch {
					cp := el.clone()
					cp.Children = children
					repl, hit = cp, true
				}
			}
		}

		if hit && !changed {
			changed = true
			out = append(make([]Node, 0, len(nodes)), nodes[:i]...)
		}
		if !changed {
			continue
		}
		if !hit {
			out = append(out, n)
		} else if repl != nil {
			out = append(out, repl)
		}
	}

	if !changed {
		return nodes, false
	}
	return out, true
}
