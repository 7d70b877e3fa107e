package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// WriteDiff renders a line diff in unified style: a header naming path,
// then every line prefixed with "+", "-" or " ". Unchanged runs longer than
// 2*context lines are collapsed to their edges.
func WriteDiff(w io.Writer, path string, diffs []diffmatchpatch.Diff, context int) error {
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path); err != nil {
		return err
	}

	for i, d := range diffs {
		lines := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			for _, line := range lines {
				if _, err := ColorAdded.Fprintln(w, "+"+line); err != nil {
					return err
				}
			}
		case diffmatchpatch.DiffDelete:
			for _, line := range lines {
				if _, err := ColorRemoved.Fprintln(w, "-"+line); err != nil {
					return err
				}
			}
		case diffmatchpatch.DiffEqual:
			for _, line := range collapse(lines, context, i == 0, i == len(diffs)-1) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// collapse keeps context lines next to each change. The first run has no
// change before it and the last none after it.
func collapse(lines []string, context int, first, last bool) []string {
	head, tail := context, context
	if first {
		head = 0
	}
	if last {
		tail = 0
	}

	if len(lines) <= head+tail {
		return prefix(lines)
	}

	out := prefix(lines[:head])
	out = append(out, fmt.Sprintf("@@ %d unchanged lines @@", len(lines)-head-tail))
	return append(out, prefix(lines[len(lines)-tail:])...)
}

func prefix(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = " " + line
	}
	return out
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// Diff writes a line diff of one document to the console output
func (c *Console) Diff(path string, diffs []diffmatchpatch.Diff) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = WriteDiff(c.out, path, diffs, 3)
}
