package modifier

import (
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"
)

// DocumentDiff is the pending change to one document.
type DocumentDiff struct {
	Path   string
	Kind   string
	Before string
	After  string
}

// Created reports whether the document does not exist on disk yet.
func (d DocumentDiff) Created() bool {
	return d.Before == ""
}

// LineDiffs returns a line-level diff of Before against After.
func (d DocumentDiff) LineDiffs() []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	before, after, lines := dmp.DiffLinesToChars(d.Before, d.After)
	return dmp.DiffCharsToLines(dmp.DiffMain(before, after, false), lines)
}

// Diff returns the documents whose formatted text differs from what is on
// disk, in the order Save writes them. Nothing is written.
func (m *SolutionModifier) Diff() ([]DocumentDiff, error) {
	var diffs []DocumentDiff
	for _, doc := range m.Documents() {
		after, err := doc.File.ToXMLString()
		if err != nil {
			return nil, fmt.Errorf("failed to format %s: %w", doc.Path, err)
		}

		before := ""
		exists, err := afero.Exists(m.fs, doc.Path)
		if err != nil {
			return nil, err
		}
		if exists {
			data, err := afero.ReadFile(m.fs, doc.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", doc.Path, err)
			}
			before = string(data)
		}

		if before != after {
			diffs = append(diffs, DocumentDiff{Path: doc.Path, Kind: doc.Kind, Before: before, After: after})
		}
	}
	return diffs, nil
}
