package solution

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	projectPattern = regexp.MustCompile(
		`(?s)Project\("(?P<typeGuid>.*?)"\)\s*=\s*"(?P<name>.*?)",\s*"(?P<path>.*?)",\s*"(?P<guid>.*?)"(?P<content>.*?)\bEndProject\b`,
	)
	nestedPattern        = regexp.MustCompile(`^\s*\{(.*?)\}\s*=\s*\{(.*?)\}\s*$`)
	nestedSectionPattern = regexp.MustCompile(`GlobalSection\(NestedProjects\)\s*=\s*preSolution`)
	solutionItemsPattern = regexp.MustCompile(`(?s)ProjectSection\(SolutionItems\)[^\n]*\n(.*?)EndProjectSection`)
)

// entry is one Project(...) block of the solution text.
type entry struct {
	name     string
	path     string
	guid     string
	typeGUID string
	body     string
	line     int
}

type content struct {
	projects []Project
	folders  []SolutionFolder
}

// ParseContent extracts the project entries of solution text. Solution
// folders and entries that are not project files are left out, but still
// take part in resolving each project's StructurePath.
func ParseContent(text string) ([]Project, error) {
	c, err := parseContent(text)
	if err != nil {
		return nil, err
	}
	return c.projects, nil
}

func parseContent(text string) (*content, error) {
	entries, err := parseEntries(text)
	if err != nil {
		return nil, err
	}

	nested, err := parseNested(text)
	if err != nil {
		return nil, err
	}

	byGUID := make(map[string]*entry, len(entries))
	for i := range entries {
		byGUID[entries[i].guid] = &entries[i]
	}

	c := &content{
		projects: []Project{},
		folders:  []SolutionFolder{},
	}

	for i := range entries {
		e := &entries[i]
		switch {
		case IsProjectPath(e.path):
			structure, err := structurePath(e, byGUID, nested)
			if err != nil {
				return nil, err
			}
			c.projects = append(c.projects, Project{
				Name:             e.name,
				Path:             ToSystemPath(e.path),
				StructurePath:    structure,
				GUID:             e.guid,
				TypeGUID:         e.typeGUID,
				ParentFolderGUID: nested[e.guid],
			})
		case e.typeGUID == ProjectTypeSolutionFolder:
			c.folders = append(c.folders, SolutionFolder{
				Name:             e.name,
				GUID:             e.guid,
				ParentFolderGUID: nested[e.guid],
				Items:            solutionItems(e.body),
			})
		}
	}

	return c, nil
}

func parseEntries(text string) ([]entry, error) {
	idx := map[string]int{}
	for i, name := range projectPattern.SubexpNames() {
		if name != "" {
			idx[name] = i
		}
	}

	var entries []entry
	for _, m := range projectPattern.FindAllStringSubmatchIndex(text, -1) {
		group := func(name string) string {
			i := idx[name]
			return text[m[2*i]:m[2*i+1]]
		}

		line := lineAt(text, m[0])
		typeGUID, err := parseGUID(group("typeGuid"), line)
		if err != nil {
			return nil, err
		}
		guid, err := parseGUID(group("guid"), line)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry{
			name:     group("name"),
			path:     group("path"),
			guid:     guid,
			typeGUID: typeGUID,
			body:     group("content"),
			line:     line,
		})
	}
	return entries, nil
}

// parseNested reads the NestedProjects section into a child to parent map.
func parseNested(text string) (map[string]string, error) {
	nested := map[string]string{}

	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if nestedSectionPattern.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nested, nil
	}

	for i := start; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.Contains(line, "EndGlobalSection") {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := nestedPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{
				Line:    i + 1,
				Message: fmt.Sprintf("%v: %q", ErrMalformedNestedProjectEntry, strings.TrimSpace(line)),
				Err:     ErrMalformedNestedProjectEntry,
			}
		}

		child, err := parseGUID(m[1], i+1)
		if err != nil {
			return nil, err
		}
		parent, err := parseGUID(m[2], i+1)
		if err != nil {
			return nil, err
		}
		nested[child] = parent
	}

	return nested, nil
}

// structurePath walks the parent chain of e, prepending each folder name.
// A parent GUID that names no entry ends the walk.
func structurePath(e *entry, byGUID map[string]*entry, nested map[string]string) (string, error) {
	path := e.name
	seen := map[string]bool{e.guid: true}

	for cur := e.guid; ; {
		parentGUID, ok := nested[cur]
		if !ok {
			return path, nil
		}
		parent, ok := byGUID[parentGUID]
		if !ok {
			return path, nil
		}
		if seen[parentGUID] {
			return "", &ParseError{
				Line:    e.line,
				Message: fmt.Sprintf("%v: nesting cycle through %s", ErrMalformedNestedProjectEntry, parentGUID),
				Err:     ErrMalformedNestedProjectEntry,
			}
		}
		seen[parentGUID] = true
		path = parent.name + string(filepath.Separator) + path
		cur = parentGUID
	}
}

func solutionItems(body string) []string {
	items := []string{}
	m := solutionItemsPattern.FindStringSubmatch(body)
	if m == nil {
		return items
	}
	for _, line := range strings.Split(m[1], "\n") {
		item, _, _ := strings.Cut(line, "=")
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, ToSystemPath(item))
		}
	}
	return items
}

func parseGUID(s string, line int) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", &ParseError{
			Line:    line,
			Message: fmt.Sprintf("%v: %q", ErrInvalidGuid, s),
			Err:     ErrInvalidGuid,
		}
	}
	return formatGUID(id), nil
}

func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}
