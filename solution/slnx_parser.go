package solution

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// SlnxParser parses XML-based .slnx files.
type SlnxParser struct {
	fs afero.Fs
}

// NewSlnxParser creates a .slnx parser reading from fs.
func NewSlnxParser(fs afero.Fs) *SlnxParser {
	return &SlnxParser{fs: fs}
}

// CanParse checks if this parser supports the given file
func (p *SlnxParser) CanParse(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".slnx"
}

type slnxDocument struct {
	XMLName  xml.Name      `xml:"Solution"`
	Folders  []slnxFolder  `xml:"Folder"`
	Projects []slnxProject `xml:"Project"`
	Props    slnxProps     `xml:"Properties"`
}

// slnxFolder names are slash-delimited paths such as /src/libs/.
type slnxFolder struct {
	Name     string        `xml:"Name,attr"`
	Projects []slnxProject `xml:"Project"`
	Files    []slnxFile    `xml:"File"`
}

type slnxProject struct {
	Path string `xml:"Path,attr"`
	Type string `xml:"Type,attr"`
	ID   string `xml:"Id,attr"`
}

type slnxFile struct {
	Path string `xml:"Path,attr"`
}

type slnxProps struct {
	Properties []slnxProperty `xml:"Property"`
}

type slnxProperty struct {
	Name  string `xml:"Name,attr"`
	Value string `xml:"Value,attr"`
}

// slnxNamespace seeds the name-based GUIDs of entries without an Id.
var slnxNamespace = uuid.MustParse("5c3b43d2-6a2d-4a51-9b1e-0b7c6a9e2f10")

// Parse reads and parses a .slnx file. Folders and projects without an
// explicit Id get a GUID derived from their path, so repeated parses agree.
func (p *SlnxParser) Parse(path string) (*Solution, error) {
	if !p.CanParse(path) {
		return nil, &ParseError{FilePath: path, Message: "not a .slnx file"}
	}

	text, err := readSolutionText(p.fs, path)
	if err != nil {
		return nil, err
	}

	var doc slnxDocument
	if err := xml.NewDecoder(strings.NewReader(text)).Decode(&doc); err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{
				FilePath: path,
				Line:     syntaxErr.Line,
				Message:  fmt.Sprintf("XML syntax error: %v", syntaxErr.Msg),
				Err:      err,
			}
		}
		return nil, &ParseError{FilePath: path, Message: fmt.Sprintf("failed to parse XML: %v", err), Err: err}
	}

	filePath := filepath.Clean(path)
	sol := &Solution{
		FilePath:        filePath,
		SolutionDir:     filepath.Dir(filePath),
		FormatVersion:   "12.00",
		Projects:        []Project{},
		SolutionFolders: []SolutionFolder{},
	}

	for _, prop := range doc.Props.Properties {
		switch prop.Name {
		case "VisualStudioVersion":
			sol.VisualStudioVersion = prop.Value
		case "MinimumVisualStudioVersion":
			sol.MinimumVisualStudioVersion = prop.Value
		}
	}

	folderGUIDs := map[string]string{}
	for _, folder := range doc.Folders {
		p.addFolder(sol, folder, folderGUIDs)
	}

	for _, proj := range doc.Projects {
		sol.Projects = append(sol.Projects, p.convertProject(proj, "", nil))
	}
	for _, folder := range doc.Folders {
		segments := folderSegments(folder.Name)
		parent := folderGUIDs[strings.Join(segments, "/")]
		for _, proj := range folder.Projects {
			sol.Projects = append(sol.Projects, p.convertProject(proj, parent, segments))
		}
	}

	return sol, nil
}

// addFolder records folder and any ancestors not declared on their own.
func (p *SlnxParser) addFolder(sol *Solution, folder slnxFolder, guids map[string]string) {
	segments := folderSegments(folder.Name)
	parent := ""
	for i := range segments {
		key := strings.Join(segments[:i+1], "/")
		guid, ok := guids[key]
		if !ok {
			guid = formatGUID(uuid.NewSHA1(slnxNamespace, []byte("folder:"+key)))
			guids[key] = guid
			sol.SolutionFolders = append(sol.SolutionFolders, SolutionFolder{
				Name:             segments[i],
				GUID:             guid,
				ParentFolderGUID: parent,
				Items:            []string{},
			})
		}
		parent = guid
	}

	for i := range sol.SolutionFolders {
		if sol.SolutionFolders[i].GUID != parent {
			continue
		}
		for _, file := range folder.Files {
			sol.SolutionFolders[i].Items = append(sol.SolutionFolders[i].Items, ToSystemPath(file.Path))
		}
	}
}

func (p *SlnxParser) convertProject(proj slnxProject, parentGUID string, folders []string) Project {
	projectPath := ToSystemPath(proj.Path)
	name := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))

	guid := formatGUID(uuid.NewSHA1(slnxNamespace, []byte("project:"+NormalizePath(proj.Path))))
	if id, err := uuid.Parse(proj.ID); err == nil {
		guid = formatGUID(id)
	}

	structure := append(append([]string{}, folders...), name)
	return Project{
		Name:             name,
		Path:             projectPath,
		StructurePath:    filepath.Join(structure...),
		GUID:             guid,
		TypeGUID:         projectTypeFromPath(projectPath),
		ParentFolderGUID: parentGUID,
	}
}

func folderSegments(name string) []string {
	var segments []string
	for _, s := range strings.Split(name, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func projectTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vbproj":
		return ProjectTypeVBProject
	case ".fsproj":
		return ProjectTypeFSProject
	default:
		return ProjectTypeCSProjectSDK
	}
}
