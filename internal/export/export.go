// Package export flattens result sections into the plain text placed on the clipboard.
package export

import (
	"fmt"
	"strings"

	"github.com/jonathan/shorts-optimizer/internal/types"
)

// SectionName identifies one section of an OptimizationResult
type SectionName string

// Result sections, in display order
const (
	SectionScript      SectionName = "script"
	SectionTitles      SectionName = "titles"
	SectionDescription SectionName = "description"
	SectionEditing     SectionName = "editing"
)

// SectionInfo pairs a section with its display title
type SectionInfo struct {
	Name  SectionName
	Title string
}

var sections = []SectionInfo{
	{Name: SectionScript, Title: "Shot-by-Shot Script Breakdown"},
	{Name: SectionTitles, Title: "Top 5 Searchable SEO Titles"},
	{Name: SectionDescription, Title: "SEO Optimized Video Description"},
	{Name: SectionEditing, Title: "Master Editing Strategy"},
}

// Sections returns every section in display order
func Sections() []SectionInfo {
	return append([]SectionInfo(nil), sections...)
}

// UnknownSectionError is returned for a section name that does not exist
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Name)
}

// ParseSection resolves a section name
func ParseSection(name string) (SectionName, error) {
	for _, s := range sections {
		if string(s.Name) == name {
			return s.Name, nil
		}
	}
	return "", &UnknownSectionError{Name: name}
}

// Shots renders each shot as "Shot <n>\nVisual: <v>\nAudio: <a>", separated by a blank line.
func Shots(shots []types.Shot) string {
	blocks := make([]string, 0, len(shots))
	for _, s := range shots {
		blocks = append(blocks, fmt.Sprintf("Shot %d\nVisual: %s\nAudio: %s", s.Number, s.Visual, s.Audio))
	}
	return strings.Join(blocks, "\n\n")
}

// List renders one entry per line
func List(items []string) string {
	return strings.Join(items, "\n")
}

// Text returns free text verbatim
func Text(text string) string {
	return text
}

// Section flattens the named section of result
func Section(result *types.OptimizationResult, name SectionName) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no result to export")
	}
	switch name {
	case SectionScript:
		return Shots(result.RefinedScript), nil
	case SectionTitles:
		return List(result.Titles), nil
	case SectionDescription:
		return Text(result.Description), nil
	case SectionEditing:
		return Text(result.EditingGuide), nil
	default:
		return "", &UnknownSectionError{Name: string(name)}
	}
}
