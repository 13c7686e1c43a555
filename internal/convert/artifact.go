// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/notekit/pkg/types"
)

// Artifact is the Markdown rendering of one note.
type Artifact struct {
	// Name is the output filename, <YYYY-MM-DD-HH-MM>-<title>.md.
	Name string

	// Title is the sanitized and possibly shortened title used in the
	// filename, the front matter, and the heading.
	Title    string
	Created  string
	Modified string
	Labels   []string
	Body     string
}

// NewArtifact derives the filename, dates, and title for note.
func NewArtifact(note types.Note, df types.DayFormat) Artifact {
	stamp := FilenameTimestamp(note.Created)
	title := FitTitle(stamp, SanitizeTitle(note.Title))
	return Artifact{
		Name:     stamp + "-" + title + markdownExt,
		Title:    title,
		Created:  FormatDate(note.Created, df),
		Modified: FormatDate(note.Modified, df),
		Labels:   note.Labels,
		Body:     note.TextContent,
	}
}

// Render produces the file content: front matter, a level-3 heading, one
// bullet per label, a blank line, and the body. Front matter values are
// written verbatim, without YAML quoting.
func (a Artifact) Render() []byte {
	var b bytes.Buffer
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", a.Title)
	fmt.Fprintf(&b, "date created: %s\n", a.Created)
	fmt.Fprintf(&b, "date modified: %s\n", a.Modified)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "### %s\n\n", a.Title)
	for _, label := range a.Labels {
		fmt.Fprintf(&b, "* %s\n", label)
	}
	b.WriteString("\n")
	b.WriteString(a.Body)
	return b.Bytes()
}

// Write renders the artifact into dir and returns the written path.
func (a Artifact) Write(dir string) (string, error) {
	path := filepath.Join(dir, a.Name)
	if err := os.WriteFile(path, a.Render(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
