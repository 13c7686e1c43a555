// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/notekit/pkg/types"
)

const (
	jsonExt      = ".json"
	defaultTitle = "NoTitle"
)

// Per-note failures. A note that fails with one of these is skipped and the
// run continues.
var (
	ErrInvalidJSON      = errors.New("invalid JSON")
	ErrInvalidRecord    = errors.New("invalid note record")
	ErrMissingLabelName = errors.New("label has no name")
	ErrMissingTimestamp = errors.New("missing timestamp")
)

// Record is the load result for one input file: either a decoded Note or
// the error that prevents converting it.
type Record struct {
	// Index is the 1-based position of the file in the run.
	Index int
	Path  string
	Note  types.Note
	Err   error
}

// OK reports whether the record decoded successfully.
func (r Record) OK() bool {
	return r.Err == nil
}

// wireNote mirrors the export format. Pointers distinguish absent keys
// from empty values.
type wireNote struct {
	TextContent             *string       `json:"textContent"`
	Title                   *string       `json:"title"`
	Labels                  []wireLabel   `json:"labels"`
	CreatedTimestampUsec    *types.Micros `json:"createdTimestampUsec"`
	UserEditedTimestampUsec *types.Micros `json:"userEditedTimestampUsec"`
}

type wireLabel struct {
	Name *string `json:"name"`
}

// FindInputs returns the .json files directly inside dir, sorted
// by name. The directory name is used literally, never as a pattern.
func FindInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) != jsonExt {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !e.Type().IsRegular() {
			// Symlinks count when they point at a regular file.
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, path)
	}
	return files, nil
}

// LoadRecord reads and decodes the file at path.
func LoadRecord(index int, path string) Record {
	rec := Record{Index: index, Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		rec.Err = fmt.Errorf("reading %s: %w", path, err)
		return rec
	}
	rec.Note, rec.Err = DecodeNote(data)
	return rec
}

// LoadRecords loads every path in order, numbering records from 1.
func LoadRecords(paths []string) []Record {
	records := make([]Record, len(paths))
	for i, p := range paths {
		records[i] = LoadRecord(i+1, p)
	}
	return records
}

// DecodeNote parses one exported note and applies defaults: empty text, a
// title of "NoTitle" when the key is absent, and no labels.
func DecodeNote(data []byte) (types.Note, error) {
	var w wireNote
	if err := json.Unmarshal(data, &w); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return types.Note{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return types.Note{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	note := types.Note{Title: defaultTitle}
	if w.TextContent != nil {
		note.TextContent = *w.TextContent
	}
	if w.Title != nil {
		note.Title = *w.Title
	}

	labels := make([]string, 0, len(w.Labels))
	for i, l := range w.Labels {
		if l.Name == nil {
			return types.Note{}, fmt.Errorf("%w: labels[%d]", ErrMissingLabelName, i)
		}
		labels = append(labels, *l.Name)
	}
	note.Labels = labels

	if w.CreatedTimestampUsec == nil {
		return types.Note{}, fmt.Errorf("%w: createdTimestampUsec", ErrMissingTimestamp)
	}
	if w.UserEditedTimestampUsec == nil {
		return types.Note{}, fmt.Errorf("%w: userEditedTimestampUsec", ErrMissingTimestamp)
	}
	note.Created = w.CreatedTimestampUsec.Time()
	note.Modified = w.UserEditedTimestampUsec.Time()

	return note, nil
}
