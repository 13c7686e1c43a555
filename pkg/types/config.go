// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// DayFormat selects the number printed after the month name in
// human-readable note dates.
type DayFormat string

const (
	// DayOfMonth prints the zero-padded day of the month (e.g. "March 05").
	DayOfMonth DayFormat = "day-of-month"

	// WeekdayIndex prints the weekday as a number, 0 for Sunday through 6 for
	// Saturday. Older exports of this tool used this form.
	WeekdayIndex DayFormat = "weekday-index"
)

// Error codes attached to configuration errors.
const (
	CodeConvertConfigInvalid = "CONVERT_CONFIG_INVALID"
	CodeGroupConfigInvalid   = "GROUP_CONFIG_INVALID"
)

// ConvertConfig holds settings for the note converter.
type ConvertConfig struct {
	// InputDir is the directory holding exported .json note files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the generated Markdown files. It is cleared at the
	// start of every run (default "data/markdown").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DayFormat controls the day field of formatted dates (default day-of-month).
	DayFormat DayFormat `json:"day_format" yaml:"day_format"`

	// Strict makes a run with any failed note report an error.
	Strict bool `json:"strict" yaml:"strict"`
}

// Validate checks that the directories are usable and that clearing
// OutputDir cannot touch InputDir. Failures carry the validation category.
func (c ConvertConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.InputDir, validation.Required, validation.By(existingDir)),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.DayFormat, validation.In(DayOfMonth, WeekdayIndex)),
	)
	if err == nil && contains(c.OutputDir, c.InputDir) {
		err = fmt.Errorf("output_dir %s contains input_dir %s and would be cleared", c.OutputDir, c.InputDir)
	}
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid convert configuration: "+err.Error()).
			WithTextCode(CodeConvertConfigInvalid)
	}
	return nil
}

// GroupConfig holds settings for the year grouper.
type GroupConfig struct {
	// InputDir is the root scanned for Markdown files; year directories are
	// created directly beneath it.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// DryRun logs planned moves without touching the filesystem.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// Validate checks that InputDir names an existing directory.
func (c GroupConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.InputDir, validation.Required, validation.By(existingDir)),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid group configuration: "+err.Error()).
			WithTextCode(CodeGroupConfigInvalid)
	}
	return nil
}

// LogConfig selects the level and output format of the console logger.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is one of console, json, pretty (default console).
	Format string `json:"format" yaml:"format"`
}

// LedgerConfig locates the optional SQLite run ledger.
type LedgerConfig struct {
	// Path is the database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`
}

func existingDir(value any) error {
	dir, _ := value.(string)
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return validation.NewError("validation_dir_missing", "directory does not exist")
		}
		return err
	}
	if !info.IsDir() {
		return validation.NewError("validation_not_dir", "not a directory")
	}
	return nil
}

// contains reports whether child is parent itself or lies beneath it.
func contains(parent, child string) bool {
	p, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	c, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
