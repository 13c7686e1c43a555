// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/notekit/pkg/types"
)

const (
	// MaxFilenameLength caps artifact filenames, in bytes.
	MaxFilenameLength = 255

	markdownExt        = ".md"
	filenameTimeLayout = "2006-01-02-15-04"
	dayOfMonthLayout   = "Monday, January 02 2006, 15:04 PM"
)

var nonAlnum = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// SanitizeTitle replaces every run of characters that are not letters or
// digits with a single underscore.
func SanitizeTitle(title string) string {
	return nonAlnum.ReplaceAllString(title, "_")
}

// FilenameTimestamp renders t as YYYY-MM-DD-HH-MM in UTC.
func FilenameTimestamp(t time.Time) string {
	return t.UTC().Format(filenameTimeLayout)
}

// FormatDate renders t in UTC as "Monday, January 02 2006, 15:04 PM". With
// WeekdayIndex the day of the month is replaced by the weekday number.
// The hour is always 24-hour even though an AM/PM marker follows it.
func FormatDate(t time.Time, df types.DayFormat) string {
	t = t.UTC()
	if df != types.WeekdayIndex {
		return t.Format(dayOfMonthLayout)
	}
	return fmt.Sprintf("%s, %s %d %s, %s",
		t.Weekday(), t.Month(), int(t.Weekday()), t.Format("2006"), t.Format("15:04 PM"))
}

// FitTitle shortens title from the end so that stamp-title.md fits in
// MaxFilenameLength bytes. Multi-byte characters are never split.
func FitTitle(stamp, title string) string {
	budget := MaxFilenameLength - len(stamp) - len("-") - len(markdownExt)
	if budget <= 0 {
		return ""
	}
	if len(title) <= budget {
		return title
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut]
}

// ArtifactName composes the Markdown filename for a note created at created
// with the given sanitized title.
func ArtifactName(created time.Time, title string) string {
	stamp := FilenameTimestamp(created)
	return stamp + "-" + FitTitle(stamp, title) + markdownExt
}
