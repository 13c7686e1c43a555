// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Note holds the fields of one exported note after defaults are applied.
type Note struct {
	// Title is the note title, "NoTitle" when the export has none.
	Title string `json:"title" yaml:"title"`

	// TextContent is the raw note body.
	TextContent string `json:"text_content" yaml:"text_content"`

	// Labels lists label names in export order.
	Labels []string `json:"labels" yaml:"labels"`

	// Created is the creation time in UTC.
	Created time.Time `json:"created" yaml:"created"`

	// Modified is the last user edit time in UTC.
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Micros is a timestamp in microseconds since the Unix epoch. Exports carry
// it either as a JSON number or as a decimal string.
type Micros int64

// UnmarshalJSON accepts 1700000000000000, "1700000000000000", and numbers in
// exponent form, which are truncated toward zero.
func (m *Micros) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	s := string(bytes.TrimSpace(data))

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*m = Micros(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return fmt.Errorf("invalid microsecond timestamp %q", s)
	}
	*m = Micros(int64(f))
	return nil
}

// Time converts m to a UTC time.
func (m Micros) Time() time.Time {
	return time.UnixMicro(int64(m)).UTC()
}
