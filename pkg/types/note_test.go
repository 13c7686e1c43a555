// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrosUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Micros
		wantErr bool
	}{
		{name: "number", input: `1641031500000000`, want: 1641031500000000},
		{name: "string", input: `"1641031500000000"`, want: 1641031500000000},
		{name: "exponent", input: `1.6410315e15`, want: 1641031500000000},
		{name: "negative", input: `-1000000`, want: -1000000},
		{name: "word", input: `"yesterday"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
		{name: "exponent at int64 limit", input: `"9.223372036854775807e18"`, wantErr: true},
		{name: "exponent past int64 limit", input: `1e19`, wantErr: true},
		{name: "negative exponent past limit", input: `-1e19`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Micros
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestMicrosTime(t *testing.T) {
	m := Micros(1641031500000000)
	assert.Equal(t, time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC), m.Time())
	assert.Equal(t, time.UTC, m.Time().Location())
}

func TestBatchResult(t *testing.T) {
	r := BatchResult{Succeeded: 2, Skipped: 1}
	assert.Equal(t, 3, r.Total())
	assert.False(t, r.HasFailures())

	r.Failed = 1
	assert.True(t, r.HasFailures())
	assert.Equal(t, 4, r.Total())
}
