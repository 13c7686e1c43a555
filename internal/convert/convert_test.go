// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notekit/internal/logging/logtest"
	"github.com/pdiddy/notekit/pkg/types"
)

// fakeRecorder keeps every event and can run a hook on each one.
type fakeRecorder struct {
	events []types.RunEvent
	err    error
	hook   func(ev types.RunEvent)
}

func (f *fakeRecorder) Record(ctx context.Context, ev types.RunEvent) error {
	f.events = append(f.events, ev)
	if f.hook != nil {
		f.hook(ev)
	}
	return f.err
}

func noteJSON(title string, created time.Time, labels ...string) string {
	var ls []string
	for _, l := range labels {
		ls = append(ls, fmt.Sprintf(`{"name":%q}`, l))
	}
	return fmt.Sprintf(`{"title":%q,"textContent":"body of %s","labels":[%s],"createdTimestampUsec":%d,"userEditedTimestampUsec":%d}`,
		title, title, strings.Join(ls, ","), created.UnixMicro(), created.Add(time.Hour).UnixMicro())
}

// setupDirs creates input and output directories and writes files into input.
func setupDirs(t *testing.T, files map[string]string) (inDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	inDir = filepath.Join(root, "json")
	outDir = filepath.Join(root, "markdown")
	require.NoError(t, os.MkdirAll(inDir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(inDir, name), []byte(content), 0o644))
	}
	return inDir, outDir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestConverterRun(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	may := time.Date(2023, time.May, 2, 15, 30, 0, 0, time.UTC)

	inDir, outDir := setupDirs(t, map[string]string{
		"01-groceries.json":  noteJSON("Groceries", jan, "home"),
		"02-broken.json":     `{"title": "oops"`,
		"03-badlabel.json":   `{"labels":[{"color":"red"}],"createdTimestampUsec":1,"userEditedTimestampUsec":1}`,
		"04-notime.json":     `{"title":"no time"}`,
		"05-ideas.json":      noteJSON("Ideas / plans", may),
		"06-unlabelled.json": fmt.Sprintf(`{"createdTimestampUsec":%d,"userEditedTimestampUsec":%d}`, may.Add(time.Minute).UnixMicro(), may.UnixMicro()),
		"readme.txt":         "ignored",
	})

	logs := &logtest.Recorder{}
	rec := &fakeRecorder{}
	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir},
		WithLogger(logs), WithRecorder(rec))
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := conv.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, 6, result.Total())
	assert.Contains(t, out.String(), "Batch summary: 3 written, 3 failed (total: 6)")

	assert.Equal(t, []string{
		"2022-01-01-10-05-Groceries.md",
		"2023-05-02-15-30-Ideas_plans.md",
		"2023-05-02-15-31-NoTitle.md",
	}, listDir(t, outDir))

	data, err := os.ReadFile(filepath.Join(outDir, "2023-05-02-15-31-NoTitle.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n* ")

	errorsLogged := logs.Level("error")
	require.Len(t, errorsLogged, 3)
	assert.True(t, logs.Contains("02-broken.json"))
	assert.True(t, logs.Contains("03-badlabel.json"))
	assert.True(t, logs.Contains("04-notime.json"))

	require.Len(t, rec.events, 6)
	var written, failed int
	for _, ev := range rec.events {
		switch ev.Status {
		case types.EventWritten:
			written++
			assert.FileExists(t, ev.Target)
		case types.EventFailed:
			failed++
			assert.NotEmpty(t, ev.Detail)
		}
	}
	assert.Equal(t, 3, written)
	assert.Equal(t, 3, failed)
}

func TestConverterRun_ClearsPreviousOutput(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{"a.json": noteJSON("Fresh", jan)})

	require.NoError(t, os.MkdirAll(filepath.Join(outDir, "stale-dir", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "2019-01-01-00-00-Old.md"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "stale-dir", "deep", "x.md"), []byte("old"), 0o644))

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir})
	require.NoError(t, err)

	_, err = conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-01-01-10-05-Fresh.md"}, listDir(t, outDir))

	// A second run over the same input leaves exactly the same set.
	_, err = conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-01-01-10-05-Fresh.md"}, listDir(t, outDir))
}

func TestConverterRun_BracketedInputDir(t *testing.T) {
	root := t.TempDir()
	inDir := filepath.Join(root, "keep [2024]")
	outDir := filepath.Join(root, "markdown")
	require.NoError(t, os.Mkdir(inDir, 0o755))
	created := time.Date(2024, time.February, 3, 8, 0, 0, 0, time.UTC)
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "a.json"), []byte(noteJSON("Trip", created)), 0o644))

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir})
	require.NoError(t, err)
	result, err := conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, []string{"2024-02-03-08-00-Trip.md"}, listDir(t, outDir))
}

func TestConverterRun_CreatesOutputDir(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{"a.json": noteJSON("A", jan)})
	outDir = filepath.Join(outDir, "nested", "deeper")

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir})
	require.NoError(t, err)
	result, err := conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.FileExists(t, filepath.Join(outDir, "2022-01-01-10-05-A.md"))
}

func TestConverterRun_CollidingNamesOverwrite(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{
		"a.json": noteJSON("Same title", jan),
		"b.json": noteJSON("Same  title", jan.Add(30*time.Second)),
	})

	logs := &logtest.Recorder{}
	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir}, WithLogger(logs))
	require.NoError(t, err)

	result, err := conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, []string{"2022-01-01-10-05-Same_title.md"}, listDir(t, outDir))
	assert.Len(t, logs.Level("warn"), 1)

	data, err := os.ReadFile(filepath.Join(outDir, "2022-01-01-10-05-Same_title.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "body of Same  title")
}

func TestConverterRun_WeekdayIndex(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{"a.json": noteJSON("A", jan)})

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir, DayFormat: types.WeekdayIndex})
	require.NoError(t, err)
	_, err = conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "2022-01-01-10-05-A.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "date created: Saturday, January 6 2022, 10:05 AM\n")
}

func TestConverterRun_WriteFailureStopsRun(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{
		"a.json": noteJSON("First", jan),
		"b.json": noteJSON("Second", jan.Add(time.Hour)),
		"c.json": noteJSON("Third", jan.Add(2*time.Hour)),
	})

	// Occupy the second artifact's name with a directory once the first
	// note is written, so the second write fails.
	rec := &fakeRecorder{}
	rec.hook = func(ev types.RunEvent) {
		if ev.Status == types.EventWritten && len(rec.events) == 1 {
			require.NoError(t, os.Mkdir(filepath.Join(outDir, "2022-01-01-11-05-Second.md"), 0o755))
		}
	}
	logs := &logtest.Recorder{}

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir}, WithRecorder(rec), WithLogger(logs))
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := conv.Run(context.Background(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2022-01-01-11-05-Second.md")
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.NotContains(t, out.String(), "Batch summary")
	assert.NoFileExists(t, filepath.Join(outDir, "2022-01-01-12-05-Third.md"))
	assert.True(t, logs.Contains("error writing markdown file"))
}

func TestConverterRun_RecorderErrorsAreWarnings(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{"a.json": noteJSON("A", jan)})

	logs := &logtest.Recorder{}
	rec := &fakeRecorder{err: errors.New("database is locked")}
	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir}, WithRecorder(rec), WithLogger(logs))
	require.NoError(t, err)

	result, err := conv.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.True(t, logs.Contains("database is locked"))
}

func TestConverterRun_Cancelled(t *testing.T) {
	jan := time.Date(2022, time.January, 1, 10, 5, 0, 0, time.UTC)
	inDir, outDir := setupDirs(t, map[string]string{"a.json": noteJSON("A", jan)})

	conv, err := New(types.ConvertConfig{InputDir: inDir, OutputDir: outDir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = conv.Run(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	tests := []struct {
		name string
		cfg  types.ConvertConfig
		want string
	}{
		{"missing input", types.ConvertConfig{OutputDir: filepath.Join(root, "out")}, "input_dir"},
		{"input does not exist", types.ConvertConfig{InputDir: filepath.Join(root, "nope"), OutputDir: filepath.Join(root, "out")}, "does not exist"},
		{"input is a file", types.ConvertConfig{InputDir: file, OutputDir: filepath.Join(root, "out")}, "not a directory"},
		{"missing output", types.ConvertConfig{InputDir: root}, "output_dir"},
		{"output equals input", types.ConvertConfig{InputDir: root, OutputDir: root}, "would be cleared"},
		{"output contains input", types.ConvertConfig{InputDir: root, OutputDir: filepath.Dir(root)}, "would be cleared"},
		{"unknown day format", types.ConvertConfig{InputDir: root, OutputDir: filepath.Join(root, "out"), DayFormat: "julian"}, "day_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation), "want validation category, got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_OutputInsideInputIsAllowed(t *testing.T) {
	root := t.TempDir()
	_, err := New(types.ConvertConfig{InputDir: root, OutputDir: filepath.Join(root, "markdown")})
	assert.NoError(t, err)
}
