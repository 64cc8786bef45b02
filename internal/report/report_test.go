// file: internal/report/report_test.go
// version: 1.0.0
// guid: 5c7d9e1f-3a4b-4c5d-0e6f-8a0b2c4d6e8f

package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/rom-organizer/internal/matcher"
)

func sampleResult() *matcher.Result {
	return &matcher.Result{
		Matches: []matcher.Match{
			{Name: "Sonic The Hedgehog", MatchedName: "Sonic The Hedgehog (World).gg"},
			{Name: "Shinobi", MatchedName: "Shinobi (World).gg"},
		},
		Unmatched: []string{"Columns"},
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("Sonic\n\nShinobi\n  Columns  \n"), 0644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sonic", "Shinobi", "  Columns  "}, lines)
}

func TestReadLines_Missing(t *testing.T) {
	_, err := ReadLines(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestWriteTextFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTextFiles(dir, sampleResult()))

	matched, err := os.ReadFile(filepath.Join(dir, MatchedFile))
	require.NoError(t, err)
	assert.Equal(t,
		"Sonic The Hedgehog -> Sonic The Hedgehog (World).gg\nShinobi -> Shinobi (World).gg\n",
		string(matched))

	list, err := os.ReadFile(filepath.Join(dir, MatchedListFile))
	require.NoError(t, err)
	assert.Equal(t, "Sonic The Hedgehog (World).gg\nShinobi (World).gg\n", string(list))

	unmatched, err := os.ReadFile(filepath.Join(dir, UnmatchedFile))
	require.NoError(t, err)
	assert.Equal(t, "Columns\n", string(unmatched))
}

func TestWriteTextFiles_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTextFiles(dir, &matcher.Result{}))

	for _, name := range []string{MatchedFile, MatchedListFile, UnmatchedFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Empty(t, data, name)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	result := sampleResult()
	opts := matcher.Options{Backend: matcher.BackendStrutil, Method: matcher.MethodFull, Threshold: 80}

	summary := NewSummary(result, opts)
	assert.Equal(t, 2, summary.MatchedCount)
	assert.Equal(t, 1, summary.UnmatchedCount)

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, summary.WriteYAML(path))

	loaded, err := LoadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "strutil", loaded.Backend)
	assert.Equal(t, "full", loaded.Method)
	assert.Equal(t, 80.0, loaded.Threshold)
	assert.Equal(t, result.Matches, loaded.Matches)
	assert.Equal(t, result.Unmatched, loaded.Unmatched)
}

func TestLoadYAML_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml"), 0644))
	_, err := LoadYAML(path)
	assert.Error(t, err)
}
