package agent

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/workspace"
)

func TestApplyCreatesWritesFile(t *testing.T) {
	dir := t.TempDir()
	eng := newTestEngine(t, dir, &fakeCompleter{})

	outcomes := eng.ApplyCreates([]llm.FileToCreate{
		{Path: "pkg/util.go", Content: "package pkg\n"},
	}, false)

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Applied)

	b, err := os.ReadFile(filepath.Join(dir, "pkg", "util.go"))
	require.NoError(t, err)
	assert.Equal(t, "package pkg\n", string(b))
	assert.Equal(t, 1, eng.Stats().FileContents)
}

func TestApplyCreatesDeclined(t *testing.T) {
	dir := t.TempDir()
	eng, err := New(Config{
		RootDir: dir,
		Confirm: func(string) bool { return false },
	}, &fakeCompleter{}, zap.NewNop())
	require.NoError(t, err)

	outcomes := eng.ApplyCreates([]llm.FileToCreate{
		{Path: "a.txt", Content: "x"},
	}, true)

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	assert.Equal(t, "declined", outcomes[0].Detail)
	assert.NoError(t, outcomes[0].Err)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

func TestApplyEditsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greet.py")
	require.NoError(t, os.WriteFile(path, []byte("def greet():\n    return 'hi'\n"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	outcomes := eng.ApplyEdits([]llm.FileToEdit{
		{Path: "greet.py", OriginalSnippet: "return 'hi'", NewSnippet: "return 'hello'"},
	}, false)

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Applied)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "return 'hello'")
}

func TestApplyEditsSnippetNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("abc"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	outcomes := eng.ApplyEdits([]llm.FileToEdit{
		{Path: "f.txt", OriginalSnippet: "zzz", NewSnippet: "yyy"},
	}, false)

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	assert.ErrorIs(t, outcomes[0].Err, workspace.ErrSnippetNotFound)
	assert.Contains(t, outcomes[0].Detail, "not found")
}

func TestApplyEditsAmbiguousSnippet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x\nx\nx\n"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	outcomes := eng.ApplyEdits([]llm.FileToEdit{
		{Path: "f.txt", OriginalSnippet: "x", NewSnippet: "y"},
	}, false)

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	var ambiguous *workspace.AmbiguousSnippetError
	require.True(t, errors.As(outcomes[0].Err, &ambiguous))
	assert.Equal(t, 3, ambiguous.Occurrences)

	// untouched on failure
	b, err := os.ReadFile(filepath.Join(dir, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "x\nx\nx\n", string(b))
}

func TestApplyEditsBatchContinuesPastFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"), []byte("old"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	outcomes := eng.ApplyEdits([]llm.FileToEdit{
		{Path: "missing.txt", OriginalSnippet: "a", NewSnippet: "b"},
		{Path: "good.txt", OriginalSnippet: "old", NewSnippet: "new"},
	}, false)

	require.Len(t, outcomes, 2)
	assert.Error(t, outcomes[0].Err)
	assert.True(t, outcomes[1].Applied)
}

func TestAddPathFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	report, err := eng.AddPath("notes.md")
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.Equal(t, 1, eng.Stats().FileContents)

	// re-adding refreshes rather than duplicates
	_, err = eng.AddPath("notes.md")
	require.NoError(t, err)
	assert.Equal(t, 1, eng.Stats().FileContents)
}

func TestAddPathDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("[core]"), 0644))

	eng := newTestEngine(t, dir, &fakeCompleter{})
	report, err := eng.AddPath(".")
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.NotEmpty(t, report.Skipped)
}

func TestAddPathRejectsEscape(t *testing.T) {
	eng := newTestEngine(t, t.TempDir(), &fakeCompleter{})
	_, err := eng.AddPath("../outside")
	assert.ErrorIs(t, err, workspace.ErrInvalidPath)
}
