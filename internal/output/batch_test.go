package output

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestBatchCommit(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.db")

	batch := NewBatch()
	require.NoError(t, batch.Stage(a, writeString("alpha")))
	require.NoError(t, batch.StageFile(b, func(tmp string) error {
		return os.WriteFile(tmp, []byte("bravo"), 0644)
	}))
	assert.Equal(t, 2, batch.Len())

	// Nothing is visible before commit.
	_, err := os.Stat(a)
	assert.ErrorIs(t, err, os.ErrNotExist)

	written, err := batch.Commit()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, written)
	assert.Equal(t, 0, batch.Len())

	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
	data, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "bravo", string(data))

	assert.ElementsMatch(t, []string{"a.txt", "b.db"}, listDir(t, dir))

	// Cleanup after commit keeps published files.
	batch.Cleanup()
	assert.FileExists(t, a)
}

func TestBatchCleanupDiscardsStaged(t *testing.T) {
	dir := t.TempDir()

	batch := NewBatch()
	require.NoError(t, batch.Stage(filepath.Join(dir, "a.txt"), writeString("alpha")))
	require.NoError(t, batch.StageFile(filepath.Join(dir, "b.db"), func(tmp string) error {
		return os.WriteFile(tmp, []byte("bravo"), 0644)
	}))

	batch.Cleanup()
	batch.Cleanup()

	assert.Empty(t, listDir(t, dir))
	assert.Equal(t, 0, batch.Len())
}

func TestBatchStageFailure(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	batch := NewBatch()
	err := batch.Stage(filepath.Join(dir, "a.txt"), func(w io.Writer) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = batch.StageFile(filepath.Join(dir, "b.db"), func(tmp string) error {
		require.NoError(t, os.WriteFile(tmp, []byte("partial"), 0644))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 0, batch.Len())
	assert.Empty(t, listDir(t, dir))
}

func TestBatchReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	batch := NewBatch()
	require.NoError(t, batch.Stage(path, writeString("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	_, err = batch.Commit()
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestBatchCommitFailureRemovesPublished(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	blocked := filepath.Join(dir, "b.db")

	batch := NewBatch()
	require.NoError(t, batch.Stage(a, writeString("alpha")))
	require.NoError(t, batch.StageFile(blocked, func(tmp string) error {
		return os.WriteFile(tmp, []byte("bravo"), 0644)
	}))

	// A directory at the destination makes the second rename fail.
	require.NoError(t, os.Mkdir(blocked, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(blocked, "keep"), nil, 0644))

	written, err := batch.Commit()
	require.Error(t, err)
	assert.Empty(t, written)
	assert.NoFileExists(t, a)
	assert.Equal(t, []string{"b.db"}, listDir(t, dir))
	assert.Equal(t, 0, batch.Len())
}
