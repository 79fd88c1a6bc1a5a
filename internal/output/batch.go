/*
PURPOSE:
  Stages every output artifact of a run and publishes them together.
  A run either leaves all of its files or none of them.

REQUIREMENTS:
  User-specified:
  - Reports/CSVs are written at the end of a successful run, never partially.
  - An interrupted or failed run leaves no partial output files.

  Implementation-discovered:
  - Plain files go through renameio pending files (temp file + rename).
  - SQLite writes its own file, so it is built under a hidden temp name and
    renamed on commit.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Cleanup is registered with atexit by the engine so the exit path removes
    staged files too.

ERROR HANDLING:
  - A failing stage cleans up its own temp file and returns the error.
  - Commit stops at the first failure, cleans up everything not yet published and
    removes what it already published. Files those replaced are not restored.

IMPLEMENTATION RULES:
  - Temp files live in the destination directory so rename stays atomic.
  - Cleanup is idempotent.

USAGE:
  b := output.NewBatch()
  defer b.Cleanup()
  b.Stage(path, func(w io.Writer) error { ... })
  paths, err := b.Commit()

SELF-HEALING INSTRUCTIONS:
  - If stale ".*.tmp" files show up, a process died between stage and commit.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - None.
*/

package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/xid"
)

type staged struct {
	path    string
	pending *renameio.PendingFile
	tmp     string
}

// Batch holds staged artifacts until Commit.
type Batch struct {
	items []staged
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Stage writes the content produced by write to a pending file for path.
func (b *Batch) Stage(path string, write func(io.Writer) error) error {
	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0644),
	)
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}

	bw := bufio.NewWriter(pf)
	if err := write(bw); err != nil {
		pf.Cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		pf.Cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	b.items = append(b.items, staged{path: path, pending: pf})
	return nil
}

// StageFile lets build create a file at a temporary path next to path.
// The temporary file is renamed to path on Commit.
func (b *Batch) StageFile(path string, build func(tmp string) error) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+xid.New().String()+".tmp")
	if err := build(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to build %s: %w", path, err)
	}

	b.items = append(b.items, staged{path: path, tmp: tmp})
	return nil
}

// Len returns the number of staged artifacts.
func (b *Batch) Len() int {
	return len(b.items)
}

// Commit publishes every staged artifact and returns their final paths.
// When a publish fails, the artifacts already published by this call are
// removed again so the batch leaves either all of its files or none.
func (b *Batch) Commit() ([]string, error) {
	var written []string
	for len(b.items) > 0 {
		item := b.items[0]

		var err error
		if item.pending != nil {
			err = item.pending.CloseAtomicallyReplace()
		} else {
			err = os.Rename(item.tmp, item.path)
		}
		if err != nil {
			b.Cleanup()
			for _, path := range written {
				os.Remove(path)
			}
			return nil, fmt.Errorf("failed to publish %s: %w", item.path, err)
		}

		b.items = b.items[1:]
		written = append(written, item.path)
	}
	return written, nil
}

// Cleanup removes every artifact that has not been committed.
func (b *Batch) Cleanup() {
	for _, item := range b.items {
		if item.pending != nil {
			item.pending.Cleanup()
		} else {
			os.Remove(item.tmp)
		}
	}
	b.items = nil
}
