// SPDX-License-Identifier: MIT

package codec

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is a buffered writer whose content replaces the target path
// only on Commit. Abort, or a Commit that fails, leaves the target as it
// was. An AtomicFile is not safe for concurrent use.
type AtomicFile struct {
	*bufio.Writer
	tmp    *os.File
	target string
	done   bool
}

// CreateAtomic starts writing a replacement for path. The temporary file
// lives in the same directory so the final rename stays on one filesystem.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("codec: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return nil, fmt.Errorf("codec: create temp for %s: %w", path, err)
	}

	return &AtomicFile{Writer: bufio.NewWriter(tmp), tmp: tmp, target: path}, nil
}

// Commit flushes, syncs and renames the temporary file over the target.
func (f *AtomicFile) Commit() error {
	if f.done {
		return fmt.Errorf("codec: %s already finished", f.target)
	}
	f.done = true
	defer func() { _ = os.Remove(f.tmp.Name()) }()
	if err := f.Flush(); err != nil {
		_ = f.tmp.Close()
		return fmt.Errorf("codec: write %s: %w", f.target, err)
	}
	if err := f.tmp.Sync(); err != nil {
		_ = f.tmp.Close()
		return fmt.Errorf("codec: sync %s: %w", f.target, err)
	}
	if err := f.tmp.Close(); err != nil {
		return fmt.Errorf("codec: close %s: %w", f.target, err)
	}
	if err := os.Chmod(f.tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("codec: chmod %s: %w", f.target, err)
	}
	if err := os.Rename(f.tmp.Name(), f.target); err != nil {
		return fmt.Errorf("codec: replace %s: %w", f.target, err)
	}

	return nil
}

// Abort discards the temporary file. It is a no-op after Commit, so it can
// be deferred unconditionally.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}
	f.done = true
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

// WriteFile writes path atomically through fn.
func WriteFile(path string, fn func(w *bufio.Writer) error) error {
	f, err := CreateAtomic(path)
	if err != nil {
		return err
	}
	defer f.Abort()
	if err := fn(f.Writer); err != nil {
		return err
	}

	return f.Commit()
}
