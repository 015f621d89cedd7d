// Package datafile provides the file-level plumbing shared by the
// catalog store and the order ledger: atomic whole-file writes, append
// writes, a tolerant line scanner, the cross-process advisory lock, and
// the extension-agnostic product-image lookup.
//
// The backing files are the sole source of truth shared between
// independent front-end processes. There is no database; durability
// comes from write-to-temp-then-rename, and cross-process coordination
// from an advisory flock on a lock file in the data root.
package datafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// PersistenceError reports a failed read or write of a backing file.
// Callers surface it as a retryable storage failure, distinct from
// business-rule rejections.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s of %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying I/O error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence returns true if err is a persistence error.
// Uses errors.As to handle wrapped errors.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

func persistence(op, path string, err error) error {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

// WriteAtomic replaces path with data via a temp file in the same
// directory followed by a rename, so readers in other processes see
// either the old content or the new, never a partial write.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return persistence("write", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return persistence("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return persistence("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return persistence("write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return persistence("write", path, err)
	}
	return nil
}

// AppendLine appends one record line to path, creating the file if
// needed. The single O_APPEND write keeps concurrently appended lines
// from interleaving.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return persistence("append", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return persistence("append", path, err)
	}
	if err := f.Sync(); err != nil {
		return persistence("append", path, err)
	}
	return nil
}

// ScanLines calls fn for each non-empty line of path. A missing file
// yields zero lines and no error. fn returning an error stops the scan.
//
// A line longer than maxLen is handed to fn truncated to maxLen+1 bytes
// so the caller can recognize and skip it; the remainder is discarded
// without aborting the rest of the file, and without ever buffering the
// oversized line in full.
func ScanLines(path string, maxLen int, fn func(line string) error) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return persistence("read", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)
	buf := make([]byte, 0, 4096)
	emit := func() error {
		line := string(buf)
		buf = buf[:0]
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return fn(line)
	}
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err == io.EOF {
			if len(buf) > 0 {
				if err := emit(); err != nil {
					return err
				}
			}
			return nil
		}
		if err != nil {
			return persistence("read", path, err)
		}
		if room := maxLen + 1 - len(buf); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			buf = append(buf, chunk...)
		}
		if isPrefix {
			continue
		}
		if err := emit(); err != nil {
			return err
		}
	}
}

// Lock acquires the data root's advisory lock, blocking until it is
// held, and returns the release function. Every mutating load-modify-
// save sequence runs under this lock so cooperating processes cannot
// lose each other's updates.
func Lock(dataDir string) (release func(), err error) {
	path := filepath.Join(dataDir, ".kopi.lock")
	fl := flock.New(path)
	if err := fl.Lock(); err != nil {
		return nil, persistence("lock", path, err)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			// Process exit releases the lock anyway.
			slog.Warn("failed to release advisory lock", "path", path, "error", err)
		}
	}, nil
}

// FindImage looks up a product image by id in the images directory,
// regardless of extension. Returns the empty string when no image
// exists.
func FindImage(imagesDir, productID string) string {
	matches, err := filepath.Glob(filepath.Join(imagesDir, productID+".*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}
