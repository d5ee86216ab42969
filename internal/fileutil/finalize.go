// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/twpayne/go-vfs"
)

// OwnerReadWrite is the permission every produced file is created with.
const OwnerReadWrite = 0o600

// TempContext holds state for an atomic file write operation.
// Data is buffered into a temp file next to Target and only renamed onto Target by Commit.
type TempContext struct {
	Target  string
	TmpFile *os.File
	TmpName string
	Written int64

	fs        vfs.FS
	writer    *bufio.Writer
	committed bool
}

// NewTempContext creates a temp file in the directory of outPath.
// Caller must defer CleanupOnError.
func NewTempContext(fsys vfs.FS, outPath string) (*TempContext, error) {
	const attempts = 8

	for range attempts {
		name, err := tempName(outPath)
		if err != nil {
			return nil, err
		}

		tmpFile, err := fsys.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, OwnerReadWrite)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("creating temporary file for %q: %w", outPath, err)
		}

		return &TempContext{
			Target:  outPath,
			TmpFile: tmpFile,
			TmpName: name,
			fs:      fsys,
			writer:  bufio.NewWriterSize(tmpFile, 64*1024),
		}, nil
	}

	return nil, fmt.Errorf("creating temporary file for %q: %w", outPath, fs.ErrExist)
}

// Write buffers p for the temp file.
func (tc *TempContext) Write(p []byte) (int, error) {
	n, err := tc.writer.Write(p)
	tc.Written += int64(n)

	if err != nil {
		return n, fmt.Errorf("writing %q: %w", tc.Target, err)
	}

	return n, nil
}

// Commit flushes and syncs the temp file, closes it and renames it onto Target.
func (tc *TempContext) Commit() error {
	if err := tc.writer.Flush(); err != nil {
		return fmt.Errorf("flushing %q: %w", tc.Target, err)
	}

	if err := tc.TmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing %q: %w", tc.Target, err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file for %q: %w", tc.Target, err)
	}

	if err := tc.fs.Rename(tc.TmpName, tc.Target); err != nil {
		return fmt.Errorf("renaming output file %q: %w", tc.Target, err)
	}

	tc.committed = true

	return nil
}

// CleanupOnError closes and removes the temp file unless Commit succeeded.
// Cleanup failures are appended to *errp.
func (tc *TempContext) CleanupOnError(errp *error) {
	if tc.committed {
		return
	}

	if err := tc.TmpFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		*errp = multierror.Append(*errp, fmt.Errorf("closing temporary file: %w", err))
	}

	if err := tc.fs.Remove(tc.TmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		*errp = multierror.Append(*errp, fmt.Errorf("removing temporary file: %w", err))
	}
}

func tempName(outPath string) (string, error) {
	const suffixLen = 8

	suffix := make([]byte, suffixLen)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generating temporary name: %w", err)
	}

	return filepath.Join(filepath.Dir(outPath), ".tmp-"+hex.EncodeToString(suffix)), nil
}
