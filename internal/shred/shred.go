package shred

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-vfs"
)

const chunkSize = 64 * 1024

// File is the handle a pass writes through.
type File interface {
	io.Writer
	io.Seeker
	Sync() error
	Close() error
}

// Opener opens path for in-place writing.
type Opener func(path string) (File, error)

// Shredder overwrites and removes files.
type Shredder struct {
	fs   vfs.FS
	open Opener
	rand io.Reader
	log  logrus.FieldLogger
}

// Option configures a Shredder.
type Option func(*Shredder)

// WithFS sets the filesystem used to stat, open and remove files.
func WithFS(fsys vfs.FS) Option {
	return func(s *Shredder) { s.fs = fsys }
}

// WithOpener replaces how files are opened for overwriting.
func WithOpener(open Opener) Option {
	return func(s *Shredder) { s.open = open }
}

// WithRand sets the source of overwrite bytes.
func WithRand(r io.Reader) Option {
	return func(s *Shredder) { s.rand = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Shredder) { s.log = log }
}

// New creates a Shredder.
func New(opts ...Option) *Shredder {
	shredder := &Shredder{
		fs:   vfs.OSFS,
		rand: rand.Reader,
		log:  logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(shredder)
	}

	if shredder.open == nil {
		fsys := shredder.fs
		shredder.open = func(path string) (File, error) {
			f, err := fsys.OpenFile(path, os.O_WRONLY, 0)
			if err != nil {
				return nil, err
			}

			return f, nil
		}
	}

	return shredder
}

// Shred overwrites path with random bytes in the given number of passes, syncing after each,
// and then removes it. If any pass fails the file is left in place.
func (s *Shredder) Shred(path string, passes int) (err error) {
	if passes < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPasses, passes)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("reading metadata for %q: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%q: %w", path, ErrNotRegular)
	}

	file, err := s.open(path)
	if err != nil {
		return fmt.Errorf("opening %q for writing: %w", path, err)
	}

	closed := false

	defer func() {
		if closed {
			return
		}

		if cerr := file.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = multierror.Append(err, fmt.Errorf("closing %q: %w", path, cerr))
		}
	}()

	buf := make([]byte, chunkSize)

	for pass := 1; pass <= passes; pass++ {
		if err := s.overwrite(file, buf, info.Size()); err != nil {
			return fmt.Errorf("overwriting %q (pass %d): %w", path, pass, err)
		}

		if err := file.Sync(); err != nil {
			return fmt.Errorf("syncing %q (pass %d): %w", path, pass, err)
		}

		s.log.Debugf("pass %d/%d over %q synced", pass, passes, path)
	}

	closed = true

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}

	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("removing %q: %w", path, err)
	}

	return nil
}

// overwrite rewrites size bytes from the start of file with random data.
func (s *Shredder) overwrite(file File, buf []byte, size int64) error {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking: %w", err)
	}

	for remaining := size; remaining > 0; {
		n := int(min(remaining, int64(len(buf))))

		if _, err := io.ReadFull(s.rand, buf[:n]); err != nil {
			return fmt.Errorf("generating random data: %w", err)
		}

		if _, err := file.Write(buf[:n]); err != nil {
			return fmt.Errorf("writing: %w", err)
		}

		remaining -= int64(n)
	}

	return nil
}
