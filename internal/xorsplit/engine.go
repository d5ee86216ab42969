package xorsplit

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-vfs"
)

// Pair names the two parts produced by Split.
type Pair struct {
	// Pad is the path of the random part (.xor1).
	Pad string

	// Masked is the path of the input XOR pad part (.xor2).
	Masked string
}

// Engine runs split, verify and combine against a filesystem.
type Engine struct {
	// fs is where every file is opened, created, renamed and removed
	fs vfs.FS

	// rand supplies pad bytes and sample offsets
	rand io.Reader

	// log receives diagnostic output
	log logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS sets the filesystem. Defaults to the host filesystem.
func WithFS(fsys vfs.FS) Option {
	return func(e *Engine) { e.fs = fsys }
}

// WithRand sets the randomness source. Defaults to crypto/rand.
// Anything but a cryptographically secure source voids the one-time-pad property.
func WithRand(r io.Reader) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	engine := &Engine{
		fs:   vfs.OSFS,
		rand: rand.Reader,
		log:  logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// openAll opens every path for reading. The returned func closes them all.
func (e *Engine) openAll(paths ...string) ([]*os.File, func(), error) {
	files := make([]*os.File, 0, len(paths))

	closeAll := func() {
		for _, f := range files {
			f.Close() //nolint:errcheck,gosec // read-only handles
		}
	}

	for _, path := range paths {
		f, err := e.fs.Open(path)
		if err != nil {
			closeAll()

			return nil, nil, fmt.Errorf("opening %q: %w", path, err)
		}

		files = append(files, f)
	}

	return files, closeAll, nil
}

func (e *Engine) size(path string) (int64, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("reading metadata for %q: %w", path, err)
	}

	return info.Size(), nil
}
