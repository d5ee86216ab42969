// Package logic implements the split and combine workflows behind the command line.
package logic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-vfs"

	"github.com/idelchi/splinch/internal/config"
	"github.com/idelchi/splinch/internal/shred"
	"github.com/idelchi/splinch/internal/xorsplit"
)

var (
	// ErrVerificationFailed is returned when the split parts do not reproduce the original.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrNotRegularFile is returned when the input exists but is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
)

// Runner executes exactly one workflow per invocation.
type Runner struct {
	cfg *config.Config

	// out receives progress lines, errOut receives stats
	out    io.Writer
	errOut io.Writer

	fs       vfs.FS
	engine   *xorsplit.Engine
	shredder *shred.Shredder
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	fs   vfs.FS
	rand io.Reader
	log  logrus.FieldLogger
}

// WithFS runs every workflow against fsys.
func WithFS(fsys vfs.FS) RunnerOption {
	return func(o *runnerOptions) { o.fs = fsys }
}

// WithRand replaces the randomness source of splitting, sampling and shredding.
func WithRand(r io.Reader) RunnerOption {
	return func(o *runnerOptions) { o.rand = r }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(log logrus.FieldLogger) RunnerOption {
	return func(o *runnerOptions) { o.log = log }
}

// NewRunner wires the engine and shredder for cfg.
func NewRunner(cfg *config.Config, out, errOut io.Writer, opts ...RunnerOption) *Runner {
	options := runnerOptions{
		fs:  vfs.OSFS,
		log: NewLogger(errOut, cfg.Debug),
	}

	for _, opt := range opts {
		opt(&options)
	}

	engineOpts := []xorsplit.Option{xorsplit.WithFS(options.fs), xorsplit.WithLogger(options.log)}
	shredOpts := []shred.Option{shred.WithFS(options.fs), shred.WithLogger(options.log)}

	if options.rand != nil {
		engineOpts = append(engineOpts, xorsplit.WithRand(options.rand))
		shredOpts = append(shredOpts, shred.WithRand(options.rand))
	}

	return &Runner{
		cfg:      cfg,
		out:      out,
		errOut:   errOut,
		fs:       options.fs,
		engine:   xorsplit.New(engineOpts...),
		shredder: shred.New(shredOpts...),
	}
}

// NewLogger returns a logrus logger writing to w, at debug level if requested and warn level otherwise.
func NewLogger(w io.Writer, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	return logger
}

// Run is the main logic of the application.
// Progress lines go to out, stats and diagnostics to errOut.
func Run(cfg *config.Config, out, errOut io.Writer) error {
	return NewRunner(cfg, out, errOut).Run()
}

// Run validates the input and runs either split[, verify][, secure delete] or combine.
func (r *Runner) Run() error {
	start := time.Now()

	size, err := r.checkInput()
	if err != nil {
		return err
	}

	var written int64

	if r.cfg.Combine {
		written, err = r.combine()
	} else {
		written, err = r.split(size)
	}

	if r.cfg.Stats {
		printStats(r.errOut, size, written, time.Since(start))
	}

	return err
}

// checkInput requires the input to exist and to be a regular file.
func (r *Runner) checkInput() (int64, error) {
	info, err := r.fs.Stat(r.cfg.Input)
	if err != nil {
		return 0, fmt.Errorf("cannot access %q: %w", r.cfg.Input, err)
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%q is %w", r.cfg.Input, ErrNotRegularFile)
	}

	return info.Size(), nil
}

func (r *Runner) split(size int64) (int64, error) {
	input := r.cfg.Input

	r.printf("Splitting %s (%s)...\n", input, humanize.IBytes(uint64(size))) //nolint:gosec // sizes are non-negative

	pair, err := r.engine.Split(input)
	if err != nil {
		return 0, fmt.Errorf("splitting %q: %w", input, err)
	}

	r.printf("Created: %s\n", pair.Pad)
	r.printf("Created: %s\n", pair.Masked)

	written := 2 * size

	if r.cfg.Verify {
		r.printf("Verifying... ")

		ok, err := r.engine.Verify(input, pair.Pad, pair.Masked)
		if err != nil {
			r.printf("\n")

			return written, fmt.Errorf("verifying %q: %w", input, err)
		}

		if !ok {
			r.printf("FAILED\n")

			return written, fmt.Errorf("%w: %q", ErrVerificationFailed, input)
		}

		r.printf("OK\n")
	}

	if r.cfg.SecureDelete {
		r.printf("Securely deleting %s (%d pass(es))...\n", input, r.cfg.Passes)

		if err := r.shredder.Shred(input, r.cfg.Passes); err != nil {
			return written, fmt.Errorf("securely deleting %q: %w", input, err)
		}

		r.printf("Deleted.\n")
	}

	return written, nil
}

func (r *Runner) combine() (int64, error) {
	r.printf("Combining from %s...\n", r.cfg.Input)

	output, err := r.engine.Combine(r.cfg.Input)
	if err != nil {
		return 0, fmt.Errorf("combining %q: %w", r.cfg.Input, err)
	}

	r.printf("Restored: %s\n", output)

	info, err := r.fs.Stat(output)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", output, err)
	}

	return info.Size(), nil
}

// printf writes a progress line unless quiet mode is on.
func (r *Runner) printf(format string, args ...any) {
	if r.cfg.Quiet {
		return
	}

	fmt.Fprintf(r.out, format, args...)
}

func printStats(w io.Writer, inputSize, written int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	//nolint:gosec // sizes are non-negative
	fmt.Fprintf(w, "  Input:     %s\n", humanize.IBytes(uint64(max(0, inputSize))))
	//nolint:gosec // sizes are non-negative
	fmt.Fprintf(w, "  Written:   %s\n", humanize.IBytes(uint64(max(0, written))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
