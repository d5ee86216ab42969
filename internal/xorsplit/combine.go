package xorsplit

import (
	"fmt"

	"github.com/idelchi/splinch/internal/fileutil"
)

// Combine restores the original from either member of an XOR pair and returns the output path.
// The output is named after the pair with its extension stripped; an existing file there is
// never replaced, a numeric suffix is inserted instead.
func (e *Engine) Combine(input string) (output string, err error) {
	pad, masked, err := ResolveXORPair(e.fs, input)
	if err != nil {
		return "", err
	}

	padSize, err := e.size(pad)
	if err != nil {
		return "", err
	}

	maskedSize, err := e.size(masked)
	if err != nil {
		return "", err
	}

	if padSize != maskedSize {
		return "", fmt.Errorf("%w: %q is %d bytes, %q is %d bytes", ErrSizeMismatch, pad, padSize, masked, maskedSize)
	}

	base, err := StripXORExtension(pad)
	if err != nil {
		return "", err
	}

	output, err = ResolveOutputPath(e.fs, base)
	if err != nil {
		return "", err
	}

	files, closeAll, err := e.openAll(pad, masked)
	if err != nil {
		return "", err
	}
	defer closeAll()

	out, err := fileutil.NewTempContext(e.fs, output)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", output, err)
	}

	defer out.CleanupOnError(&err)

	sources := []source{{pad, files[0]}, {masked, files[1]}}

	bufs, release := getBuffers(3)
	defer release()

	for {
		n, equal, err := lockstep(sources, bufs[:2])
		if err != nil {
			return "", err
		}

		if !equal {
			return "", fmt.Errorf("%w during combine of %q and %q", ErrChunkMismatch, pad, masked)
		}

		if n == 0 {
			break
		}

		Mix(bufs[2][:n], bufs[0][:n], bufs[1][:n])

		if _, err := out.Write(bufs[2][:n]); err != nil {
			return "", err
		}
	}

	if err := out.Commit(); err != nil {
		return "", err
	}

	e.log.WithField("bytes", out.Written).Debugf("restored %q", output)

	return output, nil
}
