package xorsplit

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/splinch/internal/fileutil"
)

// Split writes <input>.xor1 (random pad) and <input>.xor2 (input XOR pad).
// Existing files at either name are replaced once both parts are complete.
func (e *Engine) Split(input string) (pair Pair, err error) {
	pair = Pair{
		Pad:    AppendExtension(input, PadExt),
		Masked: AppendExtension(input, MaskedExt),
	}

	inFile, err := e.fs.Open(input)
	if err != nil {
		return Pair{}, fmt.Errorf("opening input file %q: %w", input, err)
	}
	defer inFile.Close()

	padOut, err := fileutil.NewTempContext(e.fs, pair.Pad)
	if err != nil {
		return Pair{}, fmt.Errorf("creating %q: %w", pair.Pad, err)
	}

	defer padOut.CleanupOnError(&err)

	maskedOut, err := fileutil.NewTempContext(e.fs, pair.Masked)
	if err != nil {
		return Pair{}, fmt.Errorf("creating %q: %w", pair.Masked, err)
	}

	defer maskedOut.CleanupOnError(&err)

	bufs, release := getBuffers(3)
	defer release()

	data, pad, masked := bufs[0], bufs[1], bufs[2]

	var chunks int

	for {
		n, err := ReadChunk(inFile, data)
		if err != nil {
			return Pair{}, fmt.Errorf("reading input file %q: %w", input, err)
		}

		if n == 0 {
			break
		}

		if _, err := io.ReadFull(e.rand, pad[:n]); err != nil {
			return Pair{}, fmt.Errorf("generating pad: %w", err)
		}

		Mix(masked[:n], data[:n], pad[:n])

		if _, err := padOut.Write(pad[:n]); err != nil {
			return Pair{}, err
		}

		if _, err := maskedOut.Write(masked[:n]); err != nil {
			return Pair{}, err
		}

		chunks++
	}

	if err := padOut.Commit(); err != nil {
		return Pair{}, err
	}

	if err := maskedOut.Commit(); err != nil {
		return Pair{}, err
	}

	e.log.WithFields(logrus.Fields{
		"input":  input,
		"chunks": chunks,
		"bytes":  padOut.Written,
	}).Debug("split complete")

	return pair, nil
}
