package xorsplit

import (
	"errors"
	"fmt"
	"io"
)

// ReadChunk fills buf from r, retrying partial reads until buf is full or r is exhausted.
// It returns the number of bytes obtained; 0 means the stream is exhausted.
// io.EOF is not reported as an error.
func ReadChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, nil
	}

	if err != nil {
		return n, fmt.Errorf("reading chunk: %w", err)
	}

	return n, nil
}

// lockstep reads one chunk from each source into the matching buffer.
// It reports the common length and whether all sources returned the same number of bytes.
func lockstep(sources []source, bufs [][]byte) (n int, equal bool, err error) {
	equal = true

	for i, src := range sources {
		got, err := ReadChunk(src.r, bufs[i])
		if err != nil {
			return 0, false, fmt.Errorf("reading %q: %w", src.name, err)
		}

		if i == 0 {
			n = got
		} else if got != n {
			equal = false
		}
	}

	return n, equal, nil
}

// source pairs a stream with the path it came from, for error context.
type source struct {
	name string
	r    io.Reader
}
