package xorsplit_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/idelchi/splinch/internal/xorsplit"
)

func TestReadChunkRetriesShortReads(t *testing.T) {
	t.Parallel()

	data := randomBytes(t, 3*xorsplit.ChunkSize/2)

	tests := []struct {
		name string
		wrap func(io.Reader) io.Reader
	}{
		{"direct", func(r io.Reader) io.Reader { return r }},
		{"one byte", iotest.OneByteReader},
		{"half", iotest.HalfReader},
		{"data with EOF", iotest.DataErrReader},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := tc.wrap(bytes.NewReader(data))
			buf := make([]byte, xorsplit.ChunkSize)

			n, err := xorsplit.ReadChunk(r, buf)
			if err != nil || n != xorsplit.ChunkSize {
				t.Fatalf("first chunk: n=%d err=%v, want %d", n, err, xorsplit.ChunkSize)
			}

			if !bytes.Equal(buf[:n], data[:n]) {
				t.Fatal("first chunk content differs")
			}

			n, err = xorsplit.ReadChunk(r, buf)
			if err != nil || n != len(data)-xorsplit.ChunkSize {
				t.Fatalf("second chunk: n=%d err=%v, want %d", n, err, len(data)-xorsplit.ChunkSize)
			}

			if !bytes.Equal(buf[:n], data[xorsplit.ChunkSize:]) {
				t.Fatal("second chunk content differs")
			}

			n, err = xorsplit.ReadChunk(r, buf)
			if err != nil || n != 0 {
				t.Fatalf("exhausted stream: n=%d err=%v, want 0, nil", n, err)
			}
		})
	}
}

func TestReadChunkPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	_, err := xorsplit.ReadChunk(iotest.ErrReader(boom), make([]byte, 16))
	if !errors.Is(err, boom) {
		t.Fatalf("ReadChunk error = %v, want %v", err, boom)
	}
}
