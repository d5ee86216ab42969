package xorsplit_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-vfs"
	"github.com/twpayne/go-vfs/vfst"

	"github.com/idelchi/splinch/internal/xorsplit"
)

func newTestFS(t *testing.T, root map[string]any) *vfst.TestFS {
	t.Helper()

	fsys, cleanup, err := vfst.NewTestFS(root)
	if err != nil {
		t.Fatalf("creating test filesystem: %v", err)
	}

	t.Cleanup(cleanup)

	return fsys
}

func newEngine(fsys vfs.FS, opts ...xorsplit.Option) *xorsplit.Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return xorsplit.New(append([]xorsplit.Option{xorsplit.WithFS(fsys), xorsplit.WithLogger(logger)}, opts...)...)
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()

	data := make([]byte, n)
	if _, err := rand.Read(data); err != nil {
		t.Fatalf("generating random data: %v", err)
	}

	return data
}

func readFile(t *testing.T, fsys vfs.FS, path string) []byte {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %q: %v", path, err)
	}

	return data
}

func flipByte(t *testing.T, fsys vfs.FS, path string, offset int) {
	t.Helper()

	data := readFile(t, fsys, path)
	data[offset] ^= 0xFF

	if err := fsys.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
}

func listDir(t *testing.T, fsys vfs.FS, dir string) []string {
	t.Helper()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory %q: %v", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

// zeroReader yields an endless stream of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)

	return len(p), nil
}

func xorOf(a, b []byte) []byte {
	out := make([]byte, len(a))
	xorsplit.Mix(out, a, b)

	return out
}

func assertEqualBytes(t *testing.T, name string, got, want []byte) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s: length %d, want %d", name, len(got), len(want))
	}

	if !bytes.Equal(got, want) {
		t.Fatalf("%s: content differs", name)
	}
}
