package xorsplit

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
)

const (
	// FullVerifyThreshold is the largest original size that is verified byte for byte.
	// Anything larger is verified at sampled chunk offsets.
	FullVerifyThreshold = 10 * 1024 * 1024 // 10MiB

	// MaxSamples is the upper bound of chunk offsets checked by a sampled verification.
	MaxSamples = 10

	// maxSampleDraws bounds the random draws so a tiny interior range cannot loop forever.
	maxSampleDraws = 16 * MaxSamples
)

type strategy int

const (
	strategyFull strategy = iota
	strategySampled
)

func (s strategy) String() string {
	if s == strategyFull {
		return "full"
	}

	return "sampled"
}

func strategyFor(size int64) strategy {
	if size <= FullVerifyThreshold {
		return strategyFull
	}

	return strategySampled
}

// Verify reports whether pad XOR masked reproduces original.
// Originals up to FullVerifyThreshold are compared completely. Larger ones are compared at
// up to MaxSamples chunk offsets, so corruption outside those offsets can go unnoticed.
// A false result is not an error; errors are reserved for I/O failures.
func (e *Engine) Verify(original, pad, masked string) (bool, error) {
	size, err := e.size(original)
	if err != nil {
		return false, err
	}

	strat := strategyFor(size)

	e.log.WithField("strategy", strat.String()).Debugf("verifying %q", original)

	if strat == strategyFull {
		return e.verifyFull(original, pad, masked)
	}

	return e.verifySampled(original, pad, masked, size)
}

func (e *Engine) verifyFull(original, pad, masked string) (bool, error) {
	files, closeAll, err := e.openAll(original, pad, masked)
	if err != nil {
		return false, err
	}
	defer closeAll()

	sources := []source{{original, files[0]}, {pad, files[1]}, {masked, files[2]}}

	bufs, release := getBuffers(4)
	defer release()

	for {
		n, equal, err := lockstep(sources, bufs[:3])
		if err != nil {
			return false, err
		}

		if !equal {
			return false, nil
		}

		if n == 0 {
			return true, nil
		}

		if !matches(bufs, n) {
			return false, nil
		}
	}
}

func (e *Engine) verifySampled(original, pad, masked string, size int64) (bool, error) {
	for _, path := range []string{pad, masked} {
		partSize, err := e.size(path)
		if err != nil {
			return false, err
		}

		if partSize != size {
			e.log.Debugf("size of %q is %d, want %d", path, partSize, size)

			return false, nil
		}
	}

	offsets, err := e.sampleOffsets(size)
	if err != nil {
		return false, err
	}

	e.log.WithField("offsets", offsets).Debug("sampled offsets")

	files, closeAll, err := e.openAll(original, pad, masked)
	if err != nil {
		return false, err
	}
	defer closeAll()

	sources := []source{{original, files[0]}, {pad, files[1]}, {masked, files[2]}}

	bufs, release := getBuffers(4)
	defer release()

	for _, offset := range offsets {
		if err := seekAll(files, offset); err != nil {
			return false, err
		}

		n, equal, err := lockstep(sources, bufs[:3])
		if err != nil {
			return false, err
		}

		if !equal {
			return false, nil
		}

		if n == 0 {
			continue
		}

		if !matches(bufs, n) {
			return false, nil
		}
	}

	return true, nil
}

// sampleOffsets returns the sorted, distinct chunk offsets a sampled verification reads:
// the first chunk, the last full chunk and random interior offsets up to MaxSamples in total.
func (e *Engine) sampleOffsets(size int64) ([]int64, error) {
	const chunk = int64(ChunkSize)

	last := max(size-chunk, 0)

	set := map[int64]struct{}{0: {}, last: {}}

	if interior := size - chunk; interior > 0 {
		for draw := 0; len(set) < MaxSamples && draw < maxSampleDraws; draw++ {
			v, err := randUint64(e.rand)
			if err != nil {
				return nil, err
			}

			set[int64(v%uint64(interior))] = struct{}{} //nolint:gosec // bounded by interior
		}
	}

	offsets := make([]int64, 0, len(set))
	for offset := range set {
		offsets = append(offsets, offset)
	}

	slices.Sort(offsets)

	return offsets, nil
}

// matches mixes bufs[1] and bufs[2] into bufs[3] and compares the result with bufs[0].
func matches(bufs [][]byte, n int) bool {
	Mix(bufs[3][:n], bufs[1][:n], bufs[2][:n])

	return bytes.Equal(bufs[3][:n], bufs[0][:n])
}

func seekAll(files []*os.File, offset int64) error {
	for _, f := range files {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("seeking %q to %d: %w", f.Name(), offset, err)
		}
	}

	return nil
}

func randUint64(r io.Reader) (uint64, error) {
	var b [8]byte

	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("generating sample offset: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}
