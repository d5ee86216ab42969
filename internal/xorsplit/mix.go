package xorsplit

import (
	"crypto/subtle"
	"fmt"
)

// Mix writes a[i] ^ b[i] into dst for every i.
// All three slices must have the same length; anything else is a programming error and panics.
func Mix(dst, a, b []byte) {
	if len(a) != len(b) || len(dst) != len(a) {
		panic(fmt.Sprintf("xorsplit: mix length mismatch: dst=%d a=%d b=%d", len(dst), len(a), len(b)))
	}

	if len(dst) == 0 {
		return
	}

	subtle.XORBytes(dst, a, b)
}
