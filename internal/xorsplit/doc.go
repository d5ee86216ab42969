// Package xorsplit splits a file into two XOR-complementary parts and recombines them.
//
// The pad part (.xor1) holds cryptographically random bytes, the masked part (.xor2)
// holds the input XOR the pad. Each part alone is indistinguishable from noise.
// All operations stream in fixed 64 KiB chunks, so memory use does not grow with file size.
package xorsplit
