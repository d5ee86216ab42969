package xorsplit

import "errors"

var (
	// ErrInvalidExtension is returned when a path does not end in .xor1 or .xor2.
	ErrInvalidExtension = errors.New("expected .xor1 or .xor2 extension")
	// ErrPartnerNotFound is returned when one file of an XOR pair is missing.
	ErrPartnerNotFound = errors.New("partner file not found")
	// ErrSizeMismatch is returned when the two parts of a pair differ in length.
	ErrSizeMismatch = errors.New("file sizes differ")
	// ErrChunkMismatch is returned when streams read in lockstep yield chunks of different length.
	ErrChunkMismatch = errors.New("unexpected read size mismatch")
)
