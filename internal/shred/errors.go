package shred

import "errors"

var (
	// ErrInvalidPasses is returned for a pass count below one.
	ErrInvalidPasses = errors.New("passes must be at least 1")
	// ErrNotRegular is returned when the target is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
)
