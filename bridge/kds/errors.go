package kds

import "errors"

var (
	// ErrAllocation is returned when the sizing pass overflows or the
	// computed buffer size cannot be satisfied.
	ErrAllocation = errors.New("kds: buffer allocation failed")
	// ErrShortBuffer is returned by Verify when the input is too small to
	// hold the structure it claims to, and by Encode when a column region
	// is too small for its validity bitmap or geometry offset array.
	// Decode never returns an error; a short result buffer marks every
	// output null instead.
	ErrShortBuffer = errors.New("kds: buffer too short")
	// ErrBadFormatTag is returned by Verify when the format tag field
	// does not match formatTagColumnar.
	ErrBadFormatTag = errors.New("kds: unrecognized format tag")
)
