package pe

import "errors"

var (
	// ErrTruncated is returned when data is too short to hold the header
	// region it claims to have.
	ErrTruncated = errors.New("pe: truncated image")

	// ErrBadSignature is returned when the DOS or PE signature, or the
	// optional header magic, does not match a known value.
	ErrBadSignature = errors.New("pe: bad signature")

	// ErrMalformedContainer is returned by Unwrap when a minify container
	// header is inconsistent with the data that follows it.
	ErrMalformedContainer = errors.New("pe: malformed container")
)
