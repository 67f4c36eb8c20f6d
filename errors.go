// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package minify

import "errors"

// Sentinel errors for compression and decompression.
var (
	// ErrLookBehindUnderrun is returned when a back-reference points before the start of the output.
	ErrLookBehindUnderrun = errors.New("lookbehind underrun")

	// ErrOptionsRequired is returned when Decompress is called with nil options (OutLen is required).
	ErrOptionsRequired = errors.New("options required: OutLen must be set")

	// ErrInvalidWindowSize is returned when a CompressOptions.WindowSize is outside [1, 2048]
	// (0 is accepted and selects the default).
	ErrInvalidWindowSize = errors.New("window size must be in [1, 2048]")

	// ErrOutputOverrun is returned when a copy instruction would write past the
	// end of the destination buffer. Detected by an internal bounds assertion;
	// in a correctly sized pipeline this denotes a bug, not caller error.
	ErrOutputOverrun = errors.New("output buffer overrun")

	// ErrInputTooLarge is returned by DecompressFromReader when the input
	// exceeds DecompressOptions.MaxInputSize.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")

	// ErrMalformedInput is returned on decompress when the container header declares stream
	// lengths that do not fit the payload, or a copy instruction references bytes not yet
	// produced. The decoder fails closed rather than producing garbage.
	ErrMalformedInput = errors.New("malformed compressed input")

	// ErrInvariant names an internal invariant violation (e.g. a match length or distance
	// outside its legal range, or the arithmetic coder's registers in an impossible state),
	// an implementation bug rather than a user error. No function in this package returns
	// it; the internal bounds checks that exist (BitEmitter overflow) panic instead.
	ErrInvariant = errors.New("internal invariant violation")
)
