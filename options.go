// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package minify

// defaultWindowSize is the probability model's sliding window, in bits,
// used when CompressOptions is nil or WindowSize is 0.
const defaultWindowSize = 128

// maxWindowSize is the largest legal probabilityModel window.
const maxWindowSize = 2048

// DecompressOptions configures decompression.
// OutLen is required: the caller must know the original decompressed size
// (e.g. the uncompressed image size recorded by whatever embeds the blob).
type DecompressOptions struct {
	// OutLen is the original decompressed size.
	OutLen int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options with the given output length and no input limit.
func DefaultDecompressOptions(outLen int) *DecompressOptions {
	return &DecompressOptions{OutLen: outLen}
}

// CompressOptions configures compression.
type CompressOptions struct {
	// WindowSize is the arithmetic coder's probability-model window, in bits of recent
	// history. Must be in [1, 2048]; 0 selects the default of 128.
	WindowSize int
}

// DefaultCompressOptions returns options using the default window size (128).
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{WindowSize: defaultWindowSize}
}
