// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

/*
Package minify implements the compression core of a PE executable
minifier: an LZMA-dialect codec built from a match finder, a five-stream
packet encoder, and an adaptive binary arithmetic coder.

The codec operates on in-memory buffers only; there is no streaming API.
Compression and decompression are synchronous. A single value returned by
newMatchFinder, newProbabilityModel, or the arithmetic coder types is not
safe to share across goroutines, but separate Compress/Decompress calls on
separate buffers may run concurrently.

# Compress

Options may be nil (uses the default window size of 128 bits):

	out, err := minify.Compress(image, nil)
	out, err := minify.Compress(image, &minify.CompressOptions{WindowSize: 256})

# Decompress

OutLen is required (use DecompressOptions) — the caller must know the
original decompressed size, typically recorded by whatever embeds the
compressed blob (e.g. the PE wrapper in internal/pe):

	out, err := minify.Decompress(compressed, minify.DefaultDecompressOptions(len(image)))
*/
package minify
