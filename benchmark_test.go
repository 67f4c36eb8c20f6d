// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package minify

import (
	"bytes"
	"fmt"
	"testing"
)

func benchmarkInputSets() map[string][]byte {
	return map[string][]byte{
		"small-text-4k":   bytes.Repeat([]byte("minify benchmark text payload "), 160),
		"pattern-128k":    bytes.Repeat([]byte("ABCDEF0123456789"), 8192),
		"byte-cycle-256k": bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 26214),
	}
}

func BenchmarkCompress(b *testing.B) {
	windows := []int{64, 128, 512}
	for inputName, inputData := range benchmarkInputSets() {
		for _, window := range windows {
			name := fmt.Sprintf("%s/window-%d", inputName, window)
			b.Run(name, func(b *testing.B) {
				opts := &CompressOptions{WindowSize: window}
				b.ReportAllocs()
				b.SetBytes(int64(len(inputData)))
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_, err := Compress(inputData, opts)
					if err != nil {
						b.Fatalf("Compress failed: %v", err)
					}
				}
			})
		}
	}
}

func BenchmarkDecompress(b *testing.B) {
	for inputName, inputData := range benchmarkInputSets() {
		opts := &CompressOptions{WindowSize: 128}
		cmp, err := Compress(inputData, opts)
		if err != nil {
			b.Fatalf("Compress failed: %v", err)
		}
		decOpts := DefaultDecompressOptions(len(inputData))

		b.Run(inputName, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(inputData)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := Decompress(cmp, decOpts); err != nil {
					b.Fatalf("Decompress failed: %v", err)
				}
			}
		})
	}
}
