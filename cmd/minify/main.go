// minify compresses or decompresses a PE image's section payload using the
// minify package's LZMA-dialect codec.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/cdragan/minify"
	"github.com/cdragan/minify/internal/pe"
)

const versionString = "minify 1.0.0"

func usage() {
	fmt.Fprintf(os.Stderr, `%s

Usage:

	minify [flags] input-file

Flags:
`, versionString)
	flag.PrintDefaults()
}

func main() {
	if err := main1(); err != nil {
		fmt.Fprintf(os.Stderr, "minify: %v\n", err)
		os.Exit(1)
	}
}

func main1() error {
	var (
		decompressFlag = flag.Bool("d", false, "decompress instead of compress")
		peFlag         = flag.Bool("pe", false, "treat input as a PE image: split headers from section payload and reassemble on output")
		outFlag        = flag.String("o", "", "output file (default: stdout)")
		windowFlag     = flag.Int("window", env.IntOr("MINIFY_WINDOW_SIZE", 0), "probability-model window size in bits, 1-2048 (0 selects the default, overridable via MINIFY_WINDOW_SIZE)")
		lenFlag        = flag.Int("len", 0, "original decompressed length, required for -d without -pe")
		versionFlag    = flag.Bool("version", false, "print version information and exit")
		verbose        = env.BoolOr("MINIFY_VERBOSE", false)
	)
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString)
		return nil
	}
	if flag.NArg() != 1 {
		usage()
		return fmt.Errorf("expected exactly one input file")
	}

	input, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "minify: read %d bytes from %s\n", len(input), flag.Arg(0))
	}

	var output []byte
	if *decompressFlag {
		output, err = runDecompress(input, *peFlag, *lenFlag, *windowFlag, verbose)
	} else {
		output, err = runCompress(input, *peFlag, *windowFlag, verbose)
	}
	if err != nil {
		return err
	}

	return writeOutput(*outFlag, output)
}

func runCompress(input []byte, wrapPE bool, window int, verbose bool) ([]byte, error) {
	opts := &minify.CompressOptions{WindowSize: window}

	if !wrapPE {
		return minify.Compress(input, opts)
	}

	img, err := pe.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parsing PE image: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "minify: %d sections, %d header bytes, %d payload bytes\n",
			len(img.Sections), len(img.Header()), len(img.Payload()))
	}

	compressed, err := minify.Compress(img.Payload(), opts)
	if err != nil {
		return nil, fmt.Errorf("compressing payload: %w", err)
	}
	return pe.Wrap(img.Header(), nil, compressed, len(img.Payload())), nil
}

func runDecompress(input []byte, unwrapPE bool, outLen, window int, verbose bool) ([]byte, error) {
	if !unwrapPE {
		if outLen <= 0 {
			return nil, fmt.Errorf("-len is required for -d without -pe")
		}
		return minify.Decompress(input, minify.DefaultDecompressOptions(outLen))
	}

	header, stub, compressed, payloadLen, err := pe.Unwrap(input)
	if err != nil {
		return nil, fmt.Errorf("unwrapping container: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "minify: %d header bytes, %d stub bytes, original payload %d bytes\n",
			len(header), len(stub), payloadLen)
	}
	_ = window // the window size travels inside the minify container itself

	payload, err := minify.Decompress(compressed, minify.DefaultDecompressOptions(payloadLen))
	if err != nil {
		return nil, fmt.Errorf("decompressing payload: %w", err)
	}

	out := make([]byte, 0, len(header)+len(stub)+len(payload))
	out = append(out, header...)
	out = append(out, stub...)
	out = append(out, payload...)
	return out, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
