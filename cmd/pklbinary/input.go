package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"
)

// zstdMagic is the zstd frame header. Compressed inputs are detected
// by prefix, so no flag is needed to read them back.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// zstdEncoder and zstdDecoder are reused across calls. Both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("pklbinary: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("pklbinary: zstd decoder initialization failed: " + err.Error())
	}
}

func isZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// readInput reads the whole input, decompressing zstd frames
// transparently. "-" reads stdin.
func readInput(path string) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if isZstd(data) {
		out, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is empty
// or "-". Binary output headed for a terminal is refused.
func writeOutput(path string, data []byte, binary, compress bool) error {
	if compress {
		data = zstdEncoder.EncodeAll(data, nil)
	}
	if path == "" || path == "-" {
		if (binary || compress) && term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("refusing to write binary output to a terminal (use -o or redirect)")
		}
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
