package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/value"
)

func TestIsZstd(t *testing.T) {
	if !isZstd([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}) {
		t.Error("isZstd() = false for a zstd frame")
	}
	if isZstd([]byte{0x93, 0x07}) {
		t.Error("isZstd() = true for msgpack bytes")
	}
	if isZstd(nil) {
		t.Error("isZstd() = true for empty input")
	}
}

func TestReadInputPlain(t *testing.T) {
	data, err := codec.Marshal(value.String("hello"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.pb")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("readInput() = %x, want %x", got, data)
	}
}

func TestReadInputCompressed(t *testing.T) {
	data, err := codec.Marshal(value.List{
		value.String("a"), value.String("a"), value.String("a"),
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "doc.pb.zst")
	if err := os.WriteFile(path, zstdEncoder.EncodeAll(data, nil), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("readInput() = %x, want %x", got, data)
	}
}

func TestReadInputBadZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zst")
	corrupt := append(append([]byte{}, zstdMagic...), 0xFF, 0xFF, 0xFF)
	if err := os.WriteFile(path, corrupt, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := readInput(path); err == nil {
		t.Error("readInput() expected error for corrupt zstd frame")
	}
}

func TestWriteOutputCompressed(t *testing.T) {
	data, err := codec.Marshal(value.Int(42))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.pb.zst")

	if err := writeOutput(path, data, true, true); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !isZstd(written) {
		t.Fatalf("writeOutput() did not produce a zstd frame: %x", written)
	}

	// readInput reverses it transparently.
	got, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("round-trip = %x, want %x", got, data)
	}
}
