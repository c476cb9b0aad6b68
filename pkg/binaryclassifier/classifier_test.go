package binaryclassifier

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyEmptyIsText(t *testing.T) {
	if Classify(nil) {
		t.Error("empty sample classified as binary")
	}
}

func TestClassifyPlainText(t *testing.T) {
	if Classify([]byte("package main\n\nfunc main() {}\n")) {
		t.Error("plain text classified as binary")
	}
}

func TestClassifySingleNULIsBinary(t *testing.T) {
	if !Classify([]byte{0x00}) {
		t.Error("single NUL byte not classified as binary")
	}
}

func TestClassifyControlCharacterThreshold(t *testing.T) {
	// 10 bytes, 1 of which is a non-whitespace control character: exactly at
	// the 10% boundary should still be text ("more than 10%" is strict).
	sample := bytes.Repeat([]byte{'a'}, 9)
	sample = append(sample, 0x01)
	if Classify(sample) {
		t.Error("sample at exactly 10% control characters classified as binary")
	}

	// Push over the threshold.
	sample = bytes.Repeat([]byte{'a'}, 8)
	sample = append(sample, 0x01, 0x02)
	if !Classify(sample) {
		t.Error("sample over 10% control characters not classified as binary")
	}
}

func TestClassifyHighBitThreshold(t *testing.T) {
	sample := bytes.Repeat([]byte{0xff}, 75)
	sample = append(sample, bytes.Repeat([]byte{'a'}, 25)...)
	if Classify(sample) {
		t.Error("sample at exactly 75% high-bit bytes classified as binary")
	}

	sample = bytes.Repeat([]byte{0xff}, 76)
	sample = append(sample, bytes.Repeat([]byte{'a'}, 24)...)
	if !Classify(sample) {
		t.Error("sample over 75% high-bit bytes not classified as binary")
	}
}

func TestClassifyPure(t *testing.T) {
	sample := []byte("some text with \x01 a control byte")
	if Classify(sample) != Classify(sample) {
		t.Error("classifier is not a pure function of its input")
	}
}

func TestIsBinaryOpensAndSamples(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	binary, err := IsBinary(path)
	if err != nil {
		t.Fatal(err)
	}
	if binary {
		t.Error("text file classified as binary")
	}
}

func TestIsBinaryErrorsOnMissingFile(t *testing.T) {
	if _, err := IsBinary(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
