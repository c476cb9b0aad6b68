// Package binaryclassifier implements the heuristic used to decide whether a
// regular file's content should be treated as text or binary before it's
// piped through the plugin chain.
package binaryclassifier

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// SampleSize is the maximum number of header bytes sampled from a file to
// make the text/binary determination.
const SampleSize = 8192

// controlByteIsWhitespace reports whether b is one of the control bytes that
// are permitted in text: tab, line feed, carriage return, form feed, or
// vertical tab.
func controlByteIsWhitespace(b byte) bool {
	switch b {
	case '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// Classify applies the classification rules to a sample buffer. It never
// touches the caller's I/O state; it's a pure function of the bytes given to
// it. A file is classified as binary if any of the following hold:
//
//  1. the sample contains at least one NUL byte,
//  2. more than 10% of the sample is non-whitespace control characters
//     (bytes below 0x20 other than tab, LF, CR, FF, and VT), or
//  3. more than 75% of the sample has the high bit set.
//
// An empty sample is always classified as text.
func Classify(sample []byte) (binary bool) {
	if len(sample) == 0 {
		return false
	}

	var controlCount, highBitCount int
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b < 0x20 && !controlByteIsWhitespace(b) {
			controlCount++
		}
		if b&0x80 != 0 {
			highBitCount++
		}
	}

	total := len(sample)
	if controlCount*10 > total {
		return true
	}
	if highBitCount*4 > total*3 {
		return true
	}
	return false
}

// IsBinary opens the file at path, reads up to SampleSize header bytes, and
// classifies it as text or binary. Callers should treat a non-nil error as
// "skip this entry, log at verbose level" per the disposition for classifier
// I/O errors: the file is unreadable, not necessarily binary.
func IsBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errors.Wrap(err, "unable to open file")
	}
	defer file.Close()

	buffer := make([]byte, SampleSize)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "unable to read file sample")
	}

	return Classify(buffer[:n]), nil
}
