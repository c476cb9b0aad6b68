// Package humansize formats byte counts into human-readable strings for the
// structure pass's size column and total-size footer.
package humansize

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Format renders a byte count as a short human-readable string, e.g. "3 B",
// "5 B", "1.2 kB". It delegates to go-humanize, the same library the
// ecosystem reaches for on the parsing side of byte sizes (see
// pkg/configuration's ByteSize type in the reference corpus).
func Format(bytes uint64) string {
	return humanize.Bytes(bytes)
}

// FormatWithExact renders both the human-readable form and the exact byte
// count, matching the total-size footer format: "<human> (<bytes> bytes)".
func FormatWithExact(bytes uint64) string {
	return fmt.Sprintf("%s (%d bytes)", Format(bytes), bytes)
}
