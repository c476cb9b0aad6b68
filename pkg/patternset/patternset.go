// Package patternset implements the hashed wildcard pattern container used
// to decide which filesystem entries are excluded from traversal.
//
// The container is a classical hashed bucket map: patterns are chained off
// a fixed-size, prime-sized bucket array, keyed by a djb2 hash of the
// pattern's normalized bytes. Add is average-case O(1): the hash narrows
// insertion (and duplicate detection) to a single bucket. Matches can't get
// the same benefit — a wildcard pattern can't be hashed to the candidate it
// will eventually match — so lookup scans every stored pattern once per
// call; the hashing here buys cheap, collision-resistant inserts, not O(1)
// matching.
package patternset

import (
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// bucketCount is the number of buckets in the hashed container. It's a prime
// near 1024, matching the classical choice for this kind of table: a prime
// modulus spreads djb2 hashes more evenly than a power of two.
const bucketCount = 1021

// node is one link in a bucket's chain.
type node struct {
	pattern string
	next    *node
}

// Set is a hashed container of wildcard exclusion patterns. The zero value
// is not usable; construct one with New. A Set is safe for concurrent use,
// though nothing in the traversal engine requires that (a single walker
// never shares a Set across goroutines); the mutex exists only so that
// programmatic callers adding patterns from multiple goroutines don't have
// to coordinate themselves.
type Set struct {
	mu       sync.Mutex
	buckets  [bucketCount]*node
	caseFold bool
}

// New creates an empty pattern set. caseSensitiveHost indicates whether the
// host filesystem is case-sensitive; when false, patterns and candidate
// paths are folded to lowercase before matching.
func New(caseSensitiveHost bool) *Set {
	return &Set{caseFold: !caseSensitiveHost}
}

// NewForHost creates an empty pattern set with case sensitivity inferred
// from the current platform: case-insensitive on Windows and macOS (the
// common case for both, though not a filesystem-level guarantee on macOS),
// case-sensitive everywhere else.
func NewForHost() *Set {
	insensitive := runtime.GOOS == "windows" || runtime.GOOS == "darwin"
	return New(!insensitive)
}

// djb2 computes the classical djb2 hash of a byte string.
func djb2(s string) uint32 {
	var hash uint32 = 5381
	for i := 0; i < len(s); i++ {
		hash = ((hash << 5) + hash) + uint32(s[i])
	}
	return hash
}

// normalize canonicalizes a pattern the same way a candidate path is
// canonicalized: separators become forward slashes, and the pattern is
// case-folded if the set is case-insensitive.
func (s *Set) normalize(raw string) string {
	normalized := strings.ReplaceAll(raw, "\\", "/")
	if s.caseFold {
		normalized = strings.ToLower(normalized)
	}
	return normalized
}

// Add inserts a pattern into the set. Adding an already-present pattern is a
// no-op: the bucket chain is scanned first and the duplicate is dropped
// rather than appended, so insertion order never affects the observable
// membership of the set.
func (s *Set) Add(pattern string) {
	if pattern == "" {
		return
	}
	normalized := s.normalize(pattern)
	bucket := djb2(normalized) % bucketCount

	s.mu.Lock()
	defer s.mu.Unlock()

	for n := s.buckets[bucket]; n != nil; n = n.next {
		if n.pattern == normalized {
			return
		}
	}
	s.buckets[bucket] = &node{pattern: normalized, next: s.buckets[bucket]}
}

// Matches reports whether any pattern in the set matches the given relative
// path, either against the full path or against its basename. relativePath
// may use either separator convention; it's normalized the same way
// patterns are before comparison.
func (s *Set) Matches(relativePath string) bool {
	candidate := s.normalize(relativePath)
	base := path.Base(candidate)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, head := range s.buckets {
		for n := head; n != nil; n = n.next {
			if matchWildcard(n.pattern, candidate) {
				return true
			}
			if base != candidate && matchWildcard(n.pattern, base) {
				return true
			}
		}
	}
	return false
}

// matchWildcard matches a single pattern against a single candidate using
// doublestar.Match: '*' matches zero or more characters within one path
// segment and '?' matches exactly one character; neither matches a '/'.
// A slash-free pattern therefore matches a nested entry only through the
// basename check in Matches. doublestar's '**' extension only triggers for
// patterns with consecutive stars.
func matchWildcard(pattern, candidate string) bool {
	matched, err := doublestar.Match(pattern, candidate)
	return err == nil && matched
}

// Len returns the number of distinct patterns currently stored. It's mostly
// useful for tests and diagnostics.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, head := range s.buckets {
		for n := head; n != nil; n = n.next {
			count++
		}
	}
	return count
}
