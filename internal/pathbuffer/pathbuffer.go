// Package pathbuffer guards the fixed-size path buffer assumption carried
// over from the source implementation: a joined relative path that would
// overflow a compile-time maximum is rejected rather than silently
// truncated, so the walker can log and skip the entry per the path-overflow
// disposition.
package pathbuffer

import "github.com/pkg/errors"

// MaxPathLength is the maximum byte length of a joined relative path the
// walker will accept. 4096 matches PATH_MAX on the overwhelming majority of
// POSIX systems and is generous enough that legitimate trees never hit it;
// it exists purely as a backstop against pathological input (e.g. a crafted
// symlink loop defeating cycle detection via ever-growing names).
const MaxPathLength = 4096

// ErrOverflow is returned by Join when the joined path would exceed
// MaxPathLength.
var ErrOverflow = errors.New("joined path exceeds maximum path length")

// Join concatenates relative and name with a forward slash, returning
// ErrOverflow if the result would overflow MaxPathLength. It performs no
// other validation or normalization; callers are responsible for separator
// conventions.
func Join(relative, name string) (string, error) {
	var joined string
	if relative == "" {
		joined = name
	} else {
		joined = relative + "/" + name
	}
	if len(joined) > MaxPathLength {
		return "", ErrOverflow
	}
	return joined, nil
}
