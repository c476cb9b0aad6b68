// Package version defines the release version of fconcat.
package version

import "fmt"

const (
	// Major is the current major version.
	Major = 1
	// Minor is the current minor version.
	Minor = 0
	// Patch is the current patch version.
	Patch = 0
)

// String is the current version in semantic version form.
var String = fmt.Sprintf("%d.%d.%d", Major, Minor, Patch)
