package config

import (
	"os"
	"strings"

	"github.com/fconcat/fconcat/pkg/logging"
)

// verboseEnvironmentVariable is read once, at startup, into Config.Verbose.
// It is deliberately never cached in a package-level mutable variable,
// since that would make verbosity hidden global state; the value is read
// exactly once by VerboseFromEnvironment and threaded through explicitly
// from then on.
const verboseEnvironmentVariable = "FCONCAT_VERBOSE"

// VerboseFromEnvironment reads FCONCAT_VERBOSE and returns the logging level
// it implies: LevelInfo (which gates the per-entry skip/exclude/error
// annotations) if set to "1" or "true" (case-insensitive), LevelDisabled
// otherwise. The CLI layer uses the result as Config.Verbose directly; no
// command-line flag overrides it.
func VerboseFromEnvironment() logging.Level {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(verboseEnvironmentVariable)))
	if value == "1" || value == "true" {
		return logging.LevelInfo
	}
	return logging.LevelDisabled
}
