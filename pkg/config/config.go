// Package config defines the validated, immutable run configuration handed
// down from the CLI layer to the traversal engine and orchestrator.
package config

import (
	"io"

	"github.com/pkg/errors"

	"github.com/fconcat/fconcat/pkg/filesystem"
	"github.com/fconcat/fconcat/pkg/logging"
	"github.com/fconcat/fconcat/pkg/patternset"
	"github.com/fconcat/fconcat/pkg/pluginhost"
)

// Config is the fully-validated description of one run. It is produced once
// by the CLI layer and completed by Validate; after that, the only change
// is the orchestrator adding the output file's auto-exclude patterns to
// Excludes before the walk. Downstream components (traversal engine, output
// formatter, orchestrator) read it through a pointer without locking.
type Config struct {
	// BasePath is the absolute root directory to traverse.
	BasePath string
	// OutputSink is the write-only destination for the rendered output. The
	// CLI layer owns opening and eventually closing it.
	OutputSink io.Writer
	// Excludes is the pattern set consulted before visiting each entry.
	Excludes *patternset.Set
	// BinaryPolicy controls how classified-binary regular files are handled.
	BinaryPolicy BinaryPolicy
	// SymlinkPolicy controls how symbolic links are handled.
	SymlinkPolicy SymlinkPolicy
	// ShowSize requests formatted sizes on structure-pass tree lines and a
	// total-size footer.
	ShowSize bool
	// Plugins is the ordered chain of content transformers applied to every
	// text file's body during the content pass.
	Plugins *pluginhost.Chain
	// Interactive keeps the process alive after the run completes so
	// long-lived plugins may keep running until an external signal arrives.
	Interactive bool
	// Verbose carries the effective logging level, threaded explicitly
	// through Config rather than read from a package-level global. It's
	// populated from FCONCAT_VERBOSE (see environment.go); no command-line
	// flag sets it.
	Verbose logging.Level
	// DefaultExcludes enables the built-in version-control directory
	// excludes (.git, .svn, .hg, .bzr, _darcs) in addition to any
	// user-supplied patterns.
	DefaultExcludes bool
	// OutputPath is the filesystem path the output sink was opened from, if
	// any (empty when the sink is something unaddressable, like stdout).
	// The orchestrator uses it purely to compute auto-exclude patterns so
	// the output file never reads itself back into the tree; it plays no
	// other role once the run begins.
	OutputPath string
}

// defaultVCSExcludes are folded into the pattern set when DefaultExcludes is
// set, so version-control metadata never pollutes the rendered tree.
var defaultVCSExcludes = []string{".git", ".svn", ".hg", ".bzr", "_darcs"}

// Validate checks the fields that the traversal engine and orchestrator
// assume are already correct, and normalizes BasePath to an absolute,
// cleaned form. It must be called before a Config is used for a run; it's
// the one point where "invalid config" errors (disposition: fatal before
// walk) are raised.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return errors.New("base path must not be empty")
	}
	normalized, err := filesystem.Normalize(c.BasePath)
	if err != nil {
		return errors.Wrap(err, "unable to normalize base path")
	}
	c.BasePath = normalized

	if c.OutputSink == nil {
		return errors.New("output sink must not be nil")
	}
	if c.Excludes == nil {
		c.Excludes = patternset.NewForHost()
	}
	if c.DefaultExcludes {
		for _, pattern := range defaultVCSExcludes {
			c.Excludes.Add(pattern)
		}
	}
	if c.Plugins == nil {
		c.Plugins = pluginhost.NewChain(logging.NewLogger(c.Verbose))
	}
	return nil
}

// Logger returns a root logger configured at the Config's verbosity level.
func (c *Config) Logger() *logging.Logger {
	return logging.NewLogger(c.Verbose)
}
