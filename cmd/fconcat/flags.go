package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fconcat/fconcat/cmd"
	"github.com/fconcat/fconcat/pkg/config"
)

// options holds the raw flag values bound by registerFlags, before they're
// validated and assembled into a config.Config by run.
type options struct {
	excludes          []string
	showSize          bool
	binarySkip        bool
	binaryInclude     bool
	binaryPlaceholder bool
	symlinkMode       config.SymlinkPolicy
	pluginPaths       []string
	interactive       bool
	noDefaultExcludes bool
}

var opts options

func registerFlags(command *cobra.Command) {
	registerOn(command.Flags())
}

// registerOn binds every flag to opts. Split out from registerFlags so the
// binding logic only ever depends on *pflag.FlagSet, not on Cobra.
func registerOn(flags *pflag.FlagSet) {
	flags.StringArrayVar(&opts.excludes, "exclude", nil, "add a wildcard exclude pattern (may be repeated)")
	flags.BoolVarP(&opts.showSize, "show-size", "s", false, "annotate tree entries with formatted sizes")
	flags.BoolVar(&opts.binarySkip, "binary-skip", false, "omit binary file content (default)")
	flags.BoolVar(&opts.binaryInclude, "binary-include", false, "stream binary file content through the plugin chain")
	flags.BoolVar(&opts.binaryPlaceholder, "binary-placeholder", false, "emit a placeholder comment for binary files")
	opts.symlinkMode = config.SymlinkPolicySkip
	flags.Var(&opts.symlinkMode, "symlinks", "symlink policy: skip, follow, include, or placeholder")
	flags.StringArrayVar(&opts.pluginPaths, "plugin", nil, "append a plugin at <path> to the chain (order preserved)")
	flags.BoolVar(&opts.interactive, "interactive", false, "stay alive after the run until signaled")
	flags.BoolVar(&opts.noDefaultExcludes, "no-default-excludes", false, "disable the built-in version-control directory excludes")
}

// resolveBinaryPolicy applies the three mutually-exclusive --binary-* flags,
// defaulting to Skip when none are given. If more than one is passed,
// placeholder wins over include wins over skip, and a warning is printed
// since the combination is almost certainly not what the user intended.
func resolveBinaryPolicy() config.BinaryPolicy {
	set := 0
	for _, v := range []bool{opts.binarySkip, opts.binaryInclude, opts.binaryPlaceholder} {
		if v {
			set++
		}
	}
	if set > 1 {
		cmd.Warning("multiple --binary-* flags given; using the most specific one")
	}

	switch {
	case opts.binaryPlaceholder:
		return config.BinaryPolicyPlaceholder
	case opts.binaryInclude:
		return config.BinaryPolicyInclude
	default:
		return config.BinaryPolicySkip
	}
}
