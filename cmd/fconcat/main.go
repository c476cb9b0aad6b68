// Command fconcat concatenates a directory tree into a single text artifact
// composed of a rendered structure view followed by the contents of every
// included regular file.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fconcat/fconcat/cmd"
	"github.com/fconcat/fconcat/pkg/version"
)

func main() {
	// fatih/color already guesses at color support, but it doesn't know
	// about Cygwin-style terminals; ask explicitly rather than risk escape
	// codes leaking into a redirected or non-ANSI stream.
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}

	rootCommand.Flags().SortFlags = false
	if err := rootCommand.Execute(); err != nil {
		// Argument/flag validation errors: Cobra has already printed the
		// error (usage output is silenced).
		os.Exit(1)
	}
}

var rootCommand = &cobra.Command{
	Use:          "fconcat <input-directory> <output-file>",
	Short:        "Concatenate a directory tree into a single text artifact",
	Version:      version.String,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	Run:          cmd.Mainify(run),
}

func init() {
	rootCommand.SetVersionTemplate("fconcat {{.Version}}\n")
	registerFlags(rootCommand)
}
