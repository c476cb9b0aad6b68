package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fconcat/fconcat/internal/demoplugins"
	fcconfig "github.com/fconcat/fconcat/pkg/config"
	"github.com/fconcat/fconcat/pkg/logging"
	"github.com/fconcat/fconcat/pkg/orchestrator"
	"github.com/fconcat/fconcat/pkg/patternset"
	"github.com/fconcat/fconcat/pkg/pluginhost"
)

// run is the validated entry point invoked by Cobra via cmd.Mainify. Any
// error it returns is a fatal, pre-walk configuration or I/O-sink failure;
// per-entry failures during the walk are handled internally and never
// surface here.
func run(_ *cobra.Command, arguments []string) error {
	rawBasePath := arguments[0]
	outputPath := arguments[1]

	level := fcconfig.VerboseFromEnvironment()

	outputFile, err := os.Create(outputPath)
	if err != nil {
		return errors.Wrap(err, "unable to open output file")
	}
	defer outputFile.Close()

	excludes := patternset.NewForHost()
	for _, pattern := range opts.excludes {
		excludes.Add(pattern)
	}

	logger := logging.NewLogger(level)
	chain, err := buildPluginChain(logger)
	if err != nil {
		return err
	}

	cfg := &fcconfig.Config{
		BasePath:        rawBasePath,
		OutputSink:      outputFile,
		OutputPath:      outputPath,
		Excludes:        excludes,
		BinaryPolicy:    resolveBinaryPolicy(),
		SymlinkPolicy:   opts.symlinkMode,
		ShowSize:        opts.showSize,
		Plugins:         chain,
		Interactive:     opts.interactive,
		Verbose:         level,
		DefaultExcludes: !opts.noDefaultExcludes,
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return orchestrator.New(cfg, rawBasePath).Run()
}

// buildPluginChain resolves each --plugin path into a loaded plugin,
// preserving chain order. A path matching one of the built-in demo plugin
// names ("upper", "linenumber") is resolved in-process instead of being
// dynamically loaded, since those exist to exercise the ABI without
// requiring a compiled shared object on disk.
func buildPluginChain(logger *logging.Logger) (*pluginhost.Chain, error) {
	plugins := make([]pluginhost.Plugin, 0, len(opts.pluginPaths))
	for _, path := range opts.pluginPaths {
		switch path {
		case "upper":
			plugins = append(plugins, demoplugins.Upper{})
		case "linenumber":
			plugins = append(plugins, demoplugins.LineNumber{})
		default:
			p, err := pluginhost.LoadFromPath(path)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to load plugin %q", path)
			}
			plugins = append(plugins, p)
		}
	}
	return pluginhost.NewChain(logger, plugins...), nil
}
