// Package orchestrator sequences a single run: auto-exclusion of the output
// file, the structure pass, the content pass, and plugin shutdown, in
// interactive or non-interactive mode.
package orchestrator

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/fconcat/fconcat/pkg/config"
	"github.com/fconcat/fconcat/pkg/logging"
	"github.com/fconcat/fconcat/pkg/output"
	"github.com/fconcat/fconcat/pkg/traversal"
)

// Orchestrator drives one complete run against an already-validated Config.
type Orchestrator struct {
	cfg    *config.Config
	logger *logging.Logger

	// rawBasePath preserves the CLI's literal base-path argument, before
	// config.Config.Validate normalized it to an absolute path. It's needed
	// only for the auto-exclusion special case of a literal "." base path.
	rawBasePath string
}

// New creates an Orchestrator. rawBasePath should be the base path exactly
// as given on the command line, before normalization; it's used only to
// detect the "base_path == \".\"" auto-exclusion special case.
func New(cfg *config.Config, rawBasePath string) *Orchestrator {
	return &Orchestrator{
		cfg:         cfg,
		logger:      cfg.Logger().Sublogger("orchestrator"),
		rawBasePath: rawBasePath,
	}
}

// Run executes the full sequence: auto-exclusion, structure pass, content
// pass, and plugin shutdown (deferred until an interactive termination
// signal if Config.Interactive is set).
func (o *Orchestrator) Run() error {
	o.autoExcludeOutputPath()

	if err := o.cfg.Plugins.Init(); err != nil {
		o.cfg.Plugins.Cleanup()
		return errors.Wrap(err, "plugin initialization failed")
	}

	formatter := output.New(o.cfg.OutputSink)
	walker := traversal.New(o.cfg, formatter)

	if _, err := walker.RunStructurePass(); err != nil {
		o.cfg.Plugins.Cleanup()
		return errors.Wrap(err, "structure pass failed")
	}
	if err := walker.RunContentPass(); err != nil {
		o.cfg.Plugins.Cleanup()
		return errors.Wrap(err, "content pass failed")
	}

	if o.cfg.Interactive {
		o.waitForTermination()
	}
	o.cfg.Plugins.Cleanup()
	return nil
}

// waitForTermination blocks until SIGINT or SIGTERM arrives, so that
// long-lived plugins (servers, listeners) keep running until the user
// signals termination.
func (o *Orchestrator) waitForTermination() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, terminationSignals...)
	o.logger.Verbose("waiting for termination signal")
	<-signals
}

// autoExcludeOutputPath implements step 2 of the orchestrator sequence:
// when the output path lies inside base_path, its absolute path, path
// relative to base_path, and basename are all added as exclude patterns, so
// the output file never gets read back into its own tree. As a special
// case, when the CLI's literal base-path argument was ".", the raw output
// path string is also excluded (since relative matching against "." can
// otherwise miss a pattern expressed exactly as given on the command line).
func (o *Orchestrator) autoExcludeOutputPath() {
	if o.cfg.OutputPath == "" {
		return
	}
	absOutput, err := filepath.Abs(o.cfg.OutputPath)
	if err != nil {
		o.logger.Verbosef("unable to resolve output path for auto-exclusion: %v", err)
		return
	}

	relative, err := filepath.Rel(o.cfg.BasePath, absOutput)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return
	}

	o.cfg.Excludes.Add(absOutput)
	o.cfg.Excludes.Add(filepath.ToSlash(relative))
	o.cfg.Excludes.Add(filepath.Base(absOutput))
	if o.rawBasePath == "." {
		o.cfg.Excludes.Add(o.cfg.OutputPath)
	}
}
