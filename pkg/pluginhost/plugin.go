// Package pluginhost implements the streaming plugin chain: an ordered
// sequence of content transformers piped across fixed-size chunks of each
// text file's body during the content pass, with per-file state and a
// fallback policy that contains a single plugin's failure to the chunk it
// touched.
package pluginhost

// Plugin is the capability every chain member must implement: the two
// identifying metadata strings (name, version). The remaining six optional
// operations are modeled as separate optional interfaces below rather than
// six possibly-nil function pointers, since that's the idiomatic Go shape
// for "a slot may or may not be present" (a type assertion stands in for a
// null function-pointer check).
type Plugin interface {
	// Name returns the plugin's identifying name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
}

// Initializer is implemented by plugins with one-time global setup. Init is
// called at most once, before the content pass begins, in chain order.
type Initializer interface {
	Init() error
}

// Cleanuper is implemented by plugins with one-time global teardown.
// Cleanup is called at most once, at shutdown, in reverse chain order.
type Cleanuper interface {
	Cleanup() error
}

// FileStarter is implemented by plugins that allocate per-file state.
// FileStart is called once per text file entering the content pass, and
// returns a context value to be threaded through ProcessChunk/FileEnd for
// that file, plus a boolean indicating whether the plugin participates in
// this file at all. A false return skips the plugin for this file only,
// not the run.
type FileStarter interface {
	FileStart(relativePath string) (ctx any, ok bool)
}

// ChunkProcessor is implemented by plugins that transform file content.
// ProcessChunk receives up to 4096 bytes of input and may return a
// transformed buffer of any length (more than the input, for an expanding
// transform). A zero-length return means "unchanged": the host passes this
// plugin's input on to the next plugin, or to the sink, as it was. A
// non-nil error discards this plugin's contribution for this chunk only;
// the plugin keeps its context and remains loaded for subsequent chunks.
type ChunkProcessor interface {
	ProcessChunk(ctx any, input []byte) ([]byte, error)
}

// FileEnder is implemented by plugins that need a final flush opportunity
// after EOF, before the file's per-plugin context is released. Any bytes it
// returns are appended to the output sink.
type FileEnder interface {
	FileEnd(ctx any) ([]byte, error)
}

// FileCleanuper is implemented by plugins with per-file teardown, called
// after FileEnd.
type FileCleanuper interface {
	FileCleanup(ctx any)
}
