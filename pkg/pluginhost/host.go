package pluginhost

import (
	"io"

	"github.com/pkg/errors"

	"github.com/fconcat/fconcat/pkg/logging"
)

// ChunkSize is the fixed size of the buffers fed to ProcessChunk. The last
// chunk of a file is not specially marked; end-of-file is signaled only by
// calling FileEnd once reads are exhausted.
const ChunkSize = 4096

// Chain is an ordered, loaded sequence of plugins. The zero value is not
// usable; construct one with NewChain. A Chain preserves the order its
// plugins were supplied in, since that order is user-specified and
// observable in the transformed output.
type Chain struct {
	plugins    []Plugin
	logger     *logging.Logger
	initCalled []bool
}

// NewChain constructs a plugin chain from already-resolved plugins, in the
// order they should be applied. Resolving a plugin from a path (the dynamic
// loading case) is handled separately by LoadFromPath; NewChain itself only cares
// about the in-process Plugin values, which covers both dynamically loaded
// and statically registered plugins uniformly once resolved.
func NewChain(logger *logging.Logger, plugins ...Plugin) *Chain {
	return &Chain{
		plugins: plugins,
		logger:  logger.Sublogger("pluginhost"),
	}
}

// Len reports the number of plugins in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.plugins)
}

// Init calls Init on every plugin that implements Initializer, in chain
// order, stopping at (and returning) the first error. Per the load protocol,
// an init failure is fatal to the run and must occur before the content pass
// begins.
func (c *Chain) Init() error {
	c.initCalled = make([]bool, len(c.plugins))
	for i, p := range c.plugins {
		if initializer, ok := p.(Initializer); ok {
			if err := initializer.Init(); err != nil {
				return errors.Wrapf(err, "plugin %q failed to initialize", p.Name())
			}
		}
		c.initCalled[i] = true
	}
	return nil
}

// Cleanup calls Cleanup on every plugin that implements Cleanuper and whose
// Init step completed in the last call to Init, in reverse chain order,
// unloading in the opposite order plugins were loaded. Plugins that Init
// never reached are not cleaned up.
// Cleanup is best-effort: a failure from one plugin's Cleanup is logged and
// does not prevent the others from being torn down.
func (c *Chain) Cleanup() {
	for i := len(c.plugins) - 1; i >= 0; i-- {
		if i >= len(c.initCalled) || !c.initCalled[i] {
			continue
		}
		p := c.plugins[i]
		if cleanuper, ok := p.(Cleanuper); ok {
			if err := cleanuper.Cleanup(); err != nil {
				c.logger.Warn(errors.Wrapf(err, "plugin %q cleanup failed", p.Name()))
			}
		}
	}
}

// fileSession holds the per-plugin state for one file's pass through the
// chain, bracketed by file_start/file_cleanup.
type fileSession struct {
	ctx    []any
	active []bool
}

// startFile allocates a per-file context for every participating plugin. A
// plugin that doesn't implement FileStarter always participates (with a nil
// context); a plugin that does implement it participates only if FileStart
// returns ok=true.
func (c *Chain) startFile(relativePath string) *fileSession {
	session := &fileSession{
		ctx:    make([]any, len(c.plugins)),
		active: make([]bool, len(c.plugins)),
	}
	for i, p := range c.plugins {
		starter, implementsStarter := p.(FileStarter)
		if !implementsStarter {
			session.active[i] = true
			continue
		}
		ctx, ok := starter.FileStart(relativePath)
		session.ctx[i] = ctx
		session.active[i] = ok
	}
	return session
}

// processChunk pipes a single chunk through every active plugin left to
// right. If a plugin returns an empty output, the next plugin receives the
// same input that plugin was given (the chunk is treated as unchanged). If a
// plugin's ProcessChunk returns an error, that plugin's contribution to this
// chunk is discarded and the pipeline continues with the input it had
// before that plugin; the plugin keeps its context and is still invoked on
// later chunks.
func (c *Chain) processChunk(session *fileSession, chunk []byte) []byte {
	current := chunk
	for i, p := range c.plugins {
		if !session.active[i] {
			continue
		}
		processor, ok := p.(ChunkProcessor)
		if !ok {
			continue
		}
		output, err := processor.ProcessChunk(session.ctx[i], current)
		if err != nil {
			c.logger.Verbosef("plugin %q failed on chunk, discarding its contribution: %v", p.Name(), err)
			continue
		}
		if len(output) == 0 {
			continue
		}
		current = output
	}
	return current
}

// endFile calls FileEnd on every active plugin that implements FileEnder and
// concatenates the returned tail bytes, in chain order.
func (c *Chain) endFile(session *fileSession) []byte {
	var tail []byte
	for i, p := range c.plugins {
		if !session.active[i] {
			continue
		}
		ender, ok := p.(FileEnder)
		if !ok {
			continue
		}
		out, err := ender.FileEnd(session.ctx[i])
		if err != nil {
			c.logger.Verbosef("plugin %q failed during file_end: %v", p.Name(), err)
			continue
		}
		tail = append(tail, out...)
	}
	return tail
}

// cleanupFile calls FileCleanup on every active plugin that implements
// FileCleanuper.
func (c *Chain) cleanupFile(session *fileSession) {
	for i, p := range c.plugins {
		if !session.active[i] {
			continue
		}
		if cleanuper, ok := p.(FileCleanuper); ok {
			cleanuper.FileCleanup(session.ctx[i])
		}
	}
}

// StreamFile pipes src through the plugin chain in ChunkSize chunks, writing
// the result (and any file_end tail bytes) to dst. With an empty chain, this
// degenerates to a direct copy from src to dst. relativePath is the path
// passed to each plugin's FileStart.
func (c *Chain) StreamFile(relativePath string, src io.Reader, dst io.Writer) error {
	if c.Len() == 0 {
		_, err := io.Copy(dst, src)
		return errors.Wrap(err, "unable to copy file content")
	}

	session := c.startFile(relativePath)
	defer c.cleanupFile(session)

	buffer := make([]byte, ChunkSize)
	for {
		n, readErr := src.Read(buffer)
		if n > 0 {
			output := c.processChunk(session, buffer[:n])
			if _, err := dst.Write(output); err != nil {
				return errors.Wrap(err, "unable to write transformed chunk")
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return errors.Wrap(readErr, "unable to read file content")
		}
	}

	if tail := c.endFile(session); len(tail) > 0 {
		if _, err := dst.Write(tail); err != nil {
			return errors.Wrap(err, "unable to write file_end tail bytes")
		}
	}

	return nil
}
