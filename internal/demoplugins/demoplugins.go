// Package demoplugins provides small in-process plugins that exercise the
// full pluginhost.Plugin capability surface, standing in for the
// out-of-tree shared-object plugins that would otherwise be loaded
// dynamically. They're used by tests and by the CLI's --plugin flag when a
// path names one of their registered identifiers instead of a loadable
// shared object, so the chunked pipeline and its boundary-spanning
// statefulness can be exercised without a compiled .so on disk.
package demoplugins

import (
	"bytes"
	"strconv"
)

// Upper uppercases every byte it sees. It's stateless between chunks, so it
// satisfies the "pure plugin" conformance criterion: streaming it in
// 4096-byte chunks or feeding it the whole file as one buffer yields
// identical output.
type Upper struct{}

func (Upper) Name() string    { return "upper" }
func (Upper) Version() string { return "1.0.0" }

func (Upper) ProcessChunk(_ any, input []byte) ([]byte, error) {
	return bytes.ToUpper(input), nil
}

// Prefix prepends a fixed string to every line of a file's content. Because
// a chunk boundary can fall in the middle of a line, Prefix carries an
// unterminated line fragment forward in its per-file context; this is the
// boundary-spanning detector the chunk-stitching invariant is stated
// against.
type Prefix struct {
	Text string
}

type prefixState struct {
	carry []byte
}

func (p Prefix) Name() string    { return "prefix" }
func (p Prefix) Version() string { return "1.0.0" }

func (p Prefix) FileStart(_ string) (any, bool) {
	return &prefixState{}, true
}

func (p Prefix) ProcessChunk(ctx any, input []byte) ([]byte, error) {
	state := ctx.(*prefixState)
	buffer := append(state.carry, input...)
	state.carry = nil

	var out []byte
	for {
		index := bytes.IndexByte(buffer, '\n')
		if index == -1 {
			state.carry = append([]byte(nil), buffer...)
			break
		}
		out = append(out, p.Text...)
		out = append(out, buffer[:index+1]...)
		buffer = buffer[index+1:]
	}
	return out, nil
}

func (p Prefix) FileEnd(ctx any) ([]byte, error) {
	state := ctx.(*prefixState)
	if len(state.carry) == 0 {
		return nil, nil
	}
	out := append([]byte(p.Text), state.carry...)
	state.carry = nil
	return out, nil
}

// LineNumber prefixes every line with a 1-based, per-file incrementing
// counter. Like Prefix, it carries an unterminated line fragment forward in
// its per-file context, alongside the next line number.
type LineNumber struct{}

type lineNumberState struct {
	carry []byte
	next  int
}

func (LineNumber) Name() string    { return "linenumber" }
func (LineNumber) Version() string { return "1.0.0" }

func (LineNumber) FileStart(_ string) (any, bool) {
	return &lineNumberState{next: 1}, true
}

func (LineNumber) ProcessChunk(ctx any, input []byte) ([]byte, error) {
	state := ctx.(*lineNumberState)
	buffer := append(state.carry, input...)
	state.carry = nil

	var out []byte
	for {
		index := bytes.IndexByte(buffer, '\n')
		if index == -1 {
			state.carry = append([]byte(nil), buffer...)
			break
		}
		out = append(out, []byte(formatLineNumber(state.next))...)
		out = append(out, buffer[:index+1]...)
		state.next++
		buffer = buffer[index+1:]
	}
	return out, nil
}

func (LineNumber) FileEnd(ctx any) ([]byte, error) {
	state := ctx.(*lineNumberState)
	if len(state.carry) == 0 {
		return nil, nil
	}
	out := append([]byte(formatLineNumber(state.next)), state.carry...)
	state.carry = nil
	return out, nil
}

func formatLineNumber(n int) string {
	return strconv.Itoa(n) + ": "
}
