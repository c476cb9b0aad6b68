// Package output implements the deterministic byte layout emitted for a
// run: the section headers, the decorated directory tree, and the per-file
// content headers and trailers.
package output

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/fconcat/fconcat/pkg/humansize"
)

// Markers used on symlink tree lines in place of a regular file/directory
// decoration, per the symlink policy matrix.
const (
	MarkerSkipped     = "SYMLINK SKIPPED"
	MarkerBroken      = "BROKEN LINK"
	MarkerSymlinkDir  = "SYMLINK TO DIR"
	MarkerLoop        = "LOOP DETECTED"
	MarkerFollowing   = "FOLLOWING"
	MarkerPlaceholder = "PLACEHOLDER"
)

// indentUnit is the per-level indentation used on tree lines.
const indentUnit = "  "

// Formatter writes the structure and content sections to an underlying
// sink. It holds no buffering of its own beyond what io.Writer requires;
// every Write call is flushed through immediately, keeping with the
// single-writer, no-random-access output model.
type Formatter struct {
	w io.Writer
}

// New creates a Formatter writing to w.
func New(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Write implements io.Writer, passing raw bytes straight through to the
// underlying sink. It exists so a file's streamed content can be written
// between a FileHeader and FileTrailer call without the formatter
// re-wrapping or re-encoding it.
func (f *Formatter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *Formatter) writeString(s string) error {
	_, err := io.WriteString(f.w, s)
	return errors.Wrap(err, "unable to write to output sink")
}

func indent(level int) string {
	out := ""
	for i := 0; i < level; i++ {
		out += indentUnit
	}
	return out
}

// StructureHeader writes the leading "Directory Structure:" section header.
// It is written exactly once, before the first tree line.
func (f *Formatter) StructureHeader() error {
	return f.writeString("Directory Structure:\n==================\n\n")
}

// DirectoryLine writes a tree line for a directory at the given indentation
// level.
func (f *Formatter) DirectoryLine(level int, name string) error {
	return f.writeString(fmt.Sprintf("%s\U0001F4C1 %s/\n", indent(level), name))
}

// FileLine writes a tree line for a regular file (or a followed/included
// symlink to a file, which is rendered identically to a regular file per
// the content-pass "process as regular file" rule).
func (f *Formatter) FileLine(level int, name string, size uint64, showSize bool) error {
	if showSize {
		return f.writeString(fmt.Sprintf("%s\U0001F4C4 [%s] %s\n", indent(level), humansize.Format(size), name))
	}
	return f.writeString(fmt.Sprintf("%s\U0001F4C4 %s\n", indent(level), name))
}

// SymlinkMarkerLine writes a tree line for a symlink that did not resolve
// to a followed/included file, decorated with one of the Marker constants.
// size is only rendered when showSize is true; it's used for
// the Placeholder/file case, which carries a size alongside its marker.
func (f *Formatter) SymlinkMarkerLine(level int, name string, marker string, size uint64, showSize bool) error {
	if showSize {
		return f.writeString(fmt.Sprintf("%s\U0001F517 %s -> [%s] [%s]\n", indent(level), name, marker, humansize.Format(size)))
	}
	return f.writeString(fmt.Sprintf("%s\U0001F517 %s -> [%s]\n", indent(level), name, marker))
}

// TotalSizeFooter writes the total-size footer. Callers only invoke this
// when ShowSize is enabled.
func (f *Formatter) TotalSizeFooter(total uint64) error {
	return f.writeString(fmt.Sprintf("%s\n", totalSizeLine(total)))
}

func totalSizeLine(total uint64) string {
	return fmt.Sprintf("Total Size: %s", humansize.FormatWithExact(total))
}

// ContentHeader writes the leading "File Contents:" section header. It is
// written exactly once, before the first file header, immediately after the
// structure section (and its optional total-size footer).
func (f *Formatter) ContentHeader() error {
	return f.writeString("\nFile Contents:\n=============\n\n")
}

// FileHeader writes the per-file header line that precedes a file's
// streamed content. isSymlink appends " (symlink)" for a followed/included
// symlink to a file.
func (f *Formatter) FileHeader(relativePath string, isSymlink bool) error {
	suffix := ""
	if isSymlink {
		suffix = " (symlink)"
	}
	return f.writeString(fmt.Sprintf("// File: %s%s\n", relativePath, suffix))
}

// FileTrailer writes the exactly-two-newline separator between a file's
// content and the next file header (or end of output).
func (f *Formatter) FileTrailer() error {
	return f.writeString("\n\n")
}

// BinaryPlaceholderComment writes the one-line placeholder emitted in place
// of a binary file's content under the Placeholder binary policy.
func (f *Formatter) BinaryPlaceholderComment() error {
	return f.writeString("// [Binary file - content not displayed]\n")
}

// SymlinkPlaceholderComment writes the one-line placeholder emitted in place
// of a symlinked file's content under the Placeholder symlink policy.
func (f *Formatter) SymlinkPlaceholderComment() error {
	return f.writeString("// [Symlink - content not displayed]\n")
}
