package output

import (
	"bytes"
	"testing"
)

func TestStructureThenContentLayout(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)

	must(t, f.StructureHeader())
	must(t, f.FileLine(0, "a.txt", 2, false))
	must(t, f.FileLine(0, "b.bin", 2, false))
	must(t, f.ContentHeader())
	must(t, f.FileHeader("a.txt", false))
	mustWrite(t, &buf, "hi")
	must(t, f.FileTrailer())

	want := "Directory Structure:\n==================\n\n" +
		"\U0001F4C4 a.txt\n\U0001F4C4 b.bin\n" +
		"\nFile Contents:\n=============\n\n" +
		"// File: a.txt\nhi\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestBinaryPlaceholderComment(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)

	must(t, f.FileHeader("b.bin", false))
	must(t, f.BinaryPlaceholderComment())
	must(t, f.FileTrailer())

	want := "// File: b.bin\n// [Binary file - content not displayed]\n\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileLineAndFooterWithSizes(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)

	must(t, f.FileLine(0, "x", 3, true))
	must(t, f.FileLine(0, "y", 5, true))
	must(t, f.TotalSizeFooter(8))

	want := "\U0001F4C4 [3 B] x\n\U0001F4C4 [5 B] y\nTotal Size: 8 B (8 bytes)\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDirectoryLineIndentation(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)
	must(t, f.DirectoryLine(2, "sub"))
	if got, want := buf.String(), "    \U0001F4C1 sub/\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSymlinkMarkerLine(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)
	must(t, f.SymlinkMarkerLine(0, "link", MarkerFollowing, 0, false))
	if got, want := buf.String(), "\U0001F517 link -> [FOLLOWING]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileHeaderSymlinkSuffix(t *testing.T) {
	var buf bytes.Buffer
	f := New(&buf)
	must(t, f.FileHeader("link.txt", true))
	if got, want := buf.String(), "// File: link.txt (symlink)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustWrite(t *testing.T, buf *bytes.Buffer, s string) {
	t.Helper()
	if _, err := buf.WriteString(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
