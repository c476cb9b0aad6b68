package demoplugins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fconcat/fconcat/pkg/logging"
	"github.com/fconcat/fconcat/pkg/pluginhost"
)

func TestUpperPrefixChainTransformsEachLine(t *testing.T) {
	chain := pluginhost.NewChain(logging.NewLogger(logging.LevelDisabled), Upper{}, Prefix{Text: "> "})
	var out bytes.Buffer
	if err := chain.StreamFile("a.txt", strings.NewReader("ab\ncd"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got, want := out.String(), "> AB\n> CD"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrefixHandlesChunkBoundarySplitLine(t *testing.T) {
	line := strings.Repeat("x", pluginhost.ChunkSize-2) + "\nrest"
	streamed := runThroughPrefix(t, line)

	// Feed the same content to Prefix directly in one shot to confirm the
	// streamed and single-buffer results agree, per the chunk-stitching
	// conformance invariant for boundary-spanning detectors.
	p := Prefix{Text: "> "}
	ctx, _ := p.FileStart("f.txt")
	head, err := p.ProcessChunk(ctx, []byte(line))
	if err != nil {
		t.Fatalf("ProcessChunk returned error: %v", err)
	}
	tail, err := p.FileEnd(ctx)
	if err != nil {
		t.Fatalf("FileEnd returned error: %v", err)
	}
	whole := string(head) + string(tail)
	if streamed != whole {
		t.Errorf("streamed output diverged: %q vs %q", streamed, whole)
	}
}

func runThroughPrefix(t *testing.T, content string) string {
	t.Helper()
	chain := pluginhost.NewChain(logging.NewLogger(logging.LevelDisabled), Prefix{Text: "> "})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader(content), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	return out.String()
}

func TestLineNumberPrefixesEachLine(t *testing.T) {
	chain := pluginhost.NewChain(logging.NewLogger(logging.LevelDisabled), LineNumber{})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("a\nb\nc"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got, want := out.String(), "1: a\n2: b\n3: c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
