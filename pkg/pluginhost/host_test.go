package pluginhost

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/fconcat/fconcat/pkg/logging"
)

// upperPlugin uppercases every chunk it sees. It has no per-file state and
// implements only the core Plugin and ChunkProcessor capabilities.
type upperPlugin struct{}

func (upperPlugin) Name() string    { return "upper" }
func (upperPlugin) Version() string { return "1.0.0" }
func (upperPlugin) ProcessChunk(_ any, input []byte) ([]byte, error) {
	return bytes.ToUpper(input), nil
}

// countingPlugin counts bytes seen per file and emits a trailer on FileEnd.
type countingPlugin struct{}

func (countingPlugin) Name() string    { return "counter" }
func (countingPlugin) Version() string { return "1.0.0" }

func (countingPlugin) FileStart(_ string) (any, bool) {
	count := new(int)
	return count, true
}

func (countingPlugin) ProcessChunk(ctx any, input []byte) ([]byte, error) {
	*ctx.(*int) += len(input)
	return input, nil
}

func (countingPlugin) FileEnd(ctx any) ([]byte, error) {
	return []byte("[" + strconv.Itoa(*ctx.(*int)) + " bytes]"), nil
}

// failingPlugin always errors on ProcessChunk, to exercise the fallback
// policy: its contribution to each chunk must be discarded without
// aborting the file.
type failingPlugin struct{}

func (failingPlugin) Name() string    { return "failing" }
func (failingPlugin) Version() string { return "1.0.0" }
func (failingPlugin) ProcessChunk(_ any, _ []byte) ([]byte, error) {
	return nil, errBoom
}

var errBoom = errTest("boom")

type errTest string

func (e errTest) Error() string { return string(e) }

// skippingStarter declines to participate in any file via FileStart.
type skippingStarter struct{}

func (skippingStarter) Name() string    { return "skipper" }
func (skippingStarter) Version() string { return "1.0.0" }
func (skippingStarter) FileStart(_ string) (any, bool) {
	return nil, false
}
func (skippingStarter) ProcessChunk(_ any, input []byte) ([]byte, error) {
	return []byte("SHOULD NOT APPEAR"), nil
}

func newTestLogger() *logging.Logger {
	return logging.NewLogger(logging.LevelDisabled)
}

func TestStreamFileEmptyChainCopies(t *testing.T) {
	chain := NewChain(newTestLogger())
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("hello"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got := out.String(); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestStreamFileSinglePluginTransforms(t *testing.T) {
	chain := NewChain(newTestLogger(), upperPlugin{})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("hello world"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got := out.String(); got != "HELLO WORLD" {
		t.Errorf("got %q, want %q", got, "HELLO WORLD")
	}
}

func TestStreamFileFallbackDiscardsFailingPluginOnly(t *testing.T) {
	chain := NewChain(newTestLogger(), upperPlugin{}, failingPlugin{})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("hello"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got := out.String(); got != "HELLO" {
		t.Errorf("got %q, want %q (failing plugin's error should not block prior output)", got, "HELLO")
	}
}

func TestStreamFileChunkingAcrossBoundary(t *testing.T) {
	chain := NewChain(newTestLogger())
	content := strings.Repeat("a", ChunkSize+100)
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader(content), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if out.String() != content {
		t.Errorf("chunked copy mismatch: got %d bytes, want %d", out.Len(), len(content))
	}
}

func TestStreamFileFileEndTailIsAppended(t *testing.T) {
	chain := NewChain(newTestLogger(), countingPlugin{})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("abc"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got := out.String(); got != "abc[3 bytes]" {
		t.Errorf("got %q, want %q", got, "abc[3 bytes]")
	}
}

func TestStreamFileSkippedPluginDoesNotRun(t *testing.T) {
	chain := NewChain(newTestLogger(), skippingStarter{})
	var out bytes.Buffer
	if err := chain.StreamFile("f.txt", strings.NewReader("hello"), &out); err != nil {
		t.Fatalf("StreamFile returned error: %v", err)
	}
	if got := out.String(); got != "hello" {
		t.Errorf("got %q, want %q (plugin should be inactive for this file)", got, "hello")
	}
}

func TestInitCalledInOrderAndCleanupReversed(t *testing.T) {
	var order []string
	init1 := &orderedPlugin{name: "first", order: &order}
	init2 := &orderedPlugin{name: "second", order: &order}
	chain := NewChain(newTestLogger(), init1, init2)
	if err := chain.Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	chain.Cleanup()
	want := []string{"first-init", "second-init", "second-cleanup", "first-cleanup"}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

type orderedPlugin struct {
	name  string
	order *[]string
}

func (p *orderedPlugin) Name() string    { return p.name }
func (p *orderedPlugin) Version() string { return "1.0.0" }
func (p *orderedPlugin) Init() error {
	*p.order = append(*p.order, p.name+"-init")
	return nil
}
func (p *orderedPlugin) Cleanup() error {
	*p.order = append(*p.order, p.name+"-cleanup")
	return nil
}

func TestInitFailureIsFatal(t *testing.T) {
	chain := NewChain(newTestLogger(), &failingInitPlugin{})
	if err := chain.Init(); err == nil {
		t.Fatal("expected Init to return an error")
	}
}

type failingInitPlugin struct{}

func (failingInitPlugin) Name() string    { return "bad-init" }
func (failingInitPlugin) Version() string { return "1.0.0" }
func (failingInitPlugin) Init() error     { return errBoom }
