package header_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/minic-lang/minic/internal/header"
	"github.com/minic-lang/minic/internal/parser"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestEmitFunctionsAndGlobals(t *testing.T) {
	prog, err := parser.Parse(`
	var counter:i32 = 0;
	func add(a:i32, b:i32) -> i32 { return a + b; }
	func puts(s:u8[]) -> i32;
	func tick() { counter = counter + 1; }
	`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	snaps.MatchSnapshot(t, header.Emit(prog))
}

func TestEmitEmptyProgram(t *testing.T) {
	prog, err := parser.Parse(``)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := header.Emit(prog)
	if got != header.Header+"\n" {
		t.Fatalf("got %q", got)
	}
}

// TestEmitHeaderRoundTrips exercises spec §8 property 2: the header
// generated from a parsed program is itself parseable.
func TestEmitHeaderRoundTrips(t *testing.T) {
	prog, err := parser.Parse(`
	func f(x:i32, p:i32*, arr:f64[]) -> i32 { return x; }
	var g:bool = true;
	`)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	out := header.Emit(prog)
	if _, err := parser.Parse(out); err != nil {
		t.Fatalf("emitted header failed to re-parse: %v\n%s", err, out)
	}
}
