package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.mc")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp source: %v", err)
	}
	return path
}

func TestRunCompileHeaderMode(t *testing.T) {
	input := writeTempSource(t, `
	func add(a:i32, b:i32) -> i32 { return a + b; }
	var total:i32 = 0;
	`)
	output := filepath.Join(filepath.Dir(input), "out.mch")

	headerMode = true
	defer func() { headerMode = false }()

	if err := runCompile(rootCmd, []string{input, output}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(got), "func add(a:i32,b:i32)->i32;") {
		t.Fatalf("missing function signature in header, got %q", got)
	}
	if !strings.Contains(string(got), "var total:i32;") {
		t.Fatalf("missing global var in header, got %q", got)
	}
}

func TestRunCompileReportsParseError(t *testing.T) {
	input := writeTempSource(t, `return 1;`)
	output := filepath.Join(filepath.Dir(input), "out.mch")

	headerMode = true
	defer func() { headerMode = false }()

	if err := runCompile(rootCmd, []string{input, output}); err == nil {
		t.Fatalf("expected an error for a statement at top level")
	}
}

func TestRunLexPrintsTokens(t *testing.T) {
	input := writeTempSource(t, `var x:i32 = 1;`)
	if err := runLex(lexCmd, []string{input}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunParsePrintsDecls(t *testing.T) {
	input := writeTempSource(t, `var x:i32 = 1;`)
	if err := runParse(parseCmd, []string{input}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecuteHeaderModeEndToEnd drives rootCmd.Execute() itself, rather
// than calling runCompile directly, so that cobra's own flag
// registration (including InitDefaultHelpFlag's "-h" auto-bind) runs on
// every invocation. This guards against the "-h" shorthand collision
// between --header and cobra's built-in --help flag.
func TestExecuteHeaderModeEndToEnd(t *testing.T) {
	input := writeTempSource(t, `func add(a:i32, b:i32) -> i32 { return a + b; }`)
	output := filepath.Join(filepath.Dir(input), "out.mch")

	rootCmd.SetArgs([]string{"-h", input, output})
	defer func() {
		rootCmd.SetArgs(nil)
		headerMode = false
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(got), "func add(a:i32,b:i32)->i32;") {
		t.Fatalf("missing function signature in header, got %q", got)
	}
}
