package parser

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func mustFail(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error for %q, got none", src)
	}
	return err
}

// S1: nested while loops.
func TestNestedWhileLoops(t *testing.T) {
	src := `
	func main() -> i32 {
		var i:i32 = 0;
		while (i < 10) {
			var j:i32 = 0;
			while (j < 10) {
				j = j + 1;
			}
			i = i + 1;
		}
		return i;
	}`
	mustParse(t, src)
}

// S2: early-return joins — both branches of an if return.
func TestEarlyReturnBothBranches(t *testing.T) {
	src := `
	func abs(x:i32) -> i32 {
		if (x < 0) {
			return -x;
		} else {
			return x;
		}
	}`
	mustParse(t, src)
}

// S3: external declaration via trailing semicolon, no body.
func TestExternalDeclarationHasNoBody(t *testing.T) {
	prog := mustParse(t, `func puts(s:u8[]) -> i32;`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	if fd.Body != nil {
		t.Fatalf("expected external declaration to have a nil body")
	}
	if fd.String() != "func puts(s:u8[])->i32;" {
		t.Fatalf("got %q", fd.String())
	}
}

// S4: nested loops — break targets the innermost enclosing loop.
func TestBreakTargetsInnermostLoop(t *testing.T) {
	src := `
	func f() -> i32 {
		var i:i32 = 0;
		while (i < 10) {
			for (var j:i32 = 0; j < 10; j = j + 1) {
				if (j == 5) {
					break;
				}
			}
			i = i + 1;
		}
		return i;
	}`
	mustParse(t, src)
}

// S5: undefined identifier is a parse-time error.
func TestUndefinedIdentifierIsError(t *testing.T) {
	err := mustFail(t, `func f() -> i32 { return unknownThing; }`)
	if !strings.Contains(err.Error(), `unknown identifier "unknownThing"`) {
		t.Fatalf("got %v", err)
	}
}

// S6: a function declaration nested inside another body is rejected.
func TestNestedFunctionDeclarationIsError(t *testing.T) {
	err := mustFail(t, `
	func outer() -> i32 {
		func inner() -> i32 {
			return 1;
		}
		return 0;
	}`)
	if !strings.Contains(err.Error(), "function declarations must be at global scope") {
		t.Fatalf("got %v", err)
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	mustFail(t, `func f() -> i32 { break; return 0; }`)
}

func TestContinueOutsideLoopIsError(t *testing.T) {
	mustFail(t, `func f() -> i32 { continue; return 0; }`)
}

func TestStatementsIllegalAtTopLevel(t *testing.T) {
	mustFail(t, `return 1;`)
}

func TestDuplicateGlobalIsError(t *testing.T) {
	mustFail(t, `
	var x:i32 = 1;
	var x:i32 = 2;
	func main() -> i32 { return 0; }`)
}

func TestShadowingParamWithLocalIsError(t *testing.T) {
	mustFail(t, `
	func f(x:i32) -> i32 {
		var x:i32 = 0;
		return x;
	}`)
}

func TestInnerScopeRedeclaringOuterIsError(t *testing.T) {
	// A var in a nested block may not reuse a name from an enclosing
	// block: redeclaration is checked against every visible scope.
	err := mustFail(t, `
	func f() -> i32 {
		var x:i32 = 1;
		if (x == 1) {
			var x:i32 = 2;
			x = x + 1;
		}
		return x;
	}`)
	if !strings.Contains(err.Error(), `"x" is already declared`) {
		t.Fatalf("got %v", err)
	}
}

func TestMaxArgsBoundaryAccepted(t *testing.T) {
	params := make([]string, 16)
	args := make([]string, 16)
	for i := range params {
		params[i] = "p" + itoa(i) + ":i32"
		args[i] = "p" + itoa(i)
	}
	src := "func f(" + strings.Join(params, ",") + ") -> i32 { return f(" + strings.Join(args, ",") + "); }"
	mustParse(t, src)
}

func TestMaxArgsBoundaryExceededIsError(t *testing.T) {
	params := make([]string, 17)
	for i := range params {
		params[i] = "p" + itoa(i) + ":i32"
	}
	src := "func f(" + strings.Join(params, ",") + ") -> i32 { return 0; }"
	err := mustFail(t, src)
	if !strings.Contains(err.Error(), "too many parameters") {
		t.Fatalf("got %v", err)
	}
}

func TestCallWithTooManyArgumentsIsError(t *testing.T) {
	src := `
	func f(x:i32) -> i32 { return x; }
	func g() -> i32 {
		return f(1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1);
	}`
	err := mustFail(t, src)
	if !strings.Contains(err.Error(), "too many arguments") {
		t.Fatalf("got %v", err)
	}
}

func TestCallingNonFunctionIsError(t *testing.T) {
	mustFail(t, `
	func f() -> i32 {
		var x:i32 = 1;
		return x(1);
	}`)
}

func TestAssignToNonIdentifierIsError(t *testing.T) {
	mustFail(t, `func f() -> i32 { 1 = 2; return 0; }`)
}

func TestFunctionReferenceTypeSyntax(t *testing.T) {
	mustParse(t, `
	func apply(cb:func(i32->i32), x:i32) -> i32 {
		return cb(x);
	}`)
}

func TestPointerAndIndexedPointerPostfix(t *testing.T) {
	mustParse(t, `
	func f(p:i32*, arr:i32[]) -> i32 {
		return 0;
	}`)
}

func TestRecursiveFunctionResolvesOwnName(t *testing.T) {
	mustParse(t, `
	func fact(n:i32) -> i32 {
		if (n < 2) {
			return 1;
		}
		return n * fact(n - 1);
	}`)
}

func TestUnknownTypeNameIsError(t *testing.T) {
	mustFail(t, `func f(x:nope) -> i32 { return 0; }`)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}
