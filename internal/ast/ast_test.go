package ast

import (
	"testing"

	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

func TestLiteralString(t *testing.T) {
	lit := NewLiteral(lexer.Token{Kind: lexer.INT, IntValue: 42, Line: 3})
	if lit.Line() != 3 {
		t.Errorf("got line %d, want 3", lit.Line())
	}
	if lit.String() != "42" {
		t.Errorf("got %q", lit.String())
	}
}

func TestFuncDeclExternalHasNilBody(t *testing.T) {
	fd := &FuncDecl{
		Name:       "puts",
		Params:     []Param{{Name: "s", Type: types.IndexedPointer{Elem: types.U8}}},
		ReturnType: types.I32,
	}
	if fd.Body != nil {
		t.Fatal("external decl should have nil body")
	}
	want := "func puts(s:u8[])->i32;"
	if got := fd.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFuncReferenceTypeCanonical(t *testing.T) {
	fd := &FuncDecl{
		Name:       "add",
		Params:     []Param{{Name: "a", Type: types.I32}, {Name: "b", Type: types.I32}},
		ReturnType: types.I32,
	}
	ref := fd.FuncReferenceType()
	if got, want := ref.Canonical(), "func(i32,i32->i32)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAssignTargetMustBeIdentifierByConstruction(t *testing.T) {
	a := &Assign{
		Target: &Identifier{Name: "x"},
		Value:  NewLiteral(lexer.Token{Kind: lexer.INT, IntValue: 1}),
	}
	if got, want := a.String(), "(x = 1)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
