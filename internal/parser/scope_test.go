package parser

import (
	"testing"

	"github.com/minic-lang/minic/internal/types"
)

func TestSymbolTableDeclareAndLookup(t *testing.T) {
	s := NewSymbolTable()
	s.Declare("x", types.I32)
	ty, ok := s.GetType("x")
	if !ok || !types.Equal(ty, types.I32) {
		t.Fatalf("expected x:i32, got %v, %v", ty, ok)
	}
}

func TestSymbolTableInnerShadowsOuter(t *testing.T) {
	s := NewSymbolTable()
	s.Declare("x", types.I32)
	s.Push()
	s.Declare("x", types.F64)
	ty, ok := s.GetType("x")
	if !ok || !types.Equal(ty, types.F64) {
		t.Fatalf("expected inner x:f64 to shadow outer, got %v", ty)
	}
	s.Pop()
	ty, ok = s.GetType("x")
	if !ok || !types.Equal(ty, types.I32) {
		t.Fatalf("expected outer x:i32 to be visible again after pop, got %v", ty)
	}
}

func TestSymbolTableExistsScansAllScopes(t *testing.T) {
	s := NewSymbolTable()
	s.Declare("g", types.Bool)
	s.Push()
	if !s.Exists("g") {
		t.Fatalf("expected g to be visible from nested scope")
	}
}

func TestSymbolTableUnknownNameNotFound(t *testing.T) {
	s := NewSymbolTable()
	if _, ok := s.GetType("missing"); ok {
		t.Fatalf("expected missing to be absent")
	}
}

func TestSymbolTableDepth(t *testing.T) {
	s := NewSymbolTable()
	if s.Depth() != 0 {
		t.Fatalf("expected depth 0 at global scope, got %d", s.Depth())
	}
	s.Push()
	if s.Depth() != 1 {
		t.Fatalf("expected depth 1 after one push, got %d", s.Depth())
	}
}
