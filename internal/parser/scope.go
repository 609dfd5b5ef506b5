package parser

import "github.com/minic-lang/minic/internal/types"

// SymbolTable is a vector of scope dictionaries (spec §4.2): Push enters a
// new lexical scope, Pop leaves it, and lookups scan from the innermost
// scope outward so inner declarations shadow outer ones. The parser is the
// single owner and linear mutator of a SymbolTable; there is no locking
// (spec §5).
type SymbolTable struct {
	scopes []map[string]types.Type
}

// NewSymbolTable creates a table with a single (global) scope already
// pushed.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]types.Type{{}}}
}

// Push enters a new nested scope.
func (s *SymbolTable) Push() {
	s.scopes = append(s.scopes, map[string]types.Type{})
}

// Pop leaves the innermost scope.
func (s *SymbolTable) Pop() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Depth returns 0 at global scope, 1 inside the outermost nested scope,
// and so on. The parser's placement checks do not use it; they go by the
// leading token of each item.
func (s *SymbolTable) Depth() int { return len(s.scopes) - 1 }

// Exists scans all scopes, innermost first, and reports whether name is
// bound anywhere currently visible.
func (s *SymbolTable) Exists(name string) bool {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

// GetType returns the first match scanning innermost to outermost, so
// that a shadowing inner declaration wins.
func (s *SymbolTable) GetType(name string) (types.Type, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Declare binds name in the current (innermost) scope.
func (s *SymbolTable) Declare(name string, t types.Type) {
	s.scopes[len(s.scopes)-1][name] = t
}
