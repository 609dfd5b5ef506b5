// Package header implements the declaration emitter (spec §4.4): a
// textual interface consisting of one line per top-level declaration,
// using the same canonical type syntax the parser accepts, so the
// output round-trips back through the parser (spec §8 property 2).
package header

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/ast"
)

// Header is the prefix written before any declaration line.
const Header = "// GENERATED FILE"

// Emit walks prog's top-level declarations in order and renders the
// textual header described in spec §4.4: `func NAME(p1:T1,p2:T2,…)->R;`
// for every FuncDecl (body dropped, only the signature survives) and
// `var NAME:T;` for every VarDecl.
func Emit(prog *ast.Program) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			sb.WriteString(funcSignature(decl))
		case *ast.VarDecl:
			sb.WriteString(fmt.Sprintf("var %s:%s;", decl.Name, decl.Type.Canonical()))
		default:
			continue
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// funcSignature renders func NAME(p1:T1,p2:T2,…)->R; regardless of whether
// decl carries a body — the header never re-emits function bodies.
func funcSignature(decl *ast.FuncDecl) string {
	parts := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		parts[i] = fmt.Sprintf("%s:%s", p.Name, p.Type.Canonical())
	}
	return fmt.Sprintf("func %s(%s)->%s;", decl.Name, strings.Join(parts, ","), decl.ReturnType.Canonical())
}
