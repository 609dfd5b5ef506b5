package ast

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/types"
)

// Program is the ordered list of top-level declarations produced by a
// complete parse (spec §4.2: top-level is a sequence of declarations).
type Program struct {
	Decls []Stmt
}

// Block introduces a lexical scope around its statements.
type Block struct {
	stmtBase
	Stmts []Stmt
}

func (b *Block) String() string {
	parts := make([]string, len(b.Stmts))
	for i, s := range b.Stmts {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func NewBlock(line int, stmts []Stmt) *Block {
	return &Block{stmtBase: stmtBase{Ln: line}, Stmts: stmts}
}

// ExprStmt wraps a bare expression used as a statement.
type ExprStmt struct {
	stmtBase
	X Expr
}

func (e *ExprStmt) String() string { return e.X.String() + ";" }

// Param is a single function parameter.
type Param struct {
	Name string
	Type types.Type
}

// FuncDecl is a top-level function declaration. Body is nil for an
// external declaration (spec §3, §4.2).
type FuncDecl struct {
	stmtBase
	Name       string
	Params     []Param
	ReturnType types.Type
	Body       *Block // nil => external
}

func (f *FuncDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = fmt.Sprintf("%s:%s", p.Name, p.Type.Canonical())
	}
	sig := fmt.Sprintf("func %s(%s)->%s", f.Name, strings.Join(parts, ","), f.ReturnType.Canonical())
	if f.Body == nil {
		return sig + ";"
	}
	return sig + " " + f.Body.String()
}

// FuncReferenceType builds the FunctionReference type synthesized for a
// FuncDecl's name, so it can be registered in the symbol table before the
// body is parsed (spec §4.2, to permit recursion).
func (f *FuncDecl) FuncReferenceType() types.FunctionReference {
	args := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		args[i] = p.Type
	}
	return types.FunctionReference{Return: f.ReturnType, Args: args}
}

// VarDecl declares a variable, optionally with an initializer.
type VarDecl struct {
	stmtBase
	Name string
	Type types.Type
	Init Expr // nil if absent
}

func (v *VarDecl) String() string {
	if v.Init == nil {
		return fmt.Sprintf("var %s:%s;", v.Name, v.Type.Canonical())
	}
	return fmt.Sprintf("var %s:%s = %s;", v.Name, v.Type.Canonical(), v.Init.String())
}

// Return is `return;` or `return value;`.
type Return struct {
	stmtBase
	Value Expr // nil if absent
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// If is `if (cond) then [else else]`.
type If struct {
	stmtBase
	Cond Expr
	Then *Block
	Else *Block // nil if absent
}

func (i *If) String() string {
	if i.Else == nil {
		return fmt.Sprintf("if (%s) %s", i.Cond.String(), i.Then.String())
	}
	return fmt.Sprintf("if (%s) %s else %s", i.Cond.String(), i.Then.String(), i.Else.String())
}

// While is `while (cond) body`.
type While struct {
	stmtBase
	Cond Expr
	Body *Block
}

func (w *While) String() string {
	return fmt.Sprintf("while (%s) %s", w.Cond.String(), w.Body.String())
}

// For is a C-style for loop; Init, Cond, and Incr are each optional.
// Init may be a *VarDecl or an *ExprStmt (spec §3).
type For struct {
	stmtBase
	Init Stmt // nil, *VarDecl, or *ExprStmt
	Cond Expr // nil if absent
	Incr Expr // nil if absent
	Body *Block
}

func (f *For) String() string {
	initStr, condStr, incrStr := "", "", ""
	if f.Init != nil {
		initStr = f.Init.String()
	}
	if f.Cond != nil {
		condStr = f.Cond.String()
	}
	if f.Incr != nil {
		incrStr = f.Incr.String()
	}
	return fmt.Sprintf("for (%s %s; %s) %s", initStr, condStr, incrStr, f.Body.String())
}

// Break targets the innermost enclosing while/for.
type Break struct{ stmtBase }

func (b *Break) String() string { return "break;" }

// Continue targets the innermost enclosing while/for.
type Continue struct{ stmtBase }

func (c *Continue) String() string { return "continue;" }
