// Package ast defines the typed syntax tree produced by the parser.
//
// Node ownership is tree-shaped: each parent owns its children exclusively
// and the tree contains no cycles (spec §3, §5). The parser's scope stack
// and symbol tables hold non-owning references into declarations they have
// already emitted; nothing here is reference-counted or shared-owned.
package ast

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

// Node is the base interface implemented by every expression and
// statement in the tree.
type Node interface {
	Line() int
	String() string
}

// Expr is any node that produces a value. Every Expr carries a resolved
// Type, set by the parser (spec §3, testable property 3).
type Expr interface {
	Node
	exprNode()
	Type() types.Type
	SetType(types.Type)
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// exprBase factors out the line/type bookkeeping shared by every
// expression variant.
type exprBase struct {
	Ln  int
	Typ types.Type
}

func (e *exprBase) Line() int            { return e.Ln }
func (e *exprBase) Type() types.Type     { return e.Typ }
func (e *exprBase) SetType(t types.Type) { e.Typ = t }
func (e *exprBase) exprNode()            {}

// stmtBase factors out the line bookkeeping shared by every statement
// variant.
type stmtBase struct {
	Ln int
}

func (s *stmtBase) Line() int { return s.Ln }
func (s *stmtBase) stmtNode() {}

// Literal is a literal token: bool, integer, double, or string.
type Literal struct {
	exprBase
	Token lexer.Token
}

func NewLiteral(tok lexer.Token) *Literal {
	return &Literal{exprBase: exprBase{Ln: tok.Line}, Token: tok}
}

func (l *Literal) String() string { return l.Token.Lexeme() }

// Identifier is a name reference resolved against the symbol table at
// parse time.
type Identifier struct {
	exprBase
	Name string
}

func (i *Identifier) String() string { return i.Name }

// Unary is a prefix `-` or `!` expression. Its type is the sub-expression's
// type (spec §3).
type Unary struct {
	exprBase
	Op  lexer.Kind // MINUS or NOT
	Sub Expr
}

func (u *Unary) String() string {
	op := "-"
	if u.Op == lexer.NOT {
		op = "!"
	}
	return fmt.Sprintf("(%s%s)", op, u.Sub.String())
}

// Binary is an arithmetic, comparison, or logical infix expression.
type Binary struct {
	exprBase
	Lhs Expr
	Op  lexer.Kind
	Rhs Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Lhs.String(), b.Op.String(), b.Rhs.String())
}

// Group is a transparent parenthesized expression: its type is the
// inner expression's type.
type Group struct {
	exprBase
	Inner Expr
}

func (g *Group) String() string { return "(" + g.Inner.String() + ")" }

// Assign is `target = value`; the target must be an *Identifier (enforced
// by the parser, spec §4.2).
type Assign struct {
	exprBase
	Target *Identifier
	Value  Expr
}

func (a *Assign) String() string {
	return fmt.Sprintf("(%s = %s)", a.Target.String(), a.Value.String())
}

// Call is a function-call expression; its type is the callee's return
// type once the callee resolves to a FunctionReference.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(parts, ", "))
}
