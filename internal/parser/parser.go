// Package parser implements the recursive-descent parser with integrated
// symbol resolution described in spec §4.2: tokens go in, a fully typed
// AST with every identifier bound to a declaration comes out, or parsing
// halts at the first violation.
package parser

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/errors"
	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

// MaxArgs is the function parameter/argument cap (spec §4.2).
const MaxArgs = 16

// ParseError is an alias of errors.CompilerError, the type every parse
// failure is returned as. Being an alias, it is the same type as the
// lowering pass's errors, so a type switch cannot tell the two apart.
type ParseError = errors.CompilerError

// Parser consumes a token slice and produces a typed *ast.Program. It
// halts at the first violation (spec §4.2 "Error recovery"): there is no
// panic-and-resume, no accumulation of multiple errors.
type Parser struct {
	tokens []lexer.Token
	pos    int

	syms      *SymbolTable
	loopDepth int // >0 inside a while/for body, enables break/continue
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, syms: NewSymbolTable()}
}

// Parse scans src and parses it in one call (lexer.ScanAll, then
// New(...).ParseProgram); the driver, the debug CLI commands and the
// tests all go through it.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.ScanAll(src)
	if err != nil {
		return nil, errors.FromLexError(err.(*lexer.LexError))
	}
	return New(tokens).ParseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) fail(tok lexer.Token, msg string) error {
	return errors.NewCompilerError(tok.Line, tok.Lexeme(), msg)
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	if p.cur().Kind != kind {
		return lexer.Token{}, p.fail(p.cur(), fmt.Sprintf("expected %s, got %s", kind, p.cur().Kind))
	}
	return p.advance(), nil
}

// ParseProgram parses the full token stream into top-level declarations.
// Statements are illegal at top level (spec §4.2); only function and
// variable declarations are accepted there.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	var decls []ast.Stmt
	for p.cur().Kind != lexer.EOF {
		d, err := p.parseTopLevelItem()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return &ast.Program{Decls: decls}, nil
}

func (p *Parser) parseTopLevelItem() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.FUNC, lexer.METHOD, lexer.OPERATOR:
		return p.parseFuncDecl()
	case lexer.VAR:
		return p.parseVarDecl()
	default:
		return nil, p.fail(p.cur(), "statements are illegal at top level")
	}
}

// parseDeclOrStatement handles the body of a block: a nested function
// declaration is rejected (spec S6: "Function declarations must be at
// global scope"), a var declaration is always legal, anything else is a
// statement.
func (p *Parser) parseDeclOrStatement() (ast.Stmt, error) {
	switch p.cur().Kind {
	case lexer.FUNC, lexer.METHOD, lexer.OPERATOR:
		return nil, p.fail(p.cur(), "function declarations must be at global scope")
	case lexer.VAR:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

// --- expression parsing: precedence-climbing recursive descent, lowest
// to highest precedence per spec §4.2. ---

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.ASSIGN {
		opTok := p.advance()
		value, err := p.parseAssignment() // right-associative
		if err != nil {
			return nil, err
		}
		ident, ok := left.(*ast.Identifier)
		if !ok {
			return nil, p.fail(opTok, "invalid assignment target")
		}
		node := &ast.Assign{Target: ident, Value: value}
		node.Ln = opTok.Line
		node.SetType(ident.Type())
		return node, nil
	}
	return left, nil
}

func (p *Parser) binaryLevel(next func() (ast.Expr, error), kinds ...lexer.Kind) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for containsKind(kinds, p.cur().Kind) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		node := &ast.Binary{Lhs: left, Op: op.Kind, Rhs: right}
		node.Ln = op.Line
		// The parser assigns the result type conservatively as the left
		// operand's type (spec §4.2); the lowering pass picks the correct
		// machine op from IsSigned()/IsIntegerTy()/IsFloatTy().
		node.SetType(left.Type())
		left = node
	}
	return left, nil
}

func containsKind(kinds []lexer.Kind, k lexer.Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.binaryLevel(p.parseAnd, lexer.OR)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.binaryLevel(p.parseEquality, lexer.AND)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(p.parseComparison, lexer.EQ, lexer.NE)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.binaryLevel(p.parseAdditive, lexer.LT, lexer.GT, lexer.LE, lexer.GE)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(p.parseUnary, lexer.STAR, lexer.SLASH, lexer.PERCENT)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.cur().Kind == lexer.MINUS || p.cur().Kind == lexer.NOT {
		op := p.advance()
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		node := &ast.Unary{Op: op.Kind, Sub: sub}
		node.Ln = op.Line
		node.SetType(sub.Type())
		return node, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.LPAREN {
		callTok := p.advance()
		fref, ok := expr.Type().(types.FunctionReference)
		if !ok {
			return nil, p.fail(callTok, "callee is not callable")
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		node := &ast.Call{Callee: expr, Args: args}
		node.Ln = callTok.Line
		node.SetType(fref.Return)
		expr = node
	}
	return expr, nil
}

func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.cur().Kind != lexer.RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().Kind == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if len(args) > MaxArgs {
		return nil, p.fail(p.cur(), fmt.Sprintf("too many arguments (max %d)", MaxArgs))
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.INT:
		p.advance()
		lit := ast.NewLiteral(tok)
		lit.SetType(types.I32)
		return lit, nil
	case lexer.FLOAT:
		p.advance()
		lit := ast.NewLiteral(tok)
		lit.SetType(types.F64)
		return lit, nil
	case lexer.BOOL:
		p.advance()
		lit := ast.NewLiteral(tok)
		lit.SetType(types.Bool)
		return lit, nil
	case lexer.STRING:
		p.advance()
		lit := ast.NewLiteral(tok)
		lit.SetType(types.IndexedPointer{Elem: types.U8})
		return lit, nil
	case lexer.IDENT:
		p.advance()
		t, ok := p.syms.GetType(tok.Name)
		if !ok {
			return nil, p.fail(tok, fmt.Sprintf("unknown identifier %q", tok.Name))
		}
		ident := &ast.Identifier{Name: tok.Name}
		ident.Ln = tok.Line
		ident.SetType(t)
		return ident, nil
	case lexer.LPAREN:
		lparen := p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		node := &ast.Group{Inner: inner}
		node.Ln = lparen.Line
		node.SetType(inner.Type())
		return node, nil
	default:
		return nil, p.fail(tok, "expected expression")
	}
}
