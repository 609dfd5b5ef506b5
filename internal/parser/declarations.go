package parser

import (
	"fmt"

	"github.com/minic-lang/minic/internal/ast"
	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

// parseFuncDecl parses a function, method, or operator declaration
// (spec §4.2). The keyword itself carries no semantic weight beyond
// introducing the declaration; all three are parsed identically.
//
//	func NAME ( [NAME:TYPE (, NAME:TYPE)*] ) [-> TYPE] ( ; | BLOCK )
//
// A trailing `;` instead of a body marks an external declaration
// (Body == nil). The function's name is registered in the enclosing
// scope with its synthesized FunctionReference type *before* its body
// is parsed, so direct recursion resolves (spec §4.2). A function
// declared later in the file is not yet visible inside this body.
func (p *Parser) parseFuncDecl() (ast.Stmt, error) {
	kw := p.advance() // FUNC, METHOD, or OPERATOR

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	if p.cur().Kind != lexer.RPAREN {
		for {
			pTok, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			pt, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: pTok.Name, Type: pt})
			if p.cur().Kind == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if len(params) > MaxArgs {
		return nil, p.fail(nameTok, fmt.Sprintf("too many parameters (max %d)", MaxArgs))
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}

	returnType, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}

	decl := &ast.FuncDecl{Name: nameTok.Name, Params: params, ReturnType: returnType}
	decl.Ln = kw.Line

	// Register the function's type before the body is parsed so calls to
	// itself (recursion) resolve during the same linear pass (spec §4.2).
	p.syms.Declare(decl.Name, decl.FuncReferenceType())

	if p.cur().Kind == lexer.SEMICOLON {
		p.advance()
		return decl, nil
	}

	p.syms.Push()
	for _, prm := range params {
		p.syms.Declare(prm.Name, prm.Type)
	}
	body, err := p.parseBlock()
	p.syms.Pop()
	if err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

// parseReturnType parses the optional `-> TYPE` suffix, defaulting to
// void when absent.
func (p *Parser) parseReturnType() (types.Type, error) {
	if p.cur().Kind != lexer.ARROW {
		return types.Void, nil
	}
	p.advance()
	return p.parseType()
}

// parseVarDecl parses `var NAME:TYPE [= expr];`. Redeclaring a name
// already visible in the current scope chain is rejected (spec §4.2):
// at global scope this catches duplicate globals, inside a function it
// also catches shadowing a parameter or an outer local.
func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	kw := p.advance() // VAR

	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if p.syms.Exists(nameTok.Name) {
		return nil, p.fail(nameTok, fmt.Sprintf("%q is already declared", nameTok.Name))
	}

	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	declType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.cur().Kind == lexer.ASSIGN {
		p.advance()
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	p.syms.Declare(nameTok.Name, declType)

	decl := &ast.VarDecl{Name: nameTok.Name, Type: declType, Init: init}
	decl.Ln = kw.Line
	return decl, nil
}
