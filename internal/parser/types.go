package parser

import (
	"fmt"

	"github.com/minic-lang/minic/internal/lexer"
	"github.com/minic-lang/minic/internal/types"
)

// parseType parses a type expression (spec §4.2):
//
//	IDENT postfix*
//	func( t1, t2, … -> r ) postfix*
//	( type ) postfix*
//
// where each postfix marker is `[]` (IndexedPointer) or `*`
// (ReferencePointer), repeatable in any order.
func (p *Parser) parseType() (types.Type, error) {
	base, err := p.parseTypeBase()
	if err != nil {
		return nil, err
	}
	return p.parseTypePostfix(base)
}

func (p *Parser) parseTypeBase() (types.Type, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IDENT:
		if !types.ScalarNames[tok.Name] {
			return nil, p.fail(tok, fmt.Sprintf("unknown type %q", tok.Name))
		}
		p.advance()
		return types.Named{Name: tok.Name}, nil

	case lexer.FUNC:
		p.advance()
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		var args []types.Type
		if p.cur().Kind != lexer.ARROW {
			for {
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				args = append(args, t)
				if p.cur().Kind == lexer.COMMA {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(lexer.ARROW); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return types.FunctionReference{Return: ret, Args: args}, nil

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.fail(tok, "expected type expression")
	}
}

func (p *Parser) parseTypePostfix(base types.Type) (types.Type, error) {
	for {
		switch p.cur().Kind {
		case lexer.LBRACKET:
			p.advance()
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			base = types.IndexedPointer{Elem: base}
		case lexer.STAR:
			p.advance()
			base = types.ReferencePointer{Elem: base}
		default:
			return base, nil
		}
	}
}
