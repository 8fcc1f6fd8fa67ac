package parser

import (
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

// parsePattern parses the full pattern grammar: wildcards, literals,
// ranges, bindings, variant constructors, and array/object destructuring.
// It is shared by `let`/`for` destructuring and `match` arms.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.peek().Type {
	case lexer.TOKEN_IDENTIFIER:
		return p.parseIdentOrVariantPattern()
	case lexer.TOKEN_INT, lexer.TOKEN_FLOAT, lexer.TOKEN_STRING, lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NIL:
		return p.parseLiteralOrRangePattern()
	case lexer.TOKEN_MINUS:
		// Negative numeric literal, e.g. `-1 => ...`.
		return p.parseLiteralOrRangePattern()
	case lexer.TOKEN_LBRACKET:
		return p.parseArrayPattern()
	case lexer.TOKEN_LBRACE:
		return p.parseObjectPattern()
	default:
		loc := p.peek().Loc(p.file)
		p.fail(loc, "expected a pattern")
		return &ast.WildcardPattern{Base: ast.At(loc)}
	}
}

// parseObjectOrArrayPattern parses a destructuring pattern appearing
// directly in `let`/`for` binding position (array or object only).
func (p *Parser) parseObjectOrArrayPattern() ast.Pattern {
	if p.check(lexer.TOKEN_LBRACKET) {
		return p.parseArrayPattern()
	}
	return p.parseObjectPattern()
}

func (p *Parser) parseIdentOrVariantPattern() ast.Pattern {
	tok := p.advance()
	loc := tok.Loc(p.file)
	if tok.Lexeme == "_" {
		return &ast.WildcardPattern{Base: ast.At(loc)}
	}
	if isUpperFirst(tok.Lexeme) {
		variant := &ast.VariantPattern{Base: ast.At(loc), Name: tok.Lexeme}
		if p.check(lexer.TOKEN_LPAREN) {
			p.advance()
			for !p.check(lexer.TOKEN_RPAREN) {
				variant.Args = append(variant.Args, p.parsePattern())
				if !p.match(lexer.TOKEN_COMMA) {
					break
				}
			}
			p.expect(lexer.TOKEN_RPAREN, "')'")
		}
		return variant
	}
	return &ast.BindingPattern{Base: ast.At(loc), Name: tok.Lexeme}
}

func (p *Parser) parseLiteralOrRangePattern() ast.Pattern {
	loc := p.peek().Loc(p.file)
	lit := p.parseLiteralPatternValue()
	if p.check(lexer.TOKEN_DOTDOT) || p.check(lexer.TOKEN_DOTDOTEQ) {
		inclusive := p.peek().Type == lexer.TOKEN_DOTDOTEQ
		p.advance()
		end := p.parseLiteralPatternValue()
		return &ast.RangePattern{Base: ast.At(loc), Start: lit, End: end, Inclusive: inclusive}
	}
	return &ast.LiteralPattern{Base: ast.At(loc), Value: lit}
}

// parseLiteralPatternValue parses a single literal, with an optional
// leading unary minus, for use inside literal/range patterns.
func (p *Parser) parseLiteralPatternValue() ast.Expr {
	if p.check(lexer.TOKEN_MINUS) {
		loc := p.advanceLoc()
		operand := p.parseLiteralPatternValue()
		return &ast.UnaryExpr{Base: ast.At(loc), Op: ast.UnaryNeg, Operand: operand}
	}
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_INT:
		p.advance()
		return &ast.IntLiteral{Base: ast.At(tok.Loc(p.file)), Value: tok.IntValue}
	case lexer.TOKEN_FLOAT:
		p.advance()
		return &ast.FloatLiteral{Base: ast.At(tok.Loc(p.file)), Value: tok.FloatValue}
	case lexer.TOKEN_STRING:
		p.advance()
		return &ast.StringLiteral{Base: ast.At(tok.Loc(p.file)), Value: tok.Lexeme}
	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.At(tok.Loc(p.file)), Value: true}
	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.At(tok.Loc(p.file)), Value: false}
	case lexer.TOKEN_NIL:
		p.advance()
		return &ast.NilLiteral{Base: ast.At(tok.Loc(p.file))}
	default:
		p.fail(tok.Loc(p.file), "expected a literal pattern value")
		return &ast.NilLiteral{Base: ast.At(tok.Loc(p.file))}
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	loc := p.advanceLoc() // '['
	pat := &ast.ArrayPattern{Base: ast.At(loc)}
	for !p.check(lexer.TOKEN_RBRACKET) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			p.advance()
			pat.Rest = p.expectIdentName("rest binding name")
			break
		}
		pat.Elements = append(pat.Elements, p.parsePattern())
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RBRACKET, "']'")
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	loc := p.advanceLoc() // '{'
	pat := &ast.ObjectPattern{Base: ast.At(loc)}
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			p.advance()
			pat.Rest = p.expectIdentName("rest binding name")
			break
		}
		field := ast.ObjectPatternField{Key: p.expectIdentName("field name")}
		if p.check(lexer.TOKEN_COLON) {
			p.advance()
			field.Alias = p.expectIdentName("binding name")
		}
		if p.check(lexer.TOKEN_ASSIGN) {
			p.advance()
			field.Default = p.parseExpr()
		}
		pat.Fields = append(pat.Fields, field)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return pat
}
