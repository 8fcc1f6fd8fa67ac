package parser

import (
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

func (p *Parser) parseStateDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("state name")
	p.expect(lexer.TOKEN_ASSIGN, "'='")
	val := p.parseExpr()
	p.consumeStmtEnd()
	return &ast.StateDecl{Base: ast.At(loc), Name: name, Value: val}
}

func (p *Parser) parseComputedDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("computed name")
	p.expect(lexer.TOKEN_ASSIGN, "'='")
	val := p.parseExpr()
	p.consumeStmtEnd()
	return &ast.ComputedDecl{Base: ast.At(loc), Name: name, Value: val}
}

func (p *Parser) parseEffectDecl() ast.Stmt {
	loc := p.advanceLoc()
	return &ast.EffectDecl{Base: ast.At(loc), Body: p.parseBlock()}
}

func (p *Parser) parseComponentDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("component name")
	params := p.maybeParamList()
	p.expect(lexer.TOKEN_LBRACE, "'{'")

	decl := &ast.ComponentDecl{Base: ast.At(loc), Name: name, Params: params}
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		switch p.peek().Type {
		case lexer.TOKEN_IDENTIFIER:
			if p.peek().Lexeme == "style" {
				decl.Style = p.parseStyleDecl()
				continue
			}
			decl.Body = append(decl.Body, p.parseStmt())
		case lexer.TOKEN_LT:
			decl.Roots = append(decl.Roots, p.parseJSXElement())
		default:
			decl.Body = append(decl.Body, p.parseStmt())
		}
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return decl
}

// parseStyleDecl parses the component-scoped `style { ... }` block,
// capturing the CSS text between the braces by rejoining the tokenized
// lexemes with single spaces (the lexer has no dedicated CSS-text mode).
// Unlike JSX text in jsx.go, which is sliced from the source, the
// original spacing is not kept.
func (p *Parser) parseStyleDecl() *ast.StyleDecl {
	loc := p.advanceLoc() // 'style' identifier
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	var parts []string
	depth := 1
	for depth > 0 && !p.check(lexer.TOKEN_EOF) {
		switch p.peek().Type {
		case lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RBRACE:
			depth--
			if depth == 0 {
				p.advance()
				return &ast.StyleDecl{Base: ast.At(loc), Source: strings.TrimSpace(strings.Join(parts, " "))}
			}
		}
		parts = append(parts, p.advance().Lexeme)
	}
	return &ast.StyleDecl{Base: ast.At(loc), Source: strings.TrimSpace(strings.Join(parts, " "))}
}

func (p *Parser) parseStoreDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("store name")
	decl := &ast.StoreDecl{Base: ast.At(loc), Name: name}
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		decl.Body = append(decl.Body, p.parseStmt())
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return decl
}
