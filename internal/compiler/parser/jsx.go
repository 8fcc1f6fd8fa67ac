package parser

import (
	"strings"
	"unicode"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

// parseJSXElement parses `<tag attrs...>children</tag>`, the self-closing
// form `<tag attrs... />`, and the fragment form `<>children</>`. The
// current token is the opening '<'.
//
// Text content between tags is recovered from the original source rather
// than a dedicated lexer JSX-text mode: the lexer tokenizes the whole file
// in one pass before parsing begins, so it cannot know in advance which
// spans are JSX children. collectJSXText instead slices the verbatim bytes
// spanned by the consumed tokens out of the source and only collapses
// whitespace runs, so punctuation that had no space around it in the
// source (e.g. "Hello,") keeps none.
func (p *Parser) parseJSXElement() ast.JSXNode {
	loc := p.advanceLoc() // '<'

	if p.check(lexer.TOKEN_GT) {
		p.advance()
		children := p.parseJSXChildren()
		p.expect(lexer.TOKEN_LT_SLASH, "'</'")
		p.expect(lexer.TOKEN_GT, "'>' closing fragment")
		return &ast.JSXElement{Base: ast.At(loc), Tag: "", Children: children}
	}

	tag := p.expectIdentName("tag name")
	el := &ast.JSXElement{Base: ast.At(loc), Tag: tag, IsComponent: isUpperFirst(tag)}
	el.Attrs = p.parseJSXAttrs()

	if p.match(lexer.TOKEN_SLASH) {
		p.expect(lexer.TOKEN_GT, "'>' closing self-closing tag")
		el.SelfClosing = true
		return el
	}
	p.expect(lexer.TOKEN_GT, "'>'")
	el.Children = p.parseJSXChildren()
	p.expect(lexer.TOKEN_LT_SLASH, "'</'")
	if p.check(lexer.TOKEN_IDENTIFIER) {
		p.advance() // closing tag name, not checked against the opener
	}
	p.expect(lexer.TOKEN_GT, "'>'")
	return el
}

func (p *Parser) parseJSXAttrs() []ast.JSXAttr {
	var attrs []ast.JSXAttr
	for !p.check(lexer.TOKEN_GT) && !p.check(lexer.TOKEN_SLASH) && !p.check(lexer.TOKEN_EOF) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			p.advance()
			attrs = append(attrs, ast.JSXAttr{Kind: ast.JSXAttrSpread, Value: p.parseExpr()})
			continue
		}
		attrs = append(attrs, p.parseJSXAttr())
	}
	return attrs
}

func (p *Parser) parseJSXAttr() ast.JSXAttr {
	prefix := p.expectIdentName("attribute name")
	attr := ast.JSXAttr{Kind: ast.JSXAttrPlain, Name: prefix}

	if p.check(lexer.TOKEN_COLON) {
		p.advance()
		sub := p.expectIdentName("attribute directive target")
		switch prefix {
		case "on":
			attr = ast.JSXAttr{Kind: ast.JSXAttrOn, Name: sub}
		case "bind":
			switch sub {
			case "checked":
				attr = ast.JSXAttr{Kind: ast.JSXAttrBindChecked, Name: sub}
			case "group":
				attr = ast.JSXAttr{Kind: ast.JSXAttrBindGroup, Name: sub}
			default:
				attr = ast.JSXAttr{Kind: ast.JSXAttrBindValue, Name: sub}
			}
		case "class":
			attr = ast.JSXAttr{Kind: ast.JSXAttrClass, Name: sub}
		case "slot":
			attr = ast.JSXAttr{Kind: ast.JSXAttrSlot, Name: sub}
		default:
			attr = ast.JSXAttr{Kind: ast.JSXAttrPlain, Name: prefix + ":" + sub}
		}
	}

	if p.check(lexer.TOKEN_ASSIGN) {
		p.advance()
		if p.check(lexer.TOKEN_STRING) {
			tok := p.advance()
			attr.Value = &ast.StringLiteral{Base: ast.At(tok.Loc(p.file)), Value: tok.Lexeme}
		} else {
			p.expect(lexer.TOKEN_LBRACE, "'{'")
			attr.Value = p.parseExpr()
			p.expect(lexer.TOKEN_RBRACE, "'}'")
		}
	}
	return attr
}

func (p *Parser) parseJSXChildren() []ast.JSXNode {
	var children []ast.JSXNode
	for !p.check(lexer.TOKEN_LT_SLASH) && !p.check(lexer.TOKEN_EOF) {
		p.match(lexer.TOKEN_NEWLINE)
		if p.check(lexer.TOKEN_LT_SLASH) {
			break
		}
		switch {
		case p.check(lexer.TOKEN_LT):
			children = append(children, p.parseJSXElement())
		case p.check(lexer.TOKEN_LBRACE):
			children = append(children, p.parseJSXExprChild())
		case p.check(lexer.TOKEN_IF):
			children = append(children, p.parseJSXIf())
		case p.check(lexer.TOKEN_FOR):
			children = append(children, p.parseJSXFor())
		default:
			if text := p.collectJSXText(); text != nil {
				children = append(children, text)
			}
		}
	}
	return children
}

func (p *Parser) parseJSXExprChild() ast.JSXNode {
	loc := p.advanceLoc() // '{'
	e := p.parseExpr()
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.JSXExprChild{Base: ast.At(loc), Expr: e}
}

func (p *Parser) parseJSXIf() ast.JSXNode {
	loc := p.advanceLoc()
	cond := p.parseExprNoBrace()
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	then := p.parseJSXChildren()
	p.expect(lexer.TOKEN_RBRACE, "'}'")

	node := &ast.JSXIf{Base: ast.At(loc), Cond: cond, Then: then}
	for p.check(lexer.TOKEN_ELIF) {
		p.advance()
		c := p.parseExprNoBrace()
		p.expect(lexer.TOKEN_LBRACE, "'{'")
		body := p.parseJSXChildren()
		p.expect(lexer.TOKEN_RBRACE, "'}'")
		node.ElseIfs = append(node.ElseIfs, ast.JSXElseIf{Cond: c, Body: body})
	}
	if p.check(lexer.TOKEN_ELSE) {
		p.advance()
		p.expect(lexer.TOKEN_LBRACE, "'{'")
		node.Else = p.parseJSXChildren()
		p.expect(lexer.TOKEN_RBRACE, "'}'")
	}
	return node
}

func (p *Parser) parseJSXFor() ast.JSXNode {
	loc := p.advanceLoc()
	v := p.expectIdentName("loop variable")
	p.expect(lexer.TOKEN_IN, "'in'")
	iterable := p.parseExprNoBrace()

	var keyExpr ast.Expr
	if p.check(lexer.TOKEN_IDENTIFIER) && p.peek().Lexeme == "key" {
		p.advance()
		p.expect(lexer.TOKEN_LPAREN, "'('")
		keyExpr = p.parseExpr()
		p.expect(lexer.TOKEN_RPAREN, "')'")
	}

	p.expect(lexer.TOKEN_LBRACE, "'{'")
	body := p.parseJSXChildren()
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.JSXFor{Base: ast.At(loc), Var: v, Iterable: iterable, KeyExpr: keyExpr, Body: body}
}

// collectJSXText consumes tokens until the next piece of markup and slices
// the original source between the first and last consumed token, so the
// result preserves whatever spacing (or lack of it) the source actually
// had. Internal whitespace runs, including newlines used to wrap long JSX
// text across lines, collapse to a single space; a span that is nothing
// but whitespace returns nil (no node).
func (p *Parser) collectJSXText() ast.JSXNode {
	loc := p.peek().Loc(p.file)
	start := p.peek().Start
	end := start
	for !p.atJSXBoundary() {
		end = p.advance().End
	}
	if end <= start {
		return nil
	}
	text := collapseJSXWhitespace(p.source[start:end])
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return &ast.JSXText{Base: ast.At(loc), Value: text}
}

// collapseJSXWhitespace collapses every run of whitespace (including
// newlines) to a single space without trimming the ends, so a meaningful
// boundary space next to an interpolation (e.g. "{name} is cool") survives.
func collapseJSXWhitespace(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}
	if inSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

func (p *Parser) atJSXBoundary() bool {
	switch p.peek().Type {
	case lexer.TOKEN_LT, lexer.TOKEN_LT_SLASH, lexer.TOKEN_LBRACE,
		lexer.TOKEN_IF, lexer.TOKEN_ELIF, lexer.TOKEN_ELSE, lexer.TOKEN_FOR,
		lexer.TOKEN_EOF, lexer.TOKEN_RBRACE:
		return true
	}
	return false
}
