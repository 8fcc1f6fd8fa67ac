package parser

import (
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

func (p *Parser) parseServerBlock() ast.Stmt {
	loc := p.advanceLoc()
	block := &ast.ServerBlock{Base: ast.At(loc)}
	if p.check(lexer.TOKEN_STRING) {
		block.Name = p.advance().Lexeme
	}
	block.Body = p.parseBlock()
	return block
}

func (p *Parser) parseClientBlock() ast.Stmt {
	loc := p.advanceLoc()
	return &ast.ClientBlock{Base: ast.At(loc), Body: p.parseBlock()}
}

func (p *Parser) parseSharedBlock() ast.Stmt {
	loc := p.advanceLoc()
	return &ast.SharedBlock{Base: ast.At(loc), Body: p.parseBlock()}
}

func (p *Parser) parseCliBlock() ast.Stmt {
	loc := p.advanceLoc()
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	block := &ast.CliBlock{Base: ast.At(loc)}
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		if p.check(lexer.TOKEN_FN) || p.check(lexer.TOKEN_PUB) || p.check(lexer.TOKEN_ASYNC) {
			fn := p.parseFunctionDecl().(*ast.FunctionDecl)
			block.Commands = append(block.Commands, fn)
			continue
		}
		key := p.expectIdentName("cli config key")
		p.expect(lexer.TOKEN_COLON, "':'")
		block.Config = append(block.Config, ast.CliConfigEntry{Key: key, Value: p.parseExpr()})
		p.consumeStmtEnd()
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return block
}

func (p *Parser) parseDeployBlock() ast.Stmt {
	loc := p.advanceLoc()
	block := &ast.DeployBlock{Base: ast.At(loc)}
	if p.check(lexer.TOKEN_STRING) {
		block.Env = p.advance().Lexeme
	} else if p.check(lexer.TOKEN_IDENTIFIER) {
		block.Env = p.advance().Lexeme
	}
	block.Entries = p.parseDeployEntries("")
	return block
}

// parseDeployEntries parses `{ key: value, nested { ... }, ... }`,
// flattening nested sub-blocks (e.g. `database { engine: ... }`) to
// dotted key paths under the given prefix.
func (p *Parser) parseDeployEntries(prefix string) []ast.DeployEntry {
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	var entries []ast.DeployEntry
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) || p.match(lexer.TOKEN_COMMA) {
			continue
		}
		key := p.expectIdentName("config key")
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if p.check(lexer.TOKEN_LBRACE) {
			entries = append(entries, p.parseDeployEntries(full)...)
			continue
		}
		p.expect(lexer.TOKEN_COLON, "':'")
		entries = append(entries, ast.DeployEntry{Key: full, Value: p.parseExpr()})
		p.consumeStmtEnd()
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return entries
}

func (p *Parser) parseRouteDecl() ast.Stmt {
	loc := p.advanceLoc()
	spec := p.expectString("route spec, e.g. \"GET /users/:id\"")
	method, path := splitRouteSpec(spec)
	decl := &ast.RouteDecl{Base: ast.At(loc), Method: method, Path: path, Params: p.maybeParamList()}
	decl.Body = p.parseBlock()
	return decl
}

func splitRouteSpec(spec string) (method, path string) {
	parts := strings.SplitN(strings.TrimSpace(spec), " ", 2)
	if len(parts) == 2 {
		return strings.ToUpper(parts[0]), parts[1]
	}
	return "GET", spec
}

// maybeParamList parses an optional `(params)` list, used by route-like
// declarations that accept handler parameters beyond the implicit
// request/path bindings.
func (p *Parser) maybeParamList() []ast.Param {
	if !p.check(lexer.TOKEN_LPAREN) {
		return nil
	}
	return p.parseParamList()
}

func (p *Parser) parseRouteGroupDecl() ast.Stmt {
	loc := p.advanceLoc()
	prefix := p.expectString("route group prefix")
	return &ast.RouteGroupDecl{Base: ast.At(loc), Prefix: prefix, Body: p.parseBlock()}
}

func (p *Parser) parseMiddlewareDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("middleware name")
	params := p.maybeParamList()
	return &ast.MiddlewareDecl{Base: ast.At(loc), Name: name, Params: params, Body: p.parseBlock()}
}

func (p *Parser) parseWebSocketDecl() ast.Stmt {
	loc := p.advanceLoc()
	path := p.expectString("websocket path")
	decl := &ast.WebSocketDecl{
		Base:     ast.At(loc),
		Path:     path,
		Handlers: map[string][]ast.Stmt{},
		Params:   map[string][]ast.Param{},
	}
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		name := p.expectIdentName("websocket handler name")
		params := p.maybeParamList()
		body := p.parseBlock()
		decl.Handlers[name] = body
		decl.Params[name] = params
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return decl
}

func (p *Parser) parseSSEDecl() ast.Stmt {
	loc := p.advanceLoc()
	path := p.expectString("sse path")
	return &ast.SSEDecl{Base: ast.At(loc), Path: path, Body: p.parseBlock()}
}

func (p *Parser) parseScheduleDecl() ast.Stmt {
	loc := p.advanceLoc()
	cron := p.expectString("cron expression")
	return &ast.ScheduleDecl{Base: ast.At(loc), Cron: cron, Body: p.parseBlock()}
}

func (p *Parser) parseBackgroundDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("background job name")
	params := p.maybeParamList()
	return &ast.BackgroundDecl{Base: ast.At(loc), Name: name, Params: params, Body: p.parseBlock()}
}

func (p *Parser) parseLifecycleDecl(kind ast.LifecycleKind) ast.Stmt {
	loc := p.advanceLoc()
	return &ast.LifecycleDecl{Base: ast.At(loc), Kind: kind, Body: p.parseBlock()}
}

func (p *Parser) parseErrorHandlerDecl() ast.Stmt {
	loc := p.advanceLoc()
	binding := ""
	if p.check(lexer.TOKEN_LPAREN) {
		p.advance()
		binding = p.expectIdentName("error binding name")
		p.expect(lexer.TOKEN_RPAREN, "')'")
	}
	return &ast.ErrorHandlerDecl{Base: ast.At(loc), Binding: binding, Body: p.parseBlock()}
}

func (p *Parser) parseSubscribeDecl() ast.Stmt {
	loc := p.advanceLoc()
	channel := p.expectString("channel name")
	binding := ""
	if p.check(lexer.TOKEN_LPAREN) {
		p.advance()
		binding = p.expectIdentName("message binding name")
		p.expect(lexer.TOKEN_RPAREN, "')'")
	}
	return &ast.SubscribeDecl{Base: ast.At(loc), Channel: channel, Binding: binding, Body: p.parseBlock()}
}

func (p *Parser) parseModelDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("model name")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	decl := &ast.ModelDecl{Base: ast.At(loc), Name: name}
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) || p.match(lexer.TOKEN_COMMA) {
			continue
		}
		fieldName := p.expectIdentName("field name")
		p.expect(lexer.TOKEN_COLON, "':'")
		decl.Fields = append(decl.Fields, ast.FieldDecl{Name: fieldName, TypeAnn: p.parseTypeAnn()})
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return decl
}

// parseConfigDecl covers the single-block server configuration
// declarations (env, upload, session, cache, tls, cors, compression, db,
// auth, rate_limit, health, max_body, static, discover), which share the
// shape `keyword { key: value, ... }` or `keyword expr`.
func (p *Parser) parseConfigDecl() ast.Stmt {
	kindTok := p.advance()
	loc := kindTok.Loc(p.file)
	decl := &ast.ConfigDecl{Base: ast.At(loc), Kind: kindTok.Lexeme}
	if p.check(lexer.TOKEN_LBRACE) {
		decl.Entries = p.parseDeployEntries("")
	} else {
		decl.Value = p.parseExpr()
		p.consumeStmtEnd()
	}
	return decl
}
