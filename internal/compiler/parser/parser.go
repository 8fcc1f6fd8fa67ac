// Package parser transforms a Tova token stream into an AST.
package parser

import (
	"fmt"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

// Parser builds an AST from a token stream produced by the lexer.
type Parser struct {
	tokens      []lexer.Token
	source      string
	current     int
	file        string
	tolerant    bool
	diagnostics []ParseError

	// noBraceObj suppresses object-literal parsing at primary position,
	// set while parsing if/while/for conditions so the trailing '{' is
	// read as the block rather than an object literal.
	noBraceObj bool

	// partial accumulates top-level statements so a fatal error can still
	// hand back a usable partial AST.
	partial []ast.Stmt
}

// New creates a Parser over tokens from the given file. source is the
// original text the tokens were scanned from, consulted for verbatim
// spacing in a few places (e.g. JSX text) that token lexemes alone can't
// reconstruct.
func New(tokens []lexer.Token, file string, source string) *Parser {
	return &Parser{tokens: tokens, file: file, source: source}
}

// NewTolerant creates a Parser that recovers from local errors instead of
// panicking, producing a partial AST with a Diagnostics() list.
func NewTolerant(tokens []lexer.Token, file string, source string) *Parser {
	return &Parser{tokens: tokens, file: file, source: source, tolerant: true}
}

// Diagnostics returns the errors accumulated in tolerant mode.
func (p *Parser) Diagnostics() []ParseError { return p.diagnostics }

// Parse parses the token stream and returns the Program.
//
// In non-tolerant mode a fatal grammar error is surfaced as a
// *FatalParseError carrying the partially built AST; the
// caller must recover it via Go's panic/recover convention, which Parse
// does internally and converts into a returned error.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*FatalParseError); ok {
				fe.PartialAST = &ast.Program{Body: p.partial}
				err = fe
				return
			}
			panic(r)
		}
	}()

	prog = p.parseProgram()
	return prog, nil
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.peek().Loc(p.file)
	body := []ast.Stmt{}
	for !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		stmt := p.parseTopLevelStmt()
		if stmt != nil {
			body = append(body, stmt)
			p.partial = append(p.partial, stmt)
		}
	}
	return &ast.Program{Body: body, Base: ast.At(start)}
}

func (p *Parser) parseTopLevelStmt() ast.Stmt {
	defer p.recoverLocal()

	switch p.peek().Type {
	case lexer.TOKEN_SERVER:
		return p.parseServerBlock()
	case lexer.TOKEN_CLIENT:
		return p.parseClientBlock()
	case lexer.TOKEN_SHARED:
		return p.parseSharedBlock()
	case lexer.TOKEN_CLI:
		return p.parseCliBlock()
	case lexer.TOKEN_DEPLOY:
		return p.parseDeployBlock()
	case lexer.TOKEN_TEST:
		return p.parseTestBlock()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseTestBlock() ast.Stmt {
	loc := p.advanceLoc()
	block := &ast.TestBlock{Base: ast.At(loc)}
	if p.check(lexer.TOKEN_STRING) {
		block.Name = p.advance().Lexeme
	}
	block.Body = p.parseBlock()
	return block
}

// recoverLocal is deferred around tolerant-mode statement parsing: it
// catches a *FatalParseError, records it as a diagnostic, and
// synchronizes to the next safe token; the failed statement is dropped.
func (p *Parser) recoverLocal() {
	if !p.tolerant {
		return
	}
	if r := recover(); r != nil {
		if fe, ok := r.(*FatalParseError); ok {
			p.diagnostics = append(p.diagnostics, fe.Err)
			p.synchronize()
			return
		}
		panic(r)
	}
}

func (p *Parser) synchronize() {
	set := synchronizeSet()
	for !p.isAtEnd() {
		if set[p.peek().Type] {
			if p.peek().Type == lexer.TOKEN_NEWLINE || p.peek().Type == lexer.TOKEN_RBRACE {
				p.advance()
			}
			return
		}
		p.advance()
	}
}

// --- Statement dispatch ---

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	body := []ast.Stmt{}
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return body
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Type {
	case lexer.TOKEN_FN, lexer.TOKEN_PUB, lexer.TOKEN_ASYNC:
		return p.parseFunctionDecl()
	case lexer.TOKEN_LET, lexer.TOKEN_VAR:
		return p.parseVarDecl()
	case lexer.TOKEN_TYPE:
		return p.parseTypeDecl()
	case lexer.TOKEN_IMPORT:
		return p.parseImportDecl()
	case lexer.TOKEN_IF:
		return p.parseIfStmt()
	case lexer.TOKEN_FOR:
		return p.parseForStmt()
	case lexer.TOKEN_WHILE:
		return p.parseWhileStmt()
	case lexer.TOKEN_TRY:
		return p.parseTryStmt()
	case lexer.TOKEN_BREAK:
		loc := p.advanceLoc()
		return &ast.BreakStmt{Base: ast.At(loc)}
	case lexer.TOKEN_CONTINUE:
		loc := p.advanceLoc()
		return &ast.ContinueStmt{Base: ast.At(loc)}
	case lexer.TOKEN_RETURN:
		return p.parseReturnStmt()
	case lexer.TOKEN_LBRACE:
		loc := p.peek().Loc(p.file)
		return &ast.BlockStmt{Base: ast.At(loc), Body: p.parseBlock()}
	// Client-block declarations.
	case lexer.TOKEN_STATE:
		return p.parseStateDecl()
	case lexer.TOKEN_COMPUTED:
		return p.parseComputedDecl()
	case lexer.TOKEN_EFFECT:
		return p.parseEffectDecl()
	case lexer.TOKEN_COMPONENT:
		return p.parseComponentDecl()
	case lexer.TOKEN_STORE:
		return p.parseStoreDecl()
	// Server-block declarations.
	case lexer.TOKEN_ROUTE:
		return p.parseRouteDecl()
	case lexer.TOKEN_ROUTES:
		return p.parseRouteGroupDecl()
	case lexer.TOKEN_MIDDLEWARE:
		return p.parseMiddlewareDecl()
	case lexer.TOKEN_WS:
		return p.parseWebSocketDecl()
	case lexer.TOKEN_SSE:
		return p.parseSSEDecl()
	case lexer.TOKEN_SCHEDULE:
		return p.parseScheduleDecl()
	case lexer.TOKEN_BACKGROUND:
		return p.parseBackgroundDecl()
	case lexer.TOKEN_ON_START:
		return p.parseLifecycleDecl(ast.LifecycleStart)
	case lexer.TOKEN_ON_STOP:
		return p.parseLifecycleDecl(ast.LifecycleStop)
	case lexer.TOKEN_ON_ERROR:
		return p.parseErrorHandlerDecl()
	case lexer.TOKEN_SUBSCRIBE:
		return p.parseSubscribeDecl()
	case lexer.TOKEN_MODEL:
		return p.parseModelDecl()
	case lexer.TOKEN_ENV, lexer.TOKEN_STATIC, lexer.TOKEN_DISCOVER, lexer.TOKEN_SESSION,
		lexer.TOKEN_CACHE, lexer.TOKEN_UPLOAD, lexer.TOKEN_TLS, lexer.TOKEN_CORS,
		lexer.TOKEN_COMPRESSION, lexer.TOKEN_DB, lexer.TOKEN_AUTH, lexer.TOKEN_RATE_LIMIT,
		lexer.TOKEN_HEALTH, lexer.TOKEN_MAX_BODY:
		return p.parseConfigDecl()
	default:
		return p.parseSimpleStmt()
	}
}

// parseSimpleStmt handles expression statements and (compound-)assignment,
// which share a common prefix: parse an expression, then decide whether
// what follows makes it an assignment target.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	loc := p.peek().Loc(p.file)
	first := p.parseExpr()

	targets := []ast.AssignTarget{exprToTarget(first, p)}
	for p.check(lexer.TOKEN_COMMA) {
		// Multi-target assignment: `a, b = expr`.
		if !p.isAssignable(p.peekAt(1)) {
			break
		}
		p.advance()
		next := p.parseExpr()
		targets = append(targets, exprToTarget(next, p))
	}

	switch p.peek().Type {
	case lexer.TOKEN_ASSIGN:
		p.advance()
		val := p.parseExpr()
		p.consumeStmtEnd()
		return &ast.AssignmentStmt{Base: ast.At(loc), Targets: targets, Op: ast.AssignPlain, Value: val}
	case lexer.TOKEN_PLUS_ASSIGN, lexer.TOKEN_MINUS_ASSIGN, lexer.TOKEN_STAR_ASSIGN, lexer.TOKEN_SLASH_ASSIGN:
		op := compoundOp(p.peek().Type)
		p.advance()
		val := p.parseExpr()
		p.consumeStmtEnd()
		return &ast.AssignmentStmt{Base: ast.At(loc), Targets: targets[:1], Op: op, Value: val}
	default:
		p.consumeStmtEnd()
		return &ast.ExprStmt{Base: ast.At(loc), Expr: first}
	}
}

func (p *Parser) isAssignable(_ lexer.Token) bool { return true }

func compoundOp(tt lexer.TokenType) ast.AssignOp {
	switch tt {
	case lexer.TOKEN_PLUS_ASSIGN:
		return ast.AssignAdd
	case lexer.TOKEN_MINUS_ASSIGN:
		return ast.AssignSub
	case lexer.TOKEN_STAR_ASSIGN:
		return ast.AssignMul
	case lexer.TOKEN_SLASH_ASSIGN:
		return ast.AssignDiv
	}
	return ast.AssignPlain
}

// exprToTarget converts an already-parsed expression into an assignment
// target, failing (in non-tolerant mode) if the expression can't be one.
func exprToTarget(e ast.Expr, p *Parser) ast.AssignTarget {
	switch v := e.(type) {
	case *ast.Identifier:
		return ast.AssignTarget{Name: v.Name}
	case *ast.MemberExpr, *ast.SubscriptExpr:
		return ast.AssignTarget{Member: e}
	default:
		p.fail(e.Loc(), "invalid assignment target")
		return ast.AssignTarget{}
	}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	loc := p.advanceLoc()
	if p.check(lexer.TOKEN_NEWLINE) || p.check(lexer.TOKEN_RBRACE) || p.check(lexer.TOKEN_EOF) {
		p.consumeStmtEnd()
		return &ast.ReturnStmt{Base: ast.At(loc)}
	}
	val := p.parseExpr()
	p.consumeStmtEnd()
	return &ast.ReturnStmt{Base: ast.At(loc), Value: val}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	loc := p.advanceLoc()
	cond := p.parseExprNoBrace()
	then := p.parseBlock()
	stmt := &ast.IfStmt{Base: ast.At(loc), Cond: cond, Then: then}
	for p.check(lexer.TOKEN_ELIF) {
		p.advance()
		c := p.parseExprNoBrace()
		b := p.parseBlock()
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIfClause{Cond: c, Body: b})
	}
	if p.check(lexer.TOKEN_ELSE) {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseForStmt() ast.Stmt {
	loc := p.advanceLoc()
	stmt := &ast.ForStmt{Base: ast.At(loc)}

	if p.check(lexer.TOKEN_LBRACE) {
		pat := p.parseObjectOrArrayPattern()
		stmt.Kind = ast.ForDestructure
		stmt.Pattern = pat
	} else {
		name := p.expectIdentName("loop variable")
		if p.check(lexer.TOKEN_COMMA) {
			p.advance()
			val := p.expectIdentName("loop value variable")
			stmt.Kind = ast.ForKeyValue
			stmt.KeyVar = name
			stmt.Var = val
		} else {
			stmt.Kind = ast.ForValue
			stmt.Var = name
		}
	}

	p.expect(lexer.TOKEN_IN, "'in'")
	stmt.Iterable = p.parseExprNoBrace()
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	loc := p.advanceLoc()
	cond := p.parseExprNoBrace()
	body := p.parseBlock()
	return &ast.WhileStmt{Base: ast.At(loc), Cond: cond, Body: body}
}

func (p *Parser) parseTryStmt() ast.Stmt {
	loc := p.advanceLoc()
	stmt := &ast.TryStmt{Base: ast.At(loc), Body: p.parseBlock()}
	if p.check(lexer.TOKEN_CATCH) {
		p.advance()
		stmt.HasCatch = true
		if p.check(lexer.TOKEN_IDENTIFIER) {
			stmt.CatchBinding = p.advance().Lexeme
		}
		stmt.CatchBody = p.parseBlock()
	}
	if p.check(lexer.TOKEN_FINALLY) {
		p.advance()
		stmt.HasFinally = true
		stmt.FinallyBody = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseFunctionDecl() ast.Stmt {
	loc := p.peek().Loc(p.file)
	public := p.match(lexer.TOKEN_PUB)
	async := p.match(lexer.TOKEN_ASYNC)
	p.expect(lexer.TOKEN_FN, "'fn'")
	name := p.expectIdentName("function name")
	params := p.parseParamList()
	var ret *ast.TypeAnn
	if p.check(lexer.TOKEN_ARROW) {
		p.advance()
		ret = p.parseTypeAnn()
	}
	body := p.parseBlock()
	return &ast.FunctionDecl{Base: ast.At(loc), Name: name, Params: params, ReturnType: ret, Body: body, Async: async, Public: public}
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(lexer.TOKEN_LPAREN, "'('")
	var params []ast.Param
	seen := map[string]bool{}
	for !p.check(lexer.TOKEN_RPAREN) {
		name := p.expectIdentName("parameter name")
		if seen[name] {
			p.fail(p.peek().Loc(p.file), fmt.Sprintf("parameter '%s' is already defined", name))
		}
		seen[name] = true
		param := ast.Param{Name: name}
		if p.check(lexer.TOKEN_COLON) {
			p.advance()
			param.TypeAnn = p.parseTypeAnn()
		}
		if p.check(lexer.TOKEN_ASSIGN) {
			p.advance()
			param.DefaultValue = p.parseExpr()
		}
		params = append(params, param)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RPAREN, "')'")
	return params
}

func (p *Parser) parseTypeAnn() *ast.TypeAnn {
	name := p.expectIdentName("type name")
	t := &ast.TypeAnn{Name: name}
	if p.check(lexer.TOKEN_LT) {
		p.advance()
		for {
			t.Args = append(t.Args, p.parseTypeAnn())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.expect(lexer.TOKEN_GT, "'>'")
	}
	if p.check(lexer.TOKEN_BANG) {
		p.advance()
		t.Nullable = ast.NullRequired
	} else if p.check(lexer.TOKEN_QUESTION) {
		p.advance()
		t.Nullable = ast.NullOptional
	}
	return t
}

func (p *Parser) parseVarDecl() ast.Stmt {
	loc := p.peek().Loc(p.file)
	kind := ast.VarLet
	if p.peek().Type == lexer.TOKEN_VAR {
		kind = ast.VarVar
	}
	p.advance()

	if p.check(lexer.TOKEN_LBRACE) || p.check(lexer.TOKEN_LBRACKET) {
		pat := p.parsePattern()
		p.expect(lexer.TOKEN_ASSIGN, "'='")
		val := p.parseExpr()
		p.consumeStmtEnd()
		return &ast.VarDecl{Base: ast.At(loc), Kind: kind, Pattern: pat, Value: val}
	}

	names := []string{p.expectIdentName("variable name")}
	for p.check(lexer.TOKEN_COMMA) {
		p.advance()
		names = append(names, p.expectIdentName("variable name"))
	}
	var typeAnn *ast.TypeAnn
	if p.check(lexer.TOKEN_COLON) {
		p.advance()
		typeAnn = p.parseTypeAnn()
	}
	p.expect(lexer.TOKEN_ASSIGN, "'='")
	val := p.parseExpr()
	p.consumeStmtEnd()
	return &ast.VarDecl{Base: ast.At(loc), Kind: kind, Targets: names, TypeAnn: typeAnn, Value: val}
}

func (p *Parser) parseTypeDecl() ast.Stmt {
	loc := p.advanceLoc()
	name := p.expectIdentName("type name")
	var typeParams []string
	if p.check(lexer.TOKEN_LT) {
		p.advance()
		for {
			typeParams = append(typeParams, p.expectIdentName("type parameter"))
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.expect(lexer.TOKEN_GT, "'>'")
	}
	p.expect(lexer.TOKEN_LBRACE, "'{'")

	decl := &ast.TypeDecl{Base: ast.At(loc), Name: name, TypeParams: typeParams}

	// A variant type is one whose body is a comma-separated list of
	// Capitalized constructor names (each with an optional field list);
	// a struct type's body is `name: Type` field lines. Distinguish by
	// looking at whether the first entry is immediately followed by '('
	// or ',' / '}' (variant) vs ':' (struct field).
	first := true
	isVariant := false
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.TOKEN_EOF) {
		if p.match(lexer.TOKEN_NEWLINE) || p.match(lexer.TOKEN_COMMA) {
			continue
		}
		fieldName := p.expectIdentName("field or variant name")
		if first {
			isVariant = p.check(lexer.TOKEN_LPAREN) || p.check(lexer.TOKEN_COMMA) || p.check(lexer.TOKEN_RBRACE) || p.check(lexer.TOKEN_NEWLINE)
			decl.Kind = ast.TypeStruct
			if isVariant {
				decl.Kind = ast.TypeVariant
			}
			first = false
		}
		if decl.Kind == ast.TypeVariant {
			v := ast.VariantDecl{Name: fieldName}
			if p.check(lexer.TOKEN_LPAREN) {
				p.advance()
				for !p.check(lexer.TOKEN_RPAREN) {
					fn := p.expectIdentName("field name")
					p.expect(lexer.TOKEN_COLON, "':'")
					ft := p.parseTypeAnn()
					v.Fields = append(v.Fields, ast.FieldDecl{Name: fn, TypeAnn: ft})
					if !p.match(lexer.TOKEN_COMMA) {
						break
					}
				}
				p.expect(lexer.TOKEN_RPAREN, "')'")
			}
			decl.Variants = append(decl.Variants, v)
		} else {
			p.expect(lexer.TOKEN_COLON, "':'")
			ft := p.parseTypeAnn()
			decl.Fields = append(decl.Fields, ast.FieldDecl{Name: fieldName, TypeAnn: ft})
		}
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return decl
}

func (p *Parser) parseImportDecl() ast.Stmt {
	loc := p.advanceLoc()
	decl := &ast.ImportDecl{Base: ast.At(loc)}
	if p.check(lexer.TOKEN_LBRACE) {
		decl.Kind = ast.ImportNamed
		p.advance()
		for !p.check(lexer.TOKEN_RBRACE) {
			name := p.expectIdentName("import name")
			spec := ast.ImportSpecifier{Name: name}
			if p.check(lexer.TOKEN_AS) {
				p.advance()
				spec.Alias = p.expectIdentName("import alias")
			}
			decl.Named = append(decl.Named, spec)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.expect(lexer.TOKEN_RBRACE, "'}'")
	} else {
		decl.Kind = ast.ImportDefault
		decl.DefaultName = p.expectIdentName("import name")
	}
	p.expect(lexer.TOKEN_FROM, "'from'")
	decl.From = p.expectString("module path")
	p.consumeStmtEnd()
	return decl
}

// --- token helpers ---

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.TOKEN_EOF }

func (p *Parser) check(tt lexer.TokenType) bool { return p.peek().Type == tt }

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return t
}

func (p *Parser) advanceLoc() ast.SourceLocation {
	return p.advance().Loc(p.file)
}

func (p *Parser) expect(tt lexer.TokenType, expected string) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	p.fail(p.peek().Loc(p.file), fmt.Sprintf("expected %s but found '%s'", expected, p.peek().Lexeme))
	return p.peek()
}

func (p *Parser) expectIdentName(what string) string {
	if p.check(lexer.TOKEN_IDENTIFIER) {
		return p.advance().Lexeme
	}
	p.fail(p.peek().Loc(p.file), fmt.Sprintf("expected %s", what))
	return ""
}

func (p *Parser) expectString(what string) string {
	if p.check(lexer.TOKEN_STRING) {
		return p.advance().Lexeme
	}
	p.fail(p.peek().Loc(p.file), fmt.Sprintf("expected %s", what))
	return ""
}

// consumeStmtEnd consumes an optional trailing NEWLINE; Tova statements
// are newline- or '}'-terminated, never semicolon-terminated.
func (p *Parser) consumeStmtEnd() {
	p.match(lexer.TOKEN_NEWLINE)
}

// skipNewlines consumes zero or more consecutive NEWLINE tokens, used in
// brace-delimited bodies (object literals, match arms) where a newline
// between entries carries no meaning of its own.
func (p *Parser) skipNewlines() {
	for p.match(lexer.TOKEN_NEWLINE) {
	}
}

// fail records a fatal parse error. Outside tolerant mode this panics
// with a *FatalParseError, unwound by Parse(); in tolerant mode the
// nearest recoverLocal() deferred call catches it.
func (p *Parser) fail(loc ast.SourceLocation, msg string) {
	panic(&FatalParseError{Err: ParseError{Message: msg, Loc: loc}})
}
