package parser

import (
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

// parseExpr is the entry point for every expression, starting at the
// loosest-binding level (pipe). Assignment is handled at the statement
// level (see parser.go's parseSimpleStmt) and never appears here.
func (p *Parser) parseExpr() ast.Expr {
	return p.parsePipe()
}

// parseExprNoBrace parses an expression while disabling object-literal
// parsing at primary position, used for if/while/for condition and
// iterable expressions so the following '{' is unambiguously the block.
func (p *Parser) parseExprNoBrace() ast.Expr {
	old := p.noBraceObj
	p.noBraceObj = true
	e := p.parseExpr()
	p.noBraceObj = old
	return e
}

func (p *Parser) parsePipe() ast.Expr {
	left := p.parseOr()
	for p.check(lexer.TOKEN_PIPE) {
		loc := p.advanceLoc()
		rhs := p.parseOr()
		call, ok := rhs.(*ast.CallExpr)
		if !ok {
			call = &ast.CallExpr{
				Base:   ast.At(rhs.Loc()),
				Callee: rhs,
				Args:   []ast.Argument{{Value: &ast.Identifier{Base: ast.At(rhs.Loc()), Name: "_"}}},
			}
		}
		left = &ast.PipeExpr{Base: ast.At(loc), Value: left, Call: call}
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.check(lexer.TOKEN_OR) {
		loc := p.advanceLoc()
		right := p.parseAnd()
		left = &ast.LogicalExpr{Base: ast.At(loc), Op: ast.LogicalOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNotLevel()
	for p.check(lexer.TOKEN_AND) {
		loc := p.advanceLoc()
		right := p.parseNotLevel()
		left = &ast.LogicalExpr{Base: ast.At(loc), Op: ast.LogicalAnd, Left: left, Right: right}
	}
	return left
}

// parseNotLevel handles the prefix logical-not keyword; everything else
// falls through to equality.
func (p *Parser) parseNotLevel() ast.Expr {
	if p.check(lexer.TOKEN_NOT) {
		loc := p.advanceLoc()
		operand := p.parseNotLevel()
		return &ast.UnaryExpr{Base: ast.At(loc), Op: ast.UnaryNot, Operand: operand}
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	for p.check(lexer.TOKEN_EQ) || p.check(lexer.TOKEN_NEQ) {
		op := ast.OpEq
		if p.peek().Type == lexer.TOKEN_NEQ {
			op = ast.OpNeq
		}
		loc := p.advanceLoc()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Base: ast.At(loc), Op: op, Left: left, Right: right}
	}
	return left
}

func isComparisonOp(tt lexer.TokenType) (ast.BinaryOp, bool) {
	switch tt {
	case lexer.TOKEN_LT:
		return ast.OpLt, true
	case lexer.TOKEN_LTE:
		return ast.OpLte, true
	case lexer.TOKEN_GT:
		return ast.OpGt, true
	case lexer.TOKEN_GTE:
		return ast.OpGte, true
	}
	return 0, false
}

// parseComparison collects a run of comparison operators into a single
// ChainedComparisonExpr when there are 3+ operands (e.g. `a < b <= c`),
// and a plain BinaryExpr for the common two-operand case.
func (p *Parser) parseComparison() ast.Expr {
	first := p.parseMembership()
	op, ok := isComparisonOp(p.peek().Type)
	if !ok {
		return first
	}

	loc := p.peek().Loc(p.file)
	operands := []ast.Expr{first}
	ops := []ast.BinaryOp{}
	for {
		o, ok := isComparisonOp(p.peek().Type)
		if !ok {
			break
		}
		p.advance()
		ops = append(ops, o)
		operands = append(operands, p.parseMembership())
	}
	_ = op
	if len(operands) == 2 {
		return &ast.BinaryExpr{Base: ast.At(loc), Op: ops[0], Left: operands[0], Right: operands[1]}
	}
	return &ast.ChainedComparisonExpr{Base: ast.At(loc), Operands: operands, Ops: ops}
}

func (p *Parser) parseMembership() ast.Expr {
	left := p.parseRange()
	if p.check(lexer.TOKEN_IN) {
		loc := p.advanceLoc()
		right := p.parseRange()
		return &ast.MembershipExpr{Base: ast.At(loc), Negated: false, Value: left, Coll: right}
	}
	if p.check(lexer.TOKEN_NOT) && p.peekAt(1).Type == lexer.TOKEN_IN {
		loc := p.advanceLoc()
		p.advance() // 'in'
		right := p.parseRange()
		return &ast.MembershipExpr{Base: ast.At(loc), Negated: true, Value: left, Coll: right}
	}
	return left
}

func (p *Parser) parseRange() ast.Expr {
	left := p.parseAdditive()
	if p.check(lexer.TOKEN_DOTDOT) || p.check(lexer.TOKEN_DOTDOTEQ) {
		inclusive := p.peek().Type == lexer.TOKEN_DOTDOTEQ
		loc := p.advanceLoc()
		right := p.parseAdditive()
		return &ast.RangeExpr{Base: ast.At(loc), Start: left, End: right, Inclusive: inclusive}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.check(lexer.TOKEN_PLUS) || p.check(lexer.TOKEN_MINUS) {
		op := ast.OpAdd
		if p.peek().Type == lexer.TOKEN_MINUS {
			op = ast.OpSub
		}
		loc := p.advanceLoc()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Base: ast.At(loc), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePower()
	for p.check(lexer.TOKEN_STAR) || p.check(lexer.TOKEN_SLASH) || p.check(lexer.TOKEN_PERCENT) {
		var op ast.BinaryOp
		switch p.peek().Type {
		case lexer.TOKEN_STAR:
			op = ast.OpMul
		case lexer.TOKEN_SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		loc := p.advanceLoc()
		right := p.parsePower()
		left = &ast.BinaryExpr{Base: ast.At(loc), Op: op, Left: left, Right: right}
	}
	return left
}

// parsePower is right-associative: `2 ** 3 ** 2 == 2 ** (3 ** 2)`.
func (p *Parser) parsePower() ast.Expr {
	left := p.parseUnary()
	if p.check(lexer.TOKEN_DOUBLE_STAR) {
		loc := p.advanceLoc()
		right := p.parsePower()
		return &ast.BinaryExpr{Base: ast.At(loc), Op: ast.OpPow, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.peek().Type {
	case lexer.TOKEN_MINUS:
		loc := p.advanceLoc()
		return &ast.UnaryExpr{Base: ast.At(loc), Op: ast.UnaryNeg, Operand: p.parseUnary()}
	case lexer.TOKEN_PLUS:
		loc := p.advanceLoc()
		return &ast.UnaryExpr{Base: ast.At(loc), Op: ast.UnaryPlus, Operand: p.parseUnary()}
	case lexer.TOKEN_AWAIT:
		// `await` doesn't change AST shape (the distinction is carried by
		// enclosing async-function context); it simply unwraps.
		p.advance()
		return p.parseUnary()
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.peek().Type {
		case lexer.TOKEN_DOT:
			loc := p.advanceLoc()
			name := p.expectIdentName("member name")
			expr = &ast.MemberExpr{Base: ast.At(loc), Target: expr, Name: name}
		case lexer.TOKEN_SAFE_NAV:
			loc := p.advanceLoc()
			if p.check(lexer.TOKEN_LBRACKET) {
				p.advance()
				idx := p.parseExpr()
				p.expect(lexer.TOKEN_RBRACKET, "']'")
				expr = &ast.OptionalSubscriptExpr{Base: ast.At(loc), Target: expr, Index: idx}
			} else {
				name := p.expectIdentName("member name")
				expr = &ast.OptionalMemberExpr{Base: ast.At(loc), Target: expr, Name: name}
			}
		case lexer.TOKEN_LBRACKET:
			// A '[' that starts a new line is a new statement (an array
			// literal or subscript of a fresh expression), not a
			// continuation of the expression just parsed.
			if p.peek().FirstOnLine {
				return expr
			}
			loc := p.advanceLoc()
			expr = p.finishSubscriptOrSlice(loc, expr)
		case lexer.TOKEN_LPAREN:
			loc := p.advanceLoc()
			expr = &ast.CallExpr{Base: ast.At(loc), Callee: expr, Args: p.parseArgs()}
		case lexer.TOKEN_QUESTION:
			// Postfix `?` (error propagation): `risky()?` is ordinarily
			// the last token of its statement, so a following NEWLINE is
			// the expected, common case and does not by itself make this
			// a dangling operator (see parsePrimary for the case that
			// actually is dangling: a bare `?` starting a new statement).
			loc := p.advanceLoc()
			expr = &ast.PropagateExpr{Base: ast.At(loc), Target: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) finishSubscriptOrSlice(loc ast.SourceLocation, target ast.Expr) ast.Expr {
	var start, end, step ast.Expr
	isSlice := false
	if !p.check(lexer.TOKEN_COLON) {
		start = p.parseExpr()
	}
	if p.check(lexer.TOKEN_COLON) {
		isSlice = true
		p.advance()
		if !p.check(lexer.TOKEN_COLON) && !p.check(lexer.TOKEN_RBRACKET) {
			end = p.parseExpr()
		}
		if p.check(lexer.TOKEN_COLON) {
			p.advance()
			if !p.check(lexer.TOKEN_RBRACKET) {
				step = p.parseExpr()
			}
		}
	}
	p.expect(lexer.TOKEN_RBRACKET, "']'")
	if isSlice {
		return &ast.SliceExpr{Base: ast.At(loc), Target: target, Start: start, End: end, Step: step}
	}
	return &ast.SubscriptExpr{Base: ast.At(loc), Target: target, Index: start}
}

func (p *Parser) parseArgs() []ast.Argument {
	var args []ast.Argument
	for !p.check(lexer.TOKEN_RPAREN) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			p.advance()
			args = append(args, ast.Argument{Spread: true, Value: p.parseExpr()})
		} else if p.check(lexer.TOKEN_IDENTIFIER) && p.peekAt(1).Type == lexer.TOKEN_COLON {
			name := p.advance().Lexeme
			p.advance() // ':'
			args = append(args, ast.Argument{Name: name, Value: p.parseExpr()})
		} else {
			args = append(args, ast.Argument{Value: p.parseExpr()})
		}
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RPAREN, "')'")
	return args
}

func isUpperFirst(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func (p *Parser) parsePrimary() ast.Expr {
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
	case lexer.TOKEN_TEMPLATE:
		p.advance()
		return p.buildTemplateLiteral(tok)
	case lexer.TOKEN_REGEX:
		p.advance()
		return &ast.RegexLiteral{Base: ast.At(tok.Loc(p.file)), Pattern: tok.Lexeme, Flags: tok.RegexFlags}
	case lexer.TOKEN_TRUE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.At(tok.Loc(p.file)), Value: true}
	case lexer.TOKEN_FALSE:
		p.advance()
		return &ast.BoolLiteral{Base: ast.At(tok.Loc(p.file)), Value: false}
	case lexer.TOKEN_NIL:
		p.advance()
		return &ast.NilLiteral{Base: ast.At(tok.Loc(p.file))}
	case lexer.TOKEN_IDENTIFIER:
		return p.parseIdentOrLambda()
	case lexer.TOKEN_LPAREN:
		return p.parseParenOrLambda()
	case lexer.TOKEN_LBRACKET:
		return p.parseArrayLiteralOrComprehension()
	case lexer.TOKEN_LBRACE:
		if p.noBraceObj {
			p.fail(tok.Loc(p.file), "unexpected '{'")
		}
		return p.parseObjectLiteralOrComprehension()
	case lexer.TOKEN_MATCH:
		return p.parseMatchExpr()
	case lexer.TOKEN_IF:
		return p.parseIfExpr()
	case lexer.TOKEN_ASYNC, lexer.TOKEN_FN:
		return p.parseFnLambda()
	case lexer.TOKEN_LT:
		return p.parseJSXPrimary()
	case lexer.TOKEN_QUESTION:
		// A bare `?` can never start an expression; reaching here means
		// it was split from its operand by a newline, e.g. the operand's
		// statement already ended one line above.
		p.fail(tok.Loc(p.file), "dangling operator: '?' (did you mean to keep it on the same line as its operand?)")
		p.advance()
		return &ast.NilLiteral{Base: ast.At(tok.Loc(p.file))}
	default:
		p.fail(tok.Loc(p.file), "unexpected token '"+tok.Lexeme+"'")
		p.advance()
		return &ast.NilLiteral{Base: ast.At(tok.Loc(p.file))}
	}
}

func (p *Parser) buildTemplateLiteral(tok lexer.Token) ast.Expr {
	lit := &ast.TemplateLiteral{Base: ast.At(tok.Loc(p.file))}
	for _, part := range tok.Parts {
		if !part.IsExpr {
			lit.Parts = append(lit.Parts, ast.TemplatePart{IsExpr: false, Text: part.Text})
			continue
		}
		sub := New(part.Tokens, p.file, p.source)
		e := sub.parseExpr()
		lit.Parts = append(lit.Parts, ast.TemplatePart{IsExpr: true, Expr: e})
	}
	return lit
}

// parseIdentOrLambda disambiguates a bare identifier from the start of an
// arrow lambda `x => expr`.
func (p *Parser) parseIdentOrLambda() ast.Expr {
	tok := p.advance()
	if p.check(lexer.TOKEN_FAT_ARROW) {
		p.advance()
		return p.finishArrowLambda(tok.Loc(p.file), []ast.Param{{Name: tok.Lexeme}})
	}
	return &ast.Identifier{Base: ast.At(tok.Loc(p.file)), Name: tok.Lexeme}
}

// parseParenOrLambda speculatively parses `(...)` as a parenthesized
// expression, then backtracks if a `=>` follows, reinterpreting it as an
// arrow-lambda parameter list.
func (p *Parser) parseParenOrLambda() ast.Expr {
	start := p.current
	loc := p.advanceLoc()

	if p.check(lexer.TOKEN_RPAREN) {
		p.advance()
		if p.check(lexer.TOKEN_FAT_ARROW) {
			p.advance()
			return p.finishArrowLambda(loc, nil)
		}
		p.fail(loc, "empty parentheses are not a valid expression")
	}

	if looksLikeParamList(p, start) {
		params := p.parseParamList()
		p.expect(lexer.TOKEN_FAT_ARROW, "'=>'")
		return p.finishArrowLambda(loc, params)
	}

	inner := p.parseExpr()
	p.expect(lexer.TOKEN_RPAREN, "')'")
	if p.check(lexer.TOKEN_FAT_ARROW) {
		// A single bare name wrapped in parens, e.g. `(x) => x`.
		if id, ok := inner.(*ast.Identifier); ok {
			p.advance()
			return p.finishArrowLambda(loc, []ast.Param{{Name: id.Name}})
		}
	}
	return inner
}

// looksLikeParamList scans ahead without consuming to see whether the
// parenthesized group at `start` (the '(' token index) is shaped like a
// lambda parameter list (identifiers, optional type/default, commas)
// terminated by `) =>`.
func looksLikeParamList(p *Parser, parenIdx int) bool {
	depth := 0
	i := parenIdx
	for i < len(p.tokens) {
		tt := p.tokens[i].Type
		switch tt {
		case lexer.TOKEN_LPAREN:
			depth++
		case lexer.TOKEN_RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == lexer.TOKEN_FAT_ARROW
			}
		case lexer.TOKEN_EOF:
			return false
		}
		i++
	}
	return false
}

func (p *Parser) finishArrowLambda(loc ast.SourceLocation, params []ast.Param) ast.Expr {
	lambda := &ast.LambdaExpr{Base: ast.At(loc), Kind: ast.LambdaArrow, Params: params}
	if p.check(lexer.TOKEN_LBRACE) {
		lambda.BlockBody = p.parseBlock()
	} else {
		lambda.ExprBody = p.parseExpr()
	}
	return lambda
}

func (p *Parser) parseFnLambda() ast.Expr {
	loc := p.peek().Loc(p.file)
	async := p.match(lexer.TOKEN_ASYNC)
	p.expect(lexer.TOKEN_FN, "'fn'")
	params := p.parseParamList()
	var ret *ast.TypeAnn
	if p.check(lexer.TOKEN_ARROW) {
		p.advance()
		ret = p.parseTypeAnn()
	}
	body := p.parseBlock()
	return &ast.LambdaExpr{Base: ast.At(loc), Kind: ast.LambdaFn, Params: params, ReturnType: ret, Async: async, BlockBody: body}
}

func (p *Parser) parseArrayLiteralOrComprehension() ast.Expr {
	loc := p.advanceLoc()
	if p.check(lexer.TOKEN_RBRACKET) {
		p.advance()
		return &ast.ArrayLiteral{Base: ast.At(loc)}
	}

	first := p.parseComprehensionElemOrSpread()
	if p.check(lexer.TOKEN_FOR) {
		comp := p.finishComprehension(loc, ast.ComprehensionList, nil, first)
		p.expect(lexer.TOKEN_RBRACKET, "']'")
		return comp
	}

	elems := []ast.Expr{first}
	for p.match(lexer.TOKEN_COMMA) {
		if p.check(lexer.TOKEN_RBRACKET) {
			break
		}
		elems = append(elems, p.parseComprehensionElemOrSpread())
	}
	p.expect(lexer.TOKEN_RBRACKET, "']'")
	return &ast.ArrayLiteral{Base: ast.At(loc), Elements: elems}
}

func (p *Parser) parseComprehensionElemOrSpread() ast.Expr {
	if p.check(lexer.TOKEN_ELLIPSIS) {
		loc := p.advanceLoc()
		return &ast.SpreadExpr{Base: ast.At(loc), Value: p.parseExpr()}
	}
	return p.parseExpr()
}

func (p *Parser) finishComprehension(loc ast.SourceLocation, kind ast.ComprehensionKind, keyExpr, valExpr ast.Expr) ast.Expr {
	p.expect(lexer.TOKEN_FOR, "'for'")
	v := p.expectIdentName("loop variable")
	p.expect(lexer.TOKEN_IN, "'in'")
	iterable := p.parseExprNoBrace()
	var cond ast.Expr
	if p.check(lexer.TOKEN_IF) {
		p.advance()
		cond = p.parseExprNoBrace()
	}
	return &ast.Comprehension{Base: ast.At(loc), Kind: kind, KeyExpr: keyExpr, ValExpr: valExpr, Var: v, Iterable: iterable, Cond: cond}
}

func (p *Parser) parseObjectLiteralOrComprehension() ast.Expr {
	loc := p.advanceLoc()
	p.skipNewlines()
	if p.check(lexer.TOKEN_RBRACE) {
		p.advance()
		return &ast.ObjectLiteral{Base: ast.At(loc)}
	}

	if p.check(lexer.TOKEN_ELLIPSIS) {
		return p.finishObjectLiteral(loc, nil)
	}

	// Peek for the dict-comprehension shape `{ key: value for ... }` vs a
	// plain/shorthand property.
	if p.check(lexer.TOKEN_IDENTIFIER) && (p.peekAt(1).Type == lexer.TOKEN_COLON) {
		keyName := p.advance().Lexeme
		p.advance() // ':'
		val := p.parseExpr()
		if p.check(lexer.TOKEN_FOR) {
			key := ast.Expr(&ast.StringLiteral{Base: ast.At(loc), Value: keyName})
			comp := p.finishComprehension(loc, ast.ComprehensionDict, key, val)
			p.skipNewlines()
			p.expect(lexer.TOKEN_RBRACE, "'}'")
			return comp
		}
		first := ast.ObjectProperty{Key: keyName, Value: val}
		return p.finishObjectLiteral(loc, &first)
	}

	return p.finishObjectLiteral(loc, nil)
}

func (p *Parser) finishObjectLiteral(loc ast.SourceLocation, first *ast.ObjectProperty) ast.Expr {
	var props []ast.ObjectProperty
	if first != nil {
		props = append(props, *first)
		p.skipNewlines()
		if !p.match(lexer.TOKEN_COMMA) {
			p.expect(lexer.TOKEN_RBRACE, "'}'")
			return &ast.ObjectLiteral{Base: ast.At(loc), Properties: props}
		}
	}
	for p.skipNewlines(); !p.check(lexer.TOKEN_RBRACE); p.skipNewlines() {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			p.advance()
			props = append(props, ast.ObjectProperty{Spread: true, Value: p.parseExpr()})
		} else {
			name := p.expectIdentName("property name")
			if p.check(lexer.TOKEN_COLON) {
				p.advance()
				props = append(props, ast.ObjectProperty{Key: name, Value: p.parseExpr()})
			} else {
				props = append(props, ast.ObjectProperty{Key: name, Value: &ast.Identifier{Base: ast.At(loc), Name: name}})
			}
		}
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.skipNewlines()
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.ObjectLiteral{Base: ast.At(loc), Properties: props}
}

func (p *Parser) parseMatchExpr() ast.Expr {
	loc := p.advanceLoc()
	subject := p.parseExprNoBrace()
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	expr := &ast.MatchExpr{Base: ast.At(loc), Subject: subject}
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.match(lexer.TOKEN_NEWLINE) || p.match(lexer.TOKEN_COMMA) {
			continue
		}
		arm := ast.MatchArm{Pattern: p.parsePattern()}
		if p.check(lexer.TOKEN_WHEN) {
			p.advance()
			arm.Guard = p.parseExprNoBrace()
		}
		p.expect(lexer.TOKEN_FAT_ARROW, "'=>'")
		if p.check(lexer.TOKEN_LBRACE) {
			arm.Body = blockAsExpr(p.parseBlock(), loc)
		} else {
			arm.Body = p.parseExpr()
		}
		expr.Arms = append(expr.Arms, arm)
	}
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return expr
}

// blockAsExpr wraps a `{ ... }` match-arm body as a single expression by
// representing it as an immediately-inlined block; the code generator
// lowers this the same way it lowers an IIFE.
func blockAsExpr(body []ast.Stmt, loc ast.SourceLocation) ast.Expr {
	return &ast.LambdaExpr{Base: ast.At(loc), Kind: ast.LambdaFn, BlockBody: body}
}

func (p *Parser) parseIfExpr() ast.Expr {
	loc := p.advanceLoc()
	cond := p.parseExprNoBrace()
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	then := p.parseExprStmtAsExpr()
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	p.expect(lexer.TOKEN_ELSE, "'else' (if-expressions require an else branch)")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	els := p.parseExprStmtAsExpr()
	p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.IfExpr{Base: ast.At(loc), Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseExprStmtAsExpr() ast.Expr {
	p.match(lexer.TOKEN_NEWLINE)
	e := p.parseExpr()
	p.match(lexer.TOKEN_NEWLINE)
	return e
}

// parseJSXPrimary wraps a parsed JSX tree so it can be used wherever an
// expression is expected.
func (p *Parser) parseJSXPrimary() ast.Expr {
	loc := p.peek().Loc(p.file)
	node := p.parseJSXElement()
	return &ast.JSXExpr{Base: ast.At(loc), Node: node}
}
