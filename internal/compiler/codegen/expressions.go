package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

var binaryOpText = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%", ast.OpPow: "**",
	ast.OpEq: "===", ast.OpNeq: "!==", ast.OpLt: "<", ast.OpLte: "<=", ast.OpGt: ">", ast.OpGte: ">=",
}

// genExpr lowers an expression to its JavaScript source text. Binary,
// logical, and ternary sub-expressions are always wrapped in
// parentheses when nested inside another expression; this sacrifices a
// handful of redundant parens for simplicity and correctness, since the
// generator never needs a full precedence table to stay deterministic
// and correct.
func (g *Generator) genExpr(scope *varScope, e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *ast.StringLiteral:
		return jsStringLit(v.Value)
	case *ast.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.NilLiteral:
		return "null"
	case *ast.RegexLiteral:
		return "/" + v.Pattern + "/" + v.Flags
	case *ast.TemplateLiteral:
		return g.genTemplate(scope, v)
	case *ast.BinaryExpr:
		return g.genBinary(scope, v)
	case *ast.ChainedComparisonExpr:
		return g.genChainedComparison(scope, v)
	case *ast.LogicalExpr:
		op := "&&"
		if v.Op == ast.LogicalOr {
			op = "||"
		}
		return fmt.Sprintf("(%s %s %s)", g.genExpr(scope, v.Left), op, g.genExpr(scope, v.Right))
	case *ast.UnaryExpr:
		return g.genUnary(scope, v)
	case *ast.MembershipExpr:
		return g.genMembership(scope, v)
	case *ast.RangeExpr:
		return g.genRange(scope, v)
	case *ast.SliceExpr:
		return g.genSlice(scope, v)
	case *ast.SubscriptExpr:
		return fmt.Sprintf("%s[%s]", g.genAtom(scope, v.Target), g.genExpr(scope, v.Index))
	case *ast.MemberExpr:
		return fmt.Sprintf("%s.%s", g.genAtom(scope, v.Target), v.Name)
	case *ast.OptionalMemberExpr:
		return fmt.Sprintf("%s?.%s", g.genAtom(scope, v.Target), v.Name)
	case *ast.OptionalSubscriptExpr:
		return fmt.Sprintf("%s?.[%s]", g.genAtom(scope, v.Target), g.genExpr(scope, v.Index))
	case *ast.PropagateExpr:
		return g.genPropagate(scope, v)
	case *ast.PipeExpr:
		return g.genPipe(scope, v)
	case *ast.CallExpr:
		return g.genCall(scope, v)
	case *ast.SpreadExpr:
		return "..." + g.genExpr(scope, v.Value)
	case *ast.ObjectLiteral:
		return g.genObjectLiteral(scope, v)
	case *ast.ArrayLiteral:
		return g.genArrayLiteral(scope, v)
	case *ast.Comprehension:
		return g.genComprehension(scope, v)
	case *ast.LambdaExpr:
		return g.genLambda(scope, v)
	case *ast.MatchExpr:
		return g.genMatch(scope, v)
	case *ast.IfExpr:
		return g.genIfExpr(scope, v)
	case *ast.JSXExpr:
		return g.genJSXNode(scope, v.Node)
	}
	return "/* unsupported expression */"
}

// genAtom wraps e in parens when it is not already a single lexical
// token or call/member/subscript chain, for use as the target of a
// postfix `.`/`[...]`/call operation.
func (g *Generator) genAtom(scope *varScope, e ast.Expr) string {
	switch e.(type) {
	case *ast.Identifier, *ast.CallExpr, *ast.MemberExpr, *ast.OptionalMemberExpr,
		*ast.SubscriptExpr, *ast.OptionalSubscriptExpr, *ast.StringLiteral, *ast.ArrayLiteral,
		*ast.ObjectLiteral, *ast.IntLiteral, *ast.FloatLiteral:
		return g.genExpr(scope, e)
	}
	return "(" + g.genExpr(scope, e) + ")"
}

func jsStringLit(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (g *Generator) genTemplate(scope *varScope, t *ast.TemplateLiteral) string {
	var b strings.Builder
	b.WriteByte('`')
	for _, part := range t.Parts {
		if part.IsExpr {
			b.WriteString("${")
			b.WriteString(g.genExpr(scope, part.Expr))
			b.WriteString("}")
		} else {
			b.WriteString(strings.ReplaceAll(part.Text, "`", "\\`"))
		}
	}
	b.WriteByte('`')
	return b.String()
}

func (g *Generator) genBinary(scope *varScope, b *ast.BinaryExpr) string {
	// string * integer repeat sugar.
	if b.Op == ast.OpMul {
		if _, ok := b.Left.(*ast.StringLiteral); ok {
			return fmt.Sprintf("%s.repeat(%s)", g.genExpr(scope, b.Left), g.genExpr(scope, b.Right))
		}
	}
	op, ok := binaryOpText[b.Op]
	if !ok {
		op = "+"
	}
	return fmt.Sprintf("(%s %s %s)", g.genExpr(scope, b.Left), op, g.genExpr(scope, b.Right))
}

func (g *Generator) genChainedComparison(scope *varScope, c *ast.ChainedComparisonExpr) string {
	parts := make([]string, 0, len(c.Ops))
	for i, op := range c.Ops {
		text := binaryOpText[op]
		parts = append(parts, fmt.Sprintf("(%s %s %s)", g.genExpr(scope, c.Operands[i]), text, g.genExpr(scope, c.Operands[i+1])))
	}
	return "(" + strings.Join(parts, " && ") + ")"
}

func (g *Generator) genUnary(scope *varScope, u *ast.UnaryExpr) string {
	switch u.Op {
	case ast.UnaryNeg:
		return "-" + g.genAtom(scope, u.Operand)
	case ast.UnaryPlus:
		return "+" + g.genAtom(scope, u.Operand)
	case ast.UnaryNot:
		return "!" + g.genAtom(scope, u.Operand)
	}
	return g.genExpr(scope, u.Operand)
}

// genMembership lowers `in`/`not in` by collection shape: literal
// array/string get `.includes`, `Set`/`Map` constructor calls get
// `.has`, object literals get native `in`, and anything else falls
// back to the injected `__contains` helper.
func (g *Generator) genMembership(scope *varScope, m *ast.MembershipExpr) string {
	val := g.genExpr(scope, m.Value)
	var expr string
	switch coll := m.Coll.(type) {
	case *ast.ArrayLiteral, *ast.StringLiteral:
		expr = fmt.Sprintf("%s.includes(%s)", g.genAtom(scope, m.Coll), val)
	case *ast.CallExpr:
		if ident, ok := coll.Callee.(*ast.MemberExpr); ok && ident.Name == "new" {
			if target, ok := ident.Target.(*ast.Identifier); ok && (target.Name == "Set" || target.Name == "Map") {
				expr = fmt.Sprintf("%s.has(%s)", g.genAtom(scope, m.Coll), val)
				break
			}
		}
		g.contains = true
		expr = fmt.Sprintf("__contains(%s, %s)", g.genExpr(scope, m.Coll), val)
	case *ast.ObjectLiteral:
		expr = fmt.Sprintf("(%s in %s)", val, g.genAtom(scope, m.Coll))
	default:
		g.contains = true
		expr = fmt.Sprintf("__contains(%s, %s)", g.genExpr(scope, m.Coll), val)
	}
	if m.Negated {
		return "!" + expr
	}
	return expr
}

func (g *Generator) genRange(scope *varScope, r *ast.RangeExpr) string {
	start := g.genExpr(scope, r.Start)
	end := g.genExpr(scope, r.End)
	length := fmt.Sprintf("%s - %s", end, start)
	if r.Inclusive {
		length = fmt.Sprintf("%s - %s + 1", end, start)
	}
	return fmt.Sprintf("Array.from({length: %s}, (_, i) => %s + i)", length, start)
}

func (g *Generator) genSlice(scope *varScope, s *ast.SliceExpr) string {
	target := g.genAtom(scope, s.Target)
	if s.Step == nil {
		start := "0"
		if s.Start != nil {
			start = g.genExpr(scope, s.Start)
		}
		if s.End != nil {
			return fmt.Sprintf("%s.slice(%s, %s)", target, start, g.genExpr(scope, s.End))
		}
		return fmt.Sprintf("%s.slice(%s)", target, start)
	}
	start := "undefined"
	if s.Start != nil {
		start = g.genExpr(scope, s.Start)
	}
	end := "undefined"
	if s.End != nil {
		end = g.genExpr(scope, s.End)
	}
	return fmt.Sprintf("__slice(%s, %s, %s, %s)", target, start, end, g.genExpr(scope, s.Step))
}

// genPropagate lowers the postfix `?` short-circuit operator to an
// inline Result-tag check. It can only appear inside a function body;
// the generator trusts the analyzer to have enforced that.
func (g *Generator) genPropagate(scope *varScope, p *ast.PropagateExpr) string {
	tmp := g.nextTemp("prop")
	target := g.genExpr(scope, p.Target)
	return fmt.Sprintf("(%s => { if (%s && %s.__tag === 'Err') throw new __Propagate(%s); return %s.value; })(%s)",
		tmp, tmp, tmp, tmp, tmp, target)
}

func (g *Generator) genPipe(scope *varScope, p *ast.PipeExpr) string {
	value := g.genExpr(scope, p.Value)
	callee := g.genExpr(scope, p.Call.Callee)
	args := make([]string, 0, len(p.Call.Args))
	substituted := false
	for _, arg := range p.Call.Args {
		if ident, ok := arg.Value.(*ast.Identifier); ok && ident.Name == "_" {
			args = append(args, value)
			substituted = true
			continue
		}
		args = append(args, g.genArg(scope, arg))
	}
	if !substituted {
		args = append([]string{value}, args...)
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

func (g *Generator) genArg(scope *varScope, a ast.Argument) string {
	val := g.genExpr(scope, a.Value)
	if a.Spread {
		return "..." + val
	}
	return val
}

func (g *Generator) genCall(scope *varScope, c *ast.CallExpr) string {
	callee := g.genAtom(scope, c.Callee)
	hasNamed := false
	for _, a := range c.Args {
		if a.Name != "" {
			hasNamed = true
			break
		}
	}
	if !hasNamed {
		parts := make([]string, len(c.Args))
		for i, a := range c.Args {
			parts[i] = g.genArg(scope, a)
		}
		return fmt.Sprintf("%s(%s)", callee, strings.Join(parts, ", "))
	}
	// Named arguments are passed as a single trailing options object.
	var positional []string
	var named []string
	for _, a := range c.Args {
		if a.Name == "" {
			positional = append(positional, g.genArg(scope, a))
			continue
		}
		named = append(named, fmt.Sprintf("%s: %s", a.Name, g.genExpr(scope, a.Value)))
	}
	positional = append(positional, "{"+strings.Join(named, ", ")+"}")
	return fmt.Sprintf("%s(%s)", callee, strings.Join(positional, ", "))
}

func (g *Generator) genObjectLiteral(scope *varScope, o *ast.ObjectLiteral) string {
	parts := make([]string, 0, len(o.Properties))
	for _, p := range o.Properties {
		if p.Spread {
			parts = append(parts, "..."+g.genExpr(scope, p.Value))
			continue
		}
		if p.Value == nil {
			parts = append(parts, p.Key)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", p.Key, g.genExpr(scope, p.Value)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (g *Generator) genArrayLiteral(scope *varScope, a *ast.ArrayLiteral) string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = g.genExpr(scope, e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// genComprehension lowers list/dict comprehensions to filter/map chains
// called directly on the iterable expression.
func (g *Generator) genComprehension(scope *varScope, c *ast.Comprehension) string {
	iterable := g.genExpr(scope, c.Iterable)
	inner := newVarScope(scope)
	inner.declare(c.Var)
	if c.Kind == ast.ComprehensionDict {
		entry := fmt.Sprintf("[%s, %s]", g.genExpr(inner, c.KeyExpr), g.genExpr(inner, c.ValExpr))
		chain := fmt.Sprintf("%s.map(%s => %s)", iterable, c.Var, entry)
		if c.Cond != nil {
			chain = fmt.Sprintf("%s.filter(%s => %s)", iterable, c.Var, g.genExpr(inner, c.Cond))
			chain = fmt.Sprintf("%s.map(%s => %s)", chain, c.Var, entry)
		}
		return fmt.Sprintf("Object.fromEntries(%s)", chain)
	}
	chain := iterable
	if c.Cond != nil {
		chain = fmt.Sprintf("%s.filter(%s => %s)", chain, c.Var, g.genExpr(inner, c.Cond))
	}
	return fmt.Sprintf("%s.map(%s => %s)", chain, c.Var, g.genExpr(inner, c.ValExpr))
}

func (g *Generator) genLambda(scope *varScope, l *ast.LambdaExpr) string {
	inner := newVarScope(scope)
	params := g.genParamList(inner, l.Params)
	prefix := ""
	if l.Async {
		prefix = "async "
	}
	if l.ExprBody != nil {
		return fmt.Sprintf("%s(%s) => %s", prefix, params, g.genExpr(inner, l.ExprBody))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s(%s) => {\n", prefix, params))
	g.genFunctionBody(&b, inner, l.BlockBody, 1)
	b.WriteString("}")
	return b.String()
}

func (g *Generator) genParamList(scope *varScope, params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		scope.declare(p.Name)
		if p.DefaultValue != nil {
			parts[i] = fmt.Sprintf("%s = %s", p.Name, g.genExpr(scope, p.DefaultValue))
		} else {
			parts[i] = p.Name
		}
	}
	return strings.Join(parts, ", ")
}
