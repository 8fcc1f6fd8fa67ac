package codegen

import (
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genMatch lowers a match expression, picking between two strategies:
// a plain ternary chain when every arm is simple enough to
// need no binding and no guard-scoped IIFE, otherwise a single IIFE
// that binds the subject once and returns from the first matching arm.
func (g *Generator) genMatch(scope *varScope, m *ast.MatchExpr) string {
	if g.matchIsSimple(m) {
		return g.genMatchTernary(scope, m)
	}
	return g.genMatchIIFE(scope, m)
}

func (g *Generator) matchIsSimple(m *ast.MatchExpr) bool {
	if _, ok := m.Subject.(*ast.Identifier); !ok {
		return false
	}
	for _, arm := range m.Arms {
		if arm.Guard != nil {
			return false
		}
		switch arm.Pattern.(type) {
		case *ast.LiteralPattern, *ast.RangePattern, *ast.WildcardPattern:
		default:
			return false
		}
		if isBlockArmBody(arm.Body) {
			// blockAsExpr wraps a `{ ... }` arm body in a zero-arg
			// lambda; a simple ternary chain can't host statements, so
			// fall back to the IIFE strategy.
			return false
		}
	}
	return true
}

func (g *Generator) genMatchTernary(scope *varScope, m *ast.MatchExpr) string {
	subject := g.genExpr(scope, m.Subject)
	var b strings.Builder
	open := 0
	hasDefault := false
	for _, arm := range m.Arms {
		if _, ok := arm.Pattern.(*ast.WildcardPattern); ok {
			b.WriteString(g.genArmBody(scope, arm.Body))
			hasDefault = true
			break
		}
		cond := patternTest(g, scope, subject, arm.Pattern)
		b.WriteString(fmt.Sprintf("(%s ? %s : ", cond, g.genArmBody(scope, arm.Body)))
		open++
	}
	if !hasDefault {
		b.WriteString("undefined")
	}
	b.WriteString(strings.Repeat(")", open))
	return b.String()
}

// isBlockArmBody reports whether body is a `{ ... }` match-arm body as
// represented by the parser's blockAsExpr: a zero-parameter LambdaFn
// lambda carrying a block instead of an expression.
func isBlockArmBody(body ast.Expr) bool {
	l, ok := body.(*ast.LambdaExpr)
	return ok && l.Kind == ast.LambdaFn && l.BlockBody != nil && len(l.Params) == 0
}

// genArmBody renders a match-arm body, immediately invoking it when
// it's a `{ ... }` block body (so its statements execute and its value
// is produced inline) and rendering a plain expression body as-is.
func (g *Generator) genArmBody(scope *varScope, body ast.Expr) string {
	if isBlockArmBody(body) {
		return "(" + g.genExpr(scope, body) + ")()"
	}
	return g.genExpr(scope, body)
}

// genMatchIIFE binds the subject once, then tries each arm in order via
// an `if (<cond>) return <body>;` chain, with pattern bindings (and, for
// a guarded binding arm, the guard itself) scoped to a nested IIFE so
// they don't leak between arms.
func (g *Generator) genMatchIIFE(scope *varScope, m *ast.MatchExpr) string {
	subjectExpr := g.genExpr(scope, m.Subject)
	subjectVar := "__match"
	var b strings.Builder
	b.WriteString(fmt.Sprintf("(%s => {\n", subjectVar))
	for _, arm := range m.Arms {
		armScope := newVarScope(scope)
		cond := patternTest(g, armScope, subjectVar, arm.Pattern)
		bindings := patternBindings(g, armScope, subjectVar, arm.Pattern)

		if arm.Guard != nil {
			guardScope := newVarScope(armScope)
			guardCond := g.genExpr(guardScope, arm.Guard)
			b.WriteString(fmt.Sprintf("  if (%s) {\n", cond))
			for _, decl := range bindings {
				b.WriteString("    " + decl + "\n")
			}
			b.WriteString(fmt.Sprintf("    if (%s) return %s;\n", guardCond, g.genArmBody(armScope, arm.Body)))
			b.WriteString("  }\n")
			continue
		}

		if len(bindings) == 0 {
			b.WriteString(fmt.Sprintf("  if (%s) return %s;\n", cond, g.genArmBody(armScope, arm.Body)))
			continue
		}
		b.WriteString(fmt.Sprintf("  if (%s) {\n", cond))
		for _, decl := range bindings {
			b.WriteString("    " + decl + "\n")
		}
		b.WriteString(fmt.Sprintf("    return %s;\n", g.genArmBody(armScope, arm.Body)))
		b.WriteString("  }\n")
	}
	b.WriteString(fmt.Sprintf("})(%s)", subjectExpr))
	return b.String()
}
