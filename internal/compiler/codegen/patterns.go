package codegen

import (
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genPatternBinding renders a destructuring pattern as JS destructuring
// syntax, for use on the left side of `const <pattern> = <value>;`.
// Only array/object/binding patterns are valid in this position;
// literal/range/variant patterns belong to
// match arms and are handled by patternTest/patternBindings instead.
func genPatternBinding(p ast.Pattern) string {
	switch v := p.(type) {
	case *ast.BindingPattern:
		return v.Name
	case *ast.WildcardPattern:
		return "_"
	case *ast.ArrayPattern:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			if _, ok := el.(*ast.WildcardPattern); ok {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, genPatternBinding(el))
		}
		if v.Rest != "" {
			parts = append(parts, "..."+v.Rest)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectPattern:
		parts := make([]string, 0, len(v.Fields))
		for _, f := range v.Fields {
			switch {
			case f.Alias != "" && f.Default != nil:
				parts = append(parts, fmt.Sprintf("%s: %s = %s", f.Key, f.Alias, literalPlaceholder(f.Default)))
			case f.Alias != "":
				parts = append(parts, fmt.Sprintf("%s: %s", f.Key, f.Alias))
			case f.Default != nil:
				parts = append(parts, fmt.Sprintf("%s = %s", f.Key, literalPlaceholder(f.Default)))
			default:
				parts = append(parts, f.Key)
			}
		}
		if v.Rest != "" {
			parts = append(parts, "..."+v.Rest)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "_"
}

// literalPlaceholder renders a default-value expression without a
// Generator instance, sufficient for the simple literal defaults
// destructuring patterns carry; a full Generator is unavailable here
// since pattern rendering happens ahead of expression codegen in some
// call sites (function parameter lists).
func literalPlaceholder(e ast.Expr) string {
	g := New()
	return g.genExpr(newVarScope(nil), e)
}

// bindPatternNames installs every name a pattern introduces into scope,
// so that later references resolve as declared (not reassigned via
// `const`).
func bindPatternNames(scope *varScope, p ast.Pattern) {
	switch v := p.(type) {
	case *ast.BindingPattern:
		scope.declare(v.Name)
	case *ast.ArrayPattern:
		for _, el := range v.Elements {
			bindPatternNames(scope, el)
		}
		if v.Rest != "" {
			scope.declare(v.Rest)
		}
	case *ast.ObjectPattern:
		for _, f := range v.Fields {
			name := f.Key
			if f.Alias != "" {
				name = f.Alias
			}
			scope.declare(name)
		}
		if v.Rest != "" {
			scope.declare(v.Rest)
		}
	}
}

// patternTest renders the boolean condition checking whether subject
// (already-evaluated JS expression text) matches pattern p, used by
// match-arm lowering (match.go). It does not bind names; patternBindings
// does that separately via `const` declarations scoped to the arm.
func patternTest(g *Generator, scope *varScope, subject string, p ast.Pattern) string {
	switch v := p.(type) {
	case *ast.WildcardPattern, *ast.BindingPattern:
		return "true"
	case *ast.LiteralPattern:
		return fmt.Sprintf("%s === %s", subject, g.genExpr(scope, v.Value))
	case *ast.RangePattern:
		lo := g.genExpr(scope, v.Start)
		hi := g.genExpr(scope, v.End)
		if v.Inclusive {
			return fmt.Sprintf("(%s >= %s && %s <= %s)", subject, lo, subject, hi)
		}
		return fmt.Sprintf("(%s >= %s && %s < %s)", subject, lo, subject, hi)
	case *ast.VariantPattern:
		cond := fmt.Sprintf("%s && %s.__tag === %s", subject, subject, jsStringLit(v.Name))
		for i, arg := range v.Args {
			field := fmt.Sprintf("%s.__args[%d]", subject, i)
			sub := patternTest(g, scope, field, arg)
			if sub != "true" {
				cond += " && " + sub
			}
		}
		return cond
	case *ast.ArrayPattern:
		cond := fmt.Sprintf("Array.isArray(%s)", subject)
		for i, el := range v.Elements {
			sub := patternTest(g, scope, fmt.Sprintf("%s[%d]", subject, i), el)
			if sub != "true" {
				cond += " && " + sub
			}
		}
		return cond
	case *ast.ObjectPattern:
		return fmt.Sprintf("%s != null", subject)
	}
	return "true"
}

// patternBindings renders the `const` declarations that bind names
// introduced by p against an already-evaluated subject expression, for
// use inside a match-arm's IIFE body (match.go).
func patternBindings(g *Generator, scope *varScope, subject string, p ast.Pattern) []string {
	var out []string
	switch v := p.(type) {
	case *ast.BindingPattern:
		out = append(out, fmt.Sprintf("const %s = %s;", v.Name, subject))
		scope.declare(v.Name)
	case *ast.VariantPattern:
		for i, arg := range v.Args {
			out = append(out, patternBindings(g, scope, fmt.Sprintf("%s.__args[%d]", subject, i), arg)...)
		}
	case *ast.ArrayPattern:
		for i, el := range v.Elements {
			out = append(out, patternBindings(g, scope, fmt.Sprintf("%s[%d]", subject, i), el)...)
		}
	case *ast.ObjectPattern:
		for _, f := range v.Fields {
			name := f.Key
			if f.Alias != "" {
				name = f.Alias
			}
			out = append(out, fmt.Sprintf("const %s = %s.%s;", name, subject, f.Key))
			scope.declare(name)
		}
	}
	return out
}
