package analyzer

import (
	"sort"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// isTerminal reports whether stmt unconditionally transfers control out
// of the statement list it's in (return/break/continue, or an if/else
// where every branch is itself terminal), used by visitBody's
// unreachable-code warning and by unreachableAfter.
func isTerminal(stmt ast.Stmt) bool {
	switch v := stmt.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	case *ast.IfStmt:
		if v.Else == nil {
			return false
		}
		if !blockTerminal(v.Then) {
			return false
		}
		for _, ei := range v.ElseIfs {
			if !blockTerminal(ei.Body) {
				return false
			}
		}
		return blockTerminal(v.Else)
	}
	return false
}

func blockTerminal(body []ast.Stmt) bool {
	for _, s := range body {
		if isTerminal(s) {
			return true
		}
	}
	return false
}

// unreachableAfter scans a statement list and returns the statements
// that follow an unconditional return/break/continue/terminal-if,
// i.e. dead code.
func unreachableAfter(body []ast.Stmt) []ast.Stmt {
	for i, s := range body {
		if isTerminal(s) && i+1 < len(body) {
			return body[i+1:]
		}
	}
	return nil
}

// constantCondition reports whether cond is a literal boolean, and its
// value, used to flag `if true`/`if false`/`while false`.
// `while true` is exempted at the call site since it's an accepted idiom
// for an explicit event loop.
func constantCondition(cond ast.Expr) (value bool, isConstant bool) {
	b, ok := cond.(*ast.BoolLiteral)
	if !ok {
		return false, false
	}
	return b.Value, true
}

// variantNames returns the constructor names declared by a TypeVariant
// TypeDecl, keyed for exhaustiveness checking.
func variantNames(decl *ast.TypeDecl) map[string]bool {
	out := map[string]bool{}
	if decl.Kind != ast.TypeVariant {
		return out
	}
	for _, v := range decl.Variants {
		out[v.Name] = true
	}
	return out
}

// collectVariantDecls walks the program and indexes every TypeVariant
// declaration by each of its constructor names, so a match arm's
// VariantPattern can be traced back to the full set of sibling variants
// it belongs to without a general type checker.
func collectVariantDecls(prog *ast.Program) map[string]*ast.TypeDecl {
	out := map[string]*ast.TypeDecl{}
	var indexBody func([]ast.Stmt)
	indexBody = func(body []ast.Stmt) {
		for _, stmt := range body {
			switch v := stmt.(type) {
			case *ast.TypeDecl:
				if v.Kind != ast.TypeVariant {
					continue
				}
				for _, variant := range v.Variants {
					out[variant.Name] = v
				}
			case *ast.ServerBlock:
				indexBody(v.Body)
			case *ast.ClientBlock:
				indexBody(v.Body)
			case *ast.SharedBlock:
				indexBody(v.Body)
			case *ast.TestBlock:
				indexBody(v.Body)
			case *ast.RouteGroupDecl:
				indexBody(v.Body)
			}
		}
	}
	indexBody(prog.Body)
	return out
}

// missingVariants reports the constructor names declared on owner that
// are absent from covered, sorted for a deterministic diagnostic.
func missingVariants(owner *ast.TypeDecl, covered map[string]bool) []string {
	var missing []string
	for name := range variantNames(owner) {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// matchCoverage walks a match expression's arms and reports which
// variant constructor names are covered, and whether a catch-all arm
// (wildcard `_`, bare binding, or unguarded) is present. An arm with a
// `when` guard does not count toward exhaustiveness since it may not
// match every value of its pattern.
func matchCoverage(m *ast.MatchExpr) (covered map[string]bool, hasCatchAll bool) {
	covered = map[string]bool{}
	for _, arm := range m.Arms {
		if arm.Guard != nil {
			continue
		}
		switch p := arm.Pattern.(type) {
		case *ast.WildcardPattern:
			hasCatchAll = true
		case *ast.BindingPattern:
			hasCatchAll = true
		case *ast.VariantPattern:
			covered[p.Name] = true
		}
	}
	return covered, hasCatchAll
}

// unreachableArms returns the index of every arm that can never be
// reached because an earlier unguarded catch-all arm already covers
// every value.
func unreachableArms(m *ast.MatchExpr) []int {
	var out []int
	seenCatchAll := false
	for i, arm := range m.Arms {
		if seenCatchAll {
			out = append(out, i)
			continue
		}
		if arm.Guard != nil {
			continue
		}
		switch arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.BindingPattern:
			seenCatchAll = true
		}
	}
	return out
}
