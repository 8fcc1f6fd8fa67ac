package codegen

import (
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

var compoundOpText = map[ast.AssignOp]string{
	ast.AssignAdd: "+=", ast.AssignSub: "-=", ast.AssignMul: "*=", ast.AssignDiv: "/=",
}

// genStmt lowers one statement, including a trailing newline, at the
// given indent depth.
func (g *Generator) genStmt(scope *varScope, stmt ast.Stmt, depth int) string {
	pad := indent(depth)
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		return pad + g.genExpr(scope, v.Expr) + ";\n"

	case *ast.VarDecl:
		return pad + g.genVarDecl(scope, v) + "\n"

	case *ast.AssignmentStmt:
		return pad + g.genAssignment(scope, v) + "\n"

	case *ast.FunctionDecl:
		return g.genFunctionDecl(scope, v, depth)

	case *ast.TypeDecl:
		return g.genTypeDecl(v, depth)

	case *ast.ImportDecl:
		return pad + g.genImport(v) + "\n"

	case *ast.IfStmt:
		return g.genIfStmt(scope, v, depth)

	case *ast.ForStmt:
		return g.genForStmt(scope, v, depth)

	case *ast.WhileStmt:
		return g.genWhileStmt(scope, v, depth)

	case *ast.TryStmt:
		return g.genTryStmt(scope, v, depth)

	case *ast.BreakStmt:
		return pad + "break;\n"

	case *ast.ContinueStmt:
		return pad + "continue;\n"

	case *ast.ReturnStmt:
		if v.Value == nil {
			return pad + "return;\n"
		}
		return pad + "return " + g.genExpr(scope, v.Value) + ";\n"

	case *ast.BlockStmt:
		var b strings.Builder
		inner := newVarScope(scope)
		b.WriteString(pad + "{\n")
		for _, s := range v.Body {
			b.WriteString(g.genStmt(inner, s, depth+1))
		}
		b.WriteString(pad + "}\n")
		return b.String()
	}
	return ""
}

// genVarDecl implements the variable-declaration and let-destructure
// lowering rules.
func (g *Generator) genVarDecl(scope *varScope, v *ast.VarDecl) string {
	if v.Pattern != nil {
		pat := genPatternBinding(v.Pattern)
		bindPatternNames(scope, v.Pattern)
		return fmt.Sprintf("const %s = %s;", pat, g.genExpr(scope, v.Value))
	}

	if len(v.Targets) == 1 {
		name := v.Targets[0]
		value := g.genExpr(scope, v.Value)
		if name == "_" {
			return value + ";"
		}
		if v.Kind == ast.VarVar {
			scope.declare(name)
			return fmt.Sprintf("let %s = %s;", name, value)
		}
		scope.declare(name)
		return fmt.Sprintf("const %s = %s;", name, value)
	}

	// Multi-target: atomic destructuring assignment/declaration.
	value := g.genExpr(scope, v.Value)
	names := strings.Join(v.Targets, ", ")
	allNew := true
	for _, n := range v.Targets {
		if scope.isDeclared(n) {
			allNew = false
		}
		scope.declare(n)
	}
	if allNew {
		return fmt.Sprintf("const [%s] = %s;", names, value)
	}
	return fmt.Sprintf("[%s] = %s;", names, value)
}

// genAssignment implements plain/compound assignment, including the
// client-only reactive-state rewrite:
// `x = v` on a tracked state name becomes `setX(v)`, `x += d` becomes
// `setX(p => p + d)`.
func (g *Generator) genAssignment(scope *varScope, a *ast.AssignmentStmt) string {
	if len(a.Targets) > 1 {
		names := make([]string, len(a.Targets))
		for i, t := range a.Targets {
			names[i] = g.genAssignTarget(scope, t)
		}
		return fmt.Sprintf("[%s] = %s;", strings.Join(names, ", "), g.genExpr(scope, a.Value))
	}

	t := a.Targets[0]
	value := g.genExpr(scope, a.Value)

	if t.Name != "" && t.Name != "_" {
		if setter, ok := scope.lookupState(t.Name); ok {
			if a.Op == ast.AssignPlain {
				return fmt.Sprintf("%s(%s);", setter, value)
			}
			op := strings.TrimSuffix(compoundOpText[a.Op], "=")
			return fmt.Sprintf("%s(__p => __p %s %s);", setter, op, value)
		}
		if a.Op == ast.AssignPlain {
			return fmt.Sprintf("%s = %s;", t.Name, value)
		}
		return fmt.Sprintf("%s %s %s;", t.Name, compoundOpText[a.Op], value)
	}

	target := g.genExpr(scope, t.Member)
	if a.Op == ast.AssignPlain {
		return fmt.Sprintf("%s = %s;", target, value)
	}
	return fmt.Sprintf("%s %s %s;", target, compoundOpText[a.Op], value)
}

func (g *Generator) genAssignTarget(scope *varScope, t ast.AssignTarget) string {
	if t.Name != "" {
		return t.Name
	}
	return g.genExpr(scope, t.Member)
}

func (g *Generator) genFunctionDecl(scope *varScope, fn *ast.FunctionDecl, depth int) string {
	scope.declare(fn.Name)
	inner := newVarScope(scope)
	params := g.genParamList(inner, fn.Params)
	prefix := ""
	if fn.Async {
		prefix = "async "
	}
	var b strings.Builder
	pad := indent(depth)
	b.WriteString(fmt.Sprintf("%s%sfunction %s(%s) {\n", pad, prefix, fn.Name, params))
	g.genFunctionBody(&b, inner, fn.Body, depth+1)
	b.WriteString(pad + "}\n")
	return b.String()
}

// genFunctionBody emits a function's statement list, wrapping a final
// bare expression statement in `return` per the implicit-return rule.
func (g *Generator) genFunctionBody(b *strings.Builder, scope *varScope, body []ast.Stmt, depth int) {
	for i, stmt := range body {
		if i == len(body)-1 {
			if es, ok := stmt.(*ast.ExprStmt); ok {
				b.WriteString(indent(depth) + "return " + g.genExpr(scope, es.Expr) + ";\n")
				continue
			}
		}
		b.WriteString(g.genStmt(scope, stmt, depth))
	}
}

func (g *Generator) genImport(v *ast.ImportDecl) string {
	var names []string
	if v.DefaultName != "" {
		names = append(names, v.DefaultName)
	}
	if len(v.Named) > 0 {
		parts := make([]string, len(v.Named))
		for i, spec := range v.Named {
			if spec.Alias != "" {
				parts[i] = fmt.Sprintf("%s as %s", spec.Name, spec.Alias)
			} else {
				parts[i] = spec.Name
			}
		}
		names = append(names, "{ "+strings.Join(parts, ", ")+" }")
	}
	return fmt.Sprintf("import %s from %s;", strings.Join(names, ", "), jsStringLit(v.From))
}

func (g *Generator) genIfStmt(scope *varScope, v *ast.IfStmt, depth int) string {
	pad := indent(depth)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%sif (%s) {\n", pad, g.genExpr(scope, v.Cond)))
	g.genBodyStmts(&b, scope, v.Then, depth+1)
	b.WriteString(pad + "}")
	for _, ei := range v.ElseIfs {
		b.WriteString(fmt.Sprintf(" else if (%s) {\n", g.genExpr(scope, ei.Cond)))
		g.genBodyStmts(&b, scope, ei.Body, depth+1)
		b.WriteString(pad + "}")
	}
	if v.Else != nil {
		b.WriteString(" else {\n")
		g.genBodyStmts(&b, scope, v.Else, depth+1)
		b.WriteString(pad + "}")
	}
	b.WriteString("\n")
	return b.String()
}

func (g *Generator) genBodyStmts(b *strings.Builder, scope *varScope, body []ast.Stmt, depth int) {
	inner := newVarScope(scope)
	for _, s := range body {
		b.WriteString(g.genStmt(inner, s, depth))
	}
}

func (g *Generator) genForStmt(scope *varScope, v *ast.ForStmt, depth int) string {
	pad := indent(depth)
	iterable := g.genExpr(scope, v.Iterable)
	inner := newVarScope(scope)
	var header string
	switch v.Kind {
	case ast.ForKeyValue:
		inner.declare(v.KeyVar)
		inner.declare(v.Var)
		header = fmt.Sprintf("for (const [%s, %s] of Object.entries(%s)) {\n", v.KeyVar, v.Var, iterable)
	case ast.ForDestructure:
		pat := genPatternBinding(v.Pattern)
		bindPatternNames(inner, v.Pattern)
		header = fmt.Sprintf("for (const %s of %s) {\n", pat, iterable)
	default:
		inner.declare(v.Var)
		header = fmt.Sprintf("for (const %s of %s) {\n", v.Var, iterable)
	}
	var b strings.Builder
	b.WriteString(pad + header)
	for _, s := range v.Body {
		b.WriteString(g.genStmt(inner, s, depth+1))
	}
	b.WriteString(pad + "}\n")
	return b.String()
}

func (g *Generator) genWhileStmt(scope *varScope, v *ast.WhileStmt, depth int) string {
	pad := indent(depth)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%swhile (%s) {\n", pad, g.genExpr(scope, v.Cond)))
	g.genBodyStmts(&b, scope, v.Body, depth+1)
	b.WriteString(pad + "}\n")
	return b.String()
}

func (g *Generator) genTryStmt(scope *varScope, v *ast.TryStmt, depth int) string {
	pad := indent(depth)
	var b strings.Builder
	b.WriteString(pad + "try {\n")
	g.genBodyStmts(&b, scope, v.Body, depth+1)
	b.WriteString(pad + "}")
	if v.HasCatch {
		binding := v.CatchBinding
		if binding == "" {
			binding = "__err"
		}
		b.WriteString(fmt.Sprintf(" catch (%s) {\n", binding))
		inner := newVarScope(scope)
		inner.declare(binding)
		for _, s := range v.CatchBody {
			b.WriteString(g.genStmt(inner, s, depth+1))
		}
		b.WriteString(pad + "}")
	}
	if v.HasFinally {
		b.WriteString(" finally {\n")
		g.genBodyStmts(&b, scope, v.FinallyBody, depth+1)
		b.WriteString(pad + "}")
	}
	b.WriteString("\n")
	return b.String()
}

// genTypeDecl lowers a type declaration: struct types become a
// plain object constructor function, variant types become one
// constructor per variant (data-bearing or tagged singleton).
func (g *Generator) genTypeDecl(v *ast.TypeDecl, depth int) string {
	pad := indent(depth)
	if v.Kind == ast.TypeStruct {
		names := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
		}
		joined := strings.Join(names, ", ")
		return fmt.Sprintf("%sfunction %s(%s) { return {%s}; }\n", pad, v.Name, joined, joined)
	}
	var b strings.Builder
	for _, variant := range v.Variants {
		if len(variant.Fields) == 0 {
			b.WriteString(fmt.Sprintf("%sconst %s = Object.freeze({__tag: %s});\n", pad, variant.Name, jsStringLit(variant.Name)))
			continue
		}
		names := make([]string, len(variant.Fields))
		for i, f := range variant.Fields {
			names[i] = f.Name
		}
		joined := strings.Join(names, ", ")
		// __args carries the constructor arguments in declaration order
		// so a match arm can destructure a variant positionally
		// (`Some(x)`) without needing the field's declared name.
		b.WriteString(fmt.Sprintf("%sfunction %s(%s) { return {__tag: %s, __args: [%s], %s}; }\n", pad, variant.Name, joined, jsStringLit(variant.Name), joined, joined))
	}
	return b.String()
}
