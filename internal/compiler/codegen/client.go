package codegen

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genClient lowers every client block into a single bundle: `state` becomes a signal pair, `computed` a
// derived signal, `effect` a reactive effect, `component` a function
// returning JSX, and `store` an encapsulated IIFE of accessors and
// actions.
func (g *Generator) genClient(blocks []*ast.ClientBlock) string {
	var b strings.Builder
	b.WriteString(runtimeImports)
	scope := newVarScope(nil)
	for _, cb := range blocks {
		for _, stmt := range cb.Body {
			g.mark("client", &b, stmt.Loc())
			switch v := stmt.(type) {
			case *ast.StateDecl:
				b.WriteString(g.genStateDecl(scope, v, 0))
			case *ast.ComputedDecl:
				b.WriteString(g.genComputedDecl(scope, v, 0))
			case *ast.EffectDecl:
				b.WriteString(g.genEffectDecl(scope, v, 0))
			case *ast.ComponentDecl:
				b.WriteString(g.genComponentDecl(scope, v))
			case *ast.StoreDecl:
				b.WriteString(g.genStoreDecl(scope, v))
			default:
				b.WriteString(g.genStmt(scope, stmt, 0))
			}
		}
	}
	if g.contains {
		b.WriteString(containsHelper)
	}
	b.WriteString(slicePropagateHelpers)
	return b.String()
}

const runtimeImports = "import { createSignal, createComputed, createEffect, lux_el, lux_keyed, lux_inject_css } from \"@tova/runtime\";\n\n"

func (g *Generator) genStateDecl(scope *varScope, v *ast.StateDecl, depth int) string {
	pad := indent(depth)
	setter := "set" + capitalize(v.Name)
	scope.declareState(v.Name, setter)
	return fmt.Sprintf("%sconst [%s, %s] = createSignal(%s);\n", pad, v.Name, setter, g.genExpr(scope, v.Value))
}

func (g *Generator) genComputedDecl(scope *varScope, v *ast.ComputedDecl, depth int) string {
	pad := indent(depth)
	scope.declare(v.Name)
	return fmt.Sprintf("%sconst %s = createComputed(() => %s);\n", pad, v.Name, g.genExpr(scope, v.Value))
}

func (g *Generator) genEffectDecl(scope *varScope, v *ast.EffectDecl, depth int) string {
	pad := indent(depth)
	var b strings.Builder
	b.WriteString(pad + "createEffect(() => {\n")
	g.genBodyStmts(&b, scope, v.Body, depth+1)
	b.WriteString(pad + "});\n")
	return b.String()
}

// genComponentDecl lowers `component Name(params) { ...; <jsx/> }` to a
// function returning a JSX tree; params are destructured as a single
// props object so callers can pass them as named fields.
func (g *Generator) genComponentDecl(scope *varScope, v *ast.ComponentDecl) string {
	inner := newVarScope(scope)
	names := make([]string, len(v.Params))
	for i, p := range v.Params {
		names[i] = p.Name
		inner.declare(p.Name)
	}
	propsParam := "{}"
	if len(names) > 0 {
		propsParam = "{ " + strings.Join(names, ", ") + " }"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("function %s(%s) {\n", v.Name, propsParam))

	if v.Style != nil {
		scopeID := cssScopeID(v.Name, v.Style.Source)
		b.WriteString(fmt.Sprintf("  lux_inject_css(%s, %s);\n", jsStringLit(scopeID), jsStringLit(v.Style.Source)))
	}

	for _, stmt := range v.Body {
		switch s := stmt.(type) {
		case *ast.StateDecl:
			b.WriteString(g.genStateDecl(inner, s, 1))
		case *ast.ComputedDecl:
			b.WriteString(g.genComputedDecl(inner, s, 1))
		case *ast.EffectDecl:
			b.WriteString(g.genEffectDecl(inner, s, 1))
		case *ast.StyleDecl:
			// handled above, ahead of the rest of the component body.
		default:
			b.WriteString(g.genStmt(inner, stmt, 1))
		}
	}

	b.WriteString("  return " + g.genComponentReturn(inner, v) + ";\n")
	b.WriteString("}\n\n")
	return b.String()
}

// genComponentReturn renders the component's JSX root(s), injecting the
// style scope's `data-lux-*` attribute on every root element when the
// component declares a `style` block.
func (g *Generator) genComponentReturn(scope *varScope, v *ast.ComponentDecl) string {
	if len(v.Roots) == 0 {
		return "null"
	}
	scopeAttr := ""
	if v.Style != nil {
		scopeAttr = "data-lux-" + cssScopeID(v.Name, v.Style.Source)
	}
	rendered := make([]string, len(v.Roots))
	for i, root := range v.Roots {
		rendered[i] = g.genScopedJSXRoot(scope, root, scopeAttr)
	}
	if len(rendered) == 1 {
		return rendered[0]
	}
	return "[" + strings.Join(rendered, ", ") + "]"
}

func (g *Generator) genScopedJSXRoot(scope *varScope, root ast.JSXNode, scopeAttr string) string {
	el, ok := root.(*ast.JSXElement)
	if !ok || scopeAttr == "" {
		return g.genJSXNode(scope, root)
	}
	scoped := *el
	scoped.Attrs = append(append([]ast.JSXAttr{}, el.Attrs...), ast.JSXAttr{
		Kind: ast.JSXAttrPlain, Name: scopeAttr, Value: &ast.StringLiteral{Value: ""},
	})
	return g.genJSXElement(scope, &scoped)
}

// cssScopeID derives a stable scope id from the component name and its
// style source, so re-running the generator on identical input produces
// byte-for-byte identical output.
func cssScopeID(componentName, source string) string {
	sum := sha1.Sum([]byte(componentName + "::" + source))
	return hex.EncodeToString(sum[:])[:8]
}

// genStoreDecl lowers `store Name { state ...; action fn(...) { ... } }`
// to an IIFE exposing each state as a get/set accessor pair, plus its
// computeds and action functions, on a single frozen object, so its
// internal setters stay private.
func (g *Generator) genStoreDecl(scope *varScope, v *ast.StoreDecl) string {
	inner := newVarScope(scope)
	var body strings.Builder
	var exposed []string
	for _, stmt := range v.Body {
		switch s := stmt.(type) {
		case *ast.StateDecl:
			body.WriteString(g.genStateDecl(inner, s, 1))
			exposed = append(exposed, fmt.Sprintf("get %s() { return %s(); }, set %s(v) { %s(v); }", s.Name, s.Name, s.Name, "set"+capitalize(s.Name)))
		case *ast.ComputedDecl:
			body.WriteString(g.genComputedDecl(inner, s, 1))
			exposed = append(exposed, s.Name)
		case *ast.FunctionDecl:
			body.WriteString(g.genFunctionDecl(inner, s, 1))
			exposed = append(exposed, s.Name)
		default:
			body.WriteString(g.genStmt(inner, stmt, 1))
		}
	}
	scope.declare(v.Name)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("const %s = (() => {\n", v.Name))
	b.WriteString(body.String())
	b.WriteString(fmt.Sprintf("  return Object.freeze({ %s });\n", strings.Join(exposed, ", ")))
	b.WriteString("})();\n\n")
	return b.String()
}
