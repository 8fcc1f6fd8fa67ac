package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genJSXNode lowers one JSX node to a `lux_el`/component-call expression.
// Without a full type inferencer the generator can't always tell whether a given
// `{expr}` child or attribute value reads reactive state, so it always
// wraps dynamic expr children/values in a `() => (...)` thunk; this is
// safe for the runtime (a thunk is always a valid reactive child) at
// the cost of occasionally wrapping something that was already static.
func (g *Generator) genJSXNode(scope *varScope, node ast.JSXNode) string {
	switch v := node.(type) {
	case *ast.JSXElement:
		return g.genJSXElement(scope, v)
	case *ast.JSXText:
		return jsStringLit(v.Value)
	case *ast.JSXExprChild:
		return g.genJSXThunk(scope, v.Expr)
	case *ast.JSXIf:
		return g.genJSXIf(scope, v)
	case *ast.JSXFor:
		return g.genJSXFor(scope, v)
	}
	return "null"
}

// genJSXThunk wraps e in a zero-arg arrow so the runtime can re-invoke
// it on every reactive update.
func (g *Generator) genJSXThunk(scope *varScope, e ast.Expr) string {
	return "() => (" + g.genExpr(scope, e) + ")"
}

func (g *Generator) genJSXElement(scope *varScope, el *ast.JSXElement) string {
	props, slots, children := g.genJSXAttrsAndChildren(scope, el)

	if isComponentTag(el.Tag) {
		fields := append([]string{}, props...)
		fields = append(fields, slots...)
		if len(children) > 0 {
			fields = append(fields, fmt.Sprintf("children: [%s]", strings.Join(children, ", ")))
		}
		return fmt.Sprintf("%s({%s})", el.Tag, strings.Join(fields, ", "))
	}

	propsObj := "{" + strings.Join(props, ", ") + "}"
	childrenArr := "[" + strings.Join(children, ", ") + "]"
	return fmt.Sprintf("lux_el(%s, %s, %s)", jsStringLit(el.Tag), propsObj, childrenArr)
}

func isComponentTag(tag string) bool {
	r := []rune(tag)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

// genJSXAttrsAndChildren renders the props object entries, named-slot
// entries (for `slot="name"` children of a component), and ordinary
// children of el.
func (g *Generator) genJSXAttrsAndChildren(scope *varScope, el *ast.JSXElement) (props, slots, children []string) {
	var classBase string
	var classConds []string

	for _, attr := range el.Attrs {
		switch attr.Kind {
		case ast.JSXAttrPlain:
			if attr.Name == "innerHTML" {
				props = append(props, `__blockedInnerHTML: (() => { console.error("innerHTML is not supported; use dangerouslySetInnerHTML"); return undefined; })()`)
				continue
			}
			name := attr.Name
			if name == "class" {
				name = "className"
			}
			if lit, ok := attr.Value.(*ast.StringLiteral); ok && name == "className" {
				classBase = jsStringLit(lit.Value)
				continue
			}
			props = append(props, fmt.Sprintf("%s: %s", name, g.genAttrValue(scope, attr.Value)))
		case ast.JSXAttrOn:
			props = append(props, fmt.Sprintf("on%s: %s", capitalize(attr.Name), g.genExpr(scope, attr.Value)))
		case ast.JSXAttrClass:
			classConds = append(classConds, fmt.Sprintf("(%s) && %s", g.genExpr(scope, attr.Value), jsStringLit(attr.Name)))
		case ast.JSXAttrBindValue:
			sig := g.genExpr(scope, attr.Value)
			setter := bindSetterName(attr.Value)
			if el.Tag == "select" {
				props = append(props, fmt.Sprintf("value: () => %s(), onChange: e => %s(e.target.value)", sig, setter))
			} else {
				props = append(props, fmt.Sprintf("value: () => %s(), onInput: e => %s(e.target.value)", sig, setter))
			}
		case ast.JSXAttrBindChecked:
			sig := g.genExpr(scope, attr.Value)
			setter := bindSetterName(attr.Value)
			props = append(props, fmt.Sprintf("checked: () => %s(), onChange: e => %s(e.target.checked)", sig, setter))
		case ast.JSXAttrBindGroup:
			sig := g.genExpr(scope, attr.Value)
			setter := bindSetterName(attr.Value)
			if el.Tag == "input" && hasAttr(el, "type", "checkbox") {
				props = append(props,
					fmt.Sprintf("checked: () => %s().includes(this.value), onChange: e => %s(e.target.checked ? [...%s(), e.target.value] : %s().filter(v => v !== e.target.value))", sig, setter, sig, sig))
			} else {
				props = append(props, fmt.Sprintf("checked: () => %s() === this.value, onChange: () => %s(this.value)", sig, setter))
			}
		case ast.JSXAttrSpread:
			props = append(props, "..."+g.genExpr(scope, attr.Value))
		case ast.JSXAttrSlot:
			// handled per-child below; nothing to add at the element's
			// own prop list.
		}
	}

	if classBase != "" || len(classConds) > 0 {
		parts := []string{}
		if classBase != "" {
			parts = append(parts, classBase)
		}
		parts = append(parts, classConds...)
		props = append(props, fmt.Sprintf("className: [%s].filter(Boolean).join(\" \")", strings.Join(parts, ", ")))
	}

	slotGroups := map[string][]string{}
	for _, child := range el.Children {
		if childEl, ok := child.(*ast.JSXElement); ok {
			if name, ok := slotName(childEl); ok {
				slotGroups[name] = append(slotGroups[name], g.genJSXNode(scope, childEl))
				continue
			}
		}
		children = append(children, g.genJSXNode(scope, child))
	}
	for _, name := range sortedStringKeys(slotGroups) {
		slots = append(slots, fmt.Sprintf("%s: [%s]", name, strings.Join(slotGroups[name], ", ")))
	}
	return props, slots, children
}

func (g *Generator) genAttrValue(scope *varScope, e ast.Expr) string {
	if _, ok := e.(*ast.StringLiteral); ok {
		return g.genExpr(scope, e)
	}
	return g.genJSXThunk(scope, e)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

func bindSetterName(target ast.Expr) string {
	if ident, ok := target.(*ast.Identifier); ok {
		return "set" + capitalize(ident.Name)
	}
	return "/* unsupported bind target */"
}

func slotName(el *ast.JSXElement) (string, bool) {
	for _, attr := range el.Attrs {
		if attr.Kind == ast.JSXAttrSlot {
			return attr.Name, true
		}
	}
	return "", false
}

func hasAttr(el *ast.JSXElement, name, value string) bool {
	for _, attr := range el.Attrs {
		if attr.Kind == ast.JSXAttrPlain && attr.Name == name {
			if lit, ok := attr.Value.(*ast.StringLiteral); ok {
				return lit.Value == value
			}
		}
	}
	return false
}

func sortedStringKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// genJSXIf lowers a JSX `if`/`elif`/`else` to a reactive ternary
// closure so the runtime re-evaluates the branch on every update.
func (g *Generator) genJSXIf(scope *varScope, v *ast.JSXIf) string {
	var b strings.Builder
	b.WriteString("() => (")
	b.WriteString(fmt.Sprintf("(%s) ? %s", g.genExpr(scope, v.Cond), g.genJSXList(scope, v.Then)))
	for _, ei := range v.ElseIfs {
		b.WriteString(fmt.Sprintf(" : (%s) ? %s", g.genExpr(scope, ei.Cond), g.genJSXList(scope, ei.Body)))
	}
	if v.Else != nil {
		b.WriteString(" : " + g.genJSXList(scope, v.Else))
	} else {
		b.WriteString(" : null")
	}
	b.WriteString(")")
	return b.String()
}

func (g *Generator) genJSXList(scope *varScope, nodes []ast.JSXNode) string {
	if len(nodes) == 1 {
		return g.genJSXNode(scope, nodes[0])
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = g.genJSXNode(scope, n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// genJSXFor lowers `for item in list { ... }` inside JSX to
// `() => list().map(item => ...)`, wrapping each element in
// `lux_keyed` when a `key(...)` clause is present.
func (g *Generator) genJSXFor(scope *varScope, v *ast.JSXFor) string {
	inner := newVarScope(scope)
	inner.declare(v.Var)
	iterable := g.genExpr(scope, v.Iterable)
	body := g.genJSXList(inner, v.Body)
	if v.KeyExpr != nil {
		key := g.genExpr(inner, v.KeyExpr)
		body = fmt.Sprintf("lux_keyed(%s, %s)", key, body)
	}
	return fmt.Sprintf("() => %s().map(%s => %s)", iterable, v.Var, body)
}
