package codegen

import (
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genServer lowers one server block to a standalone JS module exposing
// `__addRoute`/`__start` scaffolding.
// Every top-level `fn` also gets a `POST /rpc/<name>` route so peers
// (and the client's generated RPC stubs) can invoke it directly; other
// named servers get a proxy object performing a JSON-RPC fetch against
// that peer's port.
func (g *Generator) genServer(sb *ast.ServerBlock, allNamedServers []*ast.ServerBlock) string {
	var b strings.Builder
	scope := newVarScope(nil)

	b.WriteString("const __routes = [];\n")
	b.WriteString("function __addRoute(method, path, handler) { __routes.push({method, path, handler}); }\n\n")

	fns := collectServerFns(sb.Body)
	for _, peer := range allNamedServers {
		if peer.Name == sb.Name {
			continue
		}
		b.WriteString(g.genPeerProxy(peer))
	}

	serverStream := "server"
	if sb.Name != "" {
		serverStream = "server:" + sb.Name
	}
	for _, stmt := range sb.Body {
		g.mark(serverStream, &b, stmt.Loc())
		switch v := stmt.(type) {
		case *ast.RouteDecl:
			b.WriteString(g.genRouteDecl(scope, v, 0))
		case *ast.RouteGroupDecl:
			b.WriteString(g.genRouteGroup(scope, v))
		case *ast.MiddlewareDecl:
			b.WriteString(g.genFunctionDecl(scope, &ast.FunctionDecl{Base: v.Base, Name: v.Name, Params: v.Params, Body: v.Body}, 0))
		case *ast.WebSocketDecl:
			b.WriteString(g.genWebSocketDecl(scope, v))
		case *ast.SSEDecl:
			b.WriteString(g.genSSEDecl(scope, v))
		case *ast.ScheduleDecl:
			b.WriteString(g.genScheduleDecl(scope, v))
		case *ast.BackgroundDecl:
			b.WriteString(g.genFunctionDecl(scope, &ast.FunctionDecl{Base: v.Base, Name: v.Name, Params: v.Params, Body: v.Body}, 0))
		case *ast.LifecycleDecl:
			b.WriteString(g.genLifecycleDecl(scope, v))
		case *ast.ErrorHandlerDecl:
			b.WriteString(g.genErrorHandlerDecl(scope, v))
		case *ast.SubscribeDecl:
			b.WriteString(g.genSubscribeDecl(scope, v))
		case *ast.ModelDecl:
			b.WriteString(g.genModelDecl(v))
		case *ast.ConfigDecl:
			b.WriteString(g.genConfigDecl(scope, v))
		case *ast.FunctionDecl:
			b.WriteString(g.genStmt(scope, v, 0))
			if fns[v.Name] {
				b.WriteString(g.genRPCRoute(v))
			}
		default:
			b.WriteString(g.genStmt(scope, stmt, 0))
		}
	}

	if g.contains {
		b.WriteString(containsHelper)
	}
	b.WriteString(slicePropagateHelpers)
	b.WriteString(corsHelper)

	name := sb.Name
	if name == "" {
		name = "default"
	}
	b.WriteString(fmt.Sprintf("\nconst __port = Number(process.env.PORT_%s || process.env.PORT || 3000);\n", strings.ToUpper(name)))
	b.WriteString("function __start() { return { port: __port, routes: __routes }; }\n")
	b.WriteString("module.exports = { __addRoute, __start, __routes };\n")
	return b.String()
}

func collectServerFns(body []ast.Stmt) map[string]bool {
	out := map[string]bool{}
	for _, stmt := range body {
		if fn, ok := stmt.(*ast.FunctionDecl); ok {
			out[fn.Name] = true
		}
	}
	return out
}

// genRPCRoute exposes fn as a JSON-RPC-style route: positional args via
// a `__args` body array, named args via direct property destructuring.
func (g *Generator) genRPCRoute(fn *ast.FunctionDecl) string {
	names := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
	}
	destructure := "{}"
	if len(names) > 0 {
		destructure = "{ " + strings.Join(names, ", ") + " }"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__addRoute(\"POST\", \"/rpc/%s\", async (req, res) => {\n", fn.Name))
	b.WriteString("  const body = req.body || {};\n")
	if len(names) > 0 {
		b.WriteString(fmt.Sprintf("  const %s = Array.isArray(body.__args) ? __positional(body.__args, %s) : body;\n",
			destructure, jsStringArray(names)))
	}
	args := strings.Join(names, ", ")
	b.WriteString(fmt.Sprintf("  const __result = await %s(%s);\n", fn.Name, args))
	b.WriteString("  res.json({ ok: true, value: __result });\n")
	b.WriteString("});\n")
	return b.String()
}

func jsStringArray(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = jsStringLit(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// genPeerProxy emits a same-named object exposing one async method per
// route-worthy concern of peer, each performing a JSON-RPC fetch against
// that peer's port.
func (g *Generator) genPeerProxy(peer *ast.ServerBlock) string {
	fns := collectServerFns(peer.Body)
	var methods []string
	for _, stmt := range peer.Body {
		fn, ok := stmt.(*ast.FunctionDecl)
		if !ok || !fns[fn.Name] {
			continue
		}
		names := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			names[i] = p.Name
		}
		params := strings.Join(names, ", ")
		methods = append(methods, fmt.Sprintf(
			"  %s: async (%s) => {\n    const __res = await fetch(`http://localhost:${process.env.PORT_%s}/rpc/%s`, {\n      method: \"POST\", headers: {\"Content-Type\": \"application/json\"},\n      body: JSON.stringify({ __args: [%s] }),\n    });\n    const __body = await __res.json();\n    if (!__body.ok) throw new Error(__body.error || \"rpc call failed\");\n    return __body.value;\n  },\n",
			fn.Name, params, strings.ToUpper(peer.Name), fn.Name, params))
	}
	return fmt.Sprintf("const %s = {\n%s};\n\n", peer.Name, strings.Join(methods, ""))
}

func (g *Generator) genRouteDecl(scope *varScope, v *ast.RouteDecl, depth int) string {
	inner := newVarScope(scope)
	params := g.genParamList(inner, v.Params)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__addRoute(%s, %s, async (%s) => {\n", jsStringLit(v.Method), jsStringLit(v.Path), params))
	g.genFunctionBody(&b, inner, v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genRouteGroup(scope *varScope, v *ast.RouteGroupDecl) string {
	var b strings.Builder
	for _, stmt := range v.Body {
		if route, ok := stmt.(*ast.RouteDecl); ok {
			prefixed := *route
			prefixed.Path = v.Prefix + route.Path
			b.WriteString(g.genRouteDecl(scope, &prefixed, 0))
			continue
		}
		b.WriteString(g.genStmt(scope, stmt, 0))
	}
	return b.String()
}

func (g *Generator) genWebSocketDecl(scope *varScope, v *ast.WebSocketDecl) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__addRoute(\"WS\", %s, {\n", jsStringLit(v.Path)))
	for _, name := range sortedHandlerKeys(v.Handlers) {
		inner := newVarScope(scope)
		params := g.genParamList(inner, v.Params[name])
		b.WriteString(fmt.Sprintf("  %s: (%s) => {\n", name, params))
		g.genFunctionBody(&b, inner, v.Handlers[name], 2)
		b.WriteString("  },\n")
	}
	b.WriteString("});\n")
	return b.String()
}

func sortedHandlerKeys(m map[string][]ast.Stmt) []string {
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

func (g *Generator) genSSEDecl(scope *varScope, v *ast.SSEDecl) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__addRoute(\"SSE\", %s, async (send) => {\n", jsStringLit(v.Path)))
	g.genFunctionBody(&b, newVarScope(scope), v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genScheduleDecl(scope *varScope, v *ast.ScheduleDecl) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__schedule(%s, async () => {\n", jsStringLit(v.Cron)))
	g.genFunctionBody(&b, newVarScope(scope), v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genLifecycleDecl(scope *varScope, v *ast.LifecycleDecl) string {
	hook := "__onStart"
	if v.Kind == ast.LifecycleStop {
		hook = "__onStop"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s(async () => {\n", hook))
	g.genFunctionBody(&b, newVarScope(scope), v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genErrorHandlerDecl(scope *varScope, v *ast.ErrorHandlerDecl) string {
	inner := newVarScope(scope)
	inner.declare(v.Binding)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__onError((%s) => {\n", v.Binding))
	g.genFunctionBody(&b, inner, v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genSubscribeDecl(scope *varScope, v *ast.SubscribeDecl) string {
	inner := newVarScope(scope)
	inner.declare(v.Binding)
	var b strings.Builder
	b.WriteString(fmt.Sprintf("__subscribe(%s, (%s) => {\n", jsStringLit(v.Channel), v.Binding))
	g.genFunctionBody(&b, inner, v.Body, 1)
	b.WriteString("});\n")
	return b.String()
}

func (g *Generator) genModelDecl(v *ast.ModelDecl) string {
	names := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Name
	}
	joined := strings.Join(names, ", ")
	return fmt.Sprintf("function %s(%s) { return {%s}; }\n", v.Name, joined, joined)
}

func (g *Generator) genConfigDecl(scope *varScope, v *ast.ConfigDecl) string {
	if v.Value != nil {
		return fmt.Sprintf("__config(%s, %s);\n", jsStringLit(v.Kind), g.genExpr(scope, v.Value))
	}
	parts := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key, g.genExpr(scope, e.Value))
	}
	return fmt.Sprintf("__config(%s, {%s});\n", jsStringLit(v.Kind), strings.Join(parts, ", "))
}

const containsHelper = `
function __contains(coll, val) {
  if (coll && typeof coll.has === "function") return coll.has(val);
  if (coll && typeof coll === "object") return val in coll;
  return false;
}
`

const slicePropagateHelpers = `
function __slice(arr, start, end, step) {
  const len = arr.length;
  const s = start === undefined ? (step < 0 ? len - 1 : 0) : (start < 0 ? len + start : start);
  const e = end === undefined ? (step < 0 ? -1 : len) : (end < 0 ? len + end : end);
  const out = [];
  if (step > 0) {
    for (let i = s; i < e; i += step) out.push(arr[i]);
  } else {
    for (let i = s; i > e; i += step) out.push(arr[i]);
  }
  return out;
}

class __Propagate {
  constructor(value) { this.value = value; }
}

function __positional(args, names) {
  const out = {};
  names.forEach((n, i) => { out[n] = args[i]; });
  return out;
}
`

const corsHelper = `
function __cors(req, res, next) {
  res.setHeader("Access-Control-Allow-Origin", "*");
  res.setHeader("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS");
  res.setHeader("Access-Control-Allow-Headers", "Content-Type, Authorization");
  if (req.method === "OPTIONS") { res.statusCode = 204; return res.end(); }
  next();
}
`
