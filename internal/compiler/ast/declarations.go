package ast

// This file holds the block-contextual declaration nodes: server-block
// declarations (route, middleware, websocket, scheduling, lifecycle, ...)
// and client-block declarations (state, computed, effect, component, store).

// --- Server-block declarations ---

// RouteDecl is `route "METHOD /path" { ... }` or the sugar
// `get "/path" { ... }` form; Method is always upper-cased.
type RouteDecl struct {
	Base
	Method  string
	Path    string
	Params  []Param
	Body    []Stmt
}

func (*RouteDecl) stmt() {}

// RouteGroupDecl is `routes "/prefix" { ... }`, grouping nested routes
// under a shared path prefix and its own scope.
type RouteGroupDecl struct {
	Base
	Prefix string
	Body   []Stmt
}

func (*RouteGroupDecl) stmt() {}

// MiddlewareDecl is `middleware name(params) { ... }`.
type MiddlewareDecl struct {
	Base
	Name   string
	Params []Param
	Body   []Stmt
}

func (*MiddlewareDecl) stmt() {}

// WebSocketDecl is `ws "/path" { on_connect { } on_message(msg) { } ... }`.
type WebSocketDecl struct {
	Base
	Path     string
	Handlers map[string][]Stmt // keyed by handler name (on_connect, on_message, on_close, ...)
	Params   map[string][]Param
}

func (*WebSocketDecl) stmt() {}

// SSEDecl is `sse "/path" { ... }`.
type SSEDecl struct {
	Base
	Path string
	Body []Stmt
}

func (*SSEDecl) stmt() {}

// ScheduleDecl is `schedule "cron-expr" { ... }`.
type ScheduleDecl struct {
	Base
	Cron string
	Body []Stmt
}

func (*ScheduleDecl) stmt() {}

// BackgroundDecl is `background name(params) { ... }`, a durable job
// handler invoked asynchronously.
type BackgroundDecl struct {
	Base
	Name   string
	Params []Param
	Body   []Stmt
}

func (*BackgroundDecl) stmt() {}

// LifecycleKind distinguishes on_start/on_stop hooks.
type LifecycleKind int

const (
	LifecycleStart LifecycleKind = iota
	LifecycleStop
)

// LifecycleDecl is `on_start { ... }` / `on_stop { ... }`.
type LifecycleDecl struct {
	Base
	Kind LifecycleKind
	Body []Stmt
}

func (*LifecycleDecl) stmt() {}

// ErrorHandlerDecl is `on_error(err) { ... }`.
type ErrorHandlerDecl struct {
	Base
	Binding string
	Body    []Stmt
}

func (*ErrorHandlerDecl) stmt() {}

// SubscribeDecl is `subscribe "channel" { ... }`, a pub/sub handler.
type SubscribeDecl struct {
	Base
	Channel string
	Binding string
	Body    []Stmt
}

func (*SubscribeDecl) stmt() {}

// ModelDecl is `model Name { field: type ... }`, a server-side data
// shape distinct from a shared `type` declaration.
type ModelDecl struct {
	Base
	Name   string
	Fields []FieldDecl
}

func (*ModelDecl) stmt() {}

// ConfigDecl covers the single-block server configuration declarations
// that are just `keyword { key: value, ... }` or `keyword expr`:
// env, upload, session, cache, tls, cors, compression, db, auth,
// rate_limit, health, max_body, static, discover.
type ConfigDecl struct {
	Base
	Kind    string // the declaring keyword, e.g. "cors", "db", "rate_limit"
	Entries []DeployEntry
	Value   Expr // set instead of Entries for single-expression forms, e.g. `max_body 10mb`
}

func (*ConfigDecl) stmt() {}

// --- Client-block declarations ---

// StateDecl is `state name = init`.
type StateDecl struct {
	Base
	Name  string
	Value Expr
}

func (*StateDecl) stmt() {}

// ComputedDecl is `computed name = expr`.
type ComputedDecl struct {
	Base
	Name  string
	Value Expr
}

func (*ComputedDecl) stmt() {}

// EffectDecl is `effect { ... }`.
type EffectDecl struct {
	Base
	Body []Stmt
}

func (*EffectDecl) stmt() {}

// StyleDecl is a component-scoped `style { ... }` block; Source holds
// the raw CSS text.
type StyleDecl struct {
	Base
	Source string
}

func (*StyleDecl) stmt() {}

// ComponentDecl is `component Name(params) { ...; <jsx/> }`.
type ComponentDecl struct {
	Base
	Name   string
	Params []Param
	Body   []Stmt // non-JSX statements (state/computed/effect/style/let/...)
	Style  *StyleDecl
	Roots  []JSXNode // one or more top-level JSX roots returned by the component
}

func (*ComponentDecl) stmt() {}

// StoreDecl is `store Name { state ...; action fn(...) { ... } }`.
type StoreDecl struct {
	Base
	Name    string
	Body    []Stmt
}

func (*StoreDecl) stmt() {}
