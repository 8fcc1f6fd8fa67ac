package analyzer

import (
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/stdlib"
)

// registerBuiltins seeds the root scope with type names, stdlib
// functions, and Result/Option constructors before traversal begins.
// The tables themselves live in internal/compiler/stdlib so codegen
// and tooling can share them.
func registerBuiltins(root *Scope) {
	for _, t := range stdlib.Types {
		root.Symbols[t] = &Symbol{Name: t, Kind: SymType, Used: true}
	}
	for name, params := range stdlib.Functions {
		root.Symbols[name] = &Symbol{Name: name, Kind: SymBuiltin, Used: true, Params: params}
	}
	for name, params := range stdlib.Constructors {
		root.Symbols[name] = &Symbol{Name: name, Kind: SymBuiltin, Used: true, Params: params}
	}
}

// blockKindRequired maps a contextual declaration's AST node to the
// block context it requires.
func blockKindRequired(stmt ast.Stmt) (ast.BlockKind, string, bool) {
	switch stmt.(type) {
	case *ast.RouteDecl:
		return ast.BlockServer, "route", true
	case *ast.RouteGroupDecl:
		return ast.BlockServer, "routes", true
	case *ast.MiddlewareDecl:
		return ast.BlockServer, "middleware", true
	case *ast.WebSocketDecl:
		return ast.BlockServer, "ws", true
	case *ast.SSEDecl:
		return ast.BlockServer, "sse", true
	case *ast.ScheduleDecl:
		return ast.BlockServer, "schedule", true
	case *ast.BackgroundDecl:
		return ast.BlockServer, "background", true
	case *ast.LifecycleDecl:
		return ast.BlockServer, "on_start/on_stop", true
	case *ast.ErrorHandlerDecl:
		return ast.BlockServer, "on_error", true
	case *ast.SubscribeDecl:
		return ast.BlockServer, "subscribe", true
	case *ast.ModelDecl:
		return ast.BlockServer, "model", true
	case *ast.ConfigDecl:
		return ast.BlockServer, stmt.(*ast.ConfigDecl).Kind, true
	case *ast.StateDecl:
		return ast.BlockClient, "state", true
	case *ast.ComputedDecl:
		return ast.BlockClient, "computed", true
	case *ast.EffectDecl:
		return ast.BlockClient, "effect", true
	case *ast.ComponentDecl:
		return ast.BlockClient, "component", true
	case *ast.StoreDecl:
		return ast.BlockClient, "store", true
	}
	return 0, "", false
}
