package analyzer

import "github.com/tova-lang/tova/internal/compiler/ast"

// serverFunctions maps a named server block's name to the set of
// top-level function names it declares (including those nested inside
// route groups), used to validate `serverName.functionName(...)` RPC
// call sites.
type serverFunctions map[string]map[string]bool

// collectServerFunctions is the RPC pre-pass: a
// lightweight walk recording function declarations inside every *named*
// server block.
func collectServerFunctions(prog *ast.Program) serverFunctions {
	out := serverFunctions{}
	for _, stmt := range prog.Body {
		sb, ok := stmt.(*ast.ServerBlock)
		if !ok || sb.Name == "" {
			continue
		}
		set := map[string]bool{}
		collectFunctionNames(sb.Body, set)
		out[sb.Name] = set
	}
	return out
}

func collectFunctionNames(body []ast.Stmt, set map[string]bool) {
	for _, stmt := range body {
		switch v := stmt.(type) {
		case *ast.FunctionDecl:
			set[v.Name] = true
		case *ast.RouteGroupDecl:
			collectFunctionNames(v.Body, set)
		}
	}
}

// rpcResolution is the outcome of validating a `serverName.fn(...)` call.
type rpcResolution int

const (
	rpcNotAPeerCall rpcResolution = iota
	rpcOK
	rpcUnknownFunction
	rpcSelfCall
)

// resolveRPCCall checks whether callee is a member expression whose
// target is a known named server; currentServer is the name of the
// server block enclosing the call site, or "" outside any named server.
func resolveRPCCall(callee ast.Expr, servers serverFunctions, currentServer string) (rpcResolution, string, string) {
	member, ok := callee.(*ast.MemberExpr)
	if !ok {
		return rpcNotAPeerCall, "", ""
	}
	ident, ok := member.Target.(*ast.Identifier)
	if !ok {
		return rpcNotAPeerCall, "", ""
	}
	fns, known := servers[ident.Name]
	if !known {
		return rpcNotAPeerCall, "", ""
	}
	if ident.Name == currentServer {
		return rpcSelfCall, ident.Name, member.Name
	}
	if !fns[member.Name] {
		return rpcUnknownFunction, ident.Name, member.Name
	}
	return rpcOK, ident.Name, member.Name
}
