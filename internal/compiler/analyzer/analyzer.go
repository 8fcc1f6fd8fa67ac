package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/stdlib"
)

// Severity distinguishes a hard error from an advisory warning.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is one analysis finding, attached to a source location.
type Diagnostic struct {
	Severity Severity
	Message  string
	Loc      ast.SourceLocation
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Loc, d.Message)
}

// Result is the outcome of analyzing one program: the root scope (kept
// for internal/tooling consumption) plus the diagnostics gathered.
type Result struct {
	Root     *Scope
	Warnings []Diagnostic
	Errors   []Diagnostic
}

// analysisError aggregates Result.Errors into the single message format
// the compiler driver surfaces to the user.
type analysisError struct {
	errs []Diagnostic
}

func (e *analysisError) Error() string {
	var b strings.Builder
	b.WriteString("Analysis errors")
	for _, d := range e.errs {
		b.WriteString(fmt.Sprintf("\n%s %s", d.Loc, d.Message))
	}
	return b.String()
}

type analyzer struct {
	file    string
	tolerant bool
	servers  serverFunctions
	variants map[string]*ast.TypeDecl
	result   *Result

	// currentServer is the enclosing named server block, or "" when not
	// inside one (or inside a client/shared context), used by RPC
	// validation to detect self-calls.
	currentServer string
}

// Analyze walks prog, resolving scopes/identifiers, enforcing
// server/client block context, validating RPC calls, and collecting
// naming/flow/exhaustiveness warnings. Errors are collected across the
// whole program in either mode; tolerant is recorded on the analyzer and
// does not change how far analysis goes.
func Analyze(prog *ast.Program, filename string, tolerant bool) *Result {
	a := &analyzer{
		file:     filename,
		tolerant: tolerant,
		servers:  collectServerFunctions(prog),
		variants: collectVariantDecls(prog),
		result:   &Result{},
	}
	root := newScope(nil)
	registerBuiltins(root)
	a.result.Root = root

	for _, stmt := range prog.Body {
		a.visitTopLevel(root, stmt)
	}
	a.reportUnused(root)

	sort.SliceStable(a.result.Errors, func(i, j int) bool { return lessLoc(a.result.Errors[i].Loc, a.result.Errors[j].Loc) })
	sort.SliceStable(a.result.Warnings, func(i, j int) bool { return lessLoc(a.result.Warnings[i].Loc, a.result.Warnings[j].Loc) })
	return a.result
}

// Err returns a single aggregated error for r.Errors, or nil if there
// were none.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return &analysisError{errs: r.Errors}
}

func lessLoc(a, b ast.SourceLocation) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

func (a *analyzer) errorf(loc ast.SourceLocation, format string, args ...interface{}) {
	a.result.Errors = append(a.result.Errors, Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Loc: loc})
}

func (a *analyzer) warnf(loc ast.SourceLocation, format string, args ...interface{}) {
	a.result.Warnings = append(a.result.Warnings, Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Loc: loc})
}

// visitTopLevel handles the six container kinds (server/client/shared/
// test/cli/deploy) plus any bare top-level statement.
func (a *analyzer) visitTopLevel(root *Scope, stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ServerBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockServer, true
		prevServer := a.currentServer
		a.currentServer = v.Name
		a.checkDeclName(v.Name, false, v.Loc())
		a.visitBody(scope, v.Body)
		a.currentServer = prevServer
	case *ast.ClientBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockClient, true
		a.visitBody(scope, v.Body)
	case *ast.SharedBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockShared, true
		a.visitBody(scope, v.Body)
	case *ast.TestBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockTest, true
		a.visitBody(scope, v.Body)
	case *ast.CliBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockCli, true
		for _, entry := range v.Config {
			a.visitExpr(scope, entry.Value)
		}
		for _, cmd := range v.Commands {
			a.visitFunctionDecl(scope, cmd)
		}
	case *ast.DeployBlock:
		scope := newScope(root)
		scope.Context, scope.HasContext = ast.BlockDeploy, true
		for _, entry := range v.Entries {
			a.visitExpr(scope, entry.Value)
		}
	default:
		a.visitStmt(root, stmt)
	}
}

// visitBody walks a list of statements in scope, checking context
// requirements, installing declarations, flagging unreachable code, and
// recursing into nested expressions/blocks.
func (a *analyzer) visitBody(scope *Scope, body []ast.Stmt) {
	for i, stmt := range body {
		if i > 0 && isTerminal(body[i-1]) {
			a.warnf(stmt.Loc(), "unreachable code")
			// Still visit it: a dead branch may itself contain
			// identifier/RPC issues worth surfacing once.
		}
		a.visitStmt(scope, stmt)
	}
}

func (a *analyzer) visitStmt(scope *Scope, stmt ast.Stmt) {
	if kind, label, required := blockKindRequired(stmt); required {
		ctx, ok := scope.getContext()
		if !ok || ctx != kind {
			a.errorf(stmt.Loc(), "%q is only valid inside a %s block", label, kind)
		}
	}

	switch v := stmt.(type) {
	case *ast.FunctionDecl:
		a.visitFunctionDecl(scope, v)

	case *ast.VarDecl:
		a.visitExpr(scope, v.Value)
		mutable := v.Kind == ast.VarVar
		if v.Pattern != nil {
			a.bindPattern(scope, v.Pattern, mutable, v.Loc())
		}
		for _, name := range v.Targets {
			a.checkDeclName(name, false, v.Loc())
			scope.define(&Symbol{Name: name, Kind: SymVariable, Mutable: mutable, Loc: v.Loc()})
		}

	case *ast.TypeDecl:
		a.checkDeclName(v.Name, true, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymType, Used: false, Loc: v.Loc()})
		if v.Kind == ast.TypeVariant {
			for _, variant := range v.Variants {
				scope.define(&Symbol{Name: variant.Name, Kind: SymBuiltin, Used: true, Loc: v.Loc()})
			}
		}

	case *ast.ImportDecl:
		if v.DefaultName != "" {
			scope.define(&Symbol{Name: v.DefaultName, Kind: SymVariable, Used: false, Loc: v.Loc()})
		}
		for _, spec := range v.Named {
			name := spec.Name
			if spec.Alias != "" {
				name = spec.Alias
			}
			scope.define(&Symbol{Name: name, Kind: SymVariable, Used: false, Loc: v.Loc()})
		}

	case *ast.ExprStmt:
		a.visitExpr(scope, v.Expr)

	case *ast.AssignmentStmt:
		for _, t := range v.Targets {
			if t.Name != "" && t.Name != "_" {
				sym, ok := scope.lookup(t.Name)
				if !ok {
					if hint, found := didYouMean(t.Name, scope.names()); found {
						a.errorf(v.Loc(), "undefined name %q (did you mean %q?)", t.Name, hint)
					} else {
						a.errorf(v.Loc(), "undefined name %q", t.Name)
					}
					continue
				}
				sym.Used = true
				if !sym.Mutable && sym.Kind == SymVariable {
					a.errorf(v.Loc(), "cannot assign to immutable binding %q (declared with let)", t.Name)
				}
			}
			if t.Member != nil {
				a.visitExpr(scope, t.Member)
			}
		}
		a.visitExpr(scope, v.Value)

	case *ast.IfStmt:
		if val, isConst := constantCondition(v.Cond); isConst {
			a.warnf(v.Loc(), "condition is always %t", val)
		}
		a.visitExpr(scope, v.Cond)
		a.visitBody(newScope(scope), v.Then)
		for _, ei := range v.ElseIfs {
			a.visitExpr(scope, ei.Cond)
			a.visitBody(newScope(scope), ei.Body)
		}
		if v.Else != nil {
			a.visitBody(newScope(scope), v.Else)
		}

	case *ast.ForStmt:
		a.visitExpr(scope, v.Iterable)
		inner := newScope(scope)
		switch v.Kind {
		case ast.ForValue:
			inner.define(&Symbol{Name: v.Var, Kind: SymVariable, Loc: v.Loc()})
		case ast.ForKeyValue:
			inner.define(&Symbol{Name: v.KeyVar, Kind: SymVariable, Loc: v.Loc()})
			inner.define(&Symbol{Name: v.Var, Kind: SymVariable, Loc: v.Loc()})
		case ast.ForDestructure:
			a.bindPattern(inner, v.Pattern, false, v.Loc())
		}
		a.visitBody(inner, v.Body)

	case *ast.WhileStmt:
		if val, isConst := constantCondition(v.Cond); isConst && !val {
			a.warnf(v.Loc(), "condition is always false, loop body never runs")
		}
		a.visitExpr(scope, v.Cond)
		a.visitBody(newScope(scope), v.Body)

	case *ast.TryStmt:
		a.visitBody(newScope(scope), v.Body)
		if v.HasCatch {
			catchScope := newScope(scope)
			if v.CatchBinding != "" {
				catchScope.define(&Symbol{Name: v.CatchBinding, Kind: SymVariable, Loc: v.Loc()})
			}
			a.visitBody(catchScope, v.CatchBody)
		}
		if v.HasFinally {
			a.visitBody(newScope(scope), v.FinallyBody)
		}

	case *ast.BlockStmt:
		a.visitBody(newScope(scope), v.Body)

	case *ast.ReturnStmt:
		if v.Value != nil {
			a.visitExpr(scope, v.Value)
		}

	case *ast.RouteDecl:
		inner := newScope(scope)
		for _, p := range v.Params {
			a.bindParam(inner, p)
		}
		a.visitBody(inner, v.Body)

	case *ast.RouteGroupDecl:
		a.visitBody(newScope(scope), v.Body)

	case *ast.MiddlewareDecl:
		a.checkDeclName(v.Name, false, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymFunction, Used: false, Loc: v.Loc()})
		inner := newScope(scope)
		for _, p := range v.Params {
			a.bindParam(inner, p)
		}
		a.visitBody(inner, v.Body)

	case *ast.WebSocketDecl:
		for name, body := range v.Handlers {
			inner := newScope(scope)
			for _, p := range v.Params[name] {
				a.bindParam(inner, p)
			}
			a.visitBody(inner, body)
		}

	case *ast.SSEDecl:
		a.visitBody(newScope(scope), v.Body)

	case *ast.ScheduleDecl:
		a.visitBody(newScope(scope), v.Body)

	case *ast.BackgroundDecl:
		a.checkDeclName(v.Name, false, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymFunction, Used: false, Loc: v.Loc()})
		inner := newScope(scope)
		for _, p := range v.Params {
			a.bindParam(inner, p)
		}
		a.visitBody(inner, v.Body)

	case *ast.LifecycleDecl:
		a.visitBody(newScope(scope), v.Body)

	case *ast.ErrorHandlerDecl:
		inner := newScope(scope)
		if v.Binding != "" {
			inner.define(&Symbol{Name: v.Binding, Kind: SymVariable, Loc: v.Loc()})
		}
		a.visitBody(inner, v.Body)

	case *ast.SubscribeDecl:
		inner := newScope(scope)
		if v.Binding != "" {
			inner.define(&Symbol{Name: v.Binding, Kind: SymVariable, Loc: v.Loc()})
		}
		a.visitBody(inner, v.Body)

	case *ast.ModelDecl:
		a.checkDeclName(v.Name, true, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymType, Used: true, Loc: v.Loc()})

	case *ast.ConfigDecl:
		if v.Value != nil {
			a.visitExpr(scope, v.Value)
		}
		for _, e := range v.Entries {
			a.visitExpr(scope, e.Value)
		}

	case *ast.StateDecl:
		a.visitExpr(scope, v.Value)
		scope.define(&Symbol{Name: v.Name, Kind: SymVariable, Mutable: true, Loc: v.Loc()})

	case *ast.ComputedDecl:
		a.visitExpr(scope, v.Value)
		scope.define(&Symbol{Name: v.Name, Kind: SymVariable, Loc: v.Loc()})

	case *ast.EffectDecl:
		a.visitBody(newScope(scope), v.Body)

	case *ast.ComponentDecl:
		a.checkDeclName(v.Name, true, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymFunction, Used: true, Loc: v.Loc()})
		inner := newScope(scope)
		for _, p := range v.Params {
			a.bindParam(inner, p)
		}
		a.visitBody(inner, v.Body)
		for _, root := range v.Roots {
			a.visitJSX(inner, root)
		}

	case *ast.StoreDecl:
		a.checkDeclName(v.Name, true, v.Loc())
		scope.define(&Symbol{Name: v.Name, Kind: SymVariable, Loc: v.Loc()})
		a.visitBody(newScope(scope), v.Body)
	}
}

func (a *analyzer) visitFunctionDecl(scope *Scope, fn *ast.FunctionDecl) {
	a.checkDeclName(fn.Name, false, fn.Loc())
	scope.define(&Symbol{Name: fn.Name, Kind: SymFunction, Used: fn.Public, Public: fn.Public, Loc: fn.Loc()})
	inner := newScope(scope)
	for _, p := range fn.Params {
		a.bindParam(inner, p)
	}
	a.visitBody(inner, fn.Body)
}

func (a *analyzer) bindParam(scope *Scope, p ast.Param) {
	if p.DefaultValue != nil {
		a.visitExpr(scope, p.DefaultValue)
	}
	scope.define(&Symbol{Name: p.Name, Kind: SymParam, Used: true})
}

// bindPattern installs every binding introduced by a destructuring
// pattern into scope (used by `let`/`var` destructuring and `for`
// destructuring).
func (a *analyzer) bindPattern(scope *Scope, p ast.Pattern, mutable bool, loc ast.SourceLocation) {
	switch v := p.(type) {
	case *ast.BindingPattern:
		scope.define(&Symbol{Name: v.Name, Kind: SymVariable, Mutable: mutable, Loc: loc})
	case *ast.VariantPattern:
		for _, arg := range v.Args {
			a.bindPattern(scope, arg, mutable, loc)
		}
	case *ast.ArrayPattern:
		for _, el := range v.Elements {
			a.bindPattern(scope, el, mutable, loc)
		}
		if v.Rest != "" {
			scope.define(&Symbol{Name: v.Rest, Kind: SymVariable, Mutable: mutable, Loc: loc})
		}
	case *ast.ObjectPattern:
		for _, f := range v.Fields {
			name := f.Key
			if f.Alias != "" {
				name = f.Alias
			}
			if f.Default != nil {
				a.visitExpr(scope, f.Default)
			}
			scope.define(&Symbol{Name: name, Kind: SymVariable, Mutable: mutable, Loc: loc})
		}
		if v.Rest != "" {
			scope.define(&Symbol{Name: v.Rest, Kind: SymVariable, Mutable: mutable, Loc: loc})
		}
	}
}

func (a *analyzer) visitExpr(scope *Scope, expr ast.Expr) {
	if expr == nil {
		return
	}
	switch v := expr.(type) {
	case *ast.Identifier:
		sym, ok := scope.lookup(v.Name)
		if !ok {
			if hint, found := didYouMean(v.Name, scope.names()); found {
				a.errorf(v.Loc(), "undefined name %q (did you mean %q?)", v.Name, hint)
			} else {
				a.errorf(v.Loc(), "undefined name %q", v.Name)
			}
			return
		}
		sym.Used = true

	case *ast.BinaryExpr:
		a.visitExpr(scope, v.Left)
		a.visitExpr(scope, v.Right)

	case *ast.ChainedComparisonExpr:
		for _, o := range v.Operands {
			a.visitExpr(scope, o)
		}

	case *ast.LogicalExpr:
		a.visitExpr(scope, v.Left)
		a.visitExpr(scope, v.Right)

	case *ast.UnaryExpr:
		a.visitExpr(scope, v.Operand)

	case *ast.MembershipExpr:
		a.visitExpr(scope, v.Value)
		a.visitExpr(scope, v.Coll)

	case *ast.RangeExpr:
		a.visitExpr(scope, v.Start)
		a.visitExpr(scope, v.End)

	case *ast.SliceExpr:
		a.visitExpr(scope, v.Target)
		a.visitExpr(scope, v.Start)
		a.visitExpr(scope, v.End)
		a.visitExpr(scope, v.Step)

	case *ast.SubscriptExpr:
		a.visitExpr(scope, v.Target)
		a.visitExpr(scope, v.Index)

	case *ast.MemberExpr:
		a.visitExpr(scope, v.Target)

	case *ast.OptionalMemberExpr:
		a.visitExpr(scope, v.Target)

	case *ast.OptionalSubscriptExpr:
		a.visitExpr(scope, v.Target)
		a.visitExpr(scope, v.Index)

	case *ast.PropagateExpr:
		a.visitExpr(scope, v.Target)

	case *ast.PipeExpr:
		a.visitExpr(scope, v.Value)
		a.visitExpr(scope, v.Call)

	case *ast.CallExpr:
		a.visitCall(scope, v)

	case *ast.SpreadExpr:
		a.visitExpr(scope, v.Value)

	case *ast.ObjectLiteral:
		for _, prop := range v.Properties {
			a.visitExpr(scope, prop.Value)
		}

	case *ast.ArrayLiteral:
		for _, el := range v.Elements {
			a.visitExpr(scope, el)
		}

	case *ast.Comprehension:
		inner := newScope(scope)
		a.visitExpr(inner, v.Iterable)
		inner.define(&Symbol{Name: v.Var, Kind: SymVariable, Loc: v.Loc()})
		if v.Cond != nil {
			a.visitExpr(inner, v.Cond)
		}
		if v.Kind == ast.ComprehensionDict {
			a.visitExpr(inner, v.KeyExpr)
		}
		a.visitExpr(inner, v.ValExpr)

	case *ast.TemplateLiteral:
		for _, part := range v.Parts {
			if part.IsExpr {
				a.visitExpr(scope, part.Expr)
			}
		}

	case *ast.LambdaExpr:
		inner := newScope(scope)
		for _, p := range v.Params {
			a.bindParam(inner, p)
		}
		if v.ExprBody != nil {
			a.visitExpr(inner, v.ExprBody)
		} else {
			a.visitBody(inner, v.BlockBody)
		}

	case *ast.MatchExpr:
		a.visitMatch(scope, v)

	case *ast.IfExpr:
		a.visitExpr(scope, v.Cond)
		a.visitExpr(scope, v.Then)
		a.visitExpr(scope, v.Else)

	case *ast.JSXExpr:
		a.visitJSX(scope, v.Node)
	}
}

func (a *analyzer) visitCall(scope *Scope, call *ast.CallExpr) {
	switch res, server, fn := resolveRPCCall(call.Callee, a.servers, a.currentServer); res {
	case rpcOK:
		// valid peer call; still validate argument expressions below
	case rpcSelfCall:
		a.warnf(call.Loc(), "call to %s.%s is a self-call; call %s directly instead", server, fn, fn)
	case rpcUnknownFunction:
		if hint, found := didYouMean(fn, a.serverFnNames(server)); found {
			a.errorf(call.Loc(), "server %q has no function %q (did you mean %q?)", server, fn, hint)
		} else {
			a.errorf(call.Loc(), "server %q has no function %q", server, fn)
		}
	case rpcNotAPeerCall:
		a.visitNamespacedCall(scope, call.Callee)
	}
	for _, arg := range call.Args {
		a.visitExpr(scope, arg.Value)
	}
}

// visitNamespacedCall validates a `Namespace.function(...)` callee against
// the stdlib registry (e.g. String.slugify, Time.add_days) before falling
// back to ordinary expression traversal.
func (a *analyzer) visitNamespacedCall(scope *Scope, callee ast.Expr) {
	member, ok := callee.(*ast.MemberExpr)
	if !ok {
		a.visitExpr(scope, callee)
		return
	}
	ident, ok := member.Target.(*ast.Identifier)
	if !ok || !stdlib.IsNamespace(ident.Name) {
		a.visitExpr(scope, callee)
		return
	}
	if _, found := stdlib.Lookup(ident.Name, member.Name); !found {
		if hint, found := didYouMean(member.Name, stdlib.NamesInNamespace(ident.Name)); found {
			a.errorf(callee.Loc(), "%s has no function %q (did you mean %q?)", ident.Name, member.Name, hint)
		} else {
			a.errorf(callee.Loc(), "%s has no function %q", ident.Name, member.Name)
		}
	}
}

func (a *analyzer) serverFnNames(server string) []string {
	fns := a.servers[server]
	out := make([]string, 0, len(fns))
	for name := range fns {
		out = append(out, name)
	}
	return out
}

func (a *analyzer) visitMatch(scope *Scope, m *ast.MatchExpr) {
	a.visitExpr(scope, m.Subject)

	unreachable := unreachableArms(m)
	unreachableSet := map[int]bool{}
	for _, i := range unreachable {
		unreachableSet[i] = true
	}

	for i, arm := range m.Arms {
		if unreachableSet[i] {
			a.warnf(arm.Body.Loc(), "unreachable match arm: a prior arm already covers every case")
		}
		inner := newScope(scope)
		a.bindPattern(inner, arm.Pattern, false, m.Loc())
		if arm.Guard != nil {
			a.visitExpr(inner, arm.Guard)
		}
		a.visitExpr(inner, arm.Body)
	}

	if covered, hasCatchAll := matchCoverage(m); !hasCatchAll && len(covered) > 0 {
		if owner := a.variantOwner(covered); owner != nil {
			if missing := missingVariants(owner, covered); len(missing) > 0 {
				a.warnf(m.Loc(), "match may not be exhaustive: missing variant(s) %s of %s", strings.Join(missing, ", "), owner.Name)
			}
		}
	}
}

// variantOwner returns the TypeDecl that declares the covered variant
// constructor names, or nil if they can't be traced back to a single
// known ADT (e.g. the match patterns aren't variant constructors at all).
func (a *analyzer) variantOwner(covered map[string]bool) *ast.TypeDecl {
	for name := range covered {
		if owner, ok := a.variants[name]; ok {
			return owner
		}
	}
	return nil
}

func (a *analyzer) visitJSX(scope *Scope, node ast.JSXNode) {
	switch v := node.(type) {
	case nil:
		return
	case *ast.JSXElement:
		for _, attr := range v.Attrs {
			if attr.Value != nil {
				a.visitExpr(scope, attr.Value)
			}
		}
		for _, child := range v.Children {
			a.visitJSX(scope, child)
		}
	case *ast.JSXText:
		// no nested expressions
	case *ast.JSXExprChild:
		a.visitExpr(scope, v.Expr)
	case *ast.JSXIf:
		if val, isConst := constantCondition(v.Cond); isConst {
			a.warnf(v.Loc(), "condition is always %t", val)
		}
		a.visitExpr(scope, v.Cond)
		for _, c := range v.Then {
			a.visitJSX(scope, c)
		}
		for _, ei := range v.ElseIfs {
			a.visitExpr(scope, ei.Cond)
			for _, c := range ei.Body {
				a.visitJSX(scope, c)
			}
		}
		for _, c := range v.Else {
			a.visitJSX(scope, c)
		}
	case *ast.JSXFor:
		a.visitExpr(scope, v.Iterable)
		if v.KeyExpr != nil {
			a.visitExpr(scope, v.KeyExpr)
		}
		inner := newScope(scope)
		inner.define(&Symbol{Name: v.Var, Kind: SymVariable, Loc: v.Loc()})
		for _, c := range v.Body {
			a.visitJSX(inner, c)
		}
	}
}

// checkDeclName emits a naming-convention warning when name doesn't
// follow the expected casing for its kind: types/
// components/stores are PascalCase, everything else is snake_case.
func (a *analyzer) checkDeclName(name string, expectPascal bool, loc ast.SourceLocation) {
	if name == "" || name == "_" {
		return
	}
	if expectPascal {
		if !isPascalCase(name) {
			a.warnf(loc, "%q should be PascalCase", name)
		}
		return
	}
	if !isSnakeCase(name) {
		a.warnf(loc, "%q should be snake_case", name)
	}
}

// reportUnused walks the scope tree after traversal completes, warning
// on any non-exempt symbol that was never marked used.
func (a *analyzer) reportUnused(s *Scope) {
	for name, sym := range s.Symbols {
		if sym.Used || isExemptFromUnused(name) {
			continue
		}
		a.warnf(sym.Loc, "%q is declared but never used", name)
	}
	for _, child := range s.Children {
		a.reportUnused(child)
	}
}

func isExemptFromUnused(name string) bool {
	if name == "_" || strings.HasPrefix(name, "_") {
		return true
	}
	return name == "main"
}

// names returns every symbol name visible from s outward, for
// "did you mean" suggestion candidates.
func (s *Scope) names() []string {
	var out []string
	for sc := s; sc != nil; sc = sc.Parent {
		for name := range sc.Symbols {
			out = append(out, name)
		}
	}
	return out
}
