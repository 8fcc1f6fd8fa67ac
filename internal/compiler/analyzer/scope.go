// Package analyzer performs scope/symbol resolution, block-context
// enforcement, RPC validation, and warning diagnostics over a parsed
// Tova program.
package analyzer

import (
	"github.com/tova-lang/tova/internal/compiler/ast"
)

// SymbolKind classifies an entry in a Scope.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymType
	SymBuiltin
	SymParam
)

// Symbol is one named binding visible in a Scope.
type Symbol struct {
	Name    string
	Kind    SymbolKind
	Mutable bool
	Used    bool
	Public  bool
	Loc     ast.SourceLocation
	Params  []string // signature hint, populated for functions/builtins
}

// Scope is one lexical scope in the analysis tree: function/lambda
// bodies, block statements that introduce their own scope, and the
// server/client/shared/component/store/route-group containers.
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Symbols  map[string]*Symbol

	// Context, when HasContext is true, marks this scope as a
	// server/client/shared block boundary for contextual-declaration
	// checks.
	Context    ast.BlockKind
	HasContext bool

	Start ast.SourceLocation
	End   ast.SourceLocation
}

func newScope(parent *Scope) *Scope {
	s := &Scope{Parent: parent, Symbols: map[string]*Symbol{}}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// define installs sym into the scope, returning false if a symbol with
// the same name is already defined directly in this scope (shadowing an
// outer scope's binding is allowed; redefining within the same scope is
// not).
func (s *Scope) define(sym *Symbol) bool {
	if sym.Name == "_" {
		return true
	}
	if _, exists := s.Symbols[sym.Name]; exists {
		return false
	}
	s.Symbols[sym.Name] = sym
	return true
}

func (s *Scope) lookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.Symbols[name]
	return sym, ok
}

// Lookup walks outward through parent scopes. The returned bool reports
// whether name was found in this scope or in any ancestor.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

func (s *Scope) lookup(name string) (*Symbol, bool) { return s.Lookup(name) }

// getContext walks up from s to find the nearest enclosing block
// context (server/client/shared), used to validate contextual
// declarations.
func (s *Scope) getContext() (ast.BlockKind, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.HasContext {
			return sc.Context, true
		}
	}
	return 0, false
}

// FindScopeAtPosition returns the innermost scope whose [Start,End] span
// contains the given 1-indexed line/column, for LSP hover/completion
// consumption (internal/tooling).
func (s *Scope) FindScopeAtPosition(line, col int) *Scope {
	best := s
	for _, child := range s.Children {
		if withinSpan(child.Start, child.End, line, col) {
			if found := child.FindScopeAtPosition(line, col); found != nil {
				best = found
			}
		}
	}
	return best
}

func withinSpan(start, end ast.SourceLocation, line, col int) bool {
	if line < start.Line || (line == start.Line && col < start.Column) {
		return false
	}
	if end.Line == 0 {
		return true
	}
	if line > end.Line || (line == end.Line && col > end.Column) {
		return false
	}
	return true
}

// AllSymbols flattens the scope tree, used by the unused-symbol pass and
// by internal/tooling's collectSymbols.
func (s *Scope) AllSymbols() []*Symbol {
	var out []*Symbol
	for _, sym := range s.Symbols {
		out = append(out, sym)
	}
	for _, c := range s.Children {
		out = append(out, c.AllSymbols()...)
	}
	return out
}
