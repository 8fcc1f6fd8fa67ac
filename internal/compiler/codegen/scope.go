package codegen

// varScope tracks which names have already been declared in the
// current codegen scope, so that `name = expr` at a fresh binding site
// emits `const name = expr;` while a later re-assignment of the same
// name emits a plain `name = expr;`. It also
// tracks which declared names are reactive client state, so assignment
// lowering can route through the `setX` signal setter instead of a bare
// assignment.
type varScope struct {
	parent    *varScope
	declared  map[string]bool
	stateVars map[string]string // tova name -> setter identifier, client codegen only
}

func newVarScope(parent *varScope) *varScope {
	return &varScope{parent: parent, declared: map[string]bool{}, stateVars: map[string]string{}}
}

func (s *varScope) isDeclared(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.declared[name] {
			return true
		}
	}
	return false
}

func (s *varScope) declare(name string) { s.declared[name] = true }

func (s *varScope) declareState(name, setter string) {
	s.declared[name] = true
	s.stateVars[name] = setter
}

// lookupState returns the setter identifier for a reactive state name
// visible from s, walking outward through enclosing scopes.
func (s *varScope) lookupState(name string) (string, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if setter, ok := sc.stateVars[name]; ok {
			return setter, true
		}
	}
	return "", false
}
