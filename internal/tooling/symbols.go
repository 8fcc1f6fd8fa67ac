package tooling

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tova-lang/tova/internal/compiler/analyzer"
)

// SymbolIndex maintains a searchable index of all symbols across
// documents, backing GetDefinition/GetReferences/workspace symbol
// search.
type SymbolIndex struct {
	symbols map[string][]*IndexedSymbol
	mutex   sync.RWMutex
}

// IndexedSymbol is a Symbol plus the document it was found in.
type IndexedSymbol struct {
	URI   string
	Range Range
	*Symbol
}

// NewSymbolIndex creates a new symbol index.
func NewSymbolIndex() *SymbolIndex {
	return &SymbolIndex{symbols: make(map[string][]*IndexedSymbol)}
}

// Index replaces uri's symbols in the index.
func (si *SymbolIndex) Index(uri string, symbols []*Symbol) {
	si.mutex.Lock()
	defer si.mutex.Unlock()
	si.removeDocumentLocked(uri)
	for _, sym := range symbols {
		si.symbols[sym.Name] = append(si.symbols[sym.Name], &IndexedSymbol{URI: uri, Range: sym.Range, Symbol: sym})
	}
}

// RemoveDocument removes all symbols belonging to uri.
func (si *SymbolIndex) RemoveDocument(uri string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()
	si.removeDocumentLocked(uri)
}

func (si *SymbolIndex) removeDocumentLocked(uri string) {
	for name, syms := range si.symbols {
		filtered := make([]*IndexedSymbol, 0, len(syms))
		for _, sym := range syms {
			if sym.URI != uri {
				filtered = append(filtered, sym)
			}
		}
		if len(filtered) > 0 {
			si.symbols[name] = filtered
		} else {
			delete(si.symbols, name)
		}
	}
}

// FindDefinition returns name's definition, preferring a function or
// type definition over a plain variable when both exist.
func (si *SymbolIndex) FindDefinition(name string) *IndexedSymbol {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	syms, ok := si.symbols[name]
	if !ok || len(syms) == 0 {
		return nil
	}
	for _, sym := range syms {
		if sym.Kind == SymbolKindFunction || sym.Kind == SymbolKindType {
			return sym
		}
	}
	return syms[0]
}

// FindReferences returns every indexed location sharing name.
func (si *SymbolIndex) FindReferences(name string) []Location {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	syms, ok := si.symbols[name]
	if !ok {
		return nil
	}
	locs := make([]Location, len(syms))
	for i, sym := range syms {
		locs[i] = Location{URI: sym.URI, Range: sym.Range}
	}
	return locs
}

// SearchSymbols does a case-insensitive substring search over every
// indexed symbol name (workspace symbol search).
func (si *SymbolIndex) SearchSymbols(query string) []*IndexedSymbol {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	query = strings.ToLower(query)
	var out []*IndexedSymbol
	for name, syms := range si.symbols {
		if query == "" || strings.Contains(strings.ToLower(name), query) {
			out = append(out, syms...)
		}
	}
	return out
}

// collectSymbols flattens an analyzer.Result's scope tree into the
// tooling package's IDE-facing Symbol shape.
func collectSymbols(res *analyzer.Result) []*Symbol {
	if res == nil || res.Root == nil {
		return nil
	}
	var out []*Symbol
	for _, sym := range res.Root.AllSymbols() {
		out = append(out, toolingSymbol(sym))
	}
	return out
}

func toolingSymbol(sym *analyzer.Symbol) *Symbol {
	kind, detail := symbolKindAndDetail(sym)
	pos := Position{Line: sym.Loc.Line - 1, Character: sym.Loc.Column - 1}
	end := Position{Line: pos.Line, Character: pos.Character + len(sym.Name)}
	return &Symbol{
		Name:      sym.Name,
		Kind:      kind,
		Range:     Range{Start: pos, End: end},
		Signature: detail,
		Detail:    detail,
	}
}

func symbolKindAndDetail(sym *analyzer.Symbol) (SymbolKind, string) {
	switch sym.Kind {
	case analyzer.SymFunction:
		return SymbolKindFunction, fmt.Sprintf("fn %s(%s)", sym.Name, strings.Join(sym.Params, ", "))
	case analyzer.SymType:
		return SymbolKindType, fmt.Sprintf("type %s", sym.Name)
	case analyzer.SymBuiltin:
		if sym.Params != nil {
			return SymbolKindBuiltin, fmt.Sprintf("%s(%s)", sym.Name, strings.Join(sym.Params, ", "))
		}
		return SymbolKindBuiltin, sym.Name
	case analyzer.SymParam:
		return SymbolKindParam, sym.Name
	default:
		kw := "let"
		if sym.Mutable {
			kw = "var"
		}
		return SymbolKindVariable, fmt.Sprintf("%s %s", kw, sym.Name)
	}
}

// findSymbolAtPosition returns the symbol whose Range contains pos, if
// any.
func (a *API) findSymbolAtPosition(doc *Document, pos Position) *Symbol {
	for _, sym := range doc.Symbols {
		if positionInRange(pos, sym.Range) {
			return sym
		}
	}
	return nil
}

func positionInRange(pos Position, r Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character > r.End.Character {
		return false
	}
	return true
}
