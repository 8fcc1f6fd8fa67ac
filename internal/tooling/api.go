// Package tooling provides a programmatic, transport-free API for IDE
// integration: parsing, diagnostics, hover, completion, and symbol
// lookup backed directly by the compiler's lexer/parser/analyzer. It
// does not speak the Language Server Protocol itself (internal/lsp is a
// thin adapter on top of this package).
package tooling

import (
	"fmt"
	"sync"

	"github.com/tova-lang/tova/internal/compiler/analyzer"
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
	"github.com/tova-lang/tova/internal/compiler/parser"
)

// API provides thread-safe access to compiler functionality for IDE
// integration. It maintains document state and provides fast query
// operations for LSP features.
type API struct {
	documents map[string]*Document
	docsMutex sync.RWMutex

	symbolIndex *SymbolIndex
	config      *Config
}

// Config holds configuration for the tooling API.
type Config struct {
	CacheSize int
}

// Document represents a cached document with its parsed AST and
// analysis results.
type Document struct {
	URI     string
	Content string
	Version int

	AST         *ast.Program
	ParseErrors []string

	Analysis *analyzer.Result
	Symbols  []*Symbol
}

// Position represents a position in a document (zero-based for LSP
// compatibility).
type Position struct {
	Line      int
	Character int
}

// Range represents a range in a document.
type Range struct {
	Start Position
	End   Position
}

// Location represents a source location with URI and range.
type Location struct {
	URI   string
	Range Range
}

// Symbol represents a named entity in the source code.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Range Range

	Type          string
	ContainerName string
	Documentation string
	Signature     string
	Detail        string
}

// SymbolKind categorizes symbols for IDE display.
type SymbolKind int

const (
	SymbolKindFunction SymbolKind = iota
	SymbolKindVariable
	SymbolKindType
	SymbolKindParam
	SymbolKindState
	SymbolKindComputed
	SymbolKindComponent
	SymbolKindStore
	SymbolKindRoute
	SymbolKindBuiltin
)

// Hover represents hover information for a symbol.
type Hover struct {
	Contents string
	Range    Range
}

// CompletionItem represents a completion suggestion.
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	Detail        string
	Documentation string
	InsertText    string
	SortText      string
}

// CompletionKind categorizes completion items.
type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
	CompletionKindType
	CompletionKindField
	CompletionKindFunction
	CompletionKindVariable
	CompletionKindSnippet
)

// Diagnostic represents a compilation error or warning.
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Source   string
}

// DiagnosticSeverity indicates the severity of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticSeverityError DiagnosticSeverity = iota
	DiagnosticSeverityWarning
	DiagnosticSeverityInfo
	DiagnosticSeverityHint
)

// NewAPI creates a new tooling API instance.
func NewAPI() *API {
	return NewAPIWithConfig(&Config{CacheSize: 100})
}

// NewAPIWithConfig creates a new tooling API with custom configuration.
func NewAPIWithConfig(config *Config) *API {
	return &API{
		documents:   make(map[string]*Document),
		symbolIndex: NewSymbolIndex(),
		config:      config,
	}
}

// ParseFile parses and analyzes a source file, caching the result.
func (a *API) ParseFile(uri, content string) (*Document, error) {
	doc := a.parseFileInternal(uri, content)
	doc.Version = 1

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	a.symbolIndex.Index(uri, doc.Symbols)
	return doc, nil
}

// UpdateDocument updates an existing document with new content.
func (a *API) UpdateDocument(uri, content string, version int) (*Document, error) {
	a.docsMutex.RLock()
	old, exists := a.documents[uri]
	a.docsMutex.RUnlock()
	if exists && old.Content == content {
		old.Version = version
		return old, nil
	}

	doc := a.parseFileInternal(uri, content)
	doc.Version = version

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	a.symbolIndex.Index(uri, doc.Symbols)
	return doc, nil
}

func (a *API) parseFileInternal(uri, content string) *Document {
	lx := lexer.New(content, uri)
	tokens, lexErrs := lx.ScanTokens()

	doc := &Document{URI: uri, Content: content}
	for _, e := range lexErrs {
		doc.ParseErrors = append(doc.ParseErrors, fmt.Sprintf("%s:%d:%d %s", uri, e.Line, e.Column, e.Message))
	}

	p := parser.NewTolerant(tokens, uri, content)
	program, err := p.Parse()
	if err != nil {
		doc.ParseErrors = append(doc.ParseErrors, err.Error())
	}
	for _, d := range p.Diagnostics() {
		doc.ParseErrors = append(doc.ParseErrors, d.Error())
	}
	doc.AST = program

	if program != nil {
		doc.Analysis = analyzer.Analyze(program, uri, true)
		doc.Symbols = collectSymbols(doc.Analysis)
	}
	return doc
}

// GetDocument retrieves a cached document.
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()
	doc, exists := a.documents[uri]
	return doc, exists
}

// CloseDocument removes a document from the cache.
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()
	a.symbolIndex.RemoveDocument(uri)
}

// GetDiagnostics returns diagnostics for a document.
func (a *API) GetDiagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil
	}

	var diagnostics []Diagnostic
	for _, msg := range doc.ParseErrors {
		diagnostics = append(diagnostics, Diagnostic{
			Severity: DiagnosticSeverityError,
			Code:     "parse_error",
			Message:  msg,
			Source:   "tova",
		})
	}
	if doc.Analysis == nil {
		return diagnostics
	}
	for _, d := range doc.Analysis.Errors {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    pointRange(d.Loc),
			Severity: DiagnosticSeverityError,
			Code:     "analysis_error",
			Message:  d.Message,
			Source:   "tova",
		})
	}
	for _, d := range doc.Analysis.Warnings {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    pointRange(d.Loc),
			Severity: DiagnosticSeverityWarning,
			Code:     "analysis_warning",
			Message:  d.Message,
			Source:   "tova",
		})
	}
	return diagnostics
}

func pointRange(loc ast.SourceLocation) Range {
	pos := Position{Line: loc.Line - 1, Character: loc.Column - 1}
	return Range{Start: pos, End: pos}
}

// GetHover returns hover information for a position in a document.
func (a *API) GetHover(uri string, pos Position) (*Hover, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	sym := a.findSymbolAtPosition(doc, pos)
	if sym == nil {
		return nil, nil //nolint:nilnil // nil hover is valid when no symbol at position
	}
	return buildHover(sym), nil
}

// GetCompletions returns completion items for a position in a document.
func (a *API) GetCompletions(uri string, pos Position) ([]CompletionItem, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	context := getCompletionContext(doc, pos)
	return buildCompletions(doc, context), nil
}

// GetDefinition returns the definition location of a symbol at a position.
func (a *API) GetDefinition(uri string, pos Position) (*Location, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	sym := a.findSymbolAtPosition(doc, pos)
	if sym == nil {
		return nil, nil //nolint:nilnil // nil location is valid when no symbol at position
	}
	if def := a.symbolIndex.FindDefinition(sym.Name); def != nil {
		return &Location{URI: def.URI, Range: def.Range}, nil
	}
	return &Location{URI: uri, Range: sym.Range}, nil
}

// GetReferences returns all references to the symbol at a position.
func (a *API) GetReferences(uri string, pos Position) ([]Location, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	sym := a.findSymbolAtPosition(doc, pos)
	if sym == nil {
		return []Location{}, nil
	}
	refs := a.symbolIndex.FindReferences(sym.Name)
	if refs == nil {
		return []Location{}, nil
	}
	return refs, nil
}

// GetDocumentSymbols returns all symbols in a document.
func (a *API) GetDocumentSymbols(uri string) ([]*Symbol, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	return doc.Symbols, nil
}

// GetWorkspaceSymbols searches every indexed document's symbols for a
// case-insensitive substring match against query.
func (a *API) GetWorkspaceSymbols(query string) []*IndexedSymbol {
	return a.symbolIndex.SearchSymbols(query)
}
