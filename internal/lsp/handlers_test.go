package lsp

import (
	"testing"

	"github.com/tova-lang/tova/internal/tooling"
	"go.lsp.dev/protocol"
)

func TestConvertCompletionKind(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.CompletionKind
		expected protocol.CompletionItemKind
	}{
		{"Keyword", tooling.CompletionKindKeyword, protocol.CompletionItemKindKeyword},
		{"Type", tooling.CompletionKindType, protocol.CompletionItemKindClass},
		{"Field", tooling.CompletionKindField, protocol.CompletionItemKindField},
		{"Function", tooling.CompletionKindFunction, protocol.CompletionItemKindFunction},
		{"Variable", tooling.CompletionKindVariable, protocol.CompletionItemKindVariable},
		{"Snippet", tooling.CompletionKindSnippet, protocol.CompletionItemKindSnippet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertCompletionKind(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestConvertSymbolKind(t *testing.T) {
	tests := []struct {
		name     string
		input    tooling.SymbolKind
		expected protocol.SymbolKind
	}{
		{"Function", tooling.SymbolKindFunction, protocol.SymbolKindFunction},
		{"Variable", tooling.SymbolKindVariable, protocol.SymbolKindVariable},
		{"Type", tooling.SymbolKindType, protocol.SymbolKindClass},
		{"Param", tooling.SymbolKindParam, protocol.SymbolKindVariable},
		{"State", tooling.SymbolKindState, protocol.SymbolKindProperty},
		{"Computed", tooling.SymbolKindComputed, protocol.SymbolKindProperty},
		{"Component", tooling.SymbolKindComponent, protocol.SymbolKindClass},
		{"Store", tooling.SymbolKindStore, protocol.SymbolKindModule},
		{"Route", tooling.SymbolKindRoute, protocol.SymbolKindFunction},
		{"Builtin", tooling.SymbolKindBuiltin, protocol.SymbolKindFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := convertSymbolKind(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestHandleHover(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}

func TestHandleDefinition(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}

func TestHandleReferences(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}

func TestHandleDocumentSymbol(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}

func TestHandleWorkspaceSymbol(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}

func TestCompletionSnippetFormat(t *testing.T) {
	t.Skip("Needs a live jsonrpc2 connection; see test_helpers.go")
}
