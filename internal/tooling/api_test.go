package tooling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = "shared {\n  fn add(a, b) {\n    let total = a + b\n    total\n  }\n}\n"

func TestAPICreation(t *testing.T) {
	api := NewAPI()
	require.NotNil(t, api)
	assert.NotNil(t, api.documents)
	assert.NotNil(t, api.symbolIndex)
	assert.NotNil(t, api.config)
}

func TestAPIWithCustomConfig(t *testing.T) {
	config := &Config{CacheSize: 50}
	api := NewAPIWithConfig(config)
	require.NotNil(t, api)
	assert.Equal(t, 50, api.config.CacheSize)
}

func TestParseFile(t *testing.T) {
	api := NewAPI()
	doc, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "test.tova", doc.URI)
	assert.Equal(t, 1, doc.Version)
	assert.NotNil(t, doc.AST)
	assert.Empty(t, doc.ParseErrors)
	require.NotNil(t, doc.Analysis)

	var names []string
	for _, sym := range doc.Symbols {
		names = append(names, sym.Name)
	}
	assert.Contains(t, names, "add")
}

func TestParseFileWithSyntaxError(t *testing.T) {
	api := NewAPI()
	doc, err := api.ParseFile("bad.tova", "shared {\n  fn add(a, b {\n")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ParseErrors)
}

func TestUpdateDocumentReparsesOnChange(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	updated := "shared {\n  fn add(a, b, c) {\n    a + b + c\n  }\n}\n"
	doc, err := api.UpdateDocument("test.tova", updated, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Version)
	assert.Contains(t, doc.Content, "a + b + c")
}

func TestUpdateDocumentSkipsReparseWhenUnchanged(t *testing.T) {
	api := NewAPI()
	first, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	second, err := api.UpdateDocument("test.tova", sampleSource, 2)
	require.NoError(t, err)
	assert.Same(t, first.AST, second.AST)
	assert.Equal(t, 2, second.Version)
}

func TestGetDocument(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	doc, ok := api.GetDocument("test.tova")
	assert.True(t, ok)
	assert.NotNil(t, doc)

	_, ok = api.GetDocument("missing.tova")
	assert.False(t, ok)
}

func TestCloseDocument(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	api.CloseDocument("test.tova")
	_, ok := api.GetDocument("test.tova")
	assert.False(t, ok)
}

func TestGetDiagnostics(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("bad.tova", "shared {\n  fn add(a, b {\n")
	require.NoError(t, err)

	diags := api.GetDiagnostics("bad.tova")
	require.NotEmpty(t, diags)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
}

func TestGetHoverOnFunction(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	doc, _ := api.GetDocument("test.tova")
	var pos Position
	for _, sym := range doc.Symbols {
		if sym.Name == "add" {
			pos = sym.Range.Start
		}
	}
	hover, err := api.GetHover("test.tova", pos)
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Contains(t, hover.Contents, "add")
}

func TestGetCompletions(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	items, err := api.GetCompletions("test.tova", Position{Line: 0, Character: 0})
	require.NoError(t, err)
	require.NotEmpty(t, items)

	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "fn")
	assert.Contains(t, labels, "Int")
	assert.Contains(t, labels, "print")
}

func TestGetDocumentSymbols(t *testing.T) {
	api := NewAPI()
	_, err := api.ParseFile("test.tova", sampleSource)
	require.NoError(t, err)

	syms, err := api.GetDocumentSymbols("test.tova")
	require.NoError(t, err)
	assert.NotEmpty(t, syms)
}

func TestUnknownDocumentErrors(t *testing.T) {
	api := NewAPI()
	_, err := api.GetHover("missing.tova", Position{})
	assert.Error(t, err)

	_, err = api.GetCompletions("missing.tova", Position{})
	assert.Error(t, err)

	_, err = api.GetDefinition("missing.tova", Position{})
	assert.Error(t, err)

	_, err = api.GetReferences("missing.tova", Position{})
	assert.Error(t, err)

	_, err = api.GetDocumentSymbols("missing.tova")
	assert.Error(t, err)
}
