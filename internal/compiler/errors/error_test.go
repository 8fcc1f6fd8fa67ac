package errors

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

func TestNew_DefaultsMessage(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 3, Column: 5}
	err := New(CategorySyntax, SynExpectedColon, "", loc, SeverityError)

	if err.Message != DefaultMessage(SynExpectedColon) {
		t.Errorf("Message = %q, want default %q", err.Message, DefaultMessage(SynExpectedColon))
	}
	if err.Category != CategorySyntax {
		t.Errorf("Category = %q, want SYN", err.Category)
	}
}

func TestCompilerError_ErrorString(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 15, Column: 7}
	err := New(CategoryType, TypMismatch, "expected int, found string", loc, SeverityError)

	want := "app.tova:15:7: TYP001: expected int, found string"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestCompilerError_SeverityPredicates(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 1, Column: 1}

	warn := New(CategorySemantic, SemUnusedBinding, "", loc, Warning)
	if !warn.IsWarning() || warn.IsError() {
		t.Errorf("Warning severity predicates wrong: IsWarning=%v IsError=%v", warn.IsWarning(), warn.IsError())
	}

	fatal := New(CategoryLexer, LexInvalidCharacter, "", loc, Fatal)
	if !fatal.IsError() || !fatal.IsFatal() {
		t.Errorf("Fatal severity predicates wrong: IsError=%v IsFatal=%v", fatal.IsError(), fatal.IsFatal())
	}
}

func TestCompilerError_JSONRoundTrip(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 2, Column: 3}
	err := Errorf(CategorySyntax, SynUnexpectedToken, "unexpected %q", loc, "}")
	err = err.WithSuggestion(FixSuggestion{Description: "remove the extra brace", Confidence: 0.8})

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal() error = %v", jerr)
	}

	var decoded map[string]any
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != SynUnexpectedToken {
		t.Errorf("decoded code = %v, want %s", decoded["code"], SynUnexpectedToken)
	}
	if decoded["severity"] != "error" {
		t.Errorf("decoded severity = %v, want error", decoded["severity"])
	}
}

func TestCompilerError_FormatForTerminal(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 2, Column: 3}
	err := Enrich(New(CategorySyntax, SynMissingNullability, "", loc, SeverityError),
		"shared {\n  fn add(x: int, y: int) {\n    x + y\n  }\n}")

	out := err.FormatForTerminal(true)
	if !strings.Contains(out, "SYN008") {
		t.Errorf("FormatForTerminal() missing code, got:\n%s", out)
	}
	if !strings.Contains(out, "app.tova:2:3") {
		t.Errorf("FormatForTerminal() missing location, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("FormatForTerminal() missing caret, got:\n%s", out)
	}
}

func TestCategoryOf(t *testing.T) {
	cases := map[string]Category{
		LexInvalidCharacter: CategoryLexer,
		SynExpectedColon:    CategorySyntax,
		SemUnusedBinding:    CategorySemantic,
		TypMismatch:         CategoryType,
		GenUnsupportedNode:  CategoryCodegen,
		"bogus":             "",
	}
	for code, want := range cases {
		if got := CategoryOf(code); got != want {
			t.Errorf("CategoryOf(%q) = %q, want %q", code, got, want)
		}
	}
}
