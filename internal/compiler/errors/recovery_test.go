package errors

import (
	"testing"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

func TestList_AddSeparatesWarningsFromErrors(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 1, Column: 1}
	l := NewList()

	l.Add(New(CategorySyntax, SynUnexpectedToken, "", loc, SeverityError))
	l.Add(New(CategorySemantic, SemUnusedBinding, "", loc, Warning))

	if l.ErrorCount() != 1 || l.WarningCount() != 1 {
		t.Fatalf("ErrorCount=%d WarningCount=%d, want 1 and 1", l.ErrorCount(), l.WarningCount())
	}
	if !l.HasErrors() || !l.HasWarnings() {
		t.Errorf("HasErrors/HasWarnings should both be true")
	}
	if len(l.All()) != 2 {
		t.Errorf("All() returned %d entries, want 2", len(l.All()))
	}
}

func TestList_StopsCollectingErrorsPastMax(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 1, Column: 1}
	l := NewList()
	l.max = 2

	for i := 0; i < 5; i++ {
		l.Add(New(CategorySyntax, SynUnexpectedToken, "", loc, SeverityError))
	}

	if l.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2 (capped by max)", l.ErrorCount())
	}
}

func TestNewReport_Status(t *testing.T) {
	loc := ast.SourceLocation{File: "app.tova", Line: 1, Column: 1}

	okReport := NewReport(nil)
	if okReport.Status != "ok" {
		t.Errorf("Status = %q, want ok", okReport.Status)
	}

	warnReport := NewReport([]CompilerError{New(CategorySemantic, SemUnusedBinding, "", loc, Warning)})
	if warnReport.Status != "warning" {
		t.Errorf("Status = %q, want warning", warnReport.Status)
	}

	errReport := NewReport([]CompilerError{New(CategorySyntax, SynUnexpectedToken, "", loc, SeverityError)})
	if errReport.Status != "error" {
		t.Errorf("Status = %q, want error", errReport.Status)
	}
	if errReport.Summary.ErrorCount != 1 {
		t.Errorf("Summary.ErrorCount = %d, want 1", errReport.Summary.ErrorCount)
	}
}

func TestSuggestions_RanksByEditDistance(t *testing.T) {
	known := []string{"userName", "userAge", "totallyUnrelated"}
	got := Suggestions("usreName", known, 2)

	if len(got) == 0 || got[0] != "userName" {
		t.Errorf("Suggestions() = %v, want closest match userName first", got)
	}
}
