package errors

import (
	"encoding/json"
	"fmt"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	Info Severity = iota
	Warning
	SeverityError
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case SeverityError:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "info":
		*s = Info
	case "warning":
		*s = Warning
	case "fatal":
		*s = Fatal
	default:
		*s = SeverityError
	}
	return nil
}

// ErrorContext carries the source lines surrounding a diagnostic so a
// terminal or editor can render a caret under the offending span.
type ErrorContext struct {
	SourceLines []string  `json:"source_lines"`
	Highlight   Highlight `json:"highlight"`
}

// Highlight identifies which part of SourceLines to underline.
type Highlight struct {
	Line  int `json:"line"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// FixSuggestion is an optional auto-fix attached to a diagnostic.
type FixSuggestion struct {
	Description string  `json:"description"`
	OldCode     string  `json:"old_code"`
	NewCode     string  `json:"new_code"`
	Confidence  float64 `json:"confidence"`
}

// CompilerError is the diagnostic type produced by every compiler phase.
type CompilerError struct {
	Category      Category
	Code          string
	Message       string
	Location      ast.SourceLocation
	Severity      Severity
	Context       ErrorContext
	Suggestion    *FixSuggestion
	RelatedErrors []CompilerError
}

// Error implements the error interface.
func (e CompilerError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s",
		e.Location.File, e.Location.Line, e.Location.Column, e.Code, e.Message)
}

// New builds a CompilerError, defaulting Message to the code's canned
// text when msg is empty so call sites can omit it for generic cases.
func New(category Category, code, msg string, loc ast.SourceLocation, severity Severity) CompilerError {
	if msg == "" {
		msg = DefaultMessage(code)
	}
	return CompilerError{
		Category: category,
		Code:     code,
		Message:  msg,
		Location: loc,
		Severity: severity,
	}
}

// Errorf is New for the common case of a formatted SeverityError.
func Errorf(category Category, code, format string, loc ast.SourceLocation, args ...any) CompilerError {
	return New(category, code, fmt.Sprintf(format, args...), loc, SeverityError)
}

// Warnf is New for the common case of a formatted Warning.
func Warnf(category Category, code, format string, loc ast.SourceLocation, args ...any) CompilerError {
	return New(category, code, fmt.Sprintf(format, args...), loc, Warning)
}

func (e CompilerError) WithContext(ctx ErrorContext) CompilerError {
	e.Context = ctx
	return e
}

func (e CompilerError) WithSuggestion(s FixSuggestion) CompilerError {
	e.Suggestion = &s
	return e
}

func (e CompilerError) WithRelated(related CompilerError) CompilerError {
	e.RelatedErrors = append(e.RelatedErrors, related)
	return e
}

func (e CompilerError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category      Category           `json:"category"`
		Code          string             `json:"code"`
		Message       string             `json:"message"`
		Severity      Severity           `json:"severity"`
		Location      ast.SourceLocation `json:"location"`
		Context       ErrorContext       `json:"context"`
		Suggestion    *FixSuggestion     `json:"suggestion,omitempty"`
		RelatedErrors []CompilerError    `json:"related_errors,omitempty"`
	}{
		Category:      e.Category,
		Code:          e.Code,
		Message:       e.Message,
		Severity:      e.Severity,
		Location:      e.Location,
		Context:       e.Context,
		Suggestion:    e.Suggestion,
		RelatedErrors: e.RelatedErrors,
	})
}

func (e CompilerError) IsError() bool   { return e.Severity == SeverityError || e.Severity == Fatal }
func (e CompilerError) IsWarning() bool { return e.Severity == Warning }
func (e CompilerError) IsInfo() bool    { return e.Severity == Info }
func (e CompilerError) IsFatal() bool   { return e.Severity == Fatal }

// FromDiagnostic adapts an analyzer.Diagnostic-shaped value into a
// CompilerError. The analyzer doesn't tag its diagnostics with a code
// yet, so Code is left blank; Category is always semantic, since that's
// the only phase analyzer.Diagnostic represents.
func FromDiagnostic(isError bool, message string, loc ast.SourceLocation) CompilerError {
	sev := Warning
	if isError {
		sev = SeverityError
	}
	return CompilerError{
		Category: CategorySemantic,
		Message:  message,
		Location: loc,
		Severity: sev,
	}
}
