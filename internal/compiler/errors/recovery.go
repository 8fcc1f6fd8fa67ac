package errors

import "fmt"

// MaxCollected bounds how many errors a List accumulates before it stops
// collecting more (warnings keep flowing so they aren't silently dropped).
const MaxCollected = 100

// List collects diagnostics across a compilation run, keeping errors and
// warnings separate so callers can ask "did this fail" without scanning.
type List struct {
	errors   []CompilerError
	warnings []CompilerError
	max      int
}

func NewList() *List {
	return &List{max: MaxCollected}
}

func (l *List) Add(err CompilerError) {
	if err.IsWarning() || err.IsInfo() {
		l.warnings = append(l.warnings, err)
		return
	}
	if len(l.errors) >= l.max {
		return
	}
	l.errors = append(l.errors, err)
}

func (l *List) AddAll(errs []CompilerError) {
	for _, e := range errs {
		l.Add(e)
	}
}

func (l *List) HasErrors() bool   { return len(l.errors) > 0 }
func (l *List) HasWarnings() bool { return len(l.warnings) > 0 }
func (l *List) ErrorCount() int   { return len(l.errors) }
func (l *List) WarningCount() int { return len(l.warnings) }

func (l *List) Errors() []CompilerError   { return l.errors }
func (l *List) Warnings() []CompilerError { return l.warnings }

func (l *List) All() []CompilerError {
	all := make([]CompilerError, 0, len(l.errors)+len(l.warnings))
	all = append(all, l.errors...)
	all = append(all, l.warnings...)
	return all
}

// Error implements error so a *List can be returned directly from a
// function that failed to compile.
func (l *List) Error() string {
	switch {
	case len(l.errors) == 0 && len(l.warnings) == 0:
		return "no errors"
	case len(l.errors) == 1 && len(l.warnings) == 0:
		return l.errors[0].Error()
	default:
		return fmt.Sprintf("%d error(s), %d warning(s)", len(l.errors), len(l.warnings))
	}
}

func (l *List) FormatForTerminal(noColor bool) string {
	s := ""
	for _, e := range l.errors {
		s += e.FormatForTerminal(noColor)
	}
	for _, w := range l.warnings {
		s += w.FormatForTerminal(noColor)
	}
	if len(l.errors) > 0 || len(l.warnings) > 0 {
		s += FormatSummary(len(l.errors), len(l.warnings), noColor)
	}
	if len(l.errors) >= l.max {
		s += fmt.Sprintf("note: error limit reached (%d); further errors were suppressed\n", l.max)
	}
	return s
}
