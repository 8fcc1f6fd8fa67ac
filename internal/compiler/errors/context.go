package errors

import "strings"

// Enrich attaches the surrounding source lines (3 before, the error line,
// 3 after) to err, then tries to attach an auto-fix suggestion.
func Enrich(err CompilerError, source string) CompilerError {
	err = err.WithContext(extractContext(err.Location.Line, err.Location.Column, source))
	if s := suggestFix(err); s != nil {
		err = err.WithSuggestion(*s)
	}
	return err
}

func extractContext(line, column int, source string) ErrorContext {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ErrorContext{}
	}

	idx := line - 1 // 0-based
	start := idx - 3
	if start < 0 {
		start = 0
	}
	end := idx + 4
	if end > len(lines) {
		end = len(lines)
	}

	ctxLines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		ctxLines = append(ctxLines, lines[i])
	}

	col := column - 1
	if col < 0 {
		col = 0
	}

	return ErrorContext{
		SourceLines: ctxLines,
		Highlight: Highlight{
			Line:  idx - start,
			Start: col,
			End:   col + 1,
		},
	}
}
