package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

func severityColor(s Severity) *color.Color {
	switch s {
	case Info:
		return color.New(color.FgCyan)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	case Fatal:
		return color.New(color.FgRed, color.Bold, color.Underline)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// FormatForTerminal renders a CompilerError the way a compiler's
// command-line output does: a colored severity header, the file
// location, a source snippet with a caret, and any suggestion.
func (e CompilerError) FormatForTerminal(noColor bool) string {
	sc := severityColor(e.Severity)
	gray := color.New(color.FgHiBlack)
	blue := color.New(color.FgBlue)
	if noColor {
		sc.DisableColor()
		gray.DisableColor()
		blue.DisableColor()
	}

	var b strings.Builder
	sc.Fprintf(&b, "%s[%s]", strings.ToUpper(e.Severity.String()), e.Code)
	fmt.Fprintf(&b, " %s\n", e.Message)
	blue.Fprintf(&b, "  --> ")
	fmt.Fprintf(&b, "%s:%d:%d\n", e.Location.File, e.Location.Line, e.Location.Column)

	if len(e.Context.SourceLines) > 0 {
		b.WriteString(formatSnippet(e.Context, noColor))
	}

	if e.Suggestion != nil {
		cyan := color.New(color.FgCyan, color.Bold)
		if noColor {
			cyan.DisableColor()
		}
		cyan.Fprintf(&b, "  help: ")
		fmt.Fprintf(&b, "%s\n", e.Suggestion.Description)
		if e.Suggestion.NewCode != "" {
			fmt.Fprintf(&b, "    %s\n", e.Suggestion.NewCode)
		}
	}

	for _, rel := range e.RelatedErrors {
		fmt.Fprintf(&b, "  note: %s:%d:%d: %s\n", rel.Location.File, rel.Location.Line, rel.Location.Column, rel.Message)
	}

	return b.String()
}

func formatSnippet(ctx ErrorContext, noColor bool) string {
	blue := color.New(color.FgBlue)
	red := color.New(color.FgRed, color.Bold)
	if noColor {
		blue.DisableColor()
		red.DisableColor()
	}

	var b strings.Builder
	for i, line := range ctx.SourceLines {
		lineNo := i + 1
		blue.Fprintf(&b, "%4d | ", lineNo)
		fmt.Fprintf(&b, "%s\n", line)

		if i == ctx.Highlight.Line {
			blue.Fprintf(&b, "     | ")
			b.WriteString(strings.Repeat(" ", ctx.Highlight.Start))
			width := ctx.Highlight.End - ctx.Highlight.Start
			if width < 1 {
				width = 1
			}
			red.Fprintf(&b, "%s\n", strings.Repeat("^", width))
		}
	}
	return b.String()
}

// FormatSummary renders a one-line "N error(s), M warning(s)" footer.
func FormatSummary(errorCount, warningCount int, noColor bool) string {
	if errorCount == 0 && warningCount == 0 {
		return "no errors or warnings\n"
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	if noColor {
		red.DisableColor()
		yellow.DisableColor()
	}

	var parts []string
	if errorCount > 0 {
		parts = append(parts, red.Sprintf("%d error(s)", errorCount))
	}
	if warningCount > 0 {
		parts = append(parts, yellow.Sprintf("%d warning(s)", warningCount))
	}
	return strings.Join(parts, ", ") + "\n"
}
