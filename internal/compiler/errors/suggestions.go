package errors

import "strings"

// suggestFix produces a canned auto-fix suggestion for error codes where
// the fix has an obvious textual form. Most codes have no mechanical fix
// and return nil.
func suggestFix(err CompilerError) *FixSuggestion {
	switch err.Code {
	case SynMissingNullability:
		return suggestNullability(err)
	case LexUnterminatedString:
		return suggestCloseString(err)
	case SynExpectedBrace:
		return &FixSuggestion{
			Description: "add the missing brace",
			NewCode:     "add '{' or '}'",
			Confidence:  0.8,
		}
	case SynExpectedParen:
		return &FixSuggestion{
			Description: "check that every '(' has a matching ')'",
			Confidence:  0.75,
		}
	case SynExpectedBracket:
		return &FixSuggestion{
			Description: "check that every '[' has a matching ']'",
			Confidence:  0.75,
		}
	case SemInvalidSelfReference:
		return &FixSuggestion{
			Description: "'self' is only valid inside a server resource method",
			Confidence:  0.7,
		}
	case TypNullabilityViolation:
		return suggestNullabilityFix(err)
	default:
		return nil
	}
}

func suggestNullability(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return nil
	}
	line := err.Context.SourceLines[err.Context.Highlight.Line]
	trimmed := strings.TrimSpace(line)
	return &FixSuggestion{
		Description: "add a nullability marker: '!' for required or '?' for optional",
		OldCode:     trimmed,
		NewCode:     trimmed + "!  (or " + trimmed + "?)",
		Confidence:  0.8,
	}
}

func suggestCloseString(err CompilerError) *FixSuggestion {
	if len(err.Context.SourceLines) == 0 {
		return nil
	}
	line := strings.TrimSpace(err.Context.SourceLines[err.Context.Highlight.Line])
	return &FixSuggestion{
		Description: "add the closing quote",
		OldCode:     line,
		NewCode:     line + `"`,
		Confidence:  0.9,
	}
}

func suggestNullabilityFix(err CompilerError) *FixSuggestion {
	msg := strings.ToLower(err.Message)
	if strings.Contains(msg, "required") {
		return &FixSuggestion{
			Description: "required (!) value received null; provide a value or relax to optional (?)",
			Confidence:  0.75,
		}
	}
	return &FixSuggestion{
		Description: "check that '!' and '?' annotations match how the value is used",
		Confidence:  0.6,
	}
}

// Suggestions returns the nearest candidates to name from known, ranked
// by edit distance, for "undefined symbol, did you mean ...?" messages.
func Suggestions(name string, known []string, max int) []string {
	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, k := range known {
		d := levenshtein(name, k)
		if d <= 3 {
			candidates = append(candidates, scored{k, d})
		}
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j-1].dist > candidates[j].dist; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
	out := make([]string, 0, max)
	for i, c := range candidates {
		if i >= max {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	m, n := len(ra), len(rb)
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			curr[j] = best
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
