package tooling

import (
	"sort"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/stdlib"
)

// CompletionContext describes what kind of completion applies at a
// cursor position: a fresh statement position, a member-access position
// after a dot, or plain identifier continuation.
type CompletionContext struct {
	Kind           CompletionContextKind
	PrecedingToken string
	Line           string
}

// CompletionContextKind distinguishes the handful of completion
// situations the tooling API currently supports.
type CompletionContextKind int

const (
	CompletionContextUnknown CompletionContextKind = iota
	CompletionContextStatement
	CompletionContextMember
)

// keywords is the reserved-word list offered for statement-position
// completion, taken from the lexer's reserved-word table.
var keywords = []string{
	"fn", "var", "let",
	"if", "elif", "else",
	"for", "while", "loop",
	"when", "match", "type",
	"import", "from", "as", "pub", "mut",
	"try", "catch", "finally",
	"break", "continue", "return",
	"async", "await", "guard",
	"interface", "derive",
	"server", "client", "shared",
	"cli", "deploy",
	"state", "computed", "effect",
	"component", "store",
	"route", "routes", "middleware",
	"ws", "sse", "schedule",
	"background", "env", "static",
	"discover", "session", "cache",
	"upload", "tls", "cors",
	"compression", "db", "auth",
	"rate_limit", "health", "max_body",
	"model", "on_start", "on_stop",
	"on_error", "subscribe", "test",
	"and", "or", "not", "in",
	"true", "false", "nil",
}

var builtinTypeNames = stdlib.Types

// builtinFunctionSignatures covers both free functions and the
// Result/Option constructors, sourced from the shared stdlib registry.
var builtinFunctionSignatures = func() map[string][]string {
	out := make(map[string][]string, len(stdlib.Functions)+len(stdlib.Constructors))
	for name, params := range stdlib.Functions {
		out[name] = params
	}
	for name, params := range stdlib.Constructors {
		out[name] = params
	}
	return out
}()

var builtinConstructorNames = func() []string {
	names := make([]string, 0, len(stdlib.Constructors))
	for name := range stdlib.Constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// getCompletionContext inspects the source line up to pos to classify
// what's being completed. It's deliberately simple: member access is
// recognized only by a trailing `.`, everything else falls back to
// statement-position completion.
func getCompletionContext(doc *Document, pos Position) *CompletionContext {
	lines := strings.Split(doc.Content, "\n")
	if pos.Line < 0 || pos.Line >= len(lines) {
		return &CompletionContext{Kind: CompletionContextStatement}
	}
	line := lines[pos.Line]
	col := pos.Character
	if col > len(line) {
		col = len(line)
	}
	prefix := line[:col]

	trimmed := strings.TrimRight(prefix, " \t")
	if strings.HasSuffix(trimmed, ".") {
		return &CompletionContext{Kind: CompletionContextMember, PrecedingToken: lastIdentifier(strings.TrimSuffix(trimmed, ".")), Line: prefix}
	}
	return &CompletionContext{Kind: CompletionContextStatement, PrecedingToken: lastIdentifier(prefix), Line: prefix}
}

func lastIdentifier(s string) string {
	i := len(s)
	for i > 0 && isIdentRune(rune(s[i-1])) {
		i--
	}
	return s[i:]
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// buildCompletions returns the completion list for context within doc.
// Member-access completion currently has no static type information to
// narrow against (no full type inferencer), so it falls back to the
// same document-symbol list as statement position rather than guessing
// at a receiver's members.
func buildCompletions(doc *Document, context *CompletionContext) []CompletionItem {
	var items []CompletionItem

	for _, kw := range keywords {
		items = append(items, CompletionItem{Label: kw, Kind: CompletionKindKeyword, InsertText: kw, SortText: "1" + kw})
	}
	for _, t := range builtinTypeNames {
		items = append(items, CompletionItem{Label: t, Kind: CompletionKindType, InsertText: t, SortText: "2" + t})
	}
	for _, c := range builtinConstructorNames {
		items = append(items, CompletionItem{Label: c, Kind: CompletionKindFunction, Detail: c + "(" + strings.Join(builtinFunctionSignatures[c], ", ") + ")", InsertText: c, SortText: "2" + c})
	}
	names := make([]string, 0, len(builtinFunctionSignatures))
	for name := range builtinFunctionSignatures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		params := builtinFunctionSignatures[name]
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionKindFunction,
			Detail:     name + "(" + strings.Join(params, ", ") + ")",
			InsertText: name,
			SortText:   "3" + name,
		})
	}

	if doc != nil {
		for _, sym := range doc.Symbols {
			items = append(items, CompletionItem{
				Label:      sym.Name,
				Kind:       symbolToCompletionKind(sym.Kind),
				Detail:     sym.Detail,
				InsertText: sym.Name,
				SortText:   "0" + sym.Name,
			})
		}
	}

	return items
}

func symbolToCompletionKind(k SymbolKind) CompletionKind {
	switch k {
	case SymbolKindFunction, SymbolKindBuiltin:
		return CompletionKindFunction
	case SymbolKindType:
		return CompletionKindType
	case SymbolKindParam, SymbolKindVariable, SymbolKindState, SymbolKindComputed:
		return CompletionKindVariable
	default:
		return CompletionKindVariable
	}
}
