package tooling

import (
	"fmt"
	"strings"
)

// buildHover renders a symbol as LSP hover markdown.
func buildHover(symbol *Symbol) *Hover {
	var content strings.Builder
	content.WriteString("```tova\n")

	switch symbol.Kind {
	case SymbolKindFunction, SymbolKindBuiltin:
		if symbol.Signature != "" {
			content.WriteString(symbol.Signature)
		} else {
			content.WriteString(fmt.Sprintf("fn %s", symbol.Name))
		}
	case SymbolKindType:
		content.WriteString(fmt.Sprintf("type %s", symbol.Name))
	case SymbolKindState:
		content.WriteString(fmt.Sprintf("state %s", symbol.Name))
	case SymbolKindComputed:
		content.WriteString(fmt.Sprintf("computed %s", symbol.Name))
	case SymbolKindComponent:
		content.WriteString(fmt.Sprintf("component %s", symbol.Name))
	case SymbolKindStore:
		content.WriteString(fmt.Sprintf("store %s", symbol.Name))
	case SymbolKindRoute:
		content.WriteString(symbol.Detail)
	case SymbolKindParam:
		content.WriteString(symbol.Name)
	default:
		content.WriteString(symbol.Detail)
	}
	content.WriteString("\n```\n")

	if symbol.ContainerName != "" {
		content.WriteString(fmt.Sprintf("\n*in* `%s`\n", symbol.ContainerName))
	}

	return &Hover{Contents: content.String(), Range: symbol.Range}
}
