package parser

import (
	"fmt"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
)

// ParseError describes a single parse-time problem.
type ParseError struct {
	Message string
	Loc     ast.SourceLocation
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// FatalParseError is thrown (via panic/recover, see parser.go) when the
// parser hits a failure condition it cannot recover from outside tolerant
// mode. It carries whatever partial AST had been built so far.
type FatalParseError struct {
	Err         ParseError
	PartialAST  *ast.Program
}

func (e *FatalParseError) Error() string { return e.Err.Error() }

// synchronizeSet is the token-type set the tolerant-mode recovery walks
// forward to: statement terminators, block closers, and top-level
// keywords. Using one shared set (rather than an ad-hoc one per grammar
// rule) keeps recovery predictable, per DESIGN NOTES.
func synchronizeSet() map[lexer.TokenType]bool {
	return map[lexer.TokenType]bool{
		lexer.TOKEN_NEWLINE: true,
		lexer.TOKEN_RBRACE:  true,
		lexer.TOKEN_SERVER:  true,
		lexer.TOKEN_CLIENT:  true,
		lexer.TOKEN_SHARED:  true,
		lexer.TOKEN_CLI:     true,
		lexer.TOKEN_DEPLOY:  true,
		lexer.TOKEN_TEST:    true,
		lexer.TOKEN_FN:      true,
		lexer.TOKEN_TYPE:    true,
		lexer.TOKEN_LET:     true,
		lexer.TOKEN_VAR:     true,
		lexer.TOKEN_EOF:     true,
	}
}
