package lexer

import (
	"fmt"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR
	TOKEN_NEWLINE

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_INT
	TOKEN_FLOAT
	TOKEN_STRING
	TOKEN_TEMPLATE
	TOKEN_REGEX

	// Keywords
	TOKEN_FN
	TOKEN_VAR
	TOKEN_LET
	TOKEN_IF
	TOKEN_ELIF
	TOKEN_ELSE
	TOKEN_FOR
	TOKEN_WHILE
	TOKEN_LOOP
	TOKEN_WHEN
	TOKEN_MATCH
	TOKEN_TYPE
	TOKEN_IMPORT
	TOKEN_FROM
	TOKEN_AS
	TOKEN_PUB
	TOKEN_MUT
	TOKEN_TRY
	TOKEN_CATCH
	TOKEN_FINALLY
	TOKEN_BREAK
	TOKEN_CONTINUE
	TOKEN_RETURN
	TOKEN_ASYNC
	TOKEN_AWAIT
	TOKEN_GUARD
	TOKEN_INTERFACE
	TOKEN_DERIVE
	TOKEN_SERVER
	TOKEN_CLIENT
	TOKEN_SHARED
	TOKEN_CLI
	TOKEN_DEPLOY
	TOKEN_STATE
	TOKEN_COMPUTED
	TOKEN_EFFECT
	TOKEN_COMPONENT
	TOKEN_STORE
	TOKEN_ROUTE
	TOKEN_ROUTES
	TOKEN_MIDDLEWARE
	TOKEN_WS
	TOKEN_SSE
	TOKEN_SCHEDULE
	TOKEN_BACKGROUND
	TOKEN_ENV
	TOKEN_STATIC
	TOKEN_DISCOVER
	TOKEN_SESSION
	TOKEN_CACHE
	TOKEN_UPLOAD
	TOKEN_TLS
	TOKEN_CORS
	TOKEN_COMPRESSION
	TOKEN_DB
	TOKEN_AUTH
	TOKEN_RATE_LIMIT
	TOKEN_HEALTH
	TOKEN_MAX_BODY
	TOKEN_MODEL
	TOKEN_ON_START
	TOKEN_ON_STOP
	TOKEN_ON_ERROR
	TOKEN_SUBSCRIBE
	TOKEN_TEST
	TOKEN_AND
	TOKEN_OR
	TOKEN_NOT
	TOKEN_IN
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NIL

	// Operators / punctuation
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_DOUBLE_STAR
	TOKEN_EQ
	TOKEN_NEQ
	TOKEN_LT
	TOKEN_LTE
	TOKEN_GT
	TOKEN_GTE
	TOKEN_ASSIGN
	TOKEN_PLUS_ASSIGN
	TOKEN_MINUS_ASSIGN
	TOKEN_STAR_ASSIGN
	TOKEN_SLASH_ASSIGN
	TOKEN_DOUBLE_QUESTION
	TOKEN_SAFE_NAV
	TOKEN_QUESTION
	TOKEN_PIPE
	TOKEN_ARROW
	TOKEN_FAT_ARROW
	TOKEN_DOTDOT
	TOKEN_DOTDOTEQ
	TOKEN_DOUBLE_COLON
	TOKEN_COLON
	TOKEN_DOT
	TOKEN_ELLIPSIS
	TOKEN_COMMA
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_BANG
	TOKEN_AT
	TOKEN_LT_SLASH // "</" for JSX closing tags
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF: "EOF", TOKEN_ERROR: "ERROR", TOKEN_NEWLINE: "NEWLINE",
	TOKEN_IDENTIFIER: "IDENTIFIER", TOKEN_INT: "INT", TOKEN_FLOAT: "FLOAT",
	TOKEN_STRING: "STRING", TOKEN_TEMPLATE: "TEMPLATE", TOKEN_REGEX: "REGEX",
}

// String renders a human-readable token type name: the short table's
// name if there is one, else the keyword text for a reserved word, else
// the numeric value.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, tt := range Keywords {
		if tt == t {
			return kw
		}
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// Keywords is the reserved-word table consulted when an identifier-shaped
// lexeme is scanned.
var Keywords = map[string]TokenType{
	"fn": TOKEN_FN, "var": TOKEN_VAR, "let": TOKEN_LET,
	"if": TOKEN_IF, "elif": TOKEN_ELIF, "else": TOKEN_ELSE,
	"for": TOKEN_FOR, "while": TOKEN_WHILE, "loop": TOKEN_LOOP,
	"when": TOKEN_WHEN, "match": TOKEN_MATCH, "type": TOKEN_TYPE,
	"import": TOKEN_IMPORT, "from": TOKEN_FROM, "as": TOKEN_AS, "pub": TOKEN_PUB, "mut": TOKEN_MUT,
	"try": TOKEN_TRY, "catch": TOKEN_CATCH, "finally": TOKEN_FINALLY,
	"break": TOKEN_BREAK, "continue": TOKEN_CONTINUE, "return": TOKEN_RETURN,
	"async": TOKEN_ASYNC, "await": TOKEN_AWAIT, "guard": TOKEN_GUARD,
	"interface": TOKEN_INTERFACE, "derive": TOKEN_DERIVE,
	"server": TOKEN_SERVER, "client": TOKEN_CLIENT, "shared": TOKEN_SHARED,
	"cli": TOKEN_CLI, "deploy": TOKEN_DEPLOY,
	"state": TOKEN_STATE, "computed": TOKEN_COMPUTED, "effect": TOKEN_EFFECT,
	"component": TOKEN_COMPONENT, "store": TOKEN_STORE,
	"route": TOKEN_ROUTE, "routes": TOKEN_ROUTES, "middleware": TOKEN_MIDDLEWARE,
	"ws": TOKEN_WS, "sse": TOKEN_SSE, "schedule": TOKEN_SCHEDULE,
	"background": TOKEN_BACKGROUND, "env": TOKEN_ENV, "static": TOKEN_STATIC,
	"discover": TOKEN_DISCOVER, "session": TOKEN_SESSION, "cache": TOKEN_CACHE,
	"upload": TOKEN_UPLOAD, "tls": TOKEN_TLS, "cors": TOKEN_CORS,
	"compression": TOKEN_COMPRESSION, "db": TOKEN_DB, "auth": TOKEN_AUTH,
	"rate_limit": TOKEN_RATE_LIMIT, "health": TOKEN_HEALTH, "max_body": TOKEN_MAX_BODY,
	"model": TOKEN_MODEL, "on_start": TOKEN_ON_START, "on_stop": TOKEN_ON_STOP,
	"on_error": TOKEN_ON_ERROR, "subscribe": TOKEN_SUBSCRIBE, "test": TOKEN_TEST,
	"and": TOKEN_AND, "or": TOKEN_OR, "not": TOKEN_NOT, "in": TOKEN_IN,
	"true": TOKEN_TRUE, "false": TOKEN_FALSE, "nil": TOKEN_NIL,
}

// Token is a single lexical unit with its source location.
type Token struct {
	Type     TokenType
	Lexeme   string
	Line     int
	Column   int
	File     string
	FirstOnLine bool

	// Start/End are byte offsets into the source the token was scanned
	// from, used to recover verbatim source text (e.g. JSX text runs)
	// without reassembling it from lexemes.
	Start, End int

	// IntValue/FloatValue hold the parsed numeric value for TOKEN_INT/TOKEN_FLOAT.
	IntValue   int64
	FloatValue float64

	// Parts holds the alternating text/expr segments of a TOKEN_TEMPLATE.
	Parts []TemplatePart

	// RegexFlags holds the flag characters of a TOKEN_REGEX.
	RegexFlags string
}

// TemplatePart is one segment of a template literal token: either a text
// slice or a nested token stream for an `{expr}` interpolation.
type TemplatePart struct {
	IsExpr bool
	Text   string
	Tokens []Token
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// Loc builds the ast.SourceLocation for this token. The lexer stamps each
// token with its File; the file argument (the name the parser is working
// in) is used only when that field is empty.
func (t Token) Loc(file string) ast.SourceLocation {
	if t.File != "" {
		file = t.File
	}
	return ast.SourceLocation{Line: t.Line, Column: t.Column, File: file}
}
