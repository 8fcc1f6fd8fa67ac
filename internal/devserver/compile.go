package devserver

import (
	"github.com/tova-lang/tova/internal/compiler/analyzer"
	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/cache"
	"github.com/tova-lang/tova/internal/compiler/codegen"
	cerrors "github.com/tova-lang/tova/internal/compiler/errors"
	"github.com/tova-lang/tova/internal/compiler/lexer"
	"github.com/tova-lang/tova/internal/compiler/parser"
)

// CompileResult is the JSON body returned by POST /compile and pushed over
// the GET /watch socket: the generated JS streams plus every diagnostic
// collected across the pipeline.
type CompileResult struct {
	Shared      string            `json:"shared,omitempty"`
	Server      string            `json:"server,omitempty"`
	Servers     map[string]string `json:"servers,omitempty"`
	Client      string            `json:"client,omitempty"`
	CLI         string            `json:"cli,omitempty"`
	Diagnostics cerrors.Report    `json:"diagnostics"`
	Cached      bool              `json:"cached"`
	SessionID   string            `json:"session_id,omitempty"`
}

// Compiler runs the lex/parse/analyze/codegen pipeline over posted source,
// caching ASTs by content hash so repeated saves of unchanged source skip
// lexing and parsing; analysis and codegen still run.
type Compiler struct {
	astCache *cache.ASTCache
	hasher   *cache.FileHasher
}

// NewCompiler returns a ready-to-use Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		astCache: cache.NewASTCache(),
		hasher:   cache.NewFileHasher(),
	}
}

// Compile lexes, parses, analyzes, and generates code for source, which is
// addressed by filename for diagnostic locations (typically "<editor>" or
// the posted file path, not a path on disk).
func (c *Compiler) Compile(filename, source string) CompileResult {
	hash := c.hasher.HashString(source)

	var prog *ast.Program
	diag := cerrors.NewList()
	cached := false

	if entry, ok := c.astCache.GetByHash(hash); ok {
		prog = entry.Program
		cached = true
	} else {
		lx := lexer.New(source, filename)
		tokens, lexErrs := lx.ScanTokens()
		for _, e := range lexErrs {
			loc := ast.SourceLocation{File: filename, Line: e.Line, Column: e.Column}
			diag.Add(cerrors.Enrich(cerrors.New(cerrors.CategoryLexer, cerrors.LexInvalidCharacter, e.Message, loc, cerrors.SeverityError), source))
		}

		p := parser.New(tokens, filename, source)
		parsed, err := p.Parse()
		if err != nil {
			diag.Add(cerrors.New(cerrors.CategorySyntax, cerrors.SynUnexpectedToken, err.Error(), ast.SourceLocation{File: filename}, cerrors.SeverityError))
			return CompileResult{Diagnostics: cerrors.NewReport(diag.All())}
		}
		prog = parsed
		c.astCache.Set(filename, prog, hash)
	}

	res := analyzer.Analyze(prog, filename, true)
	for _, d := range res.Errors {
		diag.Add(cerrors.Enrich(cerrors.FromDiagnostic(true, d.Message, d.Loc), source))
	}
	for _, d := range res.Warnings {
		diag.Add(cerrors.Enrich(cerrors.FromDiagnostic(false, d.Message, d.Loc), source))
	}

	if diag.HasErrors() {
		return CompileResult{Diagnostics: cerrors.NewReport(diag.All()), Cached: cached}
	}

	gen := codegen.New().GenerateProgram(prog)
	return CompileResult{
		Shared:      gen.Shared,
		Server:      gen.Server,
		Servers:     gen.Servers,
		Client:      gen.Client,
		CLI:         gen.CLI,
		Diagnostics: cerrors.NewReport(diag.All()),
		Cached:      cached,
	}
}
