// Package codegen lowers a Tova AST into the JavaScript streams the
// runtime expects: shared top-level code, a server program per named
// (or unnamed) server block, a client bundle, and optional CLI/deploy
// outputs. The generator assumes the AST has already passed analysis
// and does not itself validate it.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// DeployEnv is one named `deploy "env" { ... }` block's merged config,
// after defaults are applied.
type DeployEnv struct {
	Server          string
	Domain          string
	Instances       int
	Memory          string
	Branch          string
	Health          string
	HealthInterval  int
	KeepReleases    int
	RestartOnFail   bool
	Databases       []map[string]interface{}
	Env             map[string]string
}

// Result is the compilation output contract.
type Result struct {
	Shared     string
	Server     string
	Servers    map[string]string
	MultiBlock bool
	Client     string
	CLI        string
	IsCLI      bool
	Deploy     map[string]DeployEnv
	SourceMap  []SourceMapEntry
}

// SourceMapEntry is a best-effort mapping from one line of a generated
// output stream back to the AST node that produced it, keyed by stream
// name ("shared", "client", "cli", "server" or "server:<name>" for a
// named server block) rather than a byte offset: the generator emits
// whole statements at a time, so line granularity is what it can attest
// to without a full column-tracking emitter.
type SourceMapEntry struct {
	Stream     string
	OutputLine int
	Source     ast.SourceLocation
}

// Generator lowers one Program into a Result. It holds no state across
// calls to GenerateProgram; every call starts from a fresh set of
// builders and scopes.
type Generator struct {
	tempCounter int
	contains    bool // whether __contains helper has been referenced
	sourceMap   []SourceMapEntry
}

// mark records that the next line about to be written to b belongs to
// loc, within the named output stream.
func (g *Generator) mark(stream string, b *strings.Builder, loc ast.SourceLocation) {
	g.sourceMap = append(g.sourceMap, SourceMapEntry{
		Stream:     stream,
		OutputLine: strings.Count(b.String(), "\n") + 1,
		Source:     loc,
	})
}

// New returns a ready-to-use Generator.
func New() *Generator { return &Generator{} }

// GenerateProgram lowers prog into the compilation result.
func (g *Generator) GenerateProgram(prog *ast.Program) *Result {
	res := &Result{}
	g.sourceMap = nil
	g.contains = false
	g.tempCounter = 0

	var shared strings.Builder
	var namedServers []*ast.ServerBlock
	var unnamedServer *ast.ServerBlock
	var clientBlocks []*ast.ClientBlock
	var cliBlock *ast.CliBlock
	var deployBlocks []*ast.DeployBlock

	for _, stmt := range prog.Body {
		switch v := stmt.(type) {
		case *ast.ServerBlock:
			if v.Name == "" {
				unnamedServer = v
			} else {
				namedServers = append(namedServers, v)
			}
		case *ast.ClientBlock:
			clientBlocks = append(clientBlocks, v)
		case *ast.SharedBlock:
			g.genSharedBody(&shared, v.Body)
		case *ast.CliBlock:
			cliBlock = v
		case *ast.DeployBlock:
			deployBlocks = append(deployBlocks, v)
		case *ast.TestBlock:
			// test blocks are analyzed but never emitted.
		default:
			g.genSharedBody(&shared, []ast.Stmt{stmt})
		}
	}

	res.Shared = shared.String()

	if unnamedServer != nil {
		res.Server = g.genServer(unnamedServer, namedServers)
	}
	if len(namedServers) > 0 {
		res.MultiBlock = true
		res.Servers = map[string]string{}
		for _, sb := range namedServers {
			res.Servers[sb.Name] = g.genServer(sb, namedServers)
		}
	}

	if len(clientBlocks) > 0 {
		res.Client = g.genClient(clientBlocks)
	}

	if cliBlock != nil {
		res.IsCLI = true
		res.CLI = g.genCLI(cliBlock)
	}

	if len(deployBlocks) > 0 {
		res.Deploy = g.genDeploy(deployBlocks)
	}

	res.SourceMap = g.sourceMap
	return res
}

func (g *Generator) nextTemp(prefix string) string {
	g.tempCounter++
	return fmt.Sprintf("__%s%d", prefix, g.tempCounter)
}

// genSharedBody emits top-level shared statements (types, functions,
// plain let/var) using the base statement lowering.
func (g *Generator) genSharedBody(b *strings.Builder, body []ast.Stmt) {
	scope := newVarScope(nil)
	for _, stmt := range body {
		g.mark("shared", b, stmt.Loc())
		b.WriteString(g.genStmt(scope, stmt, 0))
	}
}

func indent(n int) string { return strings.Repeat("  ", n) }

// sortedKeys returns the keys of a string-keyed map in deterministic
// order, used anywhere iteration order would otherwise vary and break
// the "deterministic byte-for-byte output" contract.
func sortedKeys(m map[string][]ast.Stmt) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
