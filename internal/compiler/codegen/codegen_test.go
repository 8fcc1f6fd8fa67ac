package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tova-lang/tova/internal/compiler/ast"
	"github.com/tova-lang/tova/internal/compiler/lexer"
	"github.com/tova-lang/tova/internal/compiler/parser"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	lx := lexer.New(src, "test.tova")
	tokens, errs := lx.ScanTokens()
	require.Empty(t, errs)
	p := parser.New(tokens, "test.tova", src)
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestGenerate_SharedFunctionAndLet(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn add(a, b) {\n    let total = a + b\n    total\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Shared, "function add(a, b)")
	assert.Contains(t, res.Shared, "const total = (a + b);")
	assert.Contains(t, res.Shared, "return total;")
}

func TestGenerate_MutableReassignmentIsPlain(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    var total = 1\n    total = total + 1\n    total\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Shared, "let total = 1;")
	assert.Contains(t, res.Shared, "total = (total + 1);")
}

func TestGenerate_MatchSimpleBecomesTernary(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn describe(n) {\n    match n {\n      0 => \"zero\",\n      _ => \"other\",\n    }\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Shared, "n === 0")
	assert.Contains(t, res.Shared, "\"zero\"")
	assert.Contains(t, res.Shared, "\"other\"")
	assert.NotContains(t, res.Shared, "=> {\n")
}

func TestGenerate_VariantConstructorCarriesPositionalArgs(t *testing.T) {
	prog := parseProgram(t, "shared {\n  type Option {\n    Some(value),\n    None,\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Shared, "function Some(value) { return {__tag: \"Some\", __args: [value], value}; }")
	assert.Contains(t, res.Shared, `const None = Object.freeze({__tag: "None"});`)
}

func TestGenerate_VariantPatternDestructuresFromArgsArray(t *testing.T) {
	prog := parseProgram(t, "shared {\n  type Option {\n    Some(value),\n    None,\n  }\n  fn unwrap(opt) {\n    match opt {\n      Some(v) => v,\n      None => 0,\n    }\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Shared, "__args[0]")
}

func TestGenerate_ServerRouteAndRPCRoute(t *testing.T) {
	prog := parseProgram(t, "server api {\n  fn helper() {\n    return 1\n  }\n  route \"GET /x\" {\n    return helper()\n  }\n}\n")
	res := New().GenerateProgram(prog)
	require.NotEmpty(t, res.Server)
	assert.Contains(t, res.Server, `__addRoute("GET", "/x"`)
	assert.Contains(t, res.Server, `__addRoute("POST", "/rpc/helper"`)
}

func TestGenerate_NamedServersGetPeerProxies(t *testing.T) {
	prog := parseProgram(t, "server api {\n  fn ping() {\n    return 1\n  }\n}\nserver web {\n  route \"GET /x\" {\n    return api.ping()\n  }\n}\n")
	res := New().GenerateProgram(prog)
	require.True(t, res.MultiBlock)
	assert.Contains(t, res.Servers["web"], "const api = {")
	assert.Contains(t, res.Servers["web"], "PORT_API")
}

func TestGenerate_ClientStateBecomesSignal(t *testing.T) {
	prog := parseProgram(t, "client {\n  state count = 0\n\n  component Counter() {\n    <div>{count}</div>\n  }\n}\n")
	res := New().GenerateProgram(prog)
	assert.Contains(t, res.Client, "const [count, setCount] = createSignal(0);")
	assert.Contains(t, res.Client, "function Counter({})")
}

func TestGenerate_DeployDefaults(t *testing.T) {
	prog := parseProgram(t, "deploy \"production\" {\n  server: \"web\"\n}\n")
	res := New().GenerateProgram(prog)
	env, ok := res.Deploy["production"]
	require.True(t, ok)
	assert.Equal(t, 1, env.Instances)
	assert.Equal(t, "512mb", env.Memory)
	assert.Equal(t, "main", env.Branch)
	assert.Equal(t, "/healthz", env.Health)
	assert.Equal(t, 30, env.HealthInterval)
	assert.Equal(t, 5, env.KeepReleases)
	assert.True(t, env.RestartOnFail)
	assert.Equal(t, "web", env.Server)
}

func TestGenerate_CLICommandDispatch(t *testing.T) {
	prog := parseProgram(t, "cli {\n  name: \"tova\"\n\n  fn greet(name) {\n    print(name)\n  }\n}\n")
	res := New().GenerateProgram(prog)
	require.True(t, res.IsCLI)
	assert.Contains(t, res.CLI, `case "greet"`)
	assert.Contains(t, res.CLI, "__cli_main(process.argv.slice(2));")
}

func TestGenerate_SourceMapTracksSharedStatements(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn add(a, b) {\n    a + b\n  }\n  fn sub(a, b) {\n    a - b\n  }\n}\n")
	res := New().GenerateProgram(prog)
	require.NotEmpty(t, res.SourceMap)

	var shared []SourceMapEntry
	for _, e := range res.SourceMap {
		if e.Stream == "shared" {
			shared = append(shared, e)
		}
	}
	require.Len(t, shared, 2)
	assert.Equal(t, 2, shared[0].Source.Line)
	assert.Equal(t, 5, shared[1].Source.Line)
	assert.Equal(t, 1, shared[0].OutputLine)
	assert.Less(t, shared[0].OutputLine, shared[1].OutputLine)
}

func TestGenerate_SourceMapTracksNamedServerStream(t *testing.T) {
	prog := parseProgram(t, "server api {\n  fn helper() {\n    return 1\n  }\n}\n")
	res := New().GenerateProgram(prog)
	found := false
	for _, e := range res.SourceMap {
		if e.Stream == "server:api" {
			found = true
		}
	}
	assert.True(t, found, "expected a server:api entry, got %+v", res.SourceMap)
}
