package analyzer

import (
	"strings"
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

func messages(ds []Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}
	return out
}

func TestAnalyze_UndefinedIdentifier(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    print(totally_unknown)\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, messages(res.Errors)[0], "undefined name")
}

func TestAnalyze_DidYouMeanHint(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    let counter = 1\n    print(countr)\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, messages(res.Errors)[0], `did you mean "counter"`)
}

func TestAnalyze_ImmutableAssignment(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    let total = 1\n    total = 2\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, messages(res.Errors)[0], "immutable binding")
}

func TestAnalyze_MutableAssignmentOK(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    var total = 1\n    total = 2\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	assert.Empty(t, res.Errors)
}

func TestAnalyze_ContextViolation(t *testing.T) {
	prog := parseProgram(t, "shared {\n  route \"GET /x\" {\n    return 1\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, messages(res.Errors)[0], "only valid inside a server block")
}

func TestAnalyze_UnusedVariableWarning(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    let unused_value = 1\n    return 2\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if w.Message == `"unused_value" is declared but never used` {
			found = true
		}
	}
	assert.True(t, found, "expected unused variable warning, got %v", messages(res.Warnings))
}

func TestAnalyze_UnreachableCodeAfterReturn(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    return 1\n    print(\"dead\")\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if w.Message == "unreachable code" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_ConstantCondition(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn f() {\n    if true {\n      print(1)\n    }\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if w.Message == "condition is always true" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_NamingConventionWarning(t *testing.T) {
	prog := parseProgram(t, "shared {\n  fn BadName() {\n    return 1\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if w.Message == `"BadName" should be snake_case` {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_RPCSelfCallWarning(t *testing.T) {
	prog := parseProgram(t, "server api {\n  fn helper() {\n    return 1\n  }\n  route \"GET /x\" {\n    return api.helper()\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if w.Message == "call to api.helper is a self-call; call helper directly instead" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_RPCUnknownFunction(t *testing.T) {
	prog := parseProgram(t, "server api {\n  fn helper() {\n    return 1\n  }\n}\nserver web {\n  route \"GET /x\" {\n    return api.missing()\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, messages(res.Errors)[0], `no function "missing"`)
}

func TestAnalyze_NonExhaustiveMatchNamesMissingVariant(t *testing.T) {
	prog := parseProgram(t, "shared {\n  type Opt {\n    Some(value: Int),\n    None\n  }\n\n  fn f(x) {\n    match x {\n      Some(v) => v\n    }\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, "missing variant(s) None of Opt") {
			found = true
		}
	}
	assert.True(t, found, "expected non-exhaustive match warning naming None, got %v", messages(res.Warnings))
}

func TestAnalyze_ExhaustiveMatchNoWarning(t *testing.T) {
	prog := parseProgram(t, "shared {\n  type Opt {\n    Some(value: Int),\n    None\n  }\n\n  fn f(x) {\n    match x {\n      Some(v) => v,\n      None => 0\n    }\n  }\n}\n")
	res := Analyze(prog, "test.tova", false)
	for _, w := range res.Warnings {
		assert.NotContains(t, w.Message, "not be exhaustive")
	}
}

func TestIsSnakeCase(t *testing.T) {
	assert.True(t, isSnakeCase("fetch_users"))
	assert.False(t, isSnakeCase("fetchUsers"))
	assert.False(t, isSnakeCase("FetchUsers"))
}

func TestIsPascalCase(t *testing.T) {
	assert.True(t, isPascalCase("UserProfile"))
	assert.False(t, isPascalCase("userProfile"))
}

func TestLevenshteinWithin1(t *testing.T) {
	assert.True(t, levenshteinWithin1("counter", "countr"))
	assert.True(t, levenshteinWithin1("counter", "counted"))
	assert.False(t, levenshteinWithin1("counter", "count"))
	assert.False(t, levenshteinWithin1("abc", "xyz"))
}
