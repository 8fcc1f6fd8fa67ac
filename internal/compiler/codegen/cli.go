package codegen

import (
	"fmt"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genCLI lowers a `cli { ... }` block to a standalone Node driver
// script: one subcommand per declared
// command function, a generated `--help`, and a small argv parser
// supporting `--name value`, `--name=value`, `--no-name`, repeated
// flags collected into an array, and bare optional boolean flags.
func (g *Generator) genCLI(cb *ast.CliBlock) string {
	var b strings.Builder
	scope := newVarScope(nil)

	b.WriteString("const __config = {\n")
	for _, entry := range cb.Config {
		b.WriteString(fmt.Sprintf("  %s: %s,\n", entry.Key, g.genExpr(scope, entry.Value)))
	}
	b.WriteString("};\n\n")

	for _, cmd := range cb.Commands {
		g.mark("cli", &b, cmd.Loc())
		b.WriteString(g.genFunctionDecl(scope, cmd, 0))
	}

	b.WriteString(g.genCLIParser(cb))
	b.WriteString(g.genCLIHelp(cb))
	b.WriteString(g.genCLIDispatch(cb))

	if g.contains {
		b.WriteString(containsHelper)
	}
	b.WriteString(slicePropagateHelpers)
	b.WriteString("\n__cli_main(process.argv.slice(2));\n")
	return b.String()
}

const cliParser = `
function __parseArgv(argv, flagNames) {
  const positional = [];
  const flags = {};
  for (let i = 0; i < argv.length; i++) {
    const tok = argv[i];
    if (tok.startsWith("--no-")) {
      flags[__camel(tok.slice(5))] = false;
      continue;
    }
    if (tok.startsWith("--")) {
      const eq = tok.indexOf("=");
      let name, value;
      if (eq !== -1) {
        name = __camel(tok.slice(2, eq));
        value = tok.slice(eq + 1);
      } else {
        name = __camel(tok.slice(2));
        const next = argv[i + 1];
        if (next === undefined || next.startsWith("--")) {
          value = true;
        } else {
          value = next;
          i++;
        }
      }
      if (Object.prototype.hasOwnProperty.call(flags, name)) {
        flags[name] = Array.isArray(flags[name]) ? [...flags[name], value] : [flags[name], value];
      } else {
        flags[name] = value;
      }
      continue;
    }
    positional.push(tok);
  }
  return { positional, flags };
}

function __camel(name) {
  return name.replace(/-([a-z])/g, (_, c) => c.toUpperCase());
}
`

func (g *Generator) genCLIParser(cb *ast.CliBlock) string {
	return cliParser
}

func (g *Generator) genCLIHelp(cb *ast.CliBlock) string {
	var b strings.Builder
	b.WriteString("function __printHelp() {\n")
	b.WriteString("  console.log(\"Commands:\");\n")
	for _, cmd := range cb.Commands {
		names := make([]string, len(cmd.Params))
		for i, p := range cmd.Params {
			names[i] = p.Name
		}
		b.WriteString(fmt.Sprintf("  console.log(%s);\n", jsStringLit("  "+cmd.Name+" "+strings.Join(names, " "))))
	}
	b.WriteString("}\n\n")
	return b.String()
}

// genCLIDispatch emits the subcommand router: unknown subcommands and
// missing required positionals each produce a distinct runtime error.
func (g *Generator) genCLIDispatch(cb *ast.CliBlock) string {
	var b strings.Builder
	b.WriteString("async function __cli_main(argv) {\n")
	b.WriteString("  if (argv.length === 0 || argv[0] === \"--help\" || argv[0] === \"-h\") { __printHelp(); return; }\n")
	b.WriteString("  const [sub, ...rest] = argv;\n")
	b.WriteString("  const { positional, flags } = __parseArgv(rest, []);\n")
	b.WriteString("  switch (sub) {\n")
	for _, cmd := range cb.Commands {
		required := 0
		for _, p := range cmd.Params {
			if p.DefaultValue == nil {
				required++
			}
		}
		b.WriteString(fmt.Sprintf("    case %s: {\n", jsStringLit(cmd.Name)))
		b.WriteString(fmt.Sprintf("      if (positional.length < %d) { console.error(\"Missing required argument\"); process.exitCode = 1; return; }\n", required))
		args := make([]string, len(cmd.Params))
		for i, p := range cmd.Params {
			if i < required {
				args[i] = fmt.Sprintf("positional[%d]", i)
			} else {
				args[i] = fmt.Sprintf("flags.%s !== undefined ? flags.%s : positional[%d]", p.Name, p.Name, i)
			}
		}
		b.WriteString(fmt.Sprintf("      await %s(%s);\n", cmd.Name, strings.Join(args, ", ")))
		b.WriteString("      return;\n    }\n")
	}
	b.WriteString("    default:\n")
	b.WriteString("      console.error(`Unknown flag or command: ${sub}`);\n")
	b.WriteString("      __printHelp();\n")
	b.WriteString("      process.exitCode = 1;\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
	return b.String()
}
