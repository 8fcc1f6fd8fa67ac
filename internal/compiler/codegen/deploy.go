package codegen

import (
	"strconv"
	"strings"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genDeploy merges every named `deploy "env" { ... }` block into a
// DeployEnv, applying the standard defaults for unset fields.
// Deploy blocks carry no executable code, only literal configuration,
// so entries are evaluated to plain Go values rather than JS source.
func (g *Generator) genDeploy(blocks []*ast.DeployBlock) map[string]DeployEnv {
	out := make(map[string]DeployEnv, len(blocks))
	for _, db := range blocks {
		env := DeployEnv{
			Instances:      1,
			Memory:         "512mb",
			Branch:         "main",
			Health:         "/healthz",
			HealthInterval: 30,
			KeepReleases:   5,
			RestartOnFail:  true,
			Env:            map[string]string{},
		}
		dbConfig := map[string]interface{}{}
		hasDBConfig := false

		for _, entry := range db.Entries {
			switch {
			case entry.Key == "server":
				env.Server = evalString(entry.Value)
			case entry.Key == "domain":
				env.Domain = evalString(entry.Value)
			case entry.Key == "instances":
				env.Instances = evalInt(entry.Value, env.Instances)
			case entry.Key == "memory":
				env.Memory = evalString(entry.Value)
			case entry.Key == "branch":
				env.Branch = evalString(entry.Value)
			case entry.Key == "health":
				env.Health = evalString(entry.Value)
			case entry.Key == "health_interval":
				env.HealthInterval = evalInt(entry.Value, env.HealthInterval)
			case entry.Key == "keep_releases":
				env.KeepReleases = evalInt(entry.Value, env.KeepReleases)
			case entry.Key == "restart_on_failure":
				env.RestartOnFail = evalBool(entry.Value, env.RestartOnFail)
			case strings.HasPrefix(entry.Key, "database."):
				hasDBConfig = true
				dbConfig[strings.TrimPrefix(entry.Key, "database.")] = evalLiteral(entry.Value)
			case strings.HasPrefix(entry.Key, "env."):
				env.Env[strings.TrimPrefix(entry.Key, "env.")] = evalString(entry.Value)
			}
		}
		if hasDBConfig {
			env.Databases = append(env.Databases, dbConfig)
		}
		out[db.Env] = env
	}
	return out
}

func evalLiteral(e ast.Expr) interface{} {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return v.Value
	case *ast.IntLiteral:
		return v.Value
	case *ast.FloatLiteral:
		return v.Value
	case *ast.BoolLiteral:
		return v.Value
	case *ast.NilLiteral:
		return nil
	case *ast.ArrayLiteral:
		out := make([]interface{}, len(v.Elements))
		for i, el := range v.Elements {
			out[i] = evalLiteral(el)
		}
		return out
	case *ast.ObjectLiteral:
		out := map[string]interface{}{}
		for _, p := range v.Properties {
			out[p.Key] = evalLiteral(p.Value)
		}
		return out
	}
	return nil
}

func evalString(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.StringLiteral:
		return v.Value
	case *ast.IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case *ast.BoolLiteral:
		return strconv.FormatBool(v.Value)
	}
	return ""
}

func evalInt(e ast.Expr, fallback int) int {
	if v, ok := e.(*ast.IntLiteral); ok {
		return int(v.Value)
	}
	return fallback
}

func evalBool(e ast.Expr, fallback bool) bool {
	if v, ok := e.(*ast.BoolLiteral); ok {
		return v.Value
	}
	return fallback
}
