package codegen

import (
	"fmt"

	"github.com/tova-lang/tova/internal/compiler/ast"
)

// genIfExpr lowers the `if cond { a } else { b }` expression form to a
// ternary. Both branches are always single expressions (the parser
// requires it), so the IIFE fallback used for statement-bearing
// branches elsewhere never applies here.
func (g *Generator) genIfExpr(scope *varScope, v *ast.IfExpr) string {
	return fmt.Sprintf("(%s ? %s : %s)", g.genExpr(scope, v.Cond), g.genExpr(scope, v.Then), g.genExpr(scope, v.Else))
}
