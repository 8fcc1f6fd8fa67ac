// Package ast defines the abstract syntax tree produced by the Tova parser
// and consumed by the analyzer and code generator.
package ast

import "fmt"

// SourceLocation identifies a position in a source file.
type SourceLocation struct {
	Line   int
	Column int
	File   string
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Node is implemented by every AST node.
type Node interface {
	Loc() SourceLocation
	node()
}

// Base embeds the source location shared by every node variant.
type Base struct {
	Location SourceLocation
}

func (b Base) Loc() SourceLocation { return b.Location }
func (b Base) node()               {}

// At constructs a Base embedding the given location, for use in composite
// literals built outside the package (the parser, mainly).
func At(loc SourceLocation) Base { return Base{Location: loc} }

// Program is the root of every compilation unit.
type Program struct {
	Base
	Body []Stmt
}

// BlockKind distinguishes the three top-level container kinds plus the
// auxiliary cli/deploy/test containers.
type BlockKind int

const (
	BlockServer BlockKind = iota
	BlockClient
	BlockShared
	BlockTest
	BlockCli
	BlockDeploy
)

func (k BlockKind) String() string {
	switch k {
	case BlockServer:
		return "server"
	case BlockClient:
		return "client"
	case BlockShared:
		return "shared"
	case BlockTest:
		return "test"
	case BlockCli:
		return "cli"
	case BlockDeploy:
		return "deploy"
	default:
		return "unknown"
	}
}

// ServerBlock groups server-context declarations. An unnamed server block
// has Name == "".
type ServerBlock struct {
	Base
	Name string
	Body []Stmt
}

// ClientBlock groups client-context declarations.
type ClientBlock struct {
	Base
	Body []Stmt
}

// SharedBlock groups declarations visible to both client and server.
type SharedBlock struct {
	Base
	Body []Stmt
}

// TestBlock groups test declarations; the compiler parses and analyzes
// these but does not execute them (execution is out of scope).
type TestBlock struct {
	Base
	Name string
	Body []Stmt
}

// CliBlock declares a command-line tool: config key/value pairs plus
// command function declarations.
type CliBlock struct {
	Base
	Config   []CliConfigEntry
	Commands []*FunctionDecl
}

// CliConfigEntry is a single `key: value` pair inside a cli block.
type CliConfigEntry struct {
	Key   string
	Value Expr
}

// DeployBlock declares deployment configuration for a named environment.
type DeployBlock struct {
	Base
	Env     string
	Entries []DeployEntry
}

// DeployEntry is a single `key: value` pair inside a deploy block, or a
// nested `database { ... }` / `env { ... }` sub-block flattened to a
// dotted key path (e.g. "database.engine").
type DeployEntry struct {
	Key   string
	Value Expr
}

// --- Declarations shared by all contexts ---

// Param is a function/lambda parameter.
type Param struct {
	Name         string
	TypeAnn      *TypeAnn
	DefaultValue Expr
}

// FunctionDecl declares a named function.
type FunctionDecl struct {
	Base
	Name       string
	Params     []Param
	ReturnType *TypeAnn
	Body       []Stmt
	Async      bool
	Public     bool
}

// VarKind distinguishes immutable `let` from mutable `var` bindings.
type VarKind int

const (
	VarLet VarKind = iota
	VarVar
)

// VarDecl declares one or more bindings from a single initializer.
// Targets has one entry for `x = expr`; more for multi-target
// `a, b = expr`; destructuring targets are represented via Pattern.
type VarDecl struct {
	Base
	Kind     VarKind
	Targets  []string
	Pattern  Pattern // non-nil for destructuring declarations
	TypeAnn  *TypeAnn
	Value    Expr
}

// TypeKind distinguishes a struct-like type from a variant-bearing ADT.
type TypeKind int

const (
	TypeStruct TypeKind = iota
	TypeVariant
)

// TypeDecl declares a struct-like type or an algebraic data type.
type TypeDecl struct {
	Base
	Name       string
	Kind       TypeKind
	TypeParams []string
	Fields     []FieldDecl     // populated when Kind == TypeStruct
	Variants   []VariantDecl   // populated when Kind == TypeVariant
}

// FieldDecl is a single field of a struct-like type.
type FieldDecl struct {
	Name    string
	TypeAnn *TypeAnn
}

// VariantDecl is a single constructor of an ADT.
type VariantDecl struct {
	Name   string
	Fields []FieldDecl // empty for a bare (data-less) variant
}

// ImportKind distinguishes `import Name from "mod"` from
// `import { a, b as c } from "mod"`.
type ImportKind int

const (
	ImportDefault ImportKind = iota
	ImportNamed
)

// ImportSpecifier is one named import, with an optional alias.
type ImportSpecifier struct {
	Name  string
	Alias string
}

// ImportDecl declares an import.
type ImportDecl struct {
	Base
	Kind        ImportKind
	DefaultName string
	Named       []ImportSpecifier
	From        string
}

// --- Type annotations (parsed for hints; never checked program-wide) ---

// TypeAnn is a parsed type annotation: a name, optional type arguments,
// and a nullability marker (`!` required, `?` optional, absent = unknown).
type TypeAnn struct {
	Name     string
	Args     []*TypeAnn
	Nullable NullabilityMark
}

// NullabilityMark records whether a type annotation carried `!`, `?`, or
// neither.
type NullabilityMark int

const (
	NullUnmarked NullabilityMark = iota
	NullRequired
	NullOptional
)
