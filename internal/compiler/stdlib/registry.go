// Package stdlib holds the compile-time catalog of built-in types, free
// functions, and namespaced functions the analyzer resolves names against.
// It is a signature registry only: generating or executing the code behind
// these names is the runtime library's job, not the compiler's.
package stdlib

// Types lists the built-in type names available in every scope.
var Types = []string{"Int", "Float", "String", "Bool", "Nil", "Any", "Result", "Option", "Function"}

// Functions maps each unnamespaced built-in function to its parameter names.
var Functions = map[string][]string{
	"print":       {"values..."},
	"range":       {"start", "end", "step"},
	"len":         {"value"},
	"type_of":     {"value"},
	"enumerate":   {"iterable"},
	"zip":         {"iterables..."},
	"map":         {"iterable", "fn"},
	"filter":      {"iterable", "fn"},
	"reduce":      {"iterable", "fn", "initial"},
	"sum":         {"iterable"},
	"sorted":      {"iterable", "key"},
	"reversed":    {"iterable"},
	"fetch":       {"url", "options"},
	"db":          {"query", "params"},
	"upper":       {"s"},
	"lower":       {"s"},
	"trim":        {"s"},
	"split":       {"s", "sep"},
	"join":        {"iterable", "sep"},
	"replace":     {"s", "from", "to"},
	"contains":    {"coll", "value"},
	"keys":        {"obj"},
	"values":      {"obj"},
	"entries":     {"obj"},
	"push":        {"arr", "value"},
	"pop":         {"arr"},
	"slice":       {"coll", "start", "end"},
	"min":         {"iterable"},
	"max":         {"iterable"},
	"round":       {"n", "digits"},
	"abs":         {"n"},
	"parse_int":   {"s"},
	"parse_float": {"s"},
	"to_string":   {"value"},
}

// Constructors maps the Result/Option constructor names to their parameters.
var Constructors = map[string][]string{
	"Ok":   {"value"},
	"Err":  {"error"},
	"Some": {"value"},
	"None": {},
}

// Param describes one parameter of a namespaced function signature.
type Param struct {
	Name     string
	Type     string
	Nullable bool
}

// NamespacedFunction describes a member of a namespace like String or Time:
// the full name is "<Namespace>.<Name>", e.g. "String.slugify".
type NamespacedFunction struct {
	Namespace string
	Name      string
	Params    []Param
	Return    string
	Nullable  bool
}

// FullName returns the dotted call form, e.g. "String.slugify".
func (f NamespacedFunction) FullName() string {
	return f.Namespace + "." + f.Name
}

// Namespaces lists every namespace a NamespacedFunction can belong to.
var Namespaces = []string{"String", "Time", "Array", "Hash", "UUID"}

// NamespacedFunctions is the signature catalog for namespaced calls like
// String.slugify(...) or Time.add_days(...). The analyzer uses it to
// check that a namespaced call names an existing function and to suggest
// a close name when it does not; codegen does not consult it.
//
// These are signatures only, grounded on the runtime library's namespaced
// entry points. The implementations themselves belong to the runtime
// library, not the compiler.
var NamespacedFunctions = []NamespacedFunction{
	{Namespace: "String", Name: "length", Params: []Param{{Name: "s", Type: "string"}}, Return: "int"},
	{Namespace: "String", Name: "slugify", Params: []Param{{Name: "s", Type: "string"}}, Return: "string"},
	{Namespace: "String", Name: "upcase", Params: []Param{{Name: "s", Type: "string"}}, Return: "string"},
	{Namespace: "String", Name: "downcase", Params: []Param{{Name: "s", Type: "string"}}, Return: "string"},
	{Namespace: "String", Name: "trim", Params: []Param{{Name: "s", Type: "string"}}, Return: "string"},
	{Namespace: "String", Name: "contains", Params: []Param{{Name: "s", Type: "string"}, {Name: "substr", Type: "string"}}, Return: "bool"},
	{Namespace: "String", Name: "replace", Params: []Param{{Name: "s", Type: "string"}, {Name: "old", Type: "string"}, {Name: "new", Type: "string"}}, Return: "string"},

	{Namespace: "Time", Name: "now", Params: nil, Return: "timestamp"},
	{Namespace: "Time", Name: "format", Params: []Param{{Name: "t", Type: "timestamp"}, {Name: "layout", Type: "string"}}, Return: "string"},
	{Namespace: "Time", Name: "parse", Params: []Param{{Name: "s", Type: "string"}, {Name: "layout", Type: "string"}}, Return: "timestamp", Nullable: true},
	{Namespace: "Time", Name: "add_days", Params: []Param{{Name: "t", Type: "timestamp"}, {Name: "days", Type: "int"}}, Return: "timestamp"},

	{Namespace: "Array", Name: "length", Params: []Param{{Name: "arr", Type: "T[]"}}, Return: "int"},
	{Namespace: "Array", Name: "contains", Params: []Param{{Name: "arr", Type: "T[]"}, {Name: "value", Type: "T"}}, Return: "bool"},

	{Namespace: "Hash", Name: "has_key", Params: []Param{{Name: "h", Type: "hash{K, V}"}, {Name: "key", Type: "K"}}, Return: "bool"},

	{Namespace: "UUID", Name: "generate", Params: nil, Return: "uuid"},
}

// Lookup finds a namespaced function by its dotted name, e.g. "Time.parse".
func Lookup(namespace, name string) (NamespacedFunction, bool) {
	for _, fn := range NamespacedFunctions {
		if fn.Namespace == namespace && fn.Name == name {
			return fn, true
		}
	}
	return NamespacedFunction{}, false
}

// NamesInNamespace returns every function name registered under a namespace,
// used to build did-you-mean suggestions for a misspelled call.
func NamesInNamespace(namespace string) []string {
	var names []string
	for _, fn := range NamespacedFunctions {
		if fn.Namespace == namespace {
			names = append(names, fn.Name)
		}
	}
	return names
}

// IsNamespace reports whether name is a recognized stdlib namespace.
func IsNamespace(name string) bool {
	for _, ns := range Namespaces {
		if ns == name {
			return true
		}
	}
	return false
}
