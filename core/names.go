package core

// pythonReserved contains Python keywords, the builtins generated code calls
// unqualified, and the module aliases the generated model imports.
var pythonReserved = map[string]struct{}{
	// Keywords
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},

	// Builtins used by generated code
	"range": {}, "len": {}, "str": {}, "int": {}, "float": {}, "list": {},
	"print": {}, "abs": {}, "min": {}, "max": {}, "sum": {},

	// Target runtime modules
	"pyro": {}, "dist": {}, "torch": {}, "np": {}, "math": {},
}

// IsReserved reports whether name collides with a reserved word in generated code.
func IsReserved(name string) bool {
	_, ok := pythonReserved[name]
	return ok
}

// SafeName maps a model identifier to one that is legal in generated code.
// Reserved names get a "__" suffix; everything else is returned unchanged.
func SafeName(name string) string {
	if IsReserved(name) {
		return name + "__"
	}
	return name
}
