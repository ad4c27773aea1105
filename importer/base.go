package importer

// The standard library module is resolvable without registration. Unlike
// user modules, its wire names are bare display names ("Dynamic", not
// "base#Dynamic"), so resolution is a straight table lookup.

// baseModuleName is the name the base module class itself travels under
const baseModuleName = "base"

var baseClasses = map[string]struct{}{}

var baseTypeAliases = map[string]struct{}{}

func init() {
	for _, name := range []string{
		"Any", "Null", "Boolean", "Number", "Int", "Float", "String",
		"Duration", "DataSize", "Bytes", "Pair", "IntSeq", "Regex", "RegexMatch",
		"Collection", "List", "Set", "Map",
		"Object", "Dynamic", "Typed", "Listing", "Mapping",
		"Function", "Function0", "Function1", "Function2", "Function3",
		"Function4", "Function5",
		"Class", "TypeAlias", "Annotation", "Module", "ModuleInfo",
		"Deprecated", "SourceCode", "Resource", "VarArgs",
	} {
		baseClasses[name] = struct{}{}
	}
	for _, name := range []string{
		"NonNull", "Int8", "Int16", "Int32", "UInt", "UInt8", "UInt16", "UInt32",
		"Comparable", "Char", "Uri", "Mixin", "DurationUnit", "DataSizeUnit",
	} {
		baseTypeAliases[name] = struct{}{}
	}
}

// baseResolves reports whether a pkl:base reference is a known standard
// library name
func baseResolves(name string, alias bool) bool {
	if alias {
		_, ok := baseTypeAliases[name]
		return ok
	}
	if name == baseModuleName {
		return true
	}
	_, ok := baseClasses[name]
	return ok
}
