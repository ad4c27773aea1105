// Package importer provides in-memory Importer implementations for the
// decoder.
//
// A Registry maps module URIs to the classes and type aliases the caller is
// willing to resolve. Standard library references (module URI "pkl:base")
// resolve against a built-in table without registration, the same way the
// evaluator resolves pkl: modules itself rather than through the caller's
// imports.
//
//	reg := importer.NewRegistry()
//	reg.Add(importer.Module{
//	    URI:     "birds.pkl",
//	    Classes: []string{"birds#Bird"},
//	})
//	v, err := codec.Decode(data, reg)
//
// Trusting resolves every reference to a descriptor carrying its literal
// wire identity. It is for tooling that trusts its input (re-encoding,
// inspection); a runtime that cares about identity should use a Registry or
// its own Importer.
//
// Qualified names follow the wire convention "module#Ident"; a name without
// a hash refers to the module class itself. pkl:base names are bare class
// names ("Dynamic", "Duration"), not hash-qualified.
package importer
