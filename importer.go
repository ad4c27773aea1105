package pklbinary

import (
	"errors"

	"github.com/pkl-community/pklbinary-go/value"
)

// ErrUnresolvableModule is wrapped by Importer implementations when a module
// URI is not known to them. The decoder attaches a remediation hint when it
// sees this sentinel in an importer failure.
var ErrUnresolvableModule = errors.New("unresolvable module")

// Importer resolves class and type alias descriptors referenced by a document.
//
// Typed objects name their class by qualified name and defining module URI;
// class and type alias values do the same. The decoder cannot reconstruct
// those descriptors from the wire alone, so every decode of a typed document
// goes through an Importer. Returning an error fails the decode at the
// position of the reference.
//
// The name format is "module#Ident"; a name without a hash refers to the
// module class itself.
type Importer interface {
	ImportClass(name, moduleURI string) (*value.Class, error)
	ImportTypeAlias(name, moduleURI string) (*value.TypeAlias, error)
}
