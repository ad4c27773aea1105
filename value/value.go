package value

// Value represents an evaluated Pkl value.
//
// The set of implementations is closed: every value a document can hold is
// one of the types in this package, and consumers dispatch with exhaustive
// type switches.
type Value interface {
	isValue()
}

// Identity of the dynamic object class. Objects carrying this class name and
// module URI have no schema and accept properties, entries, and elements.
const (
	DynamicClassName = "Dynamic"
	BaseModuleURI    = "pkl:base"
)

// Null represents the null value
type Null struct{}

// Bool represents a boolean
type Bool bool

// Int represents a 64-bit signed integer
type Int int64

// Float represents a 64-bit float
type Float float64

// String represents a string
type String string

// Bytes represents a byte array
type Bytes []byte

// Duration represents an amount of time in a fixed unit
type Duration struct {
	Value float64
	Unit  DurationUnit
}

// DataSize represents an amount of storage in a fixed unit
type DataSize struct {
	Value float64
	Unit  DataSizeUnit
}

// IntSeq represents an integer range with a stride
type IntSeq struct {
	Start int64
	End   int64
	Step  int64
}

// NewIntSeq returns the sequence from start to end inclusive with step 1
func NewIntSeq(start, end int64) IntSeq {
	return IntSeq{Start: start, End: end, Step: 1}
}

// Pair represents an ordered pair of values
type Pair struct {
	First  Value
	Second Value
}

// Regex represents a regular expression by its source pattern
type Regex struct {
	Pattern string
}

// Class represents a class descriptor by qualified name and defining module
type Class struct {
	Name      string
	ModuleURI string
}

// TypeAlias represents a type alias descriptor by qualified name and defining module
type TypeAlias struct {
	Name      string
	ModuleURI string
}

// Function is the opaque stand-in for a function value. Functions encode as a
// bare marker and can never be decoded back.
type Function struct{}

// List represents an immutable ordered collection
type List []Value

// Listing represents an object-flavored ordered collection
type Listing []Value

// Set represents a collection with set semantics. Wire order is preserved on
// encode; equality ignores it.
type Set []Value

// MapEntry is one key/value pair of a Map or Mapping
type MapEntry struct {
	Key   Value
	Value Value
}

// Map represents an immutable keyed collection
type Map []MapEntry

// Mapping represents an object-flavored keyed collection
type Mapping []MapEntry

// Object represents an evaluated object: a class identity plus an ordered
// member sequence of properties, entries, and elements.
type Object struct {
	Name      string
	ModuleURI string
	Members   []Member
}

// NewDynamic returns an object with the dynamic class identity
func NewDynamic(members ...Member) Object {
	return Object{Name: DynamicClassName, ModuleURI: BaseModuleURI, Members: members}
}

// IsDynamic reports whether the object has the dynamic class identity
func (o Object) IsDynamic() bool {
	return o.Name == DynamicClassName && o.ModuleURI == BaseModuleURI
}

// Property returns the value of the named property and whether it exists
func (o Object) Property(name string) (Value, bool) {
	for _, m := range o.Members {
		if p, ok := m.(Property); ok && p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (Null) isValue()      {}
func (Bool) isValue()      {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (String) isValue()    {}
func (Bytes) isValue()     {}
func (Duration) isValue()  {}
func (DataSize) isValue()  {}
func (IntSeq) isValue()    {}
func (Pair) isValue()      {}
func (Regex) isValue()     {}
func (Class) isValue()     {}
func (TypeAlias) isValue() {}
func (Function) isValue()  {}
func (List) isValue()      {}
func (Listing) isValue()   {}
func (Set) isValue()       {}
func (Map) isValue()       {}
func (Mapping) isValue()   {}
func (Object) isValue()    {}
