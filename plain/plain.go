package plain

import (
	"io"
	"strconv"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/value"
)

// Decode decodes one complete document into plain Go data. Trailing bytes
// after the document are an error.
func Decode(data []byte) (any, error) {
	return codec.DecodeDataWith(data, hooks{})
}

// DecodeFrom decodes one document from r into plain Go data
func DecodeFrom(r io.Reader) (any, error) {
	return codec.DecodeWith(r, hooks{})
}

// Duration is a decoded duration; Unit is the wire symbol, e.g. "min"
type Duration struct {
	Value float64
	Unit  string
}

// DataSize is a decoded data size; Unit is the wire symbol, e.g. "mib"
type DataSize struct {
	Value float64
	Unit  string
}

// IntSeq is a decoded integer sequence
type IntSeq struct {
	Start int64
	End   int64
	Step  int64
}

// Pair is a decoded pair of values
type Pair struct {
	First  any
	Second any
}

// Regex is a decoded regular expression pattern
type Regex struct {
	Pattern string
}

// Class is an unresolved class reference
type Class struct {
	Name      string
	ModuleURI string
}

// TypeAlias is an unresolved type alias reference
type TypeAlias struct {
	Name      string
	ModuleURI string
}

// Entry is one key/value pair of an OrderedMap
type Entry struct {
	Key   any
	Value any
}

// OrderedMap is a decoded map or mapping. Entries keep wire order; Get looks
// up by the formatted key (see Key).
type OrderedMap struct {
	entries []Entry
	index   map[string]int
}

// Len returns the number of entries
func (m *OrderedMap) Len() int { return len(m.entries) }

// Entries returns the entries in wire order. The slice is shared; callers
// must not modify it.
func (m *OrderedMap) Entries() []Entry { return m.entries }

// Get returns the value stored under the formatted key and whether it
// exists. The first entry wins when two keys format identically.
func (m *OrderedMap) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

func (m *OrderedMap) append(k, v any) {
	formatted := Key(k)
	if _, dup := m.index[formatted]; !dup {
		m.index[formatted] = len(m.entries)
	}
	m.entries = append(m.entries, Entry{Key: k, Value: v})
}

// Member is one decoded object member.
//
// Kind selects which fields are set: CodeProperty fills Name, CodeEntry
// fills Key, CodeElement fills Index. Value is always set.
type Member struct {
	Value any
	Key   any
	Name  string
	Index int64
	Kind  pklbinary.Code
}

// Object is a decoded object: its wire identity plus members in wire order.
// The class is never resolved; typed and dynamic objects differ only in
// their identity strings.
type Object struct {
	Name      string
	ModuleURI string
	Members   []Member
}

// IsDynamic reports whether the object has the dynamic class identity
func (o *Object) IsDynamic() bool {
	return o.Name == value.DynamicClassName && o.ModuleURI == value.BaseModuleURI
}

// Property returns the value of the named property and whether it exists
func (o *Object) Property(name string) (any, bool) {
	for _, m := range o.Members {
		if m.Kind == pklbinary.CodeProperty && m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Elements returns the values of the object's element members in wire order
func (o *Object) Elements() []any {
	var out []any
	for _, m := range o.Members {
		if m.Kind == pklbinary.CodeElement {
			out = append(out, m.Value)
		}
	}
	return out
}

// Key formats a decoded value for use as a lookup or rendering key.
// Strings are bare; everything else uses a short literal form.
func Key(v any) string {
	switch k := v.(type) {
	case nil:
		return "null"
	case string:
		return k
	case bool:
		return strconv.FormatBool(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64)
	case Duration:
		return strconv.FormatFloat(k.Value, 'g', -1, 64) + "." + k.Unit
	case DataSize:
		return strconv.FormatFloat(k.Value, 'g', -1, 64) + "." + k.Unit
	case IntSeq:
		if k.Step == 1 || k.Step == 0 {
			return "IntSeq(" + strconv.FormatInt(k.Start, 10) + ", " + strconv.FormatInt(k.End, 10) + ")"
		}
		return "IntSeq(" + strconv.FormatInt(k.Start, 10) + ", " + strconv.FormatInt(k.End, 10) +
			").step(" + strconv.FormatInt(k.Step, 10) + ")"
	case Regex:
		return "Regex(" + strconv.Quote(k.Pattern) + ")"
	case Class:
		return k.Name
	case TypeAlias:
		return k.Name
	case Pair:
		return "Pair(" + Key(k.First) + ", " + Key(k.Second) + ")"
	default:
		return typeName(v)
	}
}

// typeName names a composite used in key position. Composite keys are legal
// on the wire but have no short literal form.
func typeName(v any) string {
	switch v.(type) {
	case []byte:
		return "bytes"
	case []any:
		return "list"
	case *OrderedMap:
		return "map"
	case *Object:
		return "object"
	default:
		return "value"
	}
}
