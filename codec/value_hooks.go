package codec

import (
	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/errors"
	"github.com/pkl-community/pklbinary-go/value"
)

// Declared counts are untrusted. Preallocation is capped so a short stream
// with a huge count header cannot force a huge allocation; slices grow
// normally past the cap as elements actually arrive.
const preallocLimit = 1024

func capCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > preallocLimit {
		return preallocLimit
	}
	return n
}

// valueHooks builds values from the value package. It backs Decode and
// DecodeFrom; class and type alias references resolve through imp.
type valueHooks struct {
	imp pklbinary.Importer
}

func (h *valueHooks) Null() (any, error)           { return value.Null{}, nil }
func (h *valueHooks) Bool(b bool) (any, error)     { return value.Bool(b), nil }
func (h *valueHooks) Int(n int64) (any, error)     { return value.Int(n), nil }
func (h *valueHooks) Float(f float64) (any, error) { return value.Float(f), nil }
func (h *valueHooks) String(s string) (any, error) { return value.String(s), nil }
func (h *valueHooks) Bytes(b []byte) (any, error)  { return value.Bytes(b), nil }

func (h *valueHooks) Duration(v float64, unit value.DurationUnit) (any, error) {
	return value.Duration{Value: v, Unit: unit}, nil
}

func (h *valueHooks) DataSize(v float64, unit value.DataSizeUnit) (any, error) {
	return value.DataSize{Value: v, Unit: unit}, nil
}

func (h *valueHooks) IntSeq(start, end, step int64) (any, error) {
	return value.IntSeq{Start: start, End: end, Step: step}, nil
}

func (h *valueHooks) Pair(first, second any) (any, error) {
	return value.Pair{First: first.(value.Value), Second: second.(value.Value)}, nil
}

func (h *valueHooks) Regex(pattern string) (any, error) {
	return value.Regex{Pattern: pattern}, nil
}

func (h *valueHooks) Class(name, moduleURI string) (any, error) {
	c, err := h.importClass(name, moduleURI)
	if err != nil {
		return nil, err
	}
	return *c, nil
}

func (h *valueHooks) TypeAlias(name, moduleURI string) (any, error) {
	if h.imp == nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, pklbinary.ErrUnresolvableModule)
	}
	a, err := h.imp.ImportTypeAlias(name, moduleURI)
	if err != nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, err)
	}
	if a == nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, pklbinary.ErrUnresolvableModule)
	}
	return *a, nil
}

// Object resolves the class identity of typed objects before any member is
// read, then collects members in wire order. The codec does not check member
// kinds against the class shape.
func (h *valueHooks) Object(name, moduleURI string, members *MemberIter) (any, error) {
	if name != value.DynamicClassName || moduleURI != value.BaseModuleURI {
		if _, err := h.importClass(name, moduleURI); err != nil {
			return nil, err
		}
	}

	ms := make([]value.Member, 0, capCount(members.Len()))
	for members.HasNext() {
		m, err := members.Next()
		if err != nil {
			return nil, err
		}
		switch m.Kind {
		case pklbinary.CodeProperty:
			ms = append(ms, value.Property{Name: m.Name, Value: m.Value.(value.Value)})
		case pklbinary.CodeEntry:
			ms = append(ms, value.Entry{Key: m.Key.(value.Value), Value: m.Value.(value.Value)})
		default:
			ms = append(ms, value.Element{Index: m.Index, Value: m.Value.(value.Value)})
		}
	}
	return value.Object{Name: name, ModuleURI: moduleURI, Members: ms}, nil
}

func (h *valueHooks) List(elems *ElementIter) (any, error) {
	vs, err := collectElems(elems)
	if err != nil {
		return nil, err
	}
	return value.List(vs), nil
}

func (h *valueHooks) Listing(elems *ElementIter) (any, error) {
	vs, err := collectElems(elems)
	if err != nil {
		return nil, err
	}
	return value.Listing(vs), nil
}

func (h *valueHooks) Set(elems *ElementIter) (any, error) {
	vs, err := collectElems(elems)
	if err != nil {
		return nil, err
	}
	return value.Set(vs), nil
}

func (h *valueHooks) Map(entries *EntryIter) (any, error) {
	es, err := collectEntries(entries)
	if err != nil {
		return nil, err
	}
	return value.Map(es), nil
}

func (h *valueHooks) Mapping(entries *EntryIter) (any, error) {
	es, err := collectEntries(entries)
	if err != nil {
		return nil, err
	}
	return value.Mapping(es), nil
}

func (h *valueHooks) importClass(name, moduleURI string) (*value.Class, error) {
	if h.imp == nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, pklbinary.ErrUnresolvableModule)
	}
	c, err := h.imp.ImportClass(name, moduleURI)
	if err != nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, err)
	}
	if c == nil {
		return nil, errors.UnresolvedImport(nil, 0, moduleURI, pklbinary.ErrUnresolvableModule)
	}
	return c, nil
}

func collectElems(elems *ElementIter) ([]value.Value, error) {
	vs := make([]value.Value, 0, capCount(elems.Len()))
	for elems.HasNext() {
		v, err := elems.Next()
		if err != nil {
			return nil, err
		}
		vs = append(vs, v.(value.Value))
	}
	return vs, nil
}

func collectEntries(entries *EntryIter) ([]value.MapEntry, error) {
	es := make([]value.MapEntry, 0, capCount(entries.Len()))
	for entries.HasNext() {
		k, v, err := entries.Next()
		if err != nil {
			return nil, err
		}
		es = append(es, value.MapEntry{Key: k.(value.Value), Value: v.(value.Value)})
	}
	return es, nil
}
