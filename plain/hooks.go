package plain

import (
	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/value"
)

// Declared counts are untrusted. Preallocation is capped so a short stream
// with a huge count header cannot force a huge allocation.
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

// hooks implements codec.Hooks over plain Go data. List, listing, and set
// bodies all collapse to []any; map and mapping both build an OrderedMap.
type hooks struct{}

func (hooks) Null() (any, error)           { return nil, nil }
func (hooks) Bool(b bool) (any, error)     { return b, nil }
func (hooks) Int(n int64) (any, error)     { return n, nil }
func (hooks) Float(f float64) (any, error) { return f, nil }
func (hooks) String(s string) (any, error) { return s, nil }
func (hooks) Bytes(b []byte) (any, error)  { return b, nil }

func (hooks) Duration(v float64, unit value.DurationUnit) (any, error) {
	return Duration{Value: v, Unit: unit.String()}, nil
}

func (hooks) DataSize(v float64, unit value.DataSizeUnit) (any, error) {
	return DataSize{Value: v, Unit: unit.String()}, nil
}

func (hooks) IntSeq(start, end, step int64) (any, error) {
	return IntSeq{Start: start, End: end, Step: step}, nil
}

func (hooks) Pair(first, second any) (any, error) {
	return Pair{First: first, Second: second}, nil
}

func (hooks) Regex(pattern string) (any, error) {
	return Regex{Pattern: pattern}, nil
}

func (hooks) Class(name, moduleURI string) (any, error) {
	return Class{Name: name, ModuleURI: moduleURI}, nil
}

func (hooks) TypeAlias(name, moduleURI string) (any, error) {
	return TypeAlias{Name: name, ModuleURI: moduleURI}, nil
}

func (hooks) Object(name, moduleURI string, members *codec.MemberIter) (any, error) {
	obj := &Object{
		Name:      name,
		ModuleURI: moduleURI,
		Members:   make([]Member, 0, capCount(members.Len())),
	}
	for members.HasNext() {
		m, err := members.Next()
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{
			Kind:  m.Kind,
			Name:  m.Name,
			Key:   m.Key,
			Index: m.Index,
			Value: m.Value,
		})
	}
	return obj, nil
}

func (hooks) List(elems *codec.ElementIter) (any, error)    { return collect(elems) }
func (hooks) Listing(elems *codec.ElementIter) (any, error) { return collect(elems) }
func (hooks) Set(elems *codec.ElementIter) (any, error)     { return collect(elems) }

func (hooks) Map(entries *codec.EntryIter) (any, error)     { return collectMap(entries) }
func (hooks) Mapping(entries *codec.EntryIter) (any, error) { return collectMap(entries) }

func collect(elems *codec.ElementIter) ([]any, error) {
	out := make([]any, 0, capCount(elems.Len()))
	for elems.HasNext() {
		v, err := elems.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func collectMap(entries *codec.EntryIter) (*OrderedMap, error) {
	m := &OrderedMap{index: make(map[string]int, capCount(entries.Len()))}
	for entries.HasNext() {
		k, v, err := entries.Next()
		if err != nil {
			return nil, err
		}
		m.append(k, v)
	}
	return m, nil
}

var _ codec.Hooks = hooks{}
