package value

import "bytes"

// Equal reports whether two values are structurally equal.
//
// List, Listing, and object member order is significant. Set membership and
// Map/Mapping entry sets ignore order. Int and Float never compare equal to
// each other, and NaN is not equal to itself. A nil Value is treated as Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}

	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Duration:
		bv, ok := b.(Duration)
		return ok && av == bv
	case DataSize:
		bv, ok := b.(DataSize)
		return ok && av == bv
	case IntSeq:
		bv, ok := b.(IntSeq)
		return ok && av == bv
	case Pair:
		bv, ok := b.(Pair)
		return ok && Equal(av.First, bv.First) && Equal(av.Second, bv.Second)
	case Regex:
		bv, ok := b.(Regex)
		return ok && av == bv
	case Class:
		bv, ok := b.(Class)
		return ok && av == bv
	case TypeAlias:
		bv, ok := b.(TypeAlias)
		return ok && av == bv
	case Function:
		_, ok := b.(Function)
		return ok
	case List:
		bv, ok := b.(List)
		return ok && equalSeq(av, bv)
	case Listing:
		bv, ok := b.(Listing)
		return ok && equalSeq(av, bv)
	case Set:
		bv, ok := b.(Set)
		return ok && equalUnordered(av, bv)
	case Map:
		bv, ok := b.(Map)
		return ok && equalEntries(av, bv)
	case Mapping:
		bv, ok := b.(Mapping)
		return ok && equalEntries(av, bv)
	case Object:
		bv, ok := b.(Object)
		if !ok || av.Name != bv.Name || av.ModuleURI != bv.ModuleURI {
			return false
		}
		return equalMembers(av.Members, bv.Members)
	default:
		return false
	}
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// equalUnordered matches every element of a against a distinct element of b
func equalUnordered(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, av := range a {
		for j, bv := range b {
			if !used[j] && Equal(av, bv) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func equalEntries(a, b []MapEntry) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
outer:
	for _, ae := range a {
		for j, be := range b {
			if !used[j] && Equal(ae.Key, be.Key) && Equal(ae.Value, be.Value) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

func equalMembers(a, b []Member) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalMember(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalMember(a, b Member) bool {
	switch am := a.(type) {
	case Property:
		bm, ok := b.(Property)
		return ok && am.Name == bm.Name && Equal(am.Value, bm.Value)
	case Entry:
		bm, ok := b.(Entry)
		return ok && Equal(am.Key, bm.Key) && Equal(am.Value, bm.Value)
	case Element:
		bm, ok := b.(Element)
		return ok && am.Index == bm.Index && Equal(am.Value, bm.Value)
	default:
		return false
	}
}
