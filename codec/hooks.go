package codec

import (
	"github.com/pkl-community/pklbinary-go/value"
)

// Hooks builds host values from decoded wire data.
//
// The decoder core owns the wire grammar: envelopes, tags, field counts,
// forward-compatibility skipping, breadcrumb trails, and offsets. Hooks own
// construction. The core calls exactly one hook per value, passing iterators
// for container bodies; a hook must consume its iterator before returning a
// value built from it (unconsumed members are drained after a successful
// return, but the values the hook builds would then be incomplete).
//
// A hook error aborts the decode. Errors that are not already codec errors
// are wrapped with the current breadcrumb trail and offset.
//
// There is no hook for function values: the decoder rejects the function tag
// because functions cannot be reconstructed outside an evaluator.
type Hooks interface {
	Null() (any, error)
	Bool(b bool) (any, error)
	Int(n int64) (any, error)
	Float(f float64) (any, error)
	String(s string) (any, error)
	Bytes(b []byte) (any, error)
	Duration(v float64, unit value.DurationUnit) (any, error)
	DataSize(v float64, unit value.DataSizeUnit) (any, error)
	IntSeq(start, end, step int64) (any, error)
	Pair(first, second any) (any, error)
	Regex(pattern string) (any, error)
	Class(name, moduleURI string) (any, error)
	TypeAlias(name, moduleURI string) (any, error)
	Object(name, moduleURI string, members *MemberIter) (any, error)
	List(elems *ElementIter) (any, error)
	Listing(elems *ElementIter) (any, error)
	Set(elems *ElementIter) (any, error)
	Map(entries *EntryIter) (any, error)
	Mapping(entries *EntryIter) (any, error)
}
