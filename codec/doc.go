// Package codec provides binary encoding and decoding of evaluated Pkl
// documents.
//
// This package handles bidirectional conversion between the value model in
// the value package and the msgpack-based pkl binary encoding.
//
// # Wire Format Overview
//
// Primitives travel as bare msgpack values; every other kind is wrapped in
// an envelope, a msgpack array whose first element is a registry tag:
//
//	┌────────────────────────────────────────────────────────────┐
//	│ value.Value ←→ [Encoder / decoder] ←→ msgpack byte stream  │
//	└────────────────────────────────────────────────────────────┘
//
// # Envelope Shapes
//
//	Kind            Envelope
//	──────────────────────────────────────────────────────
//	null/bool/      bare msgpack primitive, no envelope
//	int/float/
//	string
//	bytes           [tag, bin]
//	duration        [tag, value:f64, unit:str]
//	datasize        [tag, value:f64, unit:str]
//	intseq          [tag, start:i64, end:i64, step:i64]
//	pair            [tag, first, second]
//	regex           [tag, pattern:str]
//	class           [tag, name:str, moduleUri:str]
//	typealias       [tag, name:str, moduleUri:str]
//	function        [tag]                    (encode only)
//	list/listing/   [tag, array(n) of value]
//	set
//	map/mapping     [tag, map(n) of key/value]
//	object          [tag, name:str, moduleUri:str, array(n) of member]
//	member          [memberTag, name-or-key-or-index, value]
//
// # Key Types
//
//	Encoder      - Writes values to an io.Writer
//	Hooks        - Construction callbacks driven by the decoder core
//	Member       - One decoded object member handed to an Object hook
//	ElementIter  - Pull iterator over a sequence body
//	EntryIter    - Pull iterator over a map body
//	MemberIter   - Pull iterator over an object body
//
// # Encoding Flow
//
//  1. Marshal(v) → []byte, or EncodeTo(w, v) for streaming
//  2. NewEncoder(w) plus the Start* methods for callers that produce
//     documents without building a value tree first
//
// # Decoding Flow
//
//  1. Decode(data, importer) → value.Value, or DecodeFrom(r, importer)
//  2. DecodeDataWith(data, hooks) / DecodeWith(r, hooks) for callers that
//     build their own representation
//
// The decoder core owns the grammar: it reads headers and tags, hands fixed
// fields and body iterators to exactly one hook per value, then discards any
// trailing envelope fields a newer producer may have appended. Unknown tags
// are a hard error; only trailing fields inside a known tag are skippable.
//
// # Thread Safety
//
// Marshal, Decode, and the other package functions are safe for concurrent
// use; each call owns its own state. An Encoder instance is NOT safe for
// concurrent use. Iterators are only valid inside the hook call that
// received them.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] format at object.port (offset 31): unknown tag 0x7f
//	[decode] io (offset 12): read from input (caused by: connection reset)
//
// The breadcrumb trail names containers and member keys down to the failure
// point; the offset is the exact consumed-byte position in the stream.
package codec
