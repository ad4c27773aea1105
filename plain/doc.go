// Package plain decodes pkl binary documents into plain Go data.
//
// It is the importer-free counterpart of codec.Decode: class and type alias
// references stay symbolic (small structs holding name and module URI) and
// typed objects are reconstructed structurally without resolving their class.
// This is the decoder tooling wants: converters, inspectors, and diff tools
// that have no module knowledge.
//
// Primitives map onto nil, bool, int64, float64, string, and []byte. Special
// forms map onto small structs (Duration, DataSize, IntSeq, Pair, Regex,
// Class, TypeAlias). Sequences become []any; maps and mappings become
// *OrderedMap; objects become *Object, both preserving wire order.
//
//	doc, err := plain.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	obj := doc.(*plain.Object)
//
// The same wire grammar and error reporting applies as for codec.Decode:
// malformed input fails with a structured error carrying the breadcrumb
// trail and byte offset.
package plain
