// Package value defines the evaluated Pkl value model.
//
// A document is a tree of Value implementations. The union is closed:
//
//	Null Bool Int Float String          primitives
//	Bytes                               byte arrays
//	Duration DataSize                   quantity with unit
//	IntSeq Pair Regex                   small composites
//	Class TypeAlias Function            descriptors and opaque functions
//	List Listing Set                    ordered collections
//	Map Mapping                         keyed collections
//	Object                              class identity plus ordered members
//
// Object members form their own closed union (Property, Entry, Element).
// Typed objects carry only properties; an object with the dynamic identity
// (class "Dynamic" from module "pkl:base") may carry all three.
//
// Values are plain data with no behavior beyond small conveniences (unit
// conversion, regex compilation, structural Equal). Construction performs no
// validation; the codec validates on decode.
package value
