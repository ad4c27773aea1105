package pklbinary

// Code is the tag byte identifying a value or member envelope on the wire.
//
// Every non-primitive value is encoded as a msgpack array whose first element
// is one of these codes. The array header length is authoritative: decoders
// read the fields they know and skip the rest, which is what allows newer
// encoders to append fields without breaking older decoders.
type Code byte

// Value envelope codes.
const (
	CodeObject    Code = 0x01
	CodeMap       Code = 0x02
	CodeMapping   Code = 0x03
	CodeList      Code = 0x04
	CodeListing   Code = 0x05
	CodeSet       Code = 0x06
	CodeDuration  Code = 0x07
	CodeDataSize  Code = 0x08
	CodePair      Code = 0x09
	CodeIntSeq    Code = 0x0A
	CodeRegex     Code = 0x0B
	CodeClass     Code = 0x0C
	CodeTypeAlias Code = 0x0D
	CodeFunction  Code = 0x0E
	CodeBytes     Code = 0x0F
)

// Member envelope codes. These appear only inside an object's member array.
const (
	CodeProperty Code = 0x10
	CodeEntry    Code = 0x11
	CodeElement  Code = 0x12
)

var codeNames = map[Code]string{
	CodeObject:    "object",
	CodeMap:       "map",
	CodeMapping:   "mapping",
	CodeList:      "list",
	CodeListing:   "listing",
	CodeSet:       "set",
	CodeDuration:  "duration",
	CodeDataSize:  "datasize",
	CodePair:      "pair",
	CodeIntSeq:    "intseq",
	CodeRegex:     "regex",
	CodeClass:     "class",
	CodeTypeAlias: "typealias",
	CodeFunction:  "function",
	CodeBytes:     "bytes",
	CodeProperty:  "property",
	CodeEntry:     "entry",
	CodeElement:   "element",
}

// String returns the breadcrumb name used in error trails and diagnostics.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValue reports whether c tags a value envelope.
func (c Code) IsValue() bool {
	return c >= CodeObject && c <= CodeBytes
}

// IsMember reports whether c tags an object member envelope.
func (c Code) IsMember() bool {
	return c >= CodeProperty && c <= CodeElement
}
