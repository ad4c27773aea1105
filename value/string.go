package value

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind returns the lowercase kind name of a value, matching the breadcrumb
// names used in error trails. A nil Value reports "null".
func Kind(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	case Duration:
		return "duration"
	case DataSize:
		return "datasize"
	case IntSeq:
		return "intseq"
	case Pair:
		return "pair"
	case Regex:
		return "regex"
	case Class:
		return "class"
	case TypeAlias:
		return "typealias"
	case Function:
		return "function"
	case List:
		return "list"
	case Listing:
		return "listing"
	case Set:
		return "set"
	case Map:
		return "map"
	case Mapping:
		return "mapping"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// String renders the duration in Pkl literal form, e.g. "2.5.min"
func (d Duration) String() string {
	return strconv.FormatFloat(d.Value, 'g', -1, 64) + "." + d.Unit.String()
}

// String renders the size in Pkl literal form, e.g. "4.mib"
func (d DataSize) String() string {
	return strconv.FormatFloat(d.Value, 'g', -1, 64) + "." + d.Unit.String()
}

// String renders the sequence in Pkl literal form
func (s IntSeq) String() string {
	if s.Step == 1 || s.Step == 0 {
		return fmt.Sprintf("IntSeq(%d, %d)", s.Start, s.End)
	}
	return fmt.Sprintf("IntSeq(%d, %d).step(%d)", s.Start, s.End, s.Step)
}

// String renders the pattern in Pkl literal form
func (r Regex) String() string {
	return fmt.Sprintf("Regex(%q)", r.Pattern)
}

// Compile compiles the pattern with the standard regexp package
func (r Regex) Compile() (*regexp.Regexp, error) {
	return regexp.Compile(r.Pattern)
}
