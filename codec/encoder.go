package codec

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/errors"
	"github.com/pkl-community/pklbinary-go/value"
)

// Encoder writes values to a sink in the pkl binary encoding.
//
// Encode walks a value.Value tree; the individual methods expose the wire
// grammar directly for callers producing documents without building a tree
// first. An Encoder is single-use per document and not safe for concurrent
// use. The only failure mode is a sink write failure.
type Encoder struct {
	enc *msgpack.Encoder
}

// NewEncoder returns an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: msgpack.NewEncoder(w)}
}

// Marshal encodes a single value to a byte slice
func Marshal(v value.Value) ([]byte, error) {
	buf := getBuf()
	defer putBuf(buf)

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)
	enc.Reset(buf)

	if err := (&Encoder{enc: enc}).Encode(v); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// EncodeTo encodes a single value to w
func EncodeTo(w io.Writer, v value.Value) error {
	return NewEncoder(w).Encode(v)
}

// Encode writes one complete value
func (e *Encoder) Encode(v value.Value) error {
	switch x := v.(type) {
	case nil, value.Null:
		return e.Null()
	case value.Bool:
		return e.Bool(bool(x))
	case value.Int:
		return e.Int(int64(x))
	case value.Float:
		return e.Float(float64(x))
	case value.String:
		return e.String(string(x))
	case value.Bytes:
		return e.Bytes(x)
	case value.Duration:
		return e.Duration(x.Value, x.Unit)
	case value.DataSize:
		return e.DataSize(x.Value, x.Unit)
	case value.IntSeq:
		return e.IntSeq(x.Start, x.End, x.Step)
	case value.Pair:
		if err := e.StartPair(); err != nil {
			return err
		}
		if err := e.Encode(x.First); err != nil {
			return err
		}
		return e.Encode(x.Second)
	case value.Regex:
		return e.Regex(x.Pattern)
	case value.Class:
		return e.ClassRef(x.Name, x.ModuleURI)
	case value.TypeAlias:
		return e.TypeAliasRef(x.Name, x.ModuleURI)
	case value.Function:
		return e.Function()
	case value.List:
		return e.encodeElems(pklbinary.CodeList, x)
	case value.Listing:
		return e.encodeElems(pklbinary.CodeListing, x)
	case value.Set:
		return e.encodeElems(pklbinary.CodeSet, x)
	case value.Map:
		return e.encodeEntries(pklbinary.CodeMap, x)
	case value.Mapping:
		return e.encodeEntries(pklbinary.CodeMapping, x)
	case value.Object:
		return e.encodeObject(x)
	default:
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("cannot encode %T", v))
	}
}

func (e *Encoder) encodeElems(code pklbinary.Code, elems []value.Value) error {
	if err := e.startElems(code, len(elems)); err != nil {
		return err
	}
	for _, el := range elems {
		if err := e.Encode(el); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeEntries(code pklbinary.Code, entries []value.MapEntry) error {
	if err := e.startEntries(code, len(entries)); err != nil {
		return err
	}
	for _, en := range entries {
		if err := e.Encode(en.Key); err != nil {
			return err
		}
		if err := e.Encode(en.Value); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeObject(obj value.Object) error {
	if err := e.StartObject(obj.Name, obj.ModuleURI, len(obj.Members)); err != nil {
		return err
	}
	for _, m := range obj.Members {
		switch mm := m.(type) {
		case value.Property:
			if err := e.Property(mm.Name); err != nil {
				return err
			}
			if err := e.Encode(mm.Value); err != nil {
				return err
			}
		case value.Entry:
			if err := e.StartEntry(); err != nil {
				return err
			}
			if err := e.Encode(mm.Key); err != nil {
				return err
			}
			if err := e.Encode(mm.Value); err != nil {
				return err
			}
		case value.Element:
			if err := e.Element(mm.Index); err != nil {
				return err
			}
			if err := e.Encode(mm.Value); err != nil {
				return err
			}
		default:
			return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("cannot encode member %T", m))
		}
	}
	return nil
}

// Null writes the null value
func (e *Encoder) Null() error {
	return e.wrap(e.enc.EncodeNil())
}

// Bool writes a boolean
func (e *Encoder) Bool(b bool) error {
	return e.wrap(e.enc.EncodeBool(b))
}

// Int writes an integer in its smallest msgpack form
func (e *Encoder) Int(n int64) error {
	return e.wrap(e.enc.EncodeInt(n))
}

// Float writes a 64-bit float
func (e *Encoder) Float(f float64) error {
	return e.wrap(e.enc.EncodeFloat64(f))
}

// String writes a string
func (e *Encoder) String(s string) error {
	return e.wrap(e.enc.EncodeString(s))
}

// Bytes writes a byte array envelope
func (e *Encoder) Bytes(b []byte) error {
	if err := e.header(2, pklbinary.CodeBytes); err != nil {
		return err
	}
	if b == nil {
		// EncodeBytes writes nil as the nil code, which decodes as Null
		b = []byte{}
	}
	return e.wrap(e.enc.EncodeBytes(b))
}

// Duration writes a duration envelope
func (e *Encoder) Duration(v float64, unit value.DurationUnit) error {
	if unit.Factor() == 0 {
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("invalid duration unit %d", int(unit)))
	}
	if err := e.header(3, pklbinary.CodeDuration); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeFloat64(v)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeString(unit.String()))
}

// DataSize writes a data size envelope
func (e *Encoder) DataSize(v float64, unit value.DataSizeUnit) error {
	if unit.Factor() == 0 {
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("invalid data size unit %d", int(unit)))
	}
	if err := e.header(3, pklbinary.CodeDataSize); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeFloat64(v)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeString(unit.String()))
}

// IntSeq writes an integer sequence envelope
func (e *Encoder) IntSeq(start, end, step int64) error {
	if err := e.header(4, pklbinary.CodeIntSeq); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeInt(start)); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeInt(end)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeInt(step))
}

// Regex writes a regex envelope holding the source pattern
func (e *Encoder) Regex(pattern string) error {
	if err := e.header(2, pklbinary.CodeRegex); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeString(pattern))
}

// ClassRef writes a class descriptor envelope
func (e *Encoder) ClassRef(name, moduleURI string) error {
	return e.ref(pklbinary.CodeClass, name, moduleURI)
}

// TypeAliasRef writes a type alias descriptor envelope
func (e *Encoder) TypeAliasRef(name, moduleURI string) error {
	return e.ref(pklbinary.CodeTypeAlias, name, moduleURI)
}

func (e *Encoder) ref(code pklbinary.Code, name, moduleURI string) error {
	if err := e.header(3, code); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeString(name)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeString(moduleURI))
}

// Function writes the opaque function marker
func (e *Encoder) Function() error {
	return e.header(1, pklbinary.CodeFunction)
}

// StartPair opens a pair envelope; the caller writes exactly two values
func (e *Encoder) StartPair() error {
	return e.header(3, pklbinary.CodePair)
}

// StartList opens a list envelope; the caller writes n values
func (e *Encoder) StartList(n int) error {
	return e.startElems(pklbinary.CodeList, n)
}

// StartListing opens a listing envelope; the caller writes n values
func (e *Encoder) StartListing(n int) error {
	return e.startElems(pklbinary.CodeListing, n)
}

// StartSet opens a set envelope; the caller writes n values
func (e *Encoder) StartSet(n int) error {
	return e.startElems(pklbinary.CodeSet, n)
}

// StartMap opens a map envelope; the caller writes n key/value pairs
func (e *Encoder) StartMap(n int) error {
	return e.startEntries(pklbinary.CodeMap, n)
}

// StartMapping opens a mapping envelope; the caller writes n key/value pairs
func (e *Encoder) StartMapping(n int) error {
	return e.startEntries(pklbinary.CodeMapping, n)
}

func (e *Encoder) startElems(code pklbinary.Code, n int) error {
	if err := e.header(2, code); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeArrayLen(n))
}

func (e *Encoder) startEntries(code pklbinary.Code, n int) error {
	if err := e.header(2, code); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeMapLen(n))
}

// StartObject opens an object envelope; the caller writes the declared
// number of member envelopes via Property, StartEntry, and Element
func (e *Encoder) StartObject(name, moduleURI string, members int) error {
	if err := e.header(4, pklbinary.CodeObject); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeString(name)); err != nil {
		return err
	}
	if err := e.wrap(e.enc.EncodeString(moduleURI)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeArrayLen(members))
}

// Property opens a property member envelope; the caller writes one value
func (e *Encoder) Property(name string) error {
	if err := e.header(3, pklbinary.CodeProperty); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeString(name))
}

// StartEntry opens an entry member envelope; the caller writes the key and
// then the value
func (e *Encoder) StartEntry() error {
	return e.header(3, pklbinary.CodeEntry)
}

// Element opens an element member envelope; the caller writes one value
func (e *Encoder) Element(index int64) error {
	if err := e.header(3, pklbinary.CodeElement); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeInt(index))
}

// header writes an envelope's array header and tag
func (e *Encoder) header(n int, code pklbinary.Code) error {
	if err := e.wrap(e.enc.EncodeArrayLen(n)); err != nil {
		return err
	}
	return e.wrap(e.enc.EncodeInt(int64(code)))
}

func (e *Encoder) wrap(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	return errors.WriteFailed(err)
}
