package codec

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/errors"
	"github.com/pkl-community/pklbinary-go/value"
)

// Decode decodes one complete document into the value model.
//
// imp resolves class and type alias references; it may be nil when the
// document is known to contain only dynamic objects. Trailing bytes after
// the document are an error.
func Decode(data []byte, imp pklbinary.Importer) (value.Value, error) {
	v, err := DecodeDataWith(data, &valueHooks{imp: imp})
	if err != nil {
		return nil, err
	}
	return v.(value.Value), nil
}

// DecodeFrom decodes one document from r into the value model.
//
// The reader may be consumed past the end of the document because of
// buffering.
func DecodeFrom(r io.Reader, imp pklbinary.Importer) (value.Value, error) {
	v, err := DecodeWith(r, &valueHooks{imp: imp})
	if err != nil {
		return nil, err
	}
	return v.(value.Value), nil
}

// DecodeDataWith decodes one document from data through custom construction
// hooks. Trailing bytes after the document are an error.
func DecodeDataWith(data []byte, hooks Hooks) (any, error) {
	in := getReader(bytes.NewReader(data))
	defer putReader(in)

	v, err := decodeStream(in, hooks)
	if err != nil {
		return nil, err
	}
	if rem := int64(len(data)) - in.Offset(); rem > 0 {
		return nil, errors.Format(nil, in.Offset(), "%d trailing bytes after document", rem)
	}
	return v, nil
}

// DecodeWith decodes one document from r through custom construction hooks
func DecodeWith(r io.Reader, hooks Hooks) (any, error) {
	in := getReader(r)
	defer putReader(in)
	return decodeStream(in, hooks)
}

func decodeStream(in *offsetReader, hooks Hooks) (any, error) {
	mdec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(mdec)
	if err := mdec.Reset(in); err != nil {
		return nil, errors.ReadFailed(0, err)
	}

	d := &decoder{dec: mdec, in: in, hooks: hooks}
	return d.decodeValue()
}

// decoder drives one decode pass. It owns the wire grammar and the
// breadcrumb trail; construction is delegated to hooks.
type decoder struct {
	dec   *msgpack.Decoder
	in    *offsetReader
	hooks Hooks
	path  []string
}

func (d *decoder) push(seg string) { d.path = append(d.path, seg) }
func (d *decoder) pop()            { d.path = d.path[:len(d.path)-1] }

// trail snapshots the breadcrumb path for an error
func (d *decoder) trail() []string {
	if len(d.path) == 0 {
		return nil
	}
	out := make([]string, len(d.path))
	copy(out, d.path)
	return out
}

func (d *decoder) offset() int64 { return d.in.Offset() }

// fail classifies a failure surfaced by the msgpack layer. Truncation is a
// format error; anything the source itself failed with is an IO error.
func (d *decoder) fail(err error) error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.UnexpectedEOF(d.trail(), d.offset())
	}
	if d.in.srcErr != nil {
		return errors.ReadFailed(d.offset(), err)
	}
	return errors.New(errors.PhaseDecode, errors.KindFormat).
		Path(d.trail()...).
		Offset(d.offset()).
		Detail("malformed msgpack data").
		Cause(err).
		Build()
}

// finish decorates an error returned by a construction hook
func (d *decoder) finish(v any, err error) (any, error) {
	if err == nil {
		return v, nil
	}
	if e, ok := err.(*errors.Error); ok {
		if e.Path == nil {
			e.Path = d.trail()
			e.Offset = d.offset()
		}
		return nil, e
	}
	return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
		Path(d.trail()...).
		Offset(d.offset()).
		Detail("build value").
		Cause(err).
		Build()
}

func (d *decoder) decodeValue() (any, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, d.fail(err)
	}

	switch {
	case c == msgpcode.Nil:
		if err := d.dec.DecodeNil(); err != nil {
			return nil, d.fail(err)
		}
		return d.finish(d.hooks.Null())

	case c == msgpcode.False, c == msgpcode.True:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return nil, d.fail(err)
		}
		return d.finish(d.hooks.Bool(b))

	case isIntCode(c):
		n, err := d.decodeInt(c)
		if err != nil {
			return nil, err
		}
		return d.finish(d.hooks.Int(n))

	case isFloatCode(c):
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return nil, d.fail(err)
		}
		return d.finish(d.hooks.Float(f))

	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return nil, d.fail(err)
		}
		return d.finish(d.hooks.String(s))

	case isArrayCode(c):
		return d.decodeEnvelope()

	case msgpcode.IsBin(c):
		return nil, errors.Format(d.trail(), d.offset(), "bare binary outside a bytes envelope")

	case isMapCode(c):
		return nil, errors.Format(d.trail(), d.offset(), "bare map outside an envelope")

	default:
		return nil, errors.Format(d.trail(), d.offset(), "unsupported msgpack code 0x%02x", c)
	}
}

// decodeAt decodes one value under a breadcrumb
func (d *decoder) decodeAt(crumb string) (any, error) {
	d.push(crumb)
	v, err := d.decodeValue()
	d.pop()
	return v, err
}

func (d *decoder) decodeEnvelope() (any, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, d.fail(err)
	}
	if n < 1 {
		return nil, errors.Format(d.trail(), d.offset(), "empty value envelope")
	}
	tag, err := d.tagByte()
	if err != nil {
		return nil, err
	}

	switch code := pklbinary.Code(tag); code {
	case pklbinary.CodeObject:
		return d.decodeObject(n)
	case pklbinary.CodeMap, pklbinary.CodeMapping:
		return d.decodeKeyed(code, n)
	case pklbinary.CodeList, pklbinary.CodeListing, pklbinary.CodeSet:
		return d.decodeSeq(code, n)
	case pklbinary.CodeDuration:
		return d.decodeQuantity(code, n)
	case pklbinary.CodeDataSize:
		return d.decodeQuantity(code, n)
	case pklbinary.CodePair:
		return d.decodePair(n)
	case pklbinary.CodeIntSeq:
		return d.decodeIntSeq(n)
	case pklbinary.CodeRegex:
		return d.decodeRegex(n)
	case pklbinary.CodeClass, pklbinary.CodeTypeAlias:
		return d.decodeRef(code, n)
	case pklbinary.CodeBytes:
		return d.decodeBytes(n)
	case pklbinary.CodeFunction:
		d.push("function")
		defer d.pop()
		return nil, errors.FunctionNotDecodable(d.trail(), d.offset())
	default:
		return nil, errors.UnknownTag(d.trail(), d.offset(), tag)
	}
}

func (d *decoder) decodeObject(n int) (any, error) {
	d.push("object")
	defer d.pop()
	if n < 4 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), "object", n, 4)
	}

	name, err := d.fieldString("object class name")
	if err != nil {
		return nil, err
	}
	uri, err := d.fieldString("object module uri")
	if err != nil {
		return nil, err
	}
	if err := d.checkIdentity("object", name, uri); err != nil {
		return nil, err
	}

	count, err := d.fieldArrayLen("member list")
	if err != nil {
		return nil, err
	}
	it := &MemberIter{d: d, count: count}
	v, err := d.finish(d.hooks.Object(name, uri, it))
	if err != nil {
		return nil, err
	}
	if err := it.drain(); err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 4); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) decodeSeq(code pklbinary.Code, n int) (any, error) {
	d.push(code.String())
	defer d.pop()
	if n < 2 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), code.String(), n, 2)
	}

	count, err := d.fieldArrayLen("element list")
	if err != nil {
		return nil, err
	}
	it := &ElementIter{d: d, count: count}

	var v any
	switch code {
	case pklbinary.CodeList:
		v, err = d.finish(d.hooks.List(it))
	case pklbinary.CodeListing:
		v, err = d.finish(d.hooks.Listing(it))
	default:
		v, err = d.finish(d.hooks.Set(it))
	}
	if err != nil {
		return nil, err
	}
	if err := it.drain(); err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 2); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) decodeKeyed(code pklbinary.Code, n int) (any, error) {
	d.push(code.String())
	defer d.pop()
	if n < 2 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), code.String(), n, 2)
	}

	count, err := d.fieldMapLen("entry list")
	if err != nil {
		return nil, err
	}
	it := &EntryIter{d: d, count: count}

	var v any
	if code == pklbinary.CodeMap {
		v, err = d.finish(d.hooks.Map(it))
	} else {
		v, err = d.finish(d.hooks.Mapping(it))
	}
	if err != nil {
		return nil, err
	}
	if err := it.drain(); err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 2); err != nil {
		return nil, err
	}
	return v, nil
}

func (d *decoder) decodeQuantity(code pklbinary.Code, n int) (any, error) {
	kind := code.String()
	d.push(kind)
	defer d.pop()
	if n < 3 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), kind, n, 3)
	}

	v, err := d.fieldFloat(kind + " value")
	if err != nil {
		return nil, err
	}
	unitStr, err := d.fieldString(kind + " unit")
	if err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 3); err != nil {
		return nil, err
	}

	if code == pklbinary.CodeDuration {
		unit, err := value.ParseDurationUnit(unitStr)
		if err != nil {
			return nil, errors.BadUnit(d.trail(), d.offset(), "duration", unitStr)
		}
		return d.finish(d.hooks.Duration(v, unit))
	}
	unit, err := value.ParseDataSizeUnit(unitStr)
	if err != nil {
		return nil, errors.BadUnit(d.trail(), d.offset(), "data size", unitStr)
	}
	return d.finish(d.hooks.DataSize(v, unit))
}

func (d *decoder) decodePair(n int) (any, error) {
	d.push("pair")
	defer d.pop()
	if n < 3 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), "pair", n, 3)
	}

	first, err := d.decodeAt("first")
	if err != nil {
		return nil, err
	}
	second, err := d.decodeAt("second")
	if err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 3); err != nil {
		return nil, err
	}
	return d.finish(d.hooks.Pair(first, second))
}

func (d *decoder) decodeIntSeq(n int) (any, error) {
	d.push("intseq")
	defer d.pop()
	if n < 4 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), "intseq", n, 4)
	}

	start, err := d.fieldInt("intseq start")
	if err != nil {
		return nil, err
	}
	end, err := d.fieldInt("intseq end")
	if err != nil {
		return nil, err
	}
	step, err := d.fieldInt("intseq step")
	if err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 4); err != nil {
		return nil, err
	}
	return d.finish(d.hooks.IntSeq(start, end, step))
}

func (d *decoder) decodeRegex(n int) (any, error) {
	d.push("regex")
	defer d.pop()
	if n < 2 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), "regex", n, 2)
	}

	pattern, err := d.fieldString("regex pattern")
	if err != nil {
		return nil, err
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, errors.Format(d.trail(), d.offset(), "regex pattern %q does not compile: %v", pattern, err)
	}
	if err := d.skipExtra(n - 2); err != nil {
		return nil, err
	}
	return d.finish(d.hooks.Regex(pattern))
}

func (d *decoder) decodeRef(code pklbinary.Code, n int) (any, error) {
	kind := code.String()
	d.push(kind)
	defer d.pop()
	if n < 3 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), kind, n, 3)
	}

	name, err := d.fieldString(kind + " name")
	if err != nil {
		return nil, err
	}
	uri, err := d.fieldString(kind + " module uri")
	if err != nil {
		return nil, err
	}
	if err := d.checkIdentity(kind, name, uri); err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 3); err != nil {
		return nil, err
	}

	if code == pklbinary.CodeClass {
		return d.finish(d.hooks.Class(name, uri))
	}
	return d.finish(d.hooks.TypeAlias(name, uri))
}

func (d *decoder) decodeBytes(n int) (any, error) {
	d.push("bytes")
	defer d.pop()
	if n < 2 {
		return nil, errors.ShortEnvelope(d.trail(), d.offset(), "bytes", n, 2)
	}

	b, err := d.fieldBin("bytes payload")
	if err != nil {
		return nil, err
	}
	if err := d.skipExtra(n - 2); err != nil {
		return nil, err
	}
	return d.finish(d.hooks.Bytes(b))
}

// checkIdentity validates a class name and module URI pair
func (d *decoder) checkIdentity(kind, name, uri string) error {
	if strings.TrimSpace(name) == "" {
		return errors.BlankIdentity(d.trail(), d.offset(), kind+" name")
	}
	if strings.TrimSpace(uri) == "" {
		return errors.BlankIdentity(d.trail(), d.offset(), kind+" module uri")
	}
	if _, err := url.Parse(uri); err != nil {
		return errors.Format(d.trail(), d.offset(), "%s module uri %q is not a valid URI", kind, uri)
	}
	return nil
}

// tagByte reads an envelope's tag element
func (d *decoder) tagByte() (byte, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return 0, d.fail(err)
	}
	if !isIntCode(c) {
		return 0, errors.Format(d.trail(), d.offset(), "envelope tag must be an integer, found %s", familyName(c))
	}
	n, err := d.decodeInt(c)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 0xff {
		return 0, errors.Format(d.trail(), d.offset(), "envelope tag %d out of range", n)
	}
	return byte(n), nil
}

// decodeInt reads any integer form, rejecting uint64 values beyond int64
func (d *decoder) decodeInt(c byte) (int64, error) {
	if c == msgpcode.Uint64 {
		u, err := d.dec.DecodeUint64()
		if err != nil {
			return 0, d.fail(err)
		}
		if u > math.MaxInt64 {
			return 0, errors.Format(d.trail(), d.offset(), "integer %d overflows int64", u)
		}
		return int64(u), nil
	}
	n, err := d.dec.DecodeInt64()
	if err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

// skipExtra discards trailing envelope fields appended by newer encoders
func (d *decoder) skipExtra(n int) error {
	for i := 0; i < n; i++ {
		if err := d.dec.Skip(); err != nil {
			return d.fail(err)
		}
	}
	return nil
}

func (d *decoder) fieldString(what string) (string, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return "", d.fail(err)
	}
	if !msgpcode.IsString(c) {
		return "", errors.Format(d.trail(), d.offset(), "%s must be a string, found %s", what, familyName(c))
	}
	s, err := d.dec.DecodeString()
	if err != nil {
		return "", d.fail(err)
	}
	return s, nil
}

func (d *decoder) fieldFloat(what string) (float64, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return 0, d.fail(err)
	}
	if !isFloatCode(c) {
		return 0, errors.Format(d.trail(), d.offset(), "%s must be a float, found %s", what, familyName(c))
	}
	f, err := d.dec.DecodeFloat64()
	if err != nil {
		return 0, d.fail(err)
	}
	return f, nil
}

func (d *decoder) fieldInt(what string) (int64, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return 0, d.fail(err)
	}
	if !isIntCode(c) {
		return 0, errors.Format(d.trail(), d.offset(), "%s must be an integer, found %s", what, familyName(c))
	}
	return d.decodeInt(c)
}

func (d *decoder) fieldArrayLen(what string) (int, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return 0, d.fail(err)
	}
	if !isArrayCode(c) {
		return 0, errors.Format(d.trail(), d.offset(), "%s must be an array, found %s", what, familyName(c))
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

func (d *decoder) fieldMapLen(what string) (int, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return 0, d.fail(err)
	}
	if !isMapCode(c) {
		return 0, errors.Format(d.trail(), d.offset(), "%s must be a map, found %s", what, familyName(c))
	}
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return 0, d.fail(err)
	}
	return n, nil
}

func (d *decoder) fieldBin(what string) ([]byte, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, d.fail(err)
	}
	if !msgpcode.IsBin(c) {
		return nil, errors.Format(d.trail(), d.offset(), "%s must be binary, found %s", what, familyName(c))
	}
	b, err := d.dec.DecodeBytes()
	if err != nil {
		return nil, d.fail(err)
	}
	return b, nil
}

func isIntCode(c byte) bool {
	return msgpcode.IsFixedNum(c) ||
		c == msgpcode.Uint8 || c == msgpcode.Uint16 || c == msgpcode.Uint32 || c == msgpcode.Uint64 ||
		c == msgpcode.Int8 || c == msgpcode.Int16 || c == msgpcode.Int32 || c == msgpcode.Int64
}

func isFloatCode(c byte) bool {
	return c == msgpcode.Float || c == msgpcode.Double
}

func isArrayCode(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

func isMapCode(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

// familyName names a msgpack format family for error messages
func familyName(c byte) string {
	switch {
	case c == msgpcode.Nil:
		return "nil"
	case c == msgpcode.False || c == msgpcode.True:
		return "bool"
	case isIntCode(c):
		return "int"
	case isFloatCode(c):
		return "float"
	case msgpcode.IsString(c):
		return "string"
	case msgpcode.IsBin(c):
		return "binary"
	case isArrayCode(c):
		return "array"
	case isMapCode(c):
		return "map"
	case msgpcode.IsExt(c):
		return "ext"
	default:
		return fmt.Sprintf("code 0x%02x", c)
	}
}
