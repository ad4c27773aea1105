package diag

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	pklbinary "github.com/pkl-community/pklbinary-go"
)

const (
	stringPreviewLen = 40
	binPreviewLen    = 16
)

// Dump writes an annotated line-per-item dump of data to w. It
// returns an error when data is not well-formed msgpack or when bytes
// remain after the document; grammar problems inside well-formed
// msgpack are flagged in the output instead.
func Dump(w io.Writer, data []byte) error {
	src := &scanner{data: data}
	d := &dumper{
		w:   bufio.NewWriter(w),
		src: src,
		dec: msgpack.NewDecoder(src),
	}

	err := d.value(0, "")
	if err == nil && src.pos < len(data) {
		err = d.fail(0, "%d trailing bytes after document", len(data)-src.pos)
	}
	if ferr := d.w.Flush(); err == nil {
		err = ferr
	}
	if err == nil {
		err = d.werr
	}
	return err
}

// scanner is the decoder's source. Implementing io.ByteScanner keeps
// the msgpack layer from adding its own buffer, so pos is always the
// exact wire offset of the next item.
type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	return n, nil
}

func (s *scanner) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}

func (s *scanner) UnreadByte() error {
	if s.pos == 0 {
		return fmt.Errorf("diag: unread past start")
	}
	s.pos--
	return nil
}

type dumper struct {
	w    *bufio.Writer
	src  *scanner
	dec  *msgpack.Decoder
	werr error
}

// fieldKind says how an envelope field is walked.
type fieldKind int

const (
	scalarField  fieldKind = iota // one msgpack item, dumped as is
	valueField                    // a nested document value
	seqField                      // msgpack array of document values
	entriesField                  // msgpack map of document key/value pairs
)

type fieldSpec struct {
	name string
	kind fieldKind
}

// envelopeFields is the wire grammar: the ordered fields each tag
// carries after the tag itself.
var envelopeFields = map[pklbinary.Code][]fieldSpec{
	pklbinary.CodeObject:    {{"name", scalarField}, {"moduleUri", scalarField}, {"members", seqField}},
	pklbinary.CodeMap:       {{"entries", entriesField}},
	pklbinary.CodeMapping:   {{"entries", entriesField}},
	pklbinary.CodeList:      {{"elements", seqField}},
	pklbinary.CodeListing:   {{"elements", seqField}},
	pklbinary.CodeSet:       {{"elements", seqField}},
	pklbinary.CodeDuration:  {{"value", scalarField}, {"unit", scalarField}},
	pklbinary.CodeDataSize:  {{"value", scalarField}, {"unit", scalarField}},
	pklbinary.CodePair:      {{"first", valueField}, {"second", valueField}},
	pklbinary.CodeIntSeq:    {{"start", scalarField}, {"end", scalarField}, {"step", scalarField}},
	pklbinary.CodeRegex:     {{"pattern", scalarField}},
	pklbinary.CodeClass:     {{"name", scalarField}, {"moduleUri", scalarField}},
	pklbinary.CodeTypeAlias: {{"name", scalarField}, {"moduleUri", scalarField}},
	pklbinary.CodeFunction:  {},
	pklbinary.CodeBytes:     {{"data", scalarField}},
	pklbinary.CodeProperty:  {{"name", scalarField}, {"value", valueField}},
	pklbinary.CodeEntry:     {{"key", valueField}, {"value", valueField}},
	pklbinary.CodeElement:   {{"index", scalarField}, {"value", valueField}},
}

// value walks one document value: arrays are envelopes, everything
// else dumps as the msgpack item it is.
func (d *dumper) value(depth int, label string) error {
	at := d.src.pos
	c, err := d.dec.PeekCode()
	if err != nil {
		return d.failErr(depth, err)
	}
	if isArrayCode(c) {
		return d.envelope(at, depth, label)
	}
	return d.generic(depth, label)
}

func (d *dumper) envelope(at, depth int, label string) error {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return d.failErr(depth, err)
	}
	if n == 0 {
		d.line(at, depth, "%s! empty envelope", pfx(label))
		return nil
	}

	c, err := d.dec.PeekCode()
	if err != nil {
		return d.failErr(depth, err)
	}
	if !isIntCode(c) {
		d.line(at, depth, "%s! envelope tag is not an integer", pfx(label))
		return d.generics(depth+1, "", n)
	}
	tag, err := d.dec.DecodeInt64()
	if err != nil {
		return d.failErr(depth, err)
	}

	code := pklbinary.Code(tag)
	specs, known := envelopeFields[code]
	if !known {
		d.line(at, depth, "%s! unknown tag 0x%02x fields=%d", pfx(label), tag, n-1)
		return d.generics(depth+1, "", n-1)
	}

	head := pfx(label) + code.String()
	got := n - 1
	if got < len(specs) {
		head += fmt.Sprintf(" ! %d of %d fields", got, len(specs))
	} else if got > len(specs) {
		head += fmt.Sprintf(" extra=%d", got-len(specs))
	}
	d.line(at, depth, "%s", head)

	for i := 0; i < got && i < len(specs); i++ {
		if err := d.field(depth+1, specs[i]); err != nil {
			return err
		}
	}
	if got > len(specs) {
		return d.generics(depth+1, "extra", got-len(specs))
	}
	return nil
}

func (d *dumper) field(depth int, spec fieldSpec) error {
	switch spec.kind {
	case valueField:
		return d.value(depth, spec.name)

	case seqField:
		at := d.src.pos
		c, err := d.dec.PeekCode()
		if err != nil {
			return d.failErr(depth, err)
		}
		if !isArrayCode(c) {
			return d.generic(depth, spec.name)
		}
		n, err := d.dec.DecodeArrayLen()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%s: array len=%d", spec.name, n)
		for i := 0; i < n; i++ {
			if err := d.value(depth+1, ""); err != nil {
				return err
			}
		}
		return nil

	case entriesField:
		at := d.src.pos
		c, err := d.dec.PeekCode()
		if err != nil {
			return d.failErr(depth, err)
		}
		if !isMapCode(c) {
			return d.generic(depth, spec.name)
		}
		n, err := d.dec.DecodeMapLen()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%s: map len=%d", spec.name, n)
		for i := 0; i < n; i++ {
			if err := d.value(depth+1, "key"); err != nil {
				return err
			}
			if err := d.value(depth+1, "value"); err != nil {
				return err
			}
		}
		return nil

	default:
		return d.generic(depth, spec.name)
	}
}

// generic dumps one msgpack item with no grammar applied. Unknown
// envelopes and extra fields land here.
func (d *dumper) generic(depth int, label string) error {
	at := d.src.pos
	c, err := d.dec.PeekCode()
	if err != nil {
		return d.failErr(depth, err)
	}

	switch {
	case isArrayCode(c):
		n, err := d.dec.DecodeArrayLen()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sarray len=%d", pfx(label), n)
		return d.generics(depth+1, "", n)

	case isMapCode(c):
		n, err := d.dec.DecodeMapLen()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%smap len=%d", pfx(label), n)
		for i := 0; i < n; i++ {
			if err := d.generic(depth+1, "key"); err != nil {
				return err
			}
			if err := d.generic(depth+1, "value"); err != nil {
				return err
			}
		}
		return nil

	default:
		return d.scalar(at, depth, label, c)
	}
}

func (d *dumper) generics(depth int, label string, n int) error {
	for i := 0; i < n; i++ {
		if err := d.generic(depth, label); err != nil {
			return err
		}
	}
	return nil
}

func (d *dumper) scalar(at, depth int, label string, c byte) error {
	switch {
	case c == msgpcode.Nil:
		if err := d.dec.DecodeNil(); err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%snull", pfx(label))

	case c == msgpcode.False || c == msgpcode.True:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sbool %t", pfx(label), b)

	case isIntCode(c):
		n, err := d.dec.DecodeInt64()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sint %d", pfx(label), n)

	case isFloatCode(c):
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sfloat %v", pfx(label), f)

	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sstring %s", pfx(label), preview(s))

	case msgpcode.IsBin(c):
		b, err := d.dec.DecodeBytes()
		if err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%sbin %s", pfx(label), binPreview(b))

	default:
		if err := d.dec.Skip(); err != nil {
			return d.failErr(depth, err)
		}
		d.line(at, depth, "%smsgpack item code=0x%02x", pfx(label), c)
	}
	return nil
}

// fail writes the failure as the dump's last line and returns it.
func (d *dumper) fail(depth int, format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	d.line(d.src.pos, depth, "! %v", err)
	return err
}

func (d *dumper) failErr(depth int, err error) error {
	return d.fail(depth, "%s", endOfData(err))
}

func (d *dumper) line(at, depth int, format string, args ...any) {
	if d.werr != nil {
		return
	}
	if _, err := fmt.Fprintf(d.w, "%08x  ", at); err != nil {
		d.werr = err
		return
	}
	for i := 0; i < depth; i++ {
		if _, err := d.w.WriteString("  "); err != nil {
			d.werr = err
			return
		}
	}
	if _, err := fmt.Fprintf(d.w, format, args...); err != nil {
		d.werr = err
		return
	}
	if err := d.w.WriteByte('\n'); err != nil {
		d.werr = err
	}
}

func pfx(label string) string {
	if label == "" {
		return ""
	}
	return label + ": "
}

func preview(s string) string {
	if len(s) <= stringPreviewLen {
		return strconv.Quote(s)
	}
	return strconv.Quote(s[:stringPreviewLen]) + fmt.Sprintf("... (%d bytes)", len(s))
}

func binPreview(b []byte) string {
	if len(b) == 0 {
		return "len=0"
	}
	if len(b) <= binPreviewLen {
		return fmt.Sprintf("len=%d %s", len(b), hex.EncodeToString(b))
	}
	return fmt.Sprintf("len=%d %s...", len(b), hex.EncodeToString(b[:binPreviewLen]))
}

func endOfData(err error) string {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return "unexpected end of data"
	}
	return err.Error()
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
