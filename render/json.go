package render

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// JSON renders doc to w. With compact set the output is a single
// line; otherwise it is indented with two spaces. Member order is
// preserved. Rendering fails on NaN and infinities, which JSON
// cannot represent.
func JSON(w io.Writer, doc any, compact bool) error {
	root, err := lower(doc)
	if err != nil {
		return err
	}
	jw := newJSONWriter(w, compact)
	jw.value(root)
	jw.raw("\n")
	if jw.err != nil {
		return jw.err
	}
	return jw.bw.Flush()
}

// jsonWriter emits JSON text directly so mapping fields come out in
// document order. Scalars go through encoding/json for escaping and
// number formatting; everything structural is written by hand.
type jsonWriter struct {
	bw      *bufio.Writer
	buf     bytes.Buffer
	enc     *json.Encoder
	compact bool
	depth   int
	err     error
}

func newJSONWriter(w io.Writer, compact bool) *jsonWriter {
	jw := &jsonWriter{bw: bufio.NewWriter(w), compact: compact}
	jw.enc = json.NewEncoder(&jw.buf)
	jw.enc.SetEscapeHTML(false)
	return jw
}

func (jw *jsonWriter) raw(s string) {
	if jw.err != nil {
		return
	}
	_, jw.err = jw.bw.WriteString(s)
}

func (jw *jsonWriter) scalar(v any) {
	if jw.err != nil {
		return
	}
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		jw.err = fmt.Errorf("render: cannot represent %v as JSON", f)
		return
	}
	jw.buf.Reset()
	if err := jw.enc.Encode(v); err != nil {
		jw.err = err
		return
	}
	// Encode appends a newline after every value.
	b := bytes.TrimSuffix(jw.buf.Bytes(), []byte("\n"))
	_, jw.err = jw.bw.Write(b)
}

func (jw *jsonWriter) newline() {
	if jw.compact {
		return
	}
	jw.raw("\n")
	for i := 0; i < jw.depth; i++ {
		jw.raw("  ")
	}
}

func (jw *jsonWriter) value(v any) {
	switch t := v.(type) {
	case []any:
		jw.seq(t)
	case *object:
		jw.object(t)
	default:
		jw.scalar(t)
	}
}

func (jw *jsonWriter) seq(vs []any) {
	if len(vs) == 0 {
		jw.raw("[]")
		return
	}
	jw.raw("[")
	jw.depth++
	for i, v := range vs {
		if i > 0 {
			jw.raw(",")
		}
		jw.newline()
		jw.value(v)
	}
	jw.depth--
	jw.newline()
	jw.raw("]")
}

func (jw *jsonWriter) object(o *object) {
	if len(o.fields) == 0 {
		jw.raw("{}")
		return
	}
	jw.raw("{")
	jw.depth++
	for i, f := range o.fields {
		if i > 0 {
			jw.raw(",")
		}
		jw.newline()
		jw.scalar(f.key)
		if jw.compact {
			jw.raw(":")
		} else {
			jw.raw(": ")
		}
		jw.value(f.val)
	}
	jw.depth--
	jw.newline()
	jw.raw("}")
}
