package render

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// cborMode is configured with Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. The same document always produces
// identical bytes, so CBOR output is safe to hash or diff.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("render: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBOR renders doc to w using Core Deterministic Encoding. Mapping
// keys are sorted, not kept in document order.
func CBOR(w io.Writer, doc any) error {
	root, err := lower(doc)
	if err != nil {
		return err
	}
	return cborMode.NewEncoder(w).Encode(cborValue(root))
}

// cborValue rebuilds the lowered tree out of plain Go values. Order
// is dropped here; the deterministic encoder sorts keys anyway.
func cborValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = cborValue(el)
		}
		return out
	case *object:
		m := make(map[string]any, len(t.fields))
		for _, f := range t.fields {
			m[f.key] = cborValue(f.val)
		}
		return m
	default:
		return t
	}
}
