package render

import (
	"fmt"
	"strconv"

	pklbinary "github.com/pkl-community/pklbinary-go"
	"github.com/pkl-community/pklbinary-go/plain"
)

// object is the lowered ordered mapping shared by the renderers.
// Field values are scalars (nil, bool, int64, float64, string,
// []byte), []any sequences, or nested *object mappings.
type object struct {
	fields []field
}

type field struct {
	key string
	val any
}

// lower maps a plain form onto the renderable subset. Single-purpose
// forms become small tagged mappings so no information silently
// disappears in the output.
func lower(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, int64, float64, string, []byte:
		return t, nil
	case plain.Duration:
		return &object{fields: []field{
			{"value", t.Value},
			{"unit", t.Unit},
		}}, nil
	case plain.DataSize:
		return &object{fields: []field{
			{"value", t.Value},
			{"unit", t.Unit},
		}}, nil
	case plain.IntSeq:
		return &object{fields: []field{
			{"start", t.Start},
			{"end", t.End},
			{"step", t.Step},
		}}, nil
	case plain.Pair:
		first, err := lower(t.First)
		if err != nil {
			return nil, err
		}
		second, err := lower(t.Second)
		if err != nil {
			return nil, err
		}
		return &object{fields: []field{
			{"first", first},
			{"second", second},
		}}, nil
	case plain.Regex:
		return &object{fields: []field{
			{"pattern", t.Pattern},
		}}, nil
	case plain.Class:
		return &object{fields: []field{
			{"name", t.Name},
			{"moduleUri", t.ModuleURI},
		}}, nil
	case plain.TypeAlias:
		return &object{fields: []field{
			{"name", t.Name},
			{"moduleUri", t.ModuleURI},
		}}, nil
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			low, err := lower(el)
			if err != nil {
				return nil, err
			}
			out[i] = low
		}
		return out, nil
	case *plain.OrderedMap:
		obj := &object{fields: make([]field, 0, t.Len())}
		for _, e := range t.Entries() {
			low, err := lower(e.Value)
			if err != nil {
				return nil, err
			}
			obj.fields = append(obj.fields, field{plain.Key(e.Key), low})
		}
		return obj, nil
	case *plain.Object:
		return lowerObject(t)
	default:
		return nil, fmt.Errorf("render: unsupported value %T", v)
	}
}

func lowerObject(o *plain.Object) (any, error) {
	elementsOnly := len(o.Members) > 0
	for _, m := range o.Members {
		if m.Kind != pklbinary.CodeElement {
			elementsOnly = false
			break
		}
	}
	if elementsOnly {
		out := make([]any, 0, len(o.Members))
		for _, m := range o.Members {
			low, err := lower(m.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, low)
		}
		return out, nil
	}

	obj := &object{fields: make([]field, 0, len(o.Members))}
	for _, m := range o.Members {
		var key string
		switch m.Kind {
		case pklbinary.CodeProperty:
			key = m.Name
		case pklbinary.CodeEntry:
			key = plain.Key(m.Key)
		case pklbinary.CodeElement:
			key = "[" + strconv.FormatInt(m.Index, 10) + "]"
		}
		low, err := lower(m.Value)
		if err != nil {
			return nil, err
		}
		obj.fields = append(obj.fields, field{key, low})
	}
	return obj, nil
}
