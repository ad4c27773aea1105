package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkl-community/pklbinary-go/codec"
	"github.com/pkl-community/pklbinary-go/importer"
	"github.com/pkl-community/pklbinary-go/plain"
	"github.com/pkl-community/pklbinary-go/render"
	"github.com/pkl-community/pklbinary-go/value"
)

func convert(opts options) error {
	data, err := readInput(opts.input)
	if err != nil {
		return err
	}

	switch opts.from {
	case "binary":
	case "json":
		v, err := fromJSON(data)
		if err != nil {
			return err
		}
		// Everything downstream speaks the wire encoding.
		data, err = codec.Marshal(v)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown input format %q (want binary or json)", opts.from)
	}

	var buf bytes.Buffer
	binary := false

	switch opts.to {
	case "json", "yaml", "cbor":
		doc, err := plain.Decode(data)
		if err != nil {
			return err
		}
		switch opts.to {
		case "json":
			err = render.JSON(&buf, doc, opts.compact)
		case "yaml":
			err = render.YAML(&buf, doc)
		case "cbor":
			binary = true
			err = render.CBOR(&buf, doc)
		}
		if err != nil {
			return err
		}

	case "binary":
		binary = true
		// Decode and re-encode: validates the document and writes it
		// back in normalized form.
		v, err := codec.Decode(data, importer.Trusting{})
		if err != nil {
			return err
		}
		out, err := codec.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(out)

	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, cbor, or binary)", opts.to)
	}

	return writeOutput(opts.output, buf.Bytes(), binary, opts.compress)
}

// fromJSON parses a JSON document into the value model. Objects
// become dynamic objects with one property per key, in document
// order; arrays become lists. Integral numbers become ints,
// everything else a float.
func fromJSON(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseJSON(dec)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse json: trailing data after document")
	}
	return v, nil
}

func parseJSON(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("unexpected end of document")
	}
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var elems value.List
			for dec.More() {
				el, err := parseJSON(dec)
				if err != nil {
					return nil, err
				}
				elems = append(elems, el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return elems, nil

		case '{':
			obj := value.NewDynamic()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := parseJSON(dec)
				if err != nil {
					return nil, err
				}
				obj.Members = append(obj.Members, value.Property{Name: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil

		default:
			return nil, fmt.Errorf("unexpected %q", t.String())
		}

	case bool:
		return value.Bool(t), nil

	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return value.Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("bad number %q", t.String())
		}
		return value.Float(f), nil

	case string:
		return value.String(t), nil

	case nil:
		return value.Null{}, nil

	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
