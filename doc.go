// Package pklbinary implements the pkl binary encoding, a compact msgpack-based
// serialization of fully evaluated Pkl configuration values.
//
// The format is self-describing: primitives (nil, booleans, integers, floats,
// strings) are plain msgpack scalars, and every other value is a msgpack array
// envelope whose first element is a tag byte from this package's Code registry.
// Envelope lengths are authoritative, so decoders skip trailing fields they do
// not know about instead of failing on them.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	pklbinary/           Root package with the wire tag registry and Importer contract
//	├── value/           Evaluated value model: closed union of Pkl runtime values
//	├── codec/           Encoder and decoder between the value model and wire bytes
//	├── plain/           Importer-free decoder producing plain Go data for tooling
//	├── render/          Renderers from plain data to JSON, YAML, and CBOR
//	├── diag/            Annotated wire-structure dumps with byte offsets
//	├── importer/        In-memory module registry implementing Importer
//	└── errors/          Structured error types with breadcrumb trails and offsets
//
// # Quick Start
//
// Encode a value and decode it back:
//
//	doc := value.Object{
//	    Name:      "Dynamic",
//	    ModuleURI: "pkl:base",
//	    Members: []value.Member{
//	        value.Property{Name: "name", Value: value.String("Pigeon")},
//	        value.Property{Name: "age", Value: value.Int(42)},
//	    },
//	}
//
//	data, err := codec.Marshal(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	back, err := codec.Decode(data, nil)
//	fmt.Println(value.Equal(doc, back)) // true
//
// Typed documents reference classes by name and module URI; supply an
// Importer (for example importer.NewRegistry) to resolve them:
//
//	reg := importer.NewRegistry()
//	reg.Add(importer.Module{URI: "birds.pkl", Classes: []string{"birds#Bird"}})
//	v, err := codec.Decode(data, reg)
//
// For tooling that has no module knowledge, plain.Decode reconstructs the
// document as plain Go data without resolving anything.
//
// # Forward Compatibility
//
// Decoders accept envelopes longer than they understand by skipping trailing
// fields of known tags. Unknown tag bytes are hard errors: the tag space is
// the one part of the format that cannot be extended silently.
//
// # Thread Safety
//
// Encoders and decoders are single-use and not safe for concurrent use. The
// package-level Marshal, Decode, and DecodeFrom functions are safe to call
// from multiple goroutines; each call uses its own codec state.
package pklbinary
