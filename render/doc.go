// Package render serializes decoded documents to JSON, YAML, and CBOR.
//
// The renderers operate on the plain forms produced by the plain
// package. All three share one lowering step that maps the document
// onto sequences, ordered string-keyed mappings, and scalars:
//
//	Form              Rendering
//	─────────────────────────────────────────────────────
//	null/bool/int/    native scalar
//	float/string
//	bytes             base64 string (JSON/YAML), byte string (CBOR)
//	list/listing/set  sequence
//	map/mapping       mapping, keys formatted with plain.Key
//	object            sequence if it holds only elements,
//	                  otherwise a mapping
//	duration          {"value": 2.5, "unit": "min"}
//	data size         {"value": 4.0, "unit": "mib"}
//	int sequence      {"start": 0, "end": 10, "step": 2}
//	pair              {"first": ..., "second": ...}
//	regex             {"pattern": "a+"}
//	class/typealias   {"name": ..., "moduleUri": ...}
//
// Objects carrying both elements and named members render as a
// mapping with element members keyed "[0]", "[1]", and so on. Class
// names of typed objects are not rendered; only members survive the
// conversion, mirroring how configuration is consumed downstream.
//
// JSON and YAML preserve the document's member order. CBOR uses Core
// Deterministic Encoding (RFC 8949 §4.2), so mapping keys are sorted
// and the same document always produces identical bytes.
//
// JSON cannot represent NaN or infinities; rendering a document
// containing a non-finite float to JSON fails. YAML renders them as
// .nan, .inf, and -.inf, and CBOR stores them natively.
package render
