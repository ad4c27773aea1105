// Package diag prints annotated dumps of encoded documents.
//
// Dump walks the wire bytes with full knowledge of the envelope
// grammar and writes one line per item: the item's byte offset, its
// depth as indentation, and a short description. A small document
// dumps as
//
//	00000000  object
//	00000002    name: string "Dynamic"
//	0000000b    moduleUri: string "pkl:base"
//	00000015    members: array len=1
//	00000016      property
//	00000018        name: string "port"
//	0000001e        value: int 8080
//
// The dump is built for broken input. Unknown envelope tags, short
// envelopes, and extra trailing fields are flagged in line and the
// walk continues, so one bad envelope does not hide the rest of the
// document. Only malformed msgpack itself stops the walk: the failure
// is reported as a final "!" line and returned as an error.
package diag
