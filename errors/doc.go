// Package errors provides structured error types for the pklbinary codec.
//
// Errors are categorized by Phase (encode or decode) and Kind (error category).
// Decode errors carry the breadcrumb trail into the document and the byte
// offset consumed when the failure was detected.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindFormat).
//		Path("object", "pets", "[0]").
//		Offset(42).
//		Detail("unknown tag 0x7f").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownTag(path, offset, 0x7f)
//	err := errors.UnexpectedEOF(path, offset)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
