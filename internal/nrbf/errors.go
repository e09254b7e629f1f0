package nrbf

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError the way spec.md §7 enumerates fatal
// decode failures. Callers branch on kind with errors.Is against the
// exported sentinels below rather than inspecting message text.
type ErrorKind int

const (
	ErrKindUnexpectedEndOfStream ErrorKind = iota
	ErrKindInvalidRecordType
	ErrKindInvalidPrimitiveCode
	ErrKindUnexpectedBinaryType
	ErrKindInvalidHeader
	ErrKindDuplicateId
	ErrKindUnknownObjectId
	ErrKindUnknownClass
	ErrKindUnknownLibrary
	ErrKindUnsupportedArrayShape
	ErrKindCyclicReference
	ErrKindInvalidUtf8
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindUnexpectedEndOfStream:
		return "UnexpectedEndOfStream"
	case ErrKindInvalidRecordType:
		return "InvalidRecordType"
	case ErrKindInvalidPrimitiveCode:
		return "InvalidPrimitiveCode"
	case ErrKindUnexpectedBinaryType:
		return "UnexpectedBinaryType"
	case ErrKindInvalidHeader:
		return "InvalidHeader"
	case ErrKindDuplicateId:
		return "DuplicateId"
	case ErrKindUnknownObjectId:
		return "UnknownObjectId"
	case ErrKindUnknownClass:
		return "UnknownClass"
	case ErrKindUnknownLibrary:
		return "UnknownLibrary"
	case ErrKindUnsupportedArrayShape:
		return "UnsupportedArrayShape"
	case ErrKindCyclicReference:
		return "CyclicReference"
	case ErrKindInvalidUtf8:
		return "InvalidUtf8"
	default:
		return "UnknownErrorKind"
	}
}

// Sentinel errors for errors.Is comparisons. ParseError.Is matches on Kind
// alone so a wrapped, offset-stamped error still compares equal to these.
var (
	ErrUnexpectedEndOfStream  = &ParseError{Kind: ErrKindUnexpectedEndOfStream}
	ErrInvalidHeader          = &ParseError{Kind: ErrKindInvalidHeader}
	ErrUnsupportedArrayShape  = &ParseError{Kind: ErrKindUnsupportedArrayShape}
	ErrCyclicReference        = &ParseError{Kind: ErrKindCyclicReference}
	ErrInvalidUtf8            = &ParseError{Kind: ErrKindInvalidUtf8}
)

// ParseError is the error type for the failure kinds listed above; it
// carries the byte Offset in the input at which the failure was detected.
// Some malformed-input checks (out-of-range counts and lengths, a null run
// that overflows its container, an invalid decimal literal, an over-long
// 7-bit length) return plain errors built by errorf instead, which carry
// neither a Kind nor an Offset.
type ParseError struct {
	Kind   ErrorKind
	Offset int64
	Code   int64 // record type / primitive code / id, meaning depends on Kind
	Cause  error
}

func (e *ParseError) Error() string {
	base := fmt.Sprintf("nrbf: %s at offset %d", e.Kind, e.Offset)
	switch e.Kind {
	case ErrKindInvalidRecordType:
		base = fmt.Sprintf("nrbf: invalid %s at offset %d", tagToString("record type", byte(e.Code)), e.Offset)
	case ErrKindInvalidPrimitiveCode:
		base = fmt.Sprintf("nrbf: invalid %s at offset %d", tagToString("primitive type", byte(e.Code)), e.Offset)
	case ErrKindUnexpectedBinaryType:
		base = fmt.Sprintf("nrbf: unexpected %s at offset %d", tagToString("binary type", byte(e.Code)), e.Offset)
	case ErrKindDuplicateId, ErrKindUnknownObjectId, ErrKindUnknownClass, ErrKindUnknownLibrary:
		base = fmt.Sprintf("nrbf: %s(%d) at offset %d", e.Kind, e.Code, e.Offset)
	}
	if e.Cause != nil {
		return base + ": " + e.Cause.Error()
	}
	return base
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Is reports whether target is a *ParseError with the same Kind, so that
// errors.Is(err, nrbf.ErrInvalidHeader) works regardless of offset/code.
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func errEOF(offset int64) error {
	return &ParseError{Kind: ErrKindUnexpectedEndOfStream, Offset: offset}
}

func errInvalidRecordType(offset int64, code byte) error {
	return &ParseError{Kind: ErrKindInvalidRecordType, Offset: offset, Code: int64(code)}
}

func errInvalidPrimitiveCode(offset int64, code byte) error {
	return &ParseError{Kind: ErrKindInvalidPrimitiveCode, Offset: offset, Code: int64(code)}
}

func errUnexpectedBinaryType(offset int64, code byte) error {
	return &ParseError{Kind: ErrKindUnexpectedBinaryType, Offset: offset, Code: int64(code)}
}

func errInvalidHeader(offset int64, cause error) error {
	return &ParseError{Kind: ErrKindInvalidHeader, Offset: offset, Cause: cause}
}

func errDuplicateId(offset int64, id int32) error {
	return &ParseError{Kind: ErrKindDuplicateId, Offset: offset, Code: int64(id)}
}

func errUnknownObjectId(offset int64, id int32) error {
	return &ParseError{Kind: ErrKindUnknownObjectId, Offset: offset, Code: int64(id)}
}

func errUnknownClass(offset int64, id int32) error {
	return &ParseError{Kind: ErrKindUnknownClass, Offset: offset, Code: int64(id)}
}

func errUnknownLibrary(offset int64, id int32) error {
	return &ParseError{Kind: ErrKindUnknownLibrary, Offset: offset, Code: int64(id)}
}

func errUnsupportedArrayShape(offset int64, shape BinaryArrayType, rank int32) error {
	return &ParseError{Kind: ErrKindUnsupportedArrayShape, Offset: offset, Code: int64(shape)<<32 | int64(uint32(rank))}
}

func errCyclicReference(offset int64, id int32) error {
	return &ParseError{Kind: ErrKindCyclicReference, Offset: offset, Code: int64(id)}
}

func errInvalidUtf8(offset int64, cause error) error {
	return &ParseError{Kind: ErrKindInvalidUtf8, Offset: offset, Cause: cause}
}

// tagToString renders a raw tag byte for diagnostics, the way the teacher's
// bsatn.TagToString helps format error messages and debug dumps.
func tagToString(kind string, b byte) string {
	return fmt.Sprintf("%s(0x%02X)", kind, b)
}

// errorf is a thin errors.New/fmt.Errorf wrapper kept for parity with the
// corpus's bsatn.Errorf convention of prefixing package errors consistently;
// used for programmer-misuse errors (bad API usage) and for the
// malformed-input checks noted on ParseError.
func errorf(format string, args ...interface{}) error {
	return fmt.Errorf("nrbf: "+format, args...)
}

var errNilReader = errors.New("nrbf: reader must not be nil")
