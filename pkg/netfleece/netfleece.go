// Package netfleece decodes MS-NRBF (.NET Remoting Binary Format) byte
// streams produced by System.Runtime.Serialization.Formatters.Binary's
// BinaryFormatter.
//
// Core decoding:
//   - Driver: parse entry point (Parse, IterRecords, ParseAndResolve)
//   - Document: a fully decoded stream (Header, Root, Objects)
//   - Value: the decoded value tree node (null, bool, int, float, decimal,
//     string, datetime, timespan, array, class instance, reference)
//
// Reference resolution:
//   - ResolveInPlace: share structure, may reintroduce cycles
//   - ResolveExpand: copy at each reference site, cycle-free, JSON-safe
//
// Example usage:
//
//	drv := netfleece.NewDriver()
//	defer drv.Close()
//	doc, err := drv.ParseAndResolve(raw, netfleece.ResolveExpand, nil)
//	if err != nil {
//		// err is usually a *netfleece.ParseError (its doc lists the
//		// exceptions); errors.Is against the Err*
//		// sentinels to branch on failure kind.
//	}
//	out, _ := json.MarshalIndent(doc.Root, "", "  ")
package netfleece

import "github.com/MiraCrypto/netfleece/internal/nrbf"

// Core decoding types, re-exported from the internal decoder.
type (
	Driver          = nrbf.Driver
	Document        = nrbf.Document
	StreamHeader    = nrbf.StreamHeader
	Value           = nrbf.Value
	ValueKind       = nrbf.ValueKind
	ClassInstance   = nrbf.ClassInstance
	ArrayValue      = nrbf.ArrayValue
	Member          = nrbf.Member
	IntValue        = nrbf.IntValue
	FloatValue      = nrbf.FloatValue
	DateTimeValue   = nrbf.DateTimeValue
	DateTimeKind    = nrbf.DateTimeKind
	ResolveMode     = nrbf.ResolveMode
	ParseError      = nrbf.ParseError
	ErrorKind       = nrbf.ErrorKind
	RecordIterator  = nrbf.RecordIterator
	IteratorStatus  = nrbf.IteratorStatus
	Session         = nrbf.Session
	Stats           = nrbf.Stats
)

// Value kind constants.
const (
	KindNull          = nrbf.KindNull
	KindBool          = nrbf.KindBool
	KindInt           = nrbf.KindInt
	KindFloat         = nrbf.KindFloat
	KindDecimal       = nrbf.KindDecimal
	KindString        = nrbf.KindString
	KindDateTime      = nrbf.KindDateTime
	KindTimeSpan      = nrbf.KindTimeSpan
	KindArray         = nrbf.KindArray
	KindClassInstance = nrbf.KindClassInstance
	KindReference     = nrbf.KindReference
)

// Reference resolution modes.
const (
	ResolveNone    = nrbf.ResolveNone
	ResolveInPlace = nrbf.ResolveInPlace
	ResolveExpand  = nrbf.ResolveExpand
)

// Iterator lifecycle states.
const (
	IteratorActive    = nrbf.IteratorActive
	IteratorExhausted = nrbf.IteratorExhausted
	IteratorClosed    = nrbf.IteratorClosed
)

// Error kind sentinels for errors.Is.
var (
	ErrUnexpectedEndOfStream = nrbf.ErrUnexpectedEndOfStream
	ErrInvalidHeader         = nrbf.ErrInvalidHeader
	ErrUnsupportedArrayShape = nrbf.ErrUnsupportedArrayShape
	ErrCyclicReference       = nrbf.ErrCyclicReference
	ErrInvalidUtf8           = nrbf.ErrInvalidUtf8
)

// NewDriver returns a ready-to-use Driver. Callers must Close it when done.
func NewDriver() *Driver { return nrbf.NewDriver() }

// Version identifies this module for diagnostics and the CLI's --version flag.
const Version = "0.1.0"
