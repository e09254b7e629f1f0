package nrbf

import (
	"encoding/json"
	"fmt"
)

// ValueKind discriminates the tagged variant produced by decoding, per
// spec.md §6 ("Output"): null, boolean, integer (signed/unsigned, width
// tagged), float, decimal, string, datetime, timespan, array, class-instance
// (named fields in declaration order), reference (present only in
// placeholder / in-place form).
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindDateTime
	KindTimeSpan
	KindArray
	KindClassInstance
	KindReference
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindTimeSpan:
		return "timespan"
	case KindArray:
		return "array"
	case KindClassInstance:
		return "classInstance"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// IntWidth tags the original wire width and signedness of an integer value,
// so re-serialization can round-trip e.g. Int64 vs UInt32 instead of
// collapsing everything to a generic number.
type IntWidth int

const (
	WidthI8 IntWidth = iota
	WidthU8
	WidthI16
	WidthU16
	WidthI32
	WidthU32
	WidthI64
	WidthU64
)

func (w IntWidth) String() string {
	switch w {
	case WidthI8:
		return "i8"
	case WidthU8:
		return "u8"
	case WidthI16:
		return "i16"
	case WidthU16:
		return "u16"
	case WidthI32:
		return "i32"
	case WidthU32:
		return "u32"
	case WidthI64:
		return "i64"
	case WidthU64:
		return "u64"
	default:
		return "unknown"
	}
}

func (w IntWidth) signed() bool {
	switch w {
	case WidthI8, WidthI16, WidthI32, WidthI64:
		return true
	default:
		return false
	}
}

// IntValue is a width-tagged integer scalar.
type IntValue struct {
	Width    IntWidth
	Signed   int64
	Unsigned uint64
}

func (v IntValue) rawString() string {
	if v.Width.signed() {
		return fmt.Sprintf("%d", v.Signed)
	}
	return fmt.Sprintf("%d", v.Unsigned)
}

// FloatWidth tags Single (32-bit) vs Double (64-bit).
type FloatWidth int

const (
	WidthF32 FloatWidth = iota
	WidthF64
)

// FloatValue is a width-tagged floating point scalar.
type FloatValue struct {
	Width FloatWidth
	F32   float32
	F64   float64
}

// Member is one named field of a ClassInstance, kept in declaration order
// (spec.md §6: "named fields in declaration order").
type Member struct {
	Name  string
	Value *Value
}

// ClassInstance is a decoded class record (spec.md's ClassLayout + its
// per-instance values combined, since the output tree has no separate
// layout/instance distinction once decoded).
type ClassInstance struct {
	ObjectID    int32
	Name        string
	LibraryID   int32  // 0 for system classes (no library)
	LibraryName string // resolved from the library table; empty for system classes
	Members     []Member
}

// ArrayValue is a decoded single-dimensional, zero-offset array (spec.md's
// Non-goals exclude any other shape).
type ArrayValue struct {
	ObjectID int32
	Elements []*Value
}

// Value is one node of the decoded value tree.
type Value struct {
	Kind ValueKind

	Bool     bool
	Int      IntValue
	Float    FloatValue
	Decimal  string
	Str      string
	DateTime DateTimeValue
	TimeSpan int64
	Array    *ArrayValue
	Class    *ClassInstance

	// RefID is valid only when Kind == KindReference: the target object id
	// this placeholder stands in for, per spec.md §4.4's MemberReference
	// handling. A resolver (resolver.go) replaces these.
	RefID int32
}

// ObjectID returns the id a class instance or array value is registered
// under. It returns 0 for every other kind, including strings registered by
// a BinaryObjectString record, since Value does not keep a string's id.
func (v *Value) ObjectID() int32 {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case KindClassInstance:
		return v.Class.ObjectID
	case KindArray:
		return v.Array.ObjectID
	default:
		return 0
	}
}

func nullValue() *Value                 { return &Value{Kind: KindNull} }
func boolValue(b bool) *Value           { return &Value{Kind: KindBool, Bool: b} }
func stringValue(s string) *Value       { return &Value{Kind: KindString, Str: s} }
func decimalValue(s string) *Value      { return &Value{Kind: KindDecimal, Decimal: s} }
func dateTimeValue(d DateTimeValue) *Value { return &Value{Kind: KindDateTime, DateTime: d} }
func timeSpanValue(ticks int64) *Value  { return &Value{Kind: KindTimeSpan, TimeSpan: ticks} }
func referenceValue(id int32) *Value    { return &Value{Kind: KindReference, RefID: id} }

func intValue(width IntWidth, signed int64, unsigned uint64) *Value {
	return &Value{Kind: KindInt, Int: IntValue{Width: width, Signed: signed, Unsigned: unsigned}}
}

func floatValue32(f float32) *Value { return &Value{Kind: KindFloat, Float: FloatValue{Width: WidthF32, F32: f}} }
func floatValue64(f float64) *Value { return &Value{Kind: KindFloat, Float: FloatValue{Width: WidthF64, F64: f}} }

// MarshalJSON renders the value tree as generic JSON, the interchange format
// spec.md §6 designs the output to map losslessly onto. DateTime, TimeSpan
// and Decimal are rendered as strings (JSON numbers cannot hold .NET's
// 128-bit decimal or 62-bit tick precision losslessly); integers keep their
// numeric form with the width recorded alongside under "$type" only when
// that width cannot be inferred from JSON's own number syntax (i.e. never —
// width is informational and is dropped here; callers needing it should walk
// *Value directly instead of round-tripping through JSON).
//
// Calling this on a graph produced by in-place reference resolution
// (resolver.go's ResolveInPlace) will not terminate if the graph contains a
// cycle: JSON has no way to express shared or cyclic structure. Use
// expansion-mode resolution (ResolveExpand) before marshaling to JSON.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		if v.Int.Width.signed() {
			return json.Marshal(v.Int.Signed)
		}
		return json.Marshal(v.Int.Unsigned)
	case KindFloat:
		if v.Float.Width == WidthF32 {
			return json.Marshal(v.Float.F32)
		}
		return json.Marshal(v.Float.F64)
	case KindDecimal:
		return json.Marshal(v.Decimal)
	case KindString:
		return json.Marshal(v.Str)
	case KindDateTime:
		return json.Marshal(fmt.Sprintf("%s/%d", v.DateTime.Kind, v.DateTime.Ticks))
	case KindTimeSpan:
		return json.Marshal(fmt.Sprintf("%d", v.TimeSpan))
	case KindArray:
		return json.Marshal(v.Array.Elements)
	case KindClassInstance:
		return marshalOrderedObject(v.Class.Members)
	case KindReference:
		return json.Marshal(map[string]int32{"$ref": v.RefID})
	default:
		return nil, errorf("cannot marshal value kind %s", v.Kind)
	}
}

// marshalOrderedObject renders a class instance's members as a JSON object
// while preserving declaration order (Go's map-based json.Marshal would
// alphabetize keys, which loses the ordering spec.md §6 requires).
func marshalOrderedObject(members []Member) ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	for i, m := range members {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func (k DateTimeKind) String() string {
	switch k {
	case DateTimeUnspecified:
		return "Unspecified"
	case DateTimeUtc:
		return "Utc"
	case DateTimeLocal:
		return "Local"
	default:
		return "Unknown"
	}
}
