package nrbf

// PrimitiveDecoder dispatches a PrimitiveTypeEnumeration code to the matching
// BitReader call and wraps the result as a *Value. It holds no state of its
// own; it is a free function set kept together the way the teacher's
// bsatn.Unmarshal groups its tag-switch cases, generalized from "decode into
// a reflect.Value" to "decode into a Value node".
type PrimitiveDecoder struct {
	r *BitReader
}

// NewPrimitiveDecoder wraps r.
func NewPrimitiveDecoder(r *BitReader) *PrimitiveDecoder {
	return &PrimitiveDecoder{r: r}
}

// Decode reads one primitive value of the given type. Null and String are
// accepted here because MemberPrimitiveTyped and primitive array elements
// both route untyped members through PrimitiveType the same way typed ones
// are; callers that must reject Null/String in a context where the format
// forbids them (array element type declarations, for instance) check that
// before calling Decode, since PrimitiveType itself is context-free.
func (d *PrimitiveDecoder) Decode(pt PrimitiveType) (*Value, error) {
	switch pt {
	case PrimitiveBoolean:
		b, err := d.r.ReadBool()
		if err != nil {
			return nil, err
		}
		return boolValue(b), nil
	case PrimitiveByte:
		b, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		return intValue(WidthU8, 0, uint64(b)), nil
	case PrimitiveSByte:
		b, err := d.r.ReadI8()
		if err != nil {
			return nil, err
		}
		return intValue(WidthI8, int64(b), 0), nil
	case PrimitiveChar:
		c, err := d.r.ReadChar()
		if err != nil {
			return nil, err
		}
		return stringValue(string(c)), nil
	case PrimitiveInt16:
		v, err := d.r.ReadI16LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthI16, int64(v), 0), nil
	case PrimitiveUInt16:
		v, err := d.r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthU16, 0, uint64(v)), nil
	case PrimitiveInt32:
		v, err := d.r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthI32, int64(v), 0), nil
	case PrimitiveUInt32:
		v, err := d.r.ReadU32LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthU32, 0, uint64(v)), nil
	case PrimitiveInt64:
		v, err := d.r.ReadI64LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthI64, v, 0), nil
	case PrimitiveUInt64:
		v, err := d.r.ReadU64LE()
		if err != nil {
			return nil, err
		}
		return intValue(WidthU64, 0, v), nil
	case PrimitiveSingle:
		v, err := d.r.ReadF32LE()
		if err != nil {
			return nil, err
		}
		return floatValue32(v), nil
	case PrimitiveDouble:
		v, err := d.r.ReadF64LE()
		if err != nil {
			return nil, err
		}
		return floatValue64(v), nil
	case PrimitiveDecimal:
		v, err := d.r.ReadDecimal()
		if err != nil {
			return nil, err
		}
		return decimalValue(v), nil
	case PrimitiveDateTime:
		v, err := d.r.ReadDateTime()
		if err != nil {
			return nil, err
		}
		return dateTimeValue(v), nil
	case PrimitiveTimeSpan:
		v, err := d.r.ReadTimeSpan()
		if err != nil {
			return nil, err
		}
		return timeSpanValue(v), nil
	case PrimitiveString:
		v, err := d.r.ReadLengthPrefixedString()
		if err != nil {
			return nil, err
		}
		return stringValue(v), nil
	case PrimitiveNull:
		return nullValue(), nil
	default:
		return nil, errInvalidPrimitiveCode(d.r.Offset(), byte(pt))
	}
}
