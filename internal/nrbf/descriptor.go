package nrbf

// MemberTypeInfo is one (BinaryType, AdditionalInfo) pair as written by
// ClassWithMembersAndTypes/SystemClassWithMembersAndTypes and by
// BinaryArray's array element type. The shape of AdditionalInfo depends on
// Type:
//
//	Primitive, PrimitiveArray -> Primitive holds the PrimitiveTypeEnumeration
//	SystemClass               -> ClassName holds the class name string
//	Class                     -> ClassName + LibraryID
//	String, Object, ObjectArray, StringArray -> no additional info
type MemberTypeInfo struct {
	Type      BinaryType
	Primitive PrimitiveType
	ClassName string
	LibraryID int32
}

// TypeDescriptor reads and interprets member type descriptors, the "operand
// shape" half of ClassWithMembersAndTypes / SystemClassWithMembersAndTypes /
// BinaryArray element typing.
type TypeDescriptor struct {
	r *BitReader
}

// NewTypeDescriptor wraps r.
func NewTypeDescriptor(r *BitReader) *TypeDescriptor {
	return &TypeDescriptor{r: r}
}

// ParseDescriptors reads memberCount BinaryType tags followed by their
// AdditionalInfo, in the two-pass layout MS-NRBF uses: first all the
// BinaryType tags, then all the AdditionalInfo values, in the same order.
func (d *TypeDescriptor) ParseDescriptors(memberCount int) ([]MemberTypeInfo, error) {
	infos := make([]MemberTypeInfo, memberCount)
	for i := 0; i < memberCount; i++ {
		b, err := d.r.ReadU8()
		if err != nil {
			return nil, err
		}
		bt := BinaryType(b)
		if bt > BinaryTypePrimitiveArray {
			return nil, errUnexpectedBinaryType(d.r.Offset()-1, b)
		}
		infos[i].Type = bt
	}
	for i := range infos {
		if err := d.readAdditionalInfo(&infos[i]); err != nil {
			return nil, err
		}
	}
	return infos, nil
}

// ParseElementType reads a single BinaryType + AdditionalInfo pair, the form
// used for a BinaryArray's element type (spec.md §4.3: arrays describe one
// element type, not one per member).
func (d *TypeDescriptor) ParseElementType() (MemberTypeInfo, error) {
	b, err := d.r.ReadU8()
	if err != nil {
		return MemberTypeInfo{}, err
	}
	bt := BinaryType(b)
	if bt > BinaryTypePrimitiveArray {
		return MemberTypeInfo{}, errUnexpectedBinaryType(d.r.Offset()-1, b)
	}
	info := MemberTypeInfo{Type: bt}
	if err := d.readAdditionalInfo(&info); err != nil {
		return MemberTypeInfo{}, err
	}
	return info, nil
}

func (d *TypeDescriptor) readAdditionalInfo(info *MemberTypeInfo) error {
	switch info.Type {
	case BinaryTypePrimitive, BinaryTypePrimitiveArray:
		b, err := d.r.ReadU8()
		if err != nil {
			return err
		}
		if b < byte(PrimitiveBoolean) || b > byte(PrimitiveString) {
			return errInvalidPrimitiveCode(d.r.Offset()-1, b)
		}
		info.Primitive = PrimitiveType(b)
	case BinaryTypeSystemClass:
		name, err := d.r.ReadLengthPrefixedString()
		if err != nil {
			return err
		}
		info.ClassName = name
	case BinaryTypeClass:
		name, err := d.r.ReadLengthPrefixedString()
		if err != nil {
			return err
		}
		id, err := d.r.ReadI32LE()
		if err != nil {
			return err
		}
		info.ClassName = name
		info.LibraryID = id
	case BinaryTypeString, BinaryTypeObject, BinaryTypeObjectArray, BinaryTypeStringArray:
		// no additional info
	default:
		return errUnexpectedBinaryType(d.r.Offset(), byte(info.Type))
	}
	return nil
}

// InlinePrimitive reports whether a member of this type is encoded inline in
// the member value stream (true only for Primitive; everything else,
// including PrimitiveArray, is a reference to a following top-level record).
func (info MemberTypeInfo) InlinePrimitive() bool {
	return info.Type == BinaryTypePrimitive
}

// DecodeInline decodes this member's value when InlinePrimitive is true.
// Callers must read a nested record themselves for every other BinaryType.
func (info MemberTypeInfo) DecodeInline(dec *PrimitiveDecoder) (*Value, error) {
	if !info.InlinePrimitive() {
		return nil, errorf("member type %s is not inline", info.Type)
	}
	return dec.Decode(info.Primitive)
}
