package nrbf

// The following byte-tag enumerations mirror [MS-NRBF]'s wire discriminants.
// Names follow the section 2.1 enumerations of the spec exactly so that a
// reader cross-checking against the protocol document does not need a
// translation table.

// RecordType is the one-byte RecordTypeEnumeration discriminant that begins
// every top-level record in an MS-NRBF stream.
type RecordType byte

const (
	RecordSerializedStreamHeader         RecordType = 0
	RecordClassWithId                    RecordType = 1
	RecordSystemClassWithMembers         RecordType = 2
	RecordClassWithMembers                RecordType = 3
	RecordSystemClassWithMembersAndTypes RecordType = 4
	RecordClassWithMembersAndTypes       RecordType = 5
	RecordBinaryObjectString             RecordType = 6
	RecordBinaryArray                    RecordType = 7
	RecordMemberPrimitiveTyped           RecordType = 8
	RecordMemberReference                RecordType = 9
	RecordObjectNull                     RecordType = 10
	RecordMessageEnd                     RecordType = 11
	RecordBinaryLibrary                  RecordType = 12
	RecordObjectNullMultiple256          RecordType = 13
	RecordObjectNullMultiple             RecordType = 14
	RecordArraySinglePrimitive           RecordType = 15
	RecordArraySingleObject              RecordType = 16
	RecordArraySingleString              RecordType = 17
	RecordMethodCall                     RecordType = 21
	RecordMethodReturn                   RecordType = 22
)

func (rt RecordType) String() string {
	switch rt {
	case RecordSerializedStreamHeader:
		return "SerializedStreamHeader"
	case RecordClassWithId:
		return "ClassWithId"
	case RecordSystemClassWithMembers:
		return "SystemClassWithMembers"
	case RecordClassWithMembers:
		return "ClassWithMembers"
	case RecordSystemClassWithMembersAndTypes:
		return "SystemClassWithMembersAndTypes"
	case RecordClassWithMembersAndTypes:
		return "ClassWithMembersAndTypes"
	case RecordBinaryObjectString:
		return "BinaryObjectString"
	case RecordBinaryArray:
		return "BinaryArray"
	case RecordMemberPrimitiveTyped:
		return "MemberPrimitiveTyped"
	case RecordMemberReference:
		return "MemberReference"
	case RecordObjectNull:
		return "ObjectNull"
	case RecordMessageEnd:
		return "MessageEnd"
	case RecordBinaryLibrary:
		return "BinaryLibrary"
	case RecordObjectNullMultiple256:
		return "ObjectNullMultiple256"
	case RecordObjectNullMultiple:
		return "ObjectNullMultiple"
	case RecordArraySinglePrimitive:
		return "ArraySinglePrimitive"
	case RecordArraySingleObject:
		return "ArraySingleObject"
	case RecordArraySingleString:
		return "ArraySingleString"
	case RecordMethodCall:
		return "MethodCall"
	case RecordMethodReturn:
		return "MethodReturn"
	default:
		return "UnknownRecordType"
	}
}

// PrimitiveType is the PrimitiveTypeEnumeration discriminant used by
// MemberPrimitiveTyped records and by primitive-array element type tags.
type PrimitiveType byte

const (
	PrimitiveBoolean   PrimitiveType = 1
	PrimitiveByte      PrimitiveType = 2
	PrimitiveChar      PrimitiveType = 3
	PrimitiveDecimal   PrimitiveType = 5
	PrimitiveDouble    PrimitiveType = 6
	PrimitiveInt16     PrimitiveType = 7
	PrimitiveInt32     PrimitiveType = 8
	PrimitiveInt64     PrimitiveType = 9
	PrimitiveSByte     PrimitiveType = 10
	PrimitiveSingle    PrimitiveType = 11
	PrimitiveTimeSpan  PrimitiveType = 12
	PrimitiveDateTime  PrimitiveType = 13
	PrimitiveUInt16    PrimitiveType = 14
	PrimitiveUInt32    PrimitiveType = 15
	PrimitiveUInt64    PrimitiveType = 16
	PrimitiveNull      PrimitiveType = 17
	PrimitiveString    PrimitiveType = 18
)

func (pt PrimitiveType) String() string {
	switch pt {
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveByte:
		return "Byte"
	case PrimitiveChar:
		return "Char"
	case PrimitiveDecimal:
		return "Decimal"
	case PrimitiveDouble:
		return "Double"
	case PrimitiveInt16:
		return "Int16"
	case PrimitiveInt32:
		return "Int32"
	case PrimitiveInt64:
		return "Int64"
	case PrimitiveSByte:
		return "SByte"
	case PrimitiveSingle:
		return "Single"
	case PrimitiveTimeSpan:
		return "TimeSpan"
	case PrimitiveDateTime:
		return "DateTime"
	case PrimitiveUInt16:
		return "UInt16"
	case PrimitiveUInt32:
		return "UInt32"
	case PrimitiveUInt64:
		return "UInt64"
	case PrimitiveNull:
		return "Null"
	case PrimitiveString:
		return "String"
	default:
		return "UnknownPrimitiveType"
	}
}

// BinaryType is the BinaryTypeEnumeration discriminant used by member and
// array type descriptors.
type BinaryType byte

const (
	BinaryTypePrimitive      BinaryType = 0
	BinaryTypeString         BinaryType = 1
	BinaryTypeObject         BinaryType = 2
	BinaryTypeSystemClass    BinaryType = 3
	BinaryTypeClass          BinaryType = 4
	BinaryTypeObjectArray    BinaryType = 5
	BinaryTypeStringArray    BinaryType = 6
	BinaryTypePrimitiveArray BinaryType = 7
)

func (bt BinaryType) String() string {
	switch bt {
	case BinaryTypePrimitive:
		return "Primitive"
	case BinaryTypeString:
		return "String"
	case BinaryTypeObject:
		return "Object"
	case BinaryTypeSystemClass:
		return "SystemClass"
	case BinaryTypeClass:
		return "Class"
	case BinaryTypeObjectArray:
		return "ObjectArray"
	case BinaryTypeStringArray:
		return "StringArray"
	case BinaryTypePrimitiveArray:
		return "PrimitiveArray"
	default:
		return "UnknownBinaryType"
	}
}

// BinaryArrayType is the BinaryArrayTypeEnumeration discriminant carried by
// BinaryArray records.
type BinaryArrayType byte

const (
	ArrayTypeSingle           BinaryArrayType = 0
	ArrayTypeJagged           BinaryArrayType = 1
	ArrayTypeRectangular      BinaryArrayType = 2
	ArrayTypeSingleOffset     BinaryArrayType = 3
	ArrayTypeJaggedOffset     BinaryArrayType = 4
	ArrayTypeRectangularOffset BinaryArrayType = 5
)

func (at BinaryArrayType) String() string {
	switch at {
	case ArrayTypeSingle:
		return "Single"
	case ArrayTypeJagged:
		return "Jagged"
	case ArrayTypeRectangular:
		return "Rectangular"
	case ArrayTypeSingleOffset:
		return "SingleOffset"
	case ArrayTypeJaggedOffset:
		return "JaggedOffset"
	case ArrayTypeRectangularOffset:
		return "RectangularOffset"
	default:
		return "UnknownArrayType"
	}
}

// messageFlags bits used by MethodCall/MethodReturn records, per
// [MS-NRBF] section 2.2.3.1. Every bit is named here, but the decoder acts
// only on NoArgs, ArgsInline, NoContext, ContextInline, NoReturnValue,
// ReturnValueInline, ExceptionInArray and GenericMethod; the others are read
// as part of the flags word and otherwise ignored, as recorded in DESIGN.md.
const (
	messageFlagNoArgs               uint32 = 0x00000001
	messageFlagArgsInline           uint32 = 0x00000002
	messageFlagArgsIsArray          uint32 = 0x00000004
	messageFlagArgsInArray          uint32 = 0x00000008
	messageFlagNoContext            uint32 = 0x00000010
	messageFlagContextInline        uint32 = 0x00000020
	messageFlagContextInArray       uint32 = 0x00000040
	messageFlagMethodSignatureInArray uint32 = 0x00000080
	messageFlagPropertiesInArray    uint32 = 0x00000100
	messageFlagNoReturnValue        uint32 = 0x00000200
	messageFlagReturnValueVoid      uint32 = 0x00000400
	messageFlagReturnValueInline    uint32 = 0x00000800
	messageFlagReturnValueInArray   uint32 = 0x00001000
	messageFlagExceptionInArray     uint32 = 0x00002000
	messageFlagGenericMethod        uint32 = 0x00008000
)

// maxCollectionLen caps counts and lengths read straight off the wire before
// they are used to size an allocation, so a corrupt or hostile length field
// cannot force an out-of-memory allocation before the byte-availability
// check for the elements themselves would otherwise catch it.
const maxCollectionLen = 1 << 24
