package nrbf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// streamBuilder assembles a well-formed MS-NRBF byte stream by hand, the way
// a fixture-free unit test for a binary format has to: there is no encoder
// in this codebase to round-trip through (spec.md scopes this to decode
// only), so tests construct wire bytes directly.
type streamBuilder struct {
	buf bytes.Buffer
}

func (b *streamBuilder) byte(v byte) *streamBuilder { b.buf.WriteByte(v); return b }
func (b *streamBuilder) i32(v int32) *streamBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	b.buf.Write(tmp[:])
	return b
}
func (b *streamBuilder) u32(v uint32) *streamBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}
func (b *streamBuilder) str(s string) *streamBuilder {
	b.buf.WriteByte(byte(len(s))) // fine for short test strings, stays under 7-bit single-byte length
	b.buf.WriteString(s)
	return b
}
func (b *streamBuilder) bytes() []byte { return b.buf.Bytes() }

func (b *streamBuilder) header(rootID int32) *streamBuilder {
	return b.byte(byte(RecordSerializedStreamHeader)).i32(rootID).i32(-1).i32(1).i32(0)
}

func (b *streamBuilder) messageEnd() *streamBuilder {
	return b.byte(byte(RecordMessageEnd))
}

func (b *streamBuilder) binaryLibrary(id int32, name string) *streamBuilder {
	return b.byte(byte(RecordBinaryLibrary)).i32(id).str(name)
}

func TestDispatcher_ClassWithMembersAndTypes_Primitives(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.binaryLibrary(7, "TestLib")
	b.byte(byte(RecordClassWithMembersAndTypes))
	b.i32(1)     // ObjectId
	b.str("Pt")  // class name
	b.i32(2)     // member count
	b.str("X")
	b.str("Y")
	b.byte(byte(BinaryTypePrimitive))
	b.byte(byte(BinaryTypePrimitive))
	b.byte(byte(PrimitiveInt32))
	b.byte(byte(PrimitiveInt32))
	b.i32(7) // LibraryId, registered above
	b.i32(10)
	b.i32(20)
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	doc, err := d.ReadDocument()
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	require.Equal(t, KindClassInstance, doc.Root.Kind)
	require.Equal(t, "Pt", doc.Root.Class.Name)
	require.Equal(t, "TestLib", doc.Root.Class.LibraryName)
	require.Len(t, doc.Root.Class.Members, 2)
	require.Equal(t, "X", doc.Root.Class.Members[0].Name)
	require.Equal(t, int64(10), doc.Root.Class.Members[0].Value.Int.Signed)
	require.Equal(t, int64(20), doc.Root.Class.Members[1].Value.Int.Signed)
}

func TestDispatcher_ClassWithMembersAndTypes_UnregisteredLibraryRejected(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.byte(byte(RecordClassWithMembersAndTypes))
	b.i32(1)
	b.str("Pt")
	b.i32(1)
	b.str("X")
	b.byte(byte(BinaryTypePrimitive))
	b.byte(byte(PrimitiveInt32))
	b.i32(99) // never registered via BinaryLibrary
	b.i32(10)
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	_, err := d.ReadDocument()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrKindUnknownLibrary, pe.Kind)
}

func TestDispatcher_BinaryObjectStringAndReference(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.binaryLibrary(3, "NodeLib")
	b.byte(byte(RecordClassWithMembersAndTypes))
	b.i32(1)
	b.str("Node")
	b.i32(2)
	b.str("Label")
	b.str("Self")
	b.byte(byte(BinaryTypeString))
	b.byte(byte(BinaryTypeObject))
	b.i32(3)
	// Label member -> BinaryObjectString record (object id 2)
	b.byte(byte(RecordBinaryObjectString))
	b.i32(2)
	b.str("hello")
	// Self member -> MemberReference back to object 1 (self-cycle)
	b.byte(byte(RecordMemberReference))
	b.i32(1)
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	doc, err := d.ReadDocument()
	require.NoError(t, err)
	require.Equal(t, "hello", doc.Root.Class.Members[0].Value.Str)
	require.Equal(t, KindReference, doc.Root.Class.Members[1].Value.Kind)
	require.Equal(t, int32(1), doc.Root.Class.Members[1].Value.RefID)

	t.Run("resolve in place keeps the cycle", func(t *testing.T) {
		resolver := NewReferenceResolver(doc.Objects)
		require.NoError(t, resolver.ResolveInPlace(doc.Root))
		require.Same(t, doc.Root, doc.Root.Class.Members[1].Value)
	})
}

func TestDispatcher_ObjectNullMultiple(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.byte(byte(RecordArraySingleObject))
	b.i32(1)
	b.i32(3) // length
	b.byte(byte(RecordObjectNullMultiple256))
	b.byte(3)
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	doc, err := d.ReadDocument()
	require.NoError(t, err)
	require.Equal(t, KindArray, doc.Root.Kind)
	require.Len(t, doc.Root.Array.Elements, 3)
	for _, el := range doc.Root.Array.Elements {
		require.Equal(t, KindNull, el.Kind)
	}
}

func TestDispatcher_ObjectNullMultiple_OverflowsArrayRejected(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.byte(byte(RecordArraySingleObject))
	b.i32(1)
	b.i32(2) // length: only room for 2 nulls
	b.byte(byte(RecordObjectNullMultiple256))
	b.byte(5) // run claims 5
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	_, err := d.ReadDocument()
	require.Error(t, err)
	require.Equal(t, 0, d.pendingNulls)
}

func TestDispatcher_BinaryArray_JaggedAndRectangularAtRank1Supported(t *testing.T) {
	for _, shape := range []BinaryArrayType{ArrayTypeSingle, ArrayTypeJagged, ArrayTypeRectangular} {
		var b streamBuilder
		b.header(1)
		b.byte(byte(RecordBinaryArray))
		b.i32(1)
		b.byte(byte(shape))
		b.i32(1) // rank
		b.i32(2) // length_per_dim[0]
		b.byte(byte(BinaryTypePrimitive))
		b.byte(byte(PrimitiveInt32))
		b.i32(10)
		b.i32(20)
		b.messageEnd()

		d := NewDispatcher(NewBitReader(b.bytes()))
		doc, err := d.ReadDocument()
		require.NoError(t, err)
		require.Equal(t, KindArray, doc.Root.Kind)
		require.Len(t, doc.Root.Array.Elements, 2)
		require.Equal(t, int64(10), doc.Root.Array.Elements[0].Int.Signed)
		require.Equal(t, int64(20), doc.Root.Array.Elements[1].Int.Signed)
	}
}

func TestDispatcher_UnsupportedArrayShapeRejected(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.byte(byte(RecordBinaryArray))
	b.i32(1)
	b.byte(byte(ArrayTypeRectangular))
	b.i32(2) // rank 2
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	_, err := d.ReadDocument()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrKindUnsupportedArrayShape, pe.Kind)
}

func TestDispatcher_BinaryArray_OffsetVariantRejectedEvenAtRank1(t *testing.T) {
	var b streamBuilder
	b.header(1)
	b.byte(byte(RecordBinaryArray))
	b.i32(1)
	b.byte(byte(ArrayTypeSingleOffset))
	b.i32(1) // rank
	b.messageEnd()

	d := NewDispatcher(NewBitReader(b.bytes()))
	_, err := d.ReadDocument()
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrKindUnsupportedArrayShape, pe.Kind)
}

func TestDispatcher_InvalidHeaderRejected(t *testing.T) {
	d := NewDispatcher(NewBitReader([]byte{0xFF}))
	_, err := d.ReadHeader()
	require.Error(t, err)
	require.True(t, errorsIsInvalidHeader(err))
}

func errorsIsInvalidHeader(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == ErrKindInvalidHeader
}
