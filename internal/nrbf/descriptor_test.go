package nrbf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeDescriptor_ParseDescriptors(t *testing.T) {
	var b streamBuilder
	b.byte(byte(BinaryTypePrimitive))
	b.byte(byte(BinaryTypeClass))
	b.byte(byte(PrimitiveInt32))
	b.str("MyNamespace.MyClass")
	b.i32(7)

	d := NewTypeDescriptor(NewBitReader(b.bytes()))
	infos, err := d.ParseDescriptors(2)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	require.Equal(t, PrimitiveInt32, infos[0].Primitive)
	require.True(t, infos[0].InlinePrimitive())
	require.Equal(t, "MyNamespace.MyClass", infos[1].ClassName)
	require.Equal(t, int32(7), infos[1].LibraryID)
	require.False(t, infos[1].InlinePrimitive())
}

func TestTypeDescriptor_RejectsUnknownBinaryType(t *testing.T) {
	r := NewBitReader([]byte{0xFE})
	d := NewTypeDescriptor(r)
	_, err := d.ParseDescriptors(1)
	require.Error(t, err)
	require.True(t, isKind(err, ErrKindUnexpectedBinaryType))
}
