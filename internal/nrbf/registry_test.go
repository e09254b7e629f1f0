package nrbf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectRegistry_DuplicateAndUnknown(t *testing.T) {
	reg := NewObjectRegistry()
	v := stringValue("x")
	require.NoError(t, reg.Register(0, 1, v))
	require.True(t, isKind(reg.Register(0, 1, v), ErrKindDuplicateId))

	got, err := reg.Lookup(0, 1)
	require.NoError(t, err)
	require.Same(t, v, got)

	_, err = reg.Lookup(0, 2)
	require.True(t, isKind(err, ErrKindUnknownObjectId))
	require.Equal(t, 1, reg.Len())
}
