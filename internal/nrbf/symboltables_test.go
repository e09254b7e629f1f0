package nrbf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryTable_DuplicateId(t *testing.T) {
	tbl := NewLibraryTable()
	require.NoError(t, tbl.Register(0, 1, "mscorlib"))
	err := tbl.Register(0, 1, "other")
	require.Error(t, err)
	require.True(t, isKind(err, ErrKindDuplicateId))
}

func TestLibraryTable_UnknownId(t *testing.T) {
	tbl := NewLibraryTable()
	_, err := tbl.Lookup(0, 99)
	require.Error(t, err)
	require.True(t, isKind(err, ErrKindUnknownLibrary))
}

func TestClassTable_RoundTrip(t *testing.T) {
	tbl := NewClassTable()
	layout := &ClassLayout{ObjectID: 5, Name: "Foo"}
	require.NoError(t, tbl.Register(0, layout))
	got, err := tbl.Lookup(0, 5)
	require.NoError(t, err)
	require.Same(t, layout, got)
}

func isKind(err error, kind ErrorKind) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == kind
}
