package nrbf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildLinkedPair registers two class instances, A referencing B by value
// and B referencing A back by MemberReference, and returns A.
func buildLinkedPair(t *testing.T) (*Value, *ObjectRegistry) {
	t.Helper()
	objects := NewObjectRegistry()
	a := &Value{Kind: KindClassInstance, Class: &ClassInstance{ObjectID: 1, Name: "A", Members: []Member{
		{Name: "Next", Value: referenceValue(2)},
	}}}
	b := &Value{Kind: KindClassInstance, Class: &ClassInstance{ObjectID: 2, Name: "B", Members: []Member{
		{Name: "Back", Value: referenceValue(1)},
	}}}
	require.NoError(t, objects.Register(0, 1, a))
	require.NoError(t, objects.Register(0, 2, b))
	return a, objects
}

func TestReferenceResolver_InPlaceCycle(t *testing.T) {
	a, objects := buildLinkedPair(t)
	resolver := NewReferenceResolver(objects)
	require.NoError(t, resolver.ResolveInPlace(a))

	b := a.Class.Members[0].Value
	require.Equal(t, "B", b.Class.Name)
	require.Same(t, a, b.Class.Members[0].Value)
}

func TestReferenceResolver_ExpandDetectsCycleAndErrors(t *testing.T) {
	a, objects := buildLinkedPair(t)
	resolver := NewReferenceResolver(objects)
	_, err := resolver.ResolveExpand(a, nil)
	require.Error(t, err)
	require.True(t, isKind(err, ErrKindCyclicReference))
}

func TestReferenceResolver_ExpandWithCycleStub(t *testing.T) {
	a, objects := buildLinkedPair(t)
	resolver := NewReferenceResolver(objects)
	stub := stringValue("<cycle>")
	got, err := resolver.ResolveExpand(a, func(id int32) *Value { return stub })
	require.NoError(t, err)
	b := got.Class.Members[0].Value
	require.Equal(t, "B", b.Class.Name)
	require.Same(t, stub, b.Class.Members[0].Value)
}

func TestReferenceResolver_ExpandDiamondNotTreatedAsCycle(t *testing.T) {
	objects := NewObjectRegistry()
	leaf := &Value{Kind: KindClassInstance, Class: &ClassInstance{ObjectID: 3, Name: "Leaf"}}
	require.NoError(t, objects.Register(0, 3, leaf))
	root := &Value{Kind: KindClassInstance, Class: &ClassInstance{ObjectID: 1, Name: "Root", Members: []Member{
		{Name: "Left", Value: referenceValue(3)},
		{Name: "Right", Value: referenceValue(3)},
	}}}
	resolver := NewReferenceResolver(objects)
	got, err := resolver.ResolveExpand(root, nil)
	require.NoError(t, err)
	require.Equal(t, "Leaf", got.Class.Members[0].Value.Class.Name)
	require.Equal(t, "Leaf", got.Class.Members[1].Value.Class.Name)
	require.NotSame(t, got.Class.Members[0].Value, got.Class.Members[1].Value)
}
