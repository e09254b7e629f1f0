package nrbf

// ReferenceResolver substitutes KindReference placeholders left by
// MemberReference records with the value they point at (spec.md §4.6).
// Two modes are offered because the two downstream uses want different
// shapes: in-place resolution keeps pointer identity (so repeated
// references to one object share structure, including cycles), which suits
// a caller walking the Go value graph directly; expansion resolution
// produces a cycle-free tree of independent copies, which suits a caller
// about to hand the result to a tree-only serializer such as JSON.
type ReferenceResolver struct {
	objects *ObjectRegistry
}

// NewReferenceResolver builds a resolver over a fully-read object registry.
func NewReferenceResolver(objects *ObjectRegistry) *ReferenceResolver {
	return &ReferenceResolver{objects: objects}
}

// ResolveInPlace walks root's member and array slots, rewriting each
// KindReference it finds to point directly at the registered target, and
// recurses into the result. A *Value already fully resolved is visited at
// most once even if reachable by more than one path, which both memoizes
// the walk and is what makes a cyclic graph terminate.
func (r *ReferenceResolver) ResolveInPlace(root *Value) error {
	return r.resolveInPlace(root, make(map[*Value]bool))
}

func (r *ReferenceResolver) resolveInPlace(v *Value, visited map[*Value]bool) error {
	if v == nil || visited[v] {
		return nil
	}
	visited[v] = true
	switch v.Kind {
	case KindClassInstance:
		for i := range v.Class.Members {
			m := &v.Class.Members[i]
			if m.Value != nil && m.Value.Kind == KindReference {
				target, err := r.objects.Lookup(0, m.Value.RefID)
				if err != nil {
					return err
				}
				m.Value = target
			}
			if err := r.resolveInPlace(m.Value, visited); err != nil {
				return err
			}
		}
	case KindArray:
		for i, el := range v.Array.Elements {
			if el != nil && el.Kind == KindReference {
				target, err := r.objects.Lookup(0, el.RefID)
				if err != nil {
					return err
				}
				v.Array.Elements[i] = target
				el = target
			}
			if err := r.resolveInPlace(el, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveExpand returns a new value tree with every reference replaced by a
// copy of its target, itself expanded recursively at each occurrence site,
// so no two sites share a node. A reference
// whose target is an ancestor of the current expansion path is a genuine
// cycle in the underlying graph and cannot be expanded into a finite tree;
// onCycle decides what happens: return a stub Value to splice in, or nil to
// propagate a CyclicReference error.
func (r *ReferenceResolver) ResolveExpand(root *Value, onCycle func(id int32) *Value) (*Value, error) {
	return r.expand(root, map[int32]bool{}, onCycle)
}

func (r *ReferenceResolver) expand(v *Value, ancestry map[int32]bool, onCycle func(int32) *Value) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case KindReference:
		if ancestry[v.RefID] {
			if onCycle != nil {
				if stub := onCycle(v.RefID); stub != nil {
					return stub, nil
				}
			}
			return nil, errCyclicReference(0, v.RefID)
		}
		target, err := r.objects.Lookup(0, v.RefID)
		if err != nil {
			return nil, err
		}
		return r.expand(target, ancestry, onCycle)
	case KindClassInstance:
		next := ancestry
		if v.Class.ObjectID != 0 {
			next = withAncestor(ancestry, v.Class.ObjectID)
		}
		members := make([]Member, len(v.Class.Members))
		for i, m := range v.Class.Members {
			child, err := r.expand(m.Value, next, onCycle)
			if err != nil {
				return nil, err
			}
			members[i] = Member{Name: m.Name, Value: child}
		}
		return &Value{Kind: KindClassInstance, Class: &ClassInstance{
			ObjectID:    v.Class.ObjectID,
			Name:        v.Class.Name,
			LibraryID:   v.Class.LibraryID,
			LibraryName: v.Class.LibraryName,
			Members:     members,
		}}, nil
	case KindArray:
		next := ancestry
		if v.Array.ObjectID != 0 {
			next = withAncestor(ancestry, v.Array.ObjectID)
		}
		elems := make([]*Value, len(v.Array.Elements))
		for i, el := range v.Array.Elements {
			child, err := r.expand(el, next, onCycle)
			if err != nil {
				return nil, err
			}
			elems[i] = child
		}
		return &Value{Kind: KindArray, Array: &ArrayValue{ObjectID: v.Array.ObjectID, Elements: elems}}, nil
	default:
		cp := *v
		return &cp, nil
	}
}

func withAncestor(ancestry map[int32]bool, id int32) map[int32]bool {
	next := make(map[int32]bool, len(ancestry)+1)
	for k := range ancestry {
		next[k] = true
	}
	next[id] = true
	return next
}
