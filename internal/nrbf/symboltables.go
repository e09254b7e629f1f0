package nrbf

import "sync"

// ClassLayout is a class definition as introduced by ClassWithMembers(AndTypes)
// or SystemClassWithMembers(AndTypes): the name, member names in declaration
// order, and (when the record carried explicit types) each member's
// MemberTypeInfo. ClassWithId records reuse a layout already registered
// under another record's ObjectID rather than redeclaring one.
type ClassLayout struct {
	ObjectID    int32
	Name        string
	LibraryID   int32  // only meaningful when the defining record carried a library_id field
	LibraryName string // resolved at registration time for non-system records; empty for system classes
	MemberNames []string
	MemberTypes []MemberTypeInfo // nil if the record carried no explicit types
}

// LibraryTable is the append-only id -> name map populated by BinaryLibrary
// records, grounded on the mutex-guarded table map in the teacher's
// internal/db package generalized from "named table" to "named library".
type LibraryTable struct {
	mu   sync.RWMutex
	byID map[int32]string
}

// NewLibraryTable returns an empty table.
func NewLibraryTable() *LibraryTable {
	return &LibraryTable{byID: make(map[int32]string)}
}

// Register records a new library id -> name binding. A reused id is a
// DuplicateId error, per spec.md's Open Question decision (DESIGN.md).
func (t *LibraryTable) Register(offset int64, id int32, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byID[id]; exists {
		return errDuplicateId(offset, id)
	}
	t.byID[id] = name
	return nil
}

// Lookup resolves a library id to its name.
func (t *LibraryTable) Lookup(offset int64, id int32) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	name, ok := t.byID[id]
	if !ok {
		return "", errUnknownLibrary(offset, id)
	}
	return name, nil
}

// ClassTable is the append-only ObjectID -> ClassLayout map populated by
// every class-defining record kind. ClassWithId looks an existing layout up
// by the ObjectID of the record that first defined it.
type ClassTable struct {
	mu      sync.RWMutex
	byID    map[int32]*ClassLayout
}

// NewClassTable returns an empty table.
func NewClassTable() *ClassTable {
	return &ClassTable{byID: make(map[int32]*ClassLayout)}
}

// Register records a new class layout under its defining ObjectID.
func (t *ClassTable) Register(offset int64, layout *ClassLayout) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.byID[layout.ObjectID]; exists {
		return errDuplicateId(offset, layout.ObjectID)
	}
	t.byID[layout.ObjectID] = layout
	return nil
}

// Lookup resolves an ObjectID to the class layout it was first defined
// under, the behavior ClassWithId records rely on.
func (t *ClassTable) Lookup(offset int64, id int32) (*ClassLayout, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	layout, ok := t.byID[id]
	if !ok {
		return nil, errUnknownClass(offset, id)
	}
	return layout, nil
}
