package nrbf

import "sync"

// ObjectRegistry maps object id -> the Value registered for it, so that a
// later MemberReference record can be resolved to the value it points at.
// Only records that carry an ObjectID (BinaryObjectString, array records,
// class records) register themselves here.
type ObjectRegistry struct {
	mu   sync.RWMutex
	byID map[int32]*Value
}

// NewObjectRegistry returns an empty registry.
func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{byID: make(map[int32]*Value)}
}

// Register binds id to v. A reused id is a DuplicateId error: MS-NRBF object
// ids are assigned once, in increasing order, by the writer.
func (reg *ObjectRegistry) Register(offset int64, id int32, v *Value) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.byID[id]; exists {
		return errDuplicateId(offset, id)
	}
	reg.byID[id] = v
	return nil
}

// Lookup resolves an object id to its registered value.
func (reg *ObjectRegistry) Lookup(offset int64, id int32) (*Value, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	v, ok := reg.byID[id]
	if !ok {
		return nil, errUnknownObjectId(offset, id)
	}
	return v, nil
}

// Len reports how many objects have been registered so far.
func (reg *ObjectRegistry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.byID)
}
