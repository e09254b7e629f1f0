package nrbf

// ResolveMode selects how MemberReference placeholders are handled after a
// stream has been fully read, per spec.md §4.6.
type ResolveMode int

const (
	// ResolveNone leaves KindReference placeholders in the returned tree.
	ResolveNone ResolveMode = iota
	// ResolveInPlace rewrites placeholders to share structure with their
	// target, which may reintroduce cycles.
	ResolveInPlace
	// ResolveExpand substitutes a fresh copy of the target at each
	// reference site, producing a cycle-free tree suitable for JSON.
	ResolveExpand
)

// Driver is the package's entry point, grounded on the teacher's
// pkg/spacetimedb facade (a small friendly surface over the internal
// engine) combined with cmd/spacetimedb/main.go's construct-then-defer-Close
// lifecycle.
type Driver struct {
	session *Session
}

// NewDriver returns a Driver backed by a fresh Session.
func NewDriver() *Driver {
	return &Driver{session: NewSession()}
}

// Session exposes the driver's resource lifecycle and counters.
func (drv *Driver) Session() *Session { return drv.session }

// Close releases resources registered against the driver's session.
func (drv *Driver) Close() error { return drv.session.Close() }

// Parse reads an entire MS-NRBF stream from buf and returns its Document
// unresolved (KindReference placeholders untouched). Use ParseAndResolve to
// also run a ReferenceResolver.
func (drv *Driver) Parse(buf []byte) (*Document, error) {
	if buf == nil {
		return nil, errNilReader
	}
	r := NewBitReader(buf)
	d := NewDispatcher(r)
	doc, err := d.ReadDocument()
	if err != nil {
		return nil, err
	}
	drv.session.SetBytesRead(r.Offset())
	drv.session.recordsDecoded.Store(uint64(d.Objects().Len()))
	return doc, nil
}

// ParseAndResolve parses buf and resolves references in the requested mode.
// For ResolveExpand, onCycle (may be nil) decides what replaces a detected
// cycle; nil means a detected cycle fails the whole parse.
func (drv *Driver) ParseAndResolve(buf []byte, mode ResolveMode, onCycle func(id int32) *Value) (*Document, error) {
	doc, err := drv.Parse(buf)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ResolveNone:
		return doc, nil
	case ResolveInPlace:
		resolver := NewReferenceResolver(doc.Objects)
		if err := resolver.ResolveInPlace(doc.Root); err != nil {
			return nil, err
		}
		return doc, nil
	case ResolveExpand:
		resolver := NewReferenceResolver(doc.Objects)
		resolved, err := resolver.ResolveExpand(doc.Root, onCycle)
		if err != nil {
			return nil, err
		}
		doc.Root = resolved
		return doc, nil
	default:
		return nil, errorf("unknown resolve mode %d", mode)
	}
}

// IterRecords returns a lazy RecordIterator over buf instead of buffering
// the whole decoded tree up front.
func (drv *Driver) IterRecords(buf []byte) (*RecordIterator, error) {
	r := NewBitReader(buf)
	d := NewDispatcher(r)
	return NewRecordIterator(d)
}
