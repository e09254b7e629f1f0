package nrbf

// IteratorStatus mirrors the teacher's IteratorStatus enum (active while
// records remain, exhausted once MessageEnd is consumed, closed once the
// caller is done with it regardless of exhaustion).
type IteratorStatus int

const (
	IteratorActive IteratorStatus = iota
	IteratorExhausted
	IteratorClosed
)

func (s IteratorStatus) String() string {
	switch s {
	case IteratorActive:
		return "active"
	case IteratorExhausted:
		return "exhausted"
	case IteratorClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// RecordIterator lazily decodes one top-level value per Next call instead of
// decoding the whole stream up front, for callers that want to start acting
// on early records before the rest has been decoded. The input itself is
// still a complete in-memory buffer.
// Grounded on the teacher's IteratorManager/IteratorMetadata shape, trimmed
// of table/index identity and pooling since there is exactly one object
// registry per stream rather than many concurrently iterated tables.
type RecordIterator struct {
	d      *Dispatcher
	Header *StreamHeader
	status IteratorStatus
}

// NewRecordIterator reads the stream header and returns a ready iterator.
func NewRecordIterator(d *Dispatcher) (*RecordIterator, error) {
	header, err := d.ReadHeader()
	if err != nil {
		return nil, err
	}
	return &RecordIterator{d: d, Header: header, status: IteratorActive}, nil
}

// Status reports the iterator's current lifecycle state.
func (it *RecordIterator) Status() IteratorStatus { return it.status }

// Next returns the next top-level value, or (nil, false, nil) once
// MessageEnd has been consumed. Calling Next after exhaustion or Close
// returns (nil, false, nil) without touching the underlying reader again.
func (it *RecordIterator) Next() (*Value, bool, error) {
	if it.status != IteratorActive {
		return nil, false, nil
	}
	for {
		v, err := it.d.readValue()
		if err != nil {
			it.status = IteratorExhausted
			return nil, false, err
		}
		if it.d.Ended() {
			it.status = IteratorExhausted
			return nil, false, nil
		}
		return v, true, nil
	}
}

// Objects exposes the registry accumulated so far, usable for reference
// resolution once the caller has decided it has everything it needs.
func (it *RecordIterator) Objects() *ObjectRegistry { return it.d.Objects() }

// Close marks the iterator closed. Safe to call more than once.
func (it *RecordIterator) Close() error {
	it.status = IteratorClosed
	return nil
}
