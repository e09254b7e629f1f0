package nrbf

import (
	"sync"
	"sync/atomic"
)

// Session is the driver's resource lifecycle: a set of cleanup funcs run
// once, in reverse order, when the session is closed (Driver.Close); Parse
// itself does not close it. Grounded on the teacher's
// Runtime{cleanup []func() error} shape, narrowed from a general memory
// arena to the one resource a parse actually owns today (the BitReader's
// backing buffer has no cleanup of its own, but callers wiring in e.g. a
// capture session's byte counters hook in here).
type Session struct {
	mu      sync.Mutex
	cleanup []func() error

	recordsDecoded atomic.Uint64
	bytesRead      atomic.Uint64
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// AddCleanup registers fn to run when the session closes.
func (s *Session) AddCleanup(fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanup = append(s.cleanup, fn)
}

// RecordDecoded increments the decoded-record counter. The driver does not
// call it: Driver.Parse stores the number of registered objects in that
// counter instead.
func (s *Session) RecordDecoded() { s.recordsDecoded.Add(1) }

// SetBytesRead records how many input bytes were consumed.
func (s *Session) SetBytesRead(n int64) { s.bytesRead.Store(uint64(n)) }

// Stats is a snapshot of session counters.
type Stats struct {
	RecordsDecoded uint64
	BytesRead      uint64
}

// Stats returns the current counters.
func (s *Session) Stats() Stats {
	return Stats{RecordsDecoded: s.recordsDecoded.Load(), BytesRead: s.bytesRead.Load()}
}

// Close runs every registered cleanup func in reverse registration order,
// collecting the first error but still running the rest.
func (s *Session) Close() error {
	s.mu.Lock()
	fns := s.cleanup
	s.cleanup = nil
	s.mu.Unlock()

	var first error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
