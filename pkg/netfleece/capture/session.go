// Package capture implements the live capture listener: a WebSocket server
// that accepts one MS-NRBF-encoded binary message per stream, decodes it,
// and replies with the decoded JSON tree (or a decode error).
package capture

import (
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/puzpuzpuz/xsync/v3"
)

// CaptureSession tracks one accepted WebSocket connection's counters, the
// way the teacher's Runtime tracks memory-arena counters with
// atomic.Uint64 fields generalized here from bytes-allocated to
// streams/bytes decoded.
type CaptureSession struct {
	ID          string
	RemoteAddr  string
	ConnectedAt time.Time

	conn *websocket.Conn

	streamsDecoded atomic.Uint64
	bytesDecoded   atomic.Uint64
	decodeErrors   atomic.Uint64
}

// Stats is a snapshot of a session's counters.
type Stats struct {
	StreamsDecoded uint64 `json:"streams_decoded"`
	BytesDecoded   uint64 `json:"bytes_decoded"`
	DecodeErrors   uint64 `json:"decode_errors"`
}

// Stats returns the current counters.
func (s *CaptureSession) Stats() Stats {
	return Stats{
		StreamsDecoded: s.streamsDecoded.Load(),
		BytesDecoded:   s.bytesDecoded.Load(),
		DecodeErrors:   s.decodeErrors.Load(),
	}
}

func (s *CaptureSession) recordStream(n int) { s.streamsDecoded.Add(1); s.bytesDecoded.Add(uint64(n)) }
func (s *CaptureSession) recordError()       { s.decodeErrors.Add(1) }

// SessionRegistry is a concurrent id -> CaptureSession directory, backed by
// a lock-free map so a stats-reporting goroutine never blocks a decode
// goroutine registering or deregistering a connection.
type SessionRegistry struct {
	sessions *xsync.MapOf[string, *CaptureSession]
}

// NewSessionRegistry returns an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: xsync.NewMapOf[string, *CaptureSession]()}
}

func (r *SessionRegistry) add(s *CaptureSession)    { r.sessions.Store(s.ID, s) }
func (r *SessionRegistry) remove(id string)         { r.sessions.Delete(id) }

// Get looks up a session by id.
func (r *SessionRegistry) Get(id string) (*CaptureSession, bool) {
	return r.sessions.Load(id)
}

// Len reports the number of currently connected sessions.
func (r *SessionRegistry) Len() int { return r.sessions.Size() }

// Snapshot returns every session's id and stats, for a status endpoint.
func (r *SessionRegistry) Snapshot() map[string]Stats {
	out := make(map[string]Stats)
	r.sessions.Range(func(id string, s *CaptureSession) bool {
		out[id] = s.Stats()
		return true
	})
	return out
}
