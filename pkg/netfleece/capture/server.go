package capture

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/MiraCrypto/netfleece/pkg/netfleece"
)

// CaptureServer accepts WebSocket connections and decodes one MS-NRBF
// stream per binary message received on each connection. Grounded on the
// teacher's realtime accept-loop-plus-per-connection-goroutine shape
// (pkg/spacetimedb/realtime), adapted from table-row-diff event emission to
// decode-request/decode-response framing, which is the concern this
// listener actually has.
type CaptureServer struct {
	Addr       string
	Resolve    netfleece.ResolveMode
	Logger     *log.Logger
	sessions   *SessionRegistry
	nextID     atomic.Uint64
	httpServer *http.Server
}

// NewCaptureServer returns a server bound to addr. Call ListenAndServe to
// run it.
func NewCaptureServer(addr string, resolve netfleece.ResolveMode, logger *log.Logger) *CaptureServer {
	if logger == nil {
		logger = log.Default()
	}
	return &CaptureServer{Addr: addr, Resolve: resolve, Logger: logger, sessions: NewSessionRegistry()}
}

// Sessions exposes the live session registry, e.g. for a status endpoint.
func (s *CaptureServer) Sessions() *SessionRegistry { return s.sessions }

// Handler returns the server's http.Handler, exposed separately from
// ListenAndServe so tests can drive it with httptest without binding a
// real listener.
func (s *CaptureServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/decode", s.handleDecode)
	mux.HandleFunc("/stats", s.handleStats)
	return mux
}

// ListenAndServe blocks serving WebSocket connections until ctx is
// cancelled or an unrecoverable listen error occurs.
func (s *CaptureServer) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{Addr: s.Addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *CaptureServer) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.sessions.Snapshot())
}

func (s *CaptureServer) handleDecode(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Logger.Printf("capture: accept failed: %v", err)
		return
	}

	session := &CaptureSession{
		ID:          strconv.FormatUint(s.nextID.Add(1), 10),
		RemoteAddr:  r.RemoteAddr,
		ConnectedAt: time.Now(),
		conn:        conn,
	}
	s.sessions.add(session)
	defer s.sessions.remove(session.ID)
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageBinary {
			continue
		}
		s.decodeAndReply(ctx, conn, session, data)
	}
}

// decodeResponse is the JSON envelope sent back per decoded stream.
type decodeResponse struct {
	OK    bool            `json:"ok"`
	Root  json.RawMessage `json:"root,omitempty"`
	Error string          `json:"error,omitempty"`
}

func (s *CaptureServer) decodeAndReply(ctx context.Context, conn *websocket.Conn, session *CaptureSession, data []byte) {
	drv := netfleece.NewDriver()
	defer drv.Close()

	doc, err := drv.ParseAndResolve(data, s.Resolve, nil)
	resp := decodeResponse{}
	if err != nil {
		session.recordError()
		resp.Error = err.Error()
	} else {
		session.recordStream(len(data))
		root, marshalErr := json.Marshal(doc.Root)
		if marshalErr != nil {
			resp.Error = marshalErr.Error()
		} else {
			resp.OK = true
			resp.Root = root
		}
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		s.Logger.Printf("capture: marshal response: %v", err)
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		s.Logger.Printf("capture: write response: %v", err)
	}
}
