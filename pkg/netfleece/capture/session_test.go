package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_AddGetRemove(t *testing.T) {
	reg := NewSessionRegistry()
	s := &CaptureSession{ID: "1", ConnectedAt: time.Now()}
	reg.add(s)
	require.Equal(t, 1, reg.Len())

	got, ok := reg.Get("1")
	require.True(t, ok)
	require.Same(t, s, got)

	s.recordStream(10)
	s.recordStream(5)
	s.recordError()
	stats := reg.Snapshot()["1"]
	require.Equal(t, uint64(2), stats.StreamsDecoded)
	require.Equal(t, uint64(15), stats.BytesDecoded)
	require.Equal(t, uint64(1), stats.DecodeErrors)

	reg.remove("1")
	require.Equal(t, 0, reg.Len())
}
