package capture

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/MiraCrypto/netfleece/pkg/netfleece"
)

func minimalStringStream(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	i32 := func(v int32) {
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(v))
		buf.Write(tmp[:])
	}
	buf.WriteByte(0) // SerializedStreamHeader
	i32(1)           // RootId
	i32(-1)          // HeaderId
	i32(1)           // MajorVersion
	i32(0)           // MinorVersion
	buf.WriteByte(6) // BinaryObjectString
	i32(1)           // ObjectId
	buf.WriteByte(byte(len(s)))
	buf.WriteString(s)
	buf.WriteByte(11) // MessageEnd
	return buf.Bytes()
}

func TestCaptureServer_DecodesOneStreamPerMessage(t *testing.T) {
	srv := NewCaptureServer("", netfleece.ResolveExpand, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/decode"
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, conn.Write(ctx, websocket.MessageBinary, minimalStringStream(t, "hi")))

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, typ)

	var resp struct {
		OK   bool   `json:"ok"`
		Root string `json:"root"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	require.True(t, resp.OK)
	require.Equal(t, "hi", resp.Root)

	require.Equal(t, 1, srv.Sessions().Len())
}
