package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenekit/internal/core/scene"
)

func TestHandleSnapshotHTTP(t *testing.T) {
	tree := buildTestTree(t)
	server := NewServer(DefaultConfig(), tree, nil)

	s := httptest.NewServer(http.HandlerFunc(server.handleSnapshot))
	defer s.Close()

	resp, err := http.Get(s.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Equal(t, "Root", snap.Name)
	require.Equal(t, 4, snap.NodeCount())
}

func TestWebSocketInitialSnapshot(t *testing.T) {
	tree := buildTestTree(t)
	server := NewServer(DefaultConfig(), tree, nil)

	s := httptest.NewServer(http.HandlerFunc(server.handleWebSocket))
	defer s.Close()

	u := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, "Root", snap.Name)
}

func TestWebSocketBroadcastAfterInitialPush(t *testing.T) {
	tree := buildTestTree(t)
	server := NewServer(DefaultConfig(), tree, nil)

	s := httptest.NewServer(http.HandlerFunc(server.handleWebSocket))
	defer s.Close()

	u := "ws" + strings.TrimPrefix(s.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, 4, snap.NodeCount())

	// The client must be registered once the initial push is out.
	tree.Root().AddChild(scene.NewNode(scene.NodeType, "late"))
	server.broadcast()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, 5, snap.NodeCount())
}

func TestServerStartAfterFailedStart(t *testing.T) {
	tree := buildTestTree(t)
	cfg := DefaultConfig()
	cfg.WebSocketAddr = "256.256.256.256:0"
	server := NewServer(cfg, tree, nil)

	require.Error(t, server.Start(context.Background()))
	require.Empty(t, server.subs, "failed start must not leave bus subscriptions behind")

	server.cfg.WebSocketAddr = "127.0.0.1:0"
	require.NoError(t, server.Start(context.Background()), "a corrected address must be retryable")
	require.NoError(t, server.Stop())
}

func TestServerStartStop(t *testing.T) {
	tree := buildTestTree(t)
	cfg := DefaultConfig()
	cfg.WebSocketAddr = "127.0.0.1:0"
	cfg.RefreshInterval = Duration(10 * time.Millisecond)
	server := NewServer(cfg, tree, nil)

	require.NoError(t, server.Start(context.Background()))

	u := "ws://" + server.WSAddr() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var snap Snapshot
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, 4, snap.NodeCount())

	// A tree change must be re-broadcast by the refresh loop.
	tree.Root().AddChild(scene.NewNode(scene.NodeType, "late"))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snap))
	require.Equal(t, 5, snap.NodeCount())

	require.NoError(t, server.Stop())
	require.Error(t, server.Start(context.Background()), "restart is not supported")
}
