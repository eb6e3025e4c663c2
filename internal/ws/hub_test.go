package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderEvent struct {
	ID string
}

func startHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(func(v any) any {
		if e, ok := v.(orderEvent); ok {
			return map[string]string{"id": e.ID}
		}
		return v
	})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := uuid.MustParse(r.URL.Query().Get("user"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(conn, hub, userID).Run(r.Context())
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server, hub *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Connected(userID) == 1 }, 2*time.Second, 10*time.Millisecond)
	return conn
}

func TestHub_DeliversFrameToRecipient(t *testing.T) {
	hub, srv, _ := startHub(t)
	alice, bob := uuid.New(), uuid.New()
	aliceConn := dial(t, srv, hub, alice)
	bobConn := dial(t, srv, hub, bob)

	hub.Publish([]uuid.UUID{alice, alice, uuid.Nil}, "order.status_changed", orderEvent{ID: "42"})

	_ = aliceConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := aliceConn.ReadMessage()
	require.NoError(t, err)

	var frame struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.Equal(t, "order.status_changed", frame.Type)
	assert.Equal(t, "42", frame.Data["id"])

	// Дубликат получателя не даёт второго кадра.
	_ = aliceConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = aliceConn.ReadMessage()
	assert.Error(t, err)

	_ = bobConn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bobConn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv, _ := startHub(t)
	userID := uuid.New()
	conn := dial(t, srv, hub, userID)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub, srv, cancel := startHub(t)
	userID := uuid.New()
	conn := dial(t, srv, hub, userID)

	cancel()
	assert.Eventually(t, func() bool { return hub.Connected(userID) == 0 }, 2*time.Second, 10*time.Millisecond)

	// Сервер закрывает сокет после остановки хаба.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.Publish([]uuid.UUID{userID}, "message.created", "x")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish заблокировался после остановки хаба")
	}
}

func TestHub_PublishSkipsUnserializable(t *testing.T) {
	hub := NewHub(nil)
	hub.Publish([]uuid.UUID{uuid.New()}, "broken", make(chan int))
	assert.Empty(t, hub.broadcast)
}
