package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sankofa/internal/events"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, hub *Hub, userID uuid.UUID, staff bool) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn, userID, staff)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) events.Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var e events.Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHubRoutesEvents(t *testing.T) {
	hub := NewHub(nil)
	collectorID := uuid.New()

	collector := dial(t, hub, collectorID, false)
	admin := dial(t, hub, uuid.New(), true)
	require.Eventually(t, func() bool { return hub.Connections() == 2 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, events.New(events.CollectionVerified, &collectorID, nil)))
	require.NoError(t, hub.Publish(ctx, events.New(events.HubCapacityFull, nil, nil)))

	assert.Equal(t, events.CollectionVerified, readEvent(t, collector).Type)
	assert.Equal(t, events.HubCapacityFull, readEvent(t, admin).Type)

	// the collector must not see staff-only events
	require.NoError(t, collector.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := collector.ReadMessage()
	assert.Error(t, err)
}

func TestHubClose(t *testing.T) {
	hub := NewHub(nil)
	dial(t, hub, uuid.New(), true)
	require.Eventually(t, func() bool { return hub.Connections() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Connections())
}
