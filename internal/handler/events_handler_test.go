package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"secret-draw-api/internal/domain"
)

func setupEventsServer(t *testing.T) (*EventHub, *httptest.Server) {
	gin.SetMode(gin.TestMode)

	hub := NewEventHub(zap.NewNop())
	h := NewEventsHandler(hub, zap.NewNop())

	router := gin.New()
	router.GET("/api/draws/:drawId/events", h.HandleEvents)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialEvents(t *testing.T, srv *httptest.Server, drawID uuid.UUID) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/draws/" + drawID.String() + "/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForWatchers(t *testing.T, hub *EventHub, drawID uuid.UUID, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		hub.clientsMu.RLock()
		defer hub.clientsMu.RUnlock()
		return len(hub.clients[drawID]) == want
	}, 2*time.Second, 10*time.Millisecond, "watcher count for draw never reached %d", want)
}

func TestEventHub_BroadcastsRedemption(t *testing.T) {
	hub, srv := setupEventsServer(t)
	drawID := uuid.New()

	conn := dialEvents(t, srv, drawID)
	waitForWatchers(t, hub, drawID, 1)

	participant := &domain.Participant{ID: uuid.New(), DrawID: drawID, Name: "Bob", Match: "Carol"}
	hub.NotifyRedeemed(drawID, participant)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event DrawEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "PARTICIPANT_REDEEMED", event.Type)
	assert.Equal(t, drawID.String(), event.DrawID)
	assert.Equal(t, participant.ID.String(), event.ParticipantID)
	assert.Equal(t, "Bob", event.Name)

	// The match never leaves the server, on any channel.
	assert.NotContains(t, string(data), "Carol")
}

func TestEventHub_ScopesEventsToTheirDraw(t *testing.T) {
	hub, srv := setupEventsServer(t)
	watchedDraw := uuid.New()
	otherDraw := uuid.New()

	conn := dialEvents(t, srv, watchedDraw)
	waitForWatchers(t, hub, watchedDraw, 1)

	// An event on another draw must not reach this watcher; the next frame
	// it sees has to be the one for its own draw.
	hub.NotifyRedeemed(otherDraw, &domain.Participant{ID: uuid.New(), DrawID: otherDraw, Name: "Erin"})
	hub.NotifyRedeemed(watchedDraw, &domain.Participant{ID: uuid.New(), DrawID: watchedDraw, Name: "Alice"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event DrawEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, watchedDraw.String(), event.DrawID)
	assert.Equal(t, "Alice", event.Name)
}

func TestEventHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := setupEventsServer(t)
	drawID := uuid.New()

	conn := dialEvents(t, srv, drawID)
	waitForWatchers(t, hub, drawID, 1)

	conn.Close()
	waitForWatchers(t, hub, drawID, 0)

	// Broadcasting into an empty room must not panic or block.
	hub.NotifyRedeemed(drawID, &domain.Participant{ID: uuid.New(), DrawID: drawID, Name: "Bob"})
}

func TestHandleEvents_InvalidDrawID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewEventsHandler(NewEventHub(zap.NewNop()), zap.NewNop())

	router := gin.New()
	router.GET("/api/draws/:drawId/events", h.HandleEvents)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/draws/not-a-uuid/events", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
