package handler

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"secret-draw-api/internal/domain"
	"secret-draw-api/internal/response"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// DrawEvent is the message broadcast to every browser watching a draw.
// Only public facts go over the wire: who redeemed, never their match.
type DrawEvent struct {
	Type          string    `json:"type"`
	DrawID        string    `json:"drawId"`
	ParticipantID string    `json:"participantId"`
	Name          string    `json:"name"`
	Timestamp     time.Time `json:"timestamp"`
}

type eventClient struct {
	conn   *websocket.Conn
	send   chan []byte
	drawID uuid.UUID
}

// EventHub fans redemption events out to the websocket clients watching
// each draw. It implements service.RedemptionNotifier, so a claim that
// wins the database race is pushed to everyone still choosing a name.
type EventHub struct {
	clients    map[uuid.UUID]map[*eventClient]bool
	clientsMu  sync.RWMutex
	register   chan *eventClient
	unregister chan *eventClient
	logger     *zap.Logger
}

// NewEventHub creates an EventHub and starts its dispatch loop
func NewEventHub(logger *zap.Logger) *EventHub {
	hub := &EventHub{
		clients:    make(map[uuid.UUID]map[*eventClient]bool),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		logger:     logger,
	}

	go hub.run()

	return hub
}

func (h *EventHub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.drawID] == nil {
				h.clients[client.drawID] = make(map[*eventClient]bool)
			}
			h.clients[client.drawID][client] = true
			h.clientsMu.Unlock()

			h.logger.Debug("Event client registered",
				zap.String("draw_id", client.drawID.String()))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.drawID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.drawID)
					}
				}
			}
			h.clientsMu.Unlock()

			h.logger.Debug("Event client unregistered",
				zap.String("draw_id", client.drawID.String()))
		}
	}
}

// NotifyRedeemed implements service.RedemptionNotifier
func (h *EventHub) NotifyRedeemed(drawID uuid.UUID, participant *domain.Participant) {
	payload, err := json.Marshal(DrawEvent{
		Type:          "PARTICIPANT_REDEEMED",
		DrawID:        drawID.String(),
		ParticipantID: participant.ID.String(),
		Name:          participant.Name,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("Failed to marshal draw event", zap.Error(err))
		return
	}

	h.broadcastToDraw(drawID, payload)
}

func (h *EventHub) broadcastToDraw(drawID uuid.UUID, message []byte) {
	h.clientsMu.RLock()
	clients := make([]*eventClient, 0, len(h.clients[drawID]))
	for client := range h.clients[drawID] {
		clients = append(clients, client)
	}
	h.clientsMu.RUnlock()

	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			h.unregister <- client
		}
	}
}

// EventsHandler upgrades GET /api/draws/:drawId/events to a websocket feed
type EventsHandler struct {
	hub    *EventHub
	logger *zap.Logger
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(hub *EventHub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		logger: logger,
	}
}

// HandleEvents handles GET /api/draws/:drawId/events
func (h *EventsHandler) HandleEvents(c *gin.Context) {
	drawID, err := uuid.Parse(c.Param("drawId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid draw ID")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	client := &eventClient{
		conn:   conn,
		send:   make(chan []byte, 16),
		drawID: drawID,
	}

	h.hub.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

// readPump drains the connection; the feed is one-way, so inbound frames
// only matter for close and pong handling.
func (h *EventsHandler) readPump(client *eventClient) {
	defer func() {
		h.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("WebSocket error", zap.Error(err))
			}
			break
		}
	}
}

func (h *EventsHandler) writePump(client *eventClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
