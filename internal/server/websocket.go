package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pool-portal/internal/metrics"
	"github.com/yourusername/pool-portal/internal/service"
)

// WSMessage is the envelope pushed to dashboard clients. The only message
// type today is "prediction", sent whenever an admin write changes the
// distribution.
type WSMessage struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is one connected dashboard browser.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans freshly computed predictions out to every connected client.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *WSMessage
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mu         sync.RWMutex
}

// NewHub creates a websocket hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *WSMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.ConnectedClients.Set(float64(count))
			h.logger.WithField("clients", count).Debug("Websocket client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.ConnectedClients.Set(float64(count))
			h.logger.WithField("clients", count).Debug("Websocket client disconnected")

		case message := <-h.broadcast:
			payload, err := json.Marshal(message)
			if err != nil {
				h.logger.WithError(err).Error("Failed to marshal websocket message")
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Slow consumer, drop it rather than block the hub.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
			metrics.RecordLiveBroadcast()
		}
	}
}

// NotifyPrediction implements service.Notifier: it pushes the new
// distribution to every connected client.
func (h *Hub) NotifyPrediction(prediction *service.Prediction) {
	h.broadcast <- &WSMessage{
		Type:      "prediction",
		Timestamp: time.Now().Unix(),
		Data:      prediction,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// Clients never send anything meaningful; the read loop only exists to
	// detect disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Debug("Websocket read error")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// handleWebSocket upgrades the connection and registers the client with the
// hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 64),
	}
	s.hub.register <- client

	go client.writePump()
	go client.readPump()
}
