package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mozo/internal/chat"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsTurn is one inbound chat turn over the socket
type wsTurn struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// WSConnection maintains the WebSocket connection with one client
type WSConnection struct {
	conn     *websocket.Conn
	send     chan []byte
	mu       sync.Mutex
	sessions *chat.Manager
}

// handleWebSocket handles WebSocket chat connections
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	wsConn := &WSConnection{
		conn:     conn,
		send:     make(chan []byte, 256),
		sessions: s.sessions,
	}

	go wsConn.writePump()
	go wsConn.readPump()
}

// readPump pumps messages from the WebSocket connection to the session
func (c *WSConnection) readPump() {
	defer func() {
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *WSConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes one inbound turn
func (c *WSConnection) handleMessage(message []byte) {
	var turn wsTurn
	if err := json.Unmarshal(message, &turn); err != nil {
		c.sendError("invalid message")
		return
	}
	if turn.SessionID == "" {
		c.sendError("session_id is required")
		return
	}

	// The submit blocks on the gateway; run it off the read pump so
	// pings keep flowing. The session itself rejects overlapping turns.
	go func() {
		session := c.sessions.GetOrCreate(turn.SessionID)
		result, err := session.Submit(context.Background(), turn.Message)
		if err != nil {
			switch {
			case errors.Is(err, chat.ErrEmptyInput):
				c.sendError("empty message")
			case errors.Is(err, chat.ErrBusy):
				c.sendError("a turn is already in progress")
			default:
				c.sendError(err.Error())
			}
			return
		}
		c.sendResult(result)
	}()
}

// sendResult sends a turn result to the client
func (c *WSConnection) sendResult(result *chat.TurnResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error marshaling result: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client
func (c *WSConnection) sendError(message string) {
	response := map[string]string{"error": message}
	data, _ := json.Marshal(response)

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping error message")
	}
}
