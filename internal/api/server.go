// Package api exposes the ordering assistant over HTTP and WebSocket.
// This surface is the renderer boundary: it forwards user turns to the
// per-session orchestrator and reports the resulting transcript/cart.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mozo/internal/catalog"
	"mozo/internal/chat"
	"mozo/internal/monitoring"
)

// Server is the HTTP front for the ordering assistant
type Server struct {
	Router   *gin.Engine
	sessions *chat.Manager
	cat      *catalog.Catalog
	monitor  *monitoring.Monitor
}

// NewServer creates the API server and wires its routes
func NewServer(sessions *chat.Manager, cat *catalog.Catalog, monitor *monitoring.Monitor) *Server {
	s := &Server{
		Router:   gin.Default(),
		sessions: sessions,
		cat:      cat,
		monitor:  monitor,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "mozo API is running"})
	})
	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		v1.GET("/menu", s.handleMenu)
		v1.POST("/chat", s.handleChat)
		v1.GET("/sessions/:id/cart", s.handleCart)
		v1.GET("/sessions/:id/transcript", s.handleTranscript)
		v1.GET("/stats", s.handleStats)
	}
}
