package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mozo/internal/catalog"
	"mozo/internal/chat"
)

// ChatRequest is one user turn for a session
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// MenuEntry is one menu item as the API reports it
type MenuEntry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

func (s *Server) handleMenu(c *gin.Context) {
	items := s.cat.Items()
	entries := make([]MenuEntry, len(items))
	for i, it := range items {
		entries[i] = MenuEntry{ID: it.ID, Name: it.Name, Price: it.Price, Category: string(it.Category)}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := s.sessions.GetOrCreate(req.SessionID)
	result, err := session.Submit(c.Request.Context(), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty message"})
		case errors.Is(err, chat.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "a turn is already in progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	s.monitor.IncrementMetric("chat_turns")
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCart(c *gin.Context) {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	lines, total := session.Cart()
	type cartLine struct {
		Name      string  `json:"name"`
		Qty       int     `json:"qty"`
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}
	out := make([]cartLine, len(lines))
	for i, l := range lines {
		out[i] = cartLine{
			Name:      l.Item.Name,
			Qty:       l.Qty,
			UnitPrice: l.Item.Price,
			LineTotal: l.Item.Price * float64(l.Qty),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"items": out,
		"total": total,
		"text":  catalog.Currency(total),
		"busy":  session.Busy(),
	})
}

func (s *Server) handleTranscript(c *gin.Context) {
	session, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": session.Transcript()})
}

func (s *Server) handleStats(c *gin.Context) {
	metrics := s.monitor.GetMetrics()
	metrics["sessions"] = s.sessions.Count()
	c.JSON(http.StatusOK, metrics)
}
