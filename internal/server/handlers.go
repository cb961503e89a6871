package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadagent/internal/session"
	"leadagent/internal/tools"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	Response     string             `json:"response"`
	SessionID    string             `json:"session_id"`
	ToolExecuted *tools.SideChannel `json:"tool_executed,omitempty"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	sess, err := s.resolveSession(req.SessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	history := sess.Turns
	if _, err := s.sessions.Append(sess.ID, "user", req.Message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	display, side, err := s.orchestrator.ProcessTurn(c.Request.Context(), req.Message, history)
	if err != nil {
		// Render failures are the one error class surfaced to the caller.
		s.logger.Error("turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.sessions.Append(sess.ID, "assistant", display); err != nil {
		s.logger.Error("failed to persist assistant turn: %v", err)
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:     display,
		SessionID:    sess.ID,
		ToolExecuted: side,
	})
}

func (s *Server) resolveSession(id string) (*session.Session, error) {
	if id == "" {
		return s.sessions.Create()
	}
	return s.sessions.Get(id)
}

func (s *Server) handleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.configStore.Load().Values())
}

func (s *Server) handleUpdateConfig(c *gin.Context) {
	var changes map[string]any
	if err := c.ShouldBindJSON(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config payload"})
		return
	}
	doc, err := s.configStore.Update(changes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Configuration updated", "config": doc})
}

func (s *Server) handlePresets(c *gin.Context) {
	presets, err := s.configStore.Presets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, presets)
}

type presetSelect struct {
	PresetID string `json:"preset_id" binding:"required"`
}

func (s *Server) handleApplyPreset(c *gin.Context) {
	var sel presetSelect
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preset_id is required"})
		return
	}
	preset, err := s.configStore.ApplyPreset(sel.PresetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Applied preset: " + preset.CompanyName})
}

type knowledgeUpload struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleKnowledge(c *gin.Context) {
	var upload knowledgeUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if err := s.configStore.SaveKnowledge(upload.Text); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Knowledge base updated"})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	sessions, err := s.sessions.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totalMinutes := 0
	for _, sess := range sessions {
		totalMinutes += sess.DurationMinutes()
	}
	avg := 0.0
	if len(sessions) > 0 {
		avg = float64(totalMinutes) / float64(len(sessions))
	}

	roster, err := s.leadStore.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_sessions":           len(sessions),
		"average_duration_minutes": avg,
		"leads":                    roster,
	})
}
