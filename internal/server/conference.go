package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type loadInvoiceRequest struct {
	Code string `json:"code"`
}

type recordScanRequest struct {
	Code   string `json:"code"`
	Lot    string `json:"lot"`
	Expiry string `json:"expiry"`
}

// LoadInvoice resolves the scanned invoice access key and moves the session
// to the invoice-details step.
func (s *Server) LoadInvoice(c *gin.Context) {
	var req loadInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		AbortWithError(c, newValidationError("code", "required", "code is required"))
		return
	}

	inv, err := s.session.LoadInvoice(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// GetConference returns the current session snapshot.
func (s *Server) GetConference(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.session.Snapshot()})
}

// GetProgress returns the derived aggregate metrics.
func (s *Server) GetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.session.Progress()})
}

// StartConference moves the session from invoice review to scanning.
func (s *Server) StartConference(c *gin.Context) {
	if err := s.session.BeginConferencing(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.session.Snapshot()})
}

// RecordScan tallies one scanned product unit.
func (s *Server) RecordScan(c *gin.Context) {
	var req recordScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		AbortWithError(c, newValidationError("code", "required", "code is required"))
		return
	}

	var expiry *time.Time
	if raw := strings.TrimSpace(req.Expiry); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			AbortWithError(c, newValidationError("expiry", "invalid_expiry", "expiry must be YYYY-MM-DD"))
			return
		}
		expiry = &parsed
	}

	outcome, err := s.session.RecordScan(c.Request.Context(), code, strings.TrimSpace(req.Lot), expiry)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": outcome})
}

// FinishConference closes the tally and moves to the results step.
func (s *Server) FinishConference(c *gin.Context) {
	if err := s.session.FinishConferencing(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"snapshot": s.session.Snapshot(),
			"progress": s.session.Progress(),
		},
	})
}

// ResetConference discards the session and returns to the first step.
func (s *Server) ResetConference(c *gin.Context) {
	if err := s.session.Reset(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.session.Snapshot()})
}

// DrainNotifications returns and clears the buffered notifications.
func (s *Server) DrainNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.buffer.Drain()})
}
