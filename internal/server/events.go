package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
)

// TrackEvent accepts a client-side tracking event. Only an empty name
// is rejected; storage failures are logged and acknowledged anyway.
func (s *Server) TrackEvent(c *gin.Context) {
	userID := UserID(c)

	var req events.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.eventSvc.Track(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, events.ErrInvalidEvent) {
			AbortWithError(c, invalidRequestError())
			return
		}
		s.log.Warn("event tracking failed")
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) GetFunnel(c *gin.Context) {
	steps, err := s.eventSvc.Funnel(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"funnel": steps})
}
