package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
)

func (s *Server) RunDiagnostic(c *gin.Context) {
	userID := UserID(c)

	resp, err := s.diagSvc.Run(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.track(c, userID, events.TrackRequest{
		Name: events.StepDiagnosticViewed,
		Step: events.StepDiagnosticViewed,
		Meta: map[string]any{"composite": resp.Result.Scores.Composite(), "deduped": resp.Deduped},
	})

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DiagnosticHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := s.diagSvc.History(c.Request.Context(), UserID(c), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}
