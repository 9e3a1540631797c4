package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/roadmap"
)

// GetRoadmap builds the 4-week plan from the live snapshot on every
// read; a changed snapshot changes the roadmap.
func (s *Server) GetRoadmap(c *gin.Context) {
	snap, err := s.snapSvc.Get(c.Request.Context(), UserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"roadmap": roadmap.Build(snap)})
}
