package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

func (s *Server) UpsertSnapshot(c *gin.Context) {
	userID := UserID(c)

	var req snapshotdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	snap, err := s.snapSvc.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.track(c, userID, events.TrackRequest{
		Name:       events.StepSnapshotCompleted,
		Step:       events.StepSnapshotCompleted,
		SnapshotID: snap.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

func (s *Server) GetSnapshot(c *gin.Context) {
	snap, err := s.snapSvc.Get(c.Request.Context(), UserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

func (s *Server) ResetSnapshot(c *gin.Context) {
	if err := s.snapSvc.Reset(c.Request.Context(), UserID(c)); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
