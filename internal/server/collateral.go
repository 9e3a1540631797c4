package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/collateral"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
)

// GetOfferAssets regenerates the marketing bundle from the blueprint
// and the live snapshot on every read; nothing is stored.
func (s *Server) GetOfferAssets(c *gin.Context) {
	userID := UserID(c)

	offer, err := s.offerSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	snap, err := s.snapSvc.Get(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	bundle, err := collateral.Generate(offer, snap)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.track(c, userID, events.TrackRequest{
		Name:    events.StepAssetsViewed,
		Step:    events.StepAssetsViewed,
		OfferID: offer.ID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"assets": bundle})
}
