package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
)

func (s *Server) CreateOffer(c *gin.Context) {
	userID := UserID(c)

	var req offerdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	offer, err := s.offerSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.track(c, userID, events.TrackRequest{
		Name:    events.StepOfferCreated,
		Step:    events.StepOfferCreated,
		OfferID: offer.ID.String(),
		Meta:    map[string]any{"lane": offer.Lane},
	})

	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

func (s *Server) ListOffers(c *gin.Context) {
	offers, err := s.offerSvc.List(c.Request.Context(), UserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func (s *Server) GetOffer(c *gin.Context) {
	offer, err := s.offerSvc.Get(c.Request.Context(), UserID(c), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func (s *Server) UpdateOffer(c *gin.Context) {
	var req offerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	offer, err := s.offerSvc.Update(c.Request.Context(), UserID(c), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func (s *Server) RegenerateOffer(c *gin.Context) {
	var req offerdomain.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	offer, err := s.offerSvc.Regenerate(c.Request.Context(), UserID(c), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}
