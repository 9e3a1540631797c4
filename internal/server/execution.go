package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
)

func (s *Server) LogRun(c *gin.Context) {
	userID := UserID(c)

	var req executiondomain.LogRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.execSvc.LogRun(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.track(c, userID, events.TrackRequest{
		Name:    events.StepRunLogged,
		Step:    events.StepRunLogged,
		OfferID: c.Param("id"),
		Meta:    map[string]any{"bottleneck": resp.Plan.Bottleneck},
	})

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	runs, err := s.execSvc.ListRuns(c.Request.Context(), UserID(c), c.Param("id"), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) UpsertCheckIn(c *gin.Context) {
	var req executiondomain.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	checkIn, err := s.execSvc.UpsertCheckIn(c.Request.Context(), UserID(c), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_in": checkIn})
}

func (s *Server) ListCheckIns(c *gin.Context) {
	lookback, _ := strconv.Atoi(c.Query("days"))

	checkIns, err := s.execSvc.ListCheckIns(c.Request.Context(), UserID(c), c.Param("id"), lookback)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": checkIns})
}
