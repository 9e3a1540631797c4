package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

const maxWebhookBody = 1 << 20

type checkoutRequest struct {
	Plan string `json:"plan"`
}

func (s *Server) CreateCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.subSvc.CreateCheckout(c.Request.Context(), subscriptiondomain.CheckoutRequest{
		UserID: UserID(c),
		Plan:   subscriptiondomain.Plan(req.Plan),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPlan(c *gin.Context) {
	plan, err := s.subSvc.GetPlan(c.Request.Context(), UserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// BillingWebhook receives provider webhooks. Unverifiable payloads get
// 400 so the provider retries nothing it shouldn't; events outside the
// sync's interest are acknowledged untouched.
func (s *Server) BillingWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": CodeInvalidPayload, "message": "unreadable payload"}})
		return
	}

	event, err := s.billing.VerifyAndParse(c.Request.Context(), payload, c.Request.Header)
	switch {
	case errors.Is(err, billingdomain.ErrIgnoredEvent):
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	case errors.Is(err, billingdomain.ErrInvalidSignature), errors.Is(err, billingdomain.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": CodeInvalidPayload, "message": "webhook rejected"}})
		return
	case err != nil:
		AbortWithError(c, err)
		return
	}

	update := subscriptiondomain.BillingUpdate{
		UserID:               event.UserID,
		StripeCustomerID:     event.CustomerID,
		StripeSubscriptionID: event.SubscriptionID,
		PriceID:              event.PriceID,
		Status:               event.Status,
		Canceled:             event.Type == billingdomain.EventSubscriptionCanceled,
	}
	if err := s.subSvc.ApplyBillingUpdate(c.Request.Context(), update); err != nil {
		s.log.Error("billing update failed", zap.String("type", event.Type), zap.Error(err))
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "applied"})
}
