package domain

import (
	"context"
	"errors"
)

// CheckoutRequest starts a provider checkout for one paid plan.
type CheckoutRequest struct {
	UserID string
	Plan   Plan
}

// CheckoutResponse carries the hosted checkout session the UI redirects to.
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// BillingUpdate is a provider-agnostic subscription state change parsed
// from a webhook event.
type BillingUpdate struct {
	UserID               string
	StripeCustomerID     string
	StripeSubscriptionID string
	PriceID              string
	Status               string
	Canceled             bool
}

type Service interface {
	// GetPlan resolves the user's current plan. A missing row or an
	// unknown stored plan string resolves to FREE, never an error.
	GetPlan(ctx context.Context, userID string) (Plan, error)
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
	// ApplyBillingUpdate upserts the subscription row from a webhook
	// event. Lifetime rows ignore downgrades.
	ApplyBillingUpdate(ctx context.Context, update BillingUpdate) error
}

var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrInvalidPlan       = errors.New("invalid_plan")
	ErrBillingUnavailable = errors.New("billing_unavailable")
)
