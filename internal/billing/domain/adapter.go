// Package domain defines the billing-provider boundary. The
// subscription service only sees these types; provider SDKs stay behind
// an adapter.
package domain

import (
	"context"
	"errors"
	"net/http"
)

// Event types the subscription sync cares about.
const (
	EventCheckoutCompleted    = "checkout_completed"
	EventSubscriptionUpdated  = "subscription_updated"
	EventSubscriptionCanceled = "subscription_canceled"
)

// WebhookEvent is a provider webhook reduced to the fields the
// subscription sync needs.
type WebhookEvent struct {
	Type           string
	UserID         string
	CustomerID     string
	SubscriptionID string
	PriceID        string
	Status         string
}

// CheckoutParams describes a hosted checkout session for one price.
type CheckoutParams struct {
	UserID     string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider session the UI redirects to.
type CheckoutSession struct {
	ID  string
	URL string
}

// Adapter is implemented per billing provider.
type Adapter interface {
	Provider() string
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// VerifyAndParse checks the webhook signature and reduces the event.
	// Events the sync does not care about return ErrIgnoredEvent.
	VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*WebhookEvent, error)
}

var (
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrIgnoredEvent     = errors.New("ignored_event")
)
