// Package stripe implements the billing adapter against the Stripe API.
package stripe

import (
	"context"
	"encoding/json"
	"net/http"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/webhook"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
)

type Adapter struct {
	webhookSecret string
}

// New configures the global stripe key and returns the adapter.
func New(cfg config.Config) *Adapter {
	stripe.Key = cfg.Stripe.SecretKey
	return &Adapter{webhookSecret: cfg.Stripe.WebhookSecret}
}

func (a *Adapter) Provider() string { return "stripe" }

func (a *Adapter) CreateCheckoutSession(ctx context.Context, params billingdomain.CheckoutParams) (*billingdomain.CheckoutSession, error) {
	sessParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(params.SuccessURL),
		CancelURL:         stripe.String(params.CancelURL),
		ClientReferenceID: stripe.String(params.UserID),
	}
	sessParams.Context = ctx

	sess, err := session.New(sessParams)
	if err != nil {
		return nil, err
	}
	return &billingdomain.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (a *Adapter) VerifyAndParse(ctx context.Context, payload []byte, headers http.Header) (*billingdomain.WebhookEvent, error) {
	sig := headers.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, a.webhookSecret)
	if err != nil {
		return nil, billingdomain.ErrInvalidSignature
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, billingdomain.ErrInvalidPayload
		}
		out := &billingdomain.WebhookEvent{
			Type:   billingdomain.EventCheckoutCompleted,
			UserID: sess.ClientReferenceID,
		}
		if sess.Customer != nil {
			out.CustomerID = sess.Customer.ID
		}
		if sess.Subscription != nil {
			out.SubscriptionID = sess.Subscription.ID
		}
		return out, nil

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, billingdomain.ErrInvalidPayload
		}
		out := &billingdomain.WebhookEvent{
			SubscriptionID: sub.ID,
			Status:         string(sub.Status),
		}
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
			out.PriceID = sub.Items.Data[0].Price.ID
		}
		if event.Type == "customer.subscription.deleted" {
			out.Type = billingdomain.EventSubscriptionCanceled
		} else {
			out.Type = billingdomain.EventSubscriptionUpdated
		}
		return out, nil
	}

	return nil, billingdomain.ErrIgnoredEvent
}
