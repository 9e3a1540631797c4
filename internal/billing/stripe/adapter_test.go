package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
)

const testWebhookSecret = "whsec_test"

func signedHeader(t *testing.T, payload []byte) http.Header {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	header := http.Header{}
	header.Set("Stripe-Signature", fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil))))
	return header
}

func testAdapter() *Adapter {
	return &Adapter{webhookSecret: testWebhookSecret}
}

func TestVerifyAndParseRejectsBadSignature(t *testing.T) {
	header := http.Header{}
	header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	_, err := testAdapter().VerifyAndParse(context.Background(), []byte(`{}`), header)
	if !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature, got %v", err)
	}
}

func TestVerifyAndParseCheckoutCompleted(t *testing.T) {
	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"client_reference_id": "user-1",
				"customer": "cus_1",
				"subscription": "sub_1"
			}
		}
	}`)

	event, err := testAdapter().VerifyAndParse(context.Background(), payload, signedHeader(t, payload))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if event.Type != billingdomain.EventCheckoutCompleted {
		t.Errorf("type = %s", event.Type)
	}
	if event.UserID != "user-1" || event.CustomerID != "cus_1" || event.SubscriptionID != "sub_1" {
		t.Errorf("event = %+v", event)
	}
}

func TestVerifyAndParseSubscriptionUpdated(t *testing.T) {
	payload := []byte(`{
		"type": "customer.subscription.updated",
		"data": {
			"object": {
				"id": "sub_1",
				"status": "active",
				"customer": "cus_1",
				"items": {
					"data": [
						{"price": {"id": "price_rn"}}
					]
				}
			}
		}
	}`)

	event, err := testAdapter().VerifyAndParse(context.Background(), payload, signedHeader(t, payload))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if event.Type != billingdomain.EventSubscriptionUpdated {
		t.Errorf("type = %s", event.Type)
	}
	if event.PriceID != "price_rn" || event.Status != "active" || event.SubscriptionID != "sub_1" {
		t.Errorf("event = %+v", event)
	}
}

func TestVerifyAndParseSubscriptionDeleted(t *testing.T) {
	payload := []byte(`{
		"type": "customer.subscription.deleted",
		"data": {
			"object": {"id": "sub_1", "status": "canceled"}
		}
	}`)

	event, err := testAdapter().VerifyAndParse(context.Background(), payload, signedHeader(t, payload))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if event.Type != billingdomain.EventSubscriptionCanceled {
		t.Errorf("type = %s", event.Type)
	}
}

func TestVerifyAndParseIgnoresUnrelatedEvents(t *testing.T) {
	payload := []byte(`{"type": "invoice.paid", "data": {"object": {}}}`)
	_, err := testAdapter().VerifyAndParse(context.Background(), payload, signedHeader(t, payload))
	if !errors.Is(err, billingdomain.ErrIgnoredEvent) {
		t.Fatalf("expected ignored event, got %v", err)
	}
}
