package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestValidateUpdateAcceptsPartialEdit(t *testing.T) {
	req := UpdateRequest{
		Title:   strPtr("Producer Hour"),
		Pricing: json.RawMessage(`[{"tier":"Core","price":"$99","includes":["one mix review"]}]`),
	}
	out, err := ValidateUpdate(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Title == nil || *out.Title != "Producer Hour" {
		t.Errorf("title not decoded: %+v", out.Title)
	}
	if !out.HasPricing || len(out.Pricing) != 1 {
		t.Errorf("pricing not decoded: %+v", out.Pricing)
	}
	if out.Promise != nil || out.HasFunnel || out.Scripts != nil {
		t.Errorf("absent fields must stay unset")
	}
}

func TestValidateUpdateRejectsNonArrayPricing(t *testing.T) {
	req := UpdateRequest{Pricing: json.RawMessage(`{"tier":"Core"}`)}
	_, err := ValidateUpdate(req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Code != "not_an_array" {
		t.Fatalf("unexpected issues: %+v", verr.Issues)
	}
}

func TestValidateUpdateItemizesPricingIssues(t *testing.T) {
	req := UpdateRequest{
		Pricing: json.RawMessage(`[{"tier":"","price":""},{"tier":"Core","price":"$50"}]`),
	}
	_, err := ValidateUpdate(req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := map[string]string{}
	for _, issue := range verr.Issues {
		got[issue.Field] = issue.Code
	}
	if got["pricing[0].tier"] != "required" || got["pricing[0].price"] != "required" {
		t.Fatalf("missing itemized issues: %+v", verr.Issues)
	}
}

func TestValidateUpdateAllOrNothing(t *testing.T) {
	req := UpdateRequest{
		Title:   strPtr("Fine"),
		Pricing: json.RawMessage(`"not even close"`),
	}
	out, err := ValidateUpdate(req)
	if err == nil {
		t.Fatal("expected error for bad pricing alongside good title")
	}
	if out != nil {
		t.Fatalf("a failed update must decode nothing, got %+v", out)
	}
}

func TestValidateScriptsShape(t *testing.T) {
	req := UpdateRequest{
		Scripts: json.RawMessage(`{"dm":"hey","caption":"new drop","followUp":"circling back","extra":"x"}`),
	}
	_, err := ValidateUpdate(req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Field != "scripts.extra" || verr.Issues[0].Code != "unknown_field" {
		t.Fatalf("unexpected issues: %+v", verr.Issues)
	}

	req = UpdateRequest{Scripts: json.RawMessage(`{"dm":"hey","caption":"new drop"}`)}
	_, err = ValidateUpdate(req)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Issues) != 1 || verr.Issues[0].Field != "scripts.followUp" {
		t.Fatalf("unexpected issues: %+v", verr.Issues)
	}
}

func TestParseLane(t *testing.T) {
	for _, lane := range Lanes {
		if got, ok := ParseLane(string(lane)); !ok || got != lane {
			t.Errorf("ParseLane(%q) = %v, %v", lane, got, ok)
		}
	}
	if _, ok := ParseLane("vinyl"); ok {
		t.Error("expected unknown lane to be rejected")
	}
}
