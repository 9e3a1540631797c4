package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	diagnosticdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/domain"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

func abortStatusAndCode(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	AbortWithError(c, err)
	return rec.Code, errorCode(t, rec.Body.Bytes())
}

func TestAbortWithErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, CodeUnauthenticated},
		{
			"upgrade required",
			&upgradeRequiredError{Current: subscriptiondomain.PlanFree, Required: subscriptiondomain.PlanRiverNorth},
			http.StatusForbidden,
			CodeUpgradeRequired,
		},
		{
			"limit reached",
			&offerdomain.LimitReachedError{Current: subscriptiondomain.PlanSouthLoop, Required: subscriptiondomain.PlanRiverNorth, Limit: 1},
			http.StatusForbidden,
			CodeLimitReached,
		},
		{
			"validation",
			&offerdomain.ValidationError{Issues: []offerdomain.FieldIssue{{Field: "pricing", Code: "empty"}}},
			http.StatusUnprocessableEntity,
			CodeInvalidPayload,
		},
		{"missing snapshot for offer", offerdomain.ErrNoSnapshot, http.StatusConflict, CodeMissingPrerequisite},
		{"missing snapshot for diagnostic", diagnosticdomain.ErrNoSnapshot, http.StatusConflict, CodeMissingPrerequisite},
		{"offer not found", offerdomain.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"snapshot not found", snapshotdomain.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"invalid lane", offerdomain.ErrInvalidLane, http.StatusUnprocessableEntity, CodeInvalidPayload},
		{"missing artist name", snapshotdomain.ErrMissingArtistName, http.StatusUnprocessableEntity, CodeInvalidPayload},
		{"billing down", subscriptiondomain.ErrBillingUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := abortStatusAndCode(t, tc.err)
			if status != tc.wantStatus {
				t.Errorf("status = %d, want %d", status, tc.wantStatus)
			}
			if code != tc.wantCode {
				t.Errorf("code = %q, want %q", code, tc.wantCode)
			}
		})
	}
}
