package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	diagnosticdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/domain"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

// Error codes exposed to clients.
const (
	CodeUnauthenticated     = "unauthenticated"
	CodeUpgradeRequired     = "upgrade_required"
	CodeLimitReached        = "limit_reached"
	CodeNotFound            = "not_found"
	CodeInvalidPayload      = "invalid_payload"
	CodeMissingPrerequisite = "missing_prerequisite"
	CodeInternal            = "internal_error"
	CodeServiceUnavailable  = "service_unavailable"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// upgradeRequiredError carries both plans so the UI can render the
// exact upgrade prompt.
type upgradeRequiredError struct {
	Current  subscriptiondomain.Plan
	Required subscriptiondomain.Plan
}

func (e *upgradeRequiredError) Error() string {
	return "upgrade_required: " + string(e.Current) + " -> " + string(e.Required)
}

type apiError struct {
	status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// AbortWithError maps domain errors onto the response taxonomy. The
// pure generators never produce business errors; everything mapped
// here comes from the boundary services.
func AbortWithError(c *gin.Context, err error) {
	var limitErr *offerdomain.LimitReachedError
	var validationErr *offerdomain.ValidationError
	var upgradeErr *upgradeRequiredError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		abort(c, apiError{status: http.StatusUnauthorized, Code: CodeUnauthenticated, Message: "sign in to continue"})

	case errors.As(err, &upgradeErr):
		abort(c, apiError{
			status:  http.StatusForbidden,
			Code:    CodeUpgradeRequired,
			Message: "this feature needs a higher plan",
			Details: gin.H{"current_plan": upgradeErr.Current, "required_plan": upgradeErr.Required},
		})

	case errors.As(err, &limitErr):
		abort(c, apiError{
			status:  http.StatusForbidden,
			Code:    CodeLimitReached,
			Message: "blueprint limit reached for your plan",
			Details: gin.H{"current_plan": limitErr.Current, "required_plan": limitErr.Required, "limit": limitErr.Limit},
		})

	case errors.As(err, &validationErr):
		abort(c, apiError{
			status:  http.StatusUnprocessableEntity,
			Code:    CodeInvalidPayload,
			Message: "one or more fields failed validation",
			Details: validationErr.Issues,
		})

	case errors.Is(err, offerdomain.ErrNoSnapshot), errors.Is(err, diagnosticdomain.ErrNoSnapshot):
		abort(c, apiError{
			status:  http.StatusConflict,
			Code:    CodeMissingPrerequisite,
			Message: "complete your snapshot first",
		})

	case errors.Is(err, offerdomain.ErrNotFound),
		errors.Is(err, snapshotdomain.ErrNotFound),
		errors.Is(err, executiondomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		abort(c, apiError{status: http.StatusNotFound, Code: CodeNotFound, Message: "not found"})

	case errors.Is(err, offerdomain.ErrInvalidLane):
		abort(c, apiError{
			status:  http.StatusUnprocessableEntity,
			Code:    CodeInvalidPayload,
			Message: "one or more fields failed validation",
			Details: []offerdomain.FieldIssue{{Field: "lane", Code: "unknown_lane", Message: "lane must be one of service, digital, membership, live, hybrid"}},
		})

	case errors.Is(err, snapshotdomain.ErrMissingArtistName):
		abort(c, apiError{
			status:  http.StatusUnprocessableEntity,
			Code:    CodeInvalidPayload,
			Message: "one or more fields failed validation",
			Details: []offerdomain.FieldIssue{{Field: "artist_name", Code: "required", Message: "artist name is required"}},
		})

	case errors.Is(err, subscriptiondomain.ErrBillingUnavailable):
		abort(c, apiError{status: http.StatusServiceUnavailable, Code: CodeServiceUnavailable, Message: "billing is temporarily unavailable"})

	default:
		abort(c, apiError{status: http.StatusInternalServerError, Code: CodeInternal, Message: "something went wrong"})
	}
}

func abort(c *gin.Context, e apiError) {
	c.AbortWithStatusJSON(e.status, gin.H{"error": e})
}

// invalidRequestError covers malformed request bodies before any field
// level validation runs.
func invalidRequestError() error {
	return &offerdomain.ValidationError{Issues: []offerdomain.FieldIssue{
		{Field: "body", Code: "malformed", Message: "request body is not valid JSON for this endpoint"},
	}}
}
