package domain

import (
	"context"
	"errors"
)

// Free-text length caps applied before the row is written.
const (
	MaxShortField = 120
	MaxLongField  = 500
	MaxLinks      = 8
)

// UpsertRequest carries the full intake form. Submitting again
// overwrites the previous snapshot; there is no versioning.
type UpsertRequest struct {
	ArtistName       string            `json:"artist_name"`
	City             string            `json:"city"`
	Genre            string            `json:"genre"`
	Vibe             string            `json:"vibe"`
	Links            map[string]string `json:"links"`
	AudienceSize     string            `json:"audience_size"`
	MonthlyListeners string            `json:"monthly_listeners"`
	EmailListSize    string            `json:"email_list_size"`
	CurrentOffer     string            `json:"current_offer"`
	CurrentPrice     string            `json:"current_price"`
	MonthlyIncome    string            `json:"monthly_income"`
	LastRelease      string            `json:"last_release"`
	ReleaseCadence   string            `json:"release_cadence"`
	PrimaryGoal      string            `json:"primary_goal"`
	BiggestBlocker   string            `json:"biggest_blocker"`
}

type Service interface {
	Upsert(ctx context.Context, userID string, req UpsertRequest) (*Snapshot, error)
	Get(ctx context.Context, userID string) (*Snapshot, error)
	// Reset deletes the live snapshot. Missing rows are not an error.
	Reset(ctx context.Context, userID string) error
}

var (
	ErrInvalidUser       = errors.New("invalid_user")
	ErrMissingArtistName = errors.New("missing_artist_name")
	ErrNotFound          = errors.New("snapshot_not_found")
)
