// Package events is the append-only app event log and the funnel
// aggregation over it. Events never drive business logic.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Funnel step names, in conversion order.
const (
	StepSnapshotStarted   = "snapshot_started"
	StepSnapshotCompleted = "snapshot_completed"
	StepDiagnosticViewed  = "diagnostic_viewed"
	StepOfferCreated      = "offer_created"
	StepAssetsViewed      = "assets_viewed"
	StepRunLogged         = "run_logged"
)

// FunnelSteps is the fixed ordered sequence the funnel view reports.
var FunnelSteps = []string{
	StepSnapshotStarted,
	StepSnapshotCompleted,
	StepDiagnosticViewed,
	StepOfferCreated,
	StepAssetsViewed,
	StepRunLogged,
}

// Meta bounds for untrusted payloads.
const (
	maxMetaKeys     = 10
	maxMetaValueLen = 200
	maxNameLen      = 80
	maxRouteLen     = 200
)

// AppEvent is one append-only tracking row.
type AppEvent struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID     string            `gorm:"type:text;not null;index" json:"-"`
	Name       string            `gorm:"type:text;not null;index" json:"name"`
	Route      string            `gorm:"type:text" json:"route"`
	Step       string            `gorm:"type:text" json:"step"`
	OfferID    *snowflake.ID     `gorm:"" json:"offer_id,omitempty"`
	SnapshotID *snowflake.ID     `gorm:"" json:"snapshot_id,omitempty"`
	Meta       datatypes.JSONMap `gorm:"type:jsonb" json:"meta"`
	CreatedAt  time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (AppEvent) TableName() string { return "app_events" }

// TrackRequest is the inbound tracking payload.
type TrackRequest struct {
	Name       string         `json:"name"`
	Route      string         `json:"route"`
	Step       string         `json:"step"`
	OfferID    string         `json:"offer_id"`
	SnapshotID string         `json:"snapshot_id"`
	Meta       map[string]any `json:"meta"`
}

// FunnelStep is one aggregated step of the funnel view.
type FunnelStep struct {
	Step  string `json:"step"`
	Users int64  `json:"users"`
	// Conversion is users at this step over users at the previous one;
	// 1 for the first step, 0 when the previous step had no users.
	Conversion float64 `json:"conversion"`
}

type Service interface {
	// Track appends one event. Callers treat failures as non-fatal;
	// tracking must never fail a primary operation.
	Track(ctx context.Context, userID string, req TrackRequest) error
	Funnel(ctx context.Context) ([]FunnelStep, error)
}

var ErrInvalidEvent = errors.New("invalid_event")

// SanitizeMeta bounds an untrusted meta payload: key count capped,
// values stringified and length-capped.
func SanitizeMeta(raw map[string]any) datatypes.JSONMap {
	if len(raw) == 0 {
		return nil
	}
	out := datatypes.JSONMap{}
	count := 0
	for key, value := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if count >= maxMetaKeys {
			break
		}
		text := fmt.Sprintf("%v", value)
		if len(text) > maxMetaValueLen {
			text = text[:maxMetaValueLen]
		}
		out[key] = text
		count++
	}
	return out
}
