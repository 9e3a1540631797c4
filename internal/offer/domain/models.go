// Package domain contains the offer blueprint: a generated, editable
// sellable offer definition owned by one user.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

// Lane is the offer category. Content tables key off it.
type Lane string

const (
	LaneService    Lane = "service"
	LaneDigital    Lane = "digital"
	LaneMembership Lane = "membership"
	LaneLive       Lane = "live"
	LaneHybrid     Lane = "hybrid"
)

// Lanes lists every valid lane in display order.
var Lanes = []Lane{LaneService, LaneDigital, LaneMembership, LaneLive, LaneHybrid}

// ParseLane validates a raw lane string.
func ParseLane(raw string) (Lane, bool) {
	lane := Lane(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Lanes {
		if lane == known {
			return lane, true
		}
	}
	return "", false
}

// Structural bounds on editable fields.
const (
	MaxPricingTiers   = 6
	MaxTierIncludes   = 8
	MaxDeliverables   = 20
	MaxFunnelSteps    = 10
	MaxTextField      = 300
	MaxScriptField    = 1000
)

// PricingTier is one rung of the pricing ladder.
type PricingTier struct {
	Tier     string   `json:"tier"`
	Price    string   `json:"price"`
	Includes []string `json:"includes"`
}

// FunnelStep is one ordered step of the sales funnel.
type FunnelStep struct {
	Step   string `json:"step"`
	Action string `json:"action"`
}

// Scripts are the copy-paste outreach texts attached to an offer.
type Scripts struct {
	DM       string `json:"dm"`
	Caption  string `json:"caption"`
	FollowUp string `json:"followUp"`
}

// Blueprint is the persisted offer. Generated fields are overwritten
// wholesale on regenerate; manual edits go through the whitelisted
// update path.
type Blueprint struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID string       `gorm:"type:text;not null;index" json:"-"`

	Lane    string `gorm:"type:text;not null" json:"lane"`
	Title   string `gorm:"type:text;not null" json:"title"`
	Promise string `gorm:"type:text;not null" json:"promise"`

	// Copied from the snapshot at generation time; refreshed on
	// regenerate, editable afterwards.
	Goal     string `gorm:"type:text" json:"goal"`
	Audience string `gorm:"type:text" json:"audience"`
	Vibe     string `gorm:"type:text" json:"vibe"`

	Pricing      datatypes.JSON `gorm:"type:jsonb;not null" json:"pricing"`
	Deliverables datatypes.JSON `gorm:"type:jsonb;not null" json:"deliverables"`
	Funnel       datatypes.JSON `gorm:"type:jsonb;not null" json:"funnel"`
	Scripts      datatypes.JSON `gorm:"type:jsonb;not null" json:"scripts"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Blueprint) TableName() string { return "offer_blueprints" }

// PricingTiers decodes the stored pricing ladder.
func (b *Blueprint) PricingTiers() ([]PricingTier, error) {
	var tiers []PricingTier
	if len(b.Pricing) == 0 {
		return tiers, nil
	}
	if err := json.Unmarshal(b.Pricing, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

type CreateRequest struct {
	Lane string `json:"lane"`
}

type RegenerateRequest struct {
	// Lane is optional; empty keeps the blueprint's current lane.
	Lane string `json:"lane"`
}

// UpdateRequest is the whitelisted-field manual edit. Absent fields are
// left untouched; structured fields arrive raw so shape failures can be
// reported per field.
type UpdateRequest struct {
	Lane         *string         `json:"lane"`
	Title        *string         `json:"title"`
	Promise      *string         `json:"promise"`
	Goal         *string         `json:"goal"`
	Audience     *string         `json:"audience"`
	Vibe         *string         `json:"vibe"`
	Pricing      json.RawMessage `json:"pricing"`
	Deliverables json.RawMessage `json:"deliverables"`
	Funnel       json.RawMessage `json:"funnel"`
	Scripts      json.RawMessage `json:"scripts"`
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateRequest) (*Blueprint, error)
	List(ctx context.Context, userID string) ([]Blueprint, error)
	Get(ctx context.Context, userID string, id string) (*Blueprint, error)
	// Update applies a whitelisted partial edit; any invalid provided
	// field rejects the whole update with an itemized error list.
	Update(ctx context.Context, userID string, id string, req UpdateRequest) (*Blueprint, error)
	// Regenerate rebuilds the generated fields from the current
	// snapshot, optionally switching lane.
	Regenerate(ctx context.Context, userID string, id string, req RegenerateRequest) (*Blueprint, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrInvalidLane = errors.New("invalid_lane")
	ErrInvalidID   = errors.New("invalid_id")
	// ErrNotFound covers both missing rows and rows owned by another
	// user; existence is not leaked to non-owners.
	ErrNotFound   = errors.New("offer_not_found")
	ErrNoSnapshot = errors.New("snapshot_required")
)

// LimitReachedError names the tier that lifts the blueprint cap.
type LimitReachedError struct {
	Current  subscriptiondomain.Plan
	Required subscriptiondomain.Plan
	Limit    int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("blueprint_limit_reached: %s allows %d, upgrade to %s", e.Current, e.Limit, e.Required)
}

// FieldIssue is one itemized validation failure.
type FieldIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError aggregates every failed field of an update; the
// update applies nothing when this is returned.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+":"+issue.Code)
	}
	return "invalid_offer_update: " + strings.Join(parts, ", ")
}
