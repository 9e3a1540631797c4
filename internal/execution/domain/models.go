// Package domain contains execution runs and daily check-ins: the
// logged real-world activity attached to an offer.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/iteration"
)

// Input caps for untrusted counters.
const (
	MaxEnergy        = 5
	MinEnergy        = 1
	MaxMinutes       = 1440
	MaxLookbackDays  = 30
	MaxReflectionLen = 1000
	MaxChannelLen    = 60
)

// Run is one logged outreach attempt. Append-only; the iteration plan
// is computed once at creation and stored verbatim, never recomputed
// from the live offer.
type Run struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID  string       `gorm:"type:text;not null;index" json:"-"`
	OfferID snowflake.ID `gorm:"not null;index" json:"offer_id"`

	Channel      string `gorm:"type:text;not null" json:"channel"`
	Outreach     int    `gorm:"not null;default:0" json:"outreach"`
	Leads        int    `gorm:"not null;default:0" json:"leads"`
	CallsBooked  int    `gorm:"not null;default:0" json:"calls_booked"`
	Sales        int    `gorm:"not null;default:0" json:"sales"`
	RevenueCents int64  `gorm:"not null;default:0" json:"revenue_cents"`

	WentWell  string `gorm:"type:text" json:"went_well"`
	GotStuck  string `gorm:"type:text" json:"got_stuck"`

	// Plan frozen at creation time.
	Plan datatypes.JSON `gorm:"type:jsonb;not null" json:"plan"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (Run) TableName() string { return "execution_runs" }

// CheckIn is the once-per-calendar-day micro-log for an offer. Day is
// bucketed in the fixed reference timezone, unique per (offer, day),
// last write wins on fields.
type CheckIn struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID  string       `gorm:"type:text;not null;index" json:"-"`
	OfferID snowflake.ID `gorm:"not null;uniqueIndex:ux_checkins_offer_day,priority:1" json:"offer_id"`
	Day     string       `gorm:"type:text;not null;uniqueIndex:ux_checkins_offer_day,priority:2" json:"day"`

	Energy          int    `gorm:"not null;default:3" json:"energy"`
	MinutesExecuted int    `gorm:"not null;default:0" json:"minutes_executed"`
	KeyMetric       string `gorm:"type:text" json:"key_metric"`
	KeyMetricValue  string `gorm:"type:text" json:"key_metric_value"`
	Win             string `gorm:"type:text" json:"win"`
	Blocker         string `gorm:"type:text" json:"blocker"`
	NextStep        string `gorm:"type:text" json:"next_step"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (CheckIn) TableName() string { return "offer_daily_checkins" }

type LogRunRequest struct {
	Channel      string `json:"channel"`
	Outreach     int    `json:"outreach"`
	Leads        int    `json:"leads"`
	CallsBooked  int    `json:"calls_booked"`
	Sales        int    `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
	WentWell     string `json:"went_well"`
	GotStuck     string `json:"got_stuck"`
}

// LogRunResponse returns the stored run plus the decoded plan so the
// caller doesn't reparse the frozen JSON.
type LogRunResponse struct {
	Run  *Run           `json:"run"`
	Plan iteration.Plan `json:"plan"`
}

type CheckInRequest struct {
	Energy          int    `json:"energy"`
	MinutesExecuted int    `json:"minutes_executed"`
	KeyMetric       string `json:"key_metric"`
	KeyMetricValue  string `json:"key_metric_value"`
	Win             string `json:"win"`
	Blocker         string `json:"blocker"`
	NextStep        string `json:"next_step"`
}

type Service interface {
	LogRun(ctx context.Context, userID, offerID string, req LogRunRequest) (*LogRunResponse, error)
	ListRuns(ctx context.Context, userID, offerID string, limit int) ([]Run, error)
	// UpsertCheckIn collapses concurrent same-day check-ins to one row,
	// last write winning on fields.
	UpsertCheckIn(ctx context.Context, userID, offerID string, req CheckInRequest) (*CheckIn, error)
	ListCheckIns(ctx context.Context, userID, offerID string, lookbackDays int) ([]CheckIn, error)
}

var (
	ErrInvalidUser = errors.New("invalid_user")
	ErrNotFound    = errors.New("run_target_not_found")
)
