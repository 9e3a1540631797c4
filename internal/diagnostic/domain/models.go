// Package domain contains the diagnostic scorer and its persisted
// report history.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Scores are the five 0-100 subscores of one diagnostic run.
type Scores struct {
	Monetization int `json:"monetization"`
	Audience     int `json:"audience"`
	Offer        int `json:"offer"`
	Momentum     int `json:"momentum"`
	Clarity      int `json:"clarity"`
}

// Composite is the unweighted mean of the five subscores, rounded.
func (s Scores) Composite() int {
	sum := s.Monetization + s.Audience + s.Offer + s.Momentum + s.Clarity
	return (sum + 2) / 5
}

// Impact labels a top move's expected payoff. Fixed per move type.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// TopMove is one ranked recommendation.
type TopMove struct {
	Title     string   `json:"title"`
	Rationale string   `json:"rationale"`
	NextSteps []string `json:"next_steps"`
	Impact    string   `json:"impact"`
}

// Result is the full scorer output. Pure function of the snapshot:
// identical input always produces identical output, which the dedup
// rule in the history store relies on.
type Result struct {
	Scores   Scores    `json:"scores"`
	TopMoves []TopMove `json:"top_moves"`
	Notes    []string  `json:"notes"`
}

// Report is one immutable stored diagnostic run.
type Report struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	UserID     string         `gorm:"type:text;not null;index" json:"-"`
	SnapshotID snowflake.ID   `gorm:"not null" json:"snapshot_id"`
	Scores     datatypes.JSON `gorm:"type:jsonb;not null" json:"scores"`
	TopMoves   datatypes.JSON `gorm:"type:jsonb;not null" json:"top_moves"`
	Notes      datatypes.JSON `gorm:"type:jsonb;not null" json:"notes"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (Report) TableName() string { return "diagnostic_reports" }

// RunResponse wraps a stored report; Deduped marks that an existing row
// was returned instead of inserting a near-duplicate.
type RunResponse struct {
	Report  *Report `json:"report"`
	Result  Result  `json:"result"`
	Deduped bool    `json:"deduped"`
}

// HistoryItem is one row of the trend view.
type HistoryItem struct {
	ID        snowflake.ID `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Scores    Scores       `json:"scores"`
	Composite int          `json:"composite"`
	// Delta is composite minus the previous report's composite; nil on
	// the oldest row shown.
	Delta *int `json:"delta,omitempty"`
}

type Service interface {
	// Run scores the user's current snapshot and persists the report,
	// applying the dedup rule against the most recent stored row.
	Run(ctx context.Context, userID string) (*RunResponse, error)
	History(ctx context.Context, userID string, limit int) ([]HistoryItem, error)
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrNoSnapshot      = errors.New("snapshot_required")
	ErrInvalidReport   = errors.New("invalid_report")
)
