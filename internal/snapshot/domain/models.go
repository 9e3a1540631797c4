// Package domain contains the intake snapshot: one live profile row per
// user that every generator downstream reads from.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Snapshot is the self-reported intake profile. One row per user,
// destructively overwritten on resubmit; reset deletes it.
type Snapshot struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID string       `gorm:"type:text;not null;uniqueIndex" json:"-"`

	ArtistName string `gorm:"type:text;not null" json:"artist_name"`
	City       string `gorm:"type:text" json:"city"`
	Genre      string `gorm:"type:text" json:"genre"`
	Vibe       string `gorm:"type:text" json:"vibe"`

	Links datatypes.JSONMap `gorm:"type:jsonb" json:"links"`

	// Audience counts stay strings: users type "12k" or pick a bucket
	// like "0–99". Parsing happens at scoring time.
	AudienceSize     string `gorm:"type:text" json:"audience_size"`
	MonthlyListeners string `gorm:"type:text" json:"monthly_listeners"`
	EmailListSize    string `gorm:"type:text" json:"email_list_size"`

	CurrentOffer  string `gorm:"type:text" json:"current_offer"`
	CurrentPrice  string `gorm:"type:text" json:"current_price"`
	MonthlyIncome string `gorm:"type:text" json:"monthly_income"`

	LastRelease    string `gorm:"type:text" json:"last_release"`
	ReleaseCadence string `gorm:"type:text" json:"release_cadence"`

	PrimaryGoal    string `gorm:"type:text" json:"primary_goal"`
	BiggestBlocker string `gorm:"type:text" json:"biggest_blocker"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Snapshot) TableName() string { return "snapshots" }

// Choice is a snapshot answer that is either one of the fixed options
// offered by the form or free text the user typed into "Other".
type Choice struct {
	Value  string
	Custom bool
}

// Fixed option lists per field. Anything outside the list is treated as
// custom free text by the classifiers.
var (
	GenreOptions = []string{
		"hip-hop", "r&b", "pop", "rock", "electronic", "country",
		"latin", "jazz", "gospel", "indie",
	}
	GoalOptions = []string{
		"book more shows", "sell merch", "sell beats", "land features",
		"grow streams", "grow email list", "launch an offer", "build my brand",
	}
	BlockerOptions = []string{
		"no audience", "no time", "no money", "no team", "no plan",
		"inconsistent releases", "no offer", "pricing confusion",
	}
)

// ClassifyChoice resolves a raw answer against a fixed option list.
func ClassifyChoice(raw string, options []string) Choice {
	value := normalize(raw)
	for _, opt := range options {
		if value == opt {
			return Choice{Value: opt}
		}
	}
	return Choice{Value: raw, Custom: true}
}

// GoalChoice classifies the primary goal answer.
func (s *Snapshot) GoalChoice() Choice {
	return ClassifyChoice(s.PrimaryGoal, GoalOptions)
}

// BlockerChoice classifies the biggest blocker answer.
func (s *Snapshot) BlockerChoice() Choice {
	return ClassifyChoice(s.BiggestBlocker, BlockerOptions)
}

// GenreChoice classifies the genre answer.
func (s *Snapshot) GenreChoice() Choice {
	return ClassifyChoice(s.Genre, GenreOptions)
}

// FirstVibeTag returns the first comma-separated vibe tag, trimmed.
func (s *Snapshot) FirstVibeTag() string {
	for _, tag := range splitList(s.Vibe) {
		return tag
	}
	return ""
}
