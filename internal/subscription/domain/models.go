// Package domain contains the subscription row and the plan ordering
// every entitlement check runs against.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Plan is a subscription tier. Tiers are strictly ordered; access
// checks compare ranks, never names.
type Plan string

const (
	PlanFree       Plan = "FREE"
	PlanSouthLoop  Plan = "SOUTH_LOOP"
	PlanRiverNorth Plan = "RIVER_NORTH"
	PlanTheLoop    Plan = "THE_LOOP"
)

var planRank = map[Plan]int{
	PlanFree:       0,
	PlanSouthLoop:  1,
	PlanRiverNorth: 2,
	PlanTheLoop:    3,
}

// NormalizePlan maps arbitrary stored strings onto a known plan.
// Anything unrecognized, including empty, is FREE.
func NormalizePlan(raw string) Plan {
	p := Plan(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := planRank[p]; ok {
		return p
	}
	return PlanFree
}

// PlanAtLeast reports whether current satisfies required on the fixed
// total order FREE < SOUTH_LOOP < RIVER_NORTH < THE_LOOP.
func PlanAtLeast(current, required Plan) bool {
	return planRank[NormalizePlan(string(current))] >= planRank[NormalizePlan(string(required))]
}

// NextPlanAbove returns the cheapest plan strictly above p, or p itself
// when already at the top.
func NextPlanAbove(p Plan) Plan {
	rank := planRank[NormalizePlan(string(p))]
	for candidate, r := range planRank {
		if r == rank+1 {
			return candidate
		}
	}
	return NormalizePlan(string(p))
}

// LowestPaidPlan is the first tier above FREE in the ordering.
func LowestPaidPlan() Plan {
	return NextPlanAbove(PlanFree)
}

// BlueprintLimit returns the offer blueprint cap for a plan; -1 means
// unlimited. The cap binds the lowest paid tier, keyed off the plan
// ordering rather than a tier name literal.
func BlueprintLimit(p Plan) int {
	n := NormalizePlan(string(p))
	if n == LowestPaidPlan() {
		return 1
	}
	return -1
}

const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
	StatusPastDue  = "past_due"
)

// Subscription is the single entitlement row per user. Mutated only by
// billing events and checkout completion.
type Subscription struct {
	ID                   snowflake.ID `gorm:"primaryKey"`
	UserID               string       `gorm:"type:text;not null;uniqueIndex"`
	Plan                 string       `gorm:"type:text;not null;default:'FREE'"`
	Status               string       `gorm:"type:text;not null;default:'active'"`
	Lifetime             bool         `gorm:"not null;default:false"`
	StripeCustomerID     string       `gorm:"type:text"`
	StripeSubscriptionID string       `gorm:"type:text"`
	StripePriceID        string       `gorm:"type:text"`
	CreatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }

// PlanMapping maps a billing-provider price reference to an internal
// plan so webhook payloads resolve without hard-coded price ids.
type PlanMapping struct {
	ID              snowflake.ID `gorm:"primaryKey"`
	Provider        string       `gorm:"type:text;not null;uniqueIndex:ux_plan_mappings_ref,priority:1"`
	ProviderPriceID string       `gorm:"type:text;not null;uniqueIndex:ux_plan_mappings_ref,priority:2"`
	Plan            string       `gorm:"type:text;not null"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PlanMapping) TableName() string { return "plan_mappings" }
