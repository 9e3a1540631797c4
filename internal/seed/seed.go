// Package seed bootstraps the price-to-plan mapping rows so webhook
// plan resolution works on a fresh database.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

// EnsurePlanMappings upserts one mapping row per configured paid plan
// price. Prices left unconfigured are skipped, not errors.
func EnsurePlanMappings(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	mappings := []struct {
		priceID string
		plan    subscriptiondomain.Plan
	}{
		{cfg.Stripe.PriceSouthLoop, subscriptiondomain.PlanSouthLoop},
		{cfg.Stripe.PriceRiverNorth, subscriptiondomain.PlanRiverNorth},
		{cfg.Stripe.PriceTheLoop, subscriptiondomain.PlanTheLoop},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range mappings {
			if m.priceID == "" {
				continue
			}
			row := subscriptiondomain.PlanMapping{
				ID:              node.Generate(),
				Provider:        "stripe",
				ProviderPriceID: m.priceID,
				Plan:            string(m.plan),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_price_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"plan"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
