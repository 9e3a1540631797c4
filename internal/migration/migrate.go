// Package migration owns the schema. Models are listed explicitly so a
// new table is a deliberate change here, not a side effect.
package migration

import (
	"gorm.io/gorm"

	diagnosticdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&subscriptiondomain.Subscription{},
		&subscriptiondomain.PlanMapping{},
		&snapshotdomain.Snapshot{},
		&diagnosticdomain.Report{},
		&offerdomain.Blueprint{},
		&executiondomain.Run{},
		&executiondomain.CheckIn{},
		&events.AppEvent{},
	}
}

// Run applies the schema.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
