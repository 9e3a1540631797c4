package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/clock"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/logger"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/migration"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/seed"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/server"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			if err := migration.Run(conn); err != nil {
				return err
			}
			return seed.EnsurePlanMappings(conn, cfg)
		}),

		subscription.Module,
		snapshot.Module,
		diagnostic.Module,
		offer.Module,
		execution.Module,
		events.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
