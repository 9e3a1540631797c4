package events

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/clock"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Tracker struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[AppEvent]
}

func NewService(p Params) Service {
	return &Tracker{
		db:    p.DB,
		log:   p.Log.Named("events.tracker"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[AppEvent](p.DB),
	}
}

func (t *Tracker) Track(ctx context.Context, userID string, req TrackRequest) error {
	userID = strings.TrimSpace(userID)
	name := capText(req.Name, maxNameLen)
	if userID == "" || name == "" {
		return ErrInvalidEvent
	}

	event := &AppEvent{
		ID:        t.genID.Generate(),
		UserID:    userID,
		Name:      name,
		Route:     capText(req.Route, maxRouteLen),
		Step:      capText(req.Step, maxNameLen),
		Meta:      SanitizeMeta(req.Meta),
		CreatedAt: t.clock.Now().UTC(),
	}
	if id, err := snowflake.ParseString(strings.TrimSpace(req.OfferID)); err == nil {
		event.OfferID = &id
	}
	if id, err := snowflake.ParseString(strings.TrimSpace(req.SnapshotID)); err == nil {
		event.SnapshotID = &id
	}

	return t.repo.Create(ctx, event)
}

func (t *Tracker) Funnel(ctx context.Context) ([]FunnelStep, error) {
	steps := make([]FunnelStep, 0, len(FunnelSteps))
	var previous int64 = -1
	for _, name := range FunnelSteps {
		var users int64
		err := t.db.WithContext(ctx).
			Model(&AppEvent{}).
			Where("name = ?", name).
			Distinct("user_id").
			Count(&users).Error
		if err != nil {
			return nil, err
		}

		step := FunnelStep{Step: name, Users: users}
		switch {
		case previous < 0:
			step.Conversion = 1
		case previous == 0:
			step.Conversion = 0
		default:
			step.Conversion = float64(users) / float64(previous)
		}
		steps = append(steps, step)
		previous = users
	}
	return steps, nil
}

func capText(raw string, max int) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > max {
		return trimmed[:max]
	}
	return trimmed
}
