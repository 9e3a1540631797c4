package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/clock"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/iteration"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

const defaultRunsLimit = 20

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	OfferSvc offerdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	loc      *time.Location
	planner  config.PlannerThresholds
	offerSvc offerdomain.Service

	runRepo     repository.Repository[executiondomain.Run]
	checkInRepo repository.Repository[executiondomain.CheckIn]
}

func NewService(p Params) executiondomain.Service {
	loc, err := time.LoadLocation(p.Cfg.ReferenceTimezone)
	if err != nil {
		p.Log.Warn("unknown reference timezone, falling back to UTC",
			zap.String("timezone", p.Cfg.ReferenceTimezone))
		loc = time.UTC
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("execution.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		loc:         loc,
		planner:     p.Cfg.Planner,
		offerSvc:    p.OfferSvc,
		runRepo:     repository.ProvideStore[executiondomain.Run](p.DB),
		checkInRepo: repository.ProvideStore[executiondomain.CheckIn](p.DB),
	}
}

func (s *Service) LogRun(ctx context.Context, userID, offerID string, req executiondomain.LogRunRequest) (*executiondomain.LogRunResponse, error) {
	offer, err := s.ownedOffer(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}

	metrics := iteration.Metrics{
		Outreach:     nonNegative(req.Outreach),
		Leads:        nonNegative(req.Leads),
		Calls:        nonNegative(req.CallsBooked),
		Sales:        nonNegative(req.Sales),
		RevenueCents: nonNegativeInt64(req.RevenueCents),
	}

	lane, _ := offerdomain.ParseLane(offer.Lane)
	plan := iteration.Build(metrics, lane, s.planner)
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, err
	}

	run := &executiondomain.Run{
		ID:           s.genID.Generate(),
		UserID:       strings.TrimSpace(userID),
		OfferID:      offer.ID,
		Channel:      capText(req.Channel, executiondomain.MaxChannelLen),
		Outreach:     metrics.Outreach,
		Leads:        metrics.Leads,
		CallsBooked:  metrics.Calls,
		Sales:        metrics.Sales,
		RevenueCents: metrics.RevenueCents,
		WentWell:     capText(req.WentWell, executiondomain.MaxReflectionLen),
		GotStuck:     capText(req.GotStuck, executiondomain.MaxReflectionLen),
		Plan:         datatypes.JSON(planJSON),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	return &executiondomain.LogRunResponse{Run: run, Plan: plan}, nil
}

func (s *Service) ListRuns(ctx context.Context, userID, offerID string, limit int) ([]executiondomain.Run, error) {
	offer, err := s.ownedOffer(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultRunsLimit {
		limit = defaultRunsLimit
	}
	return s.runRepo.Find(ctx, map[string]any{"offer_id": offer.ID},
		repository.WithOrder("created_at DESC, id DESC"),
		repository.WithLimit(limit),
	)
}

func (s *Service) UpsertCheckIn(ctx context.Context, userID, offerID string, req executiondomain.CheckInRequest) (*executiondomain.CheckIn, error) {
	offer, err := s.ownedOffer(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := &executiondomain.CheckIn{
		ID:              s.genID.Generate(),
		UserID:          strings.TrimSpace(userID),
		OfferID:         offer.ID,
		Day:             s.dayKey(now),
		Energy:          clampInt(req.Energy, executiondomain.MinEnergy, executiondomain.MaxEnergy),
		MinutesExecuted: clampInt(req.MinutesExecuted, 0, executiondomain.MaxMinutes),
		KeyMetric:       capText(req.KeyMetric, executiondomain.MaxChannelLen),
		KeyMetricValue:  capText(req.KeyMetricValue, executiondomain.MaxChannelLen),
		Win:             capText(req.Win, executiondomain.MaxReflectionLen),
		Blocker:         capText(req.Blocker, executiondomain.MaxReflectionLen),
		NextStep:        capText(req.NextStep, executiondomain.MaxReflectionLen),
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	// Atomic per (offer, day): concurrent check-ins collapse to one row
	// with the later write winning on fields.
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "offer_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"energy", "minutes_executed", "key_metric", "key_metric_value",
			"win", "blocker", "next_step", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	stored, err := s.checkInRepo.FindOne(ctx, map[string]any{"offer_id": offer.ID, "day": row.Day})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) ListCheckIns(ctx context.Context, userID, offerID string, lookbackDays int) ([]executiondomain.CheckIn, error) {
	offer, err := s.ownedOffer(ctx, userID, offerID)
	if err != nil {
		return nil, err
	}
	if lookbackDays <= 0 || lookbackDays > executiondomain.MaxLookbackDays {
		lookbackDays = executiondomain.MaxLookbackDays
	}

	since := s.dayKey(s.clock.Now().AddDate(0, 0, -lookbackDays))
	var rows []executiondomain.CheckIn
	err = s.db.WithContext(ctx).
		Where("offer_id = ? AND day >= ?", offer.ID, since).
		Order("day DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// dayKey buckets an instant into the fixed reference timezone so
// "today" is the same day for every user regardless of server region.
func (s *Service) dayKey(at time.Time) string {
	return at.In(s.loc).Format("2006-01-02")
}

func (s *Service) ownedOffer(ctx context.Context, userID, offerID string) (*offerdomain.Blueprint, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, executiondomain.ErrInvalidUser
	}
	offer, err := s.offerSvc.Get(ctx, userID, offerID)
	if err != nil {
		if errors.Is(err, offerdomain.ErrNotFound) {
			return nil, executiondomain.ErrNotFound
		}
		return nil, err
	}
	return offer, nil
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func nonNegativeInt64(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func capText(raw string, max int) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > max {
		return trimmed[:max]
	}
	return trimmed
}
