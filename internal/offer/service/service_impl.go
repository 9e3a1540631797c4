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

	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	SnapSvc snapshotdomain.Service
	SubSvc  subscriptiondomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	snapSvc snapshotdomain.Service
	subSvc  subscriptiondomain.Service
	repo    repository.Repository[offerdomain.Blueprint]
}

func NewService(p Params) offerdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("offer.service"),
		genID:   p.GenID,
		snapSvc: p.SnapSvc,
		subSvc:  p.SubSvc,
		repo:    repository.ProvideStore[offerdomain.Blueprint](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, userID string, req offerdomain.CreateRequest) (*offerdomain.Blueprint, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, offerdomain.ErrInvalidUser
	}
	lane, ok := offerdomain.ParseLane(req.Lane)
	if !ok {
		return nil, offerdomain.ErrInvalidLane
	}

	snap, err := s.requireSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	blueprint := &offerdomain.Blueprint{
		ID:     s.genID.Generate(),
		UserID: userID,
	}
	if err := applyGenerated(blueprint, lane, snap); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, blueprint); err != nil {
		return nil, err
	}
	return blueprint, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]offerdomain.Blueprint, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, offerdomain.ErrInvalidUser
	}
	return s.repo.Find(ctx, map[string]any{"user_id": userID},
		repository.WithOrder("created_at DESC"),
	)
}

func (s *Service) Get(ctx context.Context, userID string, id string) (*offerdomain.Blueprint, error) {
	return s.findOwned(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, userID string, id string, req offerdomain.UpdateRequest) (*offerdomain.Blueprint, error) {
	blueprint, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	validated, err := offerdomain.ValidateUpdate(req)
	if err != nil {
		return nil, err
	}

	if validated.Lane != nil {
		blueprint.Lane = string(*validated.Lane)
	}
	if validated.Title != nil {
		blueprint.Title = *validated.Title
	}
	if validated.Promise != nil {
		blueprint.Promise = *validated.Promise
	}
	if validated.Goal != nil {
		blueprint.Goal = *validated.Goal
	}
	if validated.Audience != nil {
		blueprint.Audience = *validated.Audience
	}
	if validated.Vibe != nil {
		blueprint.Vibe = *validated.Vibe
	}
	if validated.HasPricing {
		if err := setJSON(&blueprint.Pricing, validated.Pricing); err != nil {
			return nil, err
		}
	}
	if validated.HasDeliverables {
		if err := setJSON(&blueprint.Deliverables, validated.Deliverables); err != nil {
			return nil, err
		}
	}
	if validated.HasFunnel {
		if err := setJSON(&blueprint.Funnel, validated.Funnel); err != nil {
			return nil, err
		}
	}
	if validated.Scripts != nil {
		if err := setJSON(&blueprint.Scripts, validated.Scripts); err != nil {
			return nil, err
		}
	}

	blueprint.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, blueprint); err != nil {
		return nil, err
	}
	return blueprint, nil
}

func (s *Service) Regenerate(ctx context.Context, userID string, id string, req offerdomain.RegenerateRequest) (*offerdomain.Blueprint, error) {
	blueprint, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	lane, ok := offerdomain.ParseLane(blueprint.Lane)
	if !ok {
		lane = offerdomain.LaneService
	}
	if strings.TrimSpace(req.Lane) != "" {
		requested, ok := offerdomain.ParseLane(req.Lane)
		if !ok {
			return nil, offerdomain.ErrInvalidLane
		}
		lane = requested
	}

	snap, err := s.requireSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := applyGenerated(blueprint, lane, snap); err != nil {
		return nil, err
	}
	blueprint.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, blueprint); err != nil {
		return nil, err
	}
	return blueprint, nil
}

func (s *Service) requireSnapshot(ctx context.Context, userID string) (*snapshotdomain.Snapshot, error) {
	snap, err := s.snapSvc.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, snapshotdomain.ErrNotFound) {
			return nil, offerdomain.ErrNoSnapshot
		}
		return nil, err
	}
	return snap, nil
}

func (s *Service) checkQuota(ctx context.Context, userID string) error {
	plan, err := s.subSvc.GetPlan(ctx, userID)
	if err != nil {
		return err
	}
	limit := subscriptiondomain.BlueprintLimit(plan)
	if limit < 0 {
		return nil
	}
	count, err := s.repo.Count(ctx, map[string]any{"user_id": userID})
	if err != nil {
		return err
	}
	if count >= int64(limit) {
		return &offerdomain.LimitReachedError{
			Current:  plan,
			Required: subscriptiondomain.NextPlanAbove(plan),
			Limit:    limit,
		}
	}
	return nil
}

func (s *Service) findOwned(ctx context.Context, userID string, id string) (*offerdomain.Blueprint, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, offerdomain.ErrInvalidUser
	}
	offerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, offerdomain.ErrNotFound
	}
	// Owner is part of the lookup so missing and not-owned rows are
	// indistinguishable to the caller.
	blueprint, err := s.repo.FindOne(ctx, map[string]any{"id": offerID, "user_id": userID})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, offerdomain.ErrNotFound
		}
		return nil, err
	}
	return blueprint, nil
}

func applyGenerated(blueprint *offerdomain.Blueprint, lane offerdomain.Lane, snap *snapshotdomain.Snapshot) error {
	generated := offerdomain.Generate(lane, snap)

	blueprint.Lane = string(lane)
	blueprint.Title = generated.Title
	blueprint.Promise = generated.Promise
	blueprint.Goal = snap.PrimaryGoal
	blueprint.Audience = snap.AudienceSize
	blueprint.Vibe = snap.Vibe

	if err := setJSON(&blueprint.Pricing, generated.Pricing); err != nil {
		return err
	}
	if err := setJSON(&blueprint.Deliverables, generated.Deliverables); err != nil {
		return err
	}
	if err := setJSON(&blueprint.Funnel, generated.Funnel); err != nil {
		return err
	}
	return setJSON(&blueprint.Scripts, generated.Scripts)
}

func setJSON(dest *datatypes.JSON, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	*dest = datatypes.JSON(raw)
	return nil
}
