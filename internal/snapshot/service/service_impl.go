package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  repository.Repository[snapshotdomain.Snapshot]
}

func NewService(p Params) snapshotdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("snapshot.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[snapshotdomain.Snapshot](p.DB),
	}
}

func (s *Service) Upsert(ctx context.Context, userID string, req snapshotdomain.UpsertRequest) (*snapshotdomain.Snapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, snapshotdomain.ErrInvalidUser
	}
	if strings.TrimSpace(req.ArtistName) == "" {
		return nil, snapshotdomain.ErrMissingArtistName
	}

	row, err := s.repo.FindOne(ctx, map[string]any{"user_id": userID})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		row = &snapshotdomain.Snapshot{
			ID:     s.genID.Generate(),
			UserID: userID,
		}
	}

	applyRequest(row, req)
	row.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Get(ctx context.Context, userID string) (*snapshotdomain.Snapshot, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, snapshotdomain.ErrInvalidUser
	}
	row, err := s.repo.FindOne(ctx, map[string]any{"user_id": userID})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, snapshotdomain.ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *Service) Reset(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return snapshotdomain.ErrInvalidUser
	}
	return s.repo.Delete(ctx, map[string]any{"user_id": userID})
}

func applyRequest(row *snapshotdomain.Snapshot, req snapshotdomain.UpsertRequest) {
	row.ArtistName = capField(req.ArtistName, snapshotdomain.MaxShortField)
	row.City = capField(req.City, snapshotdomain.MaxShortField)
	row.Genre = capField(req.Genre, snapshotdomain.MaxShortField)
	row.Vibe = capField(req.Vibe, snapshotdomain.MaxShortField)
	row.AudienceSize = capField(req.AudienceSize, snapshotdomain.MaxShortField)
	row.MonthlyListeners = capField(req.MonthlyListeners, snapshotdomain.MaxShortField)
	row.EmailListSize = capField(req.EmailListSize, snapshotdomain.MaxShortField)
	row.CurrentOffer = capField(req.CurrentOffer, snapshotdomain.MaxLongField)
	row.CurrentPrice = capField(req.CurrentPrice, snapshotdomain.MaxShortField)
	row.MonthlyIncome = capField(req.MonthlyIncome, snapshotdomain.MaxShortField)
	row.LastRelease = capField(req.LastRelease, snapshotdomain.MaxShortField)
	row.ReleaseCadence = capField(req.ReleaseCadence, snapshotdomain.MaxShortField)
	row.PrimaryGoal = capField(req.PrimaryGoal, snapshotdomain.MaxLongField)
	row.BiggestBlocker = capField(req.BiggestBlocker, snapshotdomain.MaxLongField)

	if req.Links != nil {
		links := datatypes.JSONMap{}
		count := 0
		for name, url := range req.Links {
			name = strings.TrimSpace(name)
			url = strings.TrimSpace(url)
			if name == "" || url == "" {
				continue
			}
			if count >= snapshotdomain.MaxLinks {
				break
			}
			links[capField(name, snapshotdomain.MaxShortField)] = capField(url, snapshotdomain.MaxLongField)
			count++
		}
		row.Links = links
	}
}

func capField(raw string, max int) string {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > max {
		return trimmed[:max]
	}
	return trimmed
}
