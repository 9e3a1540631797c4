package service

import (
	"bytes"
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

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/clock"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	diagnosticdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/pkg/repository"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 30
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Cfg     config.Config
	SnapSvc snapshotdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	dedupWindow time.Duration
	snapSvc     snapshotdomain.Service
	repo        repository.Repository[diagnosticdomain.Report]
}

func NewService(p Params) diagnosticdomain.Service {
	window := p.Cfg.DiagnosticDedupWindow
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("diagnostic.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		dedupWindow: window,
		snapSvc:     p.SnapSvc,
		repo:        repository.ProvideStore[diagnosticdomain.Report](p.DB),
	}
}

func (s *Service) Run(ctx context.Context, userID string) (*diagnosticdomain.RunResponse, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, diagnosticdomain.ErrInvalidUser
	}

	snap, err := s.snapSvc.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, snapshotdomain.ErrNotFound) {
			return nil, diagnosticdomain.ErrNoSnapshot
		}
		return nil, err
	}

	result := diagnosticdomain.Score(snap)
	scoresJSON, movesJSON, notesJSON, err := marshalResult(result)
	if err != nil {
		return nil, err
	}

	// Dedup is a read-then-insert with a window; the race window is
	// accepted since a duplicate row only affects history cosmetics.
	latest, err := s.latestReport(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil && s.isDuplicate(latest, snap.ID, scoresJSON, movesJSON, notesJSON) {
		return &diagnosticdomain.RunResponse{Report: latest, Result: result, Deduped: true}, nil
	}

	report := &diagnosticdomain.Report{
		ID:         s.genID.Generate(),
		UserID:     userID,
		SnapshotID: snap.ID,
		Scores:     datatypes.JSON(scoresJSON),
		TopMoves:   datatypes.JSON(movesJSON),
		Notes:      datatypes.JSON(notesJSON),
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return &diagnosticdomain.RunResponse{Report: report, Result: result}, nil
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]diagnosticdomain.HistoryItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, diagnosticdomain.ErrInvalidUser
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	// Fetch one extra row so the oldest visible item still gets a delta.
	reports, err := s.repo.Find(ctx, map[string]any{"user_id": userID},
		repository.WithOrder("created_at DESC, id DESC"),
		repository.WithLimit(limit+1),
	)
	if err != nil {
		return nil, err
	}

	composites := make([]int, len(reports))
	scores := make([]diagnosticdomain.Scores, len(reports))
	for i, report := range reports {
		var sc diagnosticdomain.Scores
		if err := json.Unmarshal(report.Scores, &sc); err != nil {
			return nil, diagnosticdomain.ErrInvalidReport
		}
		scores[i] = sc
		composites[i] = sc.Composite()
	}

	count := len(reports)
	if count > limit {
		count = limit
	}
	items := make([]diagnosticdomain.HistoryItem, 0, count)
	for i := 0; i < count; i++ {
		item := diagnosticdomain.HistoryItem{
			ID:        reports[i].ID,
			CreatedAt: reports[i].CreatedAt,
			Scores:    scores[i],
			Composite: composites[i],
		}
		if i+1 < len(reports) {
			delta := composites[i] - composites[i+1]
			item.Delta = &delta
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) latestReport(ctx context.Context, userID string) (*diagnosticdomain.Report, error) {
	reports, err := s.repo.Find(ctx, map[string]any{"user_id": userID},
		repository.WithOrder("created_at DESC, id DESC"),
		repository.WithLimit(1),
	)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return &reports[0], nil
}

func (s *Service) isDuplicate(latest *diagnosticdomain.Report, snapshotID snowflake.ID, scores, moves, notes []byte) bool {
	if latest.SnapshotID != snapshotID {
		return false
	}
	if s.clock.Now().UTC().Sub(latest.CreatedAt) > s.dedupWindow {
		return false
	}
	return bytes.Equal(latest.Scores, scores) &&
		bytes.Equal(latest.TopMoves, moves) &&
		bytes.Equal(latest.Notes, notes)
}

func marshalResult(result diagnosticdomain.Result) (scores, moves, notes []byte, err error) {
	if scores, err = json.Marshal(result.Scores); err != nil {
		return nil, nil, nil, err
	}
	if moves, err = json.Marshal(result.TopMoves); err != nil {
		return nil, nil, nil, err
	}
	if notes, err = json.Marshal(result.Notes); err != nil {
		return nil, nil, nil, err
	}
	return scores, moves, notes, nil
}
