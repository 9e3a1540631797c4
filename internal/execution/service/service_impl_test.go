package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/iteration"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	offerservice "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/service"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	snapshotservice "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/service"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

type stepClock struct {
	at time.Time
}

func (c *stepClock) Now() time.Time { return c.at }

type allAccess struct{}

func (allAccess) GetPlan(context.Context, string) (subscriptiondomain.Plan, error) {
	return subscriptiondomain.PlanTheLoop, nil
}

func (allAccess) CreateCheckout(context.Context, subscriptiondomain.CheckoutRequest) (*subscriptiondomain.CheckoutResponse, error) {
	return nil, subscriptiondomain.ErrBillingUnavailable
}

func (allAccess) ApplyBillingUpdate(context.Context, subscriptiondomain.BillingUpdate) error {
	return nil
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.ReferenceTimezone = "America/Chicago"
	cfg.Planner = config.PlannerThresholds{
		MinOutreach:    25,
		MinLeadRate:    0.05,
		MinCloseRate:   0.20,
		VolumeTarget:   50,
		MinLeadsSignal: 5,
	}
	return cfg
}

func setupExecutionTest(t *testing.T, clk *stepClock) (executiondomain.Service, *offerdomain.Blueprint, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&snapshotdomain.Snapshot{},
		&offerdomain.Blueprint{},
		&executiondomain.Run{},
		&executiondomain.CheckIn{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	snapSvc := snapshotservice.NewService(snapshotservice.Params{DB: db, Log: zap.NewNop(), GenID: node})
	offerSvc := offerservice.NewService(offerservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		SnapSvc: snapSvc,
		SubSvc:  allAccess{},
	})

	ctx := context.Background()
	if _, err := snapSvc.Upsert(ctx, "user-1", snapshotdomain.UpsertRequest{ArtistName: "Juno Wells"}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	offer, err := offerSvc.Create(ctx, "user-1", offerdomain.CreateRequest{Lane: "service"})
	if err != nil {
		t.Fatalf("seed offer: %v", err)
	}

	execSvc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clk,
		Cfg:      testConfig(),
		OfferSvc: offerSvc,
	})
	return execSvc, offer, db
}

func TestLogRunFreezesPlan(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, _ := setupExecutionTest(t, clk)
	ctx := context.Background()

	resp, err := execSvc.LogRun(ctx, "user-1", offer.ID.String(), executiondomain.LogRunRequest{
		Channel:  "instagram",
		Outreach: 10,
		Leads:    2,
	})
	if err != nil {
		t.Fatalf("log run: %v", err)
	}
	if resp.Plan.Bottleneck != iteration.BottleneckVolume {
		t.Fatalf("bottleneck = %s, want %s", resp.Plan.Bottleneck, iteration.BottleneckVolume)
	}

	var frozen iteration.Plan
	if err := json.Unmarshal(resp.Run.Plan, &frozen); err != nil {
		t.Fatalf("frozen plan unmarshal: %v", err)
	}
	if frozen.Bottleneck != resp.Plan.Bottleneck || frozen.Headline != resp.Plan.Headline {
		t.Fatal("stored plan must match the returned plan")
	}
}

func TestLogRunCoercesNegativeCounts(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, _ := setupExecutionTest(t, clk)

	resp, err := execSvc.LogRun(context.Background(), "user-1", offer.ID.String(), executiondomain.LogRunRequest{
		Outreach:     -4,
		Leads:        -1,
		RevenueCents: -100,
	})
	if err != nil {
		t.Fatalf("log run: %v", err)
	}
	if resp.Run.Outreach != 0 || resp.Run.Leads != 0 || resp.Run.RevenueCents != 0 {
		t.Fatalf("negative inputs must coerce to zero: %+v", resp.Run)
	}
}

func TestLogRunRejectsForeignOffer(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, _ := setupExecutionTest(t, clk)

	_, err := execSvc.LogRun(context.Background(), "intruder", offer.ID.String(), executiondomain.LogRunRequest{Outreach: 5})
	if !errors.Is(err, executiondomain.ErrNotFound) {
		t.Fatalf("foreign offer must read as not found, got %v", err)
	}
}

func TestUpsertCheckInCollapsesSameDay(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, db := setupExecutionTest(t, clk)
	ctx := context.Background()

	first, err := execSvc.UpsertCheckIn(ctx, "user-1", offer.ID.String(), executiondomain.CheckInRequest{
		Energy:          3,
		MinutesExecuted: 40,
		Win:             "sent the first batch",
	})
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}

	clk.at = clk.at.Add(4 * time.Hour)
	second, err := execSvc.UpsertCheckIn(ctx, "user-1", offer.ID.String(), executiondomain.CheckInRequest{
		Energy:          5,
		MinutesExecuted: 90,
		Win:             "booked two calls",
	})
	if err != nil {
		t.Fatalf("second check-in: %v", err)
	}

	if second.Day != first.Day {
		t.Fatalf("same calendar day expected, got %s and %s", first.Day, second.Day)
	}
	if second.Energy != 5 || second.MinutesExecuted != 90 || second.Win != "booked two calls" {
		t.Fatalf("second write must win: %+v", second)
	}

	var count int64
	if err := db.Model(&executiondomain.CheckIn{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("check-in rows = %d, want 1", count)
	}
}

func TestUpsertCheckInClampsEnergy(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, _ := setupExecutionTest(t, clk)

	row, err := execSvc.UpsertCheckIn(context.Background(), "user-1", offer.ID.String(), executiondomain.CheckInRequest{Energy: 11})
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if row.Energy != executiondomain.MaxEnergy {
		t.Fatalf("energy = %d, want clamp to %d", row.Energy, executiondomain.MaxEnergy)
	}
}

func TestListCheckInsHonorsLookback(t *testing.T) {
	clk := &stepClock{at: time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)}
	execSvc, offer, _ := setupExecutionTest(t, clk)
	ctx := context.Background()

	for day := 0; day < 3; day++ {
		if _, err := execSvc.UpsertCheckIn(ctx, "user-1", offer.ID.String(), executiondomain.CheckInRequest{Energy: 3}); err != nil {
			t.Fatalf("check-in day %d: %v", day, err)
		}
		clk.at = clk.at.AddDate(0, 0, 1)
	}

	rows, err := execSvc.ListCheckIns(ctx, "user-1", offer.ID.String(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 inside the lookback", len(rows))
	}
}
