package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

func setupSnapshotTest(t *testing.T) snapshotdomain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&snapshotdomain.Snapshot{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return NewService(Params{DB: db, Log: zap.NewNop(), GenID: node})
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	svc := setupSnapshotTest(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, "user-1", snapshotdomain.UpsertRequest{ArtistName: "Nova Haze", City: "Chicago"})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := svc.Upsert(ctx, "user-1", snapshotdomain.UpsertRequest{ArtistName: "Nova Haze", City: "Detroit"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert must keep one row per user, got ids %v and %v", first.ID, second.ID)
	}
	if second.City != "Detroit" {
		t.Fatalf("city = %q, want Detroit", second.City)
	}
}

func TestUpsertRequiresArtistName(t *testing.T) {
	svc := setupSnapshotTest(t)
	_, err := svc.Upsert(context.Background(), "user-1", snapshotdomain.UpsertRequest{ArtistName: "   "})
	if !errors.Is(err, snapshotdomain.ErrMissingArtistName) {
		t.Fatalf("expected missing artist name, got %v", err)
	}
}

func TestUpsertCapsFieldsAndLinks(t *testing.T) {
	svc := setupSnapshotTest(t)

	links := map[string]string{}
	for i := 0; i < snapshotdomain.MaxLinks+4; i++ {
		links[strings.Repeat("l", i+1)] = "https://example.test"
	}
	links["empty"] = "  "

	snap, err := svc.Upsert(context.Background(), "user-1", snapshotdomain.UpsertRequest{
		ArtistName: strings.Repeat("n", snapshotdomain.MaxShortField+50),
		Links:      links,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(snap.ArtistName) != snapshotdomain.MaxShortField {
		t.Errorf("artist name length = %d, want cap %d", len(snap.ArtistName), snapshotdomain.MaxShortField)
	}
	if len(snap.Links) > snapshotdomain.MaxLinks {
		t.Errorf("links = %d, want cap %d", len(snap.Links), snapshotdomain.MaxLinks)
	}
	if _, ok := snap.Links["empty"]; ok {
		t.Error("blank link values must be dropped")
	}
}

func TestGetAndReset(t *testing.T) {
	svc := setupSnapshotTest(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "user-1"); !errors.Is(err, snapshotdomain.ErrNotFound) {
		t.Fatalf("expected not found before upsert, got %v", err)
	}

	if _, err := svc.Upsert(ctx, "user-1", snapshotdomain.UpsertRequest{ArtistName: "Nova Haze"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1"); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := svc.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Get(ctx, "user-1"); !errors.Is(err, snapshotdomain.ErrNotFound) {
		t.Fatalf("expected not found after reset, got %v", err)
	}

	// Resetting a missing snapshot is not an error.
	if err := svc.Reset(ctx, "user-1"); err != nil {
		t.Fatalf("second reset: %v", err)
	}
}
