package domain

import (
	"reflect"
	"testing"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

func TestScoreRangesAndMoveCount(t *testing.T) {
	snaps := []*snapshotdomain.Snapshot{
		{},
		{
			ArtistName:       "Nova Haze",
			Genre:            "indie",
			Vibe:             "dreamy, late-night",
			AudienceSize:     "1k–10k",
			MonthlyListeners: "12k",
			EmailListSize:    "450",
			CurrentOffer:     "Monthly vinyl club with behind-the-scenes demos",
			CurrentPrice:     "$15/mo",
			MonthlyIncome:    "1,200",
			LastRelease:      "last month",
			ReleaseCadence:   "every 6 weeks",
			PrimaryGoal:      "grow email list",
			BiggestBlocker:   "no time",
		},
	}

	for _, snap := range snaps {
		result := Score(snap)
		for name, v := range map[string]int{
			"monetization": result.Scores.Monetization,
			"audience":     result.Scores.Audience,
			"offer":        result.Scores.Offer,
			"momentum":     result.Scores.Momentum,
			"clarity":      result.Scores.Clarity,
			"composite":    result.Scores.Composite(),
		} {
			if v < 0 || v > 100 {
				t.Errorf("%s score %d out of range", name, v)
			}
		}
		if len(result.TopMoves) != 3 {
			t.Errorf("expected exactly 3 top moves, got %d", len(result.TopMoves))
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	snap := &snapshotdomain.Snapshot{
		ArtistName:   "Marlowe",
		AudienceSize: "100-999",
		PrimaryGoal:  "grow streams",
	}
	first := Score(snap)
	second := Score(snap)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestTopMovesForEmptyFunnel(t *testing.T) {
	snap := &snapshotdomain.Snapshot{
		ArtistName:    "Quiet Corner",
		AudienceSize:  "0–99",
		EmailListSize: "0",
		CurrentOffer:  "",
	}
	result := Score(snap)

	if got := result.TopMoves[0].Title; got != "Build an email capture funnel" {
		t.Fatalf("first move = %q", got)
	}
	if got := result.TopMoves[0].Impact; got != ImpactHigh {
		t.Errorf("first move impact = %q, want %q", got, ImpactHigh)
	}
	if got := result.TopMoves[1].Title; got != "Define one sellable offer" {
		t.Fatalf("second move = %q", got)
	}
	if got := result.TopMoves[1].Impact; got != ImpactHigh {
		t.Errorf("second move impact = %q, want %q", got, ImpactHigh)
	}
}

func TestCompositeRounding(t *testing.T) {
	s := Scores{Monetization: 50, Audience: 50, Offer: 50, Momentum: 50, Clarity: 52}
	if got := s.Composite(); got != 50 {
		t.Errorf("composite = %d, want 50", got)
	}
	s = Scores{Monetization: 50, Audience: 50, Offer: 50, Momentum: 52, Clarity: 51}
	if got := s.Composite(); got != 51 {
		t.Errorf("composite = %d, want 51", got)
	}
}
