package roadmap

import (
	"testing"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

func TestClassifyGoal(t *testing.T) {
	cases := []struct {
		raw  string
		want GoalLane
	}{
		{"book more shows", GoalShows},
		{"sell merch", GoalMerch},
		{"I want to lease beats to rappers", GoalBeats},
		{"land features", GoalFeatures},
		{"grow my spotify streams", GoalStreams},
		{"grow email list", GoalEmail},
		{"launch an offer", GoalOffer},
		{"build my brand", GoalBrand},
		{"make it", GoalGeneral},
		{"", GoalGeneral},
	}
	for _, tc := range cases {
		if got := ClassifyGoal(tc.raw); got != tc.want {
			t.Errorf("ClassifyGoal(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyGoalFirstMatchWins(t *testing.T) {
	// Mentions both shows and merch; the lane order decides.
	if got := ClassifyGoal("sell merch at shows"); got != GoalShows {
		t.Errorf("ClassifyGoal = %s, want %s", got, GoalShows)
	}
}

func TestClassifyBlocker(t *testing.T) {
	cases := []struct {
		raw  string
		want BlockerLane
	}{
		{"no audience", BlockerAudience},
		{"day job eats my time", BlockerTime},
		{"no money for ads", BlockerMoney},
		{"doing everything alone", BlockerTeam},
		{"no plan", BlockerPlan},
		{"inconsistent releases", BlockerConsistency},
		{"nothing to sell", BlockerNoOffer},
		{"pricing confusion", BlockerPricing},
		{"vibes are off", BlockerGeneral},
	}
	for _, tc := range cases {
		if got := ClassifyBlocker(tc.raw); got != tc.want {
			t.Errorf("ClassifyBlocker(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyAudience(t *testing.T) {
	cases := []struct {
		followers string
		listeners string
		want      AudienceTier
	}{
		{"", "", TierUnknown},
		{"0", "0", TierUnknown},
		{"0–99", "", TierLow},
		{"100-999", "500", TierLow},
		{"1k–10k", "", TierHigh},
		{"2k", "", TierMid},
		{"", "50k", TierHigh},
	}
	for _, tc := range cases {
		snap := &snapshotdomain.Snapshot{AudienceSize: tc.followers, MonthlyListeners: tc.listeners}
		if got := ClassifyAudience(snap); got != tc.want {
			t.Errorf("ClassifyAudience(%q, %q) = %s, want %s", tc.followers, tc.listeners, got, tc.want)
		}
	}
}

func TestBuildPlanShape(t *testing.T) {
	snap := &snapshotdomain.Snapshot{
		PrimaryGoal:    "grow email list",
		BiggestBlocker: "no audience",
		AudienceSize:   "100-999",
	}
	plan := Build(snap)

	if plan.GoalLane != GoalEmail || plan.BlockerLane != BlockerAudience || plan.AudienceTier != TierLow {
		t.Fatalf("classification: %+v", plan)
	}
	if len(plan.Weeks) != 4 {
		t.Fatalf("weeks = %d, want 4", len(plan.Weeks))
	}
	for _, week := range plan.Weeks {
		if week.Title == "" || week.FocusMetric == "" || week.LocalAction == "" {
			t.Errorf("week %d incomplete: %+v", week.Number, week)
		}
		if len(week.Tasks) == 0 || len(week.Tasks) > maxTasksPerWeek {
			t.Errorf("week %d task count = %d", week.Number, len(week.Tasks))
		}
		if len(week.TopThree) > 3 {
			t.Errorf("week %d top three = %d entries", week.Number, len(week.TopThree))
		}
		seen := map[string]bool{}
		for _, task := range week.Tasks {
			if seen[task] {
				t.Errorf("week %d has duplicate task %q", week.Number, task)
			}
			seen[task] = true
		}
	}
}
