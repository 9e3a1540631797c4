package domain

import (
	"strings"
	"testing"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

func TestGenerateFillsEveryLane(t *testing.T) {
	snap := &snapshotdomain.Snapshot{
		ArtistName: "Mara Vane",
		Genre:      "neo-soul",
		Vibe:       "warm, analog",
	}

	for _, lane := range Lanes {
		out := Generate(lane, snap)
		if out.Title == "" || out.Promise == "" {
			t.Errorf("lane %s: empty title or promise", lane)
		}
		if len(out.Pricing) == 0 || len(out.Deliverables) == 0 || len(out.Funnel) == 0 {
			t.Errorf("lane %s: missing structured content", lane)
		}
		if out.Scripts.DM == "" || out.Scripts.Caption == "" || out.Scripts.FollowUp == "" {
			t.Errorf("lane %s: missing scripts", lane)
		}
		if !strings.Contains(out.Scripts.DM, "Mara Vane") {
			t.Errorf("lane %s: DM script not personalized: %q", lane, out.Scripts.DM)
		}
		if !strings.HasSuffix(out.Title, "warm") {
			t.Errorf("lane %s: title missing vibe tag: %q", lane, out.Title)
		}
	}
}

func TestGenerateDefaultsForEmptySnapshot(t *testing.T) {
	out := Generate(LaneService, &snapshotdomain.Snapshot{})
	if strings.Contains(out.Scripts.DM, "%!") {
		t.Fatalf("broken template: %q", out.Scripts.DM)
	}
	if !strings.Contains(out.Scripts.DM, "the artist") {
		t.Errorf("expected fallback artist name in DM: %q", out.Scripts.DM)
	}
	if strings.Contains(out.Title, "—") {
		t.Errorf("no vibe tag should mean no title suffix: %q", out.Title)
	}
}
