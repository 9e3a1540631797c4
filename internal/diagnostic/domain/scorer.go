package domain

import (
	"strings"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

// Minimum text length before a free-text answer counts as substantive.
const substantiveLen = 8

// Score runs the fixed-heuristic diagnostic over a snapshot. No
// randomness, no external calls; the rules stay transparent on purpose.
func Score(snap *snapshotdomain.Snapshot) Result {
	followers := snapshotdomain.ParseBucketCeiling(snap.AudienceSize)
	listeners := snapshotdomain.ParseBucketCeiling(snap.MonthlyListeners)
	emails := snapshotdomain.ParseLooseCount(snap.EmailListSize)

	scores := Scores{
		Monetization: monetizationScore(snap),
		Audience:     audienceScore(followers, listeners, emails),
		Offer:        offerScore(snap),
		Momentum:     momentumScore(snap),
		Clarity:      clarityScore(snap),
	}

	return Result{
		Scores:   scores,
		TopMoves: pickTopMoves(snap, followers, listeners, emails),
		Notes:    buildNotes(snap, scores),
	}
}

func audienceScore(followers, listeners, emails int) int {
	score := 0
	score += tiered(followers, []tier{{10_000, 40}, {1_000, 30}, {100, 18}, {1, 8}})
	score += tiered(listeners, []tier{{10_000, 35}, {1_000, 25}, {100, 15}, {1, 6}})
	score += tiered(emails, []tier{{1_000, 25}, {100, 18}, {25, 10}, {1, 5}})
	return capScore(score)
}

func monetizationScore(snap *snapshotdomain.Snapshot) int {
	score := 0
	if substantive(snap.CurrentOffer) {
		score += 35
	}
	if strings.TrimSpace(snap.CurrentPrice) != "" {
		score += 25
	}
	if snapshotdomain.ParseLooseCount(snap.MonthlyIncome) > 0 {
		score += 25
	}
	if snapshotdomain.ParseLooseCount(snap.EmailListSize) >= 100 {
		score += 15
	}
	return capScore(score)
}

func offerScore(snap *snapshotdomain.Snapshot) int {
	score := 0
	if strings.TrimSpace(snap.CurrentOffer) != "" {
		score += 30
	}
	if substantive(snap.CurrentOffer) {
		score += 20
	}
	if strings.TrimSpace(snap.CurrentPrice) != "" {
		score += 30
	}
	if strings.TrimSpace(snap.Vibe) != "" {
		score += 20
	}
	return capScore(score)
}

func momentumScore(snap *snapshotdomain.Snapshot) int {
	score := 0
	if strings.TrimSpace(snap.LastRelease) != "" {
		score += 35
	}
	if strings.TrimSpace(snap.ReleaseCadence) != "" {
		score += 35
	}
	cadence := strings.ToLower(snap.ReleaseCadence)
	if strings.Contains(cadence, "week") || strings.Contains(cadence, "month") {
		score += 30
	}
	return capScore(score)
}

func clarityScore(snap *snapshotdomain.Snapshot) int {
	score := 0
	if substantive(snap.PrimaryGoal) {
		score += 40
	}
	if substantive(snap.BiggestBlocker) {
		score += 30
	}
	if strings.TrimSpace(snap.ArtistName) != "" {
		score += 15
	}
	if strings.TrimSpace(snap.Genre) != "" {
		score += 15
	}
	return capScore(score)
}

// moveCandidate is one gated recommendation. Candidates are evaluated
// in this order; the first three whose condition fires make the list.
type moveCandidate struct {
	matches func() bool
	move    TopMove
}

func pickTopMoves(snap *snapshotdomain.Snapshot, followers, listeners, emails int) []TopMove {
	candidates := []moveCandidate{
		{
			matches: func() bool { return emails < 100 },
			move: TopMove{
				Title:     "Build an email capture funnel",
				Rationale: "Under 100 subscribers means every platform change can wipe out your reach overnight.",
				NextSteps: []string{
					"Pick one lead magnet you can deliver this week (unreleased track, sample pack, presale access)",
					"Set up a single landing page with one email field",
					"Post the link in every bio and pin it for 14 days",
				},
				Impact: ImpactHigh,
			},
		},
		{
			matches: func() bool { return strings.TrimSpace(snap.CurrentOffer) == "" },
			move: TopMove{
				Title:     "Define one sellable offer",
				Rationale: "Nothing on the table means fans who want to pay you have no way to do it.",
				NextSteps: []string{
					"Write one sentence: who it's for, what they get, what it costs",
					"Pick a price you can say out loud without flinching",
					"Tell ten real people about it before you polish anything",
				},
				Impact: ImpactHigh,
			},
		},
		{
			matches: func() bool { return strings.TrimSpace(snap.CurrentPrice) == "" },
			move: TopMove{
				Title:     "Put a price on what you already do",
				Rationale: "An offer without a number forces every buyer into a negotiation most will skip.",
				NextSteps: []string{
					"List the last three things people asked you to do for free",
					"Attach a number to each one",
					"Quote the number next time, unedited",
				},
				Impact: ImpactMedium,
			},
		},
		{
			matches: func() bool {
				return strings.TrimSpace(snap.ReleaseCadence) == "" || strings.TrimSpace(snap.LastRelease) == ""
			},
			move: TopMove{
				Title:     "Lock a release cadence",
				Rationale: "Irregular output resets your momentum with both fans and the algorithms.",
				NextSteps: []string{
					"Choose a cadence you can hold for 90 days, even if it's slow",
					"Batch the next two releases before announcing the first",
					"Announce the schedule publicly so it costs you something to miss",
				},
				Impact: ImpactMedium,
			},
		},
		{
			matches: func() bool { return followers < 100 && listeners < 100 },
			move: TopMove{
				Title:     "Concentrate on one channel",
				Rationale: "Splitting a tiny audience across platforms keeps every channel below critical mass.",
				NextSteps: []string{
					"Pick the one platform where your last ten interactions happened",
					"Post there daily for 30 days, ignore the rest",
					"Reply to every comment within a day",
				},
				Impact: ImpactHigh,
			},
		},
	}

	moves := make([]TopMove, 0, 3)
	for _, candidate := range candidates {
		if len(moves) == 3 {
			break
		}
		if candidate.matches() {
			moves = append(moves, candidate.move)
		}
	}

	for len(moves) < 3 {
		moves = append(moves, fallbackMoves[len(moves)%len(fallbackMoves)])
	}
	return moves[:3]
}

// fallbackMoves pad the list when fewer than three conditions fire.
var fallbackMoves = []TopMove{
	{
		Title:     "Talk to ten fans this week",
		Rationale: "Direct conversations surface what people would actually pay for faster than any analytics.",
		NextSteps: []string{
			"DM the last ten people who engaged with anything you posted",
			"Ask one question: what would you want from me that doesn't exist yet?",
			"Write the answers down verbatim",
		},
		Impact: ImpactMedium,
	},
	{
		Title:     "Tighten your one-line pitch",
		Rationale: "If your next supporter can't repeat what you do in one sentence, word of mouth stalls.",
		NextSteps: []string{
			"Write your genre, your edge and who it's for in under 15 words",
			"Put it at the top of every profile",
			"Test it on someone who's never heard your music",
		},
		Impact: ImpactLow,
	},
	{
		Title:     "Audit where your hours go",
		Rationale: "Most early-stage creators spend the majority of their time on work nobody will ever pay for.",
		NextSteps: []string{
			"Track one week of music work in a note",
			"Mark each block: builds audience, builds offer, or neither",
			"Cut the biggest 'neither' block next week",
		},
		Impact: ImpactLow,
	},
}

func buildNotes(snap *snapshotdomain.Snapshot, scores Scores) []string {
	notes := []string{
		"Scores are fixed heuristics over your snapshot, not predictions. Change the inputs and rerun.",
	}
	if scores.Audience < 30 {
		notes = append(notes, "Audience is the gating score right now; monetization moves compound slowly below it.")
	}
	if scores.Monetization == 0 {
		notes = append(notes, "No monetization signals found. The first dollar matters more than the tenth follower.")
	}
	if snap.GoalChoice().Custom && strings.TrimSpace(snap.PrimaryGoal) != "" {
		notes = append(notes, "Your goal didn't match a standard lane; the roadmap will classify it from your wording.")
	}
	return notes
}

type tier struct {
	min    int
	points int
}

// tiered awards the points of the first threshold the value clears.
func tiered(value int, tiers []tier) int {
	for _, t := range tiers {
		if value >= t.min {
			return t.points
		}
	}
	return 0
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func substantive(raw string) bool {
	return len(strings.TrimSpace(raw)) > substantiveLen
}
