// Package roadmap builds a 4-week task plan from the snapshot's goal
// and blocker. Computed fresh on every view; nothing is persisted.
package roadmap

import (
	"strings"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

// GoalLane classifies what the user is trying to grow.
type GoalLane string

const (
	GoalShows    GoalLane = "shows"
	GoalMerch    GoalLane = "merch"
	GoalBeats    GoalLane = "beats"
	GoalFeatures GoalLane = "features"
	GoalStreams  GoalLane = "streams"
	GoalEmail    GoalLane = "email"
	GoalOffer    GoalLane = "offer"
	GoalBrand    GoalLane = "brand"
	GoalGeneral  GoalLane = "general"
)

// BlockerLane classifies what the user says is in the way.
type BlockerLane string

const (
	BlockerAudience    BlockerLane = "audience"
	BlockerTime        BlockerLane = "time"
	BlockerMoney       BlockerLane = "money"
	BlockerTeam        BlockerLane = "team"
	BlockerPlan        BlockerLane = "plan"
	BlockerConsistency BlockerLane = "consistency"
	BlockerNoOffer     BlockerLane = "no_offer"
	BlockerPricing     BlockerLane = "pricing"
	BlockerGeneral     BlockerLane = "general"
)

// AudienceTier buckets reach against fixed boundaries.
type AudienceTier string

const (
	TierUnknown AudienceTier = "unknown"
	TierLow     AudienceTier = "low"
	TierMid     AudienceTier = "mid"
	TierHigh    AudienceTier = "high"
)

const (
	lowCeiling      = 1_000
	midCeiling      = 10_000
	maxTasksPerWeek = 8
)

// Week is one week of the plan.
type Week struct {
	Number      int      `json:"number"`
	Title       string   `json:"title"`
	FocusMetric string   `json:"focus_metric"`
	TopThree    []string `json:"top_three"`
	Tasks       []string `json:"tasks"`
	LocalAction string   `json:"local_action"`
}

// Plan is the full roadmap output.
type Plan struct {
	GoalLane     GoalLane     `json:"goal_lane"`
	BlockerLane  BlockerLane  `json:"blocker_lane"`
	AudienceTier AudienceTier `json:"audience_tier"`
	Weeks        []Week       `json:"weeks"`
}

// goalKeywords maps each lane to its match set; lanes are tried in this
// order and the first hit wins.
var goalKeywords = []struct {
	lane     GoalLane
	keywords []string
}{
	{GoalShows, []string{"show", "gig", "tour", "book", "perform", "venue"}},
	{GoalMerch, []string{"merch", "apparel", "shirt", "vinyl"}},
	{GoalBeats, []string{"beat", "instrumental", "lease", "producer"}},
	{GoalFeatures, []string{"feature", "collab", "verse", "placement"}},
	{GoalStreams, []string{"stream", "spotify", "playlist", "listener", "plays"}},
	{GoalEmail, []string{"email", "list", "newsletter", "subscriber"}},
	{GoalOffer, []string{"offer", "sell", "launch", "product", "income", "money", "monetiz"}},
	{GoalBrand, []string{"brand", "image", "press", "identity", "name"}},
}

var blockerKeywords = []struct {
	lane     BlockerLane
	keywords []string
}{
	{BlockerAudience, []string{"audience", "fans", "followers", "reach", "nobody"}},
	{BlockerTime, []string{"time", "busy", "job", "schedule"}},
	{BlockerMoney, []string{"money", "budget", "broke", "funds", "afford"}},
	{BlockerTeam, []string{"team", "manager", "alone", "help", "no one"}},
	{BlockerPlan, []string{"plan", "direction", "focus", "overwhelm", "where to start"}},
	{BlockerConsistency, []string{"consisten", "release", "cadence", "finish", "discipline"}},
	{BlockerNoOffer, []string{"no offer", "nothing to sell", "what to sell"}},
	{BlockerPricing, []string{"pricing", "price", "charge", "worth", "undercharg"}},
}

// ClassifyGoal matches free text against the goal lanes; first match
// wins, unmatched text lands in general.
func ClassifyGoal(raw string) GoalLane {
	text := strings.ToLower(raw)
	for _, entry := range goalKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.lane
			}
		}
	}
	return GoalGeneral
}

// ClassifyBlocker matches free text against the blocker lanes.
func ClassifyBlocker(raw string) BlockerLane {
	text := strings.ToLower(raw)
	for _, entry := range blockerKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.lane
			}
		}
	}
	return BlockerGeneral
}

// ClassifyAudience buckets the larger of follower and listener reach.
func ClassifyAudience(snap *snapshotdomain.Snapshot) AudienceTier {
	reach := snapshotdomain.ParseBucketCeiling(snap.AudienceSize)
	if listeners := snapshotdomain.ParseBucketCeiling(snap.MonthlyListeners); listeners > reach {
		reach = listeners
	}
	switch {
	case reach <= 0:
		return TierUnknown
	case reach < lowCeiling:
		return TierLow
	case reach < midCeiling:
		return TierMid
	default:
		return TierHigh
	}
}

// Build assembles the 4-week plan. Deterministic per snapshot.
func Build(snap *snapshotdomain.Snapshot) Plan {
	goalLane := ClassifyGoal(snap.PrimaryGoal)
	blockerLane := ClassifyBlocker(snap.BiggestBlocker)
	tier := ClassifyAudience(snap)

	weeks := make([]Week, 0, 4)
	for i, template := range weekTemplates {
		tasks := assembleTasks(template.foundation, blockerTasks[blockerLane], goalTasks[goalLane])
		weeks = append(weeks, Week{
			Number:      i + 1,
			Title:       template.title,
			FocusMetric: template.focusMetric,
			TopThree:    topThree(tasks),
			Tasks:       tasks,
			LocalAction: localActions[goalLane],
		})
	}

	return Plan{
		GoalLane:     goalLane,
		BlockerLane:  blockerLane,
		AudienceTier: tier,
		Weeks:        weeks,
	}
}

// assembleTasks concatenates foundation, blocker and goal task sets,
// deduplicates case-insensitively and caps the list length.
func assembleTasks(sets ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, set := range sets {
		for _, task := range set {
			key := strings.ToLower(strings.TrimSpace(task))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, task)
			if len(out) == maxTasksPerWeek {
				return out
			}
		}
	}
	return out
}

func topThree(tasks []string) []string {
	if len(tasks) > 3 {
		return tasks[:3]
	}
	return tasks
}

var weekTemplates = []struct {
	title       string
	focusMetric string
	foundation  []string
}{
	{
		title:       "Week 1 — Foundation",
		focusMetric: "Hours of focused music-business work",
		foundation: []string{
			"Write your one-line pitch and put it in every bio",
			"Set a weekly work block you will not move",
		},
	},
	{
		title:       "Week 2 — Visibility",
		focusMetric: "Posts published",
		foundation: []string{
			"Post on your primary channel every day this week",
			"Reply to every comment and DM within 24 hours",
		},
	},
	{
		title:       "Week 3 — Connection",
		focusMetric: "Real conversations started",
		foundation: []string{
			"DM ten people who engaged with your work this month",
			"Ask each one question about what they'd want from you",
		},
	},
	{
		title:       "Week 4 — Conversion",
		focusMetric: "Asks made",
		foundation: []string{
			"Make one clear ask to your warmest ten contacts",
			"Review the month: what moved the focus metric, what didn't",
		},
	},
}

var blockerTasks = map[BlockerLane][]string{
	BlockerAudience:    {"Pick one platform and ignore the rest for 30 days", "Engage with 5 accounts in your scene daily"},
	BlockerTime:        {"Cut one recurring commitment that doesn't build music or money", "Batch content in one weekly session"},
	BlockerMoney:       {"List every free tool replacing a paid one you were considering", "Set a $0 marketing plan: DMs, collabs, live posts"},
	BlockerTeam:        {"Write the one role you'd delegate first and what it pays", "Trade skills with one peer instead of hiring"},
	BlockerPlan:        {"Choose one goal for 90 days and write it where you work", "Say no to everything that doesn't serve the 90-day goal"},
	BlockerConsistency: {"Pick a release cadence you can hold for 90 days", "Batch two pieces before announcing the first"},
	BlockerNoOffer:     {"Draft one offer: who it's for, what they get, the price", "Tell ten people about it before polishing anything"},
	BlockerPricing:     {"Write down the last three things you did for free and price them", "Quote the new price once this week, unedited"},
	BlockerGeneral:     {"Track where your music hours actually go for one week"},
}

var goalTasks = map[GoalLane][]string{
	GoalShows:    {"List ten venues or bookers within driving distance", "Send three booking emails with a live clip attached"},
	GoalMerch:    {"Survey fans with two mockups and count real yes-votes", "Price one item and take preorders before printing"},
	GoalBeats:    {"Upload three beats with searchable titles", "DM five artists whose last release fits your sound"},
	GoalFeatures: {"List five artists one level up and engage genuinely for a week", "Send one verse on spec to the best fit"},
	GoalStreams:  {"Pitch your next release to ten playlist curators", "Post three short clips per track, different hooks"},
	GoalEmail:    {"Set up one landing page with a single email field", "Offer one unreleased track as the capture incentive"},
	GoalOffer:    {"Write the one-sentence version of your offer", "Put a buy link where your bio link goes"},
	GoalBrand:    {"Unify name, photo and pitch across every profile", "Pitch one local blog or station with your story"},
	GoalGeneral:  {"Pick the goal that pays rent first and write it down"},
}

var localActions = map[GoalLane]string{
	GoalShows:    "Go to one local show this week and meet the booker, not just the band.",
	GoalMerch:    "Find a local print shop and price a small run against the online options.",
	GoalBeats:    "Hit one local studio session and leave with two producer contacts.",
	GoalFeatures: "Pull up at a local open mic and trade contacts with one act you rate.",
	GoalStreams:  "Ask one local playlist curator or college radio host for a listen.",
	GoalEmail:    "Collect emails at your next local appearance with a QR code, not a clipboard speech.",
	GoalOffer:    "Pitch your offer face-to-face to one person in your scene this week.",
	GoalBrand:    "Get professional photos at a recognizable local spot; geography is identity.",
	GoalGeneral:  "Show up to one local scene event and introduce yourself to three people.",
}
