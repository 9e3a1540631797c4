// Package iteration turns one logged execution run into a concrete
// adjustment plan. Pure rule evaluation over the run's counters; the
// thresholds are product constants, not derived values.
package iteration

import (
	"fmt"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
)

// Bottleneck classifications, in evaluation precedence order.
const (
	BottleneckVolume     = "volume"
	BottleneckTargeting  = "targeting"
	BottleneckConversion = "conversion"
	BottleneckScale      = "scale"
)

// Metrics are one run's raw counters, already coerced non-negative.
type Metrics struct {
	Outreach     int
	Leads        int
	Calls        int
	Sales        int
	RevenueCents int64
}

// Scorecard is the derived rate view of a run.
type Scorecard struct {
	Outreach     int     `json:"outreach"`
	LeadRate     float64 `json:"lead_rate"`
	CloseRate    float64 `json:"close_rate"`
	RevenueCents int64   `json:"revenue_cents"`
}

// Window is one planning horizon.
type Window struct {
	Focus       string   `json:"focus"`
	Actions     []string `json:"actions,omitempty"`
	Targets     []string `json:"targets,omitempty"`
	Experiments []string `json:"experiments,omitempty"`
}

// Angles are the three adjustment texts, keyed off lane and bottleneck.
type Angles struct {
	DM      string `json:"dm"`
	Offer   string `json:"offer"`
	Pricing string `json:"pricing"`
}

// Plan is the full planner output, frozen into the run record at
// creation time.
type Plan struct {
	Headline    string    `json:"headline"`
	Bottleneck  string    `json:"bottleneck"`
	Scorecard   Scorecard `json:"scorecard"`
	Diagnosis   []string  `json:"diagnosis"`
	SevenDay    Window    `json:"seven_day"`
	FourteenDay Window    `json:"fourteen_day"`
	Angles      Angles    `json:"angles"`
	Guardrails  []string  `json:"guardrails"`
}

// Build evaluates the bottleneck rules against one run. The first
// matching branch owns the headline and the action windows; diagnosis
// lines from every matching condition are all appended.
func Build(metrics Metrics, lane offerdomain.Lane, t config.PlannerThresholds) Plan {
	card := scorecard(metrics)
	bottleneck := classify(metrics, card, t)

	plan := Plan{
		Bottleneck: bottleneck,
		Scorecard:  card,
		Guardrails: guardrails,
	}

	switch bottleneck {
	case BottleneckVolume:
		plan.Headline = fmt.Sprintf("Volume bottleneck: %d touches isn't enough signal to judge anything else.", metrics.Outreach)
		plan.SevenDay = Window{
			Focus: "Raw outreach volume",
			Actions: []string{
				fmt.Sprintf("Get to %d total touches before changing a single word of the pitch", t.VolumeTarget),
				"Block two 30-minute outreach sessions per day",
				"Keep a running list of everyone contacted so nobody gets double-touched",
			},
			Targets: []string{fmt.Sprintf("%d touches", t.VolumeTarget), "Same message throughout"},
		}
		plan.FourteenDay = Window{
			Focus:       "Consistency",
			Experiments: []string{"Once past the volume floor, compare morning vs evening send times on reply rate"},
		}
	case BottleneckTargeting:
		plan.Headline = "Targeting or messaging mismatch: volume is there but almost nobody bites."
		plan.SevenDay = Window{
			Focus: "Opening line",
			Actions: []string{
				"A/B test the opening line only; hold the rest of the pitch constant",
				"Narrow the target list to the segment most like your existing buyers",
				"Cut any opener longer than two sentences",
			},
			Targets: []string{"Lead rate above 5%", "Two opener variants tested"},
		}
		plan.FourteenDay = Window{
			Focus:       "Segment fit",
			Experiments: []string{"Run the winning opener against a second, narrower segment and compare lead rates"},
		}
	case BottleneckConversion:
		plan.Headline = "Conversion bottleneck: interest is real but it isn't turning into money."
		plan.SevenDay = Window{
			Focus: "The ask",
			Actions: []string{
				"Add an explicit next step to every interested conversation",
				"Add one risk-reversal element (guarantee, trial, or refund window)",
				"Make the deliverables list more concrete: dates, counts, formats",
			},
			Targets: []string{"Close rate above 20%", "Every open lead has a stated next step"},
		}
		plan.FourteenDay = Window{
			Focus:       "Objection patterns",
			Experiments: []string{"Log the stated reason for every no; address the top one in the offer page"},
		}
	default:
		plan.Headline = "Nothing is broken. Scale what's working before touching the message."
		plan.SevenDay = Window{
			Focus: "Controlled scale",
			Actions: []string{
				"Increase outreach volume about 25%, keeping the message fixed",
				"Introduce one upsell to buyers who closed fastest",
				"Document the current pitch verbatim so it doesn't drift",
			},
			Targets: []string{"+25% touches", "One upsell offered"},
		}
		plan.FourteenDay = Window{
			Focus:       "Second channel",
			Experiments: []string{"Trial the proven message on one additional channel and compare lead rates"},
		}
	}

	plan.Diagnosis = diagnose(metrics, card, t)
	plan.Angles = Angles{
		DM:      dmAngles[bottleneck],
		Offer:   offerAngle(lane, bottleneck),
		Pricing: pricingAngle(metrics, t),
	}
	return plan
}

func scorecard(m Metrics) Scorecard {
	return Scorecard{
		Outreach:     m.Outreach,
		LeadRate:     clampRate(m.Leads, m.Outreach),
		CloseRate:    clampRate(m.Sales, m.Leads),
		RevenueCents: m.RevenueCents,
	}
}

// clampRate divides safely and clamps into [0,1]; a zero denominator
// yields 0.
func clampRate(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	rate := float64(numerator) / float64(denominator)
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

func classify(m Metrics, card Scorecard, t config.PlannerThresholds) string {
	switch {
	case m.Outreach < t.MinOutreach:
		return BottleneckVolume
	case card.LeadRate < t.MinLeadRate:
		return BottleneckTargeting
	case m.Leads >= t.MinLeadsSignal && card.CloseRate < t.MinCloseRate:
		return BottleneckConversion
	default:
		return BottleneckScale
	}
}

func diagnose(m Metrics, card Scorecard, t config.PlannerThresholds) []string {
	var lines []string
	if m.Outreach < t.MinOutreach {
		lines = append(lines, fmt.Sprintf("Only %d touches logged; below %d the other numbers are noise.", m.Outreach, t.MinOutreach))
	}
	if m.Outreach >= t.MinOutreach && card.LeadRate < t.MinLeadRate {
		lines = append(lines, fmt.Sprintf("Lead rate %.1f%% with real volume points at the opener or the audience, not the offer.", card.LeadRate*100))
	}
	if m.Leads >= t.MinLeadsSignal && card.CloseRate < t.MinCloseRate {
		lines = append(lines, fmt.Sprintf("%d leads but a %.0f%% close rate: the conversation dies at the ask.", m.Leads, card.CloseRate*100))
	}
	// Interest-without-payment fires independently of the primary branch.
	if m.RevenueCents == 0 && m.Outreach >= t.VolumeTarget && m.Leads >= t.MinLeadsSignal {
		lines = append(lines, "Interest without payment: people engage but nobody pays. Look at price, clarity of what they get, or a missing deadline.")
	}
	if len(lines) == 0 {
		lines = append(lines, "All rates clear their floors. The constraint is total volume, not the funnel.")
	}
	return lines
}

var dmAngles = map[string]string{
	BottleneckVolume:     "Keep the current DM untouched. The sample is too small to learn from; more sends, same words.",
	BottleneckTargeting:  "Rewrite only the first line of the DM. Lead with something specific about them, not about you.",
	BottleneckConversion: "Keep the opener; change the ending. Every DM closes with one concrete next step and a date.",
	BottleneckScale:      "The DM works. Copy it into a snippet tool and send more of it, verbatim.",
}

// offerAngleByLane keys the offer adjustment text on lane, refined by
// which bottleneck fired.
var offerAngleByLane = map[offerdomain.Lane]map[string]string{
	offerdomain.LaneService: {
		BottleneckVolume:     "Don't touch the service packaging yet; judge it after the volume floor.",
		BottleneckTargeting:  "Lead with the outcome of the service, not the hours. 'Radio-ready single' beats 'three sessions'.",
		BottleneckConversion: "Name the deliverables with dates: what lands in their inbox and when.",
		BottleneckScale:      "Add a premium rung for the buyers who said yes fastest.",
	},
	offerdomain.LaneDigital: {
		BottleneckVolume:     "Keep the pack as-is; distribution is the variable right now.",
		BottleneckTargeting:  "Show, don't describe: a 30-second demo made only from the pack outperforms any feature list.",
		BottleneckConversion: "Itemize the folder contents on the page; vague 'full library' copy stalls checkouts.",
		BottleneckScale:      "Bundle the two best-selling packs at a visible discount.",
	},
	offerdomain.LaneMembership: {
		BottleneckVolume:     "Hold the membership structure; invite more people before changing tiers.",
		BottleneckTargeting:  "Pitch the next drop, not the membership. Join-for-this beats join-in-general.",
		BottleneckConversion: "State the cancel-anytime terms up front; commitment fear kills membership closes.",
		BottleneckScale:      "Add an annual option at a discount for the members who never churn.",
	},
	offerdomain.LaneLive: {
		BottleneckVolume:     "Keep the show format; the guest list needs more names before anything else.",
		BottleneckTargeting:  "Sell the room, not the ticket: capacity, the one-off song, the city.",
		BottleneckConversion: "Add a hold-my-spot deposit option smaller than the full ticket.",
		BottleneckScale:      "Announce the next date before the current one happens; momentum sells rooms.",
	},
	offerdomain.LaneHybrid: {
		BottleneckVolume:     "Don't re-bundle yet; the stack needs more eyeballs, not more structure.",
		BottleneckTargeting:  "Lead with the single most concrete piece of the stack, not the bundle concept.",
		BottleneckConversion: "Anchor the bundle price against buying the pieces separately, with the math shown.",
		BottleneckScale:      "Raise the top tier; All-In buyers are telling you it's underpriced.",
	},
}

func offerAngle(lane offerdomain.Lane, bottleneck string) string {
	if byLane, ok := offerAngleByLane[lane]; ok {
		if angle, ok := byLane[bottleneck]; ok {
			return angle
		}
	}
	return "Keep the offer stable for this cycle; change one variable at a time."
}

func pricingAngle(m Metrics, t config.PlannerThresholds) string {
	switch {
	case m.RevenueCents == 0 && m.Leads >= t.MinLeadsSignal:
		return "Reduce friction before reducing price: add a smaller entry tier or a payment split."
	case m.Sales >= 2:
		return "Demand is proven. Test a 10-20% price increase on the next cohort."
	default:
		return "Hold the price. Change the messaging first; price is the last lever."
	}
}

// guardrails are fixed reminders attached to every plan.
var guardrails = []string{
	"Change one variable per cycle; two changes means learning nothing.",
	"Log every run, including the bad ones. The planner only sees what you record.",
	"Don't lower the price in response to silence; silence is a targeting problem.",
	"Protect one release block per week. Outreach funds the music, not the other way around.",
}
