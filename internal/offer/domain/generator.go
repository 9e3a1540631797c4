package domain

import (
	"fmt"
	"strings"

	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

// Generated is the full output of one blueprint generation pass.
type Generated struct {
	Title        string
	Promise      string
	Pricing      []PricingTier
	Deliverables []string
	Funnel       []FunnelStep
	Scripts      Scripts
}

// Generate builds the blueprint content for a lane from fixed content
// tables, templating artist name, genre and vibe into the free text.
// Pure: no persistence, no randomness.
func Generate(lane Lane, snap *snapshotdomain.Snapshot) Generated {
	content := laneContent[lane]

	name := strings.TrimSpace(snap.ArtistName)
	if name == "" {
		name = "the artist"
	}
	genre := strings.TrimSpace(snap.Genre)
	if genre == "" {
		genre = "music"
	}

	title := content.title
	if vibe := snap.FirstVibeTag(); vibe != "" {
		title = title + " — " + vibe
	}

	return Generated{
		Title:        title,
		Promise:      content.promise,
		Pricing:      content.pricing,
		Deliverables: content.deliverables,
		Funnel:       content.funnel,
		Scripts: Scripts{
			DM:       fmt.Sprintf(content.dmTemplate, name, genre),
			Caption:  content.caption,
			FollowUp: content.followUp,
		},
	}
}

type laneBlock struct {
	title        string
	promise      string
	pricing      []PricingTier
	deliverables []string
	funnel       []FunnelStep
	dmTemplate   string
	caption      string
	followUp     string
}

// laneContent is the fixed content table, one block per lane.
var laneContent = map[Lane]laneBlock{
	LaneService: {
		title:   "Custom Sound Sessions",
		promise: "Hands-on production help that gets your next release radio-ready.",
		pricing: []PricingTier{
			{Tier: "Starter", Price: "$75", Includes: []string{"1-hour session", "Session notes", "One revision"}},
			{Tier: "Core", Price: "$250", Includes: []string{"Three sessions", "Full mix pass", "Two revisions", "Voice memo feedback between sessions"}},
			{Tier: "Premium", Price: "$600", Includes: []string{"Full single production", "Mix and master", "Release checklist", "30 days of async support"}},
		},
		deliverables: []string{
			"Booked session slots with prep notes",
			"Stems delivered within 48 hours",
			"Written feedback on every draft",
			"Release-day checklist",
		},
		funnel: []FunnelStep{
			{Step: "Awareness", Action: "Post one before/after clip from a session each week"},
			{Step: "Interest", Action: "Pin a booking link with the Starter price visible"},
			{Step: "Decision", Action: "Offer a 15-minute free consult call"},
			{Step: "Action", Action: "Send the invoice in the same conversation as the yes"},
		},
		dmTemplate: "Hey! I'm %s — I help %s artists get their records finished without losing the feel. I've got two session slots open this month if you've got something sitting unfinished. Want the details?",
		caption:    "Two session slots open this month. Unfinished record sitting in your drafts? Let's get it done. Link in bio.",
		followUp:   "No pressure at all — just circling back because the slots usually go within the week. Happy to answer anything about how the sessions run.",
	},
	LaneDigital: {
		title:   "The Producer Pack",
		promise: "Everything you use to make your sound, packaged so others can build on it.",
		pricing: []PricingTier{
			{Tier: "Lite", Price: "$19", Includes: []string{"20 one-shots", "5 loops"}},
			{Tier: "Core", Price: "$49", Includes: []string{"Full sample library", "10 MIDI kits", "Preset bank", "Bonus stems"}},
			{Tier: "Everything", Price: "$99", Includes: []string{"All current packs", "All future packs for a year", "Project file walkthrough"}},
		},
		deliverables: []string{
			"Instant download after checkout",
			"Organized, labeled folders",
			"License terms in plain language",
			"Update notifications for pack buyers",
		},
		funnel: []FunnelStep{
			{Step: "Awareness", Action: "Post a 30-second beat made only from the pack"},
			{Step: "Interest", Action: "Give away 3 free samples for an email address"},
			{Step: "Decision", Action: "Show the folder structure on screen, no talking"},
			{Step: "Action", Action: "Run a 72-hour launch price, then hold the price"},
		},
		dmTemplate: "Yo, %s here. I just packaged the exact sounds behind my %s records — samples, MIDI, presets. First drop is live now. Want the free taster pack?",
		caption:    "The sounds behind every record I've put out this year. Packaged. Live now. Free taster in bio.",
		followUp:   "Did the taster pack land for you? The full pack has the MIDI and presets too — happy to send the folder preview if you want to look before buying.",
	},
	LaneMembership: {
		title:   "The Inner Circle",
		promise: "Monthly access to the process, the unreleased work, and the room where it happens.",
		pricing: []PricingTier{
			{Tier: "Listener", Price: "$5/mo", Includes: []string{"Unreleased tracks monthly", "Member-only feed"}},
			{Tier: "Core", Price: "$15/mo", Includes: []string{"Everything in Listener", "Monthly live hang", "Early ticket access", "Name in the credits"}},
			{Tier: "Family", Price: "$40/mo", Includes: []string{"Everything in Core", "Quarterly merch drop", "1:1 listening session twice a year"}},
		},
		deliverables: []string{
			"One unreleased drop per month, no skips",
			"Monthly live session with replay",
			"Members-only announcements before anyone else",
			"Credits page updated every release",
		},
		funnel: []FunnelStep{
			{Step: "Awareness", Action: "Share one members-only moment publicly each month"},
			{Step: "Interest", Action: "Tell the story of why the circle exists, once a week"},
			{Step: "Decision", Action: "Keep the entry tier at an impulse price"},
			{Step: "Action", Action: "Welcome every new member by name within 24 hours"},
		},
		dmTemplate: "Hey, it's %s. I opened a small members' circle for people who want the %s stuff that never hits streaming — unreleased tracks, live hangs, early everything. Entry tier is the price of a coffee. Want the link?",
		caption:    "Some songs are never going on streaming. Members get them anyway. Door's open — link in bio.",
		followUp:   "The circle's still open — this month's drop goes out Friday, so joining before then means you get it day one. Any questions, just ask.",
	},
	LaneLive: {
		title:   "The Living Room Tour",
		promise: "Intimate ticketed shows your most invested fans can actually get into.",
		pricing: []PricingTier{
			{Tier: "Seat", Price: "$25", Includes: []string{"Entry", "Live-only track"}},
			{Tier: "Core", Price: "$60", Includes: []string{"Entry", "Signed setlist", "Photo", "Early entry"}},
			{Tier: "Host", Price: "$400", Includes: []string{"Host a private show", "10 guest seats", "Recording of the night"}},
		},
		deliverables: []string{
			"Date announced 4 weeks out",
			"Capacity capped and honored",
			"One song performed nowhere else",
			"Thank-you message to every attendee within 48 hours",
		},
		funnel: []FunnelStep{
			{Step: "Awareness", Action: "Post rehearsal clips tagged with the city"},
			{Step: "Interest", Action: "Open a waitlist before tickets exist"},
			{Step: "Decision", Action: "Announce the cap publicly when tickets open"},
			{Step: "Action", Action: "DM the waitlist two hours before public sale"},
		},
		dmTemplate: "Hey — %s here. I'm doing a small room show soon, capped attendance, mostly %s, one song I'm not playing anywhere else. You were on my list of people to tell first. Want in before I post it?",
		caption:    "Small room. Capped list. One song that exists only in that room. Waitlist in bio.",
		followUp:   "Tickets went to the waitlist this morning — about half are gone. Didn't want you to find out after they're done.",
	},
	LaneHybrid: {
		title:   "The Full Stack",
		promise: "One front door to your work: sessions, sounds, and the circle behind them.",
		pricing: []PricingTier{
			{Tier: "Entry", Price: "$19", Includes: []string{"Producer pack lite", "Members feed month one"}},
			{Tier: "Core", Price: "$99", Includes: []string{"Full pack", "Three months membership", "One session credit"}},
			{Tier: "All In", Price: "$500", Includes: []string{"Everything for a year", "Quarterly session", "Private show presale"}},
		},
		deliverables: []string{
			"Single checkout for every tier",
			"Onboarding message mapping what's included",
			"Session credits bookable within 60 days",
			"One clear upgrade path, never more than one ask",
		},
		funnel: []FunnelStep{
			{Step: "Awareness", Action: "Lead with whichever piece got the most pull last month"},
			{Step: "Interest", Action: "Show the stack on one page, prices visible"},
			{Step: "Decision", Action: "Anchor against buying the pieces separately"},
			{Step: "Action", Action: "Follow up once, seven days later, with one question"},
		},
		dmTemplate: "Hey, %s here. I bundled everything I do — the %s sessions, the sample packs, the members' circle — into one thing with one price. It's cheaper than any two pieces separately. Want the breakdown?",
		caption:    "Sessions. Sounds. The circle. One bundle, one price, cheaper than any two pieces apart. Breakdown in bio.",
		followUp:   "One question: which piece of the stack would you actually use first? If the answer is 'none', tell me that too — it helps.",
	},
}
