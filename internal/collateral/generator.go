// Package collateral generates the copy-paste marketing bundle for an
// offer. Pure templating over the offer and snapshot; no external
// text generation.
package collateral

import (
	"fmt"
	"strings"

	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
)

// DMSequence is the four-message outreach ladder.
type DMSequence struct {
	Opener    string `json:"opener"`
	FollowUp1 string `json:"followUp1"`
	FollowUp2 string `json:"followUp2"`
	Close     string `json:"close"`
}

// Email is one message of the drip sequence.
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CalendarEntry is one day of the social calendar.
type CalendarEntry struct {
	Day  int    `json:"day"`
	Post string `json:"post"`
	CTA  string `json:"cta"`
}

// FAQ is one question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bundle is the full collateral set for one offer.
type Bundle struct {
	Headlines    []string        `json:"headlines"`
	Subheads     []string        `json:"subheads"`
	ValueBullets []string        `json:"value_bullets"`
	FAQ          []FAQ           `json:"faq"`
	CTAs         []string        `json:"ctas"`
	DMs          DMSequence      `json:"dms"`
	Pitch30      string          `json:"pitch_30s"`
	Pitch90      string          `json:"pitch_90s"`
	Emails       []Email         `json:"emails"`
	Calendar     []CalendarEntry `json:"calendar"`
}

const calendarDays = 14

// PriceAnchor picks the price shown in generated copy: the tier whose
// label contains "core", else the first tier, else a bare "$".
func PriceAnchor(tiers []offerdomain.PricingTier) string {
	for _, tier := range tiers {
		if strings.Contains(strings.ToLower(tier.Tier), "core") && strings.TrimSpace(tier.Price) != "" {
			return tier.Price
		}
	}
	if len(tiers) > 0 && strings.TrimSpace(tiers[0].Price) != "" {
		return tiers[0].Price
	}
	return "$"
}

// Generate builds the full bundle. Deterministic: identical offer and
// snapshot always produce identical output.
func Generate(offer *offerdomain.Blueprint, snap *snapshotdomain.Snapshot) (Bundle, error) {
	tiers, err := offer.PricingTiers()
	if err != nil {
		return Bundle{}, err
	}

	v := vars{
		name:    fallback(snap.ArtistName, "the artist"),
		city:    fallback(snap.City, "your city"),
		genre:   fallback(snap.Genre, "music"),
		goal:    fallback(snap.PrimaryGoal, "grow"),
		blocker: fallback(snap.BiggestBlocker, "getting traction"),
		title:   fallback(offer.Title, "this offer"),
		promise: fallback(offer.Promise, "something your fans have been asking for"),
		price:   PriceAnchor(tiers),
	}

	return Bundle{
		Headlines:    headlines(v),
		Subheads:     subheads(v),
		ValueBullets: valueBullets(v),
		FAQ:          faq(v),
		CTAs:         ctas(v),
		DMs:          dmSequence(v),
		Pitch30:      pitch30(v),
		Pitch90:      pitch90(v),
		Emails:       emails(v),
		Calendar:     calendar(v),
	}, nil
}

type vars struct {
	name    string
	city    string
	genre   string
	goal    string
	blocker string
	title   string
	promise string
	price   string
}

func headlines(v vars) []string {
	return []string{
		fmt.Sprintf("%s: %s", v.title, v.promise),
		fmt.Sprintf("Made in %s, priced at %s, built for people who actually listen", v.city, v.price),
		fmt.Sprintf("The %s thing %s fans keep asking for is finally real", v.genre, v.name),
		fmt.Sprintf("Stop waiting on the algorithm. %s is live.", v.title),
		fmt.Sprintf("%s — from %s, for the ones who were here first", v.title, v.name),
	}
}

func subheads(v vars) []string {
	return []string{
		fmt.Sprintf("Straight from %s's world: no label, no middleman, starts at %s.", v.name, v.price),
		fmt.Sprintf("Built for %s fans in %s and everywhere else.", v.genre, v.city),
		"One clear offer, one clear price, zero guesswork.",
	}
}

func valueBullets(v vars) []string {
	return []string{
		fmt.Sprintf("Direct access to %s, not a storefront run by someone else", v.name),
		fmt.Sprintf("Entry starts at %s — the ladder is posted, nothing hidden", v.price),
		"Delivered on a stated schedule, not 'when it's ready'",
		fmt.Sprintf("Made by someone living the %s scene, not studying it", v.genre),
		"Every tier says exactly what's included before you pay",
	}
}

func faq(v vars) []FAQ {
	return []FAQ{
		{
			Question: "What exactly am I getting?",
			Answer:   fmt.Sprintf("%s. Every tier lists its contents before checkout.", v.promise),
		},
		{
			Question: "How much is it?",
			Answer:   fmt.Sprintf("Entry starts at %s. The full ladder is on the page — no call required.", v.price),
		},
		{
			Question: "When do I get it?",
			Answer:   "Delivery terms are stated per tier and honored. If something slips, you hear it from me first.",
		},
		{
			Question: "What if it's not for me?",
			Answer:   "Tell me within a week and we make it right. I'd rather refund you than have you regret supporting.",
		},
		{
			Question: fmt.Sprintf("Why is %s doing this?", v.name),
			Answer:   fmt.Sprintf("Because %s is what's between me and the next level, and this is the honest way through it.", v.blocker),
		},
	}
}

func ctas(v vars) []string {
	return []string{
		"Grab your spot",
		fmt.Sprintf("Start at %s", v.price),
		"See the full ladder",
		"Get it before the next drop",
		fmt.Sprintf("Support %s directly", v.name),
	}
}

func dmSequence(v vars) DMSequence {
	return DMSequence{
		Opener:    fmt.Sprintf("Hey — %s here. You've supported my %s stuff before, so you're hearing this first: %s is live. Want the link?", v.name, v.genre, v.title),
		FollowUp1: fmt.Sprintf("No pressure on the last message — just didn't want you finding out from a feed post. Entry's %s if you want in early.", v.price),
		FollowUp2: fmt.Sprintf("Quick honest question: is %s something you'd use, or should I stop bugging you about it? Either answer helps me.", v.title),
		Close:     "Closing the early list tonight. After that it's public price and public queue. One word back and I'll hold a spot.",
	}
}

func pitch30(v vars) string {
	return fmt.Sprintf(
		"If you don't know me — I'm %s, I make %s out of %s. I built %s because %s, and I decided to fix it myself instead of waiting. %s. Entry is %s, link's right there. That's the whole pitch.",
		v.name, v.genre, v.city, v.title, v.blocker, v.promise, v.price,
	)
}

func pitch90(v vars) string {
	return fmt.Sprintf(
		"Let me take 90 seconds and tell you what this actually is. I'm %s. I've been making %s in %s long enough to know the difference between an audience and a fanbase — and what I'm trying to do right now is %s. The thing in my way has been %s. So instead of complaining about it, I built %s. %s. Here's how it works: there's a ladder, entry starts at %s, every tier says exactly what you get, and nothing is hidden behind a call or a DM. If you've ever wondered how to actually support this music in a way that matters more than a stream — this is it. The link is up now. If it's not for you, that's completely fine; share it with one person who'd want it and we're square.",
		v.name, v.genre, v.city, v.goal, v.blocker, v.title, v.promise, v.price,
	)
}

func emails(v vars) []Email {
	return []Email{
		{
			Subject: fmt.Sprintf("It's live: %s", v.title),
			Body: fmt.Sprintf("You're on this list because you actually listen, so you get this before anyone else.\n\n%s is live. %s.\n\nEntry starts at %s. The full ladder is on the page — every tier says what's included.\n\nNo countdown timers, no fake scarcity. Just first access.\n\n— %s", v.title, v.promise, v.price, v.name),
		},
		{
			Subject: "The story behind it",
			Body: fmt.Sprintf("Short version: the thing between me and %s has been %s.\n\nI got tired of waiting for someone else to solve it, so I built %s.\n\nIf you've been here a while, you already know the long version. This is me doing something about it.\n\n— %s", v.goal, v.blocker, v.title, v.name),
		},
		{
			Subject: "What people ask before they buy",
			Body: fmt.Sprintf("Three questions keep coming up:\n\n1. What exactly do I get? — %s. Every tier lists its contents.\n2. How much? — entry is %s, the ladder goes up from there.\n3. What if it's not for me? — tell me within a week and we make it right.\n\nAnything else, reply to this email. I read them all.\n\n— %s", v.promise, v.price, v.name),
		},
		{
			Subject: fmt.Sprintf("A %s story from %s", v.genre, v.city),
			Body: fmt.Sprintf("One of the first people in told me they'd been waiting for a way to support that wasn't just streaming.\n\nThat's the whole reason %s exists. Streams are noise. This is signal.\n\nStill open: %s\n\n— %s", v.title, v.title, v.name),
		},
		{
			Subject: "Last call from me on this",
			Body: fmt.Sprintf("This is the last email about %s — after today it just lives on the page.\n\nIf you've been on the fence: entry is %s, everything's listed, and the guarantee stands.\n\nIf it's a no, that's genuinely fine. You being on this list matters more than any single drop.\n\n— %s", v.title, v.price, v.name),
		},
	}
}

// calendarPrompts is the fixed prompt pool; days cycle through it
// modulo its length.
var calendarPrompts = []struct {
	post string
	cta  string
}{
	{post: "Announce %[1]s plainly: what it is, what it costs, where it lives.", cta: "Link in bio"},
	{post: "Tell the origin story: the moment %[2]s made you build this.", cta: "Full story at the link"},
	{post: "Show the ladder on screen. No talking, just the tiers and prices.", cta: "Pick your tier"},
	{post: "Post a clip of the work behind it — the unglamorous middle part.", cta: "This is what you're supporting"},
	{post: "Answer the most common question you've gotten so far, publicly.", cta: "More answers at the link"},
	{post: "Shout out the first supporters by first name (ask permission).", cta: "Join them"},
	{post: "Contrast post: what a stream pays vs what %[1]s supports.", cta: "Do the math with me"},
}

func calendar(v vars) []CalendarEntry {
	entries := make([]CalendarEntry, 0, calendarDays)
	for day := 1; day <= calendarDays; day++ {
		prompt := calendarPrompts[(day-1)%len(calendarPrompts)]
		post := prompt.post
		if strings.Contains(post, "%") {
			post = fmt.Sprintf(post, v.title, v.blocker)
		}
		entries = append(entries, CalendarEntry{
			Day:  day,
			Post: post,
			CTA:  prompt.cta,
		})
	}
	return entries
}

func fallback(raw, def string) string {
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}
	return def
}
