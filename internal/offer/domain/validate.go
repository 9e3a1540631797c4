package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidatedUpdate holds the decoded fields of an update that passed
// validation. Nil slices/pointers mean the field was not provided.
type ValidatedUpdate struct {
	Lane            *Lane
	Title           *string
	Promise         *string
	Goal            *string
	Audience        *string
	Vibe            *string
	Pricing         []PricingTier
	HasPricing      bool
	Deliverables    []string
	HasDeliverables bool
	Funnel          []FunnelStep
	HasFunnel       bool
	Scripts         *Scripts
}

// ValidateUpdate checks every provided field independently and returns
// either the fully decoded update or an itemized ValidationError.
// All-or-nothing: one bad field rejects the whole update.
func ValidateUpdate(req UpdateRequest) (*ValidatedUpdate, error) {
	var out ValidatedUpdate
	var issues []FieldIssue

	addIssue := func(field, code, message string) {
		issues = append(issues, FieldIssue{Field: field, Code: code, Message: message})
	}

	if req.Lane != nil {
		lane, ok := ParseLane(*req.Lane)
		if !ok {
			addIssue("lane", "unknown_lane", "lane must be one of service, digital, membership, live, hybrid")
		} else {
			out.Lane = &lane
		}
	}

	checkText := func(field string, value *string, max int, dest **string) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			addIssue(field, "empty", field+" must not be empty")
			return
		}
		if len(trimmed) > max {
			addIssue(field, "too_long", fmt.Sprintf("%s exceeds %d characters", field, max))
			return
		}
		*dest = &trimmed
	}

	checkText("title", req.Title, MaxTextField, &out.Title)
	checkText("promise", req.Promise, MaxTextField, &out.Promise)
	checkText("goal", req.Goal, MaxTextField, &out.Goal)
	checkText("audience", req.Audience, MaxTextField, &out.Audience)
	checkText("vibe", req.Vibe, MaxTextField, &out.Vibe)

	if req.Pricing != nil {
		tiers, fieldIssues := validatePricing(req.Pricing)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
		} else {
			out.Pricing = tiers
			out.HasPricing = true
		}
	}

	if req.Deliverables != nil {
		items, fieldIssues := validateDeliverables(req.Deliverables)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
		} else {
			out.Deliverables = items
			out.HasDeliverables = true
		}
	}

	if req.Funnel != nil {
		steps, fieldIssues := validateFunnel(req.Funnel)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
		} else {
			out.Funnel = steps
			out.HasFunnel = true
		}
	}

	if req.Scripts != nil {
		scripts, fieldIssues := validateScripts(req.Scripts)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
		} else {
			out.Scripts = scripts
		}
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &out, nil
}

func validatePricing(raw json.RawMessage) ([]PricingTier, []FieldIssue) {
	var tiers []PricingTier
	if err := json.Unmarshal(raw, &tiers); err != nil {
		return nil, []FieldIssue{{Field: "pricing", Code: "not_an_array", Message: "pricing must be an array of {tier, price, includes}"}}
	}
	var issues []FieldIssue
	if len(tiers) == 0 {
		issues = append(issues, FieldIssue{Field: "pricing", Code: "empty", Message: "pricing must have at least one tier"})
	}
	if len(tiers) > MaxPricingTiers {
		issues = append(issues, FieldIssue{Field: "pricing", Code: "too_many_tiers", Message: fmt.Sprintf("pricing is capped at %d tiers", MaxPricingTiers)})
	}
	for i := range tiers {
		tiers[i].Tier = strings.TrimSpace(tiers[i].Tier)
		tiers[i].Price = strings.TrimSpace(tiers[i].Price)
		if tiers[i].Tier == "" {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("pricing[%d].tier", i), Code: "required", Message: "tier name is required"})
		}
		if tiers[i].Price == "" {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("pricing[%d].price", i), Code: "required", Message: "price is required"})
		}
		if len(tiers[i].Includes) > MaxTierIncludes {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("pricing[%d].includes", i), Code: "too_many_items", Message: fmt.Sprintf("includes is capped at %d items", MaxTierIncludes)})
		}
		cleaned := make([]string, 0, len(tiers[i].Includes))
		for j, include := range tiers[i].Includes {
			trimmed := strings.TrimSpace(include)
			if trimmed == "" {
				issues = append(issues, FieldIssue{Field: fmt.Sprintf("pricing[%d].includes[%d]", i, j), Code: "empty", Message: "include entries must not be empty"})
				continue
			}
			cleaned = append(cleaned, trimmed)
		}
		tiers[i].Includes = cleaned
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return tiers, nil
}

func validateDeliverables(raw json.RawMessage) ([]string, []FieldIssue) {
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, []FieldIssue{{Field: "deliverables", Code: "not_an_array", Message: "deliverables must be an array of strings"}}
	}
	var issues []FieldIssue
	if len(items) > MaxDeliverables {
		issues = append(issues, FieldIssue{Field: "deliverables", Code: "too_many_items", Message: fmt.Sprintf("deliverables is capped at %d items", MaxDeliverables)})
	}
	cleaned := make([]string, 0, len(items))
	for i, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("deliverables[%d]", i), Code: "empty", Message: "deliverables must not contain empty entries"})
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return cleaned, nil
}

func validateFunnel(raw json.RawMessage) ([]FunnelStep, []FieldIssue) {
	var steps []FunnelStep
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, []FieldIssue{{Field: "funnel", Code: "not_an_array", Message: "funnel must be an array of {step, action}"}}
	}
	var issues []FieldIssue
	if len(steps) > MaxFunnelSteps {
		issues = append(issues, FieldIssue{Field: "funnel", Code: "too_many_steps", Message: fmt.Sprintf("funnel is capped at %d steps", MaxFunnelSteps)})
	}
	for i := range steps {
		steps[i].Step = strings.TrimSpace(steps[i].Step)
		steps[i].Action = strings.TrimSpace(steps[i].Action)
		if steps[i].Step == "" {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("funnel[%d].step", i), Code: "required", Message: "step is required"})
		}
		if steps[i].Action == "" {
			issues = append(issues, FieldIssue{Field: fmt.Sprintf("funnel[%d].action", i), Code: "required", Message: "action is required"})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return steps, nil
}

func validateScripts(raw json.RawMessage) (*Scripts, []FieldIssue) {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, []FieldIssue{{Field: "scripts", Code: "not_an_object", Message: "scripts must be an object with dm, caption and followUp"}}
	}

	var issues []FieldIssue
	allowed := map[string]bool{"dm": true, "caption": true, "followUp": true}
	for key := range decoded {
		if !allowed[key] {
			issues = append(issues, FieldIssue{Field: "scripts." + key, Code: "unknown_field", Message: "scripts accepts exactly dm, caption and followUp"})
		}
	}

	var scripts Scripts
	read := func(key string, dest *string) {
		value, ok := decoded[key]
		if !ok {
			issues = append(issues, FieldIssue{Field: "scripts." + key, Code: "required", Message: key + " is required"})
			return
		}
		text, ok := value.(string)
		if !ok {
			issues = append(issues, FieldIssue{Field: "scripts." + key, Code: "not_a_string", Message: key + " must be a string"})
			return
		}
		if len(text) > MaxScriptField {
			issues = append(issues, FieldIssue{Field: "scripts." + key, Code: "too_long", Message: fmt.Sprintf("%s exceeds %d characters", key, MaxScriptField)})
			return
		}
		*dest = text
	}
	read("dm", &scripts.DM)
	read("caption", &scripts.Caption)
	read("followUp", &scripts.FollowUp)

	if len(issues) > 0 {
		return nil, issues
	}
	return &scripts, nil
}
