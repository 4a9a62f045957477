package recommend

import (
	"net/url"
	"strconv"

	"github.com/sendurway/signalwise/internal/domain"
)

var tierLabels = map[domain.Tier]string{
	domain.TierLight:     "Light (under 5GB)",
	domain.TierMedium:    "Medium (5–15GB)",
	domain.TierHeavy:     "Heavy (15–35GB)",
	domain.TierUnlimited: "Unlimited",
}

var priorityLabels = map[domain.Priority]string{
	domain.PriorityCheapest: "Cheapest",
	domain.PriorityBalanced: "Balanced",
	domain.PriorityCoverage: "Coverage",
}

// TierLabel returns the display label for a tier, or raw when unrecognized.
func TierLabel(raw string) string {
	if t, ok := domain.LookupTier(raw); ok {
		return tierLabels[t]
	}
	return raw
}

// PriorityLabel returns the display label for a priority, or raw when
// unrecognized.
func PriorityLabel(raw string) string {
	if p, ok := domain.LookupPriority(raw); ok {
		return priorityLabels[p]
	}
	return raw
}

// Highlights is the trust copy shown next to a plan.
type Highlights struct {
	WhyThisPlan   []string `json:"why_this_plan"`
	WhatYouGiveUp string   `json:"what_you_give_up"`
}

// HighlightsFor returns the trust copy for a carrier.
func HighlightsFor(c domain.Carrier) Highlights {
	switch c {
	case domain.CarrierMint:
		return Highlights{
			WhyThisPlan: []string{
				"Uses T-Mobile towers nationwide",
				"Low monthly price with upfront savings",
				"Easy eSIM activation (device-dependent)",
			},
			WhatYouGiveUp: "May slow down during congestion in busy areas (deprioritization).",
		}
	case domain.CarrierVisible:
		return Highlights{
			WhyThisPlan: []string{
				"Runs on Verizon’s nationwide network",
				"Simple flat monthly pricing",
				"Unlimited plan options (plan-dependent)",
			},
			WhatYouGiveUp: "Support is mostly online/chat (less in-store help).",
		}
	default:
		return Highlights{
			WhyThisPlan: []string{
				"Choose Verizon or T-Mobile network options",
				"Flexible plans and add-ons",
				"Good balance of price + control",
			},
			WhatYouGiveUp: "Plan details vary by network selection (double-check plan limits).",
		}
	}
}

// PrimaryCTA returns the call-to-action text for the best match.
func PrimaryCTA(savings float64, ok bool) string {
	if !ok {
		return "Switch (Recommended)"
	}
	return "Switch & Save $" + strconv.FormatFloat(savings, 'f', -1, 64) + "/mo"
}

// TrackingLink builds the redirect path that logs a click on c before
// forwarding. Empty bill and carrier values are omitted.
func TrackingLink(c domain.Carrier, in Input, source domain.Source) string {
	qs := url.Values{}
	qs.Set("homeZip", in.HomeZip)
	qs.Set("dataTier", string(in.DataTier))
	qs.Set("priority", string(in.Priority))
	qs.Set("source", string(source))
	if in.CurrentBill != "" {
		qs.Set("currentBill", in.CurrentBill)
	}
	if in.CurrentCarrier != "" {
		qs.Set("currentCarrier", in.CurrentCarrier)
	}

	return "/go/" + url.PathEscape(string(c)) + "?" + qs.Encode()
}
