// Package recommend picks carrier plans from a fixed decision table and
// derives the savings, confidence and copy shown alongside them.
//
// Everything here is pure and deterministic: the same inputs always yield the
// same output, and no input causes an error.
package recommend

import (
	"strings"

	"github.com/sendurway/signalwise/internal/domain"
)

// Recommendation is one carrier plan offered to the user.
type Recommendation struct {
	Name    string         `json:"name"`
	Network string         `json:"network"`
	Price   string         `json:"price"`
	Reason  string         `json:"reason"`
	Carrier domain.Carrier `json:"carrier"`
}

// Set is the per-request recommendation. The three entries need not differ.
type Set struct {
	BestMatch    Recommendation `json:"best_match"`
	Cheapest     Recommendation `json:"cheapest"`
	BestCoverage Recommendation `json:"best_coverage"`
}

func mint(price, reason string) Recommendation {
	return Recommendation{Name: "Mint Mobile", Network: "T-Mobile", Price: price, Reason: reason, Carrier: domain.CarrierMint}
}

func visible(price, reason string) Recommendation {
	return Recommendation{Name: "Visible", Network: "Verizon", Price: price, Reason: reason, Carrier: domain.CarrierVisible}
}

// branches holds the three fixed options for one tier.
type branches struct {
	cheapest Recommendation
	coverage Recommendation
	balanced Recommendation
}

// IsWestCoast reports whether a ZIP falls in the "9" prefix region. This is a
// stand-in for network strength by region, not coverage data.
func IsWestCoast(homeZip string) bool {
	return strings.HasPrefix(strings.TrimSpace(homeZip), "9")
}

// Recommend returns the plan set for the given inputs.
func Recommend(homeZip string, tier domain.Tier, priority domain.Priority) Set {
	b := tableFor(tier, IsWestCoast(homeZip))

	best := b.balanced
	switch priority {
	case domain.PriorityCheapest:
		best = b.cheapest
	case domain.PriorityCoverage:
		best = b.coverage
	case domain.PriorityBalanced:
	}

	return Set{
		BestMatch:    best,
		Cheapest:     b.cheapest,
		BestCoverage: b.coverage,
	}
}

func tableFor(tier domain.Tier, westCoast bool) branches {
	switch tier {
	case domain.TierLight:
		return branches{
			cheapest: mint("$15/mo", "Cheapest option for light data users."),
			coverage: visible("$25/mo", "Better coverage if signal reliability matters."),
			balanced: mint("$15/mo", "Strong value for light usage with simple pricing."),
		}

	case domain.TierUnlimited:
		const reason = "Unlimited data at a strong value for your region."
		balanced := visible("$25/mo", reason)
		if westCoast {
			balanced = mint("$30/mo", reason)
		}
		return branches{
			cheapest: visible("$25/mo", "Lowest-cost unlimited option with a simple signup flow."),
			coverage: visible("$45/mo", "Higher priority data in busy areas and strong Verizon coverage."),
			balanced: balanced,
		}

	default:
		// medium, heavy and anything unparsed share one row.
		const reason = "Balanced option for most users in your area."
		balanced := visible("$25–30/mo", reason)
		if westCoast {
			balanced = mint("$25–30/mo", reason)
		}
		return branches{
			cheapest: mint("$15–20/mo", "Lower cost if you don’t need unlimited."),
			coverage: visible("$45/mo", "Often stronger coverage + priority options."),
			balanced: balanced,
		}
	}
}
