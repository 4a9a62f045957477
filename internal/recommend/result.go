package recommend

import (
	"strings"

	"github.com/sendurway/signalwise/internal/domain"
)

// Input is the request-scoped user context. It is never persisted.
type Input struct {
	HomeZip        string          `json:"home_zip"`
	DataTier       domain.Tier     `json:"data_tier"`
	Priority       domain.Priority `json:"priority"`
	CurrentBill    string          `json:"current_bill,omitempty"`
	CurrentCarrier string          `json:"current_carrier,omitempty"`
}

// RawInput holds untrusted query values.
type RawInput struct {
	HomeZip        string
	DataTier       string
	Priority       string
	CurrentBill    string
	CurrentCarrier string
}

// ParseInput trims raw values and applies the tier and priority defaults.
func ParseInput(raw RawInput) Input {
	return Input{
		HomeZip:        strings.TrimSpace(raw.HomeZip),
		DataTier:       domain.ParseTier(raw.DataTier),
		Priority:       domain.ParsePriority(raw.Priority),
		CurrentBill:    strings.TrimSpace(raw.CurrentBill),
		CurrentCarrier: strings.TrimSpace(raw.CurrentCarrier),
	}
}

// Card is a recommendation with its copy and tracking link.
type Card struct {
	Recommendation
	Link       string     `json:"link"`
	Highlights Highlights `json:"highlights"`
}

// Confidence is the confidence meter for the best match.
type Confidence struct {
	Score      int    `json:"score"`
	Max        int    `json:"max"`
	Level      string `json:"level"`
	BarPercent int    `json:"bar_percent"`
}

// Result is everything the results page needs.
type Result struct {
	Input         Input      `json:"input"`
	DataTierLabel string     `json:"data_tier_label"`
	PriorityLabel string     `json:"priority_label"`
	BestMatch     Card       `json:"best_match"`
	Cheapest      Card       `json:"cheapest"`
	BestCoverage  Card       `json:"best_coverage"`
	Savings       *float64   `json:"savings"`
	PrimaryCTA    string     `json:"primary_cta"`
	Confidence    Confidence `json:"confidence"`
}

// Build computes the full result for in.
func Build(in Input) Result {
	set := Recommend(in.HomeZip, in.DataTier, in.Priority)
	score := ConfidenceScore(set.BestMatch, in.HomeZip, in.DataTier, in.Priority)

	result := Result{
		Input:         in,
		DataTierLabel: TierLabel(string(in.DataTier)),
		PriorityLabel: PriorityLabel(string(in.Priority)),
		BestMatch:     card(set.BestMatch, in, domain.SourceResults),
		Cheapest:      card(set.Cheapest, in, domain.SourceCheapestCard),
		BestCoverage:  card(set.BestCoverage, in, domain.SourceCoverageCard),
		Confidence: Confidence{
			Score:      score,
			Max:        confidenceMax,
			Level:      ConfidenceLevel(score),
			BarPercent: ConfidenceBar(score),
		},
	}

	savings, ok := ComputeSavings(set.BestMatch.Price, in.CurrentBill)
	if ok {
		result.Savings = &savings
	}
	result.PrimaryCTA = PrimaryCTA(savings, ok)

	return result
}

func card(r Recommendation, in Input, source domain.Source) Card {
	return Card{
		Recommendation: r,
		Link:           TrackingLink(r.Carrier, in, source),
		Highlights:     HighlightsFor(r.Carrier),
	}
}
