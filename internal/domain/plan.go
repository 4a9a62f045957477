// Package domain holds the closed variants and records shared by the funnel.
package domain

import "strings"

// Carrier identifies an outbound carrier. It is the routing and logging key,
// never the display name.
type Carrier string

const (
	CarrierMint     Carrier = "mint"
	CarrierVisible  Carrier = "visible"
	CarrierUSMobile Carrier = "us-mobile"
)

// Carriers lists every known carrier in display order.
var Carriers = []Carrier{CarrierMint, CarrierVisible, CarrierUSMobile}

// ParseCarrier maps a raw slug to a known carrier.
func ParseCarrier(raw string) (Carrier, bool) {
	c := Carrier(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CarrierMint, CarrierVisible, CarrierUSMobile:
		return c, true
	default:
		return "", false
	}
}

// Tier is the self-reported monthly data usage bucket.
type Tier string

const (
	TierLight     Tier = "light"
	TierMedium    Tier = "medium"
	TierHeavy     Tier = "heavy"
	TierUnlimited Tier = "unlimited"
)

// DefaultTier is used when the tier is absent or unrecognized.
const DefaultTier = TierMedium

// LookupTier reports whether raw names a known tier.
func LookupTier(raw string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TierLight, TierMedium, TierHeavy, TierUnlimited:
		return t, true
	default:
		return "", false
	}
}

// ParseTier is LookupTier with the default applied.
func ParseTier(raw string) Tier {
	if t, ok := LookupTier(raw); ok {
		return t
	}
	return DefaultTier
}

// Priority is the user's optimization goal.
type Priority string

const (
	PriorityCheapest Priority = "cheapest"
	PriorityBalanced Priority = "balanced"
	PriorityCoverage Priority = "coverage"
)

// DefaultPriority is used when the priority is absent or unrecognized.
const DefaultPriority = PriorityBalanced

// LookupPriority reports whether raw names a known priority.
func LookupPriority(raw string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	switch p {
	case PriorityCheapest, PriorityBalanced, PriorityCoverage:
		return p, true
	default:
		return "", false
	}
}

// ParsePriority is LookupPriority with the default applied.
func ParsePriority(raw string) Priority {
	if p, ok := LookupPriority(raw); ok {
		return p
	}
	return DefaultPriority
}

// Source names the UI element that triggered an outbound click.
// Values outside the known set are kept verbatim for attribution.
type Source string

const (
	SourceResults      Source = "results"
	SourceCheapestCard Source = "cheapest_card"
	SourceCoverageCard Source = "coverage_card"

	// SourceUnknown is the aggregation bucket for clicks without a source.
	SourceUnknown Source = "unknown"
)

// maxSourceLength bounds free-text sources stored per click.
const maxSourceLength = 64

// ParseSource trims and bounds a raw source value. Empty stays empty.
func ParseSource(raw string) Source {
	return Source(truncate(strings.TrimSpace(raw), maxSourceLength))
}

// Known reports whether s is one of the sources the results page emits.
func (s Source) Known() bool {
	switch s {
	case SourceResults, SourceCheapestCard, SourceCoverageCard:
		return true
	default:
		return false
	}
}

// Bucket returns the aggregation key for s; empty maps to "unknown".
func (s Source) Bucket() string {
	if s == "" {
		return string(SourceUnknown)
	}
	return string(s)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
