package recommend

import (
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/sendurway/signalwise/internal/domain"
)

// Confidence score constants. These are product placeholders for a future
// coverage model and must stay exactly as they are.
const (
	confidenceBase = 82
	confidenceMin  = 70
	confidenceMax  = 95

	tierClearBonus     = 4 // light, unlimited
	tierHeavyBonus     = 2
	coverageMatchBonus = 6 // coverage priority on Visible
	cheapestMatchBonus = 3 // cheapest priority on Mint or Visible
	balancedBonus      = 2
	regionalMatchBonus = 3 // west-coast ZIP on Mint
	missingZipPenalty  = 8

	zipLength = 5
)

// Confidence level thresholds.
const (
	veryHighThreshold = 90
	highThreshold     = 85
)

var priceToken = regexp.MustCompile(`\$([0-9]+)`)

// PriceAmount extracts the first whole-dollar amount from a price string.
// "$25–30/mo" yields 25.
func PriceAmount(price string) (int, bool) {
	m := priceToken.FindStringSubmatch(price)
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ComputeSavings returns the monthly saving of bestPrice against currentBill.
// It reports false when the bill is absent, non-numeric or not positive, or
// when the price carries no usable amount. The saving is never negative.
func ComputeSavings(bestPrice, currentBill string) (float64, bool) {
	bill := domain.ParseBill(currentBill)
	if bill == nil || *bill <= 0 {
		return 0, false
	}

	best, ok := PriceAmount(bestPrice)
	if !ok || best == 0 {
		return 0, false
	}

	return math.Max(0, *bill-float64(best)), true
}

// ConfidenceScore is a bounded heuristic in [70, 95] describing how well the
// best match fits the inputs. It is a display value, not a statistic.
func ConfidenceScore(best Recommendation, homeZip string, tier domain.Tier, priority domain.Priority) int {
	score := confidenceBase

	switch tier {
	case domain.TierLight, domain.TierUnlimited:
		score += tierClearBonus
	case domain.TierHeavy:
		score += tierHeavyBonus
	case domain.TierMedium:
	}

	switch priority {
	case domain.PriorityCoverage:
		if best.Carrier == domain.CarrierVisible {
			score += coverageMatchBonus
		}
	case domain.PriorityCheapest:
		if best.Carrier == domain.CarrierMint || best.Carrier == domain.CarrierVisible {
			score += cheapestMatchBonus
		}
	case domain.PriorityBalanced:
		score += balancedBonus
	}

	if IsWestCoast(homeZip) && best.Carrier == domain.CarrierMint {
		score += regionalMatchBonus
	}

	if utf8.RuneCountInString(homeZip) < zipLength {
		score -= missingZipPenalty
	}

	return min(confidenceMax, max(confidenceMin, score))
}

// ConfidenceLevel names a score band.
func ConfidenceLevel(score int) string {
	switch {
	case score >= veryHighThreshold:
		return "Very High"
	case score >= highThreshold:
		return "High"
	default:
		return "Medium"
	}
}

// ConfidenceBar maps a score in [70, 95] onto a 0–100 meter width.
func ConfidenceBar(score int) int {
	pct := int(math.Round(float64(score-confidenceMin) / float64(confidenceMax-confidenceMin) * 100))
	return min(100, max(0, pct))
}
