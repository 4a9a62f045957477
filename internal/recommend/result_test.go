package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendurway/signalwise/internal/domain"
	"github.com/sendurway/signalwise/internal/recommend"
)

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Light (under 5GB)", recommend.TierLabel("light"))
	assert.Equal(t, "Medium (5–15GB)", recommend.TierLabel("medium"))
	assert.Equal(t, "Heavy (15–35GB)", recommend.TierLabel("heavy"))
	assert.Equal(t, "Unlimited", recommend.TierLabel("unlimited"))
	assert.Equal(t, "jumbo", recommend.TierLabel("jumbo"))

	assert.Equal(t, "Cheapest", recommend.PriorityLabel("cheapest"))
	assert.Equal(t, "Balanced", recommend.PriorityLabel("balanced"))
	assert.Equal(t, "Coverage", recommend.PriorityLabel("coverage"))
	assert.Equal(t, "speed", recommend.PriorityLabel("speed"))
}

func TestTrackingLink(t *testing.T) {
	t.Parallel()

	in := recommend.Input{
		HomeZip:        "94928",
		DataTier:       domain.TierUnlimited,
		Priority:       domain.PriorityBalanced,
		CurrentBill:    "85",
		CurrentCarrier: "Verizon Wireless",
	}

	got := recommend.TrackingLink(domain.CarrierMint, in, domain.SourceResults)
	assert.Equal(t,
		"/go/mint?currentBill=85&currentCarrier=Verizon+Wireless&dataTier=unlimited&homeZip=94928&priority=balanced&source=results",
		got)

	in.CurrentBill, in.CurrentCarrier = "", ""
	got = recommend.TrackingLink(domain.CarrierUSMobile, in, domain.SourceCoverageCard)
	assert.Equal(t, "/go/us-mobile?dataTier=unlimited&homeZip=94928&priority=balanced&source=coverage_card", got)
}

func TestPrimaryCTA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Switch & Save $70/mo", recommend.PrimaryCTA(70, true))
	assert.Equal(t, "Switch & Save $25.5/mo", recommend.PrimaryCTA(25.5, true))
	assert.Equal(t, "Switch (Recommended)", recommend.PrimaryCTA(0, false))
}

func TestBuild(t *testing.T) {
	t.Parallel()

	in := recommend.ParseInput(recommend.RawInput{
		HomeZip:     " 94928 ",
		DataTier:    "unlimited",
		Priority:    "nonsense",
		CurrentBill: "85",
	})

	result := recommend.Build(in)

	assert.Equal(t, domain.PriorityBalanced, result.Input.Priority)
	assert.Equal(t, "Unlimited", result.DataTierLabel)
	assert.Equal(t, "Balanced", result.PriorityLabel)
	assert.Equal(t, domain.CarrierMint, result.BestMatch.Carrier)
	assert.Contains(t, result.BestMatch.Link, "source=results")
	assert.Contains(t, result.Cheapest.Link, "source=cheapest_card")
	assert.Contains(t, result.BestCoverage.Link, "source=coverage_card")
	assert.Len(t, result.BestMatch.Highlights.WhyThisPlan, 3)

	require.NotNil(t, result.Savings)
	assert.InDelta(t, 55.0, *result.Savings, 0.0001)
	assert.Equal(t, "Switch & Save $55/mo", result.PrimaryCTA)

	assert.Equal(t, 91, result.Confidence.Score)
	assert.Equal(t, 95, result.Confidence.Max)
	assert.Equal(t, "Very High", result.Confidence.Level)
	assert.Equal(t, 84, result.Confidence.BarPercent)
}

func TestBuild_DefaultsWithoutInput(t *testing.T) {
	t.Parallel()

	result := recommend.Build(recommend.ParseInput(recommend.RawInput{}))

	assert.Equal(t, domain.TierMedium, result.Input.DataTier)
	assert.Equal(t, domain.PriorityBalanced, result.Input.Priority)
	assert.Nil(t, result.Savings)
	assert.Equal(t, "Switch (Recommended)", result.PrimaryCTA)
	assert.Equal(t, 76, result.Confidence.Score)
}
