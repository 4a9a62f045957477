package aggregate_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendurway/signalwise/internal/aggregate"
	"github.com/sendurway/signalwise/internal/domain"
)

// eventsNewestFirst builds n events, one minute apart, newest first.
func eventsNewestFirst(specs ...[2]string) []domain.ClickEvent {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	events := make([]domain.ClickEvent, len(specs))
	for i, s := range specs {
		events[i] = domain.ClickEvent{
			ID:        fmt.Sprintf("evt-%d", i),
			Carrier:   s[0],
			Source:    domain.Source(s[1]),
			ClickedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return events
}

func TestPct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, d int
		want string
	}{
		{0, 0, "0%"},
		{5, 0, "0%"},
		{1, 4, "25%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{1, 8, "13%"},
		{4, 4, "100%"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, aggregate.Pct(tt.n, tt.d), "Pct(%d, %d)", tt.n, tt.d)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := aggregate.Summarize(nil, aggregate.DefaultTableRows)

	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByCarrier)
	assert.Empty(t, s.BySource)
	assert.Empty(t, s.TableRows)
	assert.NotNil(t, s.TableRows)
	assert.Empty(t, s.CarrierRows)
	assert.Equal(t, "0%", s.Shares.BestMatch.Pct)
	assert.Equal(t, 0, s.Shares.Other.Count)
}

func TestSummarize_GroupsAndBucketsUnknown(t *testing.T) {
	t.Parallel()

	events := eventsNewestFirst(
		[2]string{"mint", "results"},
		[2]string{"visible", ""},
		[2]string{"mint", "cheapest_card"},
		[2]string{"mint", "results"},
		[2]string{"acme", "newsletter"},
		[2]string{"visible", "coverage_card"},
		[2]string{"us-mobile", ""},
		[2]string{"visible", "results"},
	)

	s := aggregate.Summarize(events, 3)

	assert.Equal(t, 8, s.Total)
	assert.Equal(t, map[string]int{"mint": 3, "visible": 3, "acme": 1, "us-mobile": 1}, s.ByCarrier)
	assert.Equal(t, map[string]int{
		"results": 3, "unknown": 2, "cheapest_card": 1, "coverage_card": 1, "newsletter": 1,
	}, s.BySource)

	require.Len(t, s.CarrierRows, 4)
	assert.Equal(t, aggregate.Row{Label: "mint", Count: 3, Pct: "38%"}, s.CarrierRows[0])
	assert.Equal(t, aggregate.Row{Label: "visible", Count: 3, Pct: "38%"}, s.CarrierRows[1])
	assert.Equal(t, "acme", s.CarrierRows[2].Label)
	assert.Equal(t, "us-mobile", s.CarrierRows[3].Label)

	assert.Equal(t, aggregate.Share{Count: 3, Pct: "38%"}, s.Shares.BestMatch)
	assert.Equal(t, aggregate.Share{Count: 1, Pct: "13%"}, s.Shares.CheapestCard)
	assert.Equal(t, aggregate.Share{Count: 1, Pct: "13%"}, s.Shares.CoverageCard)
	assert.Equal(t, aggregate.Share{Count: 3, Pct: "38%"}, s.Shares.Other)

	require.Len(t, s.TableRows, 3)
	assert.Equal(t, "evt-0", s.TableRows[0].ID)
	assert.Equal(t, "evt-2", s.TableRows[2].ID)
	assert.True(t, s.StoreAvailable)
}

func TestSummarize_TableRowsBoundedByTotal(t *testing.T) {
	t.Parallel()

	events := eventsNewestFirst([2]string{"mint", "results"}, [2]string{"visible", "results"})

	s := aggregate.Summarize(events, aggregate.DefaultTableRows)

	require.Len(t, s.TableRows, 2)
	assert.True(t, s.TableRows[0].ClickedAt.After(s.TableRows[1].ClickedAt))
}

func TestClampWindow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, aggregate.DefaultWindow, aggregate.ClampWindow(0))
	assert.Equal(t, aggregate.DefaultWindow, aggregate.ClampWindow(-3))
	assert.Equal(t, 1, aggregate.ClampWindow(1))
	assert.Equal(t, 300, aggregate.ClampWindow(300))
	assert.Equal(t, aggregate.MaxWindow, aggregate.ClampWindow(5000))
}
