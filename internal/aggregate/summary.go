// Package aggregate turns a window of recent clicks into dashboard counts.
package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/sendurway/signalwise/internal/domain"
)

// Row is one line of a grouped breakdown.
type Row struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Pct   string `json:"pct"`
}

// Share is a count with its percentage of the total.
type Share struct {
	Count int    `json:"count"`
	Pct   string `json:"pct"`
}

// Shares attributes clicks to the element of the results page that produced
// them. Other covers every source outside the three cards, unknown included.
type Shares struct {
	BestMatch    Share `json:"best_match"`
	CheapestCard Share `json:"cheapest_card"`
	CoverageCard Share `json:"coverage_card"`
	Other        Share `json:"other"`
}

// Summary is the dashboard view of one window of clicks.
type Summary struct {
	Total          int                 `json:"total"`
	ByCarrier      map[string]int      `json:"by_carrier"`
	BySource       map[string]int      `json:"by_source"`
	CarrierRows    []Row               `json:"carrier_rows"`
	SourceRows     []Row               `json:"source_rows"`
	Shares         Shares              `json:"shares"`
	TableRows      []domain.ClickEvent `json:"table_rows"`
	StoreAvailable bool                `json:"store_available"`
}

// Pct formats n/d as a whole percentage. A zero denominator yields "0%".
func Pct(n, d int) string {
	if d == 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(float64(n)*100/float64(d)))) + "%"
}

// Summarize aggregates events, which must be ordered newest first. At most
// tableRows events are copied into the table, in that same order.
func Summarize(events []domain.ClickEvent, tableRows int) Summary {
	total := len(events)
	byCarrier := make(map[string]int)
	bySource := make(map[string]int)

	for i := range events {
		byCarrier[events[i].Carrier]++
		bySource[events[i].Source.Bucket()]++
	}

	tableRows = max(0, min(tableRows, total))
	table := make([]domain.ClickEvent, tableRows)
	copy(table, events[:tableRows])

	return Summary{
		Total:          total,
		ByCarrier:      byCarrier,
		BySource:       bySource,
		CarrierRows:    rows(byCarrier, total),
		SourceRows:     rows(bySource, total),
		Shares:         shares(bySource, total),
		TableRows:      table,
		StoreAvailable: true,
	}
}

// rows sorts counts by count descending, then label ascending.
func rows(counts map[string]int, total int) []Row {
	out := make([]Row, 0, len(counts))
	for label, count := range counts {
		out = append(out, Row{Label: label, Count: count, Pct: Pct(count, total)})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})

	return out
}

func shares(bySource map[string]int, total int) Shares {
	share := func(n int) Share { return Share{Count: n, Pct: Pct(n, total)} }

	best := bySource[string(domain.SourceResults)]
	cheapest := bySource[string(domain.SourceCheapestCard)]
	coverage := bySource[string(domain.SourceCoverageCard)]

	return Shares{
		BestMatch:    share(best),
		CheapestCard: share(cheapest),
		CoverageCard: share(coverage),
		Other:        share(total - best - cheapest - coverage),
	}
}
