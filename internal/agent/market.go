package agent

import (
	"math"

	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// topN bounds every "top by frequency" breakdown.
const topN = 5

// MarketInsightsSummary is the commercial-viability view of the market
// dataset.
type MarketInsightsSummary struct {
	MarketSizeUSDMn float64        `json:"market_size_usd_mn"`
	CAGRPercentAvg  float64        `json:"cagr_percent_avg"`
	KeyPlayers      dataset.Counts `json:"key_players"`
}

// MarketInsights filters the market table by country and disease and
// reduces it to total market size, mean CAGR (two decimals, 0 when no rows
// match), and the five most frequent companies.
func MarketInsights(q model.StructuredQuery, t dataset.Table) MarketInsightsSummary {
	t = t.FilterContains("country", q.Country)
	t = t.FilterContains("disease", q.Disease)

	return MarketInsightsSummary{
		MarketSizeUSDMn: t.SumFloat("market_size_usd_mn"),
		CAGRPercentAvg:  round2(t.MeanFloat("cagr_percent")),
		KeyPlayers:      t.TopCounts("company", topN),
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
