package agent

import (
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// TradeTrendsSummary is the supply-chain view of the export-import
// dataset.
type TradeTrendsSummary struct {
	TotalTradeValueUSDMn float64        `json:"total_trade_value_usd_mn"`
	TopTradePartners     dataset.Counts `json:"top_trade_partners"`
}

// TradeTrends filters the trade table by country and reduces it to total
// trade value and the five most frequent partner countries.
func TradeTrends(q model.StructuredQuery, t dataset.Table) TradeTrendsSummary {
	t = t.FilterContains("country", q.Country)

	return TradeTrendsSummary{
		TotalTradeValueUSDMn: t.SumFloat("trade_value_usd_mn"),
		TopTradePartners:     t.TopCounts("partner_country", topN),
	}
}
