package agent

import (
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// PatentLandscapeSummary is the IP-risk view of the patents dataset.
type PatentLandscapeSummary struct {
	TotalPatents  int            `json:"total_patents"`
	ActivePatents int            `json:"active_patents"`
	TopAssignees  dataset.Counts `json:"top_assignees"`
}

// PatentLandscape filters the patents table by molecule and by
// jurisdiction (driven by the query's country attribute) and reduces it to
// filing counts, active-status counts, and the five most frequent
// assignees.
func PatentLandscape(q model.StructuredQuery, t dataset.Table) PatentLandscapeSummary {
	t = t.FilterContains("molecule", q.Molecule)
	t = t.FilterContains("jurisdiction", q.Country)

	return PatentLandscapeSummary{
		TotalPatents:  t.Len(),
		ActivePatents: t.CountContains("status", "active"),
		TopAssignees:  t.TopCounts("assignee", topN),
	}
}
