package agent

import (
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// ClinicalTrialsSummary is the competitive-pipeline view of the trials
// dataset.
type ClinicalTrialsSummary struct {
	TotalTrials       int            `json:"total_trials"`
	PhaseDistribution dataset.Counts `json:"phase_distribution"`
	TopSponsors       dataset.Counts `json:"top_sponsors"`
}

// ClinicalTrials filters the trials table by disease and molecule and
// reduces it to trial counts, the phase distribution, and the five most
// active sponsors.
func ClinicalTrials(q model.StructuredQuery, t dataset.Table) ClinicalTrialsSummary {
	t = t.FilterContains("disease", q.Disease)
	t = t.FilterContains("molecule", q.Molecule)

	return ClinicalTrialsSummary{
		TotalTrials:       t.Len(),
		PhaseDistribution: t.CountsBy("phase"),
		TopSponsors:       t.TopCounts("sponsor", topN),
	}
}
