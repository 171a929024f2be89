package agent

import (
	"fmt"

	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// noSignalInsight is returned when the query carries neither a disease nor
// a molecule.
const noSignalInsight = "No significant external signals detected."

// WebIntelligenceSummary carries templated external scientific signals.
type WebIntelligenceSummary struct {
	KeyInsights []string `json:"key_insights"`
}

// WebIntelligence produces external-signal insight strings from the
// disease and molecule attributes. It reads no dataset.
func WebIntelligence(q model.StructuredQuery) WebIntelligenceSummary {
	var insights []string

	if q.Disease != "" {
		insights = append(insights, fmt.Sprintf(
			"Recent publications indicate increasing research activity in %s.", q.Disease))
	}
	if q.Molecule != "" {
		insights = append(insights, fmt.Sprintf(
			"%s has shown promising results in late-stage trials.", q.Molecule))
	}
	if len(insights) == 0 {
		insights = []string{noSignalInsight}
	}

	return WebIntelligenceSummary{KeyInsights: insights}
}
