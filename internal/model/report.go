package model

import (
	"github.com/rotisserie/eris"
)

// Chart types the presentation layer can render.
const (
	ChartTypeBar  = "bar"
	ChartTypeLine = "line"
)

// Chart is a rendering specification: category label mapped to a numeric
// magnitude. Values are float64 so string-valued data fails JSON decoding
// instead of reaching the renderer.
type Chart struct {
	Type string             `json:"type"`
	Data map[string]float64 `json:"data"`
}

// Table is one tabular block: an ordered sequence of flat key-value rows.
// All rows in a block must share a key set to render rectangularly.
type Table []map[string]any

// Section is one titled unit of the final report.
type Section struct {
	Title    string  `json:"title"`
	Insights string  `json:"insights"`
	Tables   []Table `json:"tables,omitempty"`
	Charts   []Chart `json:"charts,omitempty"`
}

// FinalReport is the synthesized analysis output handed to the
// presentation layer. FinalRecommendation is optional; renderers must
// tolerate its absence.
type FinalReport struct {
	ExecutiveSummary    string    `json:"executive_summary"`
	Sections            []Section `json:"sections"`
	FinalRecommendation string    `json:"final_recommendation,omitempty"`
}

// Validate checks the report against the presentation contract: known
// chart types and rectangular table blocks.
func (r *FinalReport) Validate() error {
	for si, sec := range r.Sections {
		for ci, ch := range sec.Charts {
			if ch.Type != ChartTypeBar && ch.Type != ChartTypeLine {
				return eris.Errorf("report: section %d chart %d has unknown type %q", si, ci, ch.Type)
			}
		}
		for ti, tb := range sec.Tables {
			if err := tb.validate(); err != nil {
				return eris.Wrapf(err, "report: section %d table %d", si, ti)
			}
		}
	}
	return nil
}

// validate ensures all rows in the block share one key set.
func (t Table) validate() error {
	if len(t) < 2 {
		return nil
	}
	first := t[0]
	for i, row := range t[1:] {
		if len(row) != len(first) {
			return eris.Errorf("row %d has %d keys, expected %d", i+1, len(row), len(first))
		}
		for k := range first {
			if _, ok := row[k]; !ok {
				return eris.Errorf("row %d is missing key %q", i+1, k)
			}
		}
	}
	return nil
}
