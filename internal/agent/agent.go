// Package agent implements the specialized analysis routines the pipeline
// dispatches to. Each table-driven agent is a pure function over a
// structured query and a dataset snapshot, so identical inputs always
// produce identical summaries.
package agent

import (
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// Name identifies one analysis agent. The set is closed: the routing stage
// may only select from these six identifiers.
type Name string

const (
	ClinicalTrialsAgent    Name = "ClinicalTrialsAgent"
	IQVIAInsightsAgent     Name = "IQVIAInsightsAgent"
	PatentLandscapeAgent   Name = "PatentLandscapeAgent"
	EXIMTrendsAgent        Name = "EXIMTrendsAgent"
	WebIntelligenceAgent   Name = "WebIntelligenceAgent"
	InternalKnowledgeAgent Name = "InternalKnowledgeAgent"
)

// Fixed output keys, one per agent family. The report synthesis stage and
// the presentation layer key on these.
const (
	KeyClinicalTrials    = "clinical_trials"
	KeyIQVIAInsights     = "iqvia_insights"
	KeyPatentLandscape   = "patent_landscape"
	KeyEXIMTrends        = "exim_trends"
	KeyWebIntelligence   = "web_intelligence"
	KeyInternalKnowledge = "internal_knowledge"
)

// Outputs maps fixed agent keys to their summaries. The orchestrator
// writes each key at most once per run.
type Outputs map[string]any

// Spec describes one table-driven agent: the dataset it reads (empty for
// agents that use none), the output key its summary lands under, and the
// pure function that computes the summary.
type Spec struct {
	Key     string
	Dataset string
	Run     func(model.StructuredQuery, dataset.Table) any
}

// Registry returns the closed dispatch table for table-driven agents.
// InternalKnowledgeAgent operates on caller-supplied documents rather than
// a dataset and is dispatched separately by the orchestrator.
func Registry() map[Name]Spec {
	return map[Name]Spec{
		ClinicalTrialsAgent: {
			Key:     KeyClinicalTrials,
			Dataset: dataset.ClinicalTrials,
			Run: func(q model.StructuredQuery, t dataset.Table) any {
				return ClinicalTrials(q, t)
			},
		},
		IQVIAInsightsAgent: {
			Key:     KeyIQVIAInsights,
			Dataset: dataset.IQVIAMarket,
			Run: func(q model.StructuredQuery, t dataset.Table) any {
				return MarketInsights(q, t)
			},
		},
		PatentLandscapeAgent: {
			Key:     KeyPatentLandscape,
			Dataset: dataset.Patents,
			Run: func(q model.StructuredQuery, t dataset.Table) any {
				return PatentLandscape(q, t)
			},
		},
		EXIMTrendsAgent: {
			Key:     KeyEXIMTrends,
			Dataset: dataset.EXIMTrade,
			Run: func(q model.StructuredQuery, t dataset.Table) any {
				return TradeTrends(q, t)
			},
		},
		WebIntelligenceAgent: {
			Key:     KeyWebIntelligence,
			Dataset: "",
			Run: func(q model.StructuredQuery, _ dataset.Table) any {
				return WebIntelligence(q)
			},
		},
	}
}

// Known reports whether a name belongs to the closed agent enumeration.
func Known(n Name) bool {
	switch n {
	case ClinicalTrialsAgent, IQVIAInsightsAgent, PatentLandscapeAgent,
		EXIMTrendsAgent, WebIntelligenceAgent, InternalKnowledgeAgent:
		return true
	}
	return false
}
