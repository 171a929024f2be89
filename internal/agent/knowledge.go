package agent

import (
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// InternalKnowledgeSummary reports on caller-supplied internal documents.
type InternalKnowledgeSummary struct {
	DocumentsAnalyzed int      `json:"documents_analyzed"`
	DocumentNames     []string `json:"document_names"`
	Summary           string   `json:"summary"`
}

// InternalKnowledge summarizes the supplied documents. It operates on the
// provided list, not a dataset, and preserves input order.
func InternalKnowledge(_ model.StructuredQuery, docs []model.Document) InternalKnowledgeSummary {
	return InternalKnowledgeSummary{
		DocumentsAnalyzed: len(docs),
		DocumentNames:     model.DocumentNames(docs),
		Summary:           "Internal documents reviewed for strategic alignment.",
	}
}
