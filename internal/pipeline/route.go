package pipeline

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
	"github.com/arpriyadarshi/ey-pharma/internal/config"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

const agentRouterSystem = `You are an agent router for a pharmaceutical research pipeline. Given a research question and its structured fields, choose which analysis agents should run.

Available agents:
- ClinicalTrialsAgent: clinical trial activity for a disease or molecule.
- IQVIAInsightsAgent: market size, growth, and competitors for a disease in a country.
- PatentLandscapeAgent: patent filings and exclusivity for a molecule.
- EXIMTrendsAgent: export/import trade flows for a country.
- WebIntelligenceAgent: external signals such as publications and trial readouts.
- InternalKnowledgeAgent: the caller's own uploaded documents. Select it ONLY when has_internal_docs is true.

Return ONLY a JSON object:
{"agents": ["AgentName", ...]}

Select every agent whose coverage is relevant to the question. No prose, no markdown fences.`

// routeRequest is the payload handed to the routing model.
type routeRequest struct {
	UserQuery       string                `json:"user_query"`
	StructuredQuery model.StructuredQuery `json:"structured_query"`
	HasInternalDocs bool                  `json:"has_internal_docs"`
}

type routeResponse struct {
	Agents []string `json:"agents"`
}

// Router selects the analysis agents for one run.
type Router struct {
	ai  anthropic.Client
	cfg config.AnthropicConfig
}

func NewRouter(ai anthropic.Client, cfg config.AnthropicConfig) *Router {
	return &Router{ai: ai, cfg: cfg}
}

// Route runs the agent selection stage. InternalKnowledgeAgent is dropped
// here when no documents were supplied, regardless of what the model
// returned. Unknown identifiers pass through for the orchestrator to
// judge against its strictness setting.
func (r *Router) Route(ctx context.Context, query string, sq model.StructuredQuery, hasDocs bool) ([]agent.Name, model.TokenUsage, error) {
	payload, err := json.Marshal(routeRequest{
		UserQuery:       query,
		StructuredQuery: sq,
		HasInternalDocs: hasDocs,
	})
	if err != nil {
		return nil, model.TokenUsage{}, eris.Wrap(err, "route: marshal payload")
	}

	req := anthropic.MessageRequest{
		Model:       r.cfg.RouterModel,
		MaxTokens:   256,
		System:      agentRouterSystem,
		Messages:    []anthropic.Message{{Role: "user", Content: string(payload)}},
		Temperature: anthropicTemp(0),
	}

	resp, usage, err := callModel(ctx, r.ai, r.cfg, "route_agents", req)
	if err != nil {
		return nil, usage, eris.Wrap(err, "route: select agents")
	}

	var parsed routeResponse
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &parsed); err != nil {
		return nil, usage, eris.Wrap(ErrMalformedExtraction, "route: decode selection: "+err.Error())
	}

	selected := make([]agent.Name, 0, len(parsed.Agents))
	for _, raw := range parsed.Agents {
		n := agent.Name(raw)
		if n == agent.InternalKnowledgeAgent && !hasDocs {
			zap.L().Warn("router selected internal knowledge without documents, dropping",
				zap.String("agent", raw))
			continue
		}
		selected = append(selected, n)
	}

	return selected, usage, nil
}
