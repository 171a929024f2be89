package pipeline

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
	"github.com/arpriyadarshi/ey-pharma/internal/config"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

const reportSystem = `You are a pharmaceutical strategy analyst. Synthesize the agent outputs into a decision-ready report for a strategy team.

Return ONLY a JSON object with this shape:
{
  "executive_summary": "...",
  "sections": [
    {
      "title": "...",
      "insights": "...",
      "charts": [{"type": "bar", "data": {"label": number, ...}}],
      "tables": [[{"column": "value", ...}, ...]]
    }
  ],
  "final_recommendation": "..."
}

Rules:
- Chart "type" must be "bar" or "line".
- "charts" and "tables" are optional per section. Omit them rather than inventing data.
- Chart data values must be numbers taken from the agent outputs, never strings.
- Every row of a table must have the same columns.
- Ground every figure in the agent outputs. Do not fabricate.
- No prose outside the JSON, no markdown fences.`

// synthesisRequest is the payload handed to the report model.
type synthesisRequest struct {
	UserQuery       string                     `json:"user_query"`
	StructuredQuery model.StructuredQuery      `json:"structured_query"`
	AgentOutputs    map[string]json.RawMessage `json:"agent_outputs"`
}

// Synthesizer turns accumulated agent outputs into the final report.
type Synthesizer struct {
	ai  anthropic.Client
	cfg config.AnthropicConfig
}

func NewSynthesizer(ai anthropic.Client, cfg config.AnthropicConfig) *Synthesizer {
	return &Synthesizer{ai: ai, cfg: cfg}
}

// Synthesize runs the report generation stage. The report is validated
// before it is returned: unknown chart types or ragged tables fail the
// run rather than reaching the caller.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, sq model.StructuredQuery, outputs agent.Outputs) (*model.FinalReport, model.TokenUsage, error) {
	norm, err := NormalizeOutputs(outputs)
	if err != nil {
		return nil, model.TokenUsage{}, eris.Wrap(err, "synthesize: normalize outputs")
	}

	payload, err := json.Marshal(synthesisRequest{
		UserQuery:       query,
		StructuredQuery: sq,
		AgentOutputs:    norm,
	})
	if err != nil {
		return nil, model.TokenUsage{}, eris.Wrap(err, "synthesize: marshal payload")
	}

	req := anthropic.MessageRequest{
		Model:       s.cfg.ReportModel,
		MaxTokens:   4096,
		System:      reportSystem,
		Messages:    []anthropic.Message{{Role: "user", Content: string(payload)}},
		Temperature: anthropicTemp(0.2),
	}

	resp, usage, err := callModel(ctx, s.ai, s.cfg, "synthesize_report", req)
	if err != nil {
		return nil, usage, eris.Wrap(err, "synthesize: generate report")
	}

	var report model.FinalReport
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &report); err != nil {
		return nil, usage, eris.Wrap(ErrMalformedExtraction, "synthesize: decode report: "+err.Error())
	}
	if err := report.Validate(); err != nil {
		return nil, usage, eris.Wrap(ErrMalformedExtraction, "synthesize: invalid report: "+err.Error())
	}

	return &report, usage, nil
}
