package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/arpriyadarshi/ey-pharma/internal/config"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

const queryParserSystem = `You are a pharmaceutical query parser. Extract structured fields from the user's research question.

Return ONLY a JSON object with exactly these keys:
{"disease": "...", "country": "...", "molecule": "..."}

Rules:
- "disease" is the therapeutic area or condition mentioned (e.g. "oncology", "type 2 diabetes").
- "country" is the geographic market mentioned.
- "molecule" is the drug, compound, or molecule mentioned.
- Use an empty string "" for any field the query does not mention.
- Do not invent values. Do not add keys. No prose, no markdown fences.`

// Structurer extracts a structured query from free-form research text.
type Structurer struct {
	ai  anthropic.Client
	cfg config.AnthropicConfig
}

func NewStructurer(ai anthropic.Client, cfg config.AnthropicConfig) *Structurer {
	return &Structurer{ai: ai, cfg: cfg}
}

// Structure runs the query parsing stage. Fields the model cannot ground
// in the input come back as empty strings, never invented values.
func (s *Structurer) Structure(ctx context.Context, query string) (model.StructuredQuery, model.TokenUsage, error) {
	req := anthropic.MessageRequest{
		Model:       s.cfg.ParserModel,
		MaxTokens:   256,
		System:      queryParserSystem,
		Messages:    []anthropic.Message{{Role: "user", Content: query}},
		Temperature: anthropicTemp(0),
	}

	resp, usage, err := callModel(ctx, s.ai, s.cfg, "structure_query", req)
	if err != nil {
		return model.StructuredQuery{}, usage, eris.Wrap(err, "structure: parse query")
	}

	dec := json.NewDecoder(strings.NewReader(cleanJSON(resp.Text())))
	dec.DisallowUnknownFields()

	var sq model.StructuredQuery
	if err := dec.Decode(&sq); err != nil {
		return model.StructuredQuery{}, usage, eris.Wrap(ErrMalformedExtraction, "structure: decode query: "+err.Error())
	}

	return sq, usage, nil
}

func anthropicTemp(t float64) *float64 { return &t }
