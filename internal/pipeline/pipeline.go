// Package pipeline orchestrates one research run end to end: structure
// the query, route it to analysis agents, execute the agents against the
// local datasets, and synthesize a decision-ready report. The three
// LLM-backed stages share a retry and timeout policy; agent execution is
// concurrent and failure-isolated.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
	"github.com/arpriyadarshi/ey-pharma/internal/config"
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

// Pipeline wires the stages of a research run together.
type Pipeline struct {
	cfg  *config.Config
	data *dataset.Loader

	structurer  *Structurer
	router      *Router
	synthesizer *Synthesizer
}

// New builds a pipeline from its dependencies.
func New(cfg *config.Config, ai anthropic.Client, data *dataset.Loader) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		data:        data,
		structurer:  NewStructurer(ai, cfg.Anthropic),
		router:      NewRouter(ai, cfg.Anthropic),
		synthesizer: NewSynthesizer(ai, cfg.Anthropic),
	}
}

// Result is the full outcome of one run: the report plus everything a
// caller needs to audit how it was produced.
type Result struct {
	RunID           string                `json:"run_id"`
	Query           string                `json:"query"`
	StructuredQuery model.StructuredQuery `json:"structured_query"`
	SelectedAgents  []agent.Name          `json:"selected_agents"`
	Outputs         agent.Outputs         `json:"agent_outputs"`
	Report          *model.FinalReport    `json:"report"`
	Phases          []model.PhaseResult   `json:"phases"`
	Usage           model.TokenUsage      `json:"token_usage"`
}

// Run executes the full pipeline for one query. The returned error is
// terminal: query structuring, routing, or report synthesis failed after
// retries, or strict routing rejected the selection. Individual agent
// failures are absorbed into the result instead.
func (p *Pipeline) Run(ctx context.Context, query string, docs []model.Document) (*Result, error) {
	result := &Result{
		RunID: uuid.NewString(),
		Query: query,
	}
	log := zap.L().With(zap.String("run_id", result.RunID))
	log.Info("starting research run",
		zap.String("query", query),
		zap.Int("documents", len(docs)),
	)

	trackPhase := func(name string, fn func() (map[string]any, error)) error {
		start := time.Now()
		meta, err := fn()
		phase := model.PhaseResult{
			Name:     name,
			Status:   model.PhaseStatusComplete,
			Duration: time.Since(start).Milliseconds(),
			Metadata: meta,
		}
		if err != nil {
			phase.Status = model.PhaseStatusFailed
			phase.Error = err.Error()
			log.Error("phase failed",
				zap.String("phase", name),
				zap.Int64("duration_ms", phase.Duration),
				zap.Error(err),
			)
		} else {
			log.Info("phase complete",
				zap.String("phase", name),
				zap.Int64("duration_ms", phase.Duration),
				zap.Any("metadata", meta),
			)
		}
		result.Phases = append(result.Phases, phase)
		return err
	}

	err := trackPhase("1_structure_query", func() (map[string]any, error) {
		sq, usage, err := p.structurer.Structure(ctx, query)
		result.Usage.Add(usage)
		if err != nil {
			return nil, err
		}
		result.StructuredQuery = sq
		return map[string]any{
			"disease":  sq.Disease,
			"country":  sq.Country,
			"molecule": sq.Molecule,
		}, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: structure query")
	}

	err = trackPhase("2_route_agents", func() (map[string]any, error) {
		selected, usage, err := p.router.Route(ctx, query, result.StructuredQuery, len(docs) > 0)
		result.Usage.Add(usage)
		if err != nil {
			return nil, err
		}
		result.SelectedAgents = selected
		return map[string]any{"selected": selected}, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: route agents")
	}

	err = trackPhase("3_execute_agents", func() (map[string]any, error) {
		outputs, skipped, err := p.runAgents(ctx, result.StructuredQuery, docs, result.SelectedAgents)
		if err != nil {
			return nil, err
		}
		result.Outputs = outputs
		meta := map[string]any{"outputs": len(outputs)}
		if len(skipped) > 0 {
			meta["skipped"] = skipped
		}
		return meta, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: execute agents")
	}

	err = trackPhase("4_synthesize_report", func() (map[string]any, error) {
		report, usage, err := p.synthesizer.Synthesize(ctx, query, result.StructuredQuery, result.Outputs)
		result.Usage.Add(usage)
		if err != nil {
			return nil, err
		}
		result.Report = report
		return map[string]any{"sections": len(report.Sections)}, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: synthesize report")
	}

	log.Info("research run complete",
		zap.Int("agents", len(result.Outputs)),
		zap.Int("input_tokens", result.Usage.InputTokens),
		zap.Int("output_tokens", result.Usage.OutputTokens),
	)
	return result, nil
}
