package pipeline

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arpriyadarshi/ey-pharma/internal/agent"
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

// runAgents executes the selected agents concurrently and collects their
// summaries under the fixed output keys. A failing or panicking agent is
// logged and its key omitted; it never takes the run down. Unknown
// identifiers are skipped, or terminal when strict routing is on.
func (p *Pipeline) runAgents(ctx context.Context, sq model.StructuredQuery, docs []model.Document, selected []agent.Name) (agent.Outputs, []string, error) {
	// Build the dispatch list first so each output key is written at
	// most once, however the router phrased its selection.
	dispatch := make([]agent.Name, 0, len(selected))
	skipped := make([]string, 0)
	seen := make(map[agent.Name]bool, len(selected))
	for _, n := range selected {
		if seen[n] {
			continue
		}
		seen[n] = true

		if !agent.Known(n) {
			if p.cfg.Pipeline.StrictRouting {
				return nil, nil, eris.Wrap(ErrUnknownAgent, string(n))
			}
			zap.L().Warn("skipping unknown agent", zap.String("agent", string(n)))
			skipped = append(skipped, string(n))
			continue
		}
		if n == agent.InternalKnowledgeAgent && len(docs) == 0 {
			zap.L().Warn("skipping internal knowledge agent, no documents supplied")
			skipped = append(skipped, string(n))
			continue
		}
		dispatch = append(dispatch, n)
	}

	outputs := make(agent.Outputs, len(dispatch))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	limit := p.cfg.Pipeline.MaxConcurrentAgents
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for _, n := range dispatch {
		n := n
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Error("agent panicked, omitting output",
						zap.String("agent", string(n)),
						zap.Any("panic", r),
					)
				}
			}()

			key, summary := p.runOne(n, sq, docs)

			mu.Lock()
			outputs[key] = summary
			mu.Unlock()
			return nil
		})
	}
	// Agents only report through outputs, never through group errors.
	_ = g.Wait()

	return outputs, skipped, nil
}

// runOne executes a single agent against its inputs.
func (p *Pipeline) runOne(n agent.Name, sq model.StructuredQuery, docs []model.Document) (string, any) {
	if n == agent.InternalKnowledgeAgent {
		return agent.KeyInternalKnowledge, agent.InternalKnowledge(sq, docs)
	}

	spec := agent.Registry()[n]
	var table dataset.Table
	if spec.Dataset != "" {
		table = p.data.Load(spec.Dataset)
	}
	return spec.Key, spec.Run(sq, table)
}
