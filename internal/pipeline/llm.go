package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/config"
	"github.com/arpriyadarshi/ey-pharma/internal/model"
	"github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

const (
	defaultRequestTimeout = 60 * time.Second
	retryBaseDelay        = 500 * time.Millisecond
)

// callModel issues one LLM request with a per-attempt timeout and
// exponential backoff between attempts. Context cancellation is never
// retried. On success it logs cost attribution for the phase.
func callModel(ctx context.Context, ai anthropic.Client, cfg config.AnthropicConfig, phase string, req anthropic.MessageRequest) (*anthropic.MessageResponse, model.TokenUsage, error) {
	timeout := defaultRequestTimeout
	if cfg.RequestTimeoutSecs > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSecs) * time.Second
	}
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := ai.CreateMessage(attemptCtx, req)
		cancel()

		if err == nil {
			usage := model.TokenUsage{
				InputTokens:  int(resp.Usage.InputTokens),
				OutputTokens: int(resp.Usage.OutputTokens),
			}
			resp.Usage.LogCost(req.Model, phase)
			return resp, usage, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, model.TokenUsage{}, eris.Wrapf(ctx.Err(), "%s: canceled", phase)
		}
		if attempt == attempts {
			break
		}

		delay := retryBaseDelay * time.Duration(1<<(attempt-1))
		zap.L().Warn("llm request failed, retrying",
			zap.String("phase", phase),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, model.TokenUsage{}, eris.Wrapf(ctx.Err(), "%s: canceled", phase)
		}
	}

	return nil, model.TokenUsage{}, eris.Wrapf(lastErr, "%s: exhausted %d attempts", phase, attempts)
}

// cleanJSON strips markdown code fences and any prose around the first
// JSON object so lenient model output still decodes.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		s = s[start : end+1]
	}

	return s
}
