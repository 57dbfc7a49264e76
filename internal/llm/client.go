package llm

import (
	"context"
	"time"

	"github.com/agenthands/travelmate/internal/metrics"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options tune generation for every provider.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// timed records the latency of every Generate call under the provider name.
type timed struct {
	next     LLMClient
	provider string
}

func (t *timed) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := t.next.Generate(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.UpstreamDuration.WithLabelValues("llm_"+t.provider, status).Observe(time.Since(start).Seconds())
	return out, err
}
