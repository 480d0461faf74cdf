package explain

import (
	"context"
	"errors"

	"recommend-backend/internal/shared/metrics"
	"recommend-backend/internal/shared/telemetry"
)

// FallbackGenerator tries each generator in order and returns the first
// non-empty result.
type FallbackGenerator struct {
	generators []Generator
}

// NewFallback chains generators. Put TemplateGenerator last so the chain
// always produces output.
func NewFallback(generators ...Generator) *FallbackGenerator {
	return &FallbackGenerator{generators: generators}
}

func (f *FallbackGenerator) Name() string { return "fallback" }

func (f *FallbackGenerator) Explain(ctx context.Context, req Request) ([]Explanation, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}
	var errs []error
	for _, g := range f.generators {
		out, err := g.Explain(ctx, req)
		if err == nil && len(out) > 0 {
			return out, nil
		}
		if err == nil {
			err = ErrEmpty
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.IncExplanationFallback(g.Name())
		telemetry.Warn("explain.generator_failed", map[string]any{
			"generator": g.Name(),
			"error":     err,
			"items":     len(req.Items),
		})
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrEmpty
	}
	return nil, errors.Join(errs...)
}

var _ Generator = (*FallbackGenerator)(nil)

// Names lists the chained generators in call order.
func (f *FallbackGenerator) Names() []string {
	names := make([]string, 0, len(f.generators))
	for _, g := range f.generators {
		names = append(names, g.Name())
	}
	return names
}
