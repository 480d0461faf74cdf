package recommendations

import (
	"context"
	"fmt"
	"time"

	"recommend-backend/internal/catalog"
	"recommend-backend/internal/explain"
	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/metrics"
	"recommend-backend/internal/shared/telemetry"
	"recommend-backend/internal/shared/util"
)

const defaultExplainTimeout = 20 * time.Second

// Input is one recommendation request after defaults are applied.
type Input struct {
	Query       string
	Domain      string
	Constraints recommend.Constraints
}

// Output is the annotated result of one request.
type Output struct {
	Domain           string
	Items            []explain.Explained
	TotalCount       int
	FilteredOutCount int
}

// Service loads a catalog, runs the pipeline and attaches explanations.
type Service struct {
	Catalog   catalog.Repo
	Pipeline  *recommend.Pipeline
	Explainer explain.Generator
	// ExplainTimeout bounds the explanation step; zero uses the default.
	ExplainTimeout time.Duration
}

// Recommend runs one request. Explanation failures never fail the request;
// affected items get the default texts instead.
func (s *Service) Recommend(ctx context.Context, in Input) (Output, error) {
	domain, err := util.SanitizeDomain(in.Domain)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %q", catalog.ErrUnknownDomain, in.Domain)
	}
	items, err := s.Catalog.Load(ctx, domain)
	if err != nil {
		return Output{}, err
	}

	pipeline := s.Pipeline
	if pipeline == nil {
		pipeline = recommend.NewPipeline(recommend.NewRand())
	}
	start := time.Now()
	res := pipeline.Run(items, in.Constraints)
	metrics.ObservePipelineDuration(time.Since(start))
	metrics.AddItemsFiltered(res.FilteredOutCount)
	metrics.AddDiscoveryInjected(countDiscovery(res.Items))

	explanations := s.explain(ctx, explain.Request{
		Query:       in.Query,
		Domain:      domain,
		Constraints: in.Constraints,
		Items:       res.Items,
	})

	metrics.IncRecommendationsServed(domain, in.Constraints.Preset.String())
	return Output{
		Domain:           domain,
		Items:            explain.Annotate(res.Items, explanations),
		TotalCount:       res.TotalCount,
		FilteredOutCount: res.FilteredOutCount,
	}, nil
}

// Domains lists the catalogs that can be requested.
func (s *Service) Domains(ctx context.Context) ([]string, error) {
	return s.Catalog.Domains(ctx)
}

func (s *Service) explain(ctx context.Context, req explain.Request) []explain.Explanation {
	if s.Explainer == nil || len(req.Items) == 0 {
		return nil
	}
	timeout := s.ExplainTimeout
	if timeout <= 0 {
		timeout = defaultExplainTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := s.Explainer.Explain(ctx, req)
	if err != nil {
		telemetry.Warn("recommend.explain_failed", map[string]any{
			"domain": req.Domain,
			"error":  err,
		})
		return nil
	}
	return out
}

func countDiscovery(items []recommend.ScoredItem) int {
	n := 0
	for _, it := range items {
		if it.IsDiscovery {
			n++
		}
	}
	return n
}
