package recommend

// Result is the output of one pipeline run.
type Result struct {
	// Items is the final interleaved list handed to the caller.
	Items []ScoredItem
	// Ranked is the full scored list before discovery injection.
	Ranked           []ScoredItem
	TotalCount       int
	FilteredOutCount int
}

// Pipeline runs Filter, Score and the discovery injector in sequence.
type Pipeline struct {
	TopN           int
	DiscoveryRatio float64
	Injector       *Injector
}

// NewPipeline builds a pipeline with the default head size and discovery ratio.
func NewPipeline(r Rand) *Pipeline {
	return &Pipeline{
		TopN:           DefaultTopN,
		DiscoveryRatio: DefaultDiscoveryRatio,
		Injector:       NewInjector(r),
	}
}

// Run executes the pipeline over items for one set of constraints.
func (p *Pipeline) Run(items []Item, c Constraints) Result {
	passed := Filter(items, c.Budget, c.TimeLimit)
	ranked := Score(passed, c)

	injector := p.Injector
	if injector == nil {
		injector = NewInjector(nil)
	}
	return Result{
		Items:            injector.Inject(ranked, p.TopN, p.DiscoveryRatio),
		Ranked:           ranked,
		TotalCount:       len(items),
		FilteredOutCount: len(items) - len(passed),
	}
}
