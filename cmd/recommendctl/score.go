package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recommend-backend/internal/catalog"
	"recommend-backend/internal/recommend"
)

type scoreOptions struct {
	file   string
	budget float64
	time   float64
	slider float64
	preset string
	topN   int
	ratio  float64
	seed   uint64
	all    bool
}

type scoreOutput struct {
	Preset          string                 `json:"preset"`
	TotalItems      int                    `json:"total_items"`
	FilteredOut     int                    `json:"filtered_out"`
	Recommendations []recommend.ScoredItem `json:"recommendations"`
	Ranked          []recommend.ScoredItem `json:"ranked,omitempty"`
}

func newScoreCmd() *cobra.Command {
	opts := scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score --file catalog.json",
		Short: "Run filter, scoring and discovery injection on a catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.slider < 0 || opts.slider > 1 {
				return fmt.Errorf("--slider must be within [0,1], got %v", opts.slider)
			}
			if opts.ratio < 0 || opts.ratio > 1 {
				return fmt.Errorf("--ratio must be within [0,1], got %v", opts.ratio)
			}
			f, err := os.Open(opts.file)
			if err != nil {
				return err
			}
			defer f.Close()

			items, err := catalog.Decode(f)
			if err != nil {
				return fmt.Errorf("decode %s: %w", opts.file, err)
			}
			if err := recommend.ValidateItems(items); err != nil {
				return err
			}

			var rng recommend.Rand = recommend.NewRand()
			if cmd.Flags().Changed("seed") {
				rng = recommend.NewSeededRand(opts.seed)
			}
			pipeline := recommend.NewPipeline(rng)
			pipeline.TopN = opts.topN
			pipeline.DiscoveryRatio = opts.ratio

			preset := recommend.ParsePreset(opts.preset)
			res := pipeline.Run(items, recommend.Constraints{
				Budget:            opts.budget,
				TimeLimit:         opts.time,
				ExplorationSlider: opts.slider,
				Preset:            preset,
			})

			out := scoreOutput{
				Preset:          preset.String(),
				TotalItems:      res.TotalCount,
				FilteredOut:     res.FilteredOutCount,
				Recommendations: res.Items,
			}
			if out.Recommendations == nil {
				out.Recommendations = []recommend.ScoredItem{}
			}
			if opts.all {
				out.Ranked = res.Ranked
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "catalog JSON file (array of items)")
	flags.Float64Var(&opts.budget, "budget", 500, "maximum price")
	flags.Float64Var(&opts.time, "time", 60, "maximum time in minutes")
	flags.Float64Var(&opts.slider, "slider", 0.5, "comfort (0) to exploration (1)")
	flags.StringVar(&opts.preset, "preset", "", "student, saver, explorer or empty for default")
	flags.IntVar(&opts.topN, "top-n", recommend.DefaultTopN, "size of the ranked head")
	flags.Float64Var(&opts.ratio, "ratio", recommend.DefaultDiscoveryRatio, "discovery ratio relative to top-n")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible discovery picks")
	flags.BoolVar(&opts.all, "all", false, "include the full ranked list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
