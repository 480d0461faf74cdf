package main

import (
	"github.com/spf13/cobra"

	"recommend-backend/internal/recommend"
)

type presetRow struct {
	Name    string                  `json:"name"`
	Weights recommend.WeightProfile `json:"weights"`
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List scoring weight presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([]presetRow, 0, len(recommend.Presets))
			for _, p := range recommend.Presets {
				rows = append(rows, presetRow{Name: p.String(), Weights: p.Weights()})
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}
}
