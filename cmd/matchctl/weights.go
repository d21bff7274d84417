package main

import (
	"go-matching-backend/internal/matching"

	"github.com/spf13/cobra"
)

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect scoring weights",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the default weights",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printJSON(cmd.OutOrStdout(), matching.DefaultWeights())
			},
		},
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Check a calibration file and print the weights it yields",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				w, err := matching.LoadWeights(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), w)
			},
		},
	)
	return cmd
}
