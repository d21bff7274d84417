package main

import (
	"errors"

	"go-matching-backend/internal/bootstrap"
	"go-matching-backend/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	var seekers []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Score and store matches for one or more seekers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(seekers) == 0 {
				return errors.New("at least one --seeker is required")
			}
			return withApp(cmd.Context(), v, func(a *bootstrap.App) error {
				if len(seekers) == 1 {
					res, err := a.MatchUC.RunMatch(cmd.Context(), seekers[0])
					if err != nil {
						return err
					}
					logger.Log.Infow("Match run finished", "run_id", res.RunID,
						"created", res.Created, "updated", res.Updated, "unchanged", res.Unchanged)
					return printJSON(cmd.OutOrStdout(), res)
				}
				res, err := a.MatchUC.RunMatchBatch(cmd.Context(), seekers)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&seekers, "seeker", "s", nil, "seeker id, repeatable")
	return cmd
}

func newRunAllCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run-all",
		Short: "Score and store matches for every known seeker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), v, func(a *bootstrap.App) error {
				res, err := a.MatchUC.RunAll(cmd.Context())
				if err != nil {
					return err
				}
				logger.Log.Infow("Full rescore finished", "seekers", len(res.Results), "failed", len(res.Failed))
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}
