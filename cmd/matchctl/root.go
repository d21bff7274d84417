package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go-matching-backend/config"
	"go-matching-backend/internal/bootstrap"
	"go-matching-backend/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "matchctl"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           app,
		Short:         "matchctl scores seekers against candidates from the command line",
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := logger.Init(v.GetBool("json"), v.GetBool("debug")); err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logger.Sync()
		},
	}

	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	root.PersistentFlags().String("storage", "", "storage driver override: postgres or memory")

	_ = v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("json", root.PersistentFlags().Lookup("json"))
	_ = v.BindPFlag("storage", root.PersistentFlags().Lookup("storage"))

	root.AddCommand(
		newRunCmd(v),
		newRunAllCmd(v),
		newMigrateCmd(v),
		newWeightsCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the environment config and applies flag overrides.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if s := v.GetString("storage"); s != "" {
		if s != config.StorageMemory && s != config.StoragePostgres {
			return nil, fmt.Errorf("unknown storage driver %q", s)
		}
		cfg.StorageDriver = s
	}
	return cfg, nil
}

func withApp(ctx context.Context, v *viper.Viper, fn func(*bootstrap.App) error) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	a, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
