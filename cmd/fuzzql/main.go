// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fuzzql/internal/config"
	"fuzzql/internal/engine"
	"fuzzql/internal/logging"
)

type runFlags struct {
	configPath string
	seed       uint64
	workers    int
	budget     int
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "fuzzql",
		Short: "Grammar-directed SQL fuzzer with differential oracles",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate and execute statements against a target, checking oracles as it goes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadWithOverrides(flags)
			if err != nil {
				return err
			}
			logger := logging.New(logging.Options{
				Path: cfg.Log.Path, MaxSizeMB: cfg.Log.MaxSizeMB,
				MaxBackups: cfg.Log.MaxBackups, MaxAgeDays: cfg.Log.MaxAgeDays,
			})
			return engine.Run(context.Background(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "override the configured PRNG seed (0 means keep config)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "override the configured worker count (0 means keep config)")
	cmd.Flags().IntVar(&flags.budget, "budget", 0, "override the configured statement budget (0 means keep config)")
	return cmd
}

// replayCmd reruns a single worker at a fixed seed with no other workers
// racing it, the reproduction path for a logged oracle failure: same seed,
// same deterministic PRNG sequence (I7), same statements.
func replayCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rerun a single-worker session at a fixed seed to reproduce a logged failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadWithOverrides(flags)
			if err != nil {
				return err
			}
			cfg.Workers = 1
			logger := logging.New(logging.Options{Path: ""})
			return engine.Run(context.Background(), cfg, logger)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "the seed to replay (required)")
	cmd.Flags().IntVar(&flags.budget, "budget", 0, "override the configured statement budget (0 means keep config)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

// checkCmd validates a config file without connecting to any client,
// letting a CI step catch a malformed config before a real run starts.
func checkCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a config file without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("config OK: seed=%d workers=%d budget=%d client=%s\n",
				cfg.Seed, cfg.Workers, cfg.StatementBudget, cfg.Client.Target)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	return cmd
}

func loadWithOverrides(flags runFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.seed != 0 {
		cfg.Seed = flags.seed
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.budget != 0 {
		cfg.StatementBudget = flags.budget
	}
	return cfg, cfg.Validate()
}
