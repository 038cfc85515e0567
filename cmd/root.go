package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qmat-labs/corridor-cli/internal/config"
	"github.com/qmat-labs/corridor-cli/internal/crs"
	"github.com/qmat-labs/corridor-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "corridor-cli",
	Short: "Avoided-crossing diagnostics for corridor candidate cases",
	Long:  "Computes two-level mixing quantities (R, sin²φ, Δmix), thermal diagnostics, and corridor risk scores for candidate cases from reference CSV tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// loadClassifier builds the risk classifier from the configured rule file,
// falling back to the built-in placeholder thresholds.
func loadClassifier() (*crs.Classifier, error) {
	if cfg.Classifier.RulesPath == "" {
		return crs.Default(), nil
	}
	return crs.LoadRules(cfg.Classifier.RulesPath)
}

// openStore opens and migrates the configured run store.
func openStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
