package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmr-conservancy/inat-survey/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "inat-survey",
	Short: "Species observation survey for an iNaturalist place",
	Long:  "Collects species observation counts for a place, classifies each taxon into kingdom and phylum, builds per-species monthly histograms, and writes a sorted CSV report.",
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

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
