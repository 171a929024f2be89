package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pharma-intel",
	Short: "Pharmaceutical market intelligence pipeline",
	Long:  "Structures research questions, routes them to specialized analysis agents over local datasets, and synthesizes a decision-ready report via tiered Claude models.",
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
