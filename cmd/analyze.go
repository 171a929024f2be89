package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arpriyadarshi/ey-pharma/internal/model"
)

var (
	analyzeQuery string
	analyzeDocs  []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the research pipeline for a single query",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := initPipeline()
		if err != nil {
			return eris.Wrap(err, "init pipeline")
		}

		docs := make([]model.Document, 0, len(analyzeDocs))
		for _, path := range analyzeDocs {
			content, err := os.ReadFile(path)
			if err != nil {
				return eris.Wrapf(err, "read document %s", path)
			}
			docs = append(docs, model.Document{
				Name:    filepath.Base(path),
				Content: string(content),
			})
		}

		result, err := p.Run(ctx, analyzeQuery, docs)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("analysis complete",
			zap.String("run_id", result.RunID),
			zap.Int("agents", len(result.Outputs)),
			zap.Int("input_tokens", result.Usage.InputTokens),
			zap.Int("output_tokens", result.Usage.OutputTokens),
		)

		// Print result JSON to stdout
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeQuery, "query", "", "research question (required)")
	analyzeCmd.Flags().StringArrayVar(&analyzeDocs, "doc", nil, "internal document to include (repeatable)")
	_ = analyzeCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(analyzeCmd)
}
