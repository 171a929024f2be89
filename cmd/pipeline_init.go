package main

import (
	"github.com/arpriyadarshi/ey-pharma/internal/dataset"
	"github.com/arpriyadarshi/ey-pharma/internal/pipeline"
	anthropicpkg "github.com/arpriyadarshi/ey-pharma/pkg/anthropic"
)

// initLoader builds the dataset loader from config, reading the manifest
// override when one is configured.
func initLoader() (*dataset.Loader, error) {
	var manifest dataset.Manifest
	if cfg.Data.Manifest != "" {
		m, err := dataset.LoadManifest(cfg.Data.Manifest)
		if err != nil {
			return nil, err
		}
		manifest = m
	}
	return dataset.NewLoader(cfg.Data.Dir, manifest), nil
}

// initPipeline wires the Anthropic client and dataset loader into a
// ready-to-run pipeline.
func initPipeline() (*pipeline.Pipeline, error) {
	loader, err := initLoader()
	if err != nil {
		return nil, err
	}

	ai := anthropicpkg.NewClient(cfg.Anthropic.Key,
		anthropicpkg.WithRateLimit(cfg.Anthropic.RequestsPerSecond, 1),
	)

	return pipeline.New(cfg, ai, loader), nil
}
