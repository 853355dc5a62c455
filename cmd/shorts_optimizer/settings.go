package main

import (
	"context"
	"fmt"

	"github.com/jonathan/shorts-optimizer/internal/config"
	"github.com/jonathan/shorts-optimizer/internal/llm"
	"github.com/jonathan/shorts-optimizer/internal/optimizer"
	"github.com/jonathan/shorts-optimizer/internal/session"
)

// loadSettings reads the optional config file and applies persistent flags on top
func loadSettings() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	merged := cfg.MergeWithDefaults(config.Config{Port: config.DefaultPort})
	if modelFlag != "" {
		merged.Model = modelFlag
	}
	if verboseFlag {
		merged.Verbose = true
	}
	return merged, nil
}

// newOptimizer builds the Gemini-backed optimizer. The returned func releases the client.
// Tests replace it with a fake.
var newOptimizer = func(ctx context.Context, cfg config.Config) (session.Optimizer, func() error, error) {
	apiKey, err := config.ResolveAPIKey(apiKeyFlag, &cfg)
	if err != nil {
		return nil, nil, err
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}
	if cfg.Temperature != nil {
		llmConfig = llmConfig.WithTemperature(*cfg.Temperature)
	}

	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	opt := optimizer.New(client,
		optimizer.WithTier(llm.TierStandard),
		optimizer.WithTimeout(cfg.Timeout()),
		optimizer.WithVerbose(cfg.Verbose),
	)
	return opt, client.Close, nil
}
