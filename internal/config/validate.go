package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "anthropic":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required when llm.provider is %q", c.LLM.Provider)
		}
	case "mock":
		// no credentials needed
	default:
		return fmt.Errorf("llm.provider must be \"anthropic\" or \"mock\" (got %q)", c.LLM.Provider)
	}

	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	return nil
}

func (p *PipelineConfig) validate() error {
	if p.EnrichBatchSize <= 0 {
		return fmt.Errorf("enrich_batch_size must be > 0 (got %d)", p.EnrichBatchSize)
	}
	if p.AssessBatchSize <= 0 {
		return fmt.Errorf("assess_batch_size must be > 0 (got %d)", p.AssessBatchSize)
	}
	if p.RankBatchSize <= 0 {
		return fmt.Errorf("rank_batch_size must be > 0 (got %d)", p.RankBatchSize)
	}
	if p.PedestrianThreshold < 1 || p.PedestrianThreshold > 10 {
		return fmt.Errorf("pedestrian_threshold must be within 1..10 (got %d)", p.PedestrianThreshold)
	}
	return nil
}
