// Package sentiment scores text polarity. Scoring is an optional pipeline
// capability: the factory returns a nil Scorer when no provider is
// configured and callers skip the stage entirely.
package sentiment

import (
	"context"
	"fmt"
	"strings"
)

// Scorer maps text to a polarity in [-1, 1].
type Scorer interface {
	Name() string
	Score(ctx context.Context, text string) (float64, error)
}

// Config selects and configures a scoring provider.
type Config struct {
	// Provider name: "none", "lexicon", or "openai". Empty means none.
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// If empty, read from env OPENAI_API_KEY when the provider is openai.
	APIKey string `yaml:"apiKey"`
}

// New builds a scorer from config. A nil Scorer with a nil error means
// scoring is disabled.
func New(cfg Config) (Scorer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "lexicon":
		return NewLexicon(), nil
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown sentiment provider: %s (supported: none, lexicon, openai)", cfg.Provider)
	}
}

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
