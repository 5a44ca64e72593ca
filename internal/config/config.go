package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tweetdig/internal/sentiment"
)

// Config is the application's configuration model: provider credentials,
// search defaults, tokenizer options, the optional sentiment provider, and
// storage.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Search      SearchConfig      `yaml:"search"`
	Tokenizer   TokenizerConfig   `yaml:"tokenizer"`
	Sentiment   sentiment.Config  `yaml:"sentiment"`
	Storage     StorageConfig     `yaml:"storage"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type CredentialsConfig struct {
	// Consumer key/secret for the app-only token exchange. If empty, read
	// from env TWITTER_API_KEY / TWITTER_API_SECRET.
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`
	// Pre-obtained bearer token; skips the exchange. Env TWITTER_BEARER_TOKEN.
	BearerToken string `yaml:"bearerToken"`
}

type SearchConfig struct {
	// Result count used when the CLI does not give one.
	DefaultCount int `yaml:"defaultCount"`
}

type TokenizerConfig struct {
	// Lowercase tokens during normalization (emoticons keep their casing).
	FoldCase bool `yaml:"foldCase"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath"`
}

type MetricsConfig struct {
	// Listen address for /metrics; empty disables the server.
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Search:    SearchConfig{DefaultCount: 15},
		Tokenizer: TokenizerConfig{FoldCase: true},
		Sentiment: sentiment.Config{Provider: "none", Model: ""},
		Storage:   StorageConfig{DBPath: "./twitter.db"},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Credentials.APIKey == "" {
		c.Credentials.APIKey = os.Getenv("TWITTER_API_KEY")
	}
	if c.Credentials.APISecret == "" {
		c.Credentials.APISecret = os.Getenv("TWITTER_API_SECRET")
	}
	if c.Credentials.BearerToken == "" {
		c.Credentials.BearerToken = os.Getenv("TWITTER_BEARER_TOKEN")
	}
	if c.Sentiment.APIKey == "" && c.Sentiment.Provider == "openai" {
		c.Sentiment.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
