package config

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweetdig.yaml")
	cfg := Default()
	cfg.Credentials.APIKey = "k"
	cfg.Credentials.APISecret = "s"
	cfg.Search.DefaultCount = 7
	cfg.Sentiment.Provider = "lexicon"
	cfg.Storage.DBPath = "/tmp/x.db"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Credentials.APIKey != "k" || got.Credentials.APISecret != "s" {
		t.Fatalf("credentials mismatch: %+v", got.Credentials)
	}
	if got.Search.DefaultCount != 7 || got.Sentiment.Provider != "lexicon" || got.Storage.DBPath != "/tmp/x.db" {
		t.Fatalf("config mismatch: %+v", got)
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "envkey")
	t.Setenv("TWITTER_API_SECRET", "envsecret")
	t.Setenv("TWITTER_BEARER_TOKEN", "envtok")
	t.Setenv("OPENAI_API_KEY", "oai")
	cfg := Default()
	cfg.Sentiment.Provider = "openai"
	cfg.ResolveEnv()
	if cfg.Credentials.APIKey != "envkey" || cfg.Credentials.APISecret != "envsecret" || cfg.Credentials.BearerToken != "envtok" {
		t.Fatalf("credentials not resolved: %+v", cfg.Credentials)
	}
	if cfg.Sentiment.APIKey != "oai" {
		t.Fatalf("sentiment key not resolved: %+v", cfg.Sentiment)
	}
}

func TestResolveEnvDoesNotOverride(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "envkey")
	cfg := Default()
	cfg.Credentials.APIKey = "explicit"
	cfg.ResolveEnv()
	if cfg.Credentials.APIKey != "explicit" {
		t.Fatalf("explicit value overridden: %q", cfg.Credentials.APIKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Tokenizer.FoldCase {
		t.Fatal("fold case should default on")
	}
	if cfg.Sentiment.Provider != "none" {
		t.Fatalf("sentiment default %q, want none", cfg.Sentiment.Provider)
	}
	if cfg.Storage.DBPath == "" || cfg.Search.DefaultCount <= 0 {
		t.Fatalf("incomplete defaults: %+v", cfg)
	}
}
