package config

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := mustLoad(t)

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Judge.Timeout != 30*time.Second {
		t.Errorf("expected judge timeout 30s, got %v", cfg.Judge.Timeout)
	}
	if cfg.Problems.Source != SourceCatalog || cfg.Wrappers.Source != SourceCatalog {
		t.Errorf("expected catalog sources, got %q and %q", cfg.Problems.Source, cfg.Wrappers.Source)
	}
	if cfg.Worker.PoolSize != 4 {
		t.Errorf("expected pool size 4, got %d", cfg.Worker.PoolSize)
	}
	if cfg.Judge.Tracing || cfg.Problems.WatchCatalog {
		t.Error("tracing and catalog watching must be off by default")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("JUDGE_URL", "http://judge.internal:2358")
	t.Setenv("JUDGE_API_KEY", "k")
	t.Setenv("JUDGE_TIMEOUT", "5s")
	t.Setenv("JUDGE_TRACING", "true")
	t.Setenv("WRAPPER_SOURCE", "s3")
	t.Setenv("WRAPPER_BUCKET", "gauntlet-wrappers")
	t.Setenv("WORKER_POOL_SIZE", "8")
	t.Setenv("PROBLEM_CATALOG_WATCH", "true")

	cfg := mustLoad(t)

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Judge.URL != "http://judge.internal:2358" || cfg.Judge.APIKey != "k" {
		t.Errorf("unexpected judge settings %+v", cfg.Judge)
	}
	if cfg.Judge.Timeout != 5*time.Second {
		t.Errorf("expected judge timeout 5s, got %v", cfg.Judge.Timeout)
	}
	if !cfg.Judge.Tracing {
		t.Error("expected tracing on")
	}
	if cfg.Wrappers.Source != SourceS3 || cfg.Wrappers.Bucket != "gauntlet-wrappers" {
		t.Errorf("unexpected wrapper settings %+v", cfg.Wrappers)
	}
	if cfg.Worker.PoolSize != 8 {
		t.Errorf("expected pool size 8, got %d", cfg.Worker.PoolSize)
	}
	if !cfg.Problems.WatchCatalog {
		t.Error("expected catalog watching on")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown problem source": {"PROBLEM_SOURCE": "mongo"},
		"unknown wrapper source": {"WRAPPER_SOURCE": "ftp"},
		"s3 without bucket":      {"WRAPPER_SOURCE": "s3"},
		"zero pool":              {"WORKER_POOL_SIZE": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
