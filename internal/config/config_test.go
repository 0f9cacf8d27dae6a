package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.HTTP.Port != 8080 || cfg.HTTP.Host != "0.0.0.0" {
		t.Fatalf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Pipeline.MinFollowers != 25 || cfg.Pipeline.MinStatuses != 100 {
		t.Fatalf("unexpected activity thresholds: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.MinFollowing != 10 || cfg.Pipeline.MinFollowedBy != 200 {
		t.Fatalf("unexpected trim thresholds: %+v", cfg.Pipeline)
	}
	if len(cfg.Pipeline.ERGMCutoffs) != 2 || cfg.Pipeline.ERGMCutoffs[0] != 0.66 {
		t.Fatalf("unexpected cutoffs: %v", cfg.Pipeline.ERGMCutoffs)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestActiveSince(t *testing.T) {
	p := Defaults().Pipeline
	want := time.Date(2016, time.November, 6, 0, 0, 0, 0, time.UTC)
	if got := p.ActiveSince(); !got.Equal(want) {
		t.Fatalf("ActiveSince = %v, want %v", got, want)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poliscope.yaml")
	body := `
http:
  port: 9090
pipeline:
  min_followed_by: 50
  ergm_cutoffs: [0.8]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("yaml port not applied: %d", cfg.HTTP.Port)
	}
	if cfg.Pipeline.MinFollowedBy != 50 {
		t.Fatalf("yaml threshold not applied: %d", cfg.Pipeline.MinFollowedBy)
	}
	if len(cfg.Pipeline.ERGMCutoffs) != 1 || cfg.Pipeline.ERGMCutoffs[0] != 0.8 {
		t.Fatalf("yaml cutoffs not applied: %v", cfg.Pipeline.ERGMCutoffs)
	}
	// Untouched sections keep their defaults.
	if cfg.Pipeline.MinFollowers != 25 {
		t.Fatalf("unrelated default lost: %d", cfg.Pipeline.MinFollowers)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected defaults, got port %d", cfg.HTTP.Port)
	}
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExplicitPathBeatsConfigEnvVar(t *testing.T) {
	envFile := writeConfig(t, "env.yaml", "http:\n  port: 9091\n")
	flagFile := writeConfig(t, "flag.yaml", "http:\n  port: 9092\n")
	t.Setenv("POLISCOPE_CONFIG", envFile)

	cfg, err := Load(flagFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9092 {
		t.Fatalf("explicit path must win over POLISCOPE_CONFIG, got port %d", cfg.HTTP.Port)
	}
}

func TestConfigEnvVarUsedWhenNoPathGiven(t *testing.T) {
	envFile := writeConfig(t, "env.yaml", "http:\n  port: 9091\n")
	t.Setenv("POLISCOPE_CONFIG", envFile)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9091 {
		t.Fatalf("POLISCOPE_CONFIG not applied, got port %d", cfg.HTTP.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("GRAPH_URI", "neo4j://graph:7687")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Fatalf("env port not applied: %d", cfg.HTTP.Port)
	}
	if cfg.Graph.URI != "neo4j://graph:7687" {
		t.Fatalf("env graph uri not applied: %q", cfg.Graph.URI)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Fatalf("env timeout not applied: %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("env log format not applied: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.HTTP.Port = 0 }},
		{"missing election date", func(c *Config) { c.Pipeline.ElectionDate = time.Time{} }},
		{"non-positive window", func(c *Config) { c.Pipeline.ActivityWindowDays = 0 }},
		{"negative followers threshold", func(c *Config) { c.Pipeline.MinFollowers = -1 }},
		{"negative statuses threshold", func(c *Config) { c.Pipeline.MinStatuses = -1 }},
		{"negative trim threshold", func(c *Config) { c.Pipeline.MinFollowedBy = -1 }},
		{"cutoff at one", func(c *Config) { c.Pipeline.ERGMCutoffs = []float64{1.0} }},
	}
	for _, tc := range cases {
		cfg := Defaults()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
