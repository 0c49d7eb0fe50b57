package userconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSaveConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEEPSEEK_ENGINEER_HOME", dir)
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_BASE", "")
	t.Setenv("DEEPSEEK_MODEL", "")

	cfg := Config{APIKey: "abc", Model: "deepseek-reasoner", MaxCalls: 5, PeriodSecs: 1}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.APIKey != cfg.APIKey {
		t.Fatalf("api key mismatch: got %q want %q", loaded.APIKey, cfg.APIKey)
	}
	if loaded.Model != cfg.Model {
		t.Fatalf("model mismatch: got %q want %q", loaded.Model, cfg.Model)
	}
	if loaded.MaxCalls != cfg.MaxCalls {
		t.Fatalf("max calls mismatch: got %d want %d", loaded.MaxCalls, cfg.MaxCalls)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != filepath.Join(dir, "config.json") {
		t.Fatalf("path mismatch: got %q", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("json: %v", err)
	}
	if raw["api_key"] != cfg.APIKey {
		t.Fatalf("json api key mismatch")
	}
	if raw["model"] != cfg.Model {
		t.Fatalf("json model mismatch")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DEEPSEEK_ENGINEER_HOME", t.TempDir())
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Setenv("DEEPSEEK_API_BASE", "")
	t.Setenv("DEEPSEEK_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DEEPSEEK_ENGINEER_HOME", dir)

	if err := Save(Config{APIKey: "from-file", Model: "deepseek-chat"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("DEEPSEEK_API_KEY", "from-env")
	t.Setenv("DEEPSEEK_API_BASE", "https://example.test")
	t.Setenv("DEEPSEEK_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("api key: got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "https://example.test" {
		t.Fatalf("base url: got %q", cfg.BaseURL)
	}
	if cfg.Model != "deepseek-chat" {
		t.Fatalf("model: got %q", cfg.Model)
	}
}
