package userconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`

	// Rate limit knobs. Zero values fall back to defaults at the call site.
	MaxCalls   int     `json:"max_calls,omitempty"`
	PeriodSecs float64 `json:"period_secs,omitempty"`
}

// Load reads the config file if it exists and then applies environment
// overrides. A missing file is not an error; env-only setups are common.
func Load() (Config, error) {
	path, err := pathForUser()
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	b, err := os.ReadFile(path)
	if err == nil {
		if uerr := json.Unmarshal(b, &cfg); uerr != nil {
			return Config{}, uerr
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("DEEPSEEK_API_BASE")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DEEPSEEK_MODEL")); v != "" {
		cfg.Model = v
	}
}

func Save(cfg Config) error {
	path, err := pathForUser()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func Path() (string, error) {
	return pathForUser()
}

// Dir returns the config directory, which also holds the log file.
func Dir() (string, error) {
	path, err := pathForUser()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func pathForUser() (string, error) {
	if v := strings.TrimSpace(os.Getenv("DEEPSEEK_ENGINEER_HOME")); v != "" {
		return filepath.Join(v, "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".deepseek-engineer", "config.json"), nil
}
