package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	CSVPath    string `toml:"csv_path"`
	ReportsDir string `toml:"reports_dir"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	LLM    LLMConfig    `toml:"llm"`
}

// Default returns the configuration used when no config file is present:
// entries from journal_entries.csv, reports under reports/, summaries from
// Ollama Cloud (degraded to placeholders until an API key is set).
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			CSVPath:    "journal_entries.csv",
			ReportsDir: "reports",
		},
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "gpt-oss:20b-cloud",
			BaseURL:        "https://ollama.com",
			TimeoutSeconds: 60,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}
