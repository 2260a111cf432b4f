package sportsense

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized at startup.
const (
	EnvConfigPath   = "SPORTSENSE_CONFIG"
	EnvDBPath       = "SPORTSENSE_DB"
	EnvLanguage     = "SPORTSENSE_LANG"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvOpenAIBase   = "OPENAI_API_BASE"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Config holds all process-wide settings. It is constructed once at
// startup and passed to component constructors; it is never mutated
// afterwards.
type Config struct {
	// Language is the default output language for reports and chat.
	Language string `yaml:"language"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"dbPath"`

	Sources []Source      `yaml:"sources"`
	LLM     LLMConfig     `yaml:"llm"`
	Chat    ChatConfig    `yaml:"chat"`
	Collect CollectConfig `yaml:"collect"`
}

// LLMConfig selects and configures the completion and embedding backends.
type LLMConfig struct {
	// Provider is "openai" (any OpenAI-compatible endpoint, including
	// Ollama's /v1 API) or "gemini".
	Provider string `yaml:"provider"`

	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embeddingModel"`

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string `yaml:"baseUrl"`
	APIKey  string `yaml:"apiKey"`

	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// ChatConfig controls retrieval and conversation memory for chat sessions.
type ChatConfig struct {
	// TopK is the number of nearest entries retrieved per question.
	TopK int `yaml:"topK"`

	// Window is the maximum number of retained conversation turns.
	Window int `yaml:"window"`
}

// CollectConfig controls the collect stage.
type CollectConfig struct {
	// Concurrency bounds the worker pool across sources.
	Concurrency int `yaml:"concurrency"`

	// RPS is the per-domain request rate limit.
	RPS float64 `yaml:"rps"`

	// DaysBack limits how old a discovered article may be.
	DaysBack int `yaml:"daysBack"`
}

// DefaultConfig returns a Config with documented defaults applied.
func DefaultConfig() Config {
	return Config{
		Language: "English",
		DBPath:   "sportsense.db",
		LLM: LLMConfig{
			Provider:    "openai",
			Temperature: 0.2,
			MaxTokens:   2048,
		},
		Chat:    ChatConfig{TopK: 5, Window: 8},
		Collect: CollectConfig{Concurrency: 4, RPS: 1.0, DaysBack: 30},
	}
}

// LoadConfig reads YAML configuration from path (if non-empty) over the
// defaults and applies environment overrides. The returned Config is
// validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, Errorf(ECONFIG, "cannot read config %s: %v", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, Errorf(ECONFIG, "cannot parse config %s: %v", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "gemini":
			c.LLM.APIKey = os.Getenv(EnvGeminiAPIKey)
		default:
			c.LLM.APIKey = os.Getenv(EnvOpenAIKey)
		}
	}
	if v := os.Getenv(EnvOpenAIBase); v != "" && c.LLM.BaseURL == "" {
		c.LLM.BaseURL = v
	}
}

// applyDefaults fills zero values left by a sparse YAML file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
	// Model defaults depend on the provider, so they cannot live in
	// DefaultConfig.
	if c.LLM.Model == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.Model = "gemini-2.5-flash"
		} else {
			c.LLM.Model = "gpt-4o-mini"
		}
	}
	if c.LLM.EmbeddingModel == "" {
		if c.LLM.Provider == "gemini" {
			c.LLM.EmbeddingModel = "gemini-embedding-001"
		} else {
			c.LLM.EmbeddingModel = "nomic-embed-text"
		}
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if c.Chat.TopK == 0 {
		c.Chat.TopK = def.Chat.TopK
	}
	if c.Chat.Window == 0 {
		c.Chat.Window = def.Chat.Window
	}
	if c.Collect.Concurrency == 0 {
		c.Collect.Concurrency = def.Collect.Concurrency
	}
	if c.Collect.RPS == 0 {
		c.Collect.RPS = def.Collect.RPS
	}
	if c.Collect.DaysBack == 0 {
		c.Collect.DaysBack = def.Collect.DaysBack
	}
}

// Validate returns ECONFIG if the configuration is unusable. It is called
// at startup before any stage runs.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return Errorf(ECONFIG, "unsupported llm provider %q", c.LLM.Provider)
	}
	if c.Chat.TopK < 1 {
		return Errorf(ECONFIG, "chat topK must be positive")
	}
	if c.Collect.Concurrency < 1 {
		return Errorf(ECONFIG, "collect concurrency must be positive")
	}
	seen := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		if err := c.Sources[i].Validate(); err != nil {
			return Errorf(ECONFIG, "source %d: %s", i, ErrorMessage(err))
		}
		if seen[c.Sources[i].Name] {
			return Errorf(ECONFIG, "duplicate source name %q", c.Sources[i].Name)
		}
		seen[c.Sources[i].Name] = true
	}
	return nil
}
