// Package config loads the generator settings from a config file and the environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chassisconfig "github.com/ai8future/chassis-go/v5/config"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.json"

	ProviderOpenAI    = "openai"
	ProviderDeepSeek  = "deepseek"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"
)

// Config holds everything the server and the terminal mode need.
type Config struct {
	LLM        LLMConfig `json:"llm" yaml:"llm"`
	ServerAddr string    `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	LogMode    string    `json:"log_mode,omitempty" yaml:"log_mode,omitempty"`
}

// LLMConfig 模型配置。API key 只从环境变量读取，不落盘。
type LLMConfig struct {
	Provider         string  `json:"provider,omitempty" yaml:"provider,omitempty"`
	TitleModel       string  `json:"title_model,omitempty" yaml:"title_model,omitempty"`
	ArticleModel     string  `json:"article_model,omitempty" yaml:"article_model,omitempty"`
	BaseURL          string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	TitleMaxTokens   int     `json:"title_max_tokens,omitempty" yaml:"title_max_tokens,omitempty"`
	ArticleMaxTokens int     `json:"article_max_tokens,omitempty" yaml:"article_max_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TimeoutSeconds   int     `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	APIKey           string  `json:"-" yaml:"-"`
}

// EnvOverrides are applied over the file values. All fields are optional here;
// the credential requirement is checked in Validate so it can be reported as a ConfigError.
type EnvOverrides struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY" required:"false"`
	LLMAPIKey    string `env:"LLM_API_KEY" required:"false"`
	Provider     string `env:"LLM_PROVIDER" required:"false"`
	BaseURL      string `env:"LLM_BASE_URL" required:"false"`
	TitleModel   string `env:"LLM_TITLE_MODEL" required:"false"`
	ArticleModel string `env:"LLM_ARTICLE_MODEL" required:"false"`
	ServerAddr   string `env:"SERVER_ADDR" required:"false"`
	LogMode      string `env:"LOG_MODE" required:"false"`
}

// ConfigError is fatal: the process must stop before serving any step.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LLM: LLMConfig{
			Provider:         ProviderOpenAI,
			TitleModel:       "gpt-4",
			ArticleModel:     "gpt-3.5-turbo",
			TitleMaxTokens:   1500,
			ArticleMaxTokens: 4000,
			Temperature:      0.7,
			TimeoutSeconds:   60,
		},
		ServerAddr: ":8080",
		LogMode:    "dev",
	}
}

// Load merges defaults < file < environment and validates the result.
// A missing file is tolerated unless required is set (i.e. the path was given explicitly).
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path != "" {
		err := LoadFile(path, &cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads JSON, or YAML when the extension says so, over the values already in cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ConfigError{Field: path, Msg: err.Error()}
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return &ConfigError{Field: path, Msg: err.Error()}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	env := chassisconfig.MustLoad[EnvOverrides]()

	if env.Provider != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(env.Provider))
	}
	if env.BaseURL != "" {
		cfg.LLM.BaseURL = env.BaseURL
	}
	if env.TitleModel != "" {
		cfg.LLM.TitleModel = env.TitleModel
	}
	if env.ArticleModel != "" {
		cfg.LLM.ArticleModel = env.ArticleModel
	}
	if env.ServerAddr != "" {
		cfg.ServerAddr = env.ServerAddr
	}
	if env.LogMode != "" {
		cfg.LogMode = env.LogMode
	}

	// LLM_API_KEY wins for non-OpenAI providers; OpenAI falls back to it too.
	switch cfg.LLM.Provider {
	case ProviderOpenAI, "":
		cfg.LLM.APIKey = firstNonEmpty(env.OpenAIAPIKey, env.LLMAPIKey)
	default:
		cfg.LLM.APIKey = firstNonEmpty(env.LLMAPIKey, env.OpenAIAPIKey)
	}
}

// Validate reports the first problem as a ConfigError.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	case ProviderDeepSeek:
		// DeepSeek 走 OpenAI 兼容接口，必须给出 base_url。
		if c.LLM.BaseURL == "" {
			return &ConfigError{Field: "llm.base_url", Msg: "provider deepseek requires an OpenAI-compatible base_url"}
		}
	case ProviderOllama, ProviderMock:
	default:
		return &ConfigError{Field: "llm.provider", Msg: fmt.Sprintf("provider %q not supported", c.LLM.Provider)}
	}
	if c.RequiresAPIKey() && strings.TrimSpace(c.LLM.APIKey) == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Msg: "set OPENAI_API_KEY (or LLM_API_KEY) in the environment"}
	}
	if c.LLM.TitleModel == "" || c.LLM.ArticleModel == "" {
		return &ConfigError{Field: "llm.title_model/llm.article_model", Msg: "model names are required"}
	}
	if c.LLM.TitleMaxTokens <= 0 || c.LLM.ArticleMaxTokens <= 0 {
		return &ConfigError{Field: "llm.*_max_tokens", Msg: "token budgets must be > 0"}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return &ConfigError{Field: "llm.temperature", Msg: "must be in [0,2]"}
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return &ConfigError{Field: "llm.timeout_seconds", Msg: "must be > 0"}
	}
	return nil
}

// RequiresAPIKey is false only for keyless local providers.
func (c Config) RequiresAPIKey() bool {
	return c.LLM.Provider != ProviderOllama && c.LLM.Provider != ProviderMock
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
