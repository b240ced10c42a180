package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultModel is used when OPENAI_MODEL is not set.
const DefaultModel = "gpt-3.5-turbo"

type Config struct {
	ResultsDir string `json:"results_dir"`

	// AI commentary
	LLMProvider    string `json:"llm_provider"` // "openai" (any compatible endpoint) or "deepseek"
	APIKey         string `json:"api_key"`
	BaseURL        string `json:"base_url"`
	Model          string `json:"model"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	ScanHorizonDays int  `json:"scan_horizon_days"`
	CacheEnabled    bool `json:"cache_enabled"`
	Debug           bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ResultsDir: filepath.Join(currentDir, "results"),

		LLMProvider: "openai",
		Model:       DefaultModel,

		ScanHorizonDays: 10,
		CacheEnabled:    true,
		Debug:           false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.APIKey = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		c.Model = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}
	if val := os.Getenv("LHB_SCAN_HORIZON"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			c.ScanHorizonDays = n
		}
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("DEBUG"); val != "" {
		if debug, err := strconv.ParseBool(val); err == nil {
			c.Debug = debug
		}
	}
}

// HasAICredentials reports whether the commentary call can be attempted at
// all. The openai provider works against any compatible endpoint and needs
// both a key and a base URL; deepseek only needs its key.
func (c *Config) HasAICredentials() bool {
	if c.LLMProvider == "deepseek" {
		return c.DeepSeekAPIKey != ""
	}
	return c.APIKey != "" && c.BaseURL != ""
}

// SetupInstructions is shown instead of calling the AI when credentials are
// missing.
func (c *Config) SetupInstructions() string {
	return `请先配置 AI 密钥（.env 或环境变量）:

  OPENAI_API_KEY=sk-...
  OPENAI_BASE_URL=https://api.openai.com/v1   # 或其他兼容的 Base URL
  OPENAI_MODEL=gpt-3.5-turbo                  # 可选

或使用 DeepSeek:

  LLM_PROVIDER=deepseek
  DEEPSEEK_API_KEY=sk-...`
}

func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.ResultsDir, 0755)
}
