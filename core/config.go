package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported text-generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default values used when neither the config file nor the environment sets a key.
const (
	DefaultPDFPath        = "financial_report.pdf"
	DefaultOutputDir      = "."
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultMaxPromptChars = 8000
	DefaultHistoryDBPath  = ".finsum/history.db"
	DefaultLogFile        = "finsum.log"
)

// Config holds all configuration values
type Config struct {
	// Input / output
	PDFPath   string `yaml:"pdf_path"`
	OutputDir string `yaml:"output_dir"`

	// Text generation
	Provider         string  `yaml:"provider"`
	GeminiAPIKey     string  `yaml:"gemini_api_key"`
	GeminiModel      string  `yaml:"gemini_model"`
	OpenAIAPIKey     string  `yaml:"openai_api_key"`
	OpenAIAPIBaseURL string  `yaml:"openai_api_base_url"`
	OpenAIModel      string  `yaml:"openai_model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int     `yaml:"max_tokens"`
	MaxPromptChars   int     `yaml:"max_prompt_chars"`

	// Retry policy for the generation call
	MaxRetries      int           `yaml:"max_retries"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	RetryMultiplier float64       `yaml:"retry_multiplier"`
	AITimeout       time.Duration `yaml:"ai_timeout"`

	// Outputs
	ShowChart bool `yaml:"show_chart"`
	ExportCSV bool `yaml:"export_csv"`

	// Run history
	HistoryEnabled bool   `yaml:"history_enabled"`
	HistoryDBPath  string `yaml:"history_db_path"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	DevMode  bool   `yaml:"dev_mode"`
}

// DefaultConfig returns the configuration used before any file or
// environment overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		PDFPath:         DefaultPDFPath,
		OutputDir:       DefaultOutputDir,
		Provider:        ProviderGemini,
		GeminiModel:     DefaultGeminiModel,
		OpenAIModel:     DefaultOpenAIModel,
		Temperature:     0.2,
		MaxTokens:       2048,
		MaxPromptChars:  DefaultMaxPromptChars,
		MaxRetries:      DefaultMaxRetries,
		RetryDelay:      DefaultRetryDelay,
		RetryMultiplier: 1.0,
		AITimeout:       120 * time.Second,
		ShowChart:       true,
		ExportCSV:       false,
		HistoryEnabled:  true,
		HistoryDBPath:   DefaultHistoryDBPath,
		LogFile:         DefaultLogFile,
		LogLevel:        "info",
	}
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// A missing file is not an error; the returned error is informational.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		return ErrEnvFileMissing(".env")
	}
	return nil
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// and environment variables, in increasing order of precedence, then
// validates it. configPath may be empty; FINSUM_CONFIG is consulted in that case.
func LoadConfig(configPath string) (*Config, error) {
	cfg, err := ReadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig is LoadConfig without validation. Callers that apply their own
// overrides call Validate afterwards.
func ReadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = os.Getenv("FINSUM_CONFIG")
	}
	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// mergeFile decodes a YAML file over the current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrConfigFile(path, err.Error())
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return ErrConfigFile(path, err.Error())
	}
	return nil
}

// applyEnv overrides values with any environment variables that are set.
func (c *Config) applyEnv() {
	c.PDFPath = GetEnvOrDefault("PDF_PATH", c.PDFPath)
	c.OutputDir = GetEnvOrDefault("OUTPUT_DIR", c.OutputDir)

	c.Provider = strings.ToLower(GetEnvOrDefault("LLM_PROVIDER", c.Provider))
	c.GeminiAPIKey = GetEnvOrDefault("GEMINI_API_KEY", c.GeminiAPIKey)
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}
	c.GeminiModel = GetEnvOrDefault("GEMINI_MODEL", c.GeminiModel)
	c.OpenAIAPIKey = GetEnvOrDefault("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIAPIBaseURL = GetEnvOrDefault("OPENAI_API_BASE_URL", c.OpenAIAPIBaseURL)
	c.OpenAIModel = GetEnvOrDefault("OPENAI_MODEL", c.OpenAIModel)
	c.Temperature = ParseFloat64Env("LLM_TEMPERATURE", c.Temperature)
	c.MaxTokens = ParseIntEnv("LLM_MAX_TOKENS", c.MaxTokens)
	c.MaxPromptChars = ParseIntEnv("MAX_PROMPT_CHARS", c.MaxPromptChars)

	c.MaxRetries = ParseIntEnv("MAX_RETRIES", c.MaxRetries)
	c.RetryDelay = ParseMillisEnv("RETRY_DELAY_MS", c.RetryDelay)
	c.RetryMultiplier = ParseFloat64Env("RETRY_MULTIPLIER", c.RetryMultiplier)
	c.AITimeout = ParseDurationEnv("AI_TIMEOUT", int(c.AITimeout/time.Second))

	c.ShowChart = ParseBoolEnv("SHOW_CHART", c.ShowChart)
	c.ExportCSV = ParseBoolEnv("EXPORT_CSV", c.ExportCSV)

	c.HistoryEnabled = ParseBoolEnv("HISTORY_ENABLED", c.HistoryEnabled)
	c.HistoryDBPath = GetEnvOrDefault("HISTORY_DB_PATH", c.HistoryDBPath)

	c.LogFile = GetEnvOrDefault("LOG_FILE", c.LogFile)
	c.LogLevel = GetEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.DevMode = ParseBoolEnv("DEV_MODE", c.DevMode)
}

// Validate checks values that would make the pipeline misbehave.
// Missing API keys are not checked here; the generator constructor reports
// them so that a missing key is a client construction failure.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return ErrUnknownProvider(c.Provider)
	}
	if c.MaxRetries < 1 {
		return ErrInvalidValue("MAX_RETRIES", fmt.Sprintf("%d", c.MaxRetries), "must be at least 1")
	}
	if c.RetryDelay < 0 {
		return ErrInvalidValue("RETRY_DELAY_MS", c.RetryDelay.String(), "must not be negative")
	}
	if c.RetryMultiplier < 1 {
		return ErrInvalidValue("RETRY_MULTIPLIER", fmt.Sprintf("%g", c.RetryMultiplier), "must be 1 (fixed) or greater")
	}
	if c.MaxPromptChars < 1 {
		return ErrInvalidValue("MAX_PROMPT_CHARS", fmt.Sprintf("%d", c.MaxPromptChars), "must be positive")
	}
	if c.OutputDir == "" {
		return ErrMissingConfig("OUTPUT_DIR")
	}
	if c.HistoryEnabled && c.HistoryDBPath == "" {
		return ErrMissingConfig("HISTORY_DB_PATH")
	}
	return nil
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// Model returns the model name for the configured provider.
func (c *Config) Model() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}
