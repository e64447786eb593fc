package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// configEnvKeys lists every variable LoadConfig reads.
var configEnvKeys = []string{
	"FINSUM_CONFIG", "PDF_PATH", "OUTPUT_DIR", "LLM_PROVIDER",
	"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
	"OPENAI_API_KEY", "OPENAI_API_BASE_URL", "OPENAI_MODEL",
	"LLM_TEMPERATURE", "LLM_MAX_TOKENS", "MAX_PROMPT_CHARS",
	"MAX_RETRIES", "RETRY_DELAY_MS", "RETRY_MULTIPLIER", "AI_TIMEOUT",
	"SHOW_CHART", "EXPORT_CSV", "HISTORY_ENABLED", "HISTORY_DB_PATH",
	"LOG_FILE", "LOG_LEVEL", "DEV_MODE",
}

// clearConfigEnv blanks every config variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PDFPath != DefaultPDFPath {
		t.Errorf("PDFPath = %q, want %q", cfg.PDFPath, DefaultPDFPath)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.RetryMultiplier != 1.0 {
		t.Errorf("RetryMultiplier = %v, want 1.0", cfg.RetryMultiplier)
	}
	if cfg.MaxPromptChars != 8000 {
		t.Errorf("MaxPromptChars = %d, want 8000", cfg.MaxPromptChars)
	}
	if !cfg.ShowChart {
		t.Error("ShowChart should default to true")
	}
	if cfg.ExportCSV {
		t.Error("ExportCSV should default to false")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PDF_PATH", "reports/q3.pdf")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RETRY_DELAY_MS", "100")
	t.Setenv("SHOW_CHART", "false")
	t.Setenv("EXPORT_CSV", "yes")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PDFPath != "reports/q3.pdf" {
		t.Errorf("PDFPath = %q", cfg.PDFPath)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want lower-cased openai", cfg.Provider)
	}
	if cfg.APIKey() != "sk-test" {
		t.Errorf("APIKey() = %q, want sk-test", cfg.APIKey())
	}
	if cfg.Model() != DefaultOpenAIModel {
		t.Errorf("Model() = %q, want %q", cfg.Model(), DefaultOpenAIModel)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 100*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 100ms", cfg.RetryDelay)
	}
	if cfg.ShowChart {
		t.Error("ShowChart should be false")
	}
	if !cfg.ExportCSV {
		t.Error("ExportCSV should be true")
	}
}

func TestLoadConfig_GoogleAPIKeyFallback(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.APIKey() != "google-key" {
		t.Errorf("APIKey() = %q, want google-key", cfg.APIKey())
	}
}

func TestLoadConfig_YAMLFileThenEnv(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "finsum.yaml")
	content := `pdf_path: annual.pdf
output_dir: out
gemini_model: gemini-1.5-pro
max_retries: 4
retry_delay: 500ms
show_chart: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("OUTPUT_DIR", "from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.PDFPath != "annual.pdf" {
		t.Errorf("PDFPath = %q, want annual.pdf", cfg.PDFPath)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, env should win over file", cfg.OutputDir)
	}
	if cfg.GeminiModel != "gemini-1.5-pro" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.MaxRetries != 4 {
		t.Errorf("MaxRetries = %d, want 4", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want 500ms", cfg.RetryDelay)
	}
	if cfg.ShowChart {
		t.Error("ShowChart should be false from file")
	}
}

func TestLoadConfig_FinsumConfigEnv(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("pdf_path: via-env.pdf\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FINSUM_CONFIG", path)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PDFPath != "via-env.pdf" {
		t.Errorf("PDFPath = %q, want via-env.pdf", cfg.PDFPath)
	}
}

func TestLoadConfig_BadFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if GetErrorCode(err) != ErrCodeConfigFile {
		t.Errorf("LoadConfig() error code = %q, want %q", GetErrorCode(err), ErrCodeConfigFile)
	}
}

func TestReadConfig_SkipsValidation(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LLM_PROVIDER", "bard")

	cfg, err := ReadConfig("")
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Provider != "bard" {
		t.Errorf("Provider = %q, want bard", cfg.Provider)
	}
	if _, err := LoadConfig(""); GetErrorCode(err) != ErrCodeUnknownProvider {
		t.Errorf("LoadConfig() error = %v, want UNKNOWN_PROVIDER", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode string
	}{
		{"defaults valid", func(c *Config) {}, ""},
		{"unknown provider", func(c *Config) { c.Provider = "bard" }, ErrCodeUnknownProvider},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, ErrCodeInvalidValue},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, ErrCodeInvalidValue},
		{"shrinking multiplier", func(c *Config) { c.RetryMultiplier = 0.5 }, ErrCodeInvalidValue},
		{"zero prompt chars", func(c *Config) { c.MaxPromptChars = 0 }, ErrCodeInvalidValue},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, ErrCodeMissingConfig},
		{"history without path", func(c *Config) { c.HistoryDBPath = "" }, ErrCodeMissingConfig},
		{"history disabled without path", func(c *Config) {
			c.HistoryEnabled = false
			c.HistoryDBPath = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if got := GetErrorCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}
