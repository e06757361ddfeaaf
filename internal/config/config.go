package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/khrees2412/cvforge/internal/ai"
	"github.com/khrees2412/cvforge/internal/renderer"
	"github.com/khrees2412/cvforge/pkg/jooble"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StoreFile   = "file"
	StoreSQLite = "sqlite"

	// DefaultConfigFile is looked up in the working directory when no path is given
	DefaultConfigFile = "cvforge.yaml"
)

// Config holds the application configuration
type Config struct {
	Env               string   `mapstructure:"env"`
	Port              int      `mapstructure:"port"`
	LogLevel          string   `mapstructure:"log_level"`
	CORSOrigins       []string `mapstructure:"cors_origins"`
	OutputDir         string   `mapstructure:"output_dir"`
	TemplatesDir      string   `mapstructure:"templates_dir"`
	TemplateStore     string   `mapstructure:"template_store"` // file, sqlite
	TemplateStorePath string   `mapstructure:"template_store_path"`
	DatabasePath      string   `mapstructure:"database_path"`
	History           bool     `mapstructure:"history"`

	Jooble JoobleConfig `mapstructure:"jooble"`
	AI     AIConfig     `mapstructure:"ai"`
	Render RenderConfig `mapstructure:"render"`

	// file the values were read from, empty when only defaults and env were used
	Source string `mapstructure:"-"`
}

type JoobleConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AIConfig struct {
	Provider    string        `mapstructure:"provider"` // ollama, lmstudio
	URL         string        `mapstructure:"url"`
	Model       string        `mapstructure:"model"`
	TimeoutMS   int           `mapstructure:"timeout_ms"`
	Temperature float64       `mapstructure:"temperature"`
	NumCtx      int           `mapstructure:"num_ctx"`
	NumGPU      int           `mapstructure:"num_gpu"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

type RenderConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ChromePath string        `mapstructure:"chrome_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

var defaults = map[string]interface{}{
	"env":                 EnvDevelopment,
	"port":                3000,
	"log_level":           "info",
	"cors_origins":        []string{"http://localhost:3000"},
	"output_dir":          "./public/cvs",
	"templates_dir":       "./templates",
	"template_store":      StoreFile,
	"template_store_path": "./data/customTemplates.json",
	"database_path":       "./data/cvforge.db",
	"history":             true,
	"jooble.api_key":      "",
	"jooble.url":          "https://pl.jooble.org/api",
	"jooble.timeout":      "15s",
	"ai.provider":         ai.ProviderOllama,
	"ai.url":              "http://localhost:11434/api/chat",
	"ai.model":            "mistral",
	"ai.timeout_ms":       180000,
	"ai.temperature":      0.3,
	"ai.num_ctx":          1024,
	"ai.num_gpu":          0,
	"ai.max_tokens":       2000,
	"ai.max_attempts":     3,
	"ai.retry_delay":      "5s",
	"render.enabled":      true,
	"render.chrome_path":  "",
	"render.timeout":      "60s",
}

// env variables bound to each key, first match wins
var envBindings = map[string][]string{
	"env":                 {"CVFORGE_ENV", "NODE_ENV"},
	"port":                {"PORT"},
	"log_level":           {"LOG_LEVEL"},
	"cors_origins":        {"CORS_ORIGINS"},
	"output_dir":          {"CV_DIR"},
	"templates_dir":       {"TEMPLATES_DIR"},
	"template_store":      {"TEMPLATE_STORE"},
	"template_store_path": {"TEMPLATE_STORE_PATH"},
	"database_path":       {"DATABASE_PATH"},
	"history":             {"CVFORGE_HISTORY"},
	"jooble.api_key":      {"JOOBLE_API_KEY"},
	"jooble.url":          {"JOOBLE_API_URL"},
	"jooble.timeout":      {"JOOBLE_TIMEOUT"},
	"ai.provider":         {"AI_PROVIDER"},
	"ai.url":              {"OLLAMA_API_URL"},
	"ai.model":            {"OLLAMA_MODEL"},
	"ai.timeout_ms":       {"OLLAMA_TIMEOUT"},
	"ai.max_attempts":     {"AI_MAX_ATTEMPTS"},
	"ai.retry_delay":      {"AI_RETRY_DELAY"},
	"render.enabled":      {"RENDER_PDF"},
	"render.chrome_path":  {"CHROME_PATH"},
	"render.timeout":      {"RENDER_TIMEOUT"},
}

// Load reads .env, the optional config file at path (or ./cvforge.yaml) and
// the environment, in increasing order of precedence over the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if _, err := os.Stat(DefaultConfigFile); err == nil {
		v.SetConfigFile(DefaultConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return v
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.TemplateStore = strings.ToLower(strings.TrimSpace(c.TemplateStore))
	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				origins = append(origins, part)
			}
		}
	}
	c.CORSOrigins = origins
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.TemplateStore {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("unsupported template store: %s", c.TemplateStore)
	}
	switch c.AI.Provider {
	case ai.ProviderOllama, ai.ProviderLMStudio:
	default:
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}
	if c.AI.MaxAttempts < 1 {
		return fmt.Errorf("ai.max_attempts must be at least 1")
	}
	if c.AI.TimeoutMS <= 0 {
		return fmt.Errorf("ai.timeout_ms must be positive")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Addr is the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) AIConfig() ai.Config {
	return ai.Config{
		Provider:    c.AI.Provider,
		URL:         c.AI.URL,
		Model:       c.AI.Model,
		Timeout:     time.Duration(c.AI.TimeoutMS) * time.Millisecond,
		Temperature: c.AI.Temperature,
		NumCtx:      c.AI.NumCtx,
		NumGPU:      c.AI.NumGPU,
		MaxTokens:   c.AI.MaxTokens,
		MaxAttempts: c.AI.MaxAttempts,
		RetryDelay:  c.AI.RetryDelay,
	}
}

func (c *Config) JoobleConfig() jooble.Config {
	return jooble.Config{
		APIKey:  c.Jooble.APIKey,
		BaseURL: c.Jooble.URL,
		Timeout: c.Jooble.Timeout,
	}
}

func (c *Config) RendererConfig() renderer.Config {
	return renderer.Config{
		Enabled:    c.Render.Enabled,
		ChromePath: c.Render.ChromePath,
		Timeout:    c.Render.Timeout,
	}
}

// Mask hides all but the last four characters of a secret
func Mask(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// WriteDefault creates a commented config file at path unless one exists
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	defaultConfig := `# cvforge configuration
# Environment variables (PORT, JOOBLE_API_KEY, OLLAMA_API_URL, ...) override these values.
env: development
port: 3000
log_level: info
output_dir: ./public/cvs
templates_dir: ./templates

# Template store: file or sqlite
template_store: file
template_store_path: ./data/customTemplates.json
database_path: ./data/cvforge.db

jooble:
  api_key: ""   # keep this file secure!
  url: https://pl.jooble.org/api
  timeout: 15s

# AI provider: ollama or lmstudio
ai:
  provider: ollama
  url: http://localhost:11434/api/chat
  model: mistral
  timeout_ms: 180000
  max_attempts: 3
  retry_delay: 5s

render:
  enabled: true
  chrome_path: ""
  timeout: 60s
`
	return os.WriteFile(path, []byte(defaultConfig), 0o600)
}

// Set updates one key in the config file at path
func Set(path, key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)
	return v.WriteConfigAs(path)
}

// Keys lists every supported config key
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
