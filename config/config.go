package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Daji     DajiConfig     `mapstructure:"daji"`
	Weidian  WeidianConfig  `mapstructure:"weidian"`
	Fallback FallbackConfig `mapstructure:"fallback"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds the intent classifier endpoint configuration
type LLMConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"`
}

// DajiConfig holds the Daji product API configuration (taobao and 1688)
type DajiConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	APISecret string        `mapstructure:"api_secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// WeidianConfig holds the RapidAPI Weidian configuration
type WeidianConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FallbackConfig tunes the offline product path
type FallbackConfig struct {
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
}

// PipelineConfig holds product resolution settings
type PipelineConfig struct {
	ParallelResolve bool `mapstructure:"parallel_resolve"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// legacyEnv maps config keys to the variable names used by earlier deployments.
var legacyEnv = map[string]string{
	"llm.api_key":     "OPENROUTER_API_KEY",
	"llm.base_url":    "OPENAI_API_BASE",
	"daji.api_key":    "DAJI_API_KEY",
	"daji.api_secret": "DAJI_API_SECRET",
	"daji.base_url":   "DAJI_API_BASE_URL",
	"weidian.api_key": "RAPIDAPI_KEY",
}

// Load loads configuration from .env files, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopintent/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPINTENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFiles loads ENV_FILE if set, otherwise .env.local then .env.
// Missing files are ignored and existing variables are never overridden.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}

// bindLegacyEnv binds each key to its SHOPINTENT_ variable first and the
// legacy name second, so the prefixed name wins when both are set.
func bindLegacyEnv(v *viper.Viper) error {
	for key, legacy := range legacyEnv {
		prefixed := "SHOPINTENT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Intent classifier defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.model", "anthropic/claude-3-haiku")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.max_tokens", 50)

	// Product provider defaults
	v.SetDefault("daji.api_key", "")
	v.SetDefault("daji.api_secret", "")
	v.SetDefault("daji.base_url", "https://openapi.dajisaas.com/")
	v.SetDefault("daji.timeout", "20s")

	v.SetDefault("weidian.api_key", "")
	v.SetDefault("weidian.base_url", "https://weidian-api2.p.rapidapi.com/")
	v.SetDefault("weidian.host", "weidian-api2.p.rapidapi.com")
	v.SetDefault("weidian.timeout", "20s")

	v.SetDefault("fallback.simulated_latency", "50ms")
	v.SetDefault("pipeline.parallel_resolve", false)
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.LLM.APIKey == "" {
		return fmt.Errorf("LLM API key is required (set OPENROUTER_API_KEY or SHOPINTENT_LLM_API_KEY)")
	}

	if config.LLM.Timeout <= 0 {
		return fmt.Errorf("llm timeout must be positive, got: %s", config.LLM.Timeout)
	}
	if config.Daji.Timeout <= 0 {
		return fmt.Errorf("daji timeout must be positive, got: %s", config.Daji.Timeout)
	}
	if config.Weidian.Timeout <= 0 {
		return fmt.Errorf("weidian timeout must be positive, got: %s", config.Weidian.Timeout)
	}
	if config.Fallback.SimulatedLatency < 0 {
		return fmt.Errorf("fallback simulated latency must not be negative, got: %s", config.Fallback.SimulatedLatency)
	}

	switch config.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error, got: %s", config.Log.Level)
	}

	return nil
}
