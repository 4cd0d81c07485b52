package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is built once at startup and only read afterwards.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Port        string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	OutputDir   string `envconfig:"OUTPUT_DIR" default:"outputs" validate:"required"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`

	LLM      LLMConfig     `envconfig:"LLM"`
	Keywords KeywordConfig `envconfig:"KEYWORD"`
	Batch    BatchConfig   `envconfig:"BATCH"`
	STT      STTConfig     `envconfig:"STT"`
	Redis    RedisConfig   `envconfig:"REDIS"`
	MinIO    MinIOConfig   `envconfig:"MINIO"`
}

// Nested fields are named by split_words under their section prefix
// (LLM_API_KEY, REDIS_DB). Only the prefixed name is read.
type LLMConfig struct {
	Provider        string        `split_words:"true" default:"openai" validate:"oneof=openai gateway mock"`
	APIKey          string        `split_words:"true"`
	Model           string        `split_words:"true" default:"gpt-4o-mini"`
	GatewayURL      string        `split_words:"true" validate:"omitempty,url"`
	Timeout         time.Duration `split_words:"true" default:"60s" validate:"gt=0"`
	MaxOutputTokens int64         `split_words:"true" default:"4096" validate:"gt=0"`
	MaxRetries      int           `split_words:"true" default:"3" validate:"gte=0"`
}

type KeywordConfig struct {
	PrefixChars int `split_words:"true" default:"2000" validate:"gt=0"`
	Count       int `split_words:"true" default:"10" validate:"gt=0"`
}

type BatchConfig struct {
	Concurrency int `split_words:"true" default:"4" validate:"gt=0"`
}

type STTConfig struct {
	Provider string `split_words:"true" default:"assemblyai" validate:"oneof=assemblyai gateway mock"`
	// Read from STT_ASSEMBLYAI_API_KEY, falling back to ASSEMBLYAI_API_KEY.
	AssemblyAIKey string        `envconfig:"ASSEMBLYAI_API_KEY"`
	GatewayURL    string        `split_words:"true" validate:"omitempty,url"`
	MaxFileMB     int64         `split_words:"true" default:"100" validate:"gt=0"`
	PollInterval  time.Duration `split_words:"true" default:"5s" validate:"gt=0"`
}

type RedisConfig struct {
	Addr      string        `split_words:"true"`
	Password  string        `split_words:"true"`
	DB        int           `split_words:"true" default:"0"`
	ReportTTL time.Duration `split_words:"true" default:"24h"`
}

type MinIOConfig struct {
	Endpoint  string `split_words:"true"`
	AccessKey string `split_words:"true"`
	SecretKey string `split_words:"true"`
	Bucket    string `split_words:"true" default:"interview-reports"`
	UseSSL    bool   `split_words:"true" default:"false"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.LLM.Provider == "gateway" && c.LLM.GatewayURL == "" {
		return fmt.Errorf("invalid config: LLM_GATEWAY_URL is required for the gateway provider")
	}
	if c.STT.Provider == "gateway" && c.STT.GatewayURL == "" {
		return fmt.Errorf("invalid config: STT_GATEWAY_URL is required for the gateway provider")
	}
	if c.MinIO.Endpoint != "" && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		return fmt.Errorf("invalid config: MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required with MINIO_ENDPOINT")
	}
	return nil
}

// IsLocal reports whether the process runs in a developer environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "" || c.Environment == "local"
}

// MaxAudioBytes is the upload limit for speech-to-text.
func (c *Config) MaxAudioBytes() int64 {
	return c.STT.MaxFileMB * 1024 * 1024
}
