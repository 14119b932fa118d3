package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	CORS     CORSConfig     `yaml:"cors" mapstructure:"cors"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	GeminiAI GeminiAIConfig `yaml:"gemini_ai" mapstructure:"gemini_ai"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Verify   VerifyConfig   `yaml:"verify" mapstructure:"verify"`
	Covers   CoversConfig   `yaml:"covers" mapstructure:"covers"`
	JWT      JWTConfig      `yaml:"jwt" mapstructure:"jwt"`
}

type ServerConfig struct {
	Port string `yaml:"port" mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods" mapstructure:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" mapstructure:"allow_headers"`
	ExposeHeaders    []string `yaml:"expose_headers" mapstructure:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
}

// LLMConfig points at any OpenAI-compatible completion endpoint. BaseURL is
// empty for api.openai.com; set it to https://api.groq.com/openai/v1 to use
// Groq-hosted models.
type LLMConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

type GeminiAIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// SearchConfig bounds the aggregate search pipeline.
type SearchConfig struct {
	MaxResults  int           `yaml:"max_results" mapstructure:"max_results"`
	FanoutLimit int           `yaml:"fanout_limit" mapstructure:"fanout_limit"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// VerifyConfig bounds a single link probe.
type VerifyConfig struct {
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
}

type CoversConfig struct {
	SerpAPIKey string `yaml:"serpapi_key" mapstructure:"serpapi_key"`
}

type JWTConfig struct {
	SecretKey   string        `yaml:"secret_key" mapstructure:"secret_key"`
	ExpiryHours time.Duration `yaml:"expiry_hours" mapstructure:"expiry_hours"`
}

// secretEnvKeys lets credentials live in the .env file instead of the yaml
// file, which is checked in.
var secretEnvKeys = map[string]string{
	"llm.api_key":        "LLM_API_KEY",
	"gemini_ai.api_key":  "GEMINI_API_KEY",
	"covers.serpapi_key": "SERPAPI_KEY",
	"jwt.secret_key":     "JWT_SECRET_KEY",
	"database.url":       "DATABASE_URL",
}

func LoadConfig(configPath string, envPath string) (*Config, error) {
	// Load .env file first
	if err := godotenv.Load(envPath); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	for key, env := range secretEnvKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	// The language model credential is checked up front: without it the
	// pipeline could only ever degrade to keyword search, and that is a
	// deployment fault, not a runtime one.
	if config.LLM.APIKey == "" {
		return nil, errors.New("llm.api_key is required")
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "llama3-8b-8192"
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 5
	}
	if c.Search.FanoutLimit <= 0 {
		c.Search.FanoutLimit = 6
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 45 * time.Second
	}
	if c.Verify.ProbeTimeout <= 0 {
		c.Verify.ProbeTimeout = 5 * time.Second
	}
	if c.Verify.UserAgent == "" {
		c.Verify.UserAgent = "Mozilla/5.0 (compatible; bookwise/1.0)"
	}
	if c.JWT.ExpiryHours <= 0 {
		c.JWT.ExpiryHours = 24 * time.Hour
	}
}
