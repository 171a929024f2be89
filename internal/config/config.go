package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings for the three LLM-backed
// stages (query structuring, agent routing, report synthesis).
type AnthropicConfig struct {
	Key                string  `yaml:"key" mapstructure:"key"`
	ParserModel        string  `yaml:"parser_model" mapstructure:"parser_model"`
	RouterModel        string  `yaml:"router_model" mapstructure:"router_model"`
	ReportModel        string  `yaml:"report_model" mapstructure:"report_model"`
	RequestTimeoutSecs int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	MaxRetries         int     `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSecond  float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// DataConfig configures the tabular dataset sources.
type DataConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Manifest string `yaml:"manifest" mapstructure:"manifest"`
}

// PipelineConfig configures orchestration behavior.
type PipelineConfig struct {
	// StrictRouting upgrades unknown agent identifiers returned by the
	// routing stage from a logged skip to a terminal validation error.
	StrictRouting bool `yaml:"strict_routing" mapstructure:"strict_routing"`
	// MaxConcurrentAgents bounds parallel agent execution.
	MaxConcurrentAgents int `yaml:"max_concurrent_agents" mapstructure:"max_concurrent_agents"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PHARMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.manifest", "")
	v.SetDefault("pipeline.strict_routing", false)
	v.SetDefault("pipeline.max_concurrent_agents", 4)
	v.SetDefault("anthropic.parser_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.router_model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.report_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.request_timeout_secs", 60)
	v.SetDefault("anthropic.max_retries", 3)
	v.SetDefault("anthropic.requests_per_second", 2.0)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
