// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API    APIConfig    `yaml:"api" mapstructure:"api"`
	Survey SurveyConfig `yaml:"survey" mapstructure:"survey"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the observation-service client and its rate budget.
type APIConfig struct {
	BaseURL             string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent           string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs         int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Calls               int    `yaml:"calls" mapstructure:"calls"`
	RateLimitPeriodSecs int    `yaml:"rate_limit_period_secs" mapstructure:"rate_limit_period_secs"`
}

// RateLimitPeriod returns the rolling rate-limit window.
func (c APIConfig) RateLimitPeriod() time.Duration {
	return time.Duration(c.RateLimitPeriodSecs) * time.Second
}

// Timeout returns the HTTP client timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// SurveyConfig configures the collection pipeline.
type SurveyConfig struct {
	PlaceID        int    `yaml:"place_id" mapstructure:"place_id"`
	QualityGrade   string `yaml:"quality_grade" mapstructure:"quality_grade"`
	PerPage        int    `yaml:"per_page" mapstructure:"per_page"`
	MaxPages       int    `yaml:"max_pages" mapstructure:"max_pages"`
	PhylumPageSize int    `yaml:"phylum_page_size" mapstructure:"phylum_page_size"`
	Output         string `yaml:"output" mapstructure:"output"`
	FilterFile     string `yaml:"filter_file" mapstructure:"filter_file"`
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
	v.SetEnvPrefix("INAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://api.inaturalist.org/v1")
	v.SetDefault("api.user_agent", "inat-survey/1.0")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.calls", 60)
	v.SetDefault("api.rate_limit_period_secs", 60)
	v.SetDefault("survey.place_id", 51347) // FMR intertidal
	v.SetDefault("survey.quality_grade", "research")
	v.SetDefault("survey.per_page", 5)
	v.SetDefault("survey.max_pages", 2)
	v.SetDefault("survey.phylum_page_size", 100)
	v.SetDefault("survey.output", "inat_species_summary.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
