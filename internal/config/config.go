// Package config loads the application configuration and installs the
// global logger.
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
	Match  MatchConfig  `yaml:"match" mapstructure:"match"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// MatchConfig is the injectable reconciliation policy. The defaults mirror
// the curated production values; deployments can adjust them without a
// code change.
type MatchConfig struct {
	ExcludedPlaces      []string          `yaml:"excluded_places" mapstructure:"excluded_places"`
	ExcludedStatuses    []string          `yaml:"excluded_statuses" mapstructure:"excluded_statuses"`
	Overrides           map[string]string `yaml:"overrides" mapstructure:"overrides"`
	SimilarityThreshold float64           `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// RenderConfig configures artifact generation.
type RenderConfig struct {
	OutDir      string `yaml:"out_dir" mapstructure:"out_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	PNG         bool   `yaml:"png" mapstructure:"png"`
	Zip         bool   `yaml:"zip" mapstructure:"zip"`
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
	v.SetEnvPrefix("SCORECARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("render.out_dir", "output")
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("render.png", true)
	v.SetDefault("render.zip", true)
	v.SetDefault("match.similarity_threshold", 0.6)
	v.SetDefault("match.excluded_places", []string{"opi orders"})
	v.SetDefault("match.excluded_statuses", []string{"cancelled", "rejected by place"})
	v.SetDefault("match.overrides", map[string]string{
		"shawerma 3a saj":                  "shawerma saj",
		"everybuddy nutrition supplements": "everybuddy",
		"pachi pizza and pasta":            "pachi pizza",
		"pizza pachi":                      "pachi pizza",
		"azul pastry":                      "azul",
		"ikura japanese cuisine":           "ikura",
		"the fit bar":                      "the fit bar jo",
		"sofia turkish restaurant":         "sofia",
		"secrets cakes":                    "secrets cake",
	})

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

// Validate checks the loaded configuration for values the pipeline cannot
// work with.
func (c *Config) Validate() error {
	if c.Match.SimilarityThreshold <= 0 || c.Match.SimilarityThreshold > 1 {
		return eris.Errorf("config: match.similarity_threshold must be in (0, 1] (got %v)", c.Match.SimilarityThreshold)
	}
	if c.Render.Concurrency < 1 {
		return eris.Errorf("config: render.concurrency must be positive (got %d)", c.Render.Concurrency)
	}
	return nil
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
