package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/geolumen/ntl-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Validate ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// AnalysisConfig carries the classification and partitioning parameters.
type AnalysisConfig struct {
	Threshold             float64   `yaml:"threshold" mapstructure:"threshold"`
	SensitivityThresholds []float64 `yaml:"sensitivity_thresholds" mapstructure:"sensitivity_thresholds"`
	RingWidthsM           []float64 `yaml:"ring_widths_m" mapstructure:"ring_widths_m"`
	Sectors               int       `yaml:"sectors" mapstructure:"sectors"`
	PixelSizeM            float64   `yaml:"pixel_size_m" mapstructure:"pixel_size_m"`
	Concurrency           int       `yaml:"concurrency" mapstructure:"concurrency"`
	InputDir              string    `yaml:"input_dir" mapstructure:"input_dir"`
	BoundaryPath          string    `yaml:"boundary_path" mapstructure:"boundary_path"`
}

// ValidateConfig carries the cross-resolution validation parameters.
type ValidateConfig struct {
	FinePixelSizeM float64 `yaml:"fine_pixel_size_m" mapstructure:"fine_pixel_size_m"`
	FineThreshold  float64 `yaml:"fine_threshold" mapstructure:"fine_threshold"`
}

// FetchConfig configures raster downloads.
type FetchConfig struct {
	Manifest    string `yaml:"manifest" mapstructure:"manifest"`
	DestDir     string `yaml:"dest_dir" mapstructure:"dest_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// OutputConfig says where reports land.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
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
	v.SetEnvPrefix("NTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "ntl.db")
	v.SetDefault("analysis.threshold", 3.0)
	v.SetDefault("analysis.sensitivity_thresholds", []float64{1, 2, 3, 5})
	v.SetDefault("analysis.ring_widths_m", []float64{1000, 2000, 5000})
	v.SetDefault("analysis.sectors", 8)
	v.SetDefault("analysis.pixel_size_m", 463.0)
	v.SetDefault("analysis.concurrency", 4)
	v.SetDefault("analysis.input_dir", "data/viirs")
	v.SetDefault("validate.fine_pixel_size_m", 30.0)
	v.SetDefault("validate.fine_threshold", 0.1)
	v.SetDefault("fetch.manifest", "sources.yaml")
	v.SetDefault("fetch.dest_dir", "data/viirs")
	v.SetDefault("fetch.concurrency", 2)
	v.SetDefault("output.dir", "output")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
