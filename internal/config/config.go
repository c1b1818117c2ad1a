// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. LAYOUTCORE_OUTPUT_FORMAT.
const EnvPrefix = "LAYOUTCORE"

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Layout() LayoutConfig
	Output() OutputConfig

	// SetOutputFormat overrides the configured output format after loading.
	SetOutputFormat(string)

	// YAML renders the effective configuration.
	YAML() ([]byte, error)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	LayoutCfg LayoutConfig `mapstructure:"layout" yaml:"layout"`
	OutputCfg OutputConfig `mapstructure:"output" yaml:"output"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Layout() LayoutConfig { return c.LayoutCfg }
func (c *Config) Output() OutputConfig { return c.OutputCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetOutputFormat(f string) { c.OutputCfg.Format = f }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// Font providers.
const (
	FontProviderCore     = "core"
	FontProviderOpenType = "opentype"
)

// LayoutConfig configures the layout engine and how text is measured.
type LayoutConfig struct {
	// ViewportWidth is the initial containing block width in pixels.
	ViewportWidth float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	// FontProvider is "core" (PDF core font metrics) or "opentype" (Go fonts).
	FontProvider string `mapstructure:"font_provider" yaml:"font_provider"`
	// FontFamily selects the core font family; ignored by the opentype provider.
	FontFamily       string `mapstructure:"font_family" yaml:"font_family"`
	MeasureCacheSize int    `mapstructure:"measure_cache_size" yaml:"measure_cache_size"`
	// BreakLongRuns splits words wider than a whole line.
	BreakLongRuns bool `mapstructure:"break_long_runs" yaml:"break_long_runs"`
	// UserStylesheet is an optional CSS file layered over the built-in rules.
	UserStylesheet      string `mapstructure:"user_stylesheet" yaml:"user_stylesheet"`
	MaxConcurrentPasses int    `mapstructure:"max_concurrent_passes" yaml:"max_concurrent_passes"`
}

// OutputConfig controls how display lists are written.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
	// Path is the destination file; empty or "-" means stdout.
	Path string `mapstructure:"path" yaml:"path"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "layoutcore")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Layout --
	v.SetDefault("layout.viewport_width", 800.0)
	v.SetDefault("layout.font_provider", FontProviderCore)
	v.SetDefault("layout.font_family", "helvetica")
	v.SetDefault("layout.measure_cache_size", 4096)
	v.SetDefault("layout.break_long_runs", false)
	v.SetDefault("layout.user_stylesheet", "")
	v.SetDefault("layout.max_concurrent_passes", 4)

	// -- Output --
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)
	v.SetDefault("output.path", "")
}

// BindEnv makes v read LAYOUTCORE_* environment variables, with dots in
// keys replaced by underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// expandPaths resolves a leading ~ in every file path setting.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.LoggerCfg.LogFile, &c.LayoutCfg.UserStylesheet, &c.OutputCfg.Path} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
// Every violation is reported, not just the first.
func (c *Config) Validate() error {
	return multierr.Combine(
		c.LayoutCfg.Validate(),
		c.OutputCfg.Validate(),
	)
}

// Validate checks the layout settings.
func (l *LayoutConfig) Validate() error {
	var err error
	if !(l.ViewportWidth > 0) {
		err = multierr.Append(err, fmt.Errorf("layout.viewport_width must be a positive number"))
	}
	switch l.FontProvider {
	case FontProviderCore, FontProviderOpenType:
	default:
		err = multierr.Append(err, fmt.Errorf("layout.font_provider must be %q or %q, got %q",
			FontProviderCore, FontProviderOpenType, l.FontProvider))
	}
	if l.MeasureCacheSize < 0 {
		err = multierr.Append(err, fmt.Errorf("layout.measure_cache_size must not be negative"))
	}
	if l.MaxConcurrentPasses <= 0 {
		err = multierr.Append(err, fmt.Errorf("layout.max_concurrent_passes must be a positive integer"))
	}
	return err
}

// OutputFormats are the accepted values of output.format.
var OutputFormats = []string{"json", "svg", "text", "pdf"}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	for _, f := range OutputFormats {
		if strings.EqualFold(o.Format, f) {
			return nil
		}
	}
	return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(OutputFormats, ", "), o.Format)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
