package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"boxwright/pkg/css"
	"boxwright/pkg/render"
	"boxwright/pkg/text"
)

// Config is the full boxwright configuration.
type Config struct {
	Logger   LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Viewport ViewportConfig  `mapstructure:"viewport" yaml:"viewport"`
	Fonts    text.FontConfig `mapstructure:"fonts" yaml:"fonts"`
	Render   RenderConfig    `mapstructure:"render" yaml:"render"`
	Script   ScriptConfig    `mapstructure:"script" yaml:"script"`
	Viewer   ViewerConfig    `mapstructure:"viewer" yaml:"viewer"`
}

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

// ColorConfig names the terminal color of each level in console output.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ViewportConfig is the initial viewport in CSS pixels.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// RenderConfig holds painter settings. Colors are CSS color strings.
type RenderConfig struct {
	Background     string  `mapstructure:"background" yaml:"background"`
	Selection      string  `mapstructure:"selection" yaml:"selection"`
	ScrollbarWidth float64 `mapstructure:"scrollbar_width" yaml:"scrollbar_width"`
}

type ScriptConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ViewerConfig tunes the desktop viewer's input handling. MultiClickSlop is
// how far, in pixels, a press may land from the previous one and still count
// toward a double or triple click.
type ViewerConfig struct {
	MultiClickInterval time.Duration `mapstructure:"multi_click_interval" yaml:"multi_click_interval"`
	MultiClickSlop     float64       `mapstructure:"multi_click_slop" yaml:"multi_click_slop"`
	ScrollStep         float64       `mapstructure:"scroll_step" yaml:"scroll_step"`
}

func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "boxwright")
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

	// -- Viewport --
	v.SetDefault("viewport.width", 800)
	v.SetDefault("viewport.height", 600)

	// -- Render --
	v.SetDefault("render.background", "white")
	v.SetDefault("render.selection", "rgba(51, 144, 255, 0.4)")
	v.SetDefault("render.scrollbar_width", 8)

	// -- Script --
	v.SetDefault("script.enabled", true)
	v.SetDefault("script.timeout", "2s")

	// -- Viewer --
	v.SetDefault("viewer.multi_click_interval", "400ms")
	v.SetDefault("viewer.multi_click_slop", 4)
	v.SetDefault("viewer.scroll_step", 40)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// The defaults are fixed; failing to decode them is a programming error.
		panic(err)
	}
	return cfg
}

// NewConfigFromViper decodes and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Load reads path, or ./boxwright.yaml when path is empty, layers BOXWRIGHT_*
// environment variables on top and returns the result. A missing default
// file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := ReadInto(v, path); err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// ReadInto configures v's file and environment sources and reads the file.
func ReadInto(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("boxwright")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("BOXWRIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport.width and viewport.height must be positive")
	}
	if c.Script.Timeout < 0 {
		return fmt.Errorf("script.timeout must not be negative")
	}
	if c.Viewer.MultiClickInterval <= 0 {
		return fmt.Errorf("viewer.multi_click_interval must be a positive duration")
	}
	if _, err := c.Render.Options(); err != nil {
		return err
	}
	return nil
}

// Options converts the painter settings.
func (r RenderConfig) Options() (render.Options, error) {
	opts := render.DefaultOptions()
	if r.Background != "" {
		c, ok := css.ParseColor(r.Background)
		if !ok {
			return opts, fmt.Errorf("render.background: invalid color %q", r.Background)
		}
		opts.Background = c
	}
	if r.Selection != "" {
		c, ok := css.ParseColor(r.Selection)
		if !ok {
			return opts, fmt.Errorf("render.selection: invalid color %q", r.Selection)
		}
		opts.Selection = c
	}
	if r.ScrollbarWidth < 0 {
		return opts, fmt.Errorf("render.scrollbar_width must not be negative")
	}
	opts.ScrollbarWidth = r.ScrollbarWidth
	return opts, nil
}
