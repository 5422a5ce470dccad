package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/username/bizdelta/internal/calendar"
	"github.com/username/bizdelta/pkg/bdate"
)

// Config represents application configuration
type Config struct {
	Window   WindowConfig   `mapstructure:"window"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Parser   ParserConfig   `mapstructure:"parser"`
	Log      LogConfig      `mapstructure:"log"`
}

// WindowConfig describes the business week and business hours
type WindowConfig struct {
	Workdays      []string `mapstructure:"workdays"`       // "Mon".."Sun"
	BusinessStart string   `mapstructure:"business_start"` // HH:MM[:SS]
	BusinessEnd   string   `mapstructure:"business_end"`
	MaxSteps      int      `mapstructure:"max_steps"`
}

// HolidaysConfig selects the holiday sources. All configured sources are
// combined.
type HolidaysConfig struct {
	Country     string `mapstructure:"country"` // "us", "de", "dk", "ecb"
	File        string `mapstructure:"file"`
	IsDayOff    bool   `mapstructure:"isdayoff"`
	IsDayOffURL string `mapstructure:"isdayoff_url"`
	CacheTTL    string `mapstructure:"cache_ttl"`
}

// ParserConfig controls how date strings are read
type ParserConfig struct {
	DayFirst bool   `mapstructure:"day_first"`
	Location string `mapstructure:"location"`
}

// LogConfig configures logging
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.workdays", []string{"Mon", "Tue", "Wed", "Thu", "Fri"})
	v.SetDefault("window.business_start", "09:00")
	v.SetDefault("window.business_end", "17:00")
	v.SetDefault("window.max_steps", bdate.DefaultStepLimit)
	v.SetDefault("holidays.country", "")
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.isdayoff", false)
	v.SetDefault("holidays.isdayoff_url", calendar.DefaultIsDayOffURL)
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("parser.day_first", false)
	v.SetDefault("parser.location", "UTC")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. A missing config file is not an error
// when no explicit path is given; defaults and BIZDELTA_* variables apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.bizdelta")
		v.AddConfigPath("/etc/bizdelta")
	}

	// Read environment variables, e.g. BIZDELTA_HOLIDAYS_COUNTRY. Only keys
	// with a default are seen by Unmarshal.
	v.SetEnvPrefix("bizdelta")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Window.GetWorkdays(); err != nil {
		return err
	}
	start, err := bdate.ParseTimeOfDay(c.Window.BusinessStart)
	if err != nil {
		return fmt.Errorf("window.business_start: %w", err)
	}
	end, err := bdate.ParseTimeOfDay(c.Window.BusinessEnd)
	if err != nil {
		return fmt.Errorf("window.business_end: %w", err)
	}
	if start >= end {
		return fmt.Errorf("window.business_start (%s) must be before window.business_end (%s)", start, end)
	}
	if c.Window.MaxSteps <= 0 {
		return fmt.Errorf("window.max_steps must be positive")
	}

	if c.Holidays.Country != "" {
		if _, err := calendar.NewCountryCalendar(c.Holidays.Country); err != nil {
			return fmt.Errorf("holidays.country: %w", err)
		}
	}
	if c.Holidays.IsDayOff && c.Holidays.IsDayOffURL == "" {
		return fmt.Errorf("holidays.isdayoff_url is required when holidays.isdayoff is set")
	}
	if c.Holidays.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Holidays.CacheTTL); err != nil {
			return fmt.Errorf("holidays.cache_ttl: %w", err)
		}
	}

	if _, err := c.Parser.GetLocation(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got '%s'", c.Log.Level)
	}

	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// GetWorkdays parses the configured workday names. Full names are accepted.
func (c *WindowConfig) GetWorkdays() ([]time.Weekday, error) {
	if len(c.Workdays) == 0 {
		return nil, fmt.Errorf("window.workdays must not be empty")
	}
	days := make([]time.Weekday, 0, len(c.Workdays))
	for _, name := range c.Workdays {
		key := strings.ToLower(strings.TrimSpace(name))
		if len(key) > 3 {
			key = key[:3]
		}
		wd, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("window.workdays: unknown weekday '%s'", name)
		}
		days = append(days, wd)
	}
	return days, nil
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetLocation resolves the parser time zone
func (c *ParserConfig) GetLocation() (*time.Location, error) {
	if c.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("parser.location: %w", err)
	}
	return loc, nil
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
