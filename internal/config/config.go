// Package config builds the booking configuration from the process
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the entry page of the booking site.
const DefaultBaseURL = "https://irs.thsrc.com.tw/IMINT/"

// Config is the full, immutable configuration of a booking run. It is
// constructed once at process start and handed to the workflow by value.
type Config struct {
	BaseURL     string          `mapstructure:"base_url"`
	Trip        TripConfig      `mapstructure:"trip"`
	Tickets     TicketConfig    `mapstructure:"tickets"`
	Passenger   PassengerConfig `mapstructure:"passenger"`
	Browser     BrowserConfig   `mapstructure:"browser"`
	Captcha     CaptchaConfig   `mapstructure:"captcha"`
	TriggerTime string          `mapstructure:"trigger_time"`
	Logger      LoggerConfig    `mapstructure:"logger"`
}

// TripConfig describes the journey searched for on the first form.
type TripConfig struct {
	StartStation string `mapstructure:"start_station"`
	EndStation   string `mapstructure:"end_station"`
	// TravelDate is passed to the date picker verbatim, e.g. 2026/01/25.
	TravelDate string `mapstructure:"travel_date"`
	// TravelTime is a display time such as 08:30, see TimeCode.
	TravelTime string `mapstructure:"travel_time"`
}

// TicketConfig holds passenger counts per fare class.
type TicketConfig struct {
	Adult    int `mapstructure:"adult"`
	Child    int `mapstructure:"child"`
	Disabled int `mapstructure:"disabled"`
	Elder    int `mapstructure:"elder"`
	Student  int `mapstructure:"student"`
}

// PassengerConfig holds the identity fields entered on the passenger page.
type PassengerConfig struct {
	ID    string `mapstructure:"id"`
	Phone string `mapstructure:"phone"`
	Email string `mapstructure:"email"`
}

// BrowserConfig holds the browser launch options.
type BrowserConfig struct {
	Headless bool `mapstructure:"headless"`
	// SlowMo is the delay in milliseconds inserted between browser operations.
	SlowMo int `mapstructure:"slow_mo"`
}

// CaptchaConfig tunes the captcha retry loop and the OCR engine.
type CaptchaConfig struct {
	MaxAttempts int    `mapstructure:"max_attempts"`
	Language    string `mapstructure:"language"`
}

// LoggerConfig controls the diagnostic logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"service_name"`
	AddSource   bool   `mapstructure:"add_source"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

// binding ties a configuration key to its environment variable and default.
type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"base_url", "HSR_BASE_URL", DefaultBaseURL},
	{"trip.start_station", "START_STATION", "1"},
	{"trip.end_station", "END_STATION", "12"},
	{"trip.travel_date", "TRAVEL_DATE", ""},
	{"trip.travel_time", "TRAVEL_TIME", ""},
	{"tickets.adult", "ADULT_COUNT", 1},
	{"tickets.child", "CHILD_COUNT", 0},
	{"tickets.disabled", "DISABLED_COUNT", 0},
	{"tickets.elder", "ELDER_COUNT", 0},
	{"tickets.student", "STUDENT_COUNT", 0},
	{"passenger.id", "PASSENGER_ID", ""},
	{"passenger.phone", "PASSENGER_PHONE", ""},
	{"passenger.email", "PASSENGER_EMAIL", ""},
	{"browser.headless", "HEADLESS", false},
	{"browser.slow_mo", "SLOW_MO", 500},
	{"captcha.max_attempts", "MAX_CAPTCHA_ATTEMPTS", 5},
	{"captcha.language", "OCR_LANGUAGE", "eng"},
	{"trigger_time", "TRIGGER_TIME", ""},
	{"logger.level", "LOG_LEVEL", "info"},
	{"logger.format", "LOG_FORMAT", "console"},
	{"logger.service_name", "LOG_SERVICE_NAME", "hsr-booker"},
	{"logger.add_source", "LOG_ADD_SOURCE", false},
	{"logger.log_file", "LOG_FILE", "hsr-booker.log"},
	{"logger.max_size", "LOG_MAX_SIZE", 10},
	{"logger.max_backups", "LOG_MAX_BACKUPS", 3},
	{"logger.max_age", "LOG_MAX_AGE", 14},
	{"logger.compress", "LOG_COMPRESS", true},
}

// SetDefaults registers every key's default value and environment variable.
func SetDefaults(v *viper.Viper) {
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		_ = v.BindEnv(b.key, b.env)
	}
}

// NewDefaultConfig returns a configuration populated with default values only.
func NewDefaultConfig() *Config {
	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and builds a validated Config from it. Missing files
// are skipped; variables already present in the environment take precedence.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.TriggerTime = strings.TrimSpace(cfg.TriggerTime)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
// Passenger identity fields are deliberately left to the booking site.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url must not be empty")
	}
	if _, ok := Stations[c.Trip.StartStation]; !ok {
		return fmt.Errorf("unknown start station %q", c.Trip.StartStation)
	}
	if _, ok := Stations[c.Trip.EndStation]; !ok {
		return fmt.Errorf("unknown end station %q", c.Trip.EndStation)
	}
	if c.Trip.StartStation == c.Trip.EndStation {
		return fmt.Errorf("start and end station are both %s", StationName(c.Trip.StartStation))
	}
	counts := map[string]int{
		"adult":    c.Tickets.Adult,
		"child":    c.Tickets.Child,
		"disabled": c.Tickets.Disabled,
		"elder":    c.Tickets.Elder,
		"student":  c.Tickets.Student,
	}
	for class, n := range counts {
		if n < 0 {
			return fmt.Errorf("%s ticket count must not be negative, got %d", class, n)
		}
	}
	if c.Captcha.MaxAttempts < 1 {
		return fmt.Errorf("captcha max attempts must be at least 1")
	}
	if c.Browser.SlowMo < 0 {
		return fmt.Errorf("slow_mo must not be negative")
	}
	return nil
}
