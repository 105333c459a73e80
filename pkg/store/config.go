package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Driver selects the document backend.
type Driver string

const (
	DriverDiskv  Driver = "diskv"
	DriverSQLite Driver = "sqlite"
)

// Config is what the rest of the tool needs to know about the environment.
type Config interface {
	BasePath() string
	Driver() Driver
	SQLitePath() string
	FlushDebounce() time.Duration
	FlushInterval() time.Duration
	LogFile() string
	LogLevel() string
	PomodoroMinutes() (work, short, long int)
	SuggestEndpoint() string
	SuggestModel() string
	SuggestAPIKey() string
	SuggestTimeout() time.Duration
	CloudLatency() time.Duration
}

// LoadConfig reads .nova.yaml from $NOVA_CONFIG_PATH, the working directory
// or the home directory, with NOVA_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.nova.db")
	v.SetDefault("storage.driver", string(DriverDiskv))
	v.SetDefault("storage.sqlite", "")
	v.SetDefault("flush.debounce", "500ms")
	v.SetDefault("flush.interval", "30s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("pomodoro.work", 25)
	v.SetDefault("pomodoro.short", 5)
	v.SetDefault("pomodoro.long", 15)
	v.SetDefault("suggest.endpoint", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("suggest.model", "gemini-1.5-flash")
	v.SetDefault("suggest.apiKey", "")
	v.SetDefault("suggest.timeout", "20s")
	v.SetDefault("cloud.latency", "2s")

	v.SetConfigName(".nova") // .yaml is implicit
	v.SetEnvPrefix("NOVA")
	v.AutomaticEnv()
	_ = v.BindEnv("suggest.apiKey", "NOVA_SUGGEST_APIKEY", "GEMINI_API_KEY")

	if override := os.Getenv("NOVA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	sqlitePath, err := homedir.Expand(v.GetString("storage.sqlite"))
	if err != nil {
		return nil, fmt.Errorf("store: expand sqlite path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}

	return &Options{
		Path:        base,
		StoreDriver: Driver(v.GetString("storage.driver")),
		SQLite:      sqlitePath,
		Debounce:    v.GetDuration("flush.debounce"),
		Interval:    v.GetDuration("flush.interval"),
		Log:         logFile,
		Level:       v.GetString("log.level"),
		Work:        v.GetInt("pomodoro.work"),
		Short:       v.GetInt("pomodoro.short"),
		Long:        v.GetInt("pomodoro.long"),
		Endpoint:    v.GetString("suggest.endpoint"),
		Model:       v.GetString("suggest.model"),
		APIKey:      v.GetString("suggest.apiKey"),
		Timeout:     v.GetDuration("suggest.timeout"),
		Latency:     v.GetDuration("cloud.latency"),
	}, nil
}

// Options is the concrete Config. Zero fields fall back to the defaults, so a
// literal with just Path set is usable in tests.
type Options struct {
	Path        string
	StoreDriver Driver
	SQLite      string
	Debounce    time.Duration
	Interval    time.Duration
	Log         string
	Level       string
	Work        int
	Short       int
	Long        int
	Endpoint    string
	Model       string
	APIKey      string
	Timeout     time.Duration
	Latency     time.Duration
}

func (o *Options) BasePath() string { return o.Path }

func (o *Options) Driver() Driver {
	if o.StoreDriver == "" {
		return DriverDiskv
	}
	return o.StoreDriver
}

func (o *Options) SQLitePath() string {
	if o.SQLite != "" {
		return o.SQLite
	}
	return filepath.Join(o.Path, "nova.sqlite")
}

func (o *Options) FlushDebounce() time.Duration {
	if o.Debounce <= 0 {
		return 500 * time.Millisecond
	}
	return o.Debounce
}

// FlushInterval is the periodic safety flush. Zero disables it.
func (o *Options) FlushInterval() time.Duration { return o.Interval }

func (o *Options) LogFile() string {
	if o.Log != "" {
		return o.Log
	}
	return filepath.Join(o.Path, "logs", "nova.log")
}

func (o *Options) LogLevel() string {
	if o.Level == "" {
		return "info"
	}
	return o.Level
}

func (o *Options) PomodoroMinutes() (int, int, int) {
	work, short, long := o.Work, o.Short, o.Long
	if work == 0 {
		work = 25
	}
	if short == 0 {
		short = 5
	}
	if long == 0 {
		long = 15
	}
	return work, short, long
}

func (o *Options) SuggestEndpoint() string { return o.Endpoint }
func (o *Options) SuggestModel() string    { return o.Model }
func (o *Options) SuggestAPIKey() string   { return o.APIKey }

func (o *Options) SuggestTimeout() time.Duration {
	if o.Timeout <= 0 {
		return 20 * time.Second
	}
	return o.Timeout
}

func (o *Options) CloudLatency() time.Duration { return o.Latency }
