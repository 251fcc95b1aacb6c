package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "hosp-tui"
	DefaultConfigName  = "hosp-tui"
	DefaultDBName      = "hosp-tui.db"
	DefaultLogName     = "hosp-tui.log"
	DefaultStateName   = "persistence.json"
	EnvPrefix          = "hosptui"
	DefaultAPIBaseURL  = "https://api.torn.com/v2/"
	DefaultHTTPTimeout = 15 * time.Second
)

type Config struct {
	APIBaseURL string `mapstructure:"api_base_url"`
	// StateFile is where the api key and monitor list are persisted between runs.
	StateFile string `mapstructure:"state_file"`
	// RefreshInterval is the auto refresh period in seconds. 0 disables auto refresh, leaving only
	// manual reloads.
	RefreshInterval int `mapstructure:"refresh_interval"`
	// HTTPTimeout bounds a single api request, in seconds.
	HTTPTimeout          int  `mapstructure:"http_timeout"`
	HistoryEnabled       bool `mapstructure:"history_enabled"`
	HistoryRetentionDays int  `mapstructure:"history_retention_days"`
	Debug                bool `mapstructure:"debug"`
}

func (c Config) RefreshEvery() time.Duration {
	if c.RefreshInterval <= 0 {
		return 0
	}

	return time.Duration(c.RefreshInterval) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return DefaultHTTPTimeout
	}

	return time.Duration(c.HTTPTimeout) * time.Second
}

// HistoryRetention is how long refresh history is kept, 0 keeps everything.
func (c Config) HistoryRetention() time.Duration {
	if c.HistoryRetentionDays <= 0 {
		return 0
	}

	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour
}

func (c Config) StatePath() string {
	if c.StateFile == "" {
		return Path(DefaultStateName)
	}

	return c.StateFile
}

func (c Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.OpenFile(Path(logPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
