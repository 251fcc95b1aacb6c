package config

import (
	"errors"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Writer persists a config.
type Writer interface {
	Write(config Config) error
	Path() string
}

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

func NewLoader(changes chan<- Config) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("api_base_url", DefaultAPIBaseURL)
	loader.SetDefault("state_file", "")
	loader.SetDefault("refresh_interval", 60)
	loader.SetDefault("http_timeout", int(DefaultHTTPTimeout.Seconds()))
	loader.SetDefault("history_enabled", true)
	loader.SetDefault("history_retention_days", 7)
	loader.SetDefault("debug", false)
	loader.SetConfigName(DefaultConfigName)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)
	loader.AddConfigPath(Path(""))
	loader.AddConfigPath(".")
	loader.AutomaticEnv()

	return &loader
}

// Watch starts watching the config file in use, pushing reloaded configs onto the changes channel.
func (cl *Loader) Watch() {
	if cl.changes == nil {
		return
	}

	cl.OnConfigChange(cl.onConfigChange)
	cl.WatchConfig()
}

func (cl *Loader) Path() string {
	if used := cl.ConfigFileUsed(); used != "" {
		return used
	}

	return Path(DefaultConfigName + ".yaml")
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("api_base_url", config.APIBaseURL)
	cl.Set("state_file", config.StateFile)
	cl.Set("refresh_interval", config.RefreshInterval)
	cl.Set("http_timeout", config.HTTPTimeout)
	cl.Set("history_enabled", config.HistoryEnabled)
	cl.Set("history_retention_days", config.HistoryRetentionDays)
	cl.Set("debug", config.Debug)

	if err := cl.WriteConfigAs(cl.Path()); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config file, if any, over the defaults. A missing file is not an error.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
