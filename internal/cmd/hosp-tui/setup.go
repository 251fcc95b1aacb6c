package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"

	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/leighmacdonald/hosp-tui/internal/network"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/store"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
)

// environment holds the services shared by every command.
type environment struct {
	config   config.Config
	loader   *config.Loader
	logFile  io.Closer
	database *sql.DB
	// history is nil when history_enabled is off.
	history *store.Queries
	tracker *state.Tracker
}

func setup(ctx context.Context, changes chan config.Config) (*environment, error) {
	loader, userConfig, errConfig := loadConfig(changes)
	if errConfig != nil {
		return nil, errConfig
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, userConfig.LogLevel())
	if errLogger != nil {
		return nil, errors.Join(errLogger, errApp)
	}

	env := &environment{config: userConfig, loader: loader, logFile: logFile}

	var recorder state.Recorder
	if userConfig.HistoryEnabled {
		database, errDB := store.Open(ctx, config.Path(config.DefaultDBName), true)
		if errDB != nil {
			env.Close()

			return nil, errors.Join(errDB, errApp)
		}

		env.database = database
		env.history = store.New(database)
		recorder = env.history
	}

	client := torn.New(userConfig.APIBaseURL, network.NewHTTPClient(userConfig.RequestTimeout()))
	env.tracker = state.NewTracker(userConfig.StatePath(), client, recorder)
	env.tracker.Init()

	return env, nil
}

func (e *environment) Close() {
	if e.database != nil {
		if err := e.database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}

	if err := e.logFile.Close(); err != nil {
		slog.Error("Failed to close log file", slog.String("error", err.Error()))
	}
}
