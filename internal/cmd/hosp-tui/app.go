package main

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/store"
	"github.com/leighmacdonald/hosp-tui/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const pruneInterval = time.Hour

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the main application container. Very little logic is contained within this struct. Its mostly
// responsible for routing messages between different systems.
type App struct {
	ui            UI
	config        config.Config
	tracker       *state.Tracker
	history       *store.Queries
	configUpdates chan config.Config
}

func NewApp(conf config.Config, tracker *state.Tracker, history *store.Queries, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		tracker:       tracker,
		history:       history,
		configUpdates: configUpdates,
	}
}

func (app *App) createUI(ctx context.Context, loader *config.Loader) UI {
	app.ui = ui.New(ctx, app.tracker, app.config,
		ui.BuildInfo{Version: BuildVersion, Commit: BuildCommit, Date: BuildDate},
		ui.Paths{
			Config: loader.Path(),
			State:  app.tracker.Path(),
			Log:    config.Path(config.DefaultLogName),
			DB:     config.Path(config.DefaultDBName),
		})

	return app.ui
}

// Start runs the background loop: forwarding config reloads to the ui and pruning old history.
func (app *App) Start(ctx context.Context) {
	app.pruneHistory(ctx)

	pruneTicker := time.NewTicker(pruneInterval)
	defer pruneTicker.Stop()

	for {
		select {
		case conf := <-app.configUpdates:
			app.config = conf
			if app.ui != nil {
				app.ui.Send(conf)
			}
		case <-pruneTicker.C:
			app.pruneHistory(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) pruneHistory(ctx context.Context) {
	retention := app.config.HistoryRetention()
	if app.history == nil || retention == 0 {
		return
	}

	removed, err := app.history.PruneRefreshes(ctx, time.Now().Add(-retention))
	if err != nil {
		slog.Error("Failed to prune refresh history", slog.String("error", err.Error()))

		return
	}

	if removed > 0 {
		slog.Debug("Pruned refresh history", slog.Int64("removed", removed))
	}
}

// run is the main entry point of hosp-tui.
func run(cmd *cobra.Command, _ []string) error {
	configUpdates := make(chan config.Config)

	env, errSetup := setup(cmd.Context(), configUpdates)
	if errSetup != nil {
		return errSetup
	}
	defer env.Close()

	slog.Info("Starting hosp-tui", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	env.loader.Watch()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := NewApp(env.config, env.tracker, env.history, configUpdates)
	userInterface := app.createUI(ctx, env.loader)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		// Quitting the ui ends the app.
		defer cancel()

		return userInterface.Run()
	})
	group.Go(func() error {
		app.Start(groupCtx)

		return nil
	})

	errRun := group.Wait()

	if err := env.tracker.Teardown(); err != nil {
		slog.Error("Failed to save state", slog.String("error", err.Error()))

		return errors.Join(err, errRun, errApp)
	}

	if errRun != nil {
		return errors.Join(errRun, errApp)
	}

	return nil
}
