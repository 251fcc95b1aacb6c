package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	zone "github.com/lrstanley/bubblezone"
)

const (
	clearMessageTimeout = time.Second * 10
)

var ErrUIExit = errors.New("ui error returned")

// Tracker is the application state the ui drives. *state.Tracker satisfies it.
type Tracker interface {
	Credential() string
	SetCredential(credential string)
	Add(kind monitor.Kind) int
	Remove(index int)
	CycleKind(index int) monitor.Kind
	Render(index int, surface monitor.Surface)
	Rows(now time.Time) []state.Row
	Len() int
	Refreshing() bool
	LastRefresh() (time.Time, monitor.Report)
	RefreshAll(ctx context.Context) (monitor.Report, error)
}

// BuildInfo is shown on the help page.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Paths are the on disk locations shown on the help page.
type Paths struct {
	Config string
	State  string
	Log    string
	DB     string
}

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, tracker Tracker, conf config.Config, build BuildInfo, paths Paths) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			newRootModel(ctx, tracker, conf, build, paths),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(30)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

// Send pushes a message into the running program, eg. a reloaded config.Config.
func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
