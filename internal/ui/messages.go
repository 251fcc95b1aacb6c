package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
)

type contentView int

const (
	viewMain contentView = iota
	viewHelp
	viewInvalidKey
)

// keyZone is the area currently receiving keyboard input. Outside of zoneTable keys are fed to a text input.
type keyZone int

const (
	zoneTable keyZone = iota
	zoneEditID
	zoneEditKey
)

type clearStatusMessageMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

// clockTickMsg redraws the countdowns.
type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// autoRefreshMsg carries the generation of the ticker that produced it. Ticks from a replaced
// ticker are dropped.
type autoRefreshMsg struct {
	generation int
}

func autoRefreshAfter(interval time.Duration, generation int) tea.Cmd {
	if interval <= 0 {
		return nil
	}

	return tea.Tick(interval, func(_ time.Time) tea.Msg {
		return autoRefreshMsg{generation: generation}
	})
}

type addMonitorMsg struct{}

type refreshDoneMsg struct {
	report monitor.Report
	err    error
}

func refreshMonitors(ctx context.Context, tracker Tracker) tea.Cmd {
	return func() tea.Msg {
		report, err := tracker.RefreshAll(ctx)

		return refreshDoneMsg{report: report, err: err}
	}
}

func setView(view contentView) tea.Cmd {
	return func() tea.Msg { return view }
}

func setKeyZone(zone keyZone) tea.Cmd {
	return func() tea.Msg { return zone }
}
