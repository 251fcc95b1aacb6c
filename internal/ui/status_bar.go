package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
)

type statusBarModel struct {
	tracker     Tracker
	statusMsg   string
	statusError bool
	version     string
}

func newStatusBarModel(tracker Tracker, version string) statusBarModel {
	return statusBarModel{tracker: tracker, version: version}
}

func (m statusBarModel) setStatus(msg statusMsg) statusBarModel {
	m.statusMsg = msg.Message
	m.statusError = msg.Err

	return m
}

func (m statusBarModel) clear() statusBarModel {
	m.statusMsg = ""
	m.statusError = false

	return m
}

func (m statusBarModel) View(width int) string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", defaultKeyMap.help.Help().Key, defaultKeyMap.help.Help().Desc)),
		styles.StatusInfo.Render(fmt.Sprintf("%s %d tracked", styles.IconHospital, m.tracker.Len())),
		styles.StatusInfo.Render(styles.IconClock + " " + m.lastRefresh()),
		m.status(),
	}

	return lipgloss.NewStyle().Width(width).Background(styles.Black).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m statusBarModel) lastRefresh() string {
	if m.tracker.Refreshing() {
		return "refreshing…"
	}

	updated, _ := m.tracker.LastRefresh()
	if updated.IsZero() {
		return "never refreshed"
	}

	return "updated " + humanize.Time(updated)
}

func (m statusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}
