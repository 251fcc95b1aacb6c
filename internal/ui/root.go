package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

const (
	buttonAdd    = "add"
	buttonReload = "reload"
	buttonKey    = "key"
)

// rootModel is the top level model for the ui side of the app.
type rootModel struct {
	ctx            context.Context //nolint:containedctx
	tracker        Tracker
	currentView    contentView
	zone           keyZone
	height         int
	width          int
	refreshEvery   time.Duration
	tickGeneration int
	buttonZoneID   string
	tableModel     monitorTableModel
	apiKeyModel    apiKeyModel
	modalModel     invalidKeyModel
	helpModel      helpModel
	statusModel    statusBarModel
}

func newRootModel(ctx context.Context, tracker Tracker, conf config.Config, build BuildInfo, paths Paths) rootModel {
	return rootModel{
		ctx:          ctx,
		tracker:      tracker,
		currentView:  viewMain,
		zone:         zoneTable,
		refreshEvery: conf.RefreshEvery(),
		buttonZoneID: zone.NewPrefix(),
		tableModel:   newMonitorTableModel(tracker),
		apiKeyModel:  newAPIKeyModel(tracker),
		helpModel:    newHelpModel(build, paths),
		statusModel:  newStatusBarModel(tracker, build.Version),
	}
}

func (m rootModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("hosp-tui"),
		clockTick(),
		autoRefreshAfter(m.refreshEvery, m.tickGeneration),
	}

	if m.tracker.Len() > 0 && m.tracker.Credential() != "" {
		cmds = append(cmds, refreshMonitors(m.ctx, m.tracker))
	}

	return tea.Batch(cmds...)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width

		return m, nil
	case clockTickMsg:
		return m, clockTick()
	case autoRefreshMsg:
		if msg.generation != m.tickGeneration {
			return m, nil
		}

		next := autoRefreshAfter(m.refreshEvery, m.tickGeneration)
		if m.tracker.Refreshing() || m.tracker.Credential() == "" {
			slog.Debug("Skipping auto refresh", slog.Bool("refreshing", m.tracker.Refreshing()))

			return m, next
		}

		return m, tea.Batch(next, refreshMonitors(m.ctx, m.tracker))
	case config.Config:
		m.refreshEvery = msg.RefreshEvery()
		m.tickGeneration++

		return m, tea.Batch(autoRefreshAfter(m.refreshEvery, m.tickGeneration),
			setStatusMessage("Config reloaded", false))
	case refreshDoneMsg:
		return m.onRefreshDone(msg)
	case credentialChangedMsg:
		if m.tracker.Len() == 0 {
			return m, nil
		}

		return m, refreshMonitors(m.ctx, m.tracker)
	case statusMsg:
		m.statusModel = m.statusModel.setStatus(msg)

		return m, clearErrorAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.statusModel = m.statusModel.clear()

		return m, nil
	case contentView:
		m.currentView = msg

		return m, nil
	case keyZone:
		m.zone = msg
	case tea.MouseMsg:
		if cmd := m.onMouse(msg); cmd != nil {
			return m, cmd
		}
	case tea.KeyMsg:
		if handled, cmd := m.onKey(msg); handled {
			return m, cmd
		}
	}

	return m.propagate(inMsg)
}

func (m rootModel) onKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, defaultKeyMap.forceQuit) {
		return true, tea.Quit
	}

	switch m.currentView {
	case viewInvalidKey:
		switch {
		case key.Matches(msg, defaultKeyMap.back), key.Matches(msg, defaultKeyMap.accept):
			return true, setView(viewMain)
		case key.Matches(msg, defaultKeyMap.editKey):
			return true, tea.Batch(setView(viewMain), setKeyZone(zoneEditKey))
		}

		return true, nil
	case viewHelp:
		if key.Matches(msg, defaultKeyMap.back) || key.Matches(msg, defaultKeyMap.help) {
			return true, setView(viewMain)
		}

		if key.Matches(msg, defaultKeyMap.quit) {
			return true, tea.Quit
		}

		return true, nil
	case viewMain:
	}

	// Text inputs get every key while focused.
	if m.zone != zoneTable {
		return false, nil
	}

	switch {
	case key.Matches(msg, defaultKeyMap.quit):
		return true, tea.Quit
	case key.Matches(msg, defaultKeyMap.help):
		return true, setView(viewHelp)
	case key.Matches(msg, defaultKeyMap.reload):
		return true, m.reload()
	case key.Matches(msg, defaultKeyMap.editKey):
		return true, setKeyZone(zoneEditKey)
	}

	return false, nil
}

func (m rootModel) onMouse(msg tea.MouseMsg) tea.Cmd {
	if m.currentView != viewMain || m.zone != zoneTable ||
		msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case zone.Get(m.buttonZoneID + buttonAdd).InBounds(msg):
		return func() tea.Msg { return addMonitorMsg{} }
	case zone.Get(m.buttonZoneID + buttonReload).InBounds(msg):
		return m.reload()
	case zone.Get(m.buttonZoneID + buttonKey).InBounds(msg):
		return setKeyZone(zoneEditKey)
	}

	return nil
}

func (m rootModel) reload() tea.Cmd {
	if m.tracker.Credential() == "" {
		return tea.Batch(setStatusMessage("Set an API key first", true), setKeyZone(zoneEditKey))
	}

	if m.tracker.Refreshing() {
		return setStatusMessage("Refresh already running", false)
	}

	return refreshMonitors(m.ctx, m.tracker)
}

func (m rootModel) onRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, state.ErrRefreshInProgress) {
			return m, nil
		}

		return m, setStatusMessage(msg.err.Error(), true)
	}

	report := msg.report
	if report.CredentialRejected() {
		m.modalModel = invalidKeyModel{credential: rejectedCredential(report)}
		m.currentView = viewInvalidKey

		return m, setStatusMessage(torn.ErrInvalidCredential.Error(), true)
	}

	attempted := 0
	var problem error
	for _, result := range report.Results {
		if result.Monitor.Kind() == monitor.KindNone {
			continue
		}
		attempted++

		if result.Err != nil && problem == nil && !errors.Is(result.Err, torn.ErrInvalidIdentifier) {
			problem = result.Err
		}
	}

	switch failed := report.Failed(); {
	case failed == 0:
		return m, setStatusMessage(fmt.Sprintf("Refreshed %d players", attempted), false)
	case problem == nil:
		return m, setStatusMessage(fmt.Sprintf("%d unknown player ids", failed), true)
	default:
		return m, setStatusMessage(fmt.Sprintf("%d of %d refreshes failed: %s", failed, attempted, problem.Error()), true)
	}
}

// rejectedCredential returns the key sent with the first request refused for a bad key.
func rejectedCredential(report monitor.Report) string {
	for _, result := range report.Results {
		if !errors.Is(result.Err, torn.ErrInvalidCredential) {
			continue
		}

		if simple, ok := result.Monitor.(*monitor.Simple); ok {
			return simple.Credential()
		}
	}

	return ""
}

func (m rootModel) View() string {
	header := styles.HeaderContainerStyle.Width(m.width).Render(m.headerView())
	footer := styles.FooterContainerStyle.Width(m.width).Render(m.statusModel.View(m.width))
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	var content string
	switch m.currentView {
	case viewHelp:
		content = m.helpModel.View(m.width, contentHeight)
	case viewInvalidKey:
		content = m.modalModel.View(m.width, contentHeight)
	case viewMain:
		content = m.tableModel.View(m.width)
	}

	ctr := styles.ContentContainerStyle.Height(contentHeight).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, ctr, footer))
}

func (m rootModel) headerView() string {
	button := func(id string, label string) string {
		style := styles.Button
		if id == buttonKey && m.zone == zoneEditKey {
			style = styles.ButtonActive
		}

		return zone.Mark(m.buttonZoneID+id, style.Render("[ "+label+" ]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.StatusInfo.Render(styles.IconHospital+" hosp-tui"),
		button(buttonAdd, "Add player"),
		button(buttonReload, "Reload"),
		button(buttonKey, "Key"),
		"  ",
		m.apiKeyModel.View())
}

func (m rootModel) propagate(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 2)

	m.tableModel, cmds[0] = m.tableModel.Update(msg)
	m.apiKeyModel, cmds[1] = m.apiKeyModel.Update(msg)

	return m, tea.Batch(cmds...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/hosp-tui/hosp-tui.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case clockTickMsg, tea.MouseMsg, tea.KeyMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
