package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/hosp-tui/internal/config"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	err error
}

func (f stubFetcher) Player(_ context.Context, _ string, _ uint32) (torn.PlayerSnapshot, error) {
	if f.err != nil {
		return torn.PlayerSnapshot{}, f.err
	}

	return torn.PlayerSnapshot{Name: "Someone", States: map[string]int64{}}, nil
}

func newTestTracker(t *testing.T, fetcher monitor.Fetcher) *state.Tracker {
	t.Helper()
	zone.NewGlobal()

	return state.NewTracker(filepath.Join(t.TempDir(), "state.json"), fetcher, nil)
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func TestRowSurface(t *testing.T) {
	display := &rowSurface{}
	require.Equal(t, "42", display.TextInput("42", "ID to query", false))
	display.Label("ETA: 00:00:01", "Time to leave hospital")
	require.Equal(t, []string{"42", "ETA: 00:00:01"}, display.cells)
	require.Equal(t, "ID to query · Time to leave hospital", joinHints(display.hints))

	input := textinput.New()
	input.SetValue("77")
	editing := &rowSurface{input: &input}
	require.Equal(t, "77", editing.TextInput("42", "ID to query", false))
	require.Equal(t, "ID to query", input.Placeholder)
}

func TestMaskCredential(t *testing.T) {
	require.Equal(t, "•••", maskCredential("abc"))
	require.Equal(t, "••••••wxyz", maskCredential("abcdefwxyz"))
	require.Contains(t, maskCredential(""), "not set")
}

func TestAddAndEditID(t *testing.T) {
	tracker := newTestTracker(t, stubFetcher{})
	table := newMonitorTableModel(tracker)

	table, cmd := table.Update(runes("a"))
	require.NotNil(t, cmd)
	require.Equal(t, 1, tracker.Len())

	table, _ = table.Update(zoneEditID)
	for _, char := range "12x3" {
		table, _ = table.Update(runes(string(char)))
	}

	table, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, uint32(123), tracker.Rows(time.Now())[0].PlayerID)

	// Cancelling restores the previous id.
	table, _ = table.Update(zoneTable)
	table, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	table, _ = table.Update(zoneEditID)
	table, _ = table.Update(runes("9"))
	_, _ = table.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, uint32(123), tracker.Rows(time.Now())[0].PlayerID)
}

func TestTableRemoveAndKind(t *testing.T) {
	tracker := newTestTracker(t, stubFetcher{})
	tracker.Add(monitor.KindSimple)
	tracker.Add(monitor.KindSimple)

	table := newMonitorTableModel(tracker)
	table, _ = table.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, table.selected)

	table, _ = table.Update(runes("t"))
	require.Equal(t, monitor.KindNone, tracker.Rows(time.Now())[1].Kind)

	table, _ = table.Update(runes("x"))
	require.Equal(t, 1, tracker.Len())
	require.Equal(t, 0, table.selected)
	require.Contains(t, table.View(80), "Simple")
}

func TestInvalidKeyOpensModal(t *testing.T) {
	tracker := newTestTracker(t, stubFetcher{err: torn.APIError{Kind: torn.InvalidCredential, Code: 2}})
	tracker.SetCredential("BADKEY")
	tracker.Add(monitor.KindSimple)

	report, err := tracker.RefreshAll(t.Context())
	require.NoError(t, err)

	model := newRootModel(t.Context(), tracker, config.Config{}, BuildInfo{Version: "test"}, Paths{})
	updated, cmd := model.Update(refreshDoneMsg{report: report})
	require.NotNil(t, cmd)

	root, ok := updated.(rootModel)
	require.True(t, ok)
	require.Equal(t, viewInvalidKey, root.currentView)
	require.Equal(t, "BADKEY", root.modalModel.credential)
	require.Contains(t, root.modalModel.View(80, 20), "BADKEY")

	// The modal swallows everything but dismiss and change key.
	updated, _ = root.Update(runes("x"))
	require.Equal(t, 1, tracker.Len())

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	updated, _ = updated.Update(cmd())
	require.Equal(t, viewMain, updated.(rootModel).currentView) //nolint:forcetypeassert
}

func TestAutoRefreshGeneration(t *testing.T) {
	tracker := newTestTracker(t, stubFetcher{})
	model := newRootModel(t.Context(), tracker, config.Config{RefreshInterval: 60}, BuildInfo{}, Paths{})

	updated, cmd := model.Update(config.Config{RefreshInterval: 5})
	require.NotNil(t, cmd)

	root := updated.(rootModel) //nolint:forcetypeassert
	require.Equal(t, 5*time.Second, root.refreshEvery)
	require.Equal(t, 1, root.tickGeneration)

	_, cmd = root.Update(autoRefreshMsg{generation: 0})
	require.Nil(t, cmd)
}

func TestRefreshDoneStatus(t *testing.T) {
	tracker := newTestTracker(t, stubFetcher{err: torn.APIError{Kind: torn.Unclassified, Code: 9, Message: "API disabled"}})
	tracker.SetCredential("KEY")
	tracker.Add(monitor.KindSimple)
	tracker.Add(monitor.KindNone)

	report, err := tracker.RefreshAll(t.Context())
	require.NoError(t, err)

	model := newRootModel(t.Context(), tracker, config.Config{}, BuildInfo{}, Paths{})
	_, cmd := model.Update(refreshDoneMsg{report: report})
	require.NotNil(t, cmd)

	msg, ok := cmd().(statusMsg)
	require.True(t, ok)
	require.True(t, msg.Err)
	require.Equal(t, "1 of 1 refreshes failed: unclassified api error: code 9: API disabled", msg.Message)
}
