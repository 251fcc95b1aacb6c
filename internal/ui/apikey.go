package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
)

type credentialChangedMsg struct{}

type apiKeyModel struct {
	tracker Tracker
	input   textinput.Model
	active  bool
}

func newAPIKeyModel(tracker Tracker) apiKeyModel {
	return apiKeyModel{tracker: tracker, input: newKeyInput()}
}

func (m apiKeyModel) Init() tea.Cmd {
	return nil
}

func (m apiKeyModel) Update(msg tea.Msg) (apiKeyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case keyZone:
		if msg == zoneEditKey && !m.active {
			m.active = true
			m.input.SetValue(m.tracker.Credential())
			m.input.CursorEnd()

			return m, m.input.Focus()
		}

		if msg != zoneEditKey {
			m.active = false
			m.input.Blur()
		}
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}

		switch {
		case key.Matches(msg, defaultKeyMap.accept):
			m.tracker.SetCredential(strings.TrimSpace(m.input.Value()))

			return m, tea.Batch(setKeyZone(zoneTable), setStatusMessage("API key updated", false),
				func() tea.Msg { return credentialChangedMsg{} })
		case key.Matches(msg, defaultKeyMap.back):
			return m, setKeyZone(zoneTable)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m apiKeyModel) View() string {
	label := styles.IconKey + " API key: "
	if m.active {
		return label + m.input.View()
	}

	return label + maskCredential(m.tracker.Credential())
}

// maskCredential hides all but the last four characters of a key.
func maskCredential(credential string) string {
	const visible = 4

	if credential == "" {
		return styles.InvalidValue.Render("not set")
	}

	if len(credential) <= visible {
		return strings.Repeat("•", len(credential))
	}

	return strings.Repeat("•", len(credential)-visible) + credential[len(credential)-visible:]
}
