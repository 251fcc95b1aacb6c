package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
)

type helpModel struct {
	helpView help.Model
	build    BuildInfo
	paths    Paths
}

func newHelpModel(build BuildInfo, paths Paths) helpModel {
	return helpModel{helpView: help.New(), build: build, paths: paths}
}

func (m helpModel) View(width int, height int) string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			defaultKeyMap.add,
			defaultKeyMap.remove,
			defaultKeyMap.kind,
			defaultKeyMap.editID,
			defaultKeyMap.editKey,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			defaultKeyMap.reload,
			defaultKeyMap.up,
			defaultKeyMap.down,
			defaultKeyMap.back,
			defaultKeyMap.help,
			defaultKeyMap.quit,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top, styles.HelpBox.Render(left), styles.HelpBox.Render(right))

	commit := m.build.Commit
	if len(commit) > 8 {
		commit = commit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.build.Version),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.build.Date),
		styles.DetailRow("Config Path", m.paths.Config),
		styles.DetailRow("State Path", m.paths.State),
		styles.DetailRow("Log Path", m.paths.Log),
		styles.DetailRow("History DB", m.paths.DB),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
