package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
)

// invalidKeyModel blocks the ui after the api refused the key. It shows the key that was sent, which
// is usually enough to spot a paste error.
type invalidKeyModel struct {
	credential string
}

func (m invalidKeyModel) View(width int, height int) string {
	used := m.credential
	if used == "" {
		used = "(empty)"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitle.Render("API key is not valid"),
		"",
		styles.DetailRow("API key entered", used),
		"",
		styles.Hint.Render("k change key · esc dismiss"),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.ModalStyle.Render(content))
}
