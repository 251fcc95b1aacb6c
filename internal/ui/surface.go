package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
)

// rowSurface is the monitor.Surface for a single table row. Every widget drawn becomes a cell, in
// draw order. When input is set the row is being edited and text inputs are backed by it.
type rowSurface struct {
	input *textinput.Model
	cells []string
	hints []string
}

func (s *rowSurface) Label(text string, hint string) {
	s.cells = append(s.cells, text)
	s.hints = append(s.hints, hint)
}

func (s *rowSurface) TextInput(value string, hint string, invalid bool) string {
	s.hints = append(s.hints, hint)

	if s.input != nil {
		s.input.Placeholder = hint
		s.cells = append(s.cells, s.input.View())

		return s.input.Value()
	}

	if invalid {
		s.cells = append(s.cells, styles.InvalidValue.Render(value))
	} else {
		s.cells = append(s.cells, value)
	}

	return value
}

func newIDInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = monitor.MaxIDDigits
	input.Width = monitor.MaxIDDigits + 1
	input.Prompt = ""
	input.PromptStyle = styles.NoStyle
	input.TextStyle = styles.FocusedStyle
	input.PlaceholderStyle = styles.BlurredStyle

	return input
}

func newKeyInput() textinput.Model {
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 20
	input.Prompt = ""
	input.Placeholder = "Torn API key"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'
	input.TextStyle = styles.FocusedStyle
	input.PlaceholderStyle = styles.BlurredStyle

	return input
}
