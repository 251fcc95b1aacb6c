package ui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	add       key.Binding
	remove    key.Binding
	reload    key.Binding
	kind      key.Binding
	editID    key.Binding
	editKey   key.Binding
	accept    key.Binding
	back      key.Binding
	up        key.Binding
	down      key.Binding
	quit      key.Binding
	help      key.Binding
	forceQuit key.Binding
}

var defaultKeyMap = keymap{
	add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "Add player"),
	),
	remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "Remove"),
	),
	reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Reload"),
	),
	kind: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "Monitor type"),
	),
	editID: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Edit ID"),
	),
	editKey: key.NewBinding(
		key.WithKeys("k"),
		key.WithHelp("k", "API key"),
	),
	accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Accept"),
	),
	back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "Up"),
	),
	down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "Down"),
	),
	quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "Quit"),
	),
	forceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "Quit"),
	),
	help: key.NewBinding(
		key.WithKeys("h", "H"),
		key.WithHelp("h", "Help"),
	),
}
