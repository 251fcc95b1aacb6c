package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

const (
	nameWidth = 24
	// surfaceCells is the number of cells the widest monitor kind draws.
	surfaceCells = 3
)

var monitorTableHeaders = []string{"#", "Type", "ID", "Release", "Name"} //nolint:gochecknoglobals

type monitorTableModel struct {
	tracker  Tracker
	zoneID   string
	selected int
	zone     keyZone
	idInput  textinput.Model
	// editOriginal is restored when an id edit is cancelled.
	editOriginal uint32
}

func newMonitorTableModel(tracker Tracker) monitorTableModel {
	return monitorTableModel{
		tracker: tracker,
		zoneID:  zone.NewPrefix(),
		idInput: newIDInput(),
	}
}

func (m monitorTableModel) Init() tea.Cmd {
	return nil
}

func (m monitorTableModel) Update(msg tea.Msg) (monitorTableModel, tea.Cmd) {
	switch msg := msg.(type) {
	case keyZone:
		m.zone = msg
	case addMonitorMsg:
		if m.zone != zoneTable {
			return m, nil
		}

		return m.addMonitor()
	case tea.MouseMsg:
		if m.zone != zoneTable || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for idx := range m.tracker.Len() {
			for col := range monitorTableHeaders {
				if zone.Get(m.cellZone(idx, col)).InBounds(msg) {
					m.selected = idx

					return m, nil
				}
			}
		}
	case tea.KeyMsg:
		switch m.zone {
		case zoneEditID:
			return m.updateEditing(msg)
		case zoneTable:
			return m.updateTable(msg)
		case zoneEditKey:
		}
	}

	return m, nil
}

func (m monitorTableModel) updateTable(msg tea.KeyMsg) (monitorTableModel, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeyMap.up):
		m.selected = max(m.selected-1, 0)
	case key.Matches(msg, defaultKeyMap.down):
		m.selected = min(m.selected+1, max(m.tracker.Len()-1, 0))
	case key.Matches(msg, defaultKeyMap.add):
		return m.addMonitor()
	case key.Matches(msg, defaultKeyMap.remove):
		if m.tracker.Len() == 0 {
			return m, nil
		}
		m.tracker.Remove(m.selected)
		m.selected = min(m.selected, max(m.tracker.Len()-1, 0))

		return m, setStatusMessage("Removed monitor", false)
	case key.Matches(msg, defaultKeyMap.kind):
		if m.tracker.Len() == 0 {
			return m, nil
		}
		kind := m.tracker.CycleKind(m.selected)

		return m, setStatusMessage(fmt.Sprintf("Monitor type: %s", kindName(kind)), false)
	case key.Matches(msg, defaultKeyMap.editID):
		return m.startEditing()
	}

	return m, nil
}

// addMonitor appends a player monitor and opens its id for editing.
func (m monitorTableModel) addMonitor() (monitorTableModel, tea.Cmd) {
	m.selected = m.tracker.Add(monitor.KindSimple)

	return m.startEditing()
}

func (m monitorTableModel) startEditing() (monitorTableModel, tea.Cmd) {
	rows := m.tracker.Rows(time.Now())
	if m.selected >= len(rows) || rows[m.selected].Kind != monitor.KindSimple {
		return m, nil
	}

	m.editOriginal = rows[m.selected].PlayerID
	m.idInput.SetValue("")
	if m.editOriginal != 0 {
		m.idInput.SetValue(strconv.FormatUint(uint64(m.editOriginal), 10))
	}
	m.idInput.CursorEnd()

	return m, tea.Batch(m.idInput.Focus(), setKeyZone(zoneEditID))
}

func (m monitorTableModel) updateEditing(msg tea.KeyMsg) (monitorTableModel, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeyMap.accept):
		m.tracker.Render(m.selected, &rowSurface{input: &m.idInput})
		m.idInput.Blur()

		return m, tea.Batch(setKeyZone(zoneTable),
			setStatusMessage("Tracking player "+strconv.FormatUint(uint64(monitor.ParseID(m.idInput.Value())), 10), false))
	case key.Matches(msg, defaultKeyMap.back):
		restore := newIDInput()
		restore.SetValue(strconv.FormatUint(uint64(m.editOriginal), 10))
		m.tracker.Render(m.selected, &rowSurface{input: &restore})
		m.idInput.Blur()

		return m, setKeyZone(zoneTable)
	}

	var cmd tea.Cmd
	m.idInput, cmd = m.idInput.Update(msg)

	return m, cmd
}

func (m monitorTableModel) cellZone(row int, col int) string {
	return fmt.Sprintf("%s%d-%d", m.zoneID, row, col)
}

func (m monitorTableModel) View(width int) string {
	rows := m.tracker.Rows(time.Now())
	if len(rows) == 0 {
		return styles.InfoMessage.Width(width).Render("No players tracked, press a to add one.")
	}

	var selectedHints []string
	data := make([][]string, 0, len(rows))

	for _, row := range rows {
		surface := &rowSurface{}
		if m.zone == zoneEditID && row.Index == m.selected {
			input := m.idInput
			surface.input = &input
		}

		m.tracker.Render(row.Index, surface)

		if row.Index == m.selected {
			selectedHints = surface.hints
		}

		cells := make([]string, 0, len(monitorTableHeaders))
		cells = append(cells, strconv.Itoa(row.Index+1), kindName(row.Kind))
		for idx := range surfaceCells {
			var cell string
			if idx < len(surface.cells) {
				cell = surface.cells[idx]
			}
			cells = append(cells, cell)
		}

		name := len(cells) - 1
		cells[name] = truncate.StringWithTail(cells[name], nameWidth, "…")
		if row.Kind == monitor.KindSimple && row.Name != "" && row.Remaining == 0 {
			cells[name] = styles.Released.Render(cells[name])
		}

		for col := range cells {
			cells[col] = zone.Mark(m.cellZone(row.Index, col), cells[col])
		}

		data = append(data, cells)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderHeader(true).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Gray)).
		Width(width).
		Headers(monitorTableHeaders...).
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeading
			case row == m.selected:
				return styles.TableRowSelected
			case row%2 == 0:
				return styles.TableRowValuesEven
			default:
				return styles.TableRowValuesOdd
			}
		})

	return lipgloss.JoinVertical(lipgloss.Left, tbl.Render(), styles.Hint.Render(joinHints(selectedHints)))
}

func joinHints(hints []string) string {
	var parts []string
	for _, hint := range hints {
		if hint != "" {
			parts = append(parts, hint)
		}
	}

	return strings.Join(parts, " · ")
}

func kindName(kind monitor.Kind) string {
	if label := kind.Label(); label != "" {
		return label
	}

	return "-"
}
