package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	Red   = lipgloss.Color("#B8383B")
	Blu   = lipgloss.Color("#5885A2")
	Green = lipgloss.Color("#4d7455")

	ColourStrange = lipgloss.Color("#cf6a32")
	ColourLimited = lipgloss.Color("#ffd700")
	ColourVintage = lipgloss.Color("#476291")
	ColourUnusual = lipgloss.Color("#8650ac")

	ContainerBorder = lipgloss.DoubleBorder()
	ContainerStyle  = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Gray)

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	NoStyle      = lipgloss.NewStyle()

	Button       = lipgloss.NewStyle().Foreground(ColourVintage).Bold(true).PaddingRight(1)
	ButtonActive = lipgloss.NewStyle().Foreground(Accent).Bold(true).PaddingRight(1)

	TableHeading       = lipgloss.NewStyle().Foreground(ColourStrange).Bold(true).PaddingRight(2)
	TableRowValuesEven = lipgloss.NewStyle().Background(GrayDark).PaddingRight(2)
	TableRowValuesOdd  = lipgloss.NewStyle().Background(GrayDarkAlt).PaddingRight(2)
	TableRowSelected   = lipgloss.NewStyle().Bold(true).Background(Blu).Foreground(Black).PaddingRight(2)

	InvalidValue = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Released     = lipgloss.NewStyle().Foreground(Green)
	Hint         = lipgloss.NewStyle().Foreground(Gray).Italic(true)

	PanelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusInfo    = lipgloss.NewStyle().Foreground(ColourStrange).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingRight(2)

	ModalStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Red).Padding(1, 3)
	ModalTitle = lipgloss.NewStyle().Foreground(Red).Bold(true)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)

	HelpBox = lipgloss.NewStyle().Padding(2)

	IconHospital = "🏥"
	IconKey      = "🔑"
	IconClock    = "⏱"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}
