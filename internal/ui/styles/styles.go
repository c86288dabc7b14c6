package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	Accent = lipgloss.Color("#f4722b")

	// Palette.
	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")
	Red         = lipgloss.Color("#B8383B")
	Green       = lipgloss.Color("#4d7455")
	Gold        = lipgloss.Color("#ffd700")
	Slate       = lipgloss.Color("#476291")

	HeaderContainerStyle = lipgloss.NewStyle().Background(GrayDarkAlt)
	FooterContainerStyle = lipgloss.NewStyle().Background(GrayDarkAlt)

	HeaderTitle     = lipgloss.NewStyle().Foreground(Accent).Bold(true).PaddingLeft(1).PaddingRight(2)
	HeaderButton    = lipgloss.NewStyle().Foreground(White).Bold(true).Padding(0, 1)
	SearchPrompt    = lipgloss.NewStyle().Foreground(Slate)
	SearchContainer = lipgloss.NewStyle().Foreground(Whiter).PaddingRight(1)

	// Navigation panel.
	PanelStyle        = lipgloss.NewStyle().Background(Black).Foreground(White)
	PanelBorder       = lipgloss.NewStyle().Foreground(Gray)
	PanelControl      = lipgloss.NewStyle().Foreground(Whiter).Bold(true)
	PanelGroup        = lipgloss.NewStyle().Foreground(Slate).Bold(true)
	PanelItem         = lipgloss.NewStyle().Foreground(White).PaddingLeft(2)
	PanelItemActive   = lipgloss.NewStyle().Foreground(Black).Background(Accent).Bold(true).PaddingLeft(2)
	PanelIcon         = lipgloss.NewStyle().Foreground(White).Align(lipgloss.Center)
	PanelIconActive   = lipgloss.NewStyle().Foreground(Black).Background(Accent).Align(lipgloss.Center)
	PanelFocused      = lipgloss.NewStyle().Underline(true)
	MenuStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Slate).Padding(0, 1)
	MenuItem          = lipgloss.NewStyle().Foreground(White)
	Tooltip           = lipgloss.NewStyle().Foreground(Black).Background(Gold).Padding(0, 1)
	ShowPanelButton   = lipgloss.NewStyle().Foreground(Black).Background(Accent).Bold(true).Padding(0, 1)
	DrawerShadow      = lipgloss.NewStyle().Foreground(Gray)
	DrawerDismiss     = lipgloss.NewStyle().Foreground(Red).Bold(true)
	DrawerTitle       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	ContentTitle      = lipgloss.NewStyle().Foreground(Accent).Bold(true).MarginBottom(1)
	ContentBody       = lipgloss.NewStyle().Foreground(White)
	ContentMuted      = lipgloss.NewStyle().Foreground(Whiter).Italic(true)
	HelpBox           = lipgloss.NewStyle().Padding(1, 3).Border(lipgloss.RoundedBorder()).BorderForeground(Slate)
	PanelLabel        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right).Width(16)
	PanelValue        = lipgloss.NewStyle().Width(40)
	StatusState       = lipgloss.NewStyle().Foreground(Green).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusChanged     = lipgloss.NewStyle().Foreground(Whiter).PaddingRight(2)
	StatusError       = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage     = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp        = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion     = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingLeft(1).PaddingRight(1)
	StatusRouteStyle  = lipgloss.NewStyle().Foreground(Slate).PaddingRight(2)
	IconMenu          = "☰"
	IconChevronLeft   = "«"
	IconChevronRight  = "»"
	IconOverflow      = "⋯"
	IconGroupOpen     = "▾"
	IconGroupClosed   = "▸"
	IconDismiss       = "✕"
	IconItemFallback  = "•"
	IconGroupFallback = "■"
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// Fade blends fg toward bg. An opacity of 1 returns fg unchanged.
func Fade(fg lipgloss.Color, bg lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return fg
	}

	from, errFrom := colorful.Hex(string(fg))
	to, errTo := colorful.Hex(string(bg))
	if errFrom != nil || errTo != nil {
		return fg
	}

	blended := to.BlendLab(from, max(opacity, 0)).Clamped()

	return lipgloss.Color(blended.Hex())
}
