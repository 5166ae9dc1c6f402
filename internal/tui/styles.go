package tui

import "github.com/charmbracelet/lipgloss"

// Covered brand palette. The semantic colors track the verdict card colors
// used by the backend's categories.
var (
	colorBlue   = lipgloss.Color("#1977BF")
	colorGreen  = lipgloss.Color("#626E5E")
	colorRed    = lipgloss.Color("#DC3545")
	colorOrange = lipgloss.Color("#FF9800")
	colorGrey   = lipgloss.Color("#6C757D")

	lightBackground = lipgloss.Color("#F4F5F6")
	lightForeground = lipgloss.Color("#1B2733")
	lightMuted      = lipgloss.Color("#8A9199")
	lightBorder     = lipgloss.Color("#D6DAE0")

	darkBackground = lipgloss.Color("#141D2B")
	darkForeground = lipgloss.Color("#F2F2F2")
	darkMuted      = lipgloss.Color("#5C6773")
	darkBorder     = lipgloss.Color("#2A3850")
)

// Theme is one of the two color schemes; the dark_mode preference picks it.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

func LightTheme() Theme {
	return Theme{
		Background: lightBackground,
		Foreground: lightForeground,
		Primary:    colorBlue,
		Muted:      lightMuted,
		Border:     lightBorder,
	}
}

func DarkTheme() Theme {
	return Theme{
		Background: darkBackground,
		Foreground: darkForeground,
		Primary:    colorBlue,
		Muted:      darkMuted,
		Border:     darkBorder,
		IsDark:     true,
	}
}

// Styles holds every styled component used by the screens.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	Prompt  lipgloss.Style
	Status  lipgloss.Style
	ErrText lipgloss.Style

	Card       lipgloss.Style
	CardTitle  lipgloss.Style
	Drawer     lipgloss.Style
	DrawerItem lipgloss.Style
	Selected   lipgloss.Style
	Badge      lipgloss.Style
	Help       lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(colorOrange),

		ErrText: lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		CardTitle: lipgloss.NewStyle().
			Bold(true),

		Drawer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		DrawerItem: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// ThemeFor picks the theme for the persisted dark_mode flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}
