package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Info      lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Task rows
	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxDone lipgloss.Style

	// Filter tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	Title    lipgloss.Style
	Label    lipgloss.Style
	Summary  lipgloss.Style
	Empty    lipgloss.Style
	EditText lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Panel lipgloss.Style

	// Help
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		Checkbox: lipgloss.NewStyle().
			Foreground(t.Secondary),

		CheckboxDone: lipgloss.NewStyle().
			Foreground(t.Success),

		Tab: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Summary: lipgloss.NewStyle().
			Foreground(t.Info).
			Padding(0, 1),

		Empty: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Padding(1, 1),

		// Selected content of an edit box before the first keystroke
		EditText: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Secondary),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the current one, wrapping around
func Next() Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == Current.Theme.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
