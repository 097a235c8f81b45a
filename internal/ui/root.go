package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/todolist/internal/app"
	"github.com/dori/todolist/internal/ui/theme"
	"github.com/dori/todolist/internal/ui/views"
)

// RootModel is the main application model. It owns the header, footer and
// help overlay and delegates everything else to the list view.
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	listView    views.ListView
	helpVisible bool

	statusMsg string
}

// NewRootModel creates a new root model and applies the configured theme
func NewRootModel(application *app.App) RootModel {
	if t, ok := theme.ByName(application.Config.Theme); ok {
		theme.SetTheme(t)
	} else if application.Config.Theme != "" {
		application.Logger.Warn("unknown theme, using default", "theme", application.Config.Theme)
	}

	h := help.New()
	h.ShowAll = true

	return RootModel{
		app:      application,
		keys:     DefaultKeyMap(),
		help:     h,
		listView: views.NewListView(application.Tasks),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	count := len(m.app.Tasks.Tasks())
	return tea.Batch(
		m.listView.Init(),
		func() tea.Msg {
			return StatusMsg{Message: fmt.Sprintf("Loaded %d tasks", count)}
		},
	)
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (2 lines)
		m.listView = m.listView.SetSize(m.width, m.height-3)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		isInputMode := m.listView.IsInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, 'q' only when not typing
			if msg.String() == "ctrl+c" || !isInputMode {
				m.listView = m.listView.CommitEdit()
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			return m, m.cycleTheme()
		}

		if !isInputMode {
			if m.helpVisible {
				// Any key closes the overlay
				m.helpVisible = false
				return m, nil
			}
			if key.Matches(msg, m.keys.Help) {
				m.helpVisible = true
				return m, nil
			}
		}

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	newListView, cmd := m.listView.Update(msg)
	m.listView = newListView.(views.ListView)
	return m, cmd
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	contentHeight := m.height - 3
	if m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		content = m.listView.View()
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}

	return strings.Join([]string{m.renderHeader(), content, m.renderFooter()}, "\n")
}

// renderHeader renders the app name, active filter and theme
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("todolist")

	indicatorStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	filterIndicator := indicatorStyle.Render(fmt.Sprintf("[%s]", m.app.Tasks.Filter().Label()))
	themeIndicator := indicatorStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, filterIndicator)
	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + themeIndicator
}

// renderFooter renders the status line and context-aware key hints
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	hint := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var lines []string
	if m.statusMsg != "" {
		lines = append(lines, styles.Footer.Foreground(t.Info).Render(m.statusMsg))
	}

	switch m.listView.Mode() {
	case views.ListModeAdd:
		lines = append(lines, hint("enter", "add")+sep+hint("esc", "done adding"))
	case views.ListModeEdit:
		lines = append(lines, hint("enter/esc/tab", "save")+sep+hint("empty", "deletes the task"))
	case views.ListModeSearch:
		lines = append(lines, hint("type", "filter live")+sep+hint("enter/esc", "keep query"))
	default:
		if m.helpVisible {
			lines = append(lines, hint("any key", "close help"))
		} else {
			lines = append(lines, m.help.ShortHelpView(m.keys.ShortHelp()))
		}
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("todolist help"))
	b.WriteString("\n")
	b.WriteString(styles.Panel.Render(m.help.View(m.keys)))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Edits are saved when you press enter or leave the field. Saving empty text deletes the task."))
	return b.String()
}

// cycleTheme switches to the next theme and reports it
func (m RootModel) cycleTheme() tea.Cmd {
	next := theme.Next()
	theme.SetTheme(next)
	m.app.Logger.Debug("theme changed", "theme", next.Name)
	return func() tea.Msg {
		return ThemeChangedMsg{ThemeName: next.Name}
	}
}
