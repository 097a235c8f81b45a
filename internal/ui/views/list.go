package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/todolist/internal/model"
	"github.com/dori/todolist/internal/tasklist"
	"github.com/dori/todolist/internal/ui/theme"
)

// ListMode represents the current input mode of the list view
type ListMode int

const (
	ListModeNormal ListMode = iota
	ListModeAdd
	ListModeEdit
	ListModeSearch
)

func (m ListMode) String() string {
	switch m {
	case ListModeNormal:
		return "Normal"
	case ListModeAdd:
		return "Add"
	case ListModeEdit:
		return "Edit"
	case ListModeSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// Board receives frames and the summary from the task controller.
// The list view reads it on every View call.
type Board struct {
	frame   tasklist.Frame
	summary string
}

// Draw replaces the rows
func (b *Board) Draw(frame tasklist.Frame) {
	b.frame = frame
}

// DrawSummary replaces the summary line
func (b *Board) DrawSummary(summary string) {
	b.summary = summary
}

// Frame returns the last drawn frame
func (b *Board) Frame() tasklist.Frame {
	return b.frame
}

// Summary returns the last drawn summary
func (b *Board) Summary() string {
	return b.summary
}

// ListView displays the task list with its add field, filter tabs,
// search field and summary line
type ListView struct {
	tasks  *tasklist.Controller
	board  *Board
	width  int
	height int

	cursor       int
	scrollOffset int

	mode        ListMode
	addInput    textinput.Model
	searchInput textinput.Model
	editInput   textinput.Model
	editingID   int64
	// editOriginal is the edit box content as first shown
	editOriginal string
	// editSelected is set while the edit box content is still selected
	editSelected bool

	statusMsg  string
	statusWarn bool
}

// NewListView creates a list view and attaches it to the controller
func NewListView(tasks *tasklist.Controller) ListView {
	add := textinput.New()
	add.Placeholder = "What needs to be done?"
	add.Prompt = "+ "

	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.SetValue(tasks.Query())

	edit := textinput.New()
	edit.Prompt = ""

	board := &Board{}
	tasks.Attach(board)

	return ListView{
		tasks:       tasks,
		board:       board,
		addInput:    add,
		searchInput: search,
		editInput:   edit,
	}
}

// Init initializes the list view
func (v ListView) Init() tea.Cmd {
	return nil
}

// Mode returns the current input mode
func (v ListView) Mode() ListMode {
	return v.mode
}

// Board returns the drawing target shared with the controller
func (v ListView) Board() *Board {
	return v.board
}

// Cursor returns the index of the highlighted row
func (v ListView) Cursor() int {
	return v.cursor
}

// IsInputMode returns true when the view is capturing text input
func (v ListView) IsInputMode() bool {
	return v.mode != ListModeNormal
}

// SetSize updates the view dimensions
func (v ListView) SetSize(width, height int) ListView {
	v.width = width
	v.height = height
	v.addInput.Width = width - 8
	v.searchInput.Width = width - 8
	v.editInput.Width = width - 12
	return v
}

// visibleTaskCount returns how many rows fit in the viewport
func (v ListView) visibleTaskCount() int {
	// add field (3), tabs and search (2), blank lines (2), summary (1)
	available := v.height - 8
	if available < 1 {
		available = 1
	}
	return available
}

func (v ListView) rows() []tasklist.Row {
	return v.board.frame.Rows
}

// clampCursor keeps the cursor on a row after the frame changed
func (v *ListView) clampCursor() {
	if n := len(v.rows()); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureCursorVisible()
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (v *ListView) ensureCursorVisible() {
	visible := v.visibleTaskCount()

	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}

	maxOffset := len(v.rows()) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.scrollOffset > maxOffset {
		v.scrollOffset = maxOffset
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

func (v ListView) currentRow() (tasklist.Row, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return tasklist.Row{}, false
	}
	return rows[v.cursor], true
}

// Update handles messages for the list view
func (v ListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch v.mode {
		case ListModeAdd:
			return v.handleAddMode(msg)
		case ListModeEdit:
			return v.handleEditMode(msg)
		case ListModeSearch:
			return v.handleSearchMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	switch v.mode {
	case ListModeAdd:
		v.addInput, cmd = v.addInput.Update(msg)
	case ListModeEdit:
		v.editInput, cmd = v.editInput.Update(msg)
	case ListModeSearch:
		v.searchInput, cmd = v.searchInput.Update(msg)
	}
	return v, cmd
}

// handleNormalMode handles keypresses in normal mode
func (v ListView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.statusMsg = ""
	v.statusWarn = false

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		v.ensureCursorVisible()

	case "down", "j":
		if v.cursor < len(v.rows())-1 {
			v.cursor++
		}
		v.ensureCursorVisible()

	case "a":
		v.mode = ListModeAdd
		cmd := v.addInput.Focus()
		return v, cmd

	case "/":
		v.mode = ListModeSearch
		v.searchInput.CursorEnd()
		cmd := v.searchInput.Focus()
		return v, cmd

	case "esc":
		if v.tasks.Query() != "" {
			v.searchInput.SetValue("")
			v.tasks.SetSearchQuery("")
			v.clampCursor()
		}

	case "1":
		v.setFilter(model.FilterAll)
	case "2":
		v.setFilter(model.FilterActive)
	case "3":
		v.setFilter(model.FilterCompleted)
	case "f":
		v.setFilter(v.tasks.Filter().Next())

	case " ", "x":
		if row, ok := v.currentRow(); ok {
			v.tasks.ToggleTask(row.ID)
			v.clampCursor()
		}

	case "e", "enter":
		if row, ok := v.currentRow(); ok {
			return v.beginEdit(row.ID)
		}

	case "d":
		if row, ok := v.currentRow(); ok {
			v.tasks.DeleteTask(row.ID)
			v.statusMsg = "Deleted: " + row.Text
			v.statusWarn = true
			v.clampCursor()
		}
	}

	return v, nil
}

func (v *ListView) setFilter(f model.Filter) {
	v.tasks.SetFilter(f)
	v.cursor = 0
	v.scrollOffset = 0
}

// handleAddMode handles keypresses in the add field
func (v ListView) handleAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if task, ok := v.tasks.AddTask(v.addInput.Value()); ok {
			v.addInput.Reset()
			v.cursor = 0
			v.scrollOffset = 0
			v.statusMsg = "Added: " + tasklist.EscapeText(task.Text)
			v.statusWarn = false
		}
		return v, nil
	case "esc":
		v.mode = ListModeNormal
		v.addInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.addInput, cmd = v.addInput.Update(msg)
	return v, cmd
}

// handleSearchMode updates the query on every keystroke
func (v ListView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.mode = ListModeNormal
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.tasks.SetSearchQuery(v.searchInput.Value())
	v.cursor = 0
	v.scrollOffset = 0
	return v, cmd
}

// beginEdit opens the edit box on a row, prefilled and fully selected
func (v ListView) beginEdit(id int64) (tea.Model, tea.Cmd) {
	task, ok := v.tasks.Task(id)
	if !ok {
		return v, nil
	}

	v.mode = ListModeEdit
	v.editingID = id
	v.editSelected = true
	v.editInput.SetValue(task.Text)
	v.editInput.CursorEnd()
	v.editOriginal = v.editInput.Value()
	cmd := v.editInput.Focus()
	return v, cmd
}

// handleEditMode handles keypresses in the edit box. Confirming and
// leaving the box both commit; there is no cancel.
func (v ListView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		v = v.CommitEdit()
		return v, nil
	case "up":
		v = v.CommitEdit()
		if v.cursor > 0 {
			v.cursor--
		}
		v.ensureCursorVisible()
		return v, nil
	case "down":
		v = v.CommitEdit()
		if v.cursor < len(v.rows())-1 {
			v.cursor++
		}
		v.ensureCursorVisible()
		return v, nil
	}

	if v.editSelected {
		v.editSelected = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			v.editInput.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			v.editInput.SetValue("")
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.editInput, cmd = v.editInput.Update(msg)
	return v, cmd
}

// CommitEdit writes a pending edit through the controller.
// It is a no-op outside edit mode.
func (v ListView) CommitEdit() ListView {
	if v.mode != ListModeEdit {
		return v
	}

	// The input strips tabs and newlines, so an untouched box must not
	// overwrite the stored text with its flattened copy.
	value := v.editInput.Value()
	if value != v.editOriginal {
		v.tasks.EditTask(v.editingID, value)
		if strings.TrimSpace(value) == "" {
			v.statusMsg = "Deleted empty task"
			v.statusWarn = true
		}
	}

	v.mode = ListModeNormal
	v.editInput.Blur()
	v.editSelected = false
	v.editingID = 0
	v.editOriginal = ""
	v.clampCursor()
	return v
}

// View renders the list view
func (v ListView) View() string {
	styles := theme.Current.Styles
	frame := v.board.frame

	var b strings.Builder

	// Add field
	addStyle := styles.Input
	if v.mode == ListModeAdd {
		addStyle = styles.InputFocused
	}
	if v.width > 4 {
		addStyle = addStyle.Width(v.width - 4)
	}
	b.WriteString(addStyle.Render(v.addInput.View()))
	b.WriteString("\n")

	// Filter tabs and search field
	b.WriteString(v.renderTabs(frame.Filter))
	if v.mode == ListModeSearch || v.searchInput.Value() != "" {
		b.WriteString("  ")
		b.WriteString(v.searchInput.View())
	}
	b.WriteString("\n\n")

	// Rows
	if frame.IsEmpty() {
		b.WriteString(styles.Empty.Render(frame.Empty))
		b.WriteString("\n")
	} else {
		t := theme.Current.Theme
		scrollStyle := lipgloss.NewStyle().Foreground(t.Subtle)

		visible := v.visibleTaskCount()
		endIdx := v.scrollOffset + visible
		if endIdx > len(frame.Rows) {
			endIdx = len(frame.Rows)
		}

		if v.scrollOffset > 0 {
			b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↑ %d more above", v.scrollOffset)))
			b.WriteString("\n")
		}
		for i := v.scrollOffset; i < endIdx; i++ {
			b.WriteString(v.renderRow(frame.Rows[i], i == v.cursor))
			b.WriteString("\n")
		}
		if remaining := len(frame.Rows) - endIdx; remaining > 0 {
			b.WriteString(scrollStyle.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
			b.WriteString("\n")
		}
	}

	if v.statusMsg != "" {
		t := theme.Current.Theme
		color := t.Info
		if v.statusWarn {
			color = t.Warning
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Italic(true).Padding(0, 1).Render(v.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Summary.Render(v.board.summary))

	return b.String()
}

func (v ListView) renderTabs(active model.Filter) string {
	styles := theme.Current.Styles

	var tabs []string
	for i, f := range model.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == active {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRow renders one task row. Row text is already escaped.
func (v ListView) renderRow(row tasklist.Row, isCursor bool) string {
	styles := theme.Current.Styles

	indicator := "  "
	if isCursor {
		indicator = "> "
	}

	checkbox := styles.Checkbox.Render("[ ]")
	if row.Completed {
		checkbox = styles.CheckboxDone.Render("[x]")
	}

	if v.mode == ListModeEdit && row.ID == v.editingID {
		var field string
		if v.editSelected {
			field = " " + styles.EditText.Render(v.editInput.Value())
		} else {
			field = " " + v.editInput.View()
		}
		return indicator + checkbox + field
	}

	textStyle := styles.TaskNormal
	switch {
	case row.Completed:
		textStyle = styles.TaskDone
	case isCursor:
		textStyle = styles.TaskSelected
	}

	line := indicator + checkbox + textStyle.Render(row.Text)
	if isCursor && v.mode == ListModeNormal {
		line += styles.Label.Render("  e edit · d delete")
	}
	return line
}
