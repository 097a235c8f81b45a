package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/todolist/internal/kv"
	"github.com/dori/todolist/internal/model"
	"github.com/dori/todolist/internal/tasklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	esc       = tea.KeyMsg{Type: tea.KeyEsc}
	tab       = tea.KeyMsg{Type: tea.KeyTab}
	down      = tea.KeyMsg{Type: tea.KeyDown}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
	space     = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(t *testing.T, v ListView, keys ...tea.KeyMsg) ListView {
	t.Helper()
	for _, k := range keys {
		m, _ := v.Update(k)
		next, ok := m.(ListView)
		require.True(t, ok)
		v = next
	}
	return v
}

// typeText sends one rune per key, the way a terminal delivers typing
func typeText(t *testing.T, v ListView, s string) ListView {
	t.Helper()
	for _, r := range s {
		v = press(t, v, runes(string(r)))
	}
	return v
}

func newTestView(t *testing.T, texts ...string) (ListView, *tasklist.Controller) {
	t.Helper()
	tasks := tasklist.New(kv.NewMemory())
	for _, text := range texts {
		_, ok := tasks.AddTask(text)
		require.True(t, ok)
	}
	v := NewListView(tasks).SetSize(80, 30)
	return v, tasks
}

func rowTexts(v ListView) []string {
	var out []string
	for _, r := range v.Board().Frame().Rows {
		out = append(out, r.Text)
	}
	return out
}

func TestAttachDrawsInitialFrame(t *testing.T) {
	v, _ := newTestView(t)

	assert.Equal(t, tasklist.MsgNoTasks, v.Board().Frame().Empty)
	assert.Equal(t, "Total tasks: 0 | Active: 0 | Completed: 0", v.Board().Summary())
	assert.Contains(t, v.View(), tasklist.MsgNoTasks)
}

func TestAddClearsFieldAndKeepsFocus(t *testing.T) {
	v, tasks := newTestView(t)

	v = press(t, v, runes("a"))
	require.Equal(t, ListModeAdd, v.Mode())

	v = typeText(t, v, "Buy milk")
	v = press(t, v, enter)

	assert.Equal(t, ListModeAdd, v.Mode())
	assert.Empty(t, v.addInput.Value())
	assert.True(t, v.addInput.Focused())
	assert.Equal(t, []string{"Buy milk"}, rowTexts(v))
	assert.Len(t, tasks.Tasks(), 1)

	v = typeText(t, v, "Walk dog")
	v = press(t, v, enter)
	assert.Equal(t, []string{"Walk dog", "Buy milk"}, rowTexts(v))
	assert.Equal(t, "Total tasks: 2 | Active: 2 | Completed: 0", v.Board().Summary())

	v = press(t, v, esc)
	assert.Equal(t, ListModeNormal, v.Mode())
}

func TestAddBlankIsIgnored(t *testing.T) {
	v, tasks := newTestView(t)

	v = press(t, v, runes("a"))
	v = typeText(t, v, "   ")
	v = press(t, v, enter)

	assert.Empty(t, tasks.Tasks())
	assert.Equal(t, "   ", v.addInput.Value())
}

func TestToggleAndDelete(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk", "Walk dog")

	// cursor starts on the newest task
	v = press(t, v, space)
	task, ok := tasks.Task(v.Board().Frame().Rows[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Walk dog", task.Text)
	assert.True(t, task.Completed)
	assert.Equal(t, "Total tasks: 2 | Active: 1 | Completed: 1", v.Board().Summary())

	v = press(t, v, runes("x"))
	task, _ = tasks.Task(task.ID)
	assert.False(t, task.Completed)

	v = press(t, v, down, runes("d"))
	assert.Equal(t, []string{"Walk dog"}, rowTexts(v))
	assert.Equal(t, 0, v.Cursor())
}

func TestFilterKeys(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk", "Walk dog")
	v = press(t, v, space)

	v = press(t, v, runes("2"))
	assert.Equal(t, model.FilterActive, tasks.Filter())
	assert.Equal(t, []string{"Buy milk"}, rowTexts(v))

	v = press(t, v, runes("3"))
	assert.Equal(t, []string{"Walk dog"}, rowTexts(v))

	v = press(t, v, runes("f"))
	assert.Equal(t, model.FilterAll, tasks.Filter())
	assert.Len(t, rowTexts(v), 2)

	// completing the only active task empties the active view
	v = press(t, v, runes("2"), space)
	assert.Equal(t, tasklist.MsgNoActive, v.Board().Frame().Empty)
}

func TestSearchIsLive(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk", "Walk dog", "Buy eggs")

	v = press(t, v, runes("/"))
	require.Equal(t, ListModeSearch, v.Mode())

	v = typeText(t, v, "BU")
	assert.Equal(t, "bu", tasks.Query())
	assert.Equal(t, []string{"Buy eggs", "Buy milk"}, rowTexts(v))

	v = typeText(t, v, "zz")
	assert.Equal(t, tasklist.MsgNoMatches, v.Board().Frame().Empty)

	// leaving the field keeps the query
	v = press(t, v, esc)
	assert.Equal(t, ListModeNormal, v.Mode())
	assert.Equal(t, "buzz", tasks.Query())

	// esc in normal mode clears it
	v = press(t, v, esc)
	assert.Empty(t, tasks.Query())
	assert.Len(t, rowTexts(v), 3)
}

func TestEditCommitsOnEnter(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk")
	id := tasks.Tasks()[0].ID

	v = press(t, v, runes("e"))
	require.Equal(t, ListModeEdit, v.Mode())
	assert.Equal(t, "Buy milk", v.editInput.Value())

	// first typed character replaces the selected content
	v = typeText(t, v, "Buy oat milk")
	v = press(t, v, enter)

	assert.Equal(t, ListModeNormal, v.Mode())
	task, ok := tasks.Task(id)
	require.True(t, ok)
	assert.Equal(t, "Buy oat milk", task.Text)
	assert.Equal(t, []string{"Buy oat milk"}, rowTexts(v))
}

func TestEditCommitsOnFocusLoss(t *testing.T) {
	for _, key := range []tea.KeyMsg{esc, tab, down} {
		t.Run(key.String(), func(t *testing.T) {
			v, tasks := newTestView(t, "Buy milk")
			id := tasks.Tasks()[0].ID

			v = press(t, v, enter)
			v = typeText(t, v, "Sell milk")
			v = press(t, v, key)

			assert.Equal(t, ListModeNormal, v.Mode())
			task, _ := tasks.Task(id)
			assert.Equal(t, "Sell milk", task.Text)
		})
	}
}

func TestEditBackspaceClearsSelectionAndDeletes(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk", "Walk dog")

	v = press(t, v, runes("e"), backspace)
	assert.Empty(t, v.editInput.Value())

	v = press(t, v, enter)
	assert.Equal(t, []string{"Buy milk"}, rowTexts(v))
	assert.Equal(t, "Total tasks: 1 | Active: 1 | Completed: 0", v.Board().Summary())
	assert.Len(t, tasks.Tasks(), 1)
}

func TestEditWithoutChangesKeepsText(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk")

	v = press(t, v, runes("e"), esc)
	assert.Equal(t, "Buy milk", tasks.Tasks()[0].Text)
	assert.Equal(t, ListModeNormal, v.Mode())
}

func TestEditWithoutChangesKeepsTabs(t *testing.T) {
	v, tasks := newTestView(t, "Buy\tmilk")

	v = press(t, v, runes("e"))
	require.Equal(t, ListModeEdit, v.Mode())
	assert.NotContains(t, v.editInput.Value(), "\t")

	v = press(t, v, enter)
	assert.Equal(t, "Buy\tmilk", tasks.Tasks()[0].Text)
}

func TestAddKeepsLongPaste(t *testing.T) {
	v, tasks := newTestView(t)
	long := strings.Repeat("x", 300)

	v = press(t, v, runes("a"))
	v = press(t, v, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long), Paste: true})
	assert.Equal(t, long, v.addInput.Value())

	v = press(t, v, enter)
	require.Len(t, tasks.Tasks(), 1)
	assert.Equal(t, long, tasks.Tasks()[0].Text)
}

func TestDeleteStatusIsWarning(t *testing.T) {
	v, _ := newTestView(t, "Buy milk")

	v = press(t, v, runes("d"))
	assert.True(t, v.statusWarn)
	assert.Contains(t, v.View(), "Deleted: Buy milk")

	v = press(t, v, down)
	assert.False(t, v.statusWarn)
}

func TestCommitEditOutsideEditModeIsNoop(t *testing.T) {
	v, tasks := newTestView(t, "Buy milk")

	v = v.CommitEdit()
	assert.Equal(t, ListModeNormal, v.Mode())
	assert.Equal(t, "Buy milk", tasks.Tasks()[0].Text)
}

func TestViewShowsRowsAndSummary(t *testing.T) {
	v, _ := newTestView(t, "Buy milk", "Walk dog")
	v = press(t, v, space)

	out := v.View()
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "Walk dog")
	assert.Contains(t, out, "Total tasks: 2 | Active: 1 | Completed: 1")
}
