package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/board"
	"github.com/tgienger/tboard/internal/forms"
	"github.com/tgienger/tboard/internal/models"
)

func TestComputeLayout(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	l := v.layout

	assert.Equal(t, 5, l.visible)
	assert.Equal(t, boardTop+5*slotHeight+1, l.zoneTop)
	require.Len(t, l.columns, 3)
	assert.Equal(t, 40, l.columns[1].left)

	todo := l.columns[0]
	assert.Equal(t, []string{"608707", "093072"}, todo.ids)
	require.Len(t, todo.indicators, 3)
	assert.Equal(t, float64(boardTop), todo.indicators[0].Top)
	assert.Equal(t, board.EndOfList, todo.indicators[2].Before)
	assert.Equal(t, float64(boardTop+1), l.cards["608707"].Top)

	id, ok := l.cardAt(45, 12)
	require.True(t, ok)
	assert.Equal(t, "579093", id)

	_, ok = l.cardAt(45, 5)
	assert.False(t, ok, "indicator rows hold no card")
	assert.True(t, l.inDropZone(l.zoneTop+1))
}

func TestComputeLayoutScrolledColumn(t *testing.T) {
	tasks := make([]models.PopulatedTask, 4)
	for i := range tasks {
		tasks[i].ID = string(rune('a' + i))
		tasks[i].Status = models.StatusTodo
	}
	offsets := map[models.Status]int{models.StatusTodo: 9}

	// 5+1+3+3 rows of chrome plus two slots
	l := computeLayout(tasks, 90, 22, offsets)

	assert.Equal(t, 2, l.visible)
	assert.Equal(t, 2, offsets[models.StatusTodo], "offset is clamped")
	c := l.columns[0]
	assert.Equal(t, []string{"c", "d"}, c.shown)

	l = computeLayout(tasks, 90, 22, map[models.Status]int{})
	c = l.columns[0]
	assert.Equal(t, []string{"a", "b"}, c.shown)
	assert.Equal(t, "c", c.indicators[len(c.indicators)-1].Before, "trailing indicator points below the fold")
}

func TestMouseDragMovesCard(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	p := v.Project()

	// "Add logging to daily CRON" is the second card of Doing
	v.Update(mouse(tea.MouseActionPress, 45, 12))
	require.True(t, v.drag.active())
	assert.Equal(t, "579093", v.drag.taskID)

	// upper half of the first ToDo card
	v.Update(mouse(tea.MouseActionMotion, 5, 7))
	assert.Equal(t, models.StatusTodo, v.drag.column)
	assert.Equal(t, "608707", v.drag.before)

	v.Update(mouse(tea.MouseActionRelease, 5, 7))
	assert.False(t, v.drag.active())
	assert.Equal(t, []string{"579093", "608707", "093072"}, columnOrder(d, p.ID, models.StatusTodo))
	assert.Equal(t, []string{"876033"}, columnOrder(d, p.ID, models.StatusDoing))

	cmd := refresh(t, v)
	assert.NotNil(t, cmd)
	require.NotNil(t, v.anim, "moved cards animate")
	_, animating := v.anim.Offset("579093", testNow)
	assert.True(t, animating)
	assert.Equal(t, "579093", v.selectedID(), "selection follows the dropped card")
}

func TestDropBiasZeroComparesAgainstIndicatorRow(t *testing.T) {
	d, _ := newTestDeps(t, false)
	d.Board.DropBias = 0
	v := openBoard(t, d)

	// top border row of the first ToDo card, one below its indicator
	v.Update(mouse(tea.MouseActionPress, 45, 12))
	v.Update(mouse(tea.MouseActionMotion, 5, 6))
	assert.Equal(t, "093072", v.drag.before)

	d.Board.DropBias = 3
	biased := openBoard(t, d)
	biased.Update(mouse(tea.MouseActionPress, 45, 12))
	biased.Update(mouse(tea.MouseActionMotion, 5, 6))
	assert.Equal(t, "608707", biased.drag.before)
}

func TestDraggedOverColumnTitleHighlighted(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	assert.Equal(t, v.styles.ColumnTitle, v.columnTitleStyle(models.StatusTodo))

	v.Update(mouse(tea.MouseActionPress, 45, 12))
	v.Update(mouse(tea.MouseActionMotion, 5, 7))
	assert.Equal(t, v.styles.ColumnActive, v.columnTitleStyle(models.StatusTodo))
	assert.Equal(t, v.styles.ColumnTitle, v.columnTitleStyle(models.StatusDoing))
}

func TestMoveAnimatesAgainstScrolledLayout(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewBoardView(d, demoProject(t, d))
	t.Cleanup(v.Close)
	// two visible slots per column
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 22})
	v.Update(receive(t, v.listen()))
	require.Equal(t, 2, v.layout.visible)

	// grab the first Doing card and drop it at the end of ToDo
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(runes("m"))
	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, board.EndOfList, v.drag.before)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	refresh(t, v)

	assert.Equal(t, 1, v.offsets[models.StatusTodo], "column scrolled to the dropped card")
	require.NotNil(t, v.anim)
	assert.Equal(t, board.Delta{DX: 40, DY: -5}, v.anim.Deltas["876033"])
	assert.Equal(t, board.Delta{DX: 0, DY: 5}, v.anim.Deltas["093072"])
	_, scrolledAway := v.anim.Deltas["608707"]
	assert.False(t, scrolledAway)
}

func TestMouseDropBelowLastCardAppends(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	v.Update(mouse(tea.MouseActionPress, 5, 7))
	v.Update(mouse(tea.MouseActionMotion, 45, 20))
	assert.Equal(t, board.EndOfList, v.drag.before)
	v.Update(mouse(tea.MouseActionRelease, 45, 20))

	assert.Equal(t, []string{"876033", "579093", "608707"}, columnOrder(d, v.Project().ID, models.StatusDoing))
}

func TestMouseDropOnItselfIsNoop(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	before := d.Stores.Tasks.List()

	// still over the card's own indicator
	v.Update(mouse(tea.MouseActionPress, 5, 7))
	v.Update(mouse(tea.MouseActionMotion, 6, 7))
	v.Update(mouse(tea.MouseActionRelease, 6, 7))

	assert.False(t, v.drag.active())
	assert.Equal(t, before, d.Stores.Tasks.List())
	assert.Nil(t, v.flipFrom)
}

func TestMouseDropOutsideColumnsIsNoop(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	before := d.Stores.Tasks.List()

	v.Update(mouse(tea.MouseActionPress, 5, 7))
	v.Update(mouse(tea.MouseActionMotion, 5, 0))
	v.Update(mouse(tea.MouseActionRelease, 5, 0))

	assert.False(t, v.drag.active())
	assert.Equal(t, before, d.Stores.Tasks.List())
}

func TestMouseClickOpensEditForm(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	v.Update(mouse(tea.MouseActionPress, 5, 12))
	v.Update(mouse(tea.MouseActionRelease, 5, 12))

	require.NotNil(t, v.form)
	assert.True(t, v.Capturing())
	assert.Equal(t, "Sync with product on Q3 roadmap", v.form.value(forms.FieldTitle))
}

func TestDropZoneDeletesAfterConfirm(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	zone := v.layout.zoneTop + 1

	v.Update(mouse(tea.MouseActionPress, 85, 7))
	v.Update(mouse(tea.MouseActionMotion, 85, zone))
	assert.True(t, v.drag.overDelete)
	v.Update(mouse(tea.MouseActionRelease, 85, zone))

	require.NotNil(t, v.confirmDelete)
	assert.Equal(t, "763434", v.confirmDelete.id)
	_, ok := d.Stores.Tasks.Get("763434")
	assert.True(t, ok, "nothing is deleted before confirming")

	v.Update(runes("y"))
	assert.Nil(t, v.confirmDelete)
	_, ok = d.Stores.Tasks.Get("763434")
	assert.False(t, ok)
}

func TestDropZoneCancel(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	zone := v.layout.zoneTop

	v.Update(mouse(tea.MouseActionPress, 85, 7))
	v.Update(mouse(tea.MouseActionMotion, 85, zone))
	v.Update(mouse(tea.MouseActionRelease, 85, zone))
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, v.confirmDelete)
	_, ok := d.Stores.Tasks.Get("763434")
	assert.True(t, ok)
}

func TestKeyboardGrabMovesCard(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	p := v.Project()
	require.Equal(t, "608707", v.selectedID())

	v.Update(runes("m"))
	require.True(t, v.drag.active())
	assert.Equal(t, "608707", v.drag.before)

	// the slot right under the grabbed card is skipped
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.drag.slot)
	assert.Equal(t, board.EndOfList, v.drag.before)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.drag.active())
	assert.Equal(t, []string{"093072", "608707"}, columnOrder(d, p.ID, models.StatusTodo))
}

func TestKeyboardGrabAcrossColumns(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	p := v.Project()

	v.Update(runes("m"))
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, models.StatusDone, v.drag.column)
	assert.Equal(t, "763434", v.drag.before)

	v.Update(runes("m"))
	assert.Equal(t, []string{"608707", "763434"}, columnOrder(d, p.ID, models.StatusDone))
	assert.Equal(t, []string{"093072"}, columnOrder(d, p.ID, models.StatusTodo))

	refresh(t, v)
	assert.Equal(t, "608707", v.selectedID())
	assert.Equal(t, 2, v.col)
}

func TestKeyboardGrabCancel(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)
	before := d.Stores.Tasks.List()

	v.Update(runes("m"))
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, v.drag.active())
	assert.Equal(t, before, d.Stores.Tasks.List())
}

func TestKeyboardGrabDelete(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	v.Update(runes("m"))
	v.Update(runes("d"))
	require.NotNil(t, v.confirmDelete)
	assert.Equal(t, "608707", v.confirmDelete.id)
}

func TestAnimationStopsTicking(t *testing.T) {
	d, _ := newTestDeps(t, false)
	now := testNow
	d.Now = func() time.Time { return now }
	v := openBoard(t, d)

	v.Update(runes("m"))
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	refresh(t, v)
	require.NotNil(t, v.anim)
	assert.True(t, v.ticking)

	_, cmd := v.Update(animFrameMsg(now))
	assert.NotNil(t, cmd)

	now = now.Add(time.Second)
	_, cmd = v.Update(animFrameMsg(now))
	assert.Nil(t, cmd)
	assert.Nil(t, v.anim)
	assert.False(t, v.ticking)
}

func TestSendToBacklogAndPromote(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	v.Update(runes("b"))
	task, ok := d.Stores.Tasks.Get("608707")
	require.True(t, ok)
	assert.Equal(t, models.StatusBacklog, task.Status)

	refresh(t, v)
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabBacklog, v.tab)
	require.Len(t, v.backlogTasks(), 2)

	sel, ok := v.selectedBacklog()
	require.True(t, ok)
	v.Update(runes("t"))
	task, _ = d.Stores.Tasks.Get(sel.ID)
	assert.Equal(t, models.StatusTodo, task.Status)
}

func TestNewTaskFormCreatesInColumn(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(runes("n"))
	require.NotNil(t, v.form)
	v.form.set(forms.FieldTitle, "Write release notes")
	v.form.set(forms.FieldDescription, "Summarise the changes since 1.2")

	msg := receive(t, v.form.Submit())
	created, ok := msg.(createTaskMsg)
	require.True(t, ok)
	assert.Equal(t, models.StatusDoing, created.req.Status)
	assert.Equal(t, v.Project().ID, created.req.ProjectID)

	v.Update(msg)
	assert.Nil(t, v.form)
	refresh(t, v)
	assert.Equal(t, 1, v.col)
	task, ok := v.task(v.selectedID())
	require.True(t, ok)
	assert.Equal(t, "Write release notes", task.Title)
}

func TestStaleSubscriptionIgnored(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	stale := make(chan []models.PopulatedTask)
	_, cmd := v.Update(boardTasksMsg{ch: stale, tasks: nil})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, v.tasks)
}

func TestBoardRendersColumns(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := openBoard(t, d)

	out := v.View()
	assert.Contains(t, out, "ToDo")
	assert.Contains(t, out, "drag here to delete")
	assert.Contains(t, out, "Median")
}
