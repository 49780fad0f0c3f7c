package views

import (
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/board"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/styles"
)

type boardTab int

const (
	tabBoard boardTab = iota
	tabBacklog
)

const frameInterval = time.Second / 30

type boardTasksMsg struct {
	ch    <-chan []models.PopulatedTask
	tasks []models.PopulatedTask
}

type animFrameMsg time.Time

// dragState is one drag gesture, by mouse or keyboard. The zero value means
// nothing is being dragged.
type dragState struct {
	taskID string
	mouse  bool
	moved  bool
	startX int
	startY int

	column     models.Status // column under the pointer, "" outside every column
	before     string        // highlighted indicator
	overDelete bool

	// keyboard only
	slot     int
	from     models.Status
	fromSlot int
}

func (d dragState) active() bool { return d.taskID != "" }

// BoardView shows one project's tasks as a kanban board and a backlog table
type BoardView struct {
	deps    Deps
	project models.Project
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int

	sub    <-chan []models.PopulatedTask
	cancel func()
	tasks  []models.PopulatedTask
	loaded bool

	tab     boardTab
	col     int
	row     int
	offsets map[models.Status]int
	layout  boardLayout

	drag     dragState
	flipFrom board.Snapshot
	follow   string
	anim     *board.Animation
	ticking  bool

	backlog table.Model

	form          *Form
	confirmDelete *deleteTarget
	tour          *tour

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewBoardView subscribes to the populated tasks of project
func NewBoardView(deps Deps, project models.Project) *BoardView {
	v := &BoardView{
		deps:    deps,
		project: project,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		offsets: map[models.Status]int{},
		backlog: newTable(backlogColumns(80)),
	}
	v.sub, v.cancel = deps.Stores.SubscribeBoard(project.ID)

	done, ok, err := deps.Settings.Get(SettingTourCompleted)
	if err != nil {
		deps.Logger.Warn("read setting", "key", SettingTourCompleted, "error", err)
	} else if !ok || done != "true" {
		v.tour = &tour{}
	}
	v.relayout()
	return v
}

// Init initializes the view
func (v *BoardView) Init() tea.Cmd {
	return v.listen()
}

func (v *BoardView) listen() tea.Cmd {
	ch := v.sub
	return listen(ch, func(t []models.PopulatedTask) tea.Msg {
		return boardTasksMsg{ch: ch, tasks: t}
	})
}

// Close ends the store subscription
func (v *BoardView) Close() { v.cancel() }

// Capturing reports whether keys are being typed into an input
func (v *BoardView) Capturing() bool { return v.form != nil }

// Project returns the project on display
func (v *BoardView) Project() models.Project { return v.project }

// Update handles messages
func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.backlog.SetColumns(backlogColumns(msg.Width))
		v.backlog.SetHeight(max(msg.Height-boardTop-helpRows, 3))
		if v.form != nil {
			v.form.SetWidth(clamp(styles.ContentWidth(v.width)-6, 20, 50))
		}
		v.relayout()
		return v, nil

	case boardTasksMsg:
		if msg.ch != v.sub {
			return v, nil
		}
		v.tasks = msg.tasks
		v.loaded = true
		v.relayout()
		v.refreshBacklog()
		if v.follow != "" {
			v.selectByID(v.follow)
			v.follow = ""
		}
		v.clampCursor()
		// after any scroll, so the last snapshot matches the screen
		return v, tea.Batch(v.startFlip(), v.listen())

	case animFrameMsg:
		if v.anim != nil && v.anim.Done(v.deps.now()) {
			v.anim = nil
		}
		if v.anim == nil {
			v.ticking = false
			return v, nil
		}
		return v, v.frame()

	case createTaskMsg:
		v.form = nil
		task := v.deps.Stores.Tasks.Create(msg.req)
		v.follow = task.ID
		return v, nil

	case updateTaskMsg:
		v.form = nil
		if _, err := v.deps.Stores.Tasks.Update(msg.req.ID, msg.req.Patch()); err != nil {
			v.deps.Logger.Warn("update task", "id", msg.req.ID, "error", err)
		}
		return v, nil

	case formCancelled:
		v.form = nil
		return v, nil

	case tea.MouseMsg:
		return v.updateMouse(msg)

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.tour != nil {
			return v.updateTour(msg)
		}
		if v.confirmDelete != nil {
			return v.updateConfirmDelete(msg)
		}
		if v.form != nil {
			return v, v.form.Update(msg)
		}
		if v.drag.active() && !v.drag.mouse {
			return v.updateGrab(msg)
		}
		if v.tab == tabBacklog {
			return v.updateBacklog(msg)
		}
		return v.updateBoard(msg)
	}

	if v.form != nil {
		return v, v.form.Update(msg)
	}
	return v, nil
}

func (v *BoardView) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Tab):
		v.tab = tabBacklog
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.clampCursor()
			v.reveal()
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.col < len(models.BoardColumns)-1 {
			v.col++
			v.clampCursor()
			v.reveal()
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.row > 0 {
			v.row--
			v.reveal()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.row < len(v.columnIDs(v.col))-1 {
			v.row++
			v.reveal()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if t, ok := v.task(v.selectedID()); ok {
			return v, v.openTaskForm(&t.Task, t.Status)
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		return v, v.openTaskForm(nil, models.BoardColumns[v.col])

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.task(v.selectedID()); ok {
			v.confirmDelete = &deleteTarget{id: t.ID, name: t.Title}
		}
		return v, nil

	case key.Matches(msg, v.keys.Grab):
		if id := v.selectedID(); id != "" {
			v.grab(id)
		}
		return v, nil

	case msg.String() == "b":
		// Send the selected card back to the backlog
		if id := v.selectedID(); id != "" {
			v.setStatus(id, models.StatusBacklog)
		}
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := confirmAnswer(msg)
	if !answered {
		return v, nil
	}
	target := v.confirmDelete
	v.confirmDelete = nil
	if yes && !v.deps.Stores.Tasks.Delete(target.id) {
		v.deps.Logger.Warn("delete task", "id", target.id, "error", "not found")
	}
	return v, nil
}

func (v *BoardView) setStatus(id string, status models.Status) {
	req := models.UpdateTaskStatusRequest{ID: id, Status: status}
	if _, err := v.deps.Stores.Tasks.UpdateStatus(req); err != nil {
		v.deps.Logger.Warn("update task status", "id", id, "error", err)
	}
}

func (v *BoardView) openTaskForm(existing *models.Task, status models.Status) tea.Cmd {
	if existing != nil {
		t := *existing
		existing = &t
	}
	def := taskFormDefaults{projectID: v.project.ID, status: status, today: v.deps.now()}
	v.form = newTaskForm(v.styles, existing, def, v.deps.Stores.Tags.List(), v.deps.Stores.Users.List())
	v.form.SetWidth(clamp(styles.ContentWidth(v.width)-6, 20, 50))
	return v.form.Init()
}

// Keyboard drag and drop

func (v *BoardView) grab(id string) {
	c := v.layout.columns[v.col]
	slot := slices.Index(c.ids, id)
	v.drag = dragState{
		taskID:   id,
		column:   c.status,
		before:   id,
		slot:     slot,
		from:     c.status,
		fromSlot: slot,
	}
}

func (v *BoardView) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.drag = dragState{}
	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Grab):
		return v, v.drop()
	case key.Matches(msg, v.keys.Delete):
		v.drag.overDelete = true
		return v, v.drop()
	case key.Matches(msg, v.keys.Up):
		v.stepSlot(-1)
	case key.Matches(msg, v.keys.Down):
		v.stepSlot(1)
	case key.Matches(msg, v.keys.Left):
		v.stepColumn(-1)
	case key.Matches(msg, v.keys.Right):
		v.stepColumn(1)
	}
	return v, nil
}

// stepSlot moves the insertion point within the column. The slot right after
// the grabbed card means the same as the slot before it, so it is skipped.
func (v *BoardView) stepSlot(dir int) {
	c, ok := v.layout.column(v.drag.column)
	if !ok {
		return
	}
	next := v.drag.slot + dir
	if c.status == v.drag.from && next == v.drag.fromSlot+1 {
		next += dir
	}
	if next < 0 || next > len(c.ids) {
		return
	}
	v.drag.slot = next
	v.drag.before = beforeAt(c.ids, next)
	v.revealSlot(c.status, next)
}

func (v *BoardView) stepColumn(dir int) {
	ci := slices.Index(models.BoardColumns, v.drag.column) + dir
	if ci < 0 || ci >= len(v.layout.columns) {
		return
	}
	c := v.layout.columns[ci]
	slot := min(v.drag.slot, len(c.ids))
	if c.status == v.drag.from && slot == v.drag.fromSlot+1 {
		slot = v.drag.fromSlot
	}
	v.col = ci
	v.drag.column = c.status
	v.drag.slot = slot
	v.drag.before = beforeAt(c.ids, slot)
	v.revealSlot(c.status, slot)
}

func beforeAt(ids []string, slot int) string {
	if slot < len(ids) {
		return ids[slot]
	}
	return board.EndOfList
}

// Mouse drag and drop

func (v *BoardView) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.tab != tabBoard || v.form != nil || v.confirmDelete != nil || v.tour != nil || v.showHelpPopup {
		return v, nil
	}
	if v.drag.active() && !v.drag.mouse {
		return v, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.scrollAt(msg.X, msg.Y, -1)
		case tea.MouseButtonWheelDown:
			v.scrollAt(msg.X, msg.Y, 1)
		case tea.MouseButtonLeft:
			if id, ok := v.layout.cardAt(msg.X, msg.Y); ok {
				v.selectByID(id)
				v.drag = dragState{taskID: id, mouse: true, startX: msg.X, startY: msg.Y}
			}
		}

	case tea.MouseActionMotion:
		if !v.drag.active() {
			return v, nil
		}
		if msg.X != v.drag.startX || msg.Y != v.drag.startY {
			v.drag.moved = true
		}
		v.hover(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if !v.drag.active() {
			return v, nil
		}
		if !v.drag.moved && msg.X == v.drag.startX && msg.Y == v.drag.startY {
			// a click opens the card
			id := v.drag.taskID
			v.drag = dragState{}
			if t, ok := v.task(id); ok {
				return v, v.openTaskForm(&t.Task, t.Status)
			}
			return v, nil
		}
		v.hover(msg.X, msg.Y)
		return v, v.drop()
	}
	return v, nil
}

// hover resolves what is under the pointer
func (v *BoardView) hover(x, y int) {
	v.drag.column, v.drag.before, v.drag.overDelete = "", "", false

	if v.layout.inDropZone(y) {
		v.drag.overDelete = true
		return
	}
	c, ok := v.layout.columnAt(x, y)
	if !ok {
		return
	}
	v.drag.column = c.status
	if ind, ok := board.Nearest(float64(y), c.indicators, v.deps.Board.DropBias); ok {
		v.drag.before = ind.Before
	}
}

// drop ends the gesture. The drag state is cleared whatever happens.
func (v *BoardView) drop() tea.Cmd {
	d := v.drag
	v.drag = dragState{}

	if !d.active() {
		return nil
	}
	if d.overDelete {
		if t, ok := v.task(d.taskID); ok {
			v.confirmDelete = &deleteTarget{id: t.ID, name: t.Title}
		}
		return nil
	}
	if d.column == "" || d.before == d.taskID {
		return nil
	}

	first := maps.Clone(v.layout.cards)
	if err := v.deps.Stores.Tasks.Move(d.taskID, d.column, d.before); err != nil {
		v.deps.Logger.Debug("ignored drop", "id", d.taskID, "error", err)
		return nil
	}
	v.flipFrom = first
	v.follow = d.taskID
	return nil
}

// FLIP

func (v *BoardView) startFlip() tea.Cmd {
	if v.flipFrom == nil {
		return nil
	}
	first := v.flipFrom
	v.flipFrom = nil

	anim, ok := board.NewAnimation(first, v.layout.cards, v.deps.now(), v.deps.Board.Animation)
	if !ok {
		return nil
	}
	v.anim = &anim
	if v.ticking {
		return nil
	}
	v.ticking = true
	return v.frame()
}

func (v *BoardView) frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animFrameMsg(t)
	})
}

// Cursor

func (v *BoardView) relayout() {
	v.layout = computeLayout(v.tasks, v.width, v.height, v.offsets)
}

func (v *BoardView) columnIDs(ci int) []string {
	if ci < 0 || ci >= len(v.layout.columns) {
		return nil
	}
	return v.layout.columns[ci].ids
}

func (v *BoardView) selectedID() string {
	ids := v.columnIDs(v.col)
	if v.row < 0 || v.row >= len(ids) {
		return ""
	}
	return ids[v.row]
}

func (v *BoardView) selectByID(id string) {
	for ci, c := range v.layout.columns {
		if i := slices.Index(c.ids, id); i >= 0 {
			v.col, v.row = ci, i
			v.reveal()
			return
		}
	}
}

func (v *BoardView) clampCursor() {
	v.row = clamp(v.row, 0, max(len(v.columnIDs(v.col))-1, 0))
}

// reveal scrolls the selected card into view
func (v *BoardView) reveal() {
	if v.col < len(v.layout.columns) {
		v.revealSlot(v.layout.columns[v.col].status, v.row)
	}
}

func (v *BoardView) revealSlot(status models.Status, slot int) {
	c, ok := v.layout.column(status)
	if !ok {
		return
	}
	row := min(slot, max(len(c.ids)-1, 0))
	off := v.offsets[status]
	if row < off {
		off = row
	} else if row >= off+v.layout.visible {
		off = row - v.layout.visible + 1
	}
	if off != v.offsets[status] {
		v.offsets[status] = off
		v.relayout()
	}
}

func (v *BoardView) scrollAt(x, y, dir int) {
	c, ok := v.layout.columnAt(x, y)
	if !ok {
		return
	}
	v.offsets[c.status] += dir
	v.relayout()
}

func (v *BoardView) task(id string) (models.PopulatedTask, bool) {
	for _, t := range v.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.PopulatedTask{}, false
}

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height,
			"←↓↑→", "select card",
			"↵/e", "edit task",
			"n", "new task",
			"d", "delete task",
			"m", "grab, then move and drop",
			"b", "send to backlog",
			"tab", "board / backlog",
			"esc", "back to projects",
			"q", "quit",
		)
	}

	if v.tour != nil {
		return v.renderTour()
	}

	if v.confirmDelete != nil {
		return renderDeleteConfirm(v.styles, "Task", v.confirmDelete.name, v.width, v.height)
	}

	if v.form != nil {
		contentWidth := styles.ContentWidth(v.width)
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.View(),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if v.tab == tabBacklog {
		return lipgloss.JoinVertical(lipgloss.Left,
			v.renderHeader(),
			v.backlog.View(),
			v.renderBacklogHelp(),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		v.renderBoard(),
		v.renderDropZone(),
		v.renderHelp(),
	)
}

// renderHeader is three rows: title, tabs and a spacer
func (v *BoardView) renderHeader() string {
	s := v.styles
	title := s.Title.Render(v.project.Name) + " " + s.TitleMuted.Render("/"+v.project.Slug)

	boardStyle, backlogStyle := s.TabActive, s.Tab
	if v.tab == tabBacklog {
		boardStyle, backlogStyle = s.Tab, s.TabActive
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		boardStyle.Render("Board"),
		" ",
		backlogStyle.Render("Backlog"),
	)

	clip := lipgloss.NewStyle().MaxWidth(max(v.width, 20))
	return lipgloss.JoinVertical(lipgloss.Left, clip.Render(title), clip.Render(tabs), "")
}

func (v *BoardView) renderHelp() string {
	if v.drag.active() && !v.drag.mouse {
		return renderHelpLine(v.styles, v.width,
			"←↓↑→", "move",
			"↵", "drop",
			"d", "delete",
			"esc", "cancel",
		)
	}
	return renderHelpLine(v.styles, v.width,
		"↵", "edit",
		"n", "new",
		"d", "del",
		"m", "move",
		"tab", "backlog",
		"esc", "back",
		"q", "quit",
	)
}
