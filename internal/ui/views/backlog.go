package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/tboard/internal/models"
)

func backlogColumns(width int) []table.Column {
	return spread(
		[]string{"Title", "Priority", "Tags", "Assignees", "Start", "End"},
		[]int{5, 2, 3, 3, 2, 2},
		width,
	)
}

func (v *BoardView) backlogTasks() []models.PopulatedTask {
	var out []models.PopulatedTask
	for _, t := range v.tasks {
		if t.Status == models.StatusBacklog {
			out = append(out, t)
		}
	}
	return out
}

func (v *BoardView) refreshBacklog() {
	tasks := v.backlogTasks()
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		tags := make([]string, len(t.Tags))
		for j, tag := range t.Tags {
			tags[j] = tag.Name
		}
		users := make([]string, len(t.AssignedUsers))
		for j, u := range t.AssignedUsers {
			users[j] = u.Initials()
		}
		rows[i] = table.Row{
			t.Title,
			string(t.Priority),
			strings.Join(tags, ", "),
			strings.Join(users, ", "),
			t.StartDate.Format(models.DateLayout),
			t.EndDate.Format(models.DateLayout),
		}
	}
	v.backlog.SetRows(rows)
	if c := v.backlog.Cursor(); c >= len(rows) {
		v.backlog.SetCursor(max(len(rows)-1, 0))
	}
}

func (v *BoardView) selectedBacklog() (models.PopulatedTask, bool) {
	tasks := v.backlogTasks()
	c := v.backlog.Cursor()
	if c < 0 || c >= len(tasks) {
		return models.PopulatedTask{}, false
	}
	return tasks[c], true
}

func (v *BoardView) updateBacklog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Tab):
		v.tab = tabBoard
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.New):
		return v, v.openTaskForm(nil, models.StatusBacklog)

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Edit):
		if t, ok := v.selectedBacklog(); ok {
			return v, v.openTaskForm(&t.Task, t.Status)
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selectedBacklog(); ok {
			v.confirmDelete = &deleteTarget{id: t.ID, name: t.Title}
		}
		return v, nil

	case msg.String() == "t":
		// Promote to the ToDo column
		if t, ok := v.selectedBacklog(); ok {
			v.setStatus(t.ID, models.StatusTodo)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.backlog, cmd = v.backlog.Update(msg)
	return v, cmd
}

func (v *BoardView) renderBacklogHelp() string {
	if len(v.backlogTasks()) == 0 {
		return v.styles.TitleMuted.Render("  No backlog tasks. Press 'n' to create one.")
	}
	return renderHelpLine(v.styles, v.width,
		"↵", "edit",
		"n", "new",
		"d", "del",
		"t", "to do",
		"tab", "board",
		"esc", "back",
	)
}
