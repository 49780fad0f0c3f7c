package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/styles"
)

type tagsChangedMsg struct {
	ch   <-chan []models.Tag
	tags []models.Tag
}

// TagListView manages tags
type TagListView struct {
	deps   Deps
	table  table.Model
	tags   []models.Tag
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	sub    <-chan []models.Tag
	cancel func()

	form          *Form
	confirmDelete *deleteTarget
}

func NewTagListView(deps Deps) *TagListView {
	v := &TagListView{
		deps:   deps,
		table:  newTable(tagColumns(80)),
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
	v.sub, v.cancel = deps.Stores.Tags.Subscribe()
	return v
}

func tagColumns(width int) []table.Column {
	return spread([]string{"Name", "Color"}, []int{6, 3}, width)
}

func (v *TagListView) Init() tea.Cmd {
	ch := v.sub
	return listen(ch, func(t []models.Tag) tea.Msg {
		return tagsChangedMsg{ch: ch, tags: t}
	})
}

// Close ends the store subscription
func (v *TagListView) Close() { v.cancel() }

// Capturing reports whether keys are being typed into an input
func (v *TagListView) Capturing() bool { return v.form != nil }

func (v *TagListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.table.SetColumns(tagColumns(contentWidth - 4))
		v.table.SetHeight(max(msg.Height-8, 3))
		if v.form != nil {
			v.form.SetWidth(clamp(contentWidth-6, 20, 50))
		}
		return v, nil

	case tagsChangedMsg:
		if msg.ch != v.sub {
			return v, nil
		}
		v.tags = msg.tags
		rows := make([]table.Row, len(v.tags))
		for i, t := range v.tags {
			rows[i] = table.Row{t.Name, t.Color}
		}
		v.table.SetRows(rows)
		if v.table.Cursor() >= len(rows) {
			v.table.SetCursor(max(len(rows)-1, 0))
		}
		return v, v.Init()

	case createTagMsg:
		v.form = nil
		v.deps.Stores.Tags.Create(msg.req)
		return v, nil

	case updateTagMsg:
		v.form = nil
		if _, err := v.deps.Stores.Tags.Update(msg.req.ID, msg.req.Patch()); err != nil {
			v.deps.Logger.Warn("update tag", "id", msg.req.ID, "error", err)
		}
		return v, nil

	case formCancelled:
		v.form = nil
		return v, nil

	case tea.KeyMsg:
		if v.confirmDelete != nil {
			answered, yes := confirmAnswer(msg)
			if answered {
				target := v.confirmDelete
				v.confirmDelete = nil
				if yes && !v.deps.Stores.Tags.Delete(target.id) {
					v.deps.Logger.Warn("delete tag", "id", target.id, "error", "not found")
				}
			}
			return v, nil
		}

		if v.form != nil {
			return v, v.form.Update(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToProjects{} }
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if t, ok := v.selected(); ok {
				return v, v.openForm(&t)
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if t, ok := v.selected(); ok {
				v.confirmDelete = &deleteTarget{id: t.ID, name: t.Name}
			}
			return v, nil
		}

		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}

	if v.form != nil {
		return v, v.form.Update(msg)
	}
	return v, nil
}

func (v *TagListView) selected() (models.Tag, bool) {
	c := v.table.Cursor()
	if c < 0 || c >= len(v.tags) {
		return models.Tag{}, false
	}
	return v.tags[c], true
}

func (v *TagListView) openForm(existing *models.Tag) tea.Cmd {
	v.form = newTagForm(v.styles, existing)
	v.form.SetWidth(clamp(styles.ContentWidth(v.width)-6, 20, 50))
	return v.form.Init()
}

func (v *TagListView) View() string {
	if v.confirmDelete != nil {
		return renderDeleteConfirm(v.styles, "Tag", v.confirmDelete.name, v.width, v.height)
	}

	contentWidth := styles.ContentWidth(v.width)
	if v.form != nil {
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.View(),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	var body string
	if len(v.tags) == 0 {
		body = v.styles.TitleMuted.Render("No tags. Press 'n' to add one.")
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, v.renderSwatches(), v.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Tags"),
		"",
		body,
		renderHelpLine(v.styles, contentWidth,
			"n", "new",
			"e", "edit",
			"d", "del",
			"esc", "projects",
			"q", "quit",
		),
	)
	return styles.CenterView(lipgloss.NewStyle().Padding(1, 2).Render(content), v.width, v.height)
}

// renderSwatches draws a coloured gutter next to the table rows. Table cells
// are truncated by rune width, so colours cannot go inside them. The gutter
// is skipped when the table scrolls.
func (v *TagListView) renderSwatches() string {
	if len(v.tags) > v.table.Height() {
		return ""
	}
	// header row plus its bottom border
	lines := []string{"  ", "  "}
	for _, t := range v.tags {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.ColorFor(t.Color)).Render("■ "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
