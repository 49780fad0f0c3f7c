package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/styles"
)

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string       { return i.project.Name }
func (i projectItem) Description() string { return "/" + i.project.Slug }
func (i projectItem) FilterValue() string { return i.project.Name }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	swatch := lipgloss.NewStyle().Foreground(styles.ColorFor(p.project.Color)).Render("■")
	title := titleStyle.Render(swatch + " " + p.Title())
	desc := descStyle.Render(p.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

type projectsChangedMsg struct {
	ch       <-chan []models.Project
	projects []models.Project
}

// ProjectListView lists projects and opens their boards
type ProjectListView struct {
	deps     Deps
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	sub    <-chan []models.Project
	cancel func()

	form          *Form
	confirmDelete *deleteTarget

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewProjectListView subscribes to the project store
func NewProjectListView(deps Deps) *ProjectListView {
	s := styles.NewStyles()

	// Setup custom delegate
	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &ProjectListView{
		deps:     deps,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
	v.sub, v.cancel = deps.Stores.Projects.Subscribe()
	return v
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.listen()
}

func (v *ProjectListView) listen() tea.Cmd {
	ch := v.sub
	return listen(ch, func(p []models.Project) tea.Msg {
		return projectsChangedMsg{ch: ch, projects: p}
	})
}

// Close ends the store subscription
func (v *ProjectListView) Close() { v.cancel() }

// Capturing reports whether keys are being typed into an input
func (v *ProjectListView) Capturing() bool {
	return v.form != nil || v.list.FilterState() == list.Filtering
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		// Use content width (capped at MaxWidth) for internal layout
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		if v.form != nil {
			v.form.SetWidth(clamp(contentWidth-6, 20, 50))
		}
		return v, nil

	case projectsChangedMsg:
		if msg.ch != v.sub {
			return v, nil
		}
		items := make([]list.Item, len(msg.projects))
		for i, p := range msg.projects {
			items[i] = projectItem{project: p}
		}
		cmd := v.list.SetItems(items)
		v.loaded = true
		return v, tea.Batch(cmd, v.listen())

	case createProjectMsg:
		v.form = nil
		project := v.deps.Stores.Projects.Create(msg.req)
		return v, func() tea.Msg {
			return SelectedProject{Project: project}
		}

	case updateProjectMsg:
		v.form = nil
		if _, err := v.deps.Stores.Projects.Update(msg.req.ID, msg.req.Patch()); err != nil {
			v.deps.Logger.Warn("update project", "id", msg.req.ID, "error", err)
		}
		return v, nil

	case formCancelled:
		v.form = nil
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmDelete != nil {
			return v.updateConfirmDelete(msg)
		}

		if v.form != nil {
			return v, v.form.Update(msg)
		}

		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			// Don't quit on escape in project list - only q quits
			if v.list.FilterState() == list.FilterApplied {
				v.list.ResetFilter()
			}
			return v, nil
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, v.openForm(&item.project)
			}
			return v, nil
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, func() tea.Msg {
					return SelectedProject{Project: item.project}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirmDelete = &deleteTarget{id: item.project.ID, name: item.project.Name}
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) openForm(existing *models.Project) tea.Cmd {
	if existing != nil {
		p := *existing
		existing = &p
	}
	v.form = newProjectForm(v.styles, existing)
	v.form.SetWidth(clamp(styles.ContentWidth(v.width)-6, 20, 50))
	return v.form.Init()
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := confirmAnswer(msg)
	if !answered {
		return v, nil
	}
	target := v.confirmDelete
	v.confirmDelete = nil
	if yes && !v.deps.Stores.Projects.Delete(target.id) {
		v.deps.Logger.Warn("delete project", "id", target.id, "error", "not found")
	}
	return v, nil
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height,
			"↵", "open board",
			"n", "new project",
			"e", "edit project",
			"d", "delete project",
			"/", "filter",
			"1-4", "switch page",
			"q", "quit",
		)
	}

	if v.confirmDelete != nil {
		return renderDeleteConfirm(v.styles, "Project", v.confirmDelete.name, v.width, v.height)
	}

	if v.form != nil {
		return v.renderForm()
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderForm() string {
	contentWidth := styles.ContentWidth(v.width)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		v.form.View(),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderHelp() string {
	return renderHelpLine(v.styles, styles.ContentWidth(v.width),
		"↵", "open",
		"n", "new",
		"e", "edit",
		"d", "del",
		"/", "filter",
		"q", "quit",
	)
}
