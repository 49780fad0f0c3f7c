package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewProjects View = iota
	ViewBoard
	ViewUsers
	ViewTags
	ViewSettings
)

type screen interface {
	tea.Model
	Capturing() bool
}

type App struct {
	deps        views.Deps
	keys        keys.KeyMap
	currentView View
	projectList *views.ProjectListView
	board       *views.BoardView
	users       *views.UserListView
	tags        *views.TagListView
	settings    *views.SettingsView
	width       int
	height      int
}

// Creates a new application
func NewApp(deps views.Deps) *App {
	return &App{
		deps:        deps,
		keys:        keys.DefaultKeyMap(),
		currentView: ViewProjects,
		projectList: views.NewProjectListView(deps),
		users:       views.NewUserListView(deps),
		tags:        views.NewTagListView(deps),
		settings:    views.NewSettingsView(deps),
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.projectList.Init(), a.users.Init(), a.tags.Init(), a.settings.Init()}

	// Check for last opened project
	slug, ok, err := a.deps.Settings.Get(views.SettingLastProject)
	if err != nil {
		a.deps.Logger.Warn("read setting", "key", views.SettingLastProject, "error", err)
	}
	if ok && slug != "" {
		if project, found := a.deps.Stores.Projects.BySlug(slug); found {
			cmds = append(cmds, a.openProject(project))
		}
	}

	return tea.Batch(cmds...)
}

// Close ends every store subscription
func (a *App) Close() {
	a.closeBoard()
	a.projectList.Close()
	a.users.Close()
	a.tags.Close()
}

// Current returns the active view
func (a *App) Current() View { return a.currentView }

func (a *App) openProject(project models.Project) tea.Cmd {
	a.closeBoard()
	a.currentView = ViewBoard
	a.board = views.NewBoardView(a.deps, project)

	// Save as last opened project
	if err := a.deps.Settings.Set(views.SettingLastProject, project.Slug); err != nil {
		a.deps.Logger.Warn("write setting", "key", views.SettingLastProject, "error", err)
	}

	// Initialize the board with window size
	width, height := a.width, a.height
	return tea.Batch(
		a.board.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: width, Height: height}
		},
	)
}

func (a *App) closeBoard() {
	if a.board != nil {
		a.board.Close()
		a.board = nil
	}
}

// navigate switches pages. Leaving the board closes it; going to the project
// list also forgets the last opened project.
func (a *App) navigate(to View) {
	if to == a.currentView {
		return
	}
	if a.currentView == ViewBoard {
		a.closeBoard()
	}
	if to == ViewProjects {
		if err := a.deps.Settings.Remove(views.SettingLastProject); err != nil {
			a.deps.Logger.Warn("remove setting", "key", views.SettingLastProject, "error", err)
		}
	}
	a.currentView = to
}

func (a *App) current() screen {
	switch a.currentView {
	case ViewBoard:
		if a.board != nil {
			return a.board
		}
	case ViewUsers:
		return a.users
	case ViewTags:
		return a.tags
	case ViewSettings:
		return a.settings
	}
	return a.projectList
}

func (a *App) screens() []screen {
	out := []screen{a.projectList, a.users, a.tags, a.settings}
	if a.board != nil {
		out = append(out, a.board)
	}
	return out
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.SelectedProject:
		return a, a.openProject(msg.Project)

	case views.BackToProjects:
		a.navigate(ViewProjects)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.current().Capturing() {
			switch {
			case key.Matches(msg, a.keys.GoProjects):
				a.navigate(ViewProjects)
				return a, nil
			case key.Matches(msg, a.keys.GoUsers):
				a.navigate(ViewUsers)
				return a, nil
			case key.Matches(msg, a.keys.GoTags):
				a.navigate(ViewTags)
				return a, nil
			case key.Matches(msg, a.keys.GoSettings):
				a.navigate(ViewSettings)
				return a, nil
			}
		}
		_, cmd := a.current().Update(msg)
		return a, cmd

	case tea.MouseMsg:
		_, cmd := a.current().Update(msg)
		return a, cmd
	}

	// Sizes, store streams and timers reach every view; each ignores what
	// is not its own
	var cmds []tea.Cmd
	for _, s := range a.screens() {
		_, cmd := s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	return a.current().View()
}
