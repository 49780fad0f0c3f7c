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

type usersChangedMsg struct {
	ch    <-chan []models.User
	users []models.User
}

// UserListView manages the people tasks can be assigned to
type UserListView struct {
	deps   Deps
	table  table.Model
	users  []models.User
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	sub    <-chan []models.User
	cancel func()

	form          *Form
	confirmDelete *deleteTarget
}

func NewUserListView(deps Deps) *UserListView {
	v := &UserListView{
		deps:   deps,
		table:  newTable(userColumns(80)),
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
	v.sub, v.cancel = deps.Stores.Users.Subscribe()
	return v
}

func userColumns(width int) []table.Column {
	return spread([]string{"Initials", "Name", "Surnames", "Avatar"}, []int{1, 3, 4, 5}, width)
}

func (v *UserListView) Init() tea.Cmd {
	ch := v.sub
	return listen(ch, func(u []models.User) tea.Msg {
		return usersChangedMsg{ch: ch, users: u}
	})
}

// Close ends the store subscription
func (v *UserListView) Close() { v.cancel() }

// Capturing reports whether keys are being typed into an input
func (v *UserListView) Capturing() bool { return v.form != nil }

func (v *UserListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.table.SetColumns(userColumns(contentWidth - 4))
		v.table.SetHeight(max(msg.Height-8, 3))
		if v.form != nil {
			v.form.SetWidth(clamp(contentWidth-6, 20, 50))
		}
		return v, nil

	case usersChangedMsg:
		if msg.ch != v.sub {
			return v, nil
		}
		v.users = msg.users
		rows := make([]table.Row, len(v.users))
		for i, u := range v.users {
			rows[i] = table.Row{u.Initials(), u.Name, u.Surnames, u.AvatarURL}
		}
		v.table.SetRows(rows)
		if v.table.Cursor() >= len(rows) {
			v.table.SetCursor(max(len(rows)-1, 0))
		}
		return v, v.Init()

	case createUserMsg:
		v.form = nil
		v.deps.Stores.Users.Create(msg.req)
		return v, nil

	case updateUserMsg:
		v.form = nil
		if _, err := v.deps.Stores.Users.Update(msg.req.ID, msg.req.Patch()); err != nil {
			v.deps.Logger.Warn("update user", "id", msg.req.ID, "error", err)
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
				if yes && !v.deps.Stores.Users.Delete(target.id) {
					v.deps.Logger.Warn("delete user", "id", target.id, "error", "not found")
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
			if u, ok := v.selected(); ok {
				return v, v.openForm(&u)
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if u, ok := v.selected(); ok {
				v.confirmDelete = &deleteTarget{id: u.ID, name: u.FullName()}
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

func (v *UserListView) selected() (models.User, bool) {
	c := v.table.Cursor()
	if c < 0 || c >= len(v.users) {
		return models.User{}, false
	}
	return v.users[c], true
}

func (v *UserListView) openForm(existing *models.User) tea.Cmd {
	v.form = newUserForm(v.styles, existing)
	v.form.SetWidth(clamp(styles.ContentWidth(v.width)-6, 20, 50))
	return v.form.Init()
}

func (v *UserListView) View() string {
	if v.confirmDelete != nil {
		return renderDeleteConfirm(v.styles, "User", v.confirmDelete.name, v.width, v.height)
	}

	contentWidth := styles.ContentWidth(v.width)
	if v.form != nil {
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.View(),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	body := v.table.View()
	if len(v.users) == 0 {
		body = v.styles.TitleMuted.Render("No users. Press 'n' to add one.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Users"),
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
