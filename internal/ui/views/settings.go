package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/styles"
)

// SettingsView offers to replay the tour and shows where data lives
type SettingsView struct {
	deps   Deps
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int
	notice string
}

func NewSettingsView(deps Deps) *SettingsView {
	return &SettingsView{deps: deps, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
}

func (v *SettingsView) Init() tea.Cmd { return nil }

// Capturing reports whether keys are being typed into an input
func (v *SettingsView) Capturing() bool { return false }

func (v *SettingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToProjects{} }
		case key.Matches(msg, v.keys.Enter):
			return v, v.repeatTutorial()
		}
	}
	return v, nil
}

// repeatTutorial forgets the tour and returns to the project list, so the
// next board visit shows it again
func (v *SettingsView) repeatTutorial() tea.Cmd {
	if err := v.deps.Settings.Remove(SettingTourCompleted); err != nil {
		v.deps.Logger.Warn("remove setting", "key", SettingTourCompleted, "error", err)
		v.notice = "Could not reset the tutorial"
		return nil
	}
	v.notice = ""
	return func() tea.Msg { return BackToProjects{} }
}

func (v *SettingsView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	path := func(label, value string) string {
		if value == "" {
			value = "(none)"
		}
		return s.Label.Render(label+": ") + value
	}

	rows := []string{
		s.Title.Render("Settings"),
		"",
		s.ButtonFocused.Render(" Repeat tutorial "),
		s.TitleMuted.Render("Shows the board tour again on the next project you open."),
		"",
		path("Config", v.deps.Paths.Config),
		path("Database", v.deps.Paths.DB),
		path("Log", v.deps.Paths.Log),
	}
	if v.notice != "" {
		rows = append(rows, "", s.Error.Render(v.notice))
	}
	rows = append(rows, renderHelpLine(s, contentWidth,
		"↵", "repeat tutorial",
		"esc", "projects",
		"q", "quit",
	))

	content := lipgloss.NewStyle().Padding(1, 2).Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
	return styles.CenterView(content, v.width, v.height)
}
