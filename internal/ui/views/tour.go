package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/ui/styles"
)

var tourSteps = []struct {
	title string
	body  string
}{
	{"Board", "This is the Kanban view. Here you will find all the project's tasks organized by status."},
	{"Backlog", "Press tab to switch to the Backlog and see the tasks that are not on the board yet."},
	{"New task", "Press n to create a task in the selected column."},
	{"Edit and move", "Press enter or click a card to edit it. Drag it with the mouse, or grab it with m and use the arrows, to change its status and position."},
}

// tour is the guided overlay shown on the first board visit
type tour struct {
	step int
}

func (v *BoardView) updateTour(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Quit):
		v.finishTour()
	case key.Matches(msg, v.keys.Left):
		if v.tour.step > 0 {
			v.tour.step--
		}
	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Toggle):
		v.tour.step++
		if v.tour.step >= len(tourSteps) {
			v.finishTour()
		}
	}
	return v, nil
}

// finishTour runs on completion and on skip alike
func (v *BoardView) finishTour() {
	v.tour = nil
	if err := v.deps.Settings.Set(SettingTourCompleted, "true"); err != nil {
		v.deps.Logger.Warn("write setting", "key", SettingTourCompleted, "error", err)
	}
}

func (v *BoardView) renderTour() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	step := tourSteps[v.tour.step]

	next := "Next"
	if v.tour.step == len(tourSteps)-1 {
		next = "Ready"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(step.title),
		s.TitleMuted.Render(fmt.Sprintf("Step %d of %d", v.tour.step+1, len(tourSteps))),
		"",
		lipgloss.NewStyle().Width(clamp(contentWidth-10, 20, 50)).Render(step.body),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.Button.Render(" ← Prev "),
			"  ",
			s.ButtonPrimary.Render(" "+next+" → "),
		),
		"",
		s.TitleMuted.Render("Esc: skip"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
