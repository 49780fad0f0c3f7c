package views

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/config"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/store"
	"github.com/tgienger/tboard/internal/ui/styles"
)

// Setting keys kept next to the collections in the key/value store
const (
	SettingLastProject   = "last_project"
	SettingTourCompleted = "tourCompleted"
)

// Settings is the key/value store used for UI preferences
type Settings interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Paths are shown on the settings page
type Paths struct {
	Config string
	DB     string
	Log    string
}

// Deps is everything a view needs from the outside world
type Deps struct {
	Stores   *store.Stores
	Settings Settings
	Logger   *slog.Logger
	Board    config.BoardConfig
	Paths    Paths
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// SelectedProject asks the app to open a project's board
type SelectedProject struct {
	Project models.Project
}

// BackToProjects signals to go back to project list
type BackToProjects struct{}

// listen turns one receive from a store stream into a message. A closed
// stream produces no message, which ends the listen loop.
func listen[T any](ch <-chan T, wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return wrap(v)
	}
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// deleteTarget is the entity waiting for a y/n answer
type deleteTarget struct {
	id   string
	name string
}

// confirmAnswer reads a y/n key. answered is false for any other key.
func confirmAnswer(msg tea.KeyMsg) (answered, yes bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", "esc":
		return true, false
	}
	return false, false
}

func renderDeleteConfirm(s *styles.Styles, what, name string, width, height int) string {
	contentWidth := styles.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete "+what+"?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", name)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// renderHelpLine renders key/description pairs, e.g. "n", "new", "q", "quit"
func renderHelpLine(s *styles.Styles, width int, pairs ...string) string {
	// At narrow widths, show hint to press ? for help
	if width > 0 && width < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.HelpKey.Render(pairs[i])+" "+s.HelpDesc.Render(pairs[i+1]))
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func renderHelpPopup(s *styles.Styles, width, height int, pairs ...string) string {
	contentWidth := styles.ContentWidth(width)

	items := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, s.HelpKey.Render(fmt.Sprintf("%-7s", pairs[i]))+s.HelpDesc.Render(pairs[i+1]))
	}
	items = append(items, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
	return styles.CenterView(centered, width, height)
}
