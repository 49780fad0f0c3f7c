package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/config"
	"github.com/tgienger/tboard/internal/db"
	"github.com/tgienger/tboard/internal/logging"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/store"
)

var testNow = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

// newTestDeps builds views dependencies over the demo workspace. The tour is
// marked as seen unless withTour is set.
func newTestDeps(t *testing.T, withTour bool) (Deps, *db.Memory) {
	t.Helper()
	kv := db.NewMemory()
	if !withTour {
		require.NoError(t, kv.Set(SettingTourCompleted, "true"))
	}
	logger := logging.Discard()
	stores := store.Open(kv, store.WithLogger(logger), store.WithSeed(store.DemoSeed(testNow)))
	return Deps{
		Stores:   stores,
		Settings: kv,
		Logger:   logger,
		Board:    config.BoardConfig{DropBias: 3, Animation: 300 * time.Millisecond, Mouse: true},
		Paths:    Paths{Config: "/tmp/tboard/config.yaml", DB: "(in memory)", Log: ""},
		Now:      func() time.Time { return testNow },
	}, kv
}

// receive runs a blocking command with a deadline
func receive(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()
	select {
	case msg := <-got:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return nil
}

func demoProject(t *testing.T, d Deps) models.Project {
	t.Helper()
	p, ok := d.Stores.Projects.BySlug("median")
	require.True(t, ok)
	return p
}

// openBoard returns a sized, loaded board of the demo project: 120x40 gives
// three 39-cell columns and five visible slots each
func openBoard(t *testing.T, d Deps) *BoardView {
	t.Helper()
	v := NewBoardView(d, demoProject(t, d))
	t.Cleanup(v.Close)
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v.Update(receive(t, v.listen()))
	require.True(t, v.loaded)
	return v
}

// refresh delivers the next store emission to the board
func refresh(t *testing.T, v *BoardView) tea.Cmd {
	t.Helper()
	_, cmd := v.Update(receive(t, v.listen()))
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func columnOrder(d Deps, projectID string, status models.Status) []string {
	var ids []string
	for _, task := range d.Stores.Tasks.ByProject(projectID) {
		if task.Status == status {
			ids = append(ids, task.ID)
		}
	}
	return ids
}
