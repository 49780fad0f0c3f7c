package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/forms"
)

func TestProjectListCreateOpensBoard(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewProjectListView(d)
	defer v.Close()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(receive(t, v.listen()))
	require.Len(t, v.list.Items(), 3)

	v.Update(runes("n"))
	require.True(t, v.Capturing())
	v.form.set(forms.FieldName, "Launch Plan")

	_, cmd := v.Update(receive(t, v.form.Submit()))
	assert.Nil(t, v.form)
	selected, ok := receive(t, cmd).(SelectedProject)
	require.True(t, ok)
	assert.Equal(t, "launch-plan", selected.Project.Slug)

	_, found := d.Stores.Projects.BySlug("launch-plan")
	assert.True(t, found)
}

func TestProjectListEnterSelects(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewProjectListView(d)
	defer v.Close()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(receive(t, v.listen()))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	selected, ok := receive(t, cmd).(SelectedProject)
	require.True(t, ok)
	assert.Equal(t, "median", selected.Project.Slug)
}

func TestProjectListDeleteConfirm(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewProjectListView(d)
	defer v.Close()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(receive(t, v.listen()))

	v.Update(runes("d"))
	require.NotNil(t, v.confirmDelete)
	assert.Contains(t, v.View(), "Median")

	v.Update(runes("x"))
	assert.NotNil(t, v.confirmDelete, "other keys leave the prompt open")

	v.Update(runes("y"))
	assert.Nil(t, v.confirmDelete)
	_, found := d.Stores.Projects.BySlug("median")
	assert.False(t, found)
}

func TestTagListEditAndDelete(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewTagListView(d)
	defer v.Close()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(receive(t, v.Init()))
	require.Len(t, v.tags, 6)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, v.form)
	assert.Equal(t, "Prototype", v.form.value(forms.FieldName))
	v.form.set(forms.FieldName, "Spike")
	v.Update(receive(t, v.form.Submit()))

	tag, ok := d.Stores.Tags.Get("227752")
	require.True(t, ok)
	assert.Equal(t, "Spike", tag.Name)

	v.Update(receive(t, v.Init()))
	v.Update(runes("d"))
	v.Update(runes("y"))
	_, ok = d.Stores.Tags.Get("227752")
	assert.False(t, ok)
}

func TestUserListCreate(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewUserListView(d)
	defer v.Close()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v.Update(receive(t, v.Init()))

	v.Update(runes("n"))
	require.True(t, v.Capturing())
	v.form.set(forms.FieldName, "Lucía")
	v.form.set(forms.FieldSurnames, "Gómez")
	v.Update(receive(t, v.form.Submit()))

	assert.Nil(t, v.form)
	assert.Len(t, d.Stores.Users.List(), 8)
}

func TestListBackGoesToProjects(t *testing.T) {
	d, _ := newTestDeps(t, false)
	v := NewUserListView(d)
	defer v.Close()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.IsType(t, BackToProjects{}, receive(t, cmd))
}
