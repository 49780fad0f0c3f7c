package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/models"
)

func TestSubscribeDeliversCurrentThenUpdates(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.stores.Tags.Create(models.CreateTagRequest{Name: "Research"})

	ch, cancel := f.stores.Tags.Subscribe()
	defer cancel()

	first := recv(t, ch)
	require.Len(t, first, 1)

	f.stores.Tags.Create(models.CreateTagRequest{Name: "Design"})
	second := recv(t, ch)
	assert.Len(t, second, 2)
}

func TestSubscribeKeepsOnlyLatest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ch, cancel := f.stores.Users.Subscribe()
	defer cancel()

	for _, name := range []string{"Ana", "Marc", "Javier"} {
		f.stores.Users.Create(models.CreateUserRequest{Name: name, Surnames: "Test"})
	}

	latest := recv(t, ch)
	assert.Len(t, latest, 3)

	select {
	case v := <-ch:
		t.Fatalf("unexpected extra emission %v", v)
	default:
	}
}

func TestCancelClosesStream(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	ch, cancel := f.stores.Projects.Subscribe()
	recv(t, ch)
	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// mutations after cancel must not panic on the closed channel
	f.stores.Projects.Create(models.CreateProjectRequest{Name: "Median"})
}

func TestEmittedSlicesAreIndependent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.stores.Tags.Create(models.CreateTagRequest{Name: "Research"})

	ch, cancel := f.stores.Tags.Subscribe()
	defer cancel()

	got := recv(t, ch)
	got[0].Name = "mutated"
	assert.Equal(t, "Research", f.stores.Tags.List()[0].Name)
}

func TestPopulateDropsDanglingIDs(t *testing.T) {
	t.Parallel()

	tags := []models.Tag{{ID: "t1", Name: "Design"}, {ID: "t2", Name: "Backend"}}
	users := []models.User{{ID: "u1", Name: "Ana"}}
	tasks := []models.Task{
		{ID: "a", TagIDs: []string{"t2", "gone", "t1"}, AssignedUserIDs: []string{"u1", "ghost"}},
		{ID: "b"},
	}

	got := Populate(tasks, tags, users)
	require.Len(t, got, 2)
	assert.Equal(t, []models.Tag{tags[1], tags[0]}, got[0].Tags)
	assert.Equal(t, users, got[0].AssignedUsers)
	assert.Empty(t, got[1].Tags)
	assert.Equal(t, []string{"t2", "gone", "t1"}, got[0].TagIDs, "raw ids are kept on the task")
}

func TestSubscribeBoard(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	s := f.stores

	tag := s.Tags.Create(models.CreateTagRequest{Name: "Design"})
	s.Tasks.Create(models.CreateTaskRequest{ProjectID: "p1", Title: "Mine", Status: models.StatusTodo, TagIDs: []string{tag.ID}})
	s.Tasks.Create(models.CreateTaskRequest{ProjectID: "p2", Title: "Other", Status: models.StatusTodo})

	ch, cancel := s.SubscribeBoard("p1")
	defer cancel()

	waitFor := func(pred func([]models.PopulatedTask) bool) []models.PopulatedTask {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case v, ok := <-ch:
				require.True(t, ok)
				if pred(v) {
					return v
				}
			case <-deadline:
				t.Fatal("board never reached expected state")
			}
		}
	}

	initial := waitFor(func(v []models.PopulatedTask) bool { return len(v) == 1 })
	assert.Equal(t, "Mine", initial[0].Title)
	assert.Equal(t, "Design", initial[0].Tags[0].Name)

	// a tag rename flows into the populated view
	name := "Visual design"
	_, err := s.Tags.Update(tag.ID, models.TagPatch{Name: &name})
	require.NoError(t, err)
	renamed := waitFor(func(v []models.PopulatedTask) bool {
		return len(v) == 1 && len(v[0].Tags) == 1 && v[0].Tags[0].Name == name
	})
	assert.Equal(t, "Mine", renamed[0].Title)

	// deleting the tag leaves a dangling id that is dropped
	require.True(t, s.Tags.Delete(tag.ID))
	waitFor(func(v []models.PopulatedTask) bool { return len(v) == 1 && len(v[0].Tags) == 0 })

	cancel()
	for range ch {
	}
}
