package store

import (
	"sync"

	"github.com/tgienger/tboard/internal/models"
)

// Populate resolves the tag and user ids of every task. Ids that reference
// nothing are dropped; the order of ids is preserved.
func Populate(tasks []models.Task, tags []models.Tag, users []models.User) []models.PopulatedTask {
	tagByID := make(map[string]models.Tag, len(tags))
	for _, tag := range tags {
		tagByID[tag.ID] = tag
	}
	userByID := make(map[string]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	out := make([]models.PopulatedTask, len(tasks))
	for i, task := range tasks {
		pt := models.PopulatedTask{Task: task}
		for _, id := range task.TagIDs {
			if tag, ok := tagByID[id]; ok {
				pt.Tags = append(pt.Tags, tag)
			}
		}
		for _, id := range task.AssignedUserIDs {
			if u, ok := userByID[id]; ok {
				pt.AssignedUsers = append(pt.AssignedUsers, u)
			}
		}
		out[i] = pt
	}
	return out
}

// Populated returns the populated tasks of one project
func (s *Stores) Populated(projectID string) []models.PopulatedTask {
	return Populate(s.Tasks.ByProject(projectID), s.Tags.List(), s.Users.List())
}

// SubscribeBoard streams the populated tasks of one project. A new slice is
// emitted whenever tasks, tags or users change; like the collection streams
// it starts with the current value and keeps only the latest one.
func (s *Stores) SubscribeBoard(projectID string) (<-chan []models.PopulatedTask, func()) {
	taskCh, cancelTasks := s.Tasks.Subscribe()
	tagCh, cancelTags := s.Tags.Subscribe()
	userCh, cancelUsers := s.Users.Subscribe()

	out := make(chan []models.PopulatedTask, 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		defer cancelUsers()
		defer cancelTags()
		defer cancelTasks()

		var (
			tasks []models.Task
			tags  []models.Tag
			users []models.User
			ok    bool
		)
		var haveTasks, haveTags, haveUsers bool
		for {
			select {
			case <-done:
				return
			case tasks, ok = <-taskCh:
				haveTasks = true
			case tags, ok = <-tagCh:
				haveTags = true
			case users, ok = <-userCh:
				haveUsers = true
			}
			if !ok {
				return
			}
			if !haveTasks || !haveTags || !haveUsers {
				continue
			}

			var mine []models.Task
			for _, t := range tasks {
				if t.ProjectID == projectID {
					mine = append(mine, t)
				}
			}
			next := Populate(mine, tags, users)

			select {
			case <-out:
			default:
			}
			out <- next
		}
	}()

	var once sync.Once
	return out, func() { once.Do(func() { close(done) }) }
}
