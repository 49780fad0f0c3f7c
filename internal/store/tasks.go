package store

import (
	"fmt"
	"time"

	"github.com/tgienger/tboard/internal/board"
	"github.com/tgienger/tboard/internal/ids"
	"github.com/tgienger/tboard/internal/models"
)

// Tasks is the task store. Slice order is display order within a column.
type Tasks struct {
	col *Collection[models.Task]
	ids ids.Generator
	now func() time.Time
}

// List returns every task in display order
func (t *Tasks) List() []models.Task { return t.col.All() }

// Subscribe streams the full task list
func (t *Tasks) Subscribe() (<-chan []models.Task, func()) { return t.col.Subscribe() }

// Get retrieves a task by ID
func (t *Tasks) Get(id string) (models.Task, bool) { return t.col.Find(id) }

// ByProject returns the tasks of one project in display order
func (t *Tasks) ByProject(projectID string) []models.Task {
	return t.col.Filter(func(task models.Task) bool { return task.ProjectID == projectID })
}

// Create appends a new task, which puts it last in its column
func (t *Tasks) Create(req models.CreateTaskRequest) models.Task {
	now := t.now()
	task := models.Task{
		ID:              t.ids.Short(),
		ProjectID:       req.ProjectID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Priority:        req.Priority,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TagIDs:          nonNil(req.TagIDs),
		AssignedUserIDs: nonNil(req.AssignedUserIDs),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	t.col.Append(task)
	return task
}

// Update merges patch into the task with id
func (t *Tasks) Update(id string, patch models.TaskPatch) (models.Task, error) {
	return t.col.Update(id, func(task models.Task) models.Task {
		task = patch.Apply(task)
		task.UpdatedAt = t.now()
		return task
	})
}

// UpdateStatus moves a task to another column without changing its position
// in the overall order.
func (t *Tasks) UpdateStatus(req models.UpdateTaskStatusRequest) (models.Task, error) {
	status := req.Status
	return t.Update(req.ID, models.TaskPatch{Status: &status})
}

// Move places taskID in column to, right before the task beforeID, or at the
// end of the column when beforeID is board.EndOfList. Dropping a task onto
// its own indicator changes nothing.
func (t *Tasks) Move(taskID string, to models.Status, beforeID string) error {
	if _, ok := t.col.Find(taskID); !ok {
		return fmt.Errorf("move task %s: %w", taskID, ErrNotFound)
	}

	t.col.mutate(func(tasks []models.Task) ([]models.Task, bool) {
		next, moved := board.Move(tasks, taskID, to, beforeID)
		if !moved {
			return nil, false
		}
		for i := range next {
			if next[i].ID == taskID {
				next[i].UpdatedAt = t.now()
			}
		}
		return next, true
	})
	return nil
}

// Delete removes a task
func (t *Tasks) Delete(id string) bool { return t.col.Delete(id) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}
