package board

import (
	"math"

	"github.com/tgienger/tboard/internal/models"
)

// EndOfList is the indicator tag meaning "insert after the last card"
const EndOfList = "-1"

// DefaultBias is the offset, in pixels, added to an indicator's top edge
// before comparing it with the pointer.
const DefaultBias = 25.0

// Indicator is an insertion marker inside a column
type Indicator struct {
	Column models.Status
	Before string  // id of the task this indicator precedes, or EndOfList
	Top    float64 // top edge in view coordinates
}

// ColumnIndicators builds the indicator list for a column whose cards start
// at top and are laid out every step units, in order.
func ColumnIndicators(column models.Status, taskIDs []string, top, step float64) []Indicator {
	out := make([]Indicator, 0, len(taskIDs)+1)
	for i, id := range taskIDs {
		out = append(out, Indicator{Column: column, Before: id, Top: top + float64(i)*step})
	}
	out = append(out, Indicator{Column: column, Before: EndOfList, Top: top + float64(len(taskIDs))*step})
	return out
}

// Nearest returns the first indicator below the pointer: the one whose offset
// y - (Top + bias) is negative and closest to zero. When no indicator
// qualifies the last one is returned, meaning "insert at end". ok is false
// only when indicators is empty.
func Nearest(y float64, indicators []Indicator, bias float64) (ind Indicator, ok bool) {
	if len(indicators) == 0 {
		return Indicator{}, false
	}

	best := indicators[len(indicators)-1]
	bestOffset := math.Inf(-1)
	for _, candidate := range indicators {
		offset := y - (candidate.Top + bias)
		if offset < 0 && offset > bestOffset {
			bestOffset = offset
			best = candidate
		}
	}
	return best, true
}

// Move relocates taskID to column to, placing it immediately before the task
// beforeID. With beforeID == EndOfList, or a beforeID that is not in tasks,
// the task is appended. The input slice is never modified.
//
// moved is false, and tasks is returned as is, when taskID is unknown or
// when the task is dropped onto its own indicator.
func Move(tasks []models.Task, taskID string, to models.Status, beforeID string) (out []models.Task, moved bool) {
	if taskID == "" || beforeID == taskID {
		return tasks, false
	}

	from := indexOf(tasks, taskID)
	if from < 0 {
		return tasks, false
	}

	task := tasks[from]
	task.Status = to

	out = make([]models.Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)

	at := len(out)
	if beforeID != EndOfList {
		if i := indexOf(out, beforeID); i >= 0 {
			at = i
		}
	}

	out = append(out, models.Task{})
	copy(out[at+1:], out[at:])
	out[at] = task
	return out, true
}

// Column returns the tasks of one column, preserving order
func Column(tasks []models.Task, status models.Status) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(tasks []models.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
