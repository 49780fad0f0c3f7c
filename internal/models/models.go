package models

import (
	"time"
	"unicode"
)

// Status is the board column a task lives in
type Status string

const (
	StatusBacklog Status = "backlog"
	StatusTodo    Status = "todo"
	StatusDoing   Status = "doing"
	StatusDone    Status = "done"
)

// Statuses lists every known status in display order
var Statuses = []Status{StatusBacklog, StatusTodo, StatusDoing, StatusDone}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the column title shown on the board
func (s Status) Label() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusTodo:
		return "ToDo"
	case StatusDoing:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// BoardColumns are the statuses rendered as kanban columns. Backlog tasks
// are shown in their own table.
var BoardColumns = []Status{StatusTodo, StatusDoing, StatusDone}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every known priority, lowest first
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Project represents a task management project
type Project struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Slug      string    `json:"slug" yaml:"slug"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Tag represents a tag that can be applied to tasks
type Tag struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// User represents someone tasks can be assigned to
type User struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Surnames  string    `json:"surnames" yaml:"surnames"`
	AvatarURL string    `json:"avatarUrl" yaml:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// FullName joins name and surnames
func (u User) FullName() string {
	if u.Surnames == "" {
		return u.Name
	}
	return u.Name + " " + u.Surnames
}

// Initials returns up to two uppercase initials for compact rendering
func (u User) Initials() string {
	var out []rune
	for _, part := range []string{u.Name, u.Surnames} {
		for _, r := range part {
			out = append(out, unicode.ToUpper(r))
			break
		}
	}
	return string(out)
}

// Task represents a single task. Tags and users are referenced by id.
type Task struct {
	ID              string    `json:"id" yaml:"id"`
	ProjectID       string    `json:"projectId" yaml:"projectId"`
	Title           string    `json:"title" yaml:"title"`
	Description     string    `json:"description" yaml:"description"`
	Status          Status    `json:"status" yaml:"status"`
	Priority        Priority  `json:"priority" yaml:"priority"`
	StartDate       time.Time `json:"startDate" yaml:"startDate"`
	EndDate         time.Time `json:"endDate" yaml:"endDate"`
	TagIDs          []string  `json:"tagIds" yaml:"tagIds"`
	AssignedUserIDs []string  `json:"assignedUserIds" yaml:"assignedUserIds"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// PopulatedTask is a task with its tag and user references resolved
type PopulatedTask struct {
	Task
	Tags          []Tag
	AssignedUsers []User
}
