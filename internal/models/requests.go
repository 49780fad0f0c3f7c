package models

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the format used for task start and end dates in forms
const DateLayout = "2006-01-02"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify derives a project slug from its name: lowercased, with every run of
// whitespace replaced by a single dash.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// CreateProjectRequest carries the fields of a new project
type CreateProjectRequest struct {
	Name  string
	Color string
}

// Slug returns the slug derived from the requested name
func (r CreateProjectRequest) Slug() string { return Slugify(r.Name) }

// UpdateProjectRequest carries the full editable state of an existing project
type UpdateProjectRequest struct {
	ID    string
	Name  string
	Color string
}

// Patch converts the request into a project patch, slug included
func (r UpdateProjectRequest) Patch() ProjectPatch {
	slug := Slugify(r.Name)
	return ProjectPatch{Name: &r.Name, Slug: &slug, Color: &r.Color}
}

// ProjectPatch is a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Name  *string
	Slug  *string
	Color *string
}

// Apply merges the patch into p
func (pp ProjectPatch) Apply(p Project) Project {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Slug != nil {
		p.Slug = *pp.Slug
	}
	if pp.Color != nil {
		p.Color = *pp.Color
	}
	return p
}

// CreateTagRequest carries the fields of a new tag
type CreateTagRequest struct {
	Name  string
	Color string
}

// UpdateTagRequest carries the full editable state of an existing tag
type UpdateTagRequest struct {
	ID    string
	Name  string
	Color string
}

// Patch converts the request into a tag patch
func (r UpdateTagRequest) Patch() TagPatch {
	return TagPatch{Name: &r.Name, Color: &r.Color}
}

// TagPatch is a partial update. Nil fields are left untouched.
type TagPatch struct {
	Name  *string
	Color *string
}

// Apply merges the patch into t
func (tp TagPatch) Apply(t Tag) Tag {
	if tp.Name != nil {
		t.Name = *tp.Name
	}
	if tp.Color != nil {
		t.Color = *tp.Color
	}
	return t
}

// CreateUserRequest carries the fields of a new user
type CreateUserRequest struct {
	Name      string
	Surnames  string
	AvatarURL string
}

// UpdateUserRequest carries the full editable state of an existing user
type UpdateUserRequest struct {
	ID        string
	Name      string
	Surnames  string
	AvatarURL string
}

// Patch converts the request into a user patch
func (r UpdateUserRequest) Patch() UserPatch {
	return UserPatch{Name: &r.Name, Surnames: &r.Surnames, AvatarURL: &r.AvatarURL}
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name      *string
	Surnames  *string
	AvatarURL *string
}

// Apply merges the patch into u
func (up UserPatch) Apply(u User) User {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Surnames != nil {
		u.Surnames = *up.Surnames
	}
	if up.AvatarURL != nil {
		u.AvatarURL = *up.AvatarURL
	}
	return u
}

// CreateTaskRequest carries the fields of a new task
type CreateTaskRequest struct {
	ProjectID       string
	Title           string
	Description     string
	Status          Status
	Priority        Priority
	StartDate       time.Time
	EndDate         time.Time
	TagIDs          []string
	AssignedUserIDs []string
}

// UpdateTaskRequest carries the full editable state of an existing task
type UpdateTaskRequest struct {
	ID string
	CreateTaskRequest
}

// Patch converts the request into a task patch
func (r UpdateTaskRequest) Patch() TaskPatch {
	return TaskPatch{
		ProjectID:       &r.ProjectID,
		Title:           &r.Title,
		Description:     &r.Description,
		Status:          &r.Status,
		Priority:        &r.Priority,
		StartDate:       &r.StartDate,
		EndDate:         &r.EndDate,
		TagIDs:          &r.TagIDs,
		AssignedUserIDs: &r.AssignedUserIDs,
	}
}

// UpdateTaskStatusRequest moves a task to another column
type UpdateTaskStatusRequest struct {
	ID     string
	Status Status
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	ProjectID       *string
	Title           *string
	Description     *string
	Status          *Status
	Priority        *Priority
	StartDate       *time.Time
	EndDate         *time.Time
	TagIDs          *[]string
	AssignedUserIDs *[]string
}

// Apply merges the patch into t. Slices are copied so the caller's request
// does not alias stored state.
func (tp TaskPatch) Apply(t Task) Task {
	if tp.ProjectID != nil {
		t.ProjectID = *tp.ProjectID
	}
	if tp.Title != nil {
		t.Title = *tp.Title
	}
	if tp.Description != nil {
		t.Description = *tp.Description
	}
	if tp.Status != nil {
		t.Status = *tp.Status
	}
	if tp.Priority != nil {
		t.Priority = *tp.Priority
	}
	if tp.StartDate != nil {
		t.StartDate = *tp.StartDate
	}
	if tp.EndDate != nil {
		t.EndDate = *tp.EndDate
	}
	if tp.TagIDs != nil {
		t.TagIDs = append([]string(nil), (*tp.TagIDs)...)
	}
	if tp.AssignedUserIDs != nil {
		t.AssignedUserIDs = append([]string(nil), (*tp.AssignedUserIDs)...)
	}
	return t
}
