package forms

import (
	"strings"
	"time"

	"github.com/tgienger/tboard/internal/models"
)

// Field names, shared with the views so errors can be shown next to inputs
const (
	FieldName        = "name"
	FieldSurnames    = "surnames"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
)

// ProjectValues are the raw fields of the project form
type ProjectValues struct {
	Name  string
	Color string
}

func (v ProjectValues) validate() error {
	var val validator
	val.text(FieldName, "Name", v.Name, 3, false)
	return val.err()
}

// Create validates the values and builds a create request
func (v ProjectValues) Create() (models.CreateProjectRequest, error) {
	if err := v.validate(); err != nil {
		return models.CreateProjectRequest{}, err
	}
	return models.CreateProjectRequest{Name: strings.TrimSpace(v.Name), Color: v.Color}, nil
}

// Update validates the values and builds an update request for id
func (v ProjectValues) Update(id string) (models.UpdateProjectRequest, error) {
	if err := v.validate(); err != nil {
		return models.UpdateProjectRequest{}, err
	}
	return models.UpdateProjectRequest{ID: id, Name: strings.TrimSpace(v.Name), Color: v.Color}, nil
}

// TagValues are the raw fields of the tag form
type TagValues struct {
	Name  string
	Color string
}

func (v TagValues) validate() error {
	var val validator
	val.text(FieldName, "Name", v.Name, 3, false)
	return val.err()
}

// Create validates the values and builds a create request
func (v TagValues) Create() (models.CreateTagRequest, error) {
	if err := v.validate(); err != nil {
		return models.CreateTagRequest{}, err
	}
	return models.CreateTagRequest{Name: strings.TrimSpace(v.Name), Color: v.Color}, nil
}

// Update validates the values and builds an update request for id
func (v TagValues) Update(id string) (models.UpdateTagRequest, error) {
	if err := v.validate(); err != nil {
		return models.UpdateTagRequest{}, err
	}
	return models.UpdateTagRequest{ID: id, Name: strings.TrimSpace(v.Name), Color: v.Color}, nil
}

// UserValues are the raw fields of the user form
type UserValues struct {
	Name      string
	Surnames  string
	AvatarURL string
}

func (v UserValues) validate() error {
	var val validator
	val.text(FieldName, "Name", v.Name, 3, false)
	val.text(FieldSurnames, "Surnames", v.Surnames, 3, true)
	return val.err()
}

// Create validates the values and builds a create request
func (v UserValues) Create() (models.CreateUserRequest, error) {
	if err := v.validate(); err != nil {
		return models.CreateUserRequest{}, err
	}
	return models.CreateUserRequest{
		Name:      strings.TrimSpace(v.Name),
		Surnames:  strings.TrimSpace(v.Surnames),
		AvatarURL: strings.TrimSpace(v.AvatarURL),
	}, nil
}

// Update validates the values and builds an update request for id
func (v UserValues) Update(id string) (models.UpdateUserRequest, error) {
	if err := v.validate(); err != nil {
		return models.UpdateUserRequest{}, err
	}
	return models.UpdateUserRequest{
		ID:        id,
		Name:      strings.TrimSpace(v.Name),
		Surnames:  strings.TrimSpace(v.Surnames),
		AvatarURL: strings.TrimSpace(v.AvatarURL),
	}, nil
}

// TaskValues are the raw fields of the task form. Dates use models.DateLayout.
type TaskValues struct {
	ProjectID       string
	Title           string
	Description     string
	Status          models.Status
	Priority        models.Priority
	StartDate       string
	EndDate         string
	TagIDs          []string
	AssignedUserIDs []string
}

func (v TaskValues) parse() (models.CreateTaskRequest, error) {
	var val validator
	val.text(FieldTitle, "Title", v.Title, 3, false)
	val.text(FieldDescription, "Description", v.Description, 10, false)
	if !v.Status.Valid() {
		val.fail(FieldStatus, "Status is required")
	}
	if !v.Priority.Valid() {
		val.fail(FieldPriority, "Priority is required")
	}
	start := val.date(FieldStartDate, "Start date", v.StartDate)
	end := val.date(FieldEndDate, "End date", v.EndDate)
	if err := val.err(); err != nil {
		return models.CreateTaskRequest{}, err
	}

	return models.CreateTaskRequest{
		ProjectID:       v.ProjectID,
		Title:           strings.TrimSpace(v.Title),
		Description:     strings.TrimSpace(v.Description),
		Status:          v.Status,
		Priority:        v.Priority,
		StartDate:       start,
		EndDate:         end,
		TagIDs:          append([]string{}, v.TagIDs...),
		AssignedUserIDs: append([]string{}, v.AssignedUserIDs...),
	}, nil
}

// Create validates the values and builds a create request
func (v TaskValues) Create() (models.CreateTaskRequest, error) {
	return v.parse()
}

// Update validates the values and builds an update request for id
func (v TaskValues) Update(id string) (models.UpdateTaskRequest, error) {
	req, err := v.parse()
	if err != nil {
		return models.UpdateTaskRequest{}, err
	}
	return models.UpdateTaskRequest{ID: id, CreateTaskRequest: req}, nil
}

// TaskValuesFrom fills the form from an existing task
func TaskValuesFrom(t models.Task) TaskValues {
	return TaskValues{
		ProjectID:       t.ProjectID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status,
		Priority:        t.Priority,
		StartDate:       formatDate(t.StartDate),
		EndDate:         formatDate(t.EndDate),
		TagIDs:          append([]string{}, t.TagIDs...),
		AssignedUserIDs: append([]string{}, t.AssignedUserIDs...),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.DateLayout)
}

func (v *validator) date(field, label, value string) time.Time {
	if !v.required(field, label, value, false) {
		return time.Time{}
	}
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		v.fail(field, label+" must be a date (YYYY-MM-DD)")
		return time.Time{}
	}
	return t
}
