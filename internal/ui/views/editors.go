package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/tboard/internal/forms"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/styles"
)

// Fields that only exist in the UI
const (
	fieldColor  = "color"
	fieldAvatar = "avatarUrl"
	fieldTags   = "tags"
	fieldUsers  = "users"
)

type createProjectMsg struct{ req models.CreateProjectRequest }
type updateProjectMsg struct{ req models.UpdateProjectRequest }
type createTagMsg struct{ req models.CreateTagRequest }
type updateTagMsg struct{ req models.UpdateTagRequest }
type createUserMsg struct{ req models.CreateUserRequest }
type updateUserMsg struct{ req models.UpdateUserRequest }
type createTaskMsg struct{ req models.CreateTaskRequest }
type updateTaskMsg struct{ req models.UpdateTaskRequest }

// newProjectForm creates a project, or edits existing when it is not nil
func newProjectForm(s *styles.Styles, existing *models.Project) *Form {
	title, name, color := "New Project", "", styles.PaletteNames[0]
	if existing != nil {
		title, name, color = "Edit Project", existing.Name, existing.Color
	}

	f := newForm(s, title, func(f *Form) (tea.Msg, error) {
		vals := forms.ProjectValues{Name: f.value(forms.FieldName), Color: f.value(fieldColor)}
		if existing == nil {
			req, err := vals.Create()
			return createProjectMsg{req}, err
		}
		req, err := vals.Update(existing.ID)
		return updateProjectMsg{req}, err
	})
	f.addText(forms.FieldName, "Name", "Project name", name)
	f.addChoice(fieldColor, "Color", paletteOptions(), color)
	return f
}

func newTagForm(s *styles.Styles, existing *models.Tag) *Form {
	title, name, color := "New Tag", "", styles.PaletteNames[0]
	if existing != nil {
		title, name, color = "Edit Tag", existing.Name, existing.Color
	}

	f := newForm(s, title, func(f *Form) (tea.Msg, error) {
		vals := forms.TagValues{Name: f.value(forms.FieldName), Color: f.value(fieldColor)}
		if existing == nil {
			req, err := vals.Create()
			return createTagMsg{req}, err
		}
		req, err := vals.Update(existing.ID)
		return updateTagMsg{req}, err
	})
	f.addText(forms.FieldName, "Name", "Tag name", name)
	f.addChoice(fieldColor, "Color", paletteOptions(), color)
	return f
}

func newUserForm(s *styles.Styles, existing *models.User) *Form {
	title := "New User"
	var u models.User
	if existing != nil {
		title, u = "Edit User", *existing
	}

	f := newForm(s, title, func(f *Form) (tea.Msg, error) {
		vals := forms.UserValues{
			Name:      f.value(forms.FieldName),
			Surnames:  f.value(forms.FieldSurnames),
			AvatarURL: f.value(fieldAvatar),
		}
		if existing == nil {
			req, err := vals.Create()
			return createUserMsg{req}, err
		}
		req, err := vals.Update(existing.ID)
		return updateUserMsg{req}, err
	})
	f.addText(forms.FieldName, "Name", "Name", u.Name)
	f.addText(forms.FieldSurnames, "Surnames", "Surnames", u.Surnames)
	f.addText(fieldAvatar, "Avatar URL", "https://… (optional)", u.AvatarURL)
	return f
}

// taskFormDefaults seeds a new task
type taskFormDefaults struct {
	projectID string
	status    models.Status
	today     time.Time
}

func newTaskForm(s *styles.Styles, existing *models.Task, def taskFormDefaults, tags []models.Tag, users []models.User) *Form {
	title := "New Task"
	vals := forms.TaskValues{
		ProjectID: def.projectID,
		Status:    def.status,
		Priority:  models.PriorityLow,
		StartDate: def.today.Format(models.DateLayout),
		EndDate:   def.today.Format(models.DateLayout),
	}
	if existing != nil {
		title = "Edit Task"
		vals = forms.TaskValuesFrom(*existing)
	}

	f := newForm(s, title, func(f *Form) (tea.Msg, error) {
		in := forms.TaskValues{
			ProjectID:       vals.ProjectID,
			Title:           f.value(forms.FieldTitle),
			Description:     f.value(forms.FieldDescription),
			Status:          models.Status(f.value(forms.FieldStatus)),
			Priority:        models.Priority(f.value(forms.FieldPriority)),
			StartDate:       f.value(forms.FieldStartDate),
			EndDate:         f.value(forms.FieldEndDate),
			TagIDs:          f.values(fieldTags),
			AssignedUserIDs: f.values(fieldUsers),
		}
		if existing == nil {
			req, err := in.Create()
			return createTaskMsg{req}, err
		}
		req, err := in.Update(existing.ID)
		return updateTaskMsg{req}, err
	})

	statuses := make([]option, len(models.Statuses))
	for i, st := range models.Statuses {
		statuses[i] = option{value: string(st), label: st.Label()}
	}
	priorities := make([]option, len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = option{value: string(p), label: string(p)}
	}
	tagOpts := make([]option, len(tags))
	for i, t := range tags {
		tagOpts[i] = option{value: t.ID, label: t.Name, swatch: styles.ColorFor(t.Color)}
	}
	userOpts := make([]option, len(users))
	for i, u := range users {
		userOpts[i] = option{value: u.ID, label: u.FullName()}
	}

	f.addText(forms.FieldTitle, "Title", "Task title", vals.Title)
	f.addArea(forms.FieldDescription, "Description", "At least 10 characters", vals.Description)
	f.addChoice(forms.FieldStatus, "Status", statuses, string(vals.Status))
	f.addChoice(forms.FieldPriority, "Priority", priorities, string(vals.Priority))
	f.addText(forms.FieldStartDate, "Start date", models.DateLayout, vals.StartDate)
	f.addText(forms.FieldEndDate, "End date", models.DateLayout, vals.EndDate)
	f.addMulti(fieldTags, "Tags", tagOpts, vals.TagIDs)
	f.addMulti(fieldUsers, "Assignees", userOpts, vals.AssignedUserIDs)
	return f
}
