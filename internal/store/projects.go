package store

import (
	"time"

	"github.com/tgienger/tboard/internal/ids"
	"github.com/tgienger/tboard/internal/models"
)

// Projects is the project store
type Projects struct {
	col *Collection[models.Project]
	ids ids.Generator
	now func() time.Time
}

// List returns every project in creation order
func (p *Projects) List() []models.Project { return p.col.All() }

// Subscribe streams the project list
func (p *Projects) Subscribe() (<-chan []models.Project, func()) { return p.col.Subscribe() }

// Get retrieves a project by ID
func (p *Projects) Get(id string) (models.Project, bool) { return p.col.Find(id) }

// BySlug retrieves the first project with slug
func (p *Projects) BySlug(slug string) (models.Project, bool) {
	matches := p.col.Filter(func(pr models.Project) bool { return pr.Slug == slug })
	if len(matches) == 0 {
		return models.Project{}, false
	}
	return matches[0], true
}

// Create adds a new project. Slug uniqueness is not enforced.
func (p *Projects) Create(req models.CreateProjectRequest) models.Project {
	now := p.now()
	project := models.Project{
		ID:        p.ids.UUID(),
		Name:      req.Name,
		Slug:      req.Slug(),
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.col.Append(project)
	return project
}

// Update merges patch into the project with id
func (p *Projects) Update(id string, patch models.ProjectPatch) (models.Project, error) {
	return p.col.Update(id, func(pr models.Project) models.Project {
		pr = patch.Apply(pr)
		pr.UpdatedAt = p.now()
		return pr
	})
}

// Delete removes a project. Its tasks are left in place.
func (p *Projects) Delete(id string) bool { return p.col.Delete(id) }
