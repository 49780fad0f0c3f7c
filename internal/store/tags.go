package store

import (
	"time"

	"github.com/tgienger/tboard/internal/ids"
	"github.com/tgienger/tboard/internal/models"
)

// Tags is the tag store
type Tags struct {
	col *Collection[models.Tag]
	ids ids.Generator
	now func() time.Time
}

func (t *Tags) List() []models.Tag { return t.col.All() }

func (t *Tags) Subscribe() (<-chan []models.Tag, func()) { return t.col.Subscribe() }

func (t *Tags) Get(id string) (models.Tag, bool) { return t.col.Find(id) }

func (t *Tags) Create(req models.CreateTagRequest) models.Tag {
	now := t.now()
	tag := models.Tag{
		ID:        t.ids.Short(),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.col.Append(tag)
	return tag
}

func (t *Tags) Update(id string, patch models.TagPatch) (models.Tag, error) {
	return t.col.Update(id, func(tag models.Tag) models.Tag {
		tag = patch.Apply(tag)
		tag.UpdatedAt = t.now()
		return tag
	})
}

// Delete removes a tag. Tasks keep the dangling id until they are saved again.
func (t *Tags) Delete(id string) bool { return t.col.Delete(id) }
