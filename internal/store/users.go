package store

import (
	"time"

	"github.com/tgienger/tboard/internal/ids"
	"github.com/tgienger/tboard/internal/models"
)

// Users is the user store
type Users struct {
	col *Collection[models.User]
	ids ids.Generator
	now func() time.Time
}

func (u *Users) List() []models.User { return u.col.All() }

func (u *Users) Subscribe() (<-chan []models.User, func()) { return u.col.Subscribe() }

func (u *Users) Get(id string) (models.User, bool) { return u.col.Find(id) }

func (u *Users) Create(req models.CreateUserRequest) models.User {
	now := u.now()
	user := models.User{
		ID:        u.ids.Short(),
		Name:      req.Name,
		Surnames:  req.Surnames,
		AvatarURL: req.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.col.Append(user)
	return user
}

func (u *Users) Update(id string, patch models.UserPatch) (models.User, error) {
	return u.col.Update(id, func(user models.User) models.User {
		user = patch.Apply(user)
		user.UpdatedAt = u.now()
		return user
	})
}

func (u *Users) Delete(id string) bool { return u.col.Delete(id) }
