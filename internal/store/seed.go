package store

import (
	"time"

	"github.com/tgienger/tboard/internal/models"
)

// DemoSeed returns a small sample workspace: three projects, a handful of
// tags and users, and a board for the first project. Dates are relative to now.
func DemoSeed(now time.Time) Seed {
	day := now.Truncate(24 * time.Hour)

	users := []models.User{
		{ID: "836235", Name: "Carlos", Surnames: "Rodríguez", AvatarURL: "users/user1.jpg"},
		{ID: "455940", Name: "María", Surnames: "López Hernández", AvatarURL: "users/user2.jpg"},
		{ID: "383308", Name: "Andrea", Surnames: "Martínez", AvatarURL: "users/user3.jpg"},
		{ID: "324431", Name: "Javier", Surnames: "Santos Pérez", AvatarURL: "users/user4.jpg"},
		{ID: "719530", Name: "Ana", Surnames: "Ortega", AvatarURL: "users/user5.jpg"},
		{ID: "493598", Name: "Leandro", Surnames: "Zurrik", AvatarURL: "users/user6.jpg"},
		{ID: "688239", Name: "Marc", Surnames: "Dojvik", AvatarURL: "users/user7.jpg"},
	}
	tags := []models.Tag{
		{ID: "227752", Name: "Prototype", Color: "violet"},
		{ID: "690858", Name: "Research", Color: "pink"},
		{ID: "715621", Name: "Design", Color: "blue"},
		{ID: "732672", Name: "Frontend", Color: "red"},
		{ID: "874466", Name: "Backend", Color: "teal"},
		{ID: "385976", Name: "Design system", Color: "yellow"},
	}
	projects := []models.Project{
		{ID: "156235", Name: "Median", Slug: "median", Color: "pink"},
		{ID: "839328", Name: "Risen", Slug: "risen", Color: "blue"},
		{ID: "524946", Name: "Strata Insurance", Slug: "strata-insurance", Color: "amber"},
	}

	task := func(id, title string, status models.Status, prio models.Priority, tagIDs, userIDs []string) models.Task {
		return models.Task{
			ID:              id,
			ProjectID:       "156235",
			Title:           title,
			Status:          status,
			Priority:        prio,
			StartDate:       day,
			EndDate:         day.AddDate(0, 0, 7),
			TagIDs:          tagIDs,
			AssignedUserIDs: userIDs,
		}
	}
	tasks := []models.Task{
		task("608707", "Research DB options for new microservice", models.StatusTodo, models.PriorityLow,
			[]string{"690858", "715621"}, []string{"455940", "324431"}),
		task("093072", "Sync with product on Q3 roadmap", models.StatusTodo, models.PriorityMedium,
			[]string{"715621"}, []string{"836235", "455940", "324431"}),
		task("876033", "Refactor context providers to use Zustand", models.StatusDoing, models.PriorityHigh,
			[]string{"715621", "732672"}, []string{"719530"}),
		task("579093", "Add logging to daily CRON", models.StatusDoing, models.PriorityLow,
			[]string{"732672"}, []string{"688239"}),
		task("763434", "Set up DD dashboards for Lambda listener", models.StatusDone, models.PriorityMedium,
			[]string{"227752", "874466"}, []string{"493598", "688239"}),
		task("412877", "Write onboarding checklist", models.StatusBacklog, models.PriorityLow,
			[]string{"385976"}, []string{"383308"}),
	}

	for i := range users {
		users[i].CreatedAt, users[i].UpdatedAt = now, now
	}
	for i := range tags {
		tags[i].CreatedAt, tags[i].UpdatedAt = now, now
	}
	for i := range projects {
		projects[i].CreatedAt, projects[i].UpdatedAt = now, now
	}
	for i := range tasks {
		tasks[i].CreatedAt, tasks[i].UpdatedAt = now, now
	}

	return Seed{Projects: projects, Tags: tags, Users: users, Tasks: tasks}
}
