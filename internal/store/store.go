// Package store holds the project, tag, user and task collections.
//
// Each store keeps the authoritative ordered slice in memory, streams the
// full collection to subscribers and mirrors it to a key/value store as one
// JSON array per entity type. Stores never check references across each
// other: a task may name tags or users that do not exist, and those ids are
// dropped when the task is populated.
package store

import (
	"io"
	"log/slog"
	"time"

	"github.com/tgienger/tboard/internal/ids"
	"github.com/tgienger/tboard/internal/models"
)

// Storage keys, one JSON array each
const (
	KeyProjects = "projects"
	KeyTags     = "tags"
	KeyUsers    = "users"
	KeyTasks    = "tasks"
)

// Seed is the initial content of collections that have never been stored
type Seed struct {
	Projects []models.Project
	Tags     []models.Tag
	Users    []models.User
	Tasks    []models.Task
}

type options struct {
	logger *slog.Logger
	ids    ids.Generator
	now    func() time.Time
	seed   Seed
}

// Option configures Open
type Option func(*options)

// WithLogger routes store diagnostics to logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithIDs replaces the id generator
func WithIDs(g ids.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithClock replaces time.Now for createdAt/updatedAt stamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSeed sets the content of collections missing from storage
func WithSeed(seed Seed) Option {
	return func(o *options) { o.seed = seed }
}

// Stores bundles the four entity stores over one key/value backend
type Stores struct {
	Projects *Projects
	Tags     *Tags
	Users    *Users
	Tasks    *Tasks
}

// Open loads every collection from kv
func Open(kv KV, opts ...Option) *Stores {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		ids:    ids.Random{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "store")

	return &Stores{
		Projects: &Projects{
			col: newCollection(kv, KeyProjects, func(p models.Project) string { return p.ID }, o.seed.Projects, logger),
			ids: o.ids, now: o.now,
		},
		Tags: &Tags{
			col: newCollection(kv, KeyTags, func(t models.Tag) string { return t.ID }, o.seed.Tags, logger),
			ids: o.ids, now: o.now,
		},
		Users: &Users{
			col: newCollection(kv, KeyUsers, func(u models.User) string { return u.ID }, o.seed.Users, logger),
			ids: o.ids, now: o.now,
		},
		Tasks: &Tasks{
			col: newCollection(kv, KeyTasks, func(t models.Task) string { return t.ID }, o.seed.Tasks, logger),
			ids: o.ids, now: o.now,
		},
	}
}

// Snapshot returns the current content of every collection
func (s *Stores) Snapshot() Seed {
	return Seed{
		Projects: s.Projects.List(),
		Tags:     s.Tags.List(),
		Users:    s.Users.List(),
		Tasks:    s.Tasks.List(),
	}
}

// Restore replaces every collection with data
func (s *Stores) Restore(data Seed) {
	s.Projects.col.Replace(data.Projects)
	s.Tags.col.Replace(data.Tags)
	s.Users.col.Replace(data.Users)
	s.Tasks.col.Replace(data.Tasks)
}
