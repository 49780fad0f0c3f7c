package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kv interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	Keys() ([]string, error)
}

func exerciseKV(t *testing.T, store kv) {
	t.Helper()

	_, ok, err := store.Get("tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("tasks", `[{"id":"1"}]`))
	require.NoError(t, store.Set("tags", `[]`))
	require.NoError(t, store.Set("tasks", `[]`))

	v, ok, err := store.Get("tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"tags", "tasks"}, keys)

	require.NoError(t, store.Remove("tags"))
	require.NoError(t, store.Remove("missing"))
	_, ok, err = store.Get("tags")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "tboard.db")
	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	exerciseKV(t, database)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tboard.db")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("projects", `[{"id":"p"}]`))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	v, ok, err := second.Get("projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p"}]`, v)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	exerciseKV(t, NewMemory())
}
