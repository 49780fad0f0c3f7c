package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/tboard/internal/transfer"
)

// run executes the command tree against a config rooted in a temp dir
func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "data_dir: " + filepath.Join(dir, "data") + "\nlog_file: \"off\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	build = Build{Version: "1.2.3", Commit: "abc123", Date: "2025-11-01"}
	t.Cleanup(func() { build = Build{Version: "dev", Commit: "none", Date: "unknown"} })

	out, err := run(t, writeConfig(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "tboard 1.2.3 (commit: abc123, built: 2025-11-01)\n", out)
}

func TestSeedExportImport(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 3 projects")

	_, err = run(t, cfg, "seed")
	assert.ErrorIs(t, err, errHasData)

	out, err = run(t, cfg, "export")
	require.NoError(t, err)
	var dump transfer.Dump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	assert.Len(t, dump.Projects, 3)
	assert.Len(t, dump.Tasks, 6)

	file := filepath.Join(t.TempDir(), "backup.yaml")
	_, err = run(t, cfg, "export", "--format", "yaml", "-o", file)
	require.NoError(t, err)

	fresh := writeConfig(t)
	out, err = run(t, fresh, "import", file)
	require.NoError(t, err)
	assert.Equal(t, "Imported 3 projects, 6 tags, 7 users, 6 tasks\n", out)
}

func TestImportRejectsNonDump(t *testing.T) {
	cfg := writeConfig(t)
	_, err := run(t, cfg, "seed")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "wrong.yaml")
	require.NoError(t, os.WriteFile(file, []byte("foo: bar\n"), 0644))
	_, err = run(t, cfg, "import", file)
	assert.ErrorIs(t, err, transfer.ErrNotDump)

	out, err := run(t, cfg, "export")
	require.NoError(t, err)
	var dump transfer.Dump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	assert.Len(t, dump.Tasks, 6, "data survives a rejected import")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, writeConfig(t), "export", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := run(t, path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, path, "config", "init")
	assert.Error(t, err)

	_, err = run(t, path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, cfg, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(filepath.Dir(cfg), "data", "tboard.db"))
}

func TestMissingConfigFails(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "absent.yaml"), "export")
	assert.Error(t, err)
}
