// Package transfer dumps and restores the four entity collections as a single
// JSON or YAML document.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/store"
)

// Format of a dump
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a --format flag value
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, YAML:
		return Format(s), nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// DumpVersion is bumped when the document layout changes
const DumpVersion = 1

// ErrNotDump is returned for input that has no dump version, such as an
// empty file or an unrelated document
var ErrNotDump = errors.New("not a tboard dump")

// Dump is the exported document
type Dump struct {
	Version    int              `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exportedAt" yaml:"exportedAt"`
	Projects   []models.Project `json:"projects" yaml:"projects"`
	Tags       []models.Tag     `json:"tags" yaml:"tags"`
	Users      []models.User    `json:"users" yaml:"users"`
	Tasks      []models.Task    `json:"tasks" yaml:"tasks"`
}

// Export writes every collection of s to w
func Export(w io.Writer, s *store.Stores, format Format, now time.Time) error {
	snap := s.Snapshot()
	d := Dump{
		Version:    DumpVersion,
		ExportedAt: now.UTC(),
		Projects:   snap.Projects,
		Tags:       snap.Tags,
		Users:      snap.Users,
		Tasks:      snap.Tasks,
	}

	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Decode reads a dump. JSON is recognised by its leading brace; anything else
// is parsed as YAML.
func Decode(r io.Reader) (Dump, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Dump{}, fmt.Errorf("read dump: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Dump{}, ErrNotDump
	}

	var d Dump
	if bytes.HasPrefix(raw, []byte("{")) {
		if err := json.Unmarshal(raw, &d); err != nil {
			return Dump{}, fmt.Errorf("decode json: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &d); err != nil {
		return Dump{}, fmt.Errorf("decode yaml: %w", err)
	}

	if d.Version < 1 {
		return Dump{}, ErrNotDump
	}
	if d.Version > DumpVersion {
		return Dump{}, fmt.Errorf("dump version %d is newer than supported version %d", d.Version, DumpVersion)
	}
	return d, nil
}

// Import replaces every collection of s with the content of r
func Import(r io.Reader, s *store.Stores) (Dump, error) {
	d, err := Decode(r)
	if err != nil {
		return Dump{}, err
	}
	s.Restore(store.Seed{Projects: d.Projects, Tags: d.Tags, Users: d.Users, Tasks: d.Tasks})
	return d, nil
}
