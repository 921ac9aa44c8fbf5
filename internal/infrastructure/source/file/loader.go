// Package file implements the JSON curriculum source. The data file is the
// externally maintained branş → sınıf → hafta → kazanım mapping; it is read
// once and never mutated in place.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
)

// DefaultPath is where the objective data ships by default.
const DefaultPath = "data/kazanimlar.json"

// Source loads the curriculum table from a JSON file.
type Source struct {
	path string
}

// NewSource creates a file source. An empty path falls back to DefaultPath.
func NewSource(path string) *Source {
	if path == "" {
		path = DefaultPath
	}
	return &Source{path: path}
}

// Path returns the configured file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and decodes the data file. A missing file reports
// shared.ErrDataUnavailable, invalid JSON reports shared.ErrDataMalformed;
// the caller decides whether to degrade to an empty table.
func (s *Source) Load(ctx context.Context) (*curriculum.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.WrapError("curriculum", "Load", shared.ErrDataUnavailable,
				"data file not found: "+s.path, err)
		}
		return nil, shared.WrapError("curriculum", "Load", shared.ErrDataUnavailable,
			"read data file: "+s.path, err)
	}

	var raw map[string]map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, shared.WrapError("curriculum", "Load", shared.ErrDataMalformed,
			"invalid JSON in "+s.path, err)
	}

	return curriculum.NewTable(raw), nil
}
