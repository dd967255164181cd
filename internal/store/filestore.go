package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"wanderlist/internal/domain"
)

// One file per attribute. Keeping them separate means a corrupt weather
// cache cannot take the names down with it.
const (
	namesFile       = "names.json"
	coordinatesFile = "coordinates.json"
	visitedFile     = "visited.json"
	weatherFile     = "weather.json"
)

// FileStore keeps each attribute sequence in its own JSON file under dir.
type FileStore struct {
	dir string
}

// NewFileStore returns a store over dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store.NewFileStore: %w: %v", domain.ErrPersistence, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the four attribute files. Each file is independent: one missing
// or corrupt attribute comes back empty without touching the others, and the
// degradation is logged rather than returned.
func (s *FileStore) Load() Snapshot {
	return Snapshot{
		Names:       loadAttribute[string](s.path(namesFile)),
		Coordinates: loadAttribute[domain.Coordinates](s.path(coordinatesFile)),
		Visited:     loadAttribute[bool](s.path(visitedFile)),
		Weather:     loadAttribute[*domain.Weather](s.path(weatherFile)),
	}
}

// Save writes the four attribute files in sequence. The first write error
// stops the rest; earlier files keep their freshly written contents, later
// ones whatever they held before. The loader's reconciliation tolerates
// exactly that kind of tear.
func (s *FileStore) Save(snap Snapshot) error {
	if err := s.writeAttribute(namesFile, snap.Names); err != nil {
		return err
	}
	if err := s.writeAttribute(coordinatesFile, snap.Coordinates); err != nil {
		return err
	}
	if err := s.writeAttribute(visitedFile, snap.Visited); err != nil {
		return err
	}
	return s.writeAttribute(weatherFile, snap.Weather)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *FileStore) writeAttribute(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store.FileStore.Save: %w: marshal %s: %v", domain.ErrPersistence, name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("store.FileStore.Save: %w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// loadAttribute reads one attribute file into a fresh slice. Missing files
// are the normal first-run state and stay silent; unreadable or corrupt
// files are logged and treated as empty.
func loadAttribute[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("state file unreadable, treating attribute as empty", "path", path, "error", err)
		}
		return nil
	}
	var vals []T
	if err := json.Unmarshal(data, &vals); err != nil {
		slog.Warn("state file corrupt, treating attribute as empty", "path", path, "error", err)
		return nil
	}
	return vals
}
