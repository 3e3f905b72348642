package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileCorpus is a directory-backed recipe store. Each recipe lives in its
// own JSON file named <id>.json. It implements Corpus for reading and is
// also the write target of the importer.
type FileCorpus struct {
	basePath string
}

// NewFileCorpus creates a FileCorpus and ensures the base directory exists.
func NewFileCorpus(basePath string) (*FileCorpus, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory %s: %w", basePath, err)
	}
	return &FileCorpus{basePath: basePath}, nil
}

func (s *FileCorpus) path(id string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// Save writes a recipe to its JSON file, replacing any previous version.
func (s *FileCorpus) Save(rec Recipe) error {
	if rec.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a single recipe by ID.
func (s *FileCorpus) Load(id string) (*Recipe, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	var rec Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &rec, nil
}

// Exists reports whether a recipe file is present for the given ID.
func (s *FileCorpus) Exists(id string) bool {
	_, err := os.Stat(s.path(id))
	return !os.IsNotExist(err)
}

// ListAll reads every recipe file in the directory. Files that fail to
// parse are logged and skipped so one corrupt entry cannot empty the corpus.
func (s *FileCorpus) ListAll(_ context.Context) ([]Recipe, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob recipe files: %w", err)
	}

	var recipes []Recipe
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			log.Printf("Warning: failed to read recipe file %s: %v", match, err)
			continue
		}
		var rec Recipe
		if err := json.Unmarshal(data, &rec); err != nil {
			log.Printf("Warning: failed to unmarshal recipe file %s: %v", match, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Remove deletes a recipe file.
func (s *FileCorpus) Remove(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("failed to remove recipe file: %w", err)
	}
	return nil
}
