package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/FilmCut/internal/model"
)

// DefaultRollCatalogPath returns the default file path for the roll catalog.
// This is located at ~/.filmcut/rolls.json.
func DefaultRollCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "rolls.json")
}

// SaveRollCatalog writes the roll catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveRollCatalog(path string, cat model.RollCatalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadRollCatalog reads the roll catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadRollCatalog(path string) (model.RollCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultRollCatalog()
			if saveErr := SaveRollCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.RollCatalog{}, err
	}
	var cat model.RollCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.RollCatalog{}, err
	}
	return cat, nil
}

// ImportRollCatalog merges the rolls of a JSON catalog file into existing.
// Rolls whose ID is already present are skipped.
func ImportRollCatalog(path string, existing model.RollCatalog) (model.RollCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.RollCatalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Rolls))
	for _, r := range existing.Rolls {
		ids[r.ID] = true
	}
	for _, r := range imported.Rolls {
		if !ids[r.ID] {
			existing.Rolls = append(existing.Rolls, r)
			ids[r.ID] = true
		}
	}
	return existing, nil
}
