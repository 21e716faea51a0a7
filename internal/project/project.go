// Package project persists projects, the roll catalog and the application
// config under ~/.filmcut.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/FilmCut/internal/engine"
	"github.com/piwi3910/FilmCut/internal/model"
)

// SaveProject writes the project to the specified JSON file, creating parent
// directories as needed.
func SaveProject(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from the specified JSON file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if p.Pieces == nil {
		p.Pieces = []model.PieceSpec{}
	}
	return p, nil
}

// Repack recomputes the project's packing when its inputs changed since the
// stored result, or always when force is set. It reports whether a new
// result was computed. On error the stored result is left untouched.
func Repack(p *model.Project, force bool) (bool, error) {
	if !force && !p.IsStale() {
		return false, nil
	}
	if err := model.ValidatePieceSpecs(p.Pieces); err != nil {
		return false, err
	}
	result, err := engine.Pack(p.Instances(), p.Options.WithDefaults())
	if err != nil {
		return false, fmt.Errorf("repack %q: %w", p.Name, err)
	}
	p.SetResult(result)
	return true, nil
}
