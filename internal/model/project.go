package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CompletedPiece records the position an instance had when it was cut.
type CompletedPiece struct {
	InstanceID  string        `json:"instance_id"`
	Position    FixedPosition `json:"position"`
	CompletedAt string        `json:"completed_at"`
}

// Project ties pieces, the chosen roll and the last result together for save/load.
type Project struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Roll        FilmRoll         `json:"roll"`
	Options     PackingOptions   `json:"options"`
	Pieces      []PieceSpec      `json:"pieces"`
	Completed   []CompletedPiece `json:"completed,omitempty"`
	Result      *PackingResult   `json:"result,omitempty"`
	Fingerprint string           `json:"fingerprint,omitempty"` // inputs that produced Result
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

func NewProject(name string, roll FilmRoll) Project {
	now := time.Now().UTC().Format(time.RFC3339)
	opts := DefaultPackingOptions()
	roll.ApplyToOptions(&opts)
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Roll:      roll,
		Options:   opts,
		Pieces:    []PieceSpec{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Instances expands the project's pieces and attaches the recorded positions
// of completed instances.
func (p Project) Instances() []RectangleInstance {
	instances := Expand(p.Pieces)
	if len(p.Completed) == 0 {
		return instances
	}
	fixed := make(map[string]FixedPosition, len(p.Completed))
	for _, c := range p.Completed {
		fixed[c.InstanceID] = c.Position
	}
	for i := range instances {
		if pos, ok := fixed[instances[i].ID]; ok {
			pos := pos
			instances[i].Fixed = &pos
		}
	}
	return instances
}

// InputFingerprint hashes everything that influences the packing result.
func (p Project) InputFingerprint() string {
	data, _ := json.Marshal(struct {
		Pieces    []PieceSpec      `json:"pieces"`
		Options   PackingOptions   `json:"options"`
		Completed []CompletedPiece `json:"completed"`
	}{p.Pieces, p.Options, stripTimes(p.Completed)})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func stripTimes(completed []CompletedPiece) []CompletedPiece {
	out := make([]CompletedPiece, len(completed))
	for i, c := range completed {
		out[i] = CompletedPiece{InstanceID: c.InstanceID, Position: c.Position}
	}
	return out
}

// IsStale reports whether the stored result no longer matches the inputs.
func (p Project) IsStale() bool {
	return p.Result == nil || p.Fingerprint != p.InputFingerprint()
}

// SetResult stores a freshly computed result together with its fingerprint.
func (p *Project) SetResult(r PackingResult) {
	p.Result = &r
	p.Fingerprint = p.InputFingerprint()
	p.Touch()
}

// Touch updates the modification timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// MarkComplete snapshots the current placement of an instance so later
// repacks in pinning mode keep it where it was cut.
func (p *Project) MarkComplete(instanceID string) error {
	if p.Result == nil {
		return fmt.Errorf("project %q has no packing result", p.Name)
	}
	pl := p.Result.PlacementFor(instanceID)
	if pl == nil {
		return fmt.Errorf("instance %s is not placed", instanceID)
	}
	for i, c := range p.Completed {
		if c.InstanceID == instanceID {
			p.Completed[i].Position = pl.Position()
			p.Touch()
			return nil
		}
	}
	p.Completed = append(p.Completed, CompletedPiece{
		InstanceID:  instanceID,
		Position:    pl.Position(),
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
	})
	p.Touch()
	return nil
}

// IsCompleted reports whether the instance was marked complete.
func (p Project) IsCompleted(instanceID string) bool {
	for _, c := range p.Completed {
		if c.InstanceID == instanceID {
			return true
		}
	}
	return false
}
