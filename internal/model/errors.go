package model

import (
	"fmt"
	"strings"
)

// InvalidPieceSpecError reports a PieceSpec rejected before expansion.
type InvalidPieceSpecError struct {
	Index  int // position in the input list
	SpecID string
	Reason string
}

func (e *InvalidPieceSpecError) Error() string {
	if e.SpecID != "" {
		return fmt.Sprintf("invalid piece %d (%s): %s", e.Index+1, e.SpecID, e.Reason)
	}
	return fmt.Sprintf("invalid piece %d: %s", e.Index+1, e.Reason)
}

// InvalidOptionsError reports a PackingOptions field out of range.
type InvalidOptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid packing options: %s %s", e.Field, e.Reason)
}

// UnplaceablePieceError is returned when some instances can never fit the roll.
type UnplaceablePieceError struct {
	Instances      []RectangleInstance
	StripWidth     float64
	MaxStripLength float64
	AllowRotation  bool
}

func (e *UnplaceablePieceError) Error() string {
	names := make([]string, 0, len(e.Instances))
	for _, inst := range e.Instances {
		name := inst.ID
		if inst.Label != "" {
			name = fmt.Sprintf("%s %q", inst.ID, inst.Label)
		}
		names = append(names, fmt.Sprintf("%s (%gx%g)", name, inst.Width, inst.Height))
	}
	rotation := "rotation disabled"
	if e.AllowRotation {
		rotation = "rotation enabled"
	}
	return fmt.Sprintf("%d piece(s) cannot fit a %gx%g mm roll with %s: %s",
		len(e.Instances), e.StripWidth, e.MaxStripLength, rotation, strings.Join(names, ", "))
}

// InstanceIDs returns the ids of the unplaceable instances.
func (e *UnplaceablePieceError) InstanceIDs() []string {
	ids := make([]string, len(e.Instances))
	for i, inst := range e.Instances {
		ids[i] = inst.ID
	}
	return ids
}

// PinConflictError is returned when a pinned instance cannot keep its recorded position.
type PinConflictError struct {
	InstanceID string
	Reason     string
}

func (e *PinConflictError) Error() string {
	return fmt.Sprintf("pinned piece %s: %s", e.InstanceID, e.Reason)
}
