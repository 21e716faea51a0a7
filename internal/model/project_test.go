package model

import "testing"

func sampleProject() Project {
	p := NewProject("Living room", FilmRoll{ID: "r1", Name: "Clear", Width: 1220, Length: 30000})
	p.Pieces = []PieceSpec{
		{ID: "win", Label: "window", Width: 600, Height: 400, Quantity: 2},
		{ID: "door", Width: 300, Height: 900, Quantity: 1},
	}
	return p
}

func TestNewProjectUsesRoll(t *testing.T) {
	p := NewProject("Shop", FilmRoll{Width: 1520, Length: 10000})
	if p.ID == "" || p.CreatedAt == "" || p.UpdatedAt == "" {
		t.Errorf("expected id and timestamps, got %+v", p)
	}
	if p.Options.StripWidth != 1520 || p.Options.MaxStripLength != 10000 {
		t.Errorf("roll not applied to options: %+v", p.Options)
	}
	if !p.Options.AllowRotation {
		t.Error("expected rotation allowed by default")
	}
}

func TestProjectFingerprintTracksInputs(t *testing.T) {
	p := sampleProject()
	base := p.InputFingerprint()
	if base != sampleProject().InputFingerprint() {
		t.Fatal("fingerprint must be deterministic")
	}

	q := sampleProject()
	q.Options.AllowRotation = false
	if q.InputFingerprint() == base {
		t.Error("options change must change the fingerprint")
	}

	q = sampleProject()
	q.Pieces[0].Quantity = 3
	if q.InputFingerprint() == base {
		t.Error("pieces change must change the fingerprint")
	}

	q = sampleProject()
	q.Name = "Renamed"
	q.UpdatedAt = "later"
	if q.InputFingerprint() != base {
		t.Error("metadata must not change the fingerprint")
	}
}

func TestProjectStaleness(t *testing.T) {
	p := sampleProject()
	if !p.IsStale() {
		t.Error("a project without result is stale")
	}

	p.SetResult(PackingResult{Placements: []Placement{{InstanceID: "win-1"}}})
	if p.IsStale() {
		t.Error("a freshly stored result is not stale")
	}

	p.Pieces = append(p.Pieces, PieceSpec{ID: "extra", Width: 10, Height: 10})
	if !p.IsStale() {
		t.Error("adding a piece must make the result stale")
	}
}

func TestProjectMarkComplete(t *testing.T) {
	p := sampleProject()
	if err := p.MarkComplete("win-1"); err == nil {
		t.Error("expected error without a result")
	}

	p.SetResult(PackingResult{Placements: []Placement{
		{InstanceID: "win-1", X: 0, Y: 0, Width: 600, Height: 400},
		{InstanceID: "win-2", X: 600, Y: 0, Width: 600, Height: 400, BinIndex: 0},
	}})

	if err := p.MarkComplete("nope"); err == nil {
		t.Error("expected error for unknown instance")
	}
	if err := p.MarkComplete("win-2"); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if !p.IsCompleted("win-2") || p.IsCompleted("win-1") {
		t.Errorf("unexpected completion state %+v", p.Completed)
	}
	if p.Completed[0].Position.X != 600 || p.Completed[0].CompletedAt == "" {
		t.Errorf("position snapshot not recorded: %+v", p.Completed[0])
	}
	if !p.IsStale() {
		t.Error("completing a piece changes the pinning inputs")
	}

	// Marking again refreshes the snapshot instead of duplicating it.
	if err := p.MarkComplete("win-2"); err != nil {
		t.Fatal(err)
	}
	if len(p.Completed) != 1 {
		t.Errorf("expected 1 completed entry, got %d", len(p.Completed))
	}
}

func TestProjectInstancesCarryFixedPositions(t *testing.T) {
	p := sampleProject()
	p.Completed = []CompletedPiece{{InstanceID: "win-2", Position: FixedPosition{X: 600, Y: 0}}}

	instances := p.Instances()
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(instances))
	}
	for _, inst := range instances {
		if inst.ID == "win-2" {
			if inst.Fixed == nil || inst.Fixed.X != 600 {
				t.Errorf("win-2 should carry its recorded position, got %+v", inst.Fixed)
			}
		} else if inst.Fixed != nil {
			t.Errorf("%s should not be fixed", inst.ID)
		}
	}
}
