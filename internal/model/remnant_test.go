package model

import "testing"

func remnantOpts() PackingOptions {
	return PackingOptions{StripWidth: 1220, MaxStripLength: 30000}
}

func TestDetectRemnantsEmptyBin(t *testing.T) {
	if got := DetectRemnants(Bin{}, remnantOpts(), false); got != nil {
		t.Errorf("expected no remnants for an empty bin, got %v", got)
	}
}

func TestDetectRemnantsRightStripAndTail(t *testing.T) {
	bin := Bin{
		Index:      0,
		Placements: []Placement{{Width: 1000, Height: 500}},
		UsedHeight: 500,
	}

	remnants := DetectRemnants(bin, remnantOpts(), false)
	if len(remnants) != 2 {
		t.Fatalf("expected 2 remnants, got %d", len(remnants))
	}

	tail := remnants[0]
	if !tail.Tail || tail.Y != 500 || tail.Width != 1220 || tail.Height != 29500 {
		t.Errorf("expected the tail first (largest), got %+v", tail)
	}
	right := remnants[1]
	if right.Tail || right.X != 1000 || right.Width != 220 || right.Height != 500 {
		t.Errorf("unexpected right strip %+v", right)
	}
}

func TestDetectRemnantsLastBinKeepsTailOnRoll(t *testing.T) {
	bin := Bin{Placements: []Placement{{Width: 1000, Height: 500}}, UsedHeight: 500}
	remnants := DetectRemnants(bin, remnantOpts(), true)
	if len(remnants) != 1 || remnants[0].Tail {
		t.Errorf("expected only the right strip, got %+v", remnants)
	}
}

func TestDetectRemnantsIgnoresNarrowStrips(t *testing.T) {
	// 1220 - 1150 = 70mm across the roll is too narrow to keep.
	bin := Bin{Placements: []Placement{{Width: 1150, Height: 2000}}, UsedHeight: 2000}
	remnants := DetectRemnants(bin, remnantOpts(), true)
	if len(remnants) != 0 {
		t.Errorf("expected no remnants, got %+v", remnants)
	}
}

func TestDetectRemnantsAccountsForPadding(t *testing.T) {
	opts := remnantOpts()
	opts.Padding = 10
	bin := Bin{Placements: []Placement{{Width: 800, Height: 600}}, UsedHeight: 600}

	remnants := DetectRemnants(bin, opts, true)
	if len(remnants) != 1 {
		t.Fatalf("expected 1 remnant, got %d", len(remnants))
	}
	if remnants[0].X != 810 || remnants[0].Width != 410 {
		t.Errorf("expected remnant to start after the padding, got %+v", remnants[0])
	}
}

func TestDetectAllRemnants(t *testing.T) {
	result := PackingResult{Bins: []Bin{
		{Index: 0, Placements: []Placement{{Width: 1220, Height: 28000, BinIndex: 0}}, UsedHeight: 28000},
		{Index: 1, Placements: []Placement{{Width: 600, Height: 600, BinIndex: 1}}, UsedHeight: 600},
	}}

	remnants := DetectAllRemnants(result, remnantOpts())

	// Bin 0: no right strip, a 2000mm tail. Bin 1 is last: right strip only.
	if len(remnants) != 2 {
		t.Fatalf("expected 2 remnants, got %d: %+v", len(remnants), remnants)
	}
	if remnants[0].BinIndex != 0 || !remnants[0].Tail || remnants[0].Height != 2000 {
		t.Errorf("unexpected first remnant %+v", remnants[0])
	}
	if remnants[1].BinIndex != 1 || remnants[1].Width != 620 {
		t.Errorf("unexpected second remnant %+v", remnants[1])
	}

	want := 1220.0*2000 + 620*600
	if got := TotalRemnantArea(remnants); got != want {
		t.Errorf("expected total area %f, got %f", want, got)
	}
}
