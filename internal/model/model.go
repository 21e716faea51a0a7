package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// PieceSpec represents a cutting requirement declared by the user before expansion.
type PieceSpec struct {
	ID       string  `json:"id"`
	Label    string  `json:"label,omitempty"`
	Width    float64 `json:"width"`    // mm, across the roll
	Height   float64 `json:"height"`   // mm, along the roll
	Quantity int     `json:"quantity"` // 0 means "not given" and expands as 1
}

func NewPieceSpec(label string, w, h float64, qty int) PieceSpec {
	return PieceSpec{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// EffectiveQuantity returns the quantity used for expansion.
func (p PieceSpec) EffectiveQuantity() int {
	if p.Quantity < 1 {
		return 1
	}
	return p.Quantity
}

// Area returns the area of a single copy in square mm.
func (p PieceSpec) Area() float64 {
	return p.Width * p.Height
}

// FixedPosition is a placement snapshot recorded when a piece was marked complete.
type FixedPosition struct {
	BinIndex int     `json:"bin_index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotated  bool    `json:"rotated"`
}

// RectangleInstance is one unit of a PieceSpec's quantity, the packer's input.
type RectangleInstance struct {
	ID     string         `json:"id"`      // unique per instance: "<spec id>-<copy>"
	SpecID string         `json:"spec_id"` // originating PieceSpec
	Label  string         `json:"label,omitempty"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Fixed  *FixedPosition `json:"fixed,omitempty"` // only honored when PackingOptions.PinFixed is set
}

// IsSquare reports whether rotating the instance changes nothing.
func (r RectangleInstance) IsSquare() bool {
	return math.Abs(r.Width-r.Height) < Epsilon
}

// InstanceID builds the instance identifier for the n-th (1-based) copy of a spec.
func InstanceID(specID string, n int) string {
	return fmt.Sprintf("%s-%d", specID, n)
}

// Placement represents a single instance placed on the roll.
type Placement struct {
	InstanceID string  `json:"instance_id"`
	SpecID     string  `json:"spec_id"`
	Label      string  `json:"label,omitempty"`
	X          float64 `json:"x"`      // mm from the left edge of the roll
	Y          float64 `json:"y"`      // mm from the start of the bin
	Width      float64 `json:"width"`  // as placed, padding excluded
	Height     float64 `json:"height"` // as placed, padding excluded
	Rotated    bool    `json:"rotated"`
	BinIndex   int     `json:"bin_index"`
	Pinned     bool    `json:"pinned,omitempty"`
}

// Area returns the placed area.
func (p Placement) Area() float64 {
	return p.Width * p.Height
}

// Bottom returns the far edge of the placement along the roll.
func (p Placement) Bottom() float64 {
	return p.Y + p.Height
}

// Position returns the placement as a FixedPosition snapshot.
func (p Placement) Position() FixedPosition {
	return FixedPosition{BinIndex: p.BinIndex, X: p.X, Y: p.Y, Rotated: p.Rotated}
}

// Bin is one consumed roll-length segment with its placements.
type Bin struct {
	Index      int         `json:"index"`
	Placements []Placement `json:"placements"`
	UsedWidth  float64     `json:"used_width"`  // always the strip width
	UsedHeight float64     `json:"used_height"` // max(y+height) over placements
}

// PieceArea returns the total placed area in this bin.
func (b Bin) PieceArea() float64 {
	var total float64
	for _, p := range b.Placements {
		total += p.Area()
	}
	return total
}

// Stats holds the waste accounting of a packing.
type Stats struct {
	UsedLength      float64 `json:"used_length"`
	TotalUsedArea   float64 `json:"total_used_area"`
	TotalPieceArea  float64 `json:"total_piece_area"`
	TotalWasteArea  float64 `json:"total_waste_area"`
	WastePercentage float64 `json:"waste_percentage"`
}

// PackingResult holds the full solution of one packing call.
type PackingResult struct {
	Bins       []Bin       `json:"bins"`
	Placements []Placement `json:"placements"`
	Stats
}

// PlacementFor returns the placement of the given instance, or nil.
func (r *PackingResult) PlacementFor(instanceID string) *Placement {
	for i := range r.Placements {
		if r.Placements[i].InstanceID == instanceID {
			return &r.Placements[i]
		}
	}
	return nil
}

// Epsilon is the geometric tolerance in mm used throughout packing.
const Epsilon = 0.001

// Default roll dimensions in mm.
const (
	DefaultStripWidth     = 1220.0
	DefaultMaxStripLength = 30000.0
)

// PackingOptions configures one packing call.
type PackingOptions struct {
	StripWidth     float64 `json:"strip_width" toml:"strip_width"`           // roll width in mm
	MaxStripLength float64 `json:"max_strip_length" toml:"max_strip_length"` // length of one bin in mm
	AllowRotation  bool    `json:"allow_rotation" toml:"allow_rotation"`
	Padding        float64 `json:"padding" toml:"padding"`     // gap kept after each piece in mm
	PinFixed       bool    `json:"pin_fixed" toml:"pin_fixed"` // honor RectangleInstance.Fixed
}

func DefaultPackingOptions() PackingOptions {
	return PackingOptions{
		StripWidth:     DefaultStripWidth,
		MaxStripLength: DefaultMaxStripLength,
		AllowRotation:  true,
		Padding:        0,
	}
}

// WithDefaults fills zero-valued dimensions with the defaults.
func (o PackingOptions) WithDefaults() PackingOptions {
	if o.MaxStripLength == 0 {
		o.MaxStripLength = DefaultMaxStripLength
	}
	return o
}

// Validate checks the options and returns an *InvalidOptionsError on failure.
func (o PackingOptions) Validate() error {
	switch {
	case !positive(o.StripWidth):
		return &InvalidOptionsError{Field: "strip_width", Reason: "must be greater than 0"}
	case !positive(o.MaxStripLength):
		return &InvalidOptionsError{Field: "max_strip_length", Reason: "must be greater than 0"}
	case o.Padding < 0 || math.IsNaN(o.Padding) || math.IsInf(o.Padding, 0):
		return &InvalidOptionsError{Field: "padding", Reason: "must not be negative"}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
