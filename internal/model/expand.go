package model

import "fmt"

// ValidatePieceSpecs rejects specs with non-positive or non-finite dimensions,
// a negative quantity or an ID used twice. A zero quantity is the "not given"
// default.
func ValidatePieceSpecs(pieces []PieceSpec) error {
	seen := make(map[string]bool, len(pieces))
	for i, p := range pieces {
		if err := validatePiece(p); err != "" {
			return &InvalidPieceSpecError{Index: i, SpecID: p.ID, Reason: err}
		}
		if p.ID != "" {
			if seen[p.ID] {
				return &InvalidPieceSpecError{Index: i, SpecID: p.ID, Reason: "duplicate id"}
			}
			seen[p.ID] = true
		}
	}
	return nil
}

// NumberPieces returns a copy of pieces with every ID replaced by "p<n>",
// n being the 1-based position. Identical input then always expands to
// identical instance IDs.
func NumberPieces(pieces []PieceSpec) []PieceSpec {
	out := make([]PieceSpec, len(pieces))
	for i, p := range pieces {
		p.ID = fmt.Sprintf("p%d", i+1)
		out[i] = p
	}
	return out
}

// FillMissingIDs returns a copy of pieces where specs without an ID get
// "p<n>" as in NumberPieces. Existing IDs are kept.
func FillMissingIDs(pieces []PieceSpec) []PieceSpec {
	out := make([]PieceSpec, len(pieces))
	for i, p := range pieces {
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", i+1)
		}
		out[i] = p
	}
	return out
}

func validatePiece(p PieceSpec) string {
	switch {
	case !positive(p.Width) || !positive(p.Height):
		return "width and height must be greater than 0"
	case p.Quantity < 0:
		return "quantity must be greater than 0"
	}
	return ""
}

// DefaultMaxInstances bounds how many instances a single request may expand to.
const DefaultMaxInstances = 10000

// CheckInstanceLimit returns an *InvalidPieceSpecError naming the first spec
// that pushes the total quantity past limit. Call it before Expand on
// untrusted input: Expand allocates every instance up front.
func CheckInstanceLimit(pieces []PieceSpec, limit int) error {
	total := 0
	for i, p := range pieces {
		q := p.EffectiveQuantity()
		if q > limit-total {
			return &InvalidPieceSpecError{
				Index:  i,
				SpecID: p.ID,
				Reason: fmt.Sprintf("more than %d pieces in total", limit),
			}
		}
		total += q
	}
	return nil
}

// Expand turns piece specs into individual rectangle instances, one per unit
// of quantity. All copies of spec i precede the copies of spec i+1.
func Expand(pieces []PieceSpec) []RectangleInstance {
	instances := make([]RectangleInstance, 0, TotalQuantity(pieces))
	for _, p := range pieces {
		for n := 1; n <= p.EffectiveQuantity(); n++ {
			instances = append(instances, RectangleInstance{
				ID:     InstanceID(p.ID, n),
				SpecID: p.ID,
				Label:  p.Label,
				Width:  p.Width,
				Height: p.Height,
			})
		}
	}
	return instances
}

// TotalQuantity returns the number of instances Expand would produce.
func TotalQuantity(pieces []PieceSpec) int {
	total := 0
	for _, p := range pieces {
		total += p.EffectiveQuantity()
	}
	return total
}
