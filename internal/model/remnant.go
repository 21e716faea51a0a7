package model

import "sort"

// Remnant represents a usable rectangular piece of film left over after cutting.
type Remnant struct {
	BinIndex int     `json:"bin_index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Tail     bool    `json:"tail"` // unused roll after the bin's used length
}

// Area returns the area of the remnant in square mm.
func (r Remnant) Area() float64 {
	return r.Width * r.Height
}

// MinRemnantDimension is the minimum width or height (in mm) for leftover
// film to be worth keeping. Smaller strips are waste.
const MinRemnantDimension = 100.0

// MinRemnantArea is the minimum area (in sq mm) for a remnant to be kept.
const MinRemnantArea = 90000.0 // 300mm x 300mm equivalent

// DetectRemnants finds the strip to the right of all pieces within a bin's
// used length, and the unused tail of the bin when it is not the last one
// (the last bin's tail is still on the roll).
func DetectRemnants(bin Bin, opts PackingOptions, last bool) []Remnant {
	var remnants []Remnant

	if len(bin.Placements) == 0 {
		return nil
	}

	var maxRight float64
	for _, p := range bin.Placements {
		right := p.X + p.Width + opts.Padding
		if right > maxRight {
			maxRight = right
		}
	}

	rightW := opts.StripWidth - maxRight
	if rightW >= MinRemnantDimension && bin.UsedHeight >= MinRemnantDimension && rightW*bin.UsedHeight >= MinRemnantArea {
		remnants = append(remnants, Remnant{
			BinIndex: bin.Index,
			X:        maxRight,
			Y:        0,
			Width:    rightW,
			Height:   bin.UsedHeight,
		})
	}

	if !last {
		tailStart := bin.UsedHeight + opts.Padding
		tailH := opts.MaxStripLength - tailStart
		if tailH >= MinRemnantDimension && tailH*opts.StripWidth >= MinRemnantArea {
			remnants = append(remnants, Remnant{
				BinIndex: bin.Index,
				X:        0,
				Y:        tailStart,
				Width:    opts.StripWidth,
				Height:   tailH,
				Tail:     true,
			})
		}
	}

	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].Area() > remnants[j].Area()
	})
	return remnants
}

// DetectAllRemnants finds remnants across all bins of a packing result.
func DetectAllRemnants(result PackingResult, opts PackingOptions) []Remnant {
	var all []Remnant
	for i, bin := range result.Bins {
		all = append(all, DetectRemnants(bin, opts, i == len(result.Bins)-1)...)
	}
	return all
}

// TotalRemnantArea returns the total area of all remnants in square mm.
func TotalRemnantArea(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Area()
	}
	return total
}
