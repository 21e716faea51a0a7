package model

import "math"

// FilmEstimate holds the film consumption of a packing result on a roll.
type FilmEstimate struct {
	UsedMeters     float64 `json:"used_meters"`       // roll length consumed
	RollsNeeded    int     `json:"rolls_needed"`      // whole rolls to open
	RollFraction   float64 `json:"roll_fraction"`     // used length / roll length
	PieceAreaM2    float64 `json:"piece_area_m2"`     // film that ends up on windows
	WasteAreaM2    float64 `json:"waste_area_m2"`     // film thrown away
	EstimatedCost  float64 `json:"estimated_cost"`    // 0 if the roll has no price
	PricePerMeter  float64 `json:"price_per_meter"`   // price used for estimation
	WastePercent   float64 `json:"waste_percent"`     // copied from the stats
	CostOfWasteEst float64 `json:"cost_of_waste_est"` // share of cost attributable to waste
}

const sqmmPerSqm = 1e6

// EstimateFilm computes how much film a packing result consumes from the given roll.
func EstimateFilm(result PackingResult, roll FilmRoll) FilmEstimate {
	est := FilmEstimate{
		UsedMeters:    result.UsedLength / 1000,
		PieceAreaM2:   result.TotalPieceArea / sqmmPerSqm,
		WasteAreaM2:   result.TotalWasteArea / sqmmPerSqm,
		PricePerMeter: roll.PricePerMeter,
		WastePercent:  result.WastePercentage,
	}

	if roll.Length > 0 {
		est.RollFraction = result.UsedLength / roll.Length
		est.RollsNeeded = int(math.Ceil(est.RollFraction - Epsilon))
		if est.RollsNeeded < len(result.Bins) {
			est.RollsNeeded = len(result.Bins)
		}
	}

	est.EstimatedCost = est.UsedMeters * roll.PricePerMeter
	if result.TotalUsedArea > 0 {
		est.CostOfWasteEst = est.EstimatedCost * result.TotalWasteArea / result.TotalUsedArea
	}
	return est
}
