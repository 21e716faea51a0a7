package engine

import (
	"math"

	"github.com/piwi3910/FilmCut/internal/model"
)

// usedHeight returns max(y+height) over the bin's placements, 0 if empty.
func usedHeight(b model.Bin) float64 {
	var h float64
	for _, p := range b.Placements {
		if p.Bottom() > h {
			h = p.Bottom()
		}
	}
	return h
}

// Summarize derives the waste accounting of a set of bins on a strip of the
// given width.
func Summarize(bins []model.Bin, stripWidth float64) model.Stats {
	var st model.Stats
	for _, b := range bins {
		st.UsedLength += usedHeight(b)
		st.TotalPieceArea += b.PieceArea()
	}
	st.TotalUsedArea = stripWidth * st.UsedLength
	st.TotalWasteArea = st.TotalUsedArea - st.TotalPieceArea
	if st.TotalUsedArea > 0 {
		st.WastePercentage = round2(100 * st.TotalWasteArea / st.TotalUsedArea)
	}
	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
