// Package engine implements the film-cutting strip packer and its waste
// accounting. Every call is independent: Pack holds no state between calls
// and returns the same result for the same input.
package engine

import (
	"fmt"

	"github.com/piwi3910/FilmCut/internal/model"
)

// orientation is one way of laying an instance onto the roll.
type orientation struct {
	w, h    float64
	rotated bool
}

func orientations(inst model.RectangleInstance, allowRotation bool) []orientation {
	o := []orientation{{w: inst.Width, h: inst.Height}}
	if allowRotation && !inst.IsSquare() {
		o = append(o, orientation{w: inst.Height, h: inst.Width, rotated: true})
	}
	return o
}

// fitsEmptyBin reports whether the orientation fits a fresh bin at all.
func fitsEmptyBin(o orientation, opts model.PackingOptions) bool {
	return o.w <= opts.StripWidth+eps && o.h <= opts.MaxStripLength+eps
}

// Pack places every instance onto bins of the strip described by opts using
// a best short side fit heuristic. Instances are processed in the given
// order. It returns an *model.UnplaceablePieceError naming every instance
// that can never fit, without placing anything.
func Pack(instances []model.RectangleInstance, opts model.PackingOptions) (model.PackingResult, error) {
	if err := opts.Validate(); err != nil {
		return model.PackingResult{}, err
	}
	if err := checkPlaceable(instances, opts); err != nil {
		return model.PackingResult{}, err
	}

	s := &session{
		opts:       opts,
		bins:       []model.Bin{},
		placements: []model.Placement{},
	}

	remaining := instances
	if opts.PinFixed {
		var err error
		remaining, err = s.placePinned(instances)
		if err != nil {
			return model.PackingResult{}, err
		}
	}

	for _, inst := range remaining {
		s.placeNext(inst)
	}

	return s.result(), nil
}

// checkPlaceable collects all instances with no orientation that fits an empty bin.
func checkPlaceable(instances []model.RectangleInstance, opts model.PackingOptions) error {
	var bad []model.RectangleInstance
	for _, inst := range instances {
		if inst.Width <= 0 || inst.Height <= 0 {
			bad = append(bad, inst)
			continue
		}
		fits := false
		for _, o := range orientations(inst, opts.AllowRotation) {
			if fitsEmptyBin(o, opts) {
				fits = true
				break
			}
		}
		if !fits {
			bad = append(bad, inst)
		}
	}
	if len(bad) > 0 {
		return &model.UnplaceablePieceError{
			Instances:      bad,
			StripWidth:     opts.StripWidth,
			MaxStripLength: opts.MaxStripLength,
			AllowRotation:  opts.AllowRotation,
		}
	}
	return nil
}

// session is the call-scoped state of one Pack invocation.
type session struct {
	opts       model.PackingOptions
	packers    []*binPacker
	bins       []model.Bin
	placements []model.Placement
}

func (s *session) openBin() int {
	idx := len(s.packers)
	s.packers = append(s.packers, newBinPacker(s.opts.StripWidth, s.opts.MaxStripLength, s.opts.Padding))
	s.bins = append(s.bins, model.Bin{Index: idx, UsedWidth: s.opts.StripWidth})
	return idx
}

// placeNext scores every (bin, free rect, orientation) candidate and places
// the instance at the best one, opening a new bin when none fits.
func (s *session) placeNext(inst model.RectangleInstance) {
	bestBin := -1
	var best fit
	var bestOrient orientation

	for bi, bp := range s.packers {
		for _, o := range orientations(inst, s.opts.AllowRotation) {
			f, ok := bp.score(o.w, o.h)
			if !ok {
				continue
			}
			if bestBin < 0 || better(f.shortSide, f.longSide, best.shortSide, best.longSide) ||
				(sameScore(f, best) && bi == bestBin && f.rectIdx < best.rectIdx) {
				bestBin, best, bestOrient = bi, f, o
			}
		}
	}

	if bestBin < 0 {
		// checkPlaceable guarantees at least one orientation fits an empty bin.
		bestBin = s.openBin()
		found := false
		for _, o := range orientations(inst, s.opts.AllowRotation) {
			f, ok := s.packers[bestBin].score(o.w, o.h)
			if ok && (!found || better(f.shortSide, f.longSide, best.shortSide, best.longSide)) {
				best, bestOrient, found = f, o, true
			}
		}
	}

	x, y := s.packers[bestBin].place(best.rectIdx, bestOrient.w, bestOrient.h)
	s.record(inst, bestBin, x, y, bestOrient, false)
}

func sameScore(a, b fit) bool {
	return !better(a.shortSide, a.longSide, b.shortSide, b.longSide) &&
		!better(b.shortSide, b.longSide, a.shortSide, a.longSide)
}

func (s *session) record(inst model.RectangleInstance, bin int, x, y float64, o orientation, pinned bool) {
	p := model.Placement{
		InstanceID: inst.ID,
		SpecID:     inst.SpecID,
		Label:      inst.Label,
		X:          x,
		Y:          y,
		Width:      o.w,
		Height:     o.h,
		Rotated:    o.rotated,
		BinIndex:   bin,
		Pinned:     pinned,
	}
	s.bins[bin].Placements = append(s.bins[bin].Placements, p)
	s.placements = append(s.placements, p)
}

// placePinned places every instance carrying a Fixed position at its recorded
// coordinates and returns the instances still to be packed, in input order.
func (s *session) placePinned(instances []model.RectangleInstance) ([]model.RectangleInstance, error) {
	var rest []model.RectangleInstance
	var pinned []rect
	var pinnedBins []int

	for _, inst := range instances {
		if inst.Fixed == nil {
			rest = append(rest, inst)
			continue
		}
		pos := *inst.Fixed
		o := orientation{w: inst.Width, h: inst.Height}
		if pos.Rotated {
			if !s.opts.AllowRotation && !inst.IsSquare() {
				return nil, &model.PinConflictError{InstanceID: inst.ID, Reason: "recorded rotated but rotation is disabled"}
			}
			o = orientation{w: inst.Height, h: inst.Width, rotated: true}
		}
		if pos.BinIndex < 0 || pos.X < -eps || pos.Y < -eps ||
			pos.X+o.w > s.opts.StripWidth+eps || pos.Y+o.h > s.opts.MaxStripLength+eps {
			return nil, &model.PinConflictError{
				InstanceID: inst.ID,
				Reason:     fmt.Sprintf("position (%g, %g) in bin %d lies outside the %gx%g strip", pos.X, pos.Y, pos.BinIndex, s.opts.StripWidth, s.opts.MaxStripLength),
			}
		}

		for len(s.packers) <= pos.BinIndex {
			s.openBin()
		}
		bp := s.packers[pos.BinIndex]
		fp := bp.inflate(pos.X, pos.Y, o.w, o.h)
		for i, other := range pinned {
			if pinnedBins[i] == pos.BinIndex && rectsOverlap(fp, other) {
				return nil, &model.PinConflictError{InstanceID: inst.ID, Reason: "overlaps another pinned piece"}
			}
		}
		pinned = append(pinned, fp)
		pinnedBins = append(pinnedBins, pos.BinIndex)

		bp.reserve(fp)
		s.record(inst, pos.BinIndex, pos.X, pos.Y, o, true)
	}
	return rest, nil
}

func (s *session) result() model.PackingResult {
	for i := range s.bins {
		s.bins[i].UsedHeight = usedHeight(s.bins[i])
	}
	return model.PackingResult{
		Bins:       s.bins,
		Placements: s.placements,
		Stats:      Summarize(s.bins, s.opts.StripWidth),
	}
}
