package engine

import "github.com/piwi3910/FilmCut/internal/model"

const eps = model.Epsilon

type rect struct {
	x, y, w, h float64
}

func (r rect) right() float64  { return r.x + r.w }
func (r rect) bottom() float64 { return r.y + r.h }

// binPacker tracks the free space of one bin. Free rectangles are kept in
// insertion order; that order is the final tie-break when scoring.
type binPacker struct {
	width, length float64
	padding       float64
	freeRects     []rect
}

func newBinPacker(width, length, padding float64) *binPacker {
	return &binPacker{
		width:     width,
		length:    length,
		padding:   padding,
		freeRects: []rect{{0, 0, width, length}},
	}
}

// inflate returns the footprint of a w x h piece placed at (x, y): the piece
// plus padding on its right and bottom edges, clipped to the bin so a piece
// touching the roll edge needs no gap there.
func (bp *binPacker) inflate(x, y, w, h float64) rect {
	iw := w + bp.padding
	if x+iw > bp.width {
		iw = bp.width - x
	}
	ih := h + bp.padding
	if y+ih > bp.length {
		ih = bp.length - y
	}
	return rect{x: x, y: y, w: iw, h: ih}
}

// fit is a scored candidate position.
type fit struct {
	rectIdx   int
	shortSide float64
	longSide  float64
}

// score returns the best short side fit of a w x h piece over this bin's free
// rectangles. ok is false when nothing fits.
func (bp *binPacker) score(w, h float64) (best fit, ok bool) {
	for i, r := range bp.freeRects {
		if r.x+w > bp.width+eps || r.y+h > bp.length+eps {
			continue
		}
		fp := bp.inflate(r.x, r.y, w, h)
		if fp.w > r.w+eps || fp.h > r.h+eps {
			continue
		}
		leftoverW := r.w - fp.w
		leftoverH := r.h - fp.h
		short, long := leftoverW, leftoverH
		if short > long {
			short, long = long, short
		}
		if !ok || better(short, long, best.shortSide, best.longSide) {
			best = fit{rectIdx: i, shortSide: short, longSide: long}
			ok = true
		}
	}
	return best, ok
}

// better reports whether (short, long) strictly beats (bestShort, bestLong).
// Ties keep the earlier candidate.
func better(short, long, bestShort, bestLong float64) bool {
	if short < bestShort-eps {
		return true
	}
	if short > bestShort+eps {
		return false
	}
	return long < bestLong-eps
}

// place puts a w x h piece at the origin of free rectangle idx and returns its position.
func (bp *binPacker) place(idx int, w, h float64) (float64, float64) {
	chosen := bp.freeRects[idx]
	fp := bp.inflate(chosen.x, chosen.y, w, h)

	rest := make([]rect, 0, len(bp.freeRects)+1)
	rest = append(rest, bp.freeRects[:idx]...)
	rest = append(rest, bp.freeRects[idx+1:]...)
	rest = append(rest, guillotineSplit(chosen, fp)...)
	bp.freeRects = pruneContained(rest)

	return chosen.x, chosen.y
}

// guillotineSplit cuts free rectangle r around footprint fp (anchored at r's
// origin) into at most two rectangles. The cut runs along the shorter
// leftover axis so the larger leftover stays in one piece.
func guillotineSplit(r, fp rect) []rect {
	leftoverW := r.w - fp.w
	leftoverH := r.h - fp.h

	var right, below rect
	if leftoverW < leftoverH {
		// Horizontal cut: the area below spans the full width.
		right = rect{x: fp.right(), y: r.y, w: leftoverW, h: fp.h}
		below = rect{x: r.x, y: fp.bottom(), w: r.w, h: leftoverH}
	} else {
		// Vertical cut: the area to the right spans the full height.
		right = rect{x: fp.right(), y: r.y, w: leftoverW, h: r.h}
		below = rect{x: r.x, y: fp.bottom(), w: fp.w, h: leftoverH}
	}

	out := make([]rect, 0, 2)
	for _, c := range []rect{right, below} {
		if c.w > eps && c.h > eps {
			out = append(out, c)
		}
	}
	return out
}

// reserve removes an occupied area from the free space. It is used for
// pinned pieces, which do not sit at a free rectangle's origin.
func (bp *binPacker) reserve(occupied rect) {
	var out []rect
	for _, r := range bp.freeRects {
		out = append(out, subtractRect(r, occupied)...)
	}
	bp.freeRects = pruneContained(out)
}

// subtractRect subtracts one rectangle from another, returning up to 4
// disjoint rectangles.
func subtractRect(base, sub rect) []rect {
	if !rectsOverlap(base, sub) {
		return []rect{base}
	}

	ix := max(base.x, sub.x)
	iy := max(base.y, sub.y)
	ir := min(base.right(), sub.right())
	ib := min(base.bottom(), sub.bottom())

	var result []rect
	// Left portion
	if ix > base.x+eps {
		result = append(result, rect{x: base.x, y: base.y, w: ix - base.x, h: base.h})
	}
	// Right portion
	if ir < base.right()-eps {
		result = append(result, rect{x: ir, y: base.y, w: base.right() - ir, h: base.h})
	}
	// Top portion, between left and right
	if iy > base.y+eps {
		result = append(result, rect{x: ix, y: base.y, w: ir - ix, h: iy - base.y})
	}
	// Bottom portion
	if ib < base.bottom()-eps {
		result = append(result, rect{x: ix, y: ib, w: ir - ix, h: base.bottom() - ib})
	}
	return result
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.right()-eps && a.right() > b.x+eps &&
		a.y < b.bottom()-eps && a.bottom() > b.y+eps
}

// pruneContained drops degenerate rectangles and any rectangle fully
// contained within another. Of two identical rectangles the earlier is kept.
func pruneContained(rects []rect) []rect {
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		if a.w <= eps || a.h <= eps {
			continue
		}
		contained := false
		for j, b := range rects {
			if i == j || b.w <= eps || b.h <= eps {
				continue
			}
			if containsRect(b, a) && (!containsRect(a, b) || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+eps && outer.y <= inner.y+eps &&
		outer.right() >= inner.right()-eps &&
		outer.bottom() >= inner.bottom()-eps
}
