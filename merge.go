package main

import (
	"math"
	"slices"

	"honnef.co/go/curve"
)

// sameRowMM is the largest vertical offset, in millimetres, between two
// endpoints that still counts as the same row.
const sameRowMM = 3.0

// mergeLayer joins fragmented strokes of one layer. A zero tolerance
// returns strokes unchanged.
func mergeLayer(strokes []Stroke, toleranceMM float64) []Stroke {
	if toleranceMM <= 0 {
		return strokes
	}
	return mergeStrokes(strokes, toleranceMM*workingUnitsPerMM, sameRowMM*workingUnitsPerMM)
}

// mergeStrokes grows chains of strokes whose endpoints meet on the same
// row: the horizontal gap must be below xTol and the vertical gap below
// yTol. Each chain starts from the first unconsumed stroke and is extended,
// first fit, until no remaining stroke touches either end; the scan
// restarts after every join because the chain ends moved. A candidate is
// tried as forward append, reversed append, forward prepend, then reversed
// prepend. Strokes joined in reverse contribute their points reversed, and
// the shared endpoint is kept once.
func mergeStrokes(strokes []Stroke, xTol, yTol float64) []Stroke {
	connects := func(a, b curve.Point) bool {
		return math.Abs(a.X-b.X) < xTol && math.Abs(a.Y-b.Y) < yTol
	}

	pool := make([]int, 0, len(strokes))
	for i, s := range strokes {
		if len(s) > 0 {
			pool = append(pool, i)
		}
	}

	var merged []Stroke
	for len(pool) > 0 {
		chain := slices.Clone(strokes[pool[0]])
		pool = pool[1:]

		for changed := true; changed; {
			changed = false
			for i := 0; i < len(pool); i++ {
				s := strokes[pool[i]]
				head, tail := chain[0], chain[len(chain)-1]
				first, last := s[0], s[len(s)-1]

				switch {
				case connects(tail, first):
					chain = append(chain, s[1:]...)
				case connects(tail, last):
					chain = append(chain, reversed(s[:len(s)-1])...)
				case connects(last, head):
					chain = append(slices.Clone(s[:len(s)-1]), chain...)
				case connects(first, head):
					chain = append(reversed(s[1:]), chain...)
				default:
					continue
				}
				pool = slices.Delete(pool, i, i+1)
				changed = true
				break
			}
		}
		merged = append(merged, chain)
	}
	return merged
}

func reversed(s Stroke) Stroke {
	r := slices.Clone(s)
	slices.Reverse(r)
	return r
}
