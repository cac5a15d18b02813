package main

import (
	"math"

	"honnef.co/go/curve"
)

const (
	defaultCellSize     = 5.0
	defaultSearchRadius = 10.0
	// Returned when no segment lies within the scanned cells.
	neutralGrayscale = 0.5
)

type colorSegment struct {
	line curve.Line
	gray float64
}

type cellKey struct {
	cx, cy int
}

// ColorIndex is a uniform grid over colored line segments taken from a
// reference drawing. It is filled once and only read afterwards, so
// concurrent lookups are safe once building has finished.
type ColorIndex struct {
	cellSize float64
	grid     map[cellKey][]int
	segments []colorSegment
	bounds   curve.Rect
	hasAny   bool
}

// NewColorIndex returns an empty index with square cells of cellSize
// working units. A non-positive size selects the default of 5.
func NewColorIndex(cellSize float64) *ColorIndex {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &ColorIndex{
		cellSize: cellSize,
		grid:     make(map[cellKey][]int),
	}
}

func (idx *ColorIndex) cell(v float64) int {
	return int(v / idx.cellSize)
}

// AddSegment registers the segment p1-p2 in every cell touched by its
// bounding box grown by one cell on each side.
func (idx *ColorIndex) AddSegment(p1, p2 curve.Point, gray float64) {
	box := curve.NewRectFromPoints(p1, p2)
	if !idx.hasAny {
		idx.bounds = box
		idx.hasAny = true
	} else {
		idx.bounds = idx.bounds.Union(box)
	}

	id := len(idx.segments)
	idx.segments = append(idx.segments, colorSegment{line: curve.Line{P0: p1, P1: p2}, gray: gray})

	for cx := idx.cell(box.X0) - 1; cx <= idx.cell(box.X1)+1; cx++ {
		for cy := idx.cell(box.Y0) - 1; cy <= idx.cell(box.Y1)+1; cy++ {
			k := cellKey{cx, cy}
			idx.grid[k] = append(idx.grid[k], id)
		}
	}
}

// FindGrayscaleAt returns the grayscale of the segment nearest to (x, y)
// among the cells within radius of the query cell, or 0.5 when there is
// none. Exact distance ties keep the first segment seen.
func (idx *ColorIndex) FindGrayscaleAt(x, y, radius float64) float64 {
	if radius <= 0 {
		radius = defaultSearchRadius
	}
	pt := curve.Pt(x, y)
	cx, cy := idx.cell(x), idx.cell(y)
	reach := int(radius/idx.cellSize) + 1

	best := math.Inf(1)
	gray := neutralGrayscale
	seen := make(map[int]struct{})
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for _, id := range idx.grid[cellKey{cx + dx, cy + dy}] {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}

				seg := idx.segments[id]
				// Nearest clamps the projection to the segment.
				d2, _ := seg.line.Nearest(pt, 0)
				if d2 < best {
					best = d2
					gray = seg.gray
				}
			}
		}
	}
	return gray
}

// Len reports the number of indexed segments.
func (idx *ColorIndex) Len() int {
	return len(idx.segments)
}

// Bounds returns the extent of all indexed segments. ok is false for an
// empty index.
func (idx *ColorIndex) Bounds() (r curve.Rect, ok bool) {
	return idx.bounds, idx.hasAny
}
