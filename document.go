package main

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"

	"honnef.co/go/curve"
)

// Stroke is a polyline in millimetres.
type Stroke []curve.Point

// Layer is an ordered collection of strokes sharing an optional color.
type Layer struct {
	ID      int
	Color   *RGB
	Strokes []Stroke
}

// Document maps layer IDs to layers. Normalized records that the geometry
// was translated so its bounding box starts at the origin.
type Document struct {
	Layers     map[int]*Layer
	Normalized bool
}

func NewDocument() *Document {
	return &Document{Layers: make(map[int]*Layer)}
}

// LayerIDs returns the layer IDs in ascending order.
func (d *Document) LayerIDs() []int {
	return slices.Sorted(maps.Keys(d.Layers))
}

func (d *Document) StrokeCount() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Strokes)
	}
	return n
}

// Bounds returns the extent of every point in the document. ok is false
// when the document holds no points.
func (d *Document) Bounds() (r curve.Rect, ok bool) {
	for _, l := range d.Layers {
		for _, s := range l.Strokes {
			for _, p := range s {
				if !ok {
					r = curve.Rect{X0: p.X, Y0: p.Y, X1: p.X, Y1: p.Y}
					ok = true
					continue
				}
				r = r.UnionPoint(p)
			}
		}
	}
	return r, ok
}

// Translate moves every point by v.
func (d *Document) Translate(v curve.Vec2) {
	for _, l := range d.Layers {
		for _, s := range l.Strokes {
			for i := range s {
				s[i] = s[i].Translate(v)
			}
		}
	}
}

// WriteText prints the document as plain polylines: a "# layer" line per
// layer, then one line per stroke of space separated x,y pairs in
// millimetres.
func (d *Document) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range d.LayerIDs() {
		l := d.Layers[id]
		if l.Color != nil {
			fmt.Fprintf(bw, "# layer %d %s\n", id, l.Color)
		} else {
			fmt.Fprintf(bw, "# layer %d\n", id)
		}
		for _, s := range l.Strokes {
			for i, p := range s {
				if i > 0 {
					bw.WriteByte(' ')
				}
				fmt.Fprintf(bw, "%.4f,%.4f", p.X, p.Y)
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
