package main

import (
	"fmt"
	"os"
	"strings"

	"honnef.co/go/curve"
)

// Synthesizer turns documents into brush G-code, modulating Z along every
// stroke. It keeps no state between strokes.
type Synthesizer struct {
	cfg   Config
	index *ColorIndex
	scale float64
}

// NewSynthesizer validates cfg. index may be nil, in which case Z follows
// the press/lift envelope only.
func NewSynthesizer(cfg Config, index *ColorIndex) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scale, err := outputScale(cfg.Unit)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{cfg: cfg, index: index, scale: scale}, nil
}

// indexOffset maps document coordinates into the reference drawing. A
// normalized document starts at the origin while the drawing keeps its
// own placement, so the drawing's minimum corner is added back.
func (s *Synthesizer) indexOffset(doc *Document) curve.Vec2 {
	if s.index == nil || !doc.Normalized {
		return curve.Vec2{}
	}
	b, ok := s.index.Bounds()
	if !ok {
		return curve.Vec2{}
	}
	return curve.Vec(b.X0, b.Y0)
}

// StrokeZ computes a Z height for every point of an already subdivided
// stroke. Without a color index the press/lift envelope is used, its
// depth optionally taken from the layer color. With an index, each point
// aims for the depth of the nearest reference color, gated by the
// envelope and low-pass filtered over the smoothing distance.
func (s *Synthesizer) StrokeZ(pts Stroke, layerColor *RGB, offset curve.Vec2) []float64 {
	if len(pts) == 0 {
		return nil
	}
	c := s.cfg
	dist := cumulativeDistances(pts)
	total := dist[len(dist)-1]
	zs := make([]float64, len(pts))

	if s.index == nil {
		zDown := c.ZDown
		if c.ZFromColor {
			zDown = zForGrayscale(grayscaleOf(layerColor), c.ZUp, c.ZDown)
		}
		for i := range pts {
			zs[i] = pressureZ(dist[i], total, c.ZUp, zDown, c.PressDistance, c.LiftDistance)
		}
		return zs
	}

	current := c.ZUp
	for i, p := range pts {
		q := p.Translate(offset)
		gray := s.index.FindGrayscaleAt(q.X, q.Y, c.SearchRadius)
		target := zForGrayscale(gray, c.ZUp, c.ZDown)

		// The envelope always wins at the stroke ends.
		env := pressureZ(dist[i], total, c.ZUp, c.ZDown, c.PressDistance, c.LiftDistance)
		target = c.ZUp + openness(env, c.ZUp, c.ZDown)*(target-c.ZUp)

		z := target
		if c.SmoothDistance > 0 && i > 0 {
			k := min(1, (dist[i]-dist[i-1])/c.SmoothDistance)
			z = current + k*(target-current)
		}
		current = z
		zs[i] = z
	}
	return zs
}

// ConvertToGCode renders doc layer by layer, in ascending layer ID order.
func (s *Synthesizer) ConvertToGCode(doc *Document) string {
	c := s.cfg
	offset := s.indexOffset(doc)

	var sb strings.Builder
	sb.WriteString("; Generated by brush\n")
	if s.index != nil && c.ZFromSVG != "" {
		sb.WriteString(fmt.Sprintf("; Z from SVG colors: %s\n", c.ZFromSVG))
	}
	sb.WriteString(unitsDirective(c.Unit) + "\n")
	sb.WriteString("G90 ; Use absolute coordinates\n")
	sb.WriteString(fmt.Sprintf("G0 Z%.4f ; Pen up\n", c.ZUp))
	sb.WriteString(fmt.Sprintf("F%.1f ; Set feed rate\n\n", c.FeedRate))

	for _, id := range doc.LayerIDs() {
		layer := doc.Layers[id]
		sb.WriteString(fmt.Sprintf("; Layer %d\n", id))

		strokes := mergeLayer(layer.Strokes, c.MergeTolerance)
		if len(strokes) != len(layer.Strokes) {
			Logger().Info("merged lines", "layer", id, "lines", len(layer.Strokes), "strokes", len(strokes))
			sb.WriteString(fmt.Sprintf("; Merged %d lines into %d strokes\n", len(layer.Strokes), len(strokes)))
		}

		for _, stroke := range strokes {
			pts := subdivide(stroke, c.SegmentLength)
			if len(pts) < 2 {
				continue
			}
			zs := s.StrokeZ(pts, layer.Color, offset)

			sb.WriteString(fmt.Sprintf("G0 X%.4f Y%.4f\n", pts[0].X/s.scale, pts[0].Y/s.scale))
			for i, p := range pts {
				sb.WriteString(fmt.Sprintf("G1 X%.4f Y%.4f Z%.4f\n", p.X/s.scale, p.Y/s.scale, zs[i]))
			}
			sb.WriteString(fmt.Sprintf("G0 Z%.4f\n\n", c.ZUp))
		}
	}

	sb.WriteString("; End of program\nM2\n")
	return sb.String()
}

// WriteGCodeFile converts doc and writes the program to path.
func (s *Synthesizer) WriteGCodeFile(path string, doc *Document) error {
	gcode := s.ConvertToGCode(doc)
	if err := os.WriteFile(path, []byte(gcode), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	Logger().Info("G-code written", "file", path, "bytes", len(gcode))
	return nil
}

// ProcessGeometry returns a copy of doc with every stroke subdivided.
// Strokes too short to subdivide are carried over unchanged.
func (s *Synthesizer) ProcessGeometry(doc *Document) *Document {
	out := NewDocument()
	out.Normalized = doc.Normalized
	for _, id := range doc.LayerIDs() {
		layer := doc.Layers[id]
		nl := &Layer{ID: id, Color: layer.Color, Strokes: make([]Stroke, 0, len(layer.Strokes))}
		for _, stroke := range layer.Strokes {
			nl.Strokes = append(nl.Strokes, subdivide(stroke, s.cfg.SegmentLength))
		}
		out.Layers[id] = nl
	}
	return out
}
