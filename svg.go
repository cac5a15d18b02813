package main

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"golang.org/x/net/html/charset"
	"honnef.co/go/curve"
)

// Paths are replayed through rasterx in 26.6 fixed point; scaling up before
// the conversion keeps sub-micron precision in millimetres.
const fixedOversample = 16.0

// ReadOptions controls how an input drawing becomes a Document.
type ReadOptions struct {
	// Quantization is the chord length, in millimetres, used to flatten
	// curves.
	Quantization float64
	// Normalize translates the geometry so its bounding box starts at the
	// origin.
	Normalize bool
}

func LoadDocument(filePath string, opts ReadOptions) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDrawing, err)
	}

	doc, err := ReadDocument(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	Logger().Info("loaded drawing", "file", filePath,
		"layers", len(doc.Layers), "strokes", doc.StrokeCount())
	return doc, nil
}

// ReadDocument parses an SVG drawing into strokes grouped into one layer
// per stroke color, in order of first appearance.
func ReadDocument(data []byte, opts ReadOptions) (*Document, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDrawing, err)
	}

	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDrawing, err)
	}

	m := rasterx.Identity.Scale(fixedOversample, fixedOversample).
		Mult(drawingTransform(root)).
		Mult(svgIcon.Transform)

	tolerance := opts.Quantization
	if tolerance <= 0 {
		tolerance = DefaultConfig().Quantization
	}

	doc := NewDocument()
	layerOf := make(map[RGB]*Layer)
	for i := range svgIcon.SVGPaths {
		svgp := &svgIcon.SVGPaths[i]
		sb := &strokeBuilder{tolerance: tolerance}
		svgp.Path.AddTo(&rasterx.MatrixAdder{Adder: sb, M: m})
		if len(sb.strokes) == 0 {
			continue
		}

		rgb := rgbFromColor(svgp.GetLineColor())
		l, ok := layerOf[rgb]
		if !ok {
			c := rgb
			l = &Layer{ID: len(layerOf) + 1, Color: &c}
			layerOf[rgb] = l
			doc.Layers[l.ID] = l
		}
		l.Strokes = append(l.Strokes, sb.strokes...)
	}

	if opts.Normalize {
		if b, ok := doc.Bounds(); ok {
			doc.Translate(curve.Vec(-b.X0, -b.Y0))
		}
		doc.Normalized = true
	}
	return doc, nil
}

func rootElement(data []byte) (xml.StartElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, fmt.Errorf("no root element")
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "svg" {
				return se, fmt.Errorf("root element is <%s>, not <svg>", se.Name.Local)
			}
			return se, nil
		}
	}
}

// strokeBuilder is a rasterx.Adder collecting polylines. Curves are
// flattened into chords of roughly tolerance length.
type strokeBuilder struct {
	tolerance float64
	start     curve.Point
	cur       Stroke
	strokes   []Stroke
}

var _ rasterx.Adder = (*strokeBuilder)(nil)

func fromFixed(p fixed.Point26_6) curve.Point {
	const k = 64 * fixedOversample
	return curve.Pt(float64(p.X)/k, float64(p.Y)/k)
}

func (b *strokeBuilder) last() curve.Point {
	if len(b.cur) == 0 {
		return b.start
	}
	return b.cur[len(b.cur)-1]
}

func (b *strokeBuilder) add(p curve.Point) {
	if len(b.cur) == 0 {
		b.cur = Stroke{b.start}
	}
	b.cur = append(b.cur, p)
}

func (b *strokeBuilder) Start(a fixed.Point26_6) {
	b.flush()
	b.start = fromFixed(a)
	b.cur = Stroke{b.start}
}

func (b *strokeBuilder) Line(p fixed.Point26_6) {
	b.add(fromFixed(p))
}

func (b *strokeBuilder) QuadBezier(p1, p2 fixed.Point26_6) {
	q := curve.QuadBez{P0: b.last(), P1: fromFixed(p1), P2: fromFixed(p2)}
	n := b.chords(q.Arclen(b.tolerance / 10))
	for i := 1; i <= n; i++ {
		b.add(q.Eval(float64(i) / float64(n)))
	}
}

func (b *strokeBuilder) CubeBezier(p1, p2, p3 fixed.Point26_6) {
	c := curve.CubicBez{P0: b.last(), P1: fromFixed(p1), P2: fromFixed(p2), P3: fromFixed(p3)}
	n := b.chords(c.Arclen(b.tolerance / 10))
	for i := 1; i <= n; i++ {
		b.add(c.Eval(float64(i) / float64(n)))
	}
}

func (b *strokeBuilder) Stop(closeLoop bool) {
	if closeLoop && len(b.cur) > 1 && b.cur[len(b.cur)-1] != b.cur[0] {
		b.cur = append(b.cur, b.cur[0])
	}
	b.flush()
}

func (b *strokeBuilder) chords(length float64) int {
	return max(1, int(math.Ceil(length/b.tolerance)))
}

// flush keeps the current polyline if it has at least one segment.
func (b *strokeBuilder) flush() {
	if len(b.cur) > 1 {
		b.strokes = append(b.strokes, b.cur)
	}
	b.cur = nil
}
