package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/srwiley/rasterx"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/net/html/charset"
	"honnef.co/go/curve"
)

const defaultStroke = "black"

// LoadColorIndex builds a ColorIndex from the reference drawing at path.
func LoadColorIndex(path string) (*ColorIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReferenceDrawing, err)
	}
	defer f.Close()

	Logger().Info("building color index", "file", path)
	idx, err := BuildColorIndex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if b, ok := idx.Bounds(); ok {
		Logger().Info("indexed path segments", "segments", idx.Len(),
			"min_x", b.X0, "min_y", b.Y0, "max_x", b.X1, "max_y", b.Y1)
	} else {
		Logger().Warn("reference drawing has no stroked geometry", "file", path)
	}
	return idx, nil
}

// BuildColorIndex walks an SVG document depth first and indexes every
// stroked path, line, polyline and polygon, scaled to millimetres. The
// stroke color is inherited down the tree; a stroke attribute beats an
// inline style which beats the inherited value.
func BuildColorIndex(r io.Reader) (*ColorIndex, error) {
	idx := NewColorIndex(defaultCellSize)

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		m      rasterx.Matrix2D
		stack  []string
		inRoot bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReferenceDrawing, err)
		}

		switch se := tok.(type) {
		case xml.StartElement:
			inherited := ""
			if len(stack) > 0 {
				inherited = stack[len(stack)-1]
			} else {
				if se.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root element is <%s>, not <svg>", ErrReferenceDrawing, se.Name.Local)
				}
				inRoot = true
				m = drawingTransform(se)
				inherited = attr(se, "stroke")
				if inherited == "" {
					inherited = defaultStroke
				}
			}
			stroke := resolveStroke(se, inherited)
			stack = append(stack, stroke)
			indexElement(idx, se, stroke, m)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if !inRoot {
		return nil, fmt.Errorf("%w: no <svg> element", ErrReferenceDrawing)
	}
	return idx, nil
}

// resolveStroke returns the stroke paint in effect for se. An explicit
// "none" turns stroking off for se and its descendants until overridden.
func resolveStroke(se xml.StartElement, inherited string) string {
	if s := strings.TrimSpace(attr(se, "stroke")); s != "" {
		return s
	}
	if s, ok := styleProperty(attr(se, "style"), "stroke"); ok && s != "" {
		return s
	}
	return inherited
}

func indexElement(idx *ColorIndex, se xml.StartElement, stroke string, m rasterx.Matrix2D) {
	var pts []curve.Point
	closed := false
	switch se.Name.Local {
	case "path":
		pts = flattenPathData(attr(se, "d"))
	case "line":
		pts = []curve.Point{
			curve.Pt(attrFloat(se, "x1"), attrFloat(se, "y1")),
			curve.Pt(attrFloat(se, "x2"), attrFloat(se, "y2")),
		}
	case "polyline":
		pts = parsePointList(attr(se, "points"))
	case "polygon":
		pts = parsePointList(attr(se, "points"))
		closed = len(pts) > 2
	default:
		return
	}
	if len(pts) < 2 {
		return
	}
	rgb, ok := parseColor(stroke)
	if !ok {
		return
	}
	gray := rgb.Grayscale()

	for i := range pts {
		pts[i] = curve.Pt(m.Transform(pts[i].X, pts[i].Y))
	}
	for i := 0; i+1 < len(pts); i++ {
		idx.AddSegment(pts[i], pts[i+1], gray)
	}
	if closed {
		idx.AddSegment(pts[len(pts)-1], pts[0], gray)
	}
}

// drawingTransform maps user units of the root <svg> element to
// millimetres, comparing the viewBox (logical size) against the declared
// width and height (physical size). Missing physical sizes are read as
// 96 units per inch.
func drawingTransform(root xml.StartElement) rasterx.Matrix2D {
	var vbW, vbH float64
	if vb := parsePointList(attr(root, "viewBox")); len(vb) >= 2 {
		vbW, vbH = vb[1].X, vb[1].Y
	}
	sx := axisScale(attr(root, "width"), vbW)
	sy := axisScale(attr(root, "height"), vbH)
	return rasterx.Identity.Scale(sx, sy)
}

func axisScale(length string, logical float64) float64 {
	mm, ok := parseLength(length)
	if !ok || mm <= 0 {
		return pxToMM
	}
	if logical <= 0 {
		// Without a viewBox the user units follow the bare width number.
		v, n := strconv.ParseFloat([]byte(strings.TrimSpace(length)))
		if n == 0 || v <= 0 {
			return pxToMM
		}
		logical = v
	}
	return mm / logical
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func attrFloat(se xml.StartElement, name string) float64 {
	v, n := strconv.ParseFloat([]byte(strings.TrimSpace(attr(se, name))))
	if n == 0 {
		return 0
	}
	return v
}

// styleProperty looks up key in an inline style declaration list such as
// "fill:none;stroke:#000".
func styleProperty(style, key string) (string, bool) {
	for _, decl := range strings.Split(style, ";") {
		k, v, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
