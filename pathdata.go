package main

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"
)

const pathCommands = "MmLlHhVvCcSsQqTtAaZz"

// Number of arguments consumed by one repetition of each command.
var pathArgCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

// Parameters at which cubic segments are sampled. The start point is already
// on the polyline.
var cubicSamples = [...]float64{0.25, 0.5, 0.75, 1.0}

type pathToken struct {
	cmd byte // zero for numbers
	num float64
}

func tokenizePathData(d string) []pathToken {
	b := []byte(d)
	toks := make([]pathToken, 0, len(b)/3)
	for i := 0; i < len(b); {
		c := b[i]
		if strings.IndexByte(pathCommands, c) >= 0 {
			toks = append(toks, pathToken{cmd: c})
			i++
			continue
		}
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			// separators and garbage
			i++
			continue
		}
		toks = append(toks, pathToken{num: v})
		i += n
	}
	return toks
}

// flattenPathData turns SVG path data into a polyline. Cubic curves are
// sampled at four fixed parameters; smooth cubics, quadratics and arcs only
// contribute their end point. A command whose argument list is cut short
// contributes nothing and parsing resumes at the next command letter.
func flattenPathData(d string) []curve.Point {
	toks := tokenizePathData(d)

	var (
		pts        []curve.Point
		cur, start curve.Point
		cmd        byte
		args       [7]float64
	)
	for i := 0; i < len(toks); {
		if c := toks[i].cmd; c != 0 {
			cmd = c
			i++
			if c == 'Z' || c == 'z' {
				cur = start
				pts = append(pts, cur)
			}
			continue
		}

		upper := cmd &^ 0x20
		n := pathArgCounts[upper]
		if cmd == 0 || n == 0 {
			i++
			continue
		}
		if !hasArgs(toks[i:], n) {
			for i < len(toks) && toks[i].cmd == 0 {
				i++
			}
			continue
		}
		for j := 0; j < n; j++ {
			args[j] = toks[i+j].num
		}
		i += n

		rel := cmd >= 'a'
		var origin curve.Point
		if rel {
			origin = cur
		}
		at := func(x, y float64) curve.Point {
			return curve.Pt(origin.X+x, origin.Y+y)
		}

		switch upper {
		case 'M':
			cur = at(args[0], args[1])
			start = cur
			pts = append(pts, cur)
			// Further pairs are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			cur = at(args[0], args[1])
			pts = append(pts, cur)
		case 'H':
			cur.X = origin.X + args[0]
			pts = append(pts, cur)
		case 'V':
			cur.Y = origin.Y + args[0]
			pts = append(pts, cur)
		case 'C':
			c := curve.CubicBez{
				P0: cur,
				P1: at(args[0], args[1]),
				P2: at(args[2], args[3]),
				P3: at(args[4], args[5]),
			}
			for _, t := range cubicSamples {
				pts = append(pts, c.Eval(t))
			}
			cur = c.P3
		case 'S', 'Q', 'T':
			cur = at(args[n-2], args[n-1])
			pts = append(pts, cur)
		case 'A':
			cur = at(args[5], args[6])
			pts = append(pts, cur)
		}
	}
	return pts
}

func hasArgs(toks []pathToken, n int) bool {
	if len(toks) < n {
		return false
	}
	for _, t := range toks[:n] {
		if t.cmd != 0 {
			return false
		}
	}
	return true
}

// parsePointList reads a polyline/polygon points attribute. A dangling odd
// coordinate is ignored.
func parsePointList(s string) []curve.Point {
	var nums []float64
	for _, t := range tokenizePathData(s) {
		if t.cmd == 0 {
			nums = append(nums, t.num)
		}
	}
	pts := make([]curve.Point, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		pts = append(pts, curve.Pt(nums[i], nums[i+1]))
	}
	return pts
}
