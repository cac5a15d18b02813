package main

import (
	"math"
	"slices"
)

// subdivide resamples s so that no two consecutive points are farther
// apart than segmentLength. Original vertices are kept; each original
// segment is split into equal parts. Strokes with fewer than two points,
// and non-positive lengths, come back as an unmodified copy.
func subdivide(s Stroke, segmentLength float64) Stroke {
	if len(s) < 2 || segmentLength <= 0 {
		return slices.Clone(s)
	}

	out := make(Stroke, 1, len(s))
	out[0] = s[0]
	for i := 0; i+1 < len(s); i++ {
		p1, p2 := s[i], s[i+1]
		n := max(1, int(math.Ceil(p1.Distance(p2)/segmentLength)))
		for j := 1; j < n; j++ {
			out = append(out, p1.Lerp(p2, float64(j)/float64(n)))
		}
		out = append(out, p2)
	}
	return out
}

// cumulativeDistances returns, for each point, the path length travelled
// from the first point. The last value is the total length.
func cumulativeDistances(s Stroke) []float64 {
	if len(s) == 0 {
		return nil
	}
	dist := make([]float64, len(s))
	for i := 1; i < len(s); i++ {
		dist[i] = dist[i-1] + s[i-1].Distance(s[i])
	}
	return dist
}
