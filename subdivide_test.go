package main

import (
	"testing"
)

func TestSubdivide(t *testing.T) {
	got := subdivide(stroke(0, 0, 10, 0, 10, 3), 2)
	want := stroke(0, 0, 2, 0, 4, 0, 6, 0, 8, 0, 10, 0, 10, 1.5, 10, 3)
	diff(t, want, got, approx)
}

func TestSubdivideSpacing(t *testing.T) {
	in := stroke(0, 0, 7, 3, -2, 11, -2, 11.5, 30, 30)
	const segLen = 1.5
	out := subdivide(in, segLen)

	for i := 1; i < len(out); i++ {
		if d := out[i-1].Distance(out[i]); d > segLen+1e-9 {
			t.Errorf("points %d and %d are %g apart, want at most %g", i-1, i, d, segLen)
		}
	}
	inDist := cumulativeDistances(in)
	outDist := cumulativeDistances(out)
	diff(t, inDist[len(inDist)-1], outDist[len(outDist)-1], approx)
	diff(t, in[0], out[0])
	diff(t, in[len(in)-1], out[len(out)-1])
}

func TestSubdivideDegenerate(t *testing.T) {
	for _, tt := range []struct {
		name   string
		in     Stroke
		segLen float64
	}{
		{"empty", Stroke{}, 2},
		{"single point", stroke(1, 1), 2},
		{"zero length", stroke(0, 0, 10, 0), 0},
		{"negative length", stroke(0, 0, 10, 0), -1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := subdivide(tt.in, tt.segLen)
			diff(t, tt.in, got)
			if len(got) > 0 && &got[0] == &tt.in[0] {
				t.Error("subdivide returned the input slice instead of a copy")
			}
		})
	}
}

func TestCumulativeDistances(t *testing.T) {
	diff(t, []float64{0, 5, 5, 8}, cumulativeDistances(stroke(0, 0, 3, 4, 3, 4, 3, 1)), approx)
	if got := cumulativeDistances(nil); got != nil {
		t.Errorf("cumulativeDistances(nil) = %v, want nil", got)
	}
}
