package main

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in     string
		want   RGB
		wantOK bool
	}{
		{"#FF0000", RGB{255, 0, 0}, true},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}, true},
		{" Red ", RGB{255, 0, 0}, true},
		{"gray", RGB{128, 128, 128}, true},
		{"rgb( 1, 2, 3 )", RGB{1, 2, 3}, true},
		{"url(#gradient)", black, true},
		{"bogus", black, true},
		{"#12", black, true},
		{"rgb(1,,2)", black, true},
		{"hsl(0,,)", black, true},
		{"hsl(120, 100%, 50%)", RGB{0, 255, 0}, true},
		{"none", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		got, ok := parseColor(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestGrayscale(t *testing.T) {
	diff(t, 0.0, black.Grayscale())
	diff(t, 1.0, RGB{255, 255, 255}.Grayscale(), approx)
	diff(t, 0.299, RGB{255, 0, 0}.Grayscale(), approx)
	diff(t, neutralGrayscale, grayscaleOf(nil))
	diff(t, 0.587, grayscaleOf(&RGB{0, 255, 0}), approx)
}
