package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { SetLogger(nil) })
	var out, errOut bytes.Buffer
	err = run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRunWritesGCode(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	output := filepath.Join(t.TempDir(), "out.gcode")

	stdout, stderr, err := runCLI(t, "-input", input, "-o", output, "-segment-length", "5")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	diff(t, "G-code successfully written to "+output+"\n", stdout)

	gcode := readOutput(t, output)
	for _, want := range []string{
		"; Generated by brush\n",
		"F1000.0 ; Set feed rate\n",
		"; Layer 1\n",
		"; Layer 2\n",
		"M2\n",
	} {
		if !strings.Contains(gcode, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if n := len(drawMoves(t, gcode)); n != 3 {
		t.Errorf("got %d strokes, want 3", n)
	}
}

func TestRunConfigFile(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	cfgFile := writeFile(t, "brush.yaml", "feedRate: 2500\nzUp: -1\n")
	output := filepath.Join(t.TempDir(), "out.gcode")

	// Flags win over the file, whatever their position.
	_, stderr, err := runCLI(t, "-z-up", "-2", "-input", input, "-config", cfgFile, "-output", output)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	gcode := readOutput(t, output)
	for _, want := range []string{"F2500.0 ; Set feed rate\n", "G0 Z-2.0000 ; Pen up\n"} {
		if !strings.Contains(gcode, want) {
			t.Errorf("output does not contain %q:\n%s", want, gcode)
		}
	}
}

func TestRunReferenceDrawing(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	ref := writeFile(t, "reference.svg", `<svg xmlns="http://www.w3.org/2000/svg" width="100mm" height="50mm" viewBox="0 0 100 50">
  <line x1="0" y1="0" x2="100" y2="0" stroke="#808080"/>
</svg>`)
	output := filepath.Join(t.TempDir(), "out.gcode")

	_, stderr, err := runCLI(t, "-input", input, "-z-from-svg", ref, "-o", output)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	if gcode := readOutput(t, output); !strings.Contains(gcode, "; Z from SVG colors: "+ref+"\n") {
		t.Errorf("missing reference comment:\n%s", gcode)
	}

	_, _, err = runCLI(t, "-input", input, "-z-from-svg", filepath.Join(t.TempDir(), "missing.svg"), "-o", output)
	if !errors.Is(err, ErrReferenceDrawing) {
		t.Errorf("missing reference: got %v, want ErrReferenceDrawing", err)
	}
}

func TestRunGeometryOnly(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	stdout, stderr, err := runCLI(t, "-input", input, "-segment-length", "20", "-normalize=false")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "subdivided geometry") {
		t.Errorf("missing geometry summary:\n%s", stderr)
	}
	want := `# layer 1 #ff0000
10.0000,10.0000 30.0000,10.0000 50.0000,10.0000
20.0000,40.0000 30.0000,40.0000
# layer 2 #000000
10.0000,30.0000 26.6667,30.0000 43.3333,30.0000 60.0000,30.0000
`
	diff(t, want, stdout)
}

func TestRunLastOutputFlagWins(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	cfgFile := writeFile(t, "brush.yaml", "output: from-config.gcode\n")
	dir := t.TempDir()
	first := filepath.Join(dir, "first.gcode")
	last := filepath.Join(dir, "last.gcode")

	for _, args := range [][]string{
		{"-input", input, "-output", first, "-o", last},
		{"-input", input, "-config", cfgFile, "-output", first, "-o", last},
	} {
		os.Remove(last)
		if _, stderr, err := runCLI(t, args...); err != nil {
			t.Fatalf("run %v: %v\n%s", args, err, stderr)
		}
		if _, err := os.Stat(last); err != nil {
			t.Errorf("run %v: %v", args, err)
		}
		if _, err := os.Stat(first); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("run %v wrote %s", args, first)
		}
	}
}

func TestRunErrors(t *testing.T) {
	input := writeFile(t, "drawing.svg", layeredSVG)
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"missing input", nil, nil},
		{"unknown flag", []string{"-input", input, "-nope"}, nil},
		{"bad unit", []string{"-input", input, "-unit", "ly"}, ErrInvalidConfig},
		{"missing drawing", []string{"-input", filepath.Join(t.TempDir(), "none.svg")}, ErrInputDrawing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("run succeeded, want an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("got %v, want %v", err, tt.is)
			}
		})
	}
}
