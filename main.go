package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("brush: %v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("brush", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := DefaultConfig()
	inputFile := fs.String("input", "", "Path to the input SVG drawing")
	configFile := fs.String("config", "", "YAML file with default option values")
	verbose := fs.Bool("v", false, "Log debug details")

	fs.Float64Var(&cfg.ZUp, "z-up", cfg.ZUp, "Z height at stroke start/end")
	fs.Float64Var(&cfg.ZDown, "z-down", cfg.ZDown, "Z height during stroke (full pressure)")
	fs.BoolVar(&cfg.ZFromColor, "z-from-color", cfg.ZFromColor, "Set Z from layer color: black=z-down, white=z-up")
	fs.StringVar(&cfg.ZFromSVG, "z-from-svg", cfg.ZFromSVG, "Set Z from this reference SVG's colors at each point")
	fs.Float64Var(&cfg.SmoothDistance, "z-smooth-distance", cfg.SmoothDistance, "Distance over which Z transitions are smoothed with -z-from-svg (mm)")
	fs.Float64Var(&cfg.SearchRadius, "search-radius", cfg.SearchRadius, "Color lookup search radius (mm)")
	fs.Float64Var(&cfg.PressDistance, "press-distance", cfg.PressDistance, "Distance to press down at stroke start (mm)")
	fs.Float64Var(&cfg.LiftDistance, "lift-distance", cfg.LiftDistance, "Distance to lift up at stroke end (mm)")
	fs.Float64Var(&cfg.SegmentLength, "segment-length", cfg.SegmentLength, "Subdivision segment length (mm)")
	fs.Float64Var(&cfg.FeedRate, "feed-rate", cfg.FeedRate, "Drawing feed rate (units/min)")
	fs.StringVar(&cfg.Unit, "unit", cfg.Unit, "Output unit (mm, cm, m, in, pt, pc, px)")
	fs.Float64Var(&cfg.MergeTolerance, "merge-tolerance", cfg.MergeTolerance, "Gap (mm) under which same-row lines are merged; 0 disables merging")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output G-code file; without it the subdivided strokes are printed")
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Shorthand for -output")
	fs.Float64Var(&cfg.Quantization, "quantization", cfg.Quantization, "Chord length used to flatten input curves (mm)")
	fs.BoolVar(&cfg.Normalize, "normalize", cfg.Normalize, "Move the drawing so its bounds start at the origin")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inputFile == "" {
		fs.Usage()
		return fmt.Errorf("missing -input")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if *configFile != "" {
		fileCfg, err := LoadConfig(*configFile)
		if err != nil {
			return err
		}
		// Parse again so command line flags win over the file, in order.
		cfg = fileCfg
		if err := fs.Parse(args); err != nil {
			return err
		}
	}

	var index *ColorIndex
	if cfg.ZFromSVG != "" {
		var err error
		if index, err = LoadColorIndex(cfg.ZFromSVG); err != nil {
			return err
		}
	}

	synth, err := NewSynthesizer(cfg, index)
	if err != nil {
		return err
	}

	doc, err := LoadDocument(*inputFile, ReadOptions{
		Quantization: cfg.Quantization,
		Normalize:    cfg.Normalize,
	})
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		geom := synth.ProcessGeometry(doc)
		points := 0
		for _, l := range geom.Layers {
			for _, s := range l.Strokes {
				points += len(s)
			}
		}
		Logger().Info("subdivided geometry", "layers", len(geom.Layers), "strokes", geom.StrokeCount(), "points", points)
		if err := geom.WriteText(stdout); err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
		return nil
	}

	if err := synth.WriteGCodeFile(cfg.Output, doc); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "G-code successfully written to %s\n", cfg.Output)
	return nil
}
