package main

import "errors"

var (
	ErrReferenceDrawing = errors.New("reference drawing")
	ErrInputDrawing     = errors.New("input drawing")
	ErrOutput           = errors.New("output")
	ErrInvalidConfig    = errors.New("invalid config")
	ErrUnknownUnit      = errors.New("unknown unit")
)
