package cpm

import "errors"

var (
	ErrEmptyNetwork          = errors.New("network has no activities")
	ErrInvalidDesignation    = errors.New("invalid root or terminal designation")
	ErrIncompletePropagation = errors.New("incomplete propagation")
	ErrNoCriticalPath        = errors.New("no critical path found")
)
