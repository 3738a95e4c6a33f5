package network

import "errors"

var (
	ErrUnknownPredecessor = errors.New("unknown predecessor")
	ErrNotFound           = errors.New("activity not found")
	ErrDuplicateName      = errors.New("duplicate activity name")
	ErrEmptyName          = errors.New("activity name cannot be empty")
	ErrNegativeDuration   = errors.New("activity duration cannot be negative")
	ErrCyclicDependency   = errors.New("cyclic dependency detected")
)
