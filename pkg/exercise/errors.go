package exercise

import "errors"

// ErrNotFound is returned when an exercise id is not in the registry.
var ErrNotFound = errors.New("exercise: not found")
