package app

import "errors"

// ErrInvalidInstances marks a run in which at least one instance failed
// validation. The report has already been written when it is returned; it
// exists to drive the process exit code.
var ErrInvalidInstances = errors.New("one or more instances are invalid")

// WatchStdinError is returned when watch mode is requested without
// concrete files to watch.
type WatchStdinError struct{}

func (e *WatchStdinError) Error() string {
	return "watch mode requires schema and instance files, not standard input"
}

// StdinConflictError is returned when the schema and the instances would
// both be read from standard input.
type StdinConflictError struct{}

func (e *StdinConflictError) Error() string {
	return "schema and instances cannot both be read from standard input"
}
