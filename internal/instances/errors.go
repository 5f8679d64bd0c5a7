package instances

import "fmt"

type BadPatternError struct {
	Pattern string
	Wrapped error
}

func (e *BadPatternError) Error() string {
	return fmt.Sprintf("invalid instance pattern %q: %v", e.Pattern, e.Wrapped)
}

type NoMatchError struct {
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("instance pattern %q matches no files", e.Pattern)
}

type DecodeError struct {
	Path    string
	Index   int
	Wrapped error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: instance %d is not valid JSON: %v", e.Path, e.Index, e.Wrapped)
}
