package loader

import (
	"errors"
	"fmt"
	"io"
)

// Location is a line in a program description file.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.Line <= 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// LoadError is a problem found at a specific location.
type LoadError struct {
	Loc Location
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%s: %v", e.Loc, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

type ErrorCollector struct {
	// Errors for this file
	Errors []error

	// Max errors to keep; later ones are dropped.
	// 0 => no limit
	MaxErrors int
}

func (c *ErrorCollector) HasErrors() bool {
	return len(c.Errors) > 0
}

// Full reports whether MaxErrors has been reached.
func (c *ErrorCollector) Full() bool {
	return c.MaxErrors > 0 && len(c.Errors) >= c.MaxErrors
}

func (c *ErrorCollector) PrintErrors(w io.Writer) {
	for _, err := range c.Errors {
		fmt.Fprintln(w, err)
	}
}

func (c *ErrorCollector) AddErrors(errs ...error) {
	for _, err := range errs {
		if c.Full() {
			return
		}
		c.Errors = append(c.Errors, err)
	}
}

// Errorf records a located error. The format may use %w. It always returns
// false so callers can `return c.Errorf(...)` from validity checks.
func (c *ErrorCollector) Errorf(loc Location, format string, args ...any) bool {
	c.AddErrors(&LoadError{Loc: loc, Err: fmt.Errorf(format, args...)})
	return false
}

// Err joins all collected errors, or returns nil.
func (c *ErrorCollector) Err() error {
	return errors.Join(c.Errors...)
}
