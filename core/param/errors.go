package param

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch reports a missing table, or a table whose rank or
	// shape does not match what its name requires.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrIndexOutOfRange reports a lookup outside a table's extent.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// ShapeError carries the offending table name and shapes.
type ShapeError struct {
	Name   string
	Reason string
	Got    []int
	Want   []int
}

func (e *ShapeError) Error() string {
	switch {
	case e.Got == nil && e.Want == nil:
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Reason, ErrShapeMismatch)
	case e.Want == nil:
		return fmt.Sprintf("%s: %s (shape %v): %v", e.Name, e.Reason, e.Got, ErrShapeMismatch)
	default:
		return fmt.Sprintf("%s: %s (got %v, want %v): %v", e.Name, e.Reason, e.Got, e.Want, ErrShapeMismatch)
	}
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// IndexError carries the table, index tuple and shape of a failed lookup.
type IndexError struct {
	Name  string
	Index []int
	Shape []int
}

func (e *IndexError) Error() string {
	name := e.Name
	if name == "" {
		name = "table"
	}
	if e.Shape == nil {
		return fmt.Sprintf("%s%v: %v", name, e.Index, ErrIndexOutOfRange)
	}
	return fmt.Sprintf("%s%v outside shape %v: %v", name, e.Index, e.Shape, ErrIndexOutOfRange)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
