package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRoot is returned when tree construction finishes without any rootless
// node, which happens when the table never declares a root or every process
// ends up with a parent.
var ErrNoRoot = errors.New("no root process detected")

// ErrArtifactNotFound is returned when an artifact ID cannot be found in the store.
var ErrArtifactNotFound = errors.New("artifact not found")

// SchemaError reports required columns missing from the input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("must have %s columns defined", strings.Join(e.Missing, " and "))
}

// RelationError reports a process expression that does not split into exactly
// one parent and one child.
type RelationError struct {
	Expr     string // normalized expression
	Segments int    // number of segments produced by the split
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("process %q: expected a single parent -> child relation (got %d segments)", e.Expr, e.Segments)
}

// MalformedParameterError reports a params segment without a key=value shape.
type MalformedParameterError struct {
	Segment string
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("parameter segment %q: expected key=value", e.Segment)
}

// MultipleRootsError reports that more than one node ended up without a
// parent. Roots holds the offending names in first-seen order.
type MultipleRootsError struct {
	Roots []string
}

func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("multiple roots detected: %s", strings.Join(e.Roots, ", "))
}

// UnknownModuleError reports a module tag with no registered template.
type UnknownModuleError struct {
	Module string
	Node   string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module %q for process %q", e.Module, e.Node)
}

// MissingParameterError reports a module rendered without a parameter its
// template requires.
type MissingParameterError struct {
	Module string
	Node   string
	Key    string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("module %q on process %q: missing required parameter %q", e.Module, e.Node, e.Key)
}
