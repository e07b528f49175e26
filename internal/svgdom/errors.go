package svgdom

import "fmt"

// NotFoundError indicates an identifier or tag lookup yielded zero matches
// where at least one was required. Callers can use errors.As to detect it.
type NotFoundError struct {
	ID  string
	Tag string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("element with id %q not found", e.ID)
	}
	return fmt.Sprintf("no %q elements found", e.Tag)
}

// NamespaceError indicates a lookup referenced a namespace alias the
// document never declared.
type NamespaceError struct {
	Alias string
}

// Error implements the error interface.
func (e *NamespaceError) Error() string {
	return fmt.Sprintf("namespace alias %q is not declared", e.Alias)
}
