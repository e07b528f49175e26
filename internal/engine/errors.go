package engine

import "fmt"

// EmptyBoardError indicates mask reinsertion was attempted against a board
// fragment with no child elements; insertion needs an anchor position.
// Callers can use errors.As to detect it.
type EmptyBoardError struct {
	ID string
}

// Error implements the error interface.
func (e *EmptyBoardError) Error() string {
	return fmt.Sprintf("board fragment %q has no child elements", e.ID)
}
