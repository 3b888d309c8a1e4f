package cascade

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by document operations.
var (
	ErrInvalidName       = errors.New("invalid class name")
	ErrNameTaken         = errors.New("class name already in use")
	ErrSourceNotFound    = errors.New("style source not found")
	ErrUnknownBreakpoint = errors.New("unknown breakpoint")
	ErrUnknownState      = errors.New("unknown pseudo-state")
	ErrNotInChain        = errors.New("class is not part of the chain")
	ErrInvalidKey        = errors.New("invalid style key")
)

// BlockedRemovalError is returned when a class still has dependents and
// therefore cannot be detached from a chain.
type BlockedRemovalError struct {
	ID         string
	Dependents []string
}

func (e *BlockedRemovalError) Error() string {
	n := len(e.Dependents)
	noun := "classes depend"
	if n == 1 {
		noun = "class depends"
	}
	return fmt.Sprintf("cannot remove %q: %d %s on it", e.ID, n, noun)
}
