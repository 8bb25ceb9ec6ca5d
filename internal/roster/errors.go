package roster

import (
	"errors"
	"fmt"
)

var (
	ErrMissingStableID = errors.New("participant has no stable id")
	ErrAmbiguousID     = errors.New("stable id shared by several participants")
	ErrUnmappedLocalID = errors.New("event-local id has no stable id mapping")
	ErrUnregisteredID  = errors.New("stable id not in archer registry")
	ErrMissingResult   = errors.New("archer has no result for tournament")
)

// IdentifierResolutionError is returned when an event-local id cannot be
// tied to exactly one stable archer id.
type IdentifierResolutionError struct {
	EventID  int
	LocalID  string
	StableID string
	Err      error
}

func (e *IdentifierResolutionError) Error() string {
	return fmt.Sprintf("event %d: archer %q (stable id %q): %v", e.EventID, e.LocalID, e.StableID, e.Err)
}

func (e *IdentifierResolutionError) Unwrap() error {
	return e.Err
}

// RegistryConsistencyError means a tournament view referenced an archer the
// registry does not hold. The registry must be complete before assembly.
type RegistryConsistencyError struct {
	TournamentID string
	Category     string
	StableID     string
	Err          error
}

func (e *RegistryConsistencyError) Error() string {
	return fmt.Sprintf("tournament %s category %q: archer %q: %v", e.TournamentID, e.Category, e.StableID, e.Err)
}

func (e *RegistryConsistencyError) Unwrap() error {
	return e.Err
}
