package group

import (
	"errors"
	"fmt"
)

// Sentinel errors for membership and lifecycle operations. Callers match them
// with errors.Is and translate them into user-facing rejection messages.
var (
	// ErrNoValidRoles indicates a role spec string that produced zero valid
	// role clauses.
	ErrNoValidRoles = errors.New("role spec has no valid clauses")

	// ErrInvalidSchedule indicates an unparseable date/time pair or a start
	// time that is not in the future.
	ErrInvalidSchedule = errors.New("invalid or past schedule")

	// ErrRoleFull indicates a join attempt on a role at capacity.
	ErrRoleFull = errors.New("role is full")

	// ErrUnknownRole indicates a join attempt on a role the group does not have.
	ErrUnknownRole = errors.New("unknown role")

	// ErrAlreadyClosed indicates a mutation attempt on a closed group.
	ErrAlreadyClosed = errors.New("group is closed")

	// ErrAlreadyStarted indicates a membership change attempted after the
	// event's start time, e.g. through a panel not yet refreshed by the sweep.
	ErrAlreadyStarted = errors.New("group has already started")

	// ErrNotCreator indicates an edit/close attempt by someone other than the
	// group creator.
	ErrNotCreator = errors.New("only the group creator may do this")

	// ErrGroupNotFound indicates a stale reference, e.g. a button for a group
	// lost after a restart. Surfaced to the user as "expired", never fatal.
	ErrGroupNotFound = errors.New("group not found")

	// ErrInvalidParticipants indicates a loot division with a non-positive
	// participant count.
	ErrInvalidParticipants = errors.New("participant count must be positive")
)

// ValidationError reports a creation or edit input that failed validation,
// carrying the offending field for user-facing messages.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
