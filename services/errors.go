// services/errors.go - Error taxonomy surfaced by the data-access layer
package services

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTeamExists is returned when registration collides with an
	// existing team name.
	ErrTeamExists = errors.New("duplicated team: a team with that name already exists")

	// ErrInvalidLogin covers unknown name, wrong password and unknown
	// team ids alike, so callers cannot tell which one happened.
	ErrInvalidLogin = errors.New("invalid login")

	// ErrInvalidField is returned when an update targets a field outside
	// the allow-list.
	ErrInvalidField = errors.New("field is not updatable")

	// ErrInsufficientCredit is returned when a hint request would drive
	// the team's hint credit below zero.
	ErrInsufficientCredit = errors.New("insufficient hint credit")

	// ErrStoreUnavailable is returned when the database cannot be
	// reached or the operation failed for a non-business reason.
	ErrStoreUnavailable = errors.New("storage unavailable")

	// ErrTimeout is returned when an operation exceeded its statement
	// time budget.
	ErrTimeout = errors.New("storage operation timed out")
)

// storeErr classifies a raw database error into the taxonomy. Business
// errors are matched before this is called; whatever reaches here is
// either a timeout or an unavailable store.
func storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
