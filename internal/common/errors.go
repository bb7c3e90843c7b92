package common

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers translate these to HTTP
// status codes; services never see status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid request")

	// ErrStoreConflict is raised when the database rejects a write because a
	// concurrent request already inserted the same (actor, target) row. It
	// never leaves the repository layer: the uniqueness engine resolves it
	// according to its policy.
	ErrStoreConflict = errors.New("store conflict")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalid)...)
}

// HTTPStatus maps a service error to the fixed status code for its taxonomy
// member. Anything unrecognized is a 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	case errors.Is(err, ErrUnauthorized):
		return 401
	case errors.Is(err, ErrInvalid):
		return 400
	default:
		return 500
	}
}
