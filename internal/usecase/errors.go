package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLocked                = errors.New("lineup locked")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// PreconditionError itemizes what a week is still missing before scores
// can be computed. It matches ErrPreconditionFailed under errors.Is so
// callers can branch without inspecting the list.
type PreconditionError struct {
	Missing []string
}

func (e *PreconditionError) Error() string {
	if len(e.Missing) == 0 {
		return ErrPreconditionFailed.Error()
	}
	return "precondition failed: missing " + strings.Join(e.Missing, ", ")
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}
