package curri

import (
	"errors"
	"fmt"
)

// ErrDanglingState is wrapped by every DanglingStateError.
var ErrDanglingState = errors.New("dangling state reference")

// Role identifies which end of an edge failed to resolve.
type Role string

const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// DanglingStateError reports an edge selected during dispatch whose source or
// target state was never registered.
type DanglingStateError struct {
	Event string
	State string
	Role  Role
}

func (e *DanglingStateError) Error() string {
	return fmt.Sprintf("event '%s': %s state '%s' is not registered", e.Event, e.Role, e.State)
}

func (e *DanglingStateError) Unwrap() error {
	return ErrDanglingState
}

func newDanglingStateError(event, state string, role Role) *DanglingStateError {
	return &DanglingStateError{
		Event: event,
		State: state,
		Role:  role,
	}
}

// IsDanglingStateError reports whether err is or wraps a DanglingStateError.
func IsDanglingStateError(err error) bool {
	var e *DanglingStateError
	return errors.As(err, &e)
}
