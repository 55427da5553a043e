package session

import "errors"

// ErrEnvironmentUnavailable means there is nothing to draw on: no surface,
// or a surface that cannot render.
var ErrEnvironmentUnavailable = errors.New("session: render environment unavailable")

// EnvironmentError carries the surface's reason for refusing to render.
type EnvironmentError struct {
	Reason  string
	Wrapped error
}

func (e *EnvironmentError) Error() string {
	if e.Wrapped != nil {
		return ErrEnvironmentUnavailable.Error() + ": " + e.Reason + ": " + e.Wrapped.Error()
	}
	return ErrEnvironmentUnavailable.Error() + ": " + e.Reason
}

func (e *EnvironmentError) Unwrap() []error {
	if e.Wrapped == nil {
		return []error{ErrEnvironmentUnavailable}
	}
	return []error{ErrEnvironmentUnavailable, e.Wrapped}
}
