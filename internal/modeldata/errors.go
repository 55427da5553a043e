package modeldata

import (
	"errors"
	"fmt"
)

// ErrDataIntegrity reports a model table that violates its own invariants:
// a missing default, a bond pointing outside its atom list and so on.
var ErrDataIntegrity = errors.New("modeldata: data integrity violation")

// IntegrityError locates an integrity violation.
type IntegrityError struct {
	Table  string
	Key    string
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s: %s", ErrDataIntegrity, e.Table, e.Reason)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", ErrDataIntegrity, e.Table, e.Key, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrDataIntegrity
}

func integrity(table, key, format string, args ...any) error {
	return &IntegrityError{Table: table, Key: key, Reason: fmt.Sprintf(format, args...)}
}
