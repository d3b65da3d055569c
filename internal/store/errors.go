package store

import (
	"errors"
	"fmt"
)

// DuplicateNameError reports a save attempt with a name that already exists.
// The stored collection is left untouched.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("formula %q already exists", e.Name)
}

// NotFoundError reports a read or delete of a formula that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("formula %q not found", e.Name)
}

// IsDuplicateName returns true if err is (or wraps) a DuplicateNameError.
func IsDuplicateName(err error) bool {
	var de *DuplicateNameError
	return errors.As(err, &de)
}

// IsNotFound returns true if err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
