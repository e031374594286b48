package store

import (
	"errors"
)

// ErrNotFound indicates that an identity based lookup matched no document.
var ErrNotFound = errors.New("document not found")

// ErrInvalidQuery indicates that request query parameters could not be
// translated into a store read.
type ErrInvalidQuery struct {
	Reason string
}

func (e *ErrInvalidQuery) Error() string {
	return "invalid query: " + e.Reason
}

// IsInvalidQuery reports whether err is an ErrInvalidQuery.
func IsInvalidQuery(err error) bool {
	var e *ErrInvalidQuery
	return errors.As(err, &e)
}
