package constant

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	MalformedRequestErrMsg = "malformed request"
	NotFoundErrMsg         = "not found"
	AlreadyExistsErrMsg    = "already exists"
	VersionConflictErrMsg  = "version conflict"
)

var (
	ErrMalformedRequest = errors.New(MalformedRequestErrMsg)
	ErrNotFound         = errors.New(NotFoundErrMsg)
	ErrAlreadyExists    = errors.New(AlreadyExistsErrMsg)
	// ErrPartyNotFound is an ErrNotFound for a party inside an existing queue.
	ErrPartyNotFound    = errors.Wrap(ErrNotFound, "party")
	ErrCustomerNotFound = errors.Wrap(ErrNotFound, "customer")
	ErrBusinessNotFound = errors.Wrap(ErrNotFound, "business")
	// ErrVersionConflict means a compare-and-set lost a race. The whole
	// read-modify-write can be retried with a fresh snapshot.
	ErrVersionConflict = errors.New(VersionConflictErrMsg)
)

// StoreError wraps a failure of the persistence backend itself.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
