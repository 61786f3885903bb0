package walletdb

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of store error.
type ErrorCode int

// These constants define the possible error codes.
const (
	// ErrDatabase indicates an underlying database failure.
	ErrDatabase ErrorCode = iota

	// ErrData indicates stored data is malformed, such as a metadata
	// record with an unexpected width.
	ErrData

	// ErrNoExist indicates the requested wallet slot does not exist.
	ErrNoExist

	// ErrNeedsUpgrade indicates the store was created by a newer
	// version of this package.
	ErrNeedsUpgrade
)

var errCodeStrings = map[ErrorCode]string{
	ErrDatabase:     "ErrDatabase",
	ErrData:         "ErrData",
	ErrNoExist:      "ErrNoExist",
	ErrNeedsUpgrade: "ErrNeedsUpgrade",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// StoreError provides a single type for errors that can occur while using
// the wallet container store.
type StoreError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human-readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e StoreError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e StoreError) Unwrap() error {
	return e.Err
}

// storeError creates a StoreError given a set of arguments.
func storeError(c ErrorCode, desc string, err error) StoreError {
	return StoreError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a StoreError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var e StoreError
	return errors.As(err, &e) && e.ErrorCode == code
}
