package wallet

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of wallet serialization error.
type ErrorCode int

// These constants define the possible error codes.
const (
	// ErrWrongPassphrase indicates the supplied passphrase does not
	// decrypt the container: either the decrypted bytes fail to decode
	// as key material, or the recovered key pairs are mathematically
	// inconsistent.  This is an expected user-facing outcome, not a
	// defect.
	ErrWrongPassphrase ErrorCode = iota

	// ErrMalformedContainer indicates the outer envelope could not be
	// parsed before any decryption was attempted, such as a truncated
	// stream or a garbled field.
	ErrMalformedContainer

	// ErrIO indicates the underlying byte source or sink failed.
	ErrIO

	// ErrData indicates the decrypted payload failed to decode after
	// the passphrase had already been verified, which points at
	// corruption rather than a wrong passphrase.
	ErrData

	// ErrCrypto indicates a failure in a cryptographic primitive, such
	// as the system entropy source running dry.
	ErrCrypto
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errCodeStrings = map[ErrorCode]string{
	ErrWrongPassphrase:    "ErrWrongPassphrase",
	ErrMalformedContainer: "ErrMalformedContainer",
	ErrIO:                 "ErrIO",
	ErrData:               "ErrData",
	ErrCrypto:             "ErrCrypto",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s, ok := errCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// WalletError provides a single type for errors that can occur while
// saving or loading a wallet container.  The ErrorCode field categorizes
// the error so callers can react to a wrong passphrase differently from a
// corrupt file or a failing disk.
type WalletError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human-readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e WalletError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e WalletError) Unwrap() error {
	return e.Err
}

// walletError creates a WalletError given a set of arguments.
func walletError(c ErrorCode, desc string, err error) WalletError {
	return WalletError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a WalletError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var e WalletError
	return errors.As(err, &e) && e.ErrorCode == code
}
