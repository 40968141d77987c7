// Package fault - error instances
//
// Provides a single instance of each ledger error so callers can compare
// with errors.Is or classify with the IsErr* helpers instead of matching
// strings.
package fault

import "errors"

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAssetNotFound           = NotFoundError("asset not found")
	ErrAssetNotHeld            = InvalidError("asset not in wallet")
	ErrDuplicateHolding        = ExistsError("asset already in wallet")
	ErrInvalidAssetValue       = InvalidError("asset value must be a non-negative number")
	ErrInvalidComplianceStatus = InvalidError("invalid compliance status")
	ErrInvalidTimestamps       = InvalidError("updated_at is before created_at")
	ErrInvalidWalletType       = InvalidError("invalid wallet type")
	ErrLockFailure             = ProcessError("ledger lock poisoned")
	ErrMissingAssetType        = InvalidError("asset type is required")
	ErrWalletNotFound          = NotFoundError("wallet not found")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error, looking through wrapping
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
