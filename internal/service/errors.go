package service

import "errors"

// Error taxonomy shared by the services. Handlers translate these to
// HTTP responses; nothing below the service boundary panics or lets a
// store error escape uncaught.
var (
	// ErrStoreUnavailable means the document store is unreachable or
	// misconfigured. Callers present a retry/error state, never crash.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrNotFound means no profile document exists for a public id.
	ErrNotFound = errors.New("profile not found")

	// ErrValidationRejected covers local input rejections such as an
	// oversized upload or a malformed PIN.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrWriteFailed means a save failed. Save failures are
	// user-visible; analytics increment failures are swallowed instead.
	ErrWriteFailed = errors.New("write failed")
)
