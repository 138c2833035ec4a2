package apperrors

import (
	"net/http"
)

// Factories and predefined values for domain errors. Repository sentinels
// (errors.New) are wrapped into these at the service boundary.

// ErrNotFound converts a repository not-found error into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a repository duplicate error into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// StorageUnavailable wraps a persistence failure. The operation is considered
// not applied; callers may retry the whole call.
func StorageUnavailable(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "storage", "Storage temporarily unavailable", http.StatusServiceUnavailable)
}

// --- Order lifecycle ---

// ErrInvalidTransition: the requested (state, role, target) triple is not in
// the transition table. Never retried automatically.
var ErrInvalidTransition = New(
	CodeInvalidStatus,
	"order",
	"Action not available in the current order state",
	http.StatusConflict,
)

// ErrNotAuthorized: the actor is not the order's bound customer/artist for the
// acting role. Treated as a caller bug or tampering, logged by the handler.
var ErrNotAuthorized = New(
	CodeForbidden,
	"order",
	"You are not a party to this order",
	http.StatusForbidden,
)

// ErrOrderClosed: the order is already terminal. Clients surface this as an
// informational message rather than an error banner.
var ErrOrderClosed = New(
	CodeInvalidOperation,
	"order",
	"Order is already closed",
	http.StatusConflict,
)

// ErrConcurrentModification: another actor changed the order between read and
// write. Safe to retry once after a refetch.
var ErrConcurrentModification = New(
	CodeConflict,
	"order",
	"Order was modified by another party, refresh and retry",
	http.StatusConflict,
)

// --- Reviews ---

var ErrNotEligible = New(
	CodeInvalidOperation,
	"review",
	"Only the customer of a completed order can leave a review",
	http.StatusBadRequest,
)

var ErrInvalidRating = New(
	CodeValidationFailed,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

var ErrEmptyComment = New(
	CodeValidationFailed,
	"review",
	"Review comment must not be empty",
	http.StatusBadRequest,
)

var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"review",
	"A review for this order already exists",
	http.StatusConflict,
)

// --- Auth & users ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)
