package app

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by App for a rejected request wraps exactly one of them,
// so callers can classify it with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

// Error is a rejected request: a category plus a human readable reason.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func newErrorf(kind error, format string, args ...any) *Error {
	return newError(kind, fmt.Sprintf(format, args...))
}

// Predefined errors for rejected requests.
var (
	// ErrMissingUsernameOrPassword indicates that either the username or password is not provided.
	ErrMissingUsernameOrPassword = newError(ErrBadRequest, "missing username or password")

	ErrUserNotFound          = newError(ErrNotFound, "user not found")
	ErrItemNotFound          = newError(ErrNotFound, "item not found")
	ErrRequestedItemNotFound = newError(ErrNotFound, "requested item not found")
	ErrOfferedItemNotFound   = newError(ErrNotFound, "offered item not found")
	ErrSwapNotFound          = newError(ErrNotFound, "swap not found")

	ErrItemNotAvailable        = newError(ErrConflict, "item is not available for swap")
	ErrOwnItem                 = newError(ErrConflict, "cannot swap your own item")
	ErrOfferedItemNotAvailable = newError(ErrConflict, "offered item is not available")
	ErrInsufficientPoints      = newError(ErrConflict, "insufficient points")
	ErrDuplicateRequest        = newError(ErrConflict, "swap request already exists for this item")
	ErrSwapStateChanged        = newError(ErrConflict, "swap was modified concurrently, reload and retry")
	ErrItemNotPending          = newError(ErrConflict, "item is not pending approval")

	ErrOfferedItemRequired = newError(ErrBadRequest, "item offered is required for direct swap")
	ErrInvalidPoints       = newError(ErrBadRequest, "valid points value is required")

	ErrOfferedItemNotOwned    = newError(ErrForbidden, "you can only offer your own items")
	ErrNotSwapParty           = newError(ErrForbidden, "not authorized to update this swap")
	ErrNotSwapViewer          = newError(ErrForbidden, "not authorized to view this swap")
	ErrOnlyOwnerCanAccept     = newError(ErrForbidden, "only item owner can accept swaps")
	ErrOnlyOwnerCanReject     = newError(ErrForbidden, "only item owner can reject swaps")
	ErrOnlyOwnerCanComplete   = newError(ErrForbidden, "only item owner can complete swaps")
	ErrOnlyRequesterCanCancel = newError(ErrForbidden, "only requester can cancel swaps")
)
