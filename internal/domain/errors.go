package domain

import "errors"

var (
	// ErrInvalidEvent marks a malformed tracking event. Such events are
	// logged and discarded, never retried.
	ErrInvalidEvent = errors.New("invalid tracking event")

	// ErrContentNotFound is returned when a tracking event references a
	// content item that does not exist.
	ErrContentNotFound = errors.New("content item not found")

	// ErrAuthorNotFound is returned when an aggregation targets an unknown
	// author.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrCycleInProgress is returned when a payout cycle is requested while
	// another one is still running.
	ErrCycleInProgress = errors.New("payout cycle already in progress")
)
