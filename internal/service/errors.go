package service

import "errors"

var (
	// ErrNotLoggedIn is returned when a sync pass is requested without a
	// session; the orchestrator never invokes upload or delete calls
	// unauthenticated.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrBadPayload marks a malformed inbound push payload. The message is
	// logged and dropped; there is no redelivery.
	ErrBadPayload = errors.New("malformed push payload")
)
