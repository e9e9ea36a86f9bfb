package adapter

import "errors"

var (
	ErrUnauthorized = errors.New("client unauthorized")
	ErrNoSession    = errors.New("no session token set")
	ErrAuthRejected = errors.New("authentication rejected")
)
