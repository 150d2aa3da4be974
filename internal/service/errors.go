package service

import "errors"

var (
	// ErrBackend wraps transport failures, timeouts and non-2xx statuses.
	ErrBackend = errors.New("backend error")

	// ErrMalformedResponse is returned when a response does not match the endpoint schema.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned when input is rejected before any request is sent.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidToken is returned when the stored bearer token cannot be used.
	ErrInvalidToken = errors.New("invalid token.json")

	// ErrSuperseded is returned when a newer action on the same entity cancelled this one.
	ErrSuperseded = errors.New("superseded by a newer action")
)
