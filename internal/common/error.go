// Package common defines shared constants and sentinel errors used across
// client and fake backend layers of Achievo. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrEmptyToken   = errors.New("empty access token")
	ErrInvalidToken = errors.New("invalid token")

	// Input validation errors.
	ErrorInvalidInput = errors.New("invalid input")
)
