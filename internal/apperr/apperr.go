// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error taxonomy shared by the record store,
// engagement counter, API client and HTTP handlers. Every failure is handled
// at the boundary where it occurs and degraded to a safe default; these types
// let that boundary tell the failure classes apart with errors.As.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when a shared-secret admin token does not match.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned when a record with the requested id does not exist.
var ErrNotFound = errors.New("not found")

// FetchError reports a failed read: the backend was unreachable or answered
// with a non-success status.
type FetchError struct {
	Resource string
	Status   int // HTTP status, 0 when no response was received
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed create, update, delete or vote.
type WriteError struct {
	Op       string // "create", "update", "delete", "vote"
	Resource string
	Status   int
	Err      error
}

func (e *WriteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Resource, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ParseError reports malformed stored data (JSON array fields, dates).
// Callers recover from it with a fallback value instead of propagating.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries a user-facing message for a rejected write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	var (
		ve *ValidationError
		pe *ParseError
		fe *FetchError
		we *WriteError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pe):
		return http.StatusBadRequest
	case errors.As(err, &fe):
		return http.StatusBadGateway
	case errors.As(err, &we):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
