// Package apperr defines the typed application errors shared by services
// and handlers. Every error carries a stable machine-readable code, an HTTP
// status, and a message safe to show to clients. Internal detail (SQL text,
// driver errors) stays in the wrapped cause and is only ever logged.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an application error.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindDuplicate
	KindReference
	KindPersistence
)

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Code    string // stable machine-readable code, e.g. "NOT_FOUND"
	Message string // safe for clients
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps the error kind to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindDuplicate, KindReference:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New creates a typed error with an explicit code.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap attaches a cause to a typed error.
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, cause: cause}
}

// Convenience constructors for the common cases.

func Validation(message string) *Error {
	return New(KindValidation, "VALIDATION_ERROR", message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, "FORBIDDEN", message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, "NOT_FOUND", message)
}

func Duplicate(message string) *Error {
	return New(KindDuplicate, "DUPLICATE_ENTRY", message)
}

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromDB classifies a database error into a typed application error.
// Unique violations become DUPLICATE_ENTRY, foreign key violations become
// REFERENCE_ERROR, missing rows become NOT_FOUND, everything else is a
// generic persistence failure.
func FromDB(err error, notFoundMessage string) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return Wrap(KindNotFound, "NOT_FOUND", notFoundMessage, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Wrap(KindDuplicate, "DUPLICATE_ENTRY", "Resource already exists", err)
		case pgForeignKeyViolation:
			return Wrap(KindReference, "REFERENCE_ERROR", "Referenced resource not found", err)
		}
	}

	return Wrap(KindPersistence, "INTERNAL_ERROR", "Internal server error", err)
}

// IsDuplicate reports whether err is (or wraps) a duplicate error.
func IsDuplicate(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == KindDuplicate
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
