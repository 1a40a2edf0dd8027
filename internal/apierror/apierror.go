// Package apierror defines the error taxonomy shared by the API bindings and
// the domain services. Every failure surfaced to a caller is one of these
// types, so presentation code can decide between inline messages, blocking
// notices and forced logout with a single errors.As per category.
package apierror

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AuthError covers bad credentials and expired refresh tokens. It is fatal to
// the session: the auth service clears stored credentials when it sees one.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string { return e.Detail }

// ValidationError reports missing or invalid fields. Fields maps the field
// name to the violated rule.
type ValidationError struct {
	Detail string
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Detail }

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ConflictError signals an operation that collides with remote state, e.g.
// opening a cash turn while another one is active.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

// InsufficientBalanceError rejects a cash-out that would drive the turn
// balance negative. The movement is never submitted.
type InsufficientBalanceError struct {
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("el monto de salida %s excede el saldo en caja %s",
		e.Requested.StringFixed(2), e.Balance.StringFixed(2))
}

// NotFoundError represents an expected empty state (no active turn, no prior
// report), not a failure banner.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " no encontrado" }

// NetworkError wraps transport-level failures that survived the retry budget.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: error de red: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is any other non-2xx application response. Never retried.
type RemoteError struct {
	Op     string
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: el servidor respondio %d: %s", e.Op, e.Status, e.Detail)
}

// FromStatus maps an HTTP status to the taxonomy. detail is the backend's
// "detail" message when present.
func FromStatus(op string, status int, detail string) error {
	if detail == "" {
		detail = "sin detalle"
	}
	switch status {
	case 400, 422:
		return &ValidationError{Detail: detail, Fields: map[string]string{}}
	case 401, 403:
		return &AuthError{Detail: detail}
	case 404:
		return &NotFoundError{Resource: detail}
	case 409:
		return &ConflictError{Detail: detail}
	default:
		return &RemoteError{Op: op, Status: status, Detail: detail}
	}
}
