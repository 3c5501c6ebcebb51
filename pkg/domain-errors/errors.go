// Package dErrors provides coded domain errors shared by all modules.
//
// Services return these instead of sentinel errors so handlers can translate
// failures to HTTP statuses without inspecting messages, and so tests can
// assert on the failure kind. Codes group into the taxonomy used across the
// platform: authorization, validation, capacity, state conflict and temporal
// violation. Every failure is an explicit result; nothing in the domain
// panics on bad input.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// Authorization: the caller is not allowed to perform the operation.
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"

	// Validation: malformed or out-of-range input.
	CodeValidation   Code = "validation"
	CodeInvalidInput Code = "invalid_input"
	CodeBadRequest   Code = "bad_request"

	// Lookup and state conflict. Conflict covers already-registered,
	// already-initialized and admin-already-set; NotFound covers unknown
	// registry entries. The two are deliberately distinct codes.
	CodeNotFound Code = "not_found"
	CodeConflict Code = "conflict"

	// Capacity: a bounded resource is exhausted.
	CodeQuotaExceeded      Code = "quota_exceeded"       // donor per-cycle quota
	CodeLimitExceeded      Code = "limit_exceeded"       // campaign total cap
	CodeCapacityExceeded   Code = "capacity_exceeded"    // capped ledger list
	CodeQueryLimitExceeded Code = "query_limit_exceeded" // pagination page size

	// Temporal violation: the logical clock forbids the operation.
	CodeCampaignExpired Code = "campaign_expired"
	CodeCycleNotClosed  Code = "cycle_not_closed"

	// Campaign state machine.
	CodeCampaignInactive    Code = "campaign_inactive"
	CodeInsufficientBalance Code = "insufficient_balance"
	CodeInvalidRecipient    Code = "invalid_recipient"

	// Infrastructure and invariants.
	CodeInternal           Code = "internal"
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message, preserving the cause chain.
// Wrapping nil returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// CodeOf returns the code of the outermost coded error in err's chain, or
// CodeInternal when err carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Unwrap()
	}
	return false
}

// Is is a readable alias for HasCode, used at call sites that branch on a
// single expected code.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a code to the HTTP status used by the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation, CodeInvalidInput, CodeBadRequest, CodeInvalidRecipient:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeQuotaExceeded, CodeLimitExceeded, CodeCapacityExceeded, CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case CodeQueryLimitExceeded:
		return http.StatusBadRequest
	case CodeCampaignExpired, CodeCycleNotClosed, CodeCampaignInactive:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
