package allocationerrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every rejection surfaced to a client unwraps to exactly one of these.
var (
	ErrValidation          = errors.New("validation error")
	ErrPolicyViolation     = errors.New("policy violation")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrTransientFailure    = errors.New("transient store failure")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrRateLimited         = errors.New("rate limit exceeded")
)

// Reason is a short machine-checkable code carried with a rejection
type Reason string

const (
	ReasonInvalidInput        Reason = "invalid_input"
	ReasonCycleNotOpen        Reason = "cycle_not_open"
	ReasonInvalidQuantity     Reason = "invalid_quantity"
	ReasonItemNotFound        Reason = "item_not_found"
	ReasonCycleNotFound       Reason = "cycle_not_found"
	ReasonMixedCycle          Reason = "mixed_cycle"
	ReasonItemCapExceeded     Reason = "item_cap_exceeded"
	ReasonStockUnavailable    Reason = "stock_unavailable"
	ReasonCycleCapExceeded    Reason = "cycle_cap_exceeded"
	ReasonDuplicateRequest    Reason = "duplicate_request"
	ReasonTransientFailure    Reason = "transient_failure"
	ReasonInvalidTransition   Reason = "invalid_transition"
	ReasonCycleNotDraft       Reason = "cycle_not_draft"
	ReasonItemHasBids         Reason = "item_has_bids"
	ReasonTotalBelowAllocated Reason = "total_below_allocated"
	ReasonResultsUnavailable  Reason = "results_unavailable"
	ReasonRateLimited         Reason = "rate_limited"
)

// Error is a classified rejection with a reason code and a human-readable message
type Error struct {
	Kind    error
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New creates a classified error
func New(kind error, reason Reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

// Newf creates a classified error with a formatted message
func Newf(kind error, reason Reason, format string, args ...any) *Error {
	return New(kind, reason, fmt.Sprintf(format, args...))
}

// Validation is shorthand for an ErrValidation with ReasonInvalidInput
func Validation(message string) *Error {
	return New(ErrValidation, ReasonInvalidInput, message)
}

// ReasonOf returns the reason code of the first classified error in the chain, or "" if none
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// MessageOf returns the human-readable message of the first classified error in the chain
func MessageOf(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
