package event

import (
	"errors"
	"fmt"
)

// ErrRejected is matched by every validation rejection.
var ErrRejected = errors.New("rejected")

// Validation errors.
var (
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyCountry        = errors.New("country cannot be empty")
	ErrInvalidBlock        = errors.New("block must be 'morning' or 'afternoon'")
	ErrInvalidTimeFormat   = errors.New("time must be in HH:MM format")
	ErrDuplicatePreference = errors.New("preferred sellers must be unique")
	ErrTooManyPreferences  = errors.New("too many preferred sellers")
	ErrDuplicateSeller     = errors.New("seller already exists")
	ErrBlockFull           = errors.New("block has reached its buyer limit")
	ErrTooManyCountries    = errors.New("block already has buyers from the maximum number of countries")
)

// Domain errors.
var (
	ErrBuyerNotFound     = errors.New("buyer not found")
	ErrSellerNotFound    = errors.New("seller not found")
	ErrUnknownCell       = errors.New("buyer or session not found")
	ErrEmptySource       = errors.New("source cell has no seller")
	ErrBlockMismatch     = errors.New("session is outside the buyer's block")
	ErrSwapBlockMismatch = errors.New("displaced seller cannot move to a slot outside the source buyer's block")
	ErrNoBuyers          = errors.New("no buyers to schedule")
)

// ValidationError is returned when an operation is refused without changing any state.
type ValidationError struct {
	Op  string
	Err error
}

// Reject wraps err as a ValidationError for operation op.
func Reject(op string, err error) error {
	return &ValidationError{Op: op, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrRejected so callers can tell rejections from other failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrRejected
}

// WarningKind classifies an allocation advisory.
type WarningKind string

const (
	WarnNoPreferences WarningKind = "no_preferences"
	WarnNoPrimary     WarningKind = "no_primary_preferences"
	WarnNoSessions    WarningKind = "no_sessions"
)

// Warning is a non-fatal advisory raised while allocating.
type Warning struct {
	Kind      WarningKind
	BuyerID   string
	BuyerName string
	Block     Block
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnNoPreferences:
		return fmt.Sprintf("buyer %s has no preferred sellers, skipped", w.BuyerName)
	case WarnNoPrimary:
		return fmt.Sprintf("buyer %s has no main preferred sellers, scheduling may not be optimal", w.BuyerName)
	case WarnNoSessions:
		return fmt.Sprintf("no sessions available for buyer %s's block (%s)", w.BuyerName, w.Block)
	default:
		return fmt.Sprintf("buyer %s: %s", w.BuyerName, w.Kind)
	}
}
