package match

import (
	"errors"
	"fmt"
)

// Error kinds. Every rejection of a scoring command wraps exactly one of these.
var (
	ErrValidation           = errors.New("validation error")
	ErrIllegalTransition    = errors.New("illegal transition")
	ErrPlayerNotEligible    = errors.New("player not eligible")
	ErrRefereeRuleViolation = errors.New("referee rule violation")
	ErrNotFound             = errors.New("not found")
)

// Error is a rejected command. Reason is meant for the scorer, so keep it specific.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

func illegalf(format string, args ...any) error {
	return newError(ErrIllegalTransition, format, args...)
}

func notEligiblef(format string, args ...any) error {
	return newError(ErrPlayerNotEligible, format, args...)
}

func refereef(format string, args ...any) error {
	return newError(ErrRefereeRuleViolation, format, args...)
}

func notFoundf(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// KindName returns a stable label for err, used for metrics and API payloads.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, ErrPlayerNotEligible):
		return "player_not_eligible"
	case errors.Is(err, ErrRefereeRuleViolation):
		return "referee_rule_violation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
