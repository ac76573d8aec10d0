package library

import "errors"

// Sentinel errors classifying domain operation outcomes. Callers match
// them with errors.Is; the wrapped message carries the offending key.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyLoaned  = errors.New("already loaned")
	ErrNoActiveLoan   = errors.New("no active loan")
	ErrInvalidDate    = errors.New("invalid date, want YYYY-MM-DD")
	ErrMemberHasLoans = errors.New("member has active loans")
)
