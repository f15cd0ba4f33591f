package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrSessionNotFound = errors.New("session not found")
)

// ReferralConflictError is the distinguished business error the backend
// returns for an invalid referral code. It carries the backend's details
// string and triggers the retry-without-referral recovery path.
type ReferralConflictError struct {
	Details string
}

func (e *ReferralConflictError) Error() string {
	return fmt.Sprintf("invalid referral: %s", e.Details)
}
