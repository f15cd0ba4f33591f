package config

import "time"

const (
	// Backend request timeout
	RequestTimeout = 30 * time.Second

	// Link preview fetch timeout
	PreviewTimeout = 15 * time.Second

	// Delay between signup success and the console handoff, so the
	// operator can read the one-time passkey first
	SignupRedirectDelay = 2 * time.Second

	// Proof poll interval for the notification feed
	ProofPollInterval = 60 * time.Second

	// Password policy
	PasswordMinLength = 8
	PasswordSymbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// Campaigns per page
	CampaignsPerPage = 5

	// Date format used across campaign forms (no time-of-day component)
	DateLayout = "2006-01-02"
)
