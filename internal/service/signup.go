package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/recycleflux/adminbot/internal/api"
	"github.com/recycleflux/adminbot/internal/config"
	"github.com/recycleflux/adminbot/internal/domain"
)

var validate = validator.New()

type SignupState int

const (
	StateIdle SignupState = iota
	StateSubmitting
	StateSuccess
	StateFailure
	StateReferralConflict
)

// ReferralStatus is what the operator sees about their referral code
// after the flow settles.
type ReferralStatus struct {
	Valid   bool
	Message string
}

// SignupForm collects the account fields. ReferralLocked is set when
// the code arrived via a deep link: manual entry is hidden then, but
// the code still travels in the payload.
type SignupForm struct {
	Username        string `validate:"required"`
	FullName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string
	ConfirmPassword string
	ReferralCode    string
	ReferralLocked  bool
}

type sessionSaver interface {
	Save(ctx context.Context, sess *domain.Session) error
}

// SignupFlow is the one-shot account creation state machine:
// idle → submitting → {success, failure, referral-conflict}. A referral
// conflict offers an interactive recovery: resubmit without the code,
// or abandon the referral as a non-fatal warning. Like the rest of the
// console state it is only touched from the chat's update handlers.
type SignupFlow struct {
	api      *api.Client
	sessions sessionSaver

	state    SignupState
	Form     SignupForm
	Referral *ReferralStatus
	Result   *api.SignupResponse

	conflictDetails string
}

func NewSignupFlow(apiClient *api.Client, sessions sessionSaver) *SignupFlow {
	return &SignupFlow{api: apiClient, sessions: sessions}
}

func (f *SignupFlow) State() SignupState {
	return f.state
}

// Validate runs the local checks that gate submission. Returns the
// list of problems, empty when the form may be submitted.
func (f *SignupFlow) Validate() []string {
	var problems []string

	if err := validate.Struct(&f.Form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Username":
					problems = append(problems, "Username is required")
				case "FullName":
					problems = append(problems, "Full name is required")
				case "Email":
					problems = append(problems, "Enter a valid email address")
				}
			}
		} else {
			problems = append(problems, "Invalid form")
		}
	}

	problems = append(problems, passwordProblems(f.Form.Password)...)
	if f.Form.Password != f.Form.ConfirmPassword {
		problems = append(problems, "Passwords do not match")
	}
	return problems
}

// passwordProblems applies the composite strength rule: minimum length,
// a letter, a digit and a symbol from the fixed punctuation set.
func passwordProblems(password string) []string {
	var problems []string
	if len(password) < config.PasswordMinLength {
		problems = append(problems, "Password must be at least 8 characters")
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(config.PasswordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLetter {
		problems = append(problems, "Password must contain a letter")
	}
	if !hasDigit {
		problems = append(problems, "Password must contain a digit")
	}
	if !hasSymbol {
		problems = append(problems, "Password must contain a symbol")
	}
	return problems
}

// Submit validates and sends the signup. On success the returned token,
// passkey and profile are persisted into the operator session. A
// referral conflict parks the flow for the interactive recovery; any
// other backend error is terminal for this attempt.
func (f *SignupFlow) Submit(ctx context.Context, chatID int64, darkMode bool) error {
	if problems := f.Validate(); len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}

	f.state = StateSubmitting
	resp, err := f.api.Signup(ctx, api.SignupRequest{
		Username:     f.Form.Username,
		Email:        f.Form.Email,
		FullName:     f.Form.FullName,
		Password:     f.Form.Password,
		ReferralCode: f.Form.ReferralCode,
	})
	if err != nil {
		var conflict *domain.ReferralConflictError
		if errors.As(err, &conflict) {
			f.state = StateReferralConflict
			f.conflictDetails = conflict.Details
			return err
		}
		f.state = StateFailure
		return err
	}

	f.state = StateSuccess
	f.Result = resp
	if f.Form.ReferralCode != "" {
		f.Referral = &ReferralStatus{Valid: resp.ReferralApplied}
	}

	isAdmin := false
	if claims, err := PeekClaims(resp.Token); err == nil {
		isAdmin = claims.IsAdmin
	}
	sess := &domain.Session{
		ChatID:   chatID,
		Token:    resp.Token,
		IsAdmin:  isAdmin,
		Profile:  &resp.User,
		Passkey:  resp.Passkey,
		DarkMode: darkMode,
	}
	if err := f.sessions.Save(ctx, sess); err != nil {
		return err
	}
	return nil
}

// RetryWithoutReferral re-enters submitting with the reduced payload.
func (f *SignupFlow) RetryWithoutReferral(ctx context.Context, chatID int64, darkMode bool) error {
	if f.state != StateReferralConflict {
		return errors.New("no referral conflict to retry")
	}
	f.Form.ReferralCode = ""
	f.Form.ReferralLocked = false
	f.state = StateIdle
	return f.Submit(ctx, chatID, darkMode)
}

// DeclineReferral abandons the signup attempt, surfacing the backend's
// details as a non-fatal warning. No second request is sent.
func (f *SignupFlow) DeclineReferral() *ReferralStatus {
	if f.state != StateReferralConflict {
		return f.Referral
	}
	f.Referral = &ReferralStatus{Valid: false, Message: f.conflictDetails}
	f.state = StateFailure
	return f.Referral
}

// ValidationError aggregates the inline form problems; nothing was sent
// to the backend.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}
