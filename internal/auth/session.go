package auth

import (
	"context"
	"time"

	"github.com/autocompare/autocompare/internal/logging"
	"github.com/autocompare/autocompare/internal/store"
)

// Outcome is the terminal state of an authentication flow.
type Outcome int

const (
	// OutcomeAuthenticated means the user proved their identity.
	OutcomeAuthenticated Outcome = iota
	// OutcomeRejected means the flow failed; Result.Reason says why.
	OutcomeRejected
	// OutcomeAbandoned means the user cancelled before completing the flow.
	OutcomeAbandoned
)

// Result is the outcome of a Login or ForgotPassword flow.
type Result struct {
	Outcome Outcome
	// Reason is set for OutcomeRejected and matches one of the package
	// sentinels under errors.Is.
	Reason error
	// User is the authenticated record; set only for OutcomeAuthenticated.
	User *User
	// Token is a signed session token; set only for OutcomeAuthenticated.
	Token string
}

// Prompter supplies the interactive values a flow needs. The CLI implements
// it against the terminal; tests use scripted stubs. A false second return
// value means the user cancelled the flow.
type Prompter interface {
	// Password asks for the account password. attempt counts from 1 up
	// to max, letting the implementation show remaining tries.
	Password(attempt, max int) (string, bool)

	// Code asks for the one-time code just delivered over channel to
	// destination.
	Code(channel Method, destination string) (string, bool)

	// NewPassword asks for a replacement password. prev carries the
	// validation failure of the previous answer, nil on the first ask.
	NewPassword(prev error) (string, bool)
}

// maxPasswordAttempts bounds wrong-password retries within one login flow.
const maxPasswordAttempts = 3

// Session sequences the user store, password checks, and one-time
// challenges into the login and forgot-password flows.
type Session struct {
	users        *store.Store[User]
	challenge    *Challenge
	tokens       *TokenIssuer
	log          logging.Logger
	codeValidity time.Duration
	codeLength   int
}

func NewSession(users *store.Store[User], challenge *Challenge, tokens *TokenIssuer,
	codeValidity time.Duration, codeLength int, log logging.Logger) *Session {
	return &Session{
		users:        users,
		challenge:    challenge,
		tokens:       tokens,
		log:          log,
		codeValidity: codeValidity,
		codeLength:   codeLength,
	}
}

// Login authenticates username: up to maxPasswordAttempts password tries,
// then a second factor when the account has a channel configured. Accounts
// without a channel authenticate on the password alone.
func (s *Session) Login(ctx context.Context, username string, prompt Prompter) Result {
	user := FindByUsername(s.users, username)
	if user == nil {
		return Result{Outcome: OutcomeRejected, Reason: ErrNotFound}
	}

	passed := false
	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		password, proceed := prompt.Password(attempt, maxPasswordAttempts)
		if !proceed {
			return Result{Outcome: OutcomeAbandoned}
		}
		if user.CheckPassword(password) {
			passed = true
			break
		}
		s.log.Warn(ctx, "wrong password", "username", user.Username, "attempt", attempt)
	}
	if !passed {
		return Result{Outcome: OutcomeRejected, Reason: ErrUnauthorized}
	}

	if user.TwoFactorMethod != MethodNone {
		if res, ok := s.secondFactor(ctx, user, prompt); !ok {
			return res
		}
	}

	return s.authenticated(ctx, user)
}

// ForgotPassword resets the password of username after a successful
// one-time-code verification. Accounts without a configured channel are
// rejected: there is no out-of-band way to verify the reset.
func (s *Session) ForgotPassword(ctx context.Context, username string, prompt Prompter) Result {
	user := FindByUsername(s.users, username)
	if user == nil {
		return Result{Outcome: OutcomeRejected, Reason: ErrNotFound}
	}
	if user.TwoFactorMethod == MethodNone {
		return Result{Outcome: OutcomeRejected, Reason: ErrNoContact}
	}

	if res, ok := s.secondFactor(ctx, user, prompt); !ok {
		return res
	}

	var prev error
	for {
		newPassword, proceed := prompt.NewPassword(prev)
		if !proceed {
			return Result{Outcome: OutcomeAbandoned}
		}
		if prev = user.ResetPassword(newPassword); prev == nil {
			break
		}
	}
	s.users.Save(ctx)
	s.log.Info(ctx, "password reset", "username", user.Username)

	return s.authenticated(ctx, user)
}

// secondFactor issues a challenge over the user's channel and verifies the
// entered code. A wrong code invalidates the challenge immediately; no
// retry against the same secret.
func (s *Session) secondFactor(ctx context.Context, user *User, prompt Prompter) (Result, bool) {
	if err := s.challenge.Issue(ctx, user, s.codeValidity, s.codeLength); err != nil {
		return Result{Outcome: OutcomeRejected, Reason: err}, false
	}

	code, proceed := prompt.Code(user.TwoFactorMethod, user.ContactFor(user.TwoFactorMethod))
	if !proceed {
		return Result{Outcome: OutcomeAbandoned}, false
	}
	if !s.challenge.Verify(code) {
		s.log.Warn(ctx, "one-time code rejected", "username", user.Username)
		return Result{Outcome: OutcomeRejected, Reason: ErrUnauthorized}, false
	}
	return Result{}, true
}

func (s *Session) authenticated(ctx context.Context, user *User) Result {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		// The session is still authenticated; only token-gated features
		// (the admin console) are unavailable.
		s.log.Error(ctx, "session token generation failed", "username", user.Username, "error", err)
	}
	s.log.Info(ctx, "login successful", "username", user.Username)
	return Result{Outcome: OutcomeAuthenticated, User: user, Token: token}
}
