// Package auth implements the credential and one-time-code authentication
// core: user records with hashed passwords, short-lived delivery-verified
// challenges, and the session flows built on top of them.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/autocompare/autocompare/internal/store"
)

// Method is a second-factor delivery channel.
type Method string

const (
	MethodNone  Method = "None"
	MethodEmail Method = "Email"
	MethodSMS   Method = "SMS"
)

// User is a registered account. It serializes to the users JSON document;
// field names are part of the on-disk format.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	PasswordHash    string    `json:"passwordHash"`
	RegisteredAt    time.Time `json:"registeredAt"`
	TwoFactorMethod Method    `json:"twoFactorMethod"`
	Email           string    `json:"email,omitempty"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	SearchHistory   []string  `json:"searchHistory"`
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// passwordSymbols is the fixed punctuation set a password must draw from.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.?"

const minPasswordLength = 6

// HashPassword returns the hex-encoded SHA-256 digest of password.
// Single-round unsalted SHA-256 is retained for compatibility with hashes
// already on disk; it offers no protection against offline guessing.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register validates the inputs and returns a populated User record.
// The username must be email-shaped and not already present in users
// (case-insensitively); the password must pass ValidatePassword; the
// contact must be present and well-formed for the chosen method.
//
// Register does not persist: the caller adds the record to the store.
// On any validation failure the error matches ErrValidation and nothing
// is mutated.
func Register(users *store.Store[User], username, password string, method Method, contact string) (*User, error) {
	username = strings.TrimSpace(username)
	if !emailPattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be an email address", ErrValidation)
	}
	if FindByUsername(users, username) != nil {
		return nil, fmt.Errorf("%w: username %q is already taken", ErrValidation, username)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	u := &User{
		ID:            uuid.NewString(),
		Username:      username,
		PasswordHash:  HashPassword(password),
		RegisteredAt:  time.Now().UTC(),
		SearchHistory: []string{},
	}
	if err := u.SetTwoFactor(method, contact); err != nil {
		return nil, err
	}

	return u, nil
}

// SetTwoFactor configures the second-factor channel, validating the contact
// for the chosen method. Switching to MethodNone keeps any stored contacts.
// On failure the record is unchanged; the caller persists the change.
func (u *User) SetTwoFactor(method Method, contact string) error {
	switch method {
	case MethodNone:
		// No second factor; the contact argument is ignored.
	case MethodEmail:
		if !emailPattern.MatchString(contact) {
			return fmt.Errorf("%w: a valid email address is required for email verification", ErrValidation)
		}
		u.Email = contact
	case MethodSMS:
		if !phonePattern.MatchString(contact) {
			return fmt.Errorf("%w: a valid phone number is required for SMS verification", ErrValidation)
		}
		u.PhoneNumber = contact
	default:
		return fmt.Errorf("%w: unknown verification method %q", ErrValidation, method)
	}
	u.TwoFactorMethod = method
	return nil
}

// ValidatePassword enforces the password strength rules: at least
// minPasswordLength characters with one uppercase letter, one lowercase
// letter, one digit, and one character from passwordSymbols.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	switch {
	case !upper:
		return fmt.Errorf("%w: password needs an uppercase letter", ErrValidation)
	case !lower:
		return fmt.Errorf("%w: password needs a lowercase letter", ErrValidation)
	case !digit:
		return fmt.Errorf("%w: password needs a digit", ErrValidation)
	case !symbol:
		return fmt.Errorf("%w: password needs one of %s", ErrValidation, passwordSymbols)
	}
	return nil
}

// FindByUsername returns the stored user with the given username under
// case-insensitive comparison, or nil.
func FindByUsername(users *store.Store[User], username string) *User {
	return users.Find(func(u *User) bool {
		return strings.EqualFold(u.Username, username)
	})
}

// CheckPassword reports whether entered hashes to the stored digest.
// The comparison is plain string equality, not constant-time.
func (u *User) CheckPassword(entered string) bool {
	return HashPassword(entered) == u.PasswordHash
}

// ResetPassword re-runs the strength check and replaces the stored hash.
// The caller must persist the change. On failure the record is unchanged.
func (u *User) ResetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	u.PasswordHash = HashPassword(newPassword)
	return nil
}

// DeleteAccount removes the user from the store and reports whether a
// removal occurred.
func (u *User) DeleteAccount(ctx context.Context, users *store.Store[User]) bool {
	return users.Remove(ctx, *u)
}

// ContactFor returns the destination configured for the given channel,
// or "" when none is set.
func (u *User) ContactFor(method Method) string {
	switch method {
	case MethodEmail:
		return u.Email
	case MethodSMS:
		return u.PhoneNumber
	}
	return ""
}

// RecordSearch appends term to the user's search history and writes the
// store through to disk. The receiver must point into the store.
func (u *User) RecordSearch(ctx context.Context, users *store.Store[User], term string) {
	u.SearchHistory = append(u.SearchHistory, term)
	users.Save(ctx)
}

// ClearSearchHistory empties the user's search history and persists the
// store. The receiver must point into the store.
func (u *User) ClearSearchHistory(ctx context.Context, users *store.Store[User]) {
	u.SearchHistory = []string{}
	users.Save(ctx)
}
