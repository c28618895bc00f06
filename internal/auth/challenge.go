package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/autocompare/autocompare/internal/logging"
)

// DefaultCodeLength is the number of digits in a one-time code unless the
// caller asks for another length.
const DefaultCodeLength = 6

// CodeGenerator produces the plaintext one-time codes.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// Notifier delivers a plaintext one-time code to a destination over the
// given channel. Implementations live outside the auth core.
type Notifier interface {
	Deliver(ctx context.Context, channel Method, destination, code string) error
}

// NumericGenerator generates uniformly-random numeric strings. Each digit
// is a crypto/rand byte reduced modulo 10.
type NumericGenerator struct{}

func (NumericGenerator) Generate(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = '0' + b[i]%10
	}
	return string(b), nil
}

// Challenge issues and verifies a short-lived hashed numeric code bound to
// a delivery channel. It is single-use: any Verify call, whatever its
// outcome, clears the pending state.
//
// Only the SHA-256 digest of the code and its expiry survive issuance; the
// plaintext code goes to the Notifier and is never logged or persisted.
type Challenge struct {
	gen      CodeGenerator
	notifier Notifier
	log      logging.Logger

	// now is a seam for expiry tests.
	now func() time.Time

	codeHash  string
	expiresAt time.Time
	pending   bool
}

// NewChallenge returns an idle Challenge using the given generator and
// notifier.
func NewChallenge(gen CodeGenerator, notifier Notifier, log logging.Logger) *Challenge {
	return &Challenge{gen: gen, notifier: notifier, log: log, now: time.Now}
}

// Issue generates a code of length digits, hands the plaintext to the
// notifier for delivery over the user's configured channel, and retains
// only its hash and expiry.
//
// It fails with ErrNoContact before any delivery attempt when the user has
// no destination for the channel, and with ErrDeliveryFailed when the
// notifier reports a transport error; in both cases no challenge is left
// pending.
func (c *Challenge) Issue(ctx context.Context, user *User, validity time.Duration, length int) error {
	c.clear()

	dest := user.ContactFor(user.TwoFactorMethod)
	if user.TwoFactorMethod == MethodNone || dest == "" {
		return fmt.Errorf("%w: %s", ErrNoContact, user.TwoFactorMethod)
	}

	code, err := c.gen.Generate(length)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if err := c.notifier.Deliver(ctx, user.TwoFactorMethod, dest, code); err != nil {
		c.log.Error(ctx, "code delivery failed",
			"username", user.Username, "channel", user.TwoFactorMethod, "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	c.codeHash = HashPassword(code)
	c.expiresAt = c.now().Add(validity)
	c.pending = true
	c.log.Info(ctx, "one-time code issued",
		"username", user.Username, "channel", user.TwoFactorMethod, "expires_at", c.expiresAt)
	return nil
}

// Verify compares entered against the pending code. It returns false when
// no challenge is pending or the challenge has expired. The pending state
// is cleared regardless of the outcome; a second Verify without a new
// Issue always returns false.
func (c *Challenge) Verify(entered string) bool {
	defer c.clear()

	if !c.pending || c.now().After(c.expiresAt) {
		return false
	}
	return HashPassword(entered) == c.codeHash
}

func (c *Challenge) clear() {
	c.codeHash = ""
	c.expiresAt = time.Time{}
	c.pending = false
}
