// Package notify contains the delivery channels for one-time codes: an
// SMTP sender for email and an HTTP sender for a Twilio-compatible SMS
// gateway. A Mux routes each code to the transport matching the channel.
//
// Senders report transport failures as plain errors; the auth core decides
// what a failed delivery means for the flow. No retries happen here.
package notify

import (
	"context"
	"fmt"

	"github.com/autocompare/autocompare/internal/auth"
)

// Sender delivers a one-time code to a single destination.
type Sender interface {
	Send(ctx context.Context, destination, code string) error
}

// Mux satisfies the auth core's Notifier by dispatching on the channel.
type Mux struct {
	Email Sender
	SMS   Sender
}

func (m *Mux) Deliver(ctx context.Context, channel auth.Method, destination, code string) error {
	switch channel {
	case auth.MethodEmail:
		return m.Email.Send(ctx, destination, code)
	case auth.MethodSMS:
		return m.SMS.Send(ctx, destination, code)
	default:
		return fmt.Errorf("unsupported delivery channel %q", channel)
	}
}
