package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// sendMail is a test seam for smtp.SendMail.
var sendMail = smtp.SendMail

// SMTPSender emails one-time codes through a plain-auth SMTP relay.
// The send blocks until the relay accepts or refuses the message; only the
// transport's own timeouts apply.
type SMTPSender struct {
	host     string
	port     int
	from     string
	password string
}

func NewSMTPSender(host string, port int, from, password string) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, password: password}
}

func (s *SMTPSender) Send(_ context.Context, destination, code string) error {
	if s.from == "" || s.password == "" {
		return fmt.Errorf("smtp sender is not configured (SMTP_EMAIL/SMTP_PASSWORD)")
	}

	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + destination + "\r\n" +
		"Subject: AutoCompare verification code\r\n" +
		"\r\n" +
		"Hello!\r\n\r\n" +
		"Your verification code is: " + code + "\r\n\r\n" +
		"If you did not request a code, you can ignore this email.\r\n\r\n" +
		"- AutoCompare\r\n")

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	a := smtp.PlainAuth("", s.from, s.password, s.host)
	if err := sendMail(addr, a, s.from, []string{destination}, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
