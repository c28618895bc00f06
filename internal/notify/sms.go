package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender posts one-time codes to a Twilio-compatible messages endpoint.
type SMSSender struct {
	accountSID string
	authToken  string
	from       string
	endpoint   string
	client     *http.Client
}

func NewSMSSender(accountSID, authToken, from, endpoint string) *SMSSender {
	return &SMSSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SMSSender) Send(ctx context.Context, destination, code string) error {
	if s.accountSID == "" || s.authToken == "" || s.from == "" {
		return fmt.Errorf("sms sender is not configured (TWILIO_SID/TWILIO_AUTH_TOKEN/TWILIO_FROM_NUMBER)")
	}

	form := url.Values{
		"To":   {destination},
		"From": {s.from},
		"Body": {"Your verification code is: " + code},
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json",
		strings.TrimRight(s.endpoint, "/"), s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
