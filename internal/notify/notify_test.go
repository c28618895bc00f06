package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocompare/autocompare/internal/auth"
)

type stubSender struct {
	to, code string
	err      error
	calls    int
}

func (s *stubSender) Send(_ context.Context, destination, code string) error {
	s.calls++
	s.to = destination
	s.code = code
	return s.err
}

func TestMux_RoutesByChannel(t *testing.T) {
	email := &stubSender{}
	sms := &stubSender{}
	mux := &Mux{Email: email, SMS: sms}
	ctx := context.Background()

	require.NoError(t, mux.Deliver(ctx, auth.MethodEmail, "a@b.com", "123456"))
	assert.Equal(t, "a@b.com", email.to)
	assert.Equal(t, "123456", email.code)
	assert.Zero(t, sms.calls)

	require.NoError(t, mux.Deliver(ctx, auth.MethodSMS, "+46700000000", "654321"))
	assert.Equal(t, "+46700000000", sms.to)
}

func TestMux_UnsupportedChannel(t *testing.T) {
	mux := &Mux{Email: &stubSender{}, SMS: &stubSender{}}
	err := mux.Deliver(context.Background(), auth.MethodNone, "x", "1")
	assert.Error(t, err)
}

func TestMux_PropagatesSenderError(t *testing.T) {
	email := &stubSender{err: errors.New("boom")}
	mux := &Mux{Email: email, SMS: &stubSender{}}

	err := mux.Deliver(context.Background(), auth.MethodEmail, "a@b.com", "1")
	assert.Error(t, err)
}

func TestSMTPSender_RequiresConfiguration(t *testing.T) {
	s := NewSMTPSender("smtp.example.com", 587, "", "")
	assert.Error(t, s.Send(context.Background(), "a@b.com", "123456"))
}

func TestSMTPSender_Send(t *testing.T) {
	old := sendMail
	defer func() { sendMail = old }()

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	s := NewSMTPSender("smtp.example.com", 587, "noreply@example.com", "pw")
	require.NoError(t, s.Send(context.Background(), "a@b.com", "123456"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"a@b.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Your verification code is: 123456")
}

func TestSMTPSender_TransportError(t *testing.T) {
	old := sendMail
	defer func() { sendMail = old }()
	sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	s := NewSMTPSender("smtp.example.com", 587, "noreply@example.com", "pw")
	assert.Error(t, s.Send(context.Background(), "a@b.com", "123456"))
}

func TestSMSSender_RequiresConfiguration(t *testing.T) {
	s := NewSMSSender("", "", "", "https://api.example.com")
	assert.Error(t, s.Send(context.Background(), "+46700000000", "123456"))
}

func TestSMSSender_Send(t *testing.T) {
	var gotPath, gotTo, gotBody string
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewSMSSender("AC123", "token", "+15550000000", srv.URL)
	require.NoError(t, s.Send(context.Background(), "+46700000000", "123456"))

	assert.Equal(t, "/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "token", gotPass)
	assert.Equal(t, "+46700000000", gotTo)
	assert.Contains(t, gotBody, "123456")
}

func TestSMSSender_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid number"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSMSSender("AC123", "token", "+15550000000", srv.URL)
	err := s.Send(context.Background(), "bogus", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
