package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/autocompare/autocompare/internal/auth"
)

func (a *App) register(ctx context.Context) {
	// Adding a record can reallocate the store's backing slice, which would
	// strand the current user's pointer.
	if a.current != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Use 'logout' first.\n", a.current.Username)
		return
	}

	username, err := GetSimpleText(a.reader, "Choose a username (your email address)", a.out)
	if err != nil || username == "" {
		fmt.Fprintln(a.out, "Registration cancelled.")
		return
	}

	password, err := GetPassword(a.out, "Choose a password: ")
	if err != nil {
		fmt.Fprintln(a.out, "Registration cancelled.")
		return
	}

	method, contact, ok := a.askMethod()
	if !ok {
		fmt.Fprintln(a.out, "Registration cancelled.")
		return
	}

	user, err := auth.Register(a.users, username, password, method, contact)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return
	}
	a.users.Add(ctx, *user)
	a.log.Info(ctx, "user registered", "username", user.Username, "method", user.TwoFactorMethod)
	fmt.Fprintf(a.out, "Account %s created. You can now log in.\n", user.Username)
}

func (a *App) login(ctx context.Context) {
	if a.current != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Use 'logout' first.\n", a.current.Username)
		return
	}

	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil || username == "" {
		return
	}

	res := a.session.Login(ctx, username, a.prompter())
	a.finishAuth(res)
}

func (a *App) forgotPassword(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil || username == "" {
		return
	}

	res := a.session.ForgotPassword(ctx, username, a.prompter())
	if res.Outcome == auth.OutcomeAuthenticated {
		fmt.Fprintln(a.out, "Password updated.")
	}
	a.finishAuth(res)
}

// finishAuth reports the flow result to the user and, on success, makes the
// account current.
func (a *App) finishAuth(res auth.Result) {
	switch res.Outcome {
	case auth.OutcomeAuthenticated:
		a.current = res.User
		a.token = res.Token
		fmt.Fprintf(a.out, "Welcome, %s!\n", res.User.Username)
	case auth.OutcomeAbandoned:
		fmt.Fprintln(a.out, "Cancelled.")
	case auth.OutcomeRejected:
		fmt.Fprintf(a.out, "Login failed: %v\n", res.Reason)
	}
}

func (a *App) profile() {
	if !a.requireLogin() {
		return
	}
	u := a.current
	fmt.Fprintf(a.out, "Username:   %s\n", u.Username)
	fmt.Fprintf(a.out, "Registered: %s\n", u.RegisteredAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Two-factor: %s\n", u.TwoFactorMethod)
	if u.Email != "" {
		fmt.Fprintf(a.out, "Email:      %s\n", u.Email)
	}
	if u.PhoneNumber != "" {
		fmt.Fprintf(a.out, "Phone:      %s\n", u.PhoneNumber)
	}
	fmt.Fprintf(a.out, "Searches:   %d\n", len(u.SearchHistory))
}

func (a *App) twoFactor(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	fmt.Fprintf(a.out, "Current verification method: %s\n", a.current.TwoFactorMethod)
	method, contact, ok := a.askMethod()
	if !ok {
		fmt.Fprintln(a.out, "No changes made.")
		return
	}

	if err := a.current.SetTwoFactor(method, contact); err != nil {
		fmt.Fprintf(a.out, "Update failed: %v\n", err)
		return
	}
	a.users.Save(ctx)
	a.log.Info(ctx, "two-factor method changed", "username", a.current.Username, "method", method)
	fmt.Fprintf(a.out, "Verification method set to %s.\n", method)
}

func (a *App) deleteAccount(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	password, err := GetPassword(a.out, "Enter your password to confirm deletion: ")
	if err != nil || !a.current.CheckPassword(password) {
		fmt.Fprintln(a.out, "Password does not match; account kept.")
		return
	}
	if !Confirm(a.reader, "Really delete "+a.current.Username+"? This cannot be undone.", a.out) {
		fmt.Fprintln(a.out, "Account kept.")
		return
	}

	username := a.current.Username
	if a.current.DeleteAccount(ctx, a.users) {
		a.log.Info(ctx, "account deleted", "username", username)
		fmt.Fprintf(a.out, "Account %s deleted.\n", username)
	} else {
		fmt.Fprintln(a.out, "Account not found in the store.")
	}
	a.current = nil
	a.token = ""
}

// askMethod prompts for a second-factor channel and, if one is chosen, its
// destination. The third return value is false when input ends.
func (a *App) askMethod() (auth.Method, string, bool) {
	choice, err := GetSimpleText(a.reader, "Two-factor verification: none, email, or sms?", a.out)
	if err != nil {
		return auth.MethodNone, "", false
	}

	var method auth.Method
	var contactPrompt string
	switch strings.ToLower(choice) {
	case "", "none":
		return auth.MethodNone, "", true
	case "email":
		method, contactPrompt = auth.MethodEmail, "Email address for verification codes"
	case "sms":
		method, contactPrompt = auth.MethodSMS, "Phone number for verification codes (e.g. +15551234567)"
	default:
		fmt.Fprintf(a.out, "Unknown method %q, keeping 'none'.\n", choice)
		return auth.MethodNone, "", true
	}

	contact, err := GetSimpleText(a.reader, contactPrompt, a.out)
	if err != nil {
		return auth.MethodNone, "", false
	}
	return method, contact, true
}
