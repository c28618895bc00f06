package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocompare/autocompare/internal/ai"
	"github.com/autocompare/autocompare/internal/auth"
	"github.com/autocompare/autocompare/internal/cars"
	"github.com/autocompare/autocompare/internal/config"
	"github.com/autocompare/autocompare/internal/logging"
	"github.com/autocompare/autocompare/internal/notify"
	"github.com/autocompare/autocompare/internal/store"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp builds an App over temp-file stores reading the scripted input
// and writing to the returned buffer.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.UsersFile = filepath.Join(dir, "users.json")
	cfg.CarsFile = filepath.Join(dir, "cars.json")
	cfg.LogFile = filepath.Join(dir, "autocompare.log")

	log := discardLogger()
	users := store.New[auth.User](cfg.UsersFile, log)
	carStore := store.New[cars.Car](cfg.CarsFile, log)
	challenge := auth.NewChallenge(auth.NumericGenerator{}, &notify.Mux{}, log)
	tokens := auth.NewTokenIssuer([]byte(cfg.SessionSecret), cfg.SessionValidity)
	session := auth.NewSession(users, challenge, tokens, cfg.CodeValidity, cfg.CodeLength, log)

	out := &bytes.Buffer{}
	return &App{
		cfg:     cfg,
		log:     log,
		users:   users,
		cars:    carStore,
		session: session,
		tokens:  tokens,
		source:  cars.NewDummySource(),
		advisor: ai.NewAdvisor(ai.NewClient("http://127.0.0.1:0", "", "test")),
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     out,
	}, out
}

func seedUser(t *testing.T, app *App, username, password string) {
	t.Helper()
	user, err := auth.Register(app.users, username, password, auth.MethodNone, "")
	require.NoError(t, err)
	app.users.Add(context.Background(), *user)
}

func TestRun_RegisterThenLogin(t *testing.T) {
	script := strings.Join([]string{
		"register",
		"alice@example.com",
		"none",
		"login",
		"alice@example.com",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	stubPasswords(t, "Abc123!", "Abc123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Account alice@example.com created")
	assert.Contains(t, out.String(), "Welcome, alice@example.com!")

	data, err := os.ReadFile(app.cfg.UsersFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice@example.com")
}

func TestRun_LoginRejectsWrongPassword(t *testing.T) {
	script := "login\nalice@example.com\nexit\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "wrong1!A", "wrong2!A", "wrong3!A")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Login failed")
	assert.Nil(t, app.current)
}

func TestRun_SearchRecordsHistory(t *testing.T) {
	script := strings.Join([]string{
		"login",
		"alice@example.com",
		"search AB-123-CD",
		"history",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "Abc123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Registration:     AB-123-CD")
	assert.Contains(t, out.String(), "1. AB-123-CD")
	require.Equal(t, 1, app.cars.Len())

	stored := auth.FindByUsername(app.users, "alice@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, []string{"AB-123-CD"}, stored.SearchHistory)
}

func TestRun_SearchRequiresLogin(t *testing.T) {
	app, out := newTestApp(t, "search AB-123-CD\nexit\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Please log in first")
	assert.Equal(t, 0, app.cars.Len())
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t, "frobnicate\nexit\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), `Unknown command "frobnicate"`)
}

func TestRun_DeleteAccount(t *testing.T) {
	script := strings.Join([]string{
		"login",
		"alice@example.com",
		"delete",
		"y",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "Abc123!", "Abc123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Account alice@example.com deleted")
	assert.Nil(t, app.current)
	assert.Equal(t, 0, app.users.Len())
}

func TestAdmin_ListsUsers(t *testing.T) {
	script := strings.Join([]string{
		"admin",
		"admin.autocompare@gmail.com",
		"users",
		"back",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "Admin123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Admin console")
	assert.Contains(t, out.String(), "alice@example.com")
}

func TestAdmin_RejectsBadCredentials(t *testing.T) {
	script := "admin\nadmin.autocompare@gmail.com\nexit\n"
	app, out := newTestApp(t, script)
	stubPasswords(t, "not-the-password")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Invalid admin credentials")
	assert.NotContains(t, out.String(), "Admin console")
}

func TestAdmin_DeleteUser(t *testing.T) {
	script := strings.Join([]string{
		"admin",
		"admin.autocompare@gmail.com",
		"deluser alice@example.com",
		"y",
		"back",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "Admin123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "User alice@example.com deleted")
	assert.Equal(t, 0, app.users.Len())
}

func TestRun_TwoFactorUpdatePersists(t *testing.T) {
	script := strings.Join([]string{
		"login",
		"alice@example.com",
		"twofactor",
		"email",
		"alice@example.com",
		"exit",
	}, "\n") + "\n"
	app, out := newTestApp(t, script)
	seedUser(t, app, "alice@example.com", "Abc123!")
	stubPasswords(t, "Abc123!")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Verification method set to Email")

	reloaded := store.New[auth.User](app.cfg.UsersFile, discardLogger())
	reloaded.Load(context.Background())
	stored := auth.FindByUsername(reloaded, "alice@example.com")
	require.NotNil(t, stored)
	assert.Equal(t, auth.MethodEmail, stored.TwoFactorMethod)
	assert.Equal(t, "alice@example.com", stored.Email)
}
