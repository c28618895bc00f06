// Package cli implements the interactive AutoCompare console: the command
// loop, the prompts backing the authentication flows, and the hidden admin
// console.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autocompare/autocompare/internal/ai"
	"github.com/autocompare/autocompare/internal/auth"
	"github.com/autocompare/autocompare/internal/cars"
	"github.com/autocompare/autocompare/internal/config"
	"github.com/autocompare/autocompare/internal/logging"
	"github.com/autocompare/autocompare/internal/notify"
	"github.com/autocompare/autocompare/internal/store"
)

// App ties the stores, the authentication session, the car source, and the
// AI advisor to the interactive terminal.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	users   *store.Store[auth.User]
	cars    *store.Store[cars.Car]
	session *auth.Session
	tokens  *auth.TokenIssuer
	source  cars.Source
	advisor *ai.Advisor

	reader *bufio.Reader
	out    io.Writer

	// current and token hold the logged-in user for the lifetime of the
	// process; nil current means anonymous.
	current *auth.User
	token   string
}

// NewApp assembles the application from cfg, reading from stdin and writing
// to stdout.
func NewApp(cfg *config.Config, log logging.Logger) *App {
	users := store.New[auth.User](cfg.UsersFile, log)
	carStore := store.New[cars.Car](cfg.CarsFile, log)

	notifier := &notify.Mux{
		Email: notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword),
		SMS:   notify.NewSMSSender(cfg.SMSAccountSID, cfg.SMSAuthToken, cfg.SMSFromNumber, cfg.SMSEndpoint),
	}
	challenge := auth.NewChallenge(auth.NumericGenerator{}, notifier, log)
	tokens := auth.NewTokenIssuer([]byte(cfg.SessionSecret), cfg.SessionValidity)
	session := auth.NewSession(users, challenge, tokens, cfg.CodeValidity, cfg.CodeLength, log)

	return &App{
		cfg:     cfg,
		log:     log,
		users:   users,
		cars:    carStore,
		session: session,
		tokens:  tokens,
		source:  cars.NewDummySource(),
		advisor: ai.NewAdvisor(ai.NewClient(cfg.AIEndpoint, cfg.AIKey, cfg.AIModel)),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run loads the stores and drives the command loop until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	a.users.Load(ctx)
	a.cars.Load(ctx)
	a.log.Info(ctx, "application started", "users", a.users.Len(), "cars", a.cars.Len())

	fmt.Fprintln(a.out, "Welcome to AutoCompare! Type 'help' to list commands.")
	for {
		fmt.Fprintf(a.out, "autocompare%s> ", a.status())
		line, ok := a.readLine()
		if !ok {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd := strings.ToLower(fields[0]); cmd {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "forgot":
			a.forgotPassword(ctx)
		case "search":
			a.search(ctx, fields[1:])
		case "saved":
			a.saved()
		case "history":
			a.history()
		case "clearhistory":
			a.clearHistory(ctx)
		case "ask":
			a.ask(ctx, fields[1:])
		case "profile":
			a.profile()
		case "twofactor":
			a.twoFactor(ctx)
		case "delete":
			a.deleteAccount(ctx)
		case "admin":
			a.admin(ctx)
		case "logout":
			a.logout()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type 'help' to list commands.\n", cmd)
		}
	}
}

// readLine reads one line of input. The second return value is false when
// input is exhausted.
func (a *App) readLine() (string, bool) {
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (a *App) status() string {
	if a.current == nil {
		return ""
	}
	return " [" + a.current.Username + "]"
}

func (a *App) prompter() *terminalPrompter {
	return &terminalPrompter{reader: a.reader, out: a.out}
}

// requireLogin prints a hint and returns false when no user is logged in.
func (a *App) requireLogin() bool {
	if a.current == nil {
		fmt.Fprintln(a.out, "Please log in first ('login') or create an account ('register').")
		return false
	}
	return true
}

func (a *App) help() {
	fmt.Fprint(a.out, `Commands:
  register      create a new account
  login         log in to an existing account
  forgot        reset a forgotten password (requires two-factor channel)
  logout        log out of the current session

  search <reg>  look up and evaluate a car by registration number
  saved         list previously evaluated cars
  ask <text>    ask the AI advisor a car question
  history       show your search history
  clearhistory  clear your search history

  profile       show account details
  twofactor     change the two-factor verification channel
  delete        delete the current account

  exit          leave the application
`)
}

func (a *App) logout() {
	if a.current == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "Goodbye, %s.\n", a.current.Username)
	a.current = nil
	a.token = ""
}
