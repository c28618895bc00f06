package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/autocompare/autocompare/internal/auth"
)

// adminSubject is the user ID carried in admin session tokens.
const adminSubject = "admin"

// admin opens the maintenance console. It is gated twice: the operator
// authenticates with the configured admin credentials, and every operation
// re-validates the resulting session token, so a console left open past the
// token's lifetime stops working.
func (a *App) admin(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Admin username", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword(a.out, "Admin password: ")
	if err != nil {
		return
	}
	if username != a.cfg.AdminUsername || password != a.cfg.AdminPassword {
		a.log.Warn(ctx, "admin login rejected", "username", username)
		fmt.Fprintln(a.out, "Invalid admin credentials.")
		return
	}

	token, err := a.tokens.Generate(adminSubject)
	if err != nil {
		a.log.Error(ctx, "admin token generation failed", "error", err)
		fmt.Fprintln(a.out, "Could not open an admin session.")
		return
	}
	a.log.Info(ctx, "admin session opened")
	fmt.Fprintln(a.out, "Admin console. Commands: users, deluser, log, back")

	for {
		fmt.Fprint(a.out, "admin> ")
		line, ok := a.readLine()
		if !ok {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd := strings.ToLower(fields[0])
		if cmd == "back" || cmd == "exit" {
			fmt.Fprintln(a.out, "Leaving admin console.")
			return
		}
		if !a.checkAdminToken(ctx, token) {
			return
		}

		switch cmd {
		case "users":
			a.adminListUsers()
		case "deluser":
			a.adminDeleteUser(ctx, fields[1:])
		case "log":
			a.adminShowLog()
		default:
			fmt.Fprintf(a.out, "Unknown admin command %q.\n", cmd)
		}
	}
}

func (a *App) checkAdminToken(ctx context.Context, token string) bool {
	subject, err := a.tokens.UserID(token)
	if err != nil || subject != adminSubject {
		a.log.Warn(ctx, "admin session no longer valid")
		fmt.Fprintln(a.out, "Admin session expired; log in again.")
		return false
	}
	return true
}

func (a *App) adminListUsers() {
	all := a.users.All()
	if len(all) == 0 {
		fmt.Fprintln(a.out, "No registered users.")
		return
	}
	for _, u := range all {
		fmt.Fprintf(a.out, "%-30s 2FA:%-6s registered %s, %d searches\n",
			u.Username, u.TwoFactorMethod, u.RegisteredAt.Format("2006-01-02"), len(u.SearchHistory))
	}
}

func (a *App) adminDeleteUser(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: deluser <username>")
		return
	}

	user := auth.FindByUsername(a.users, args[0])
	if user == nil {
		fmt.Fprintf(a.out, "No user %q.\n", args[0])
		return
	}
	if !Confirm(a.reader, "Delete "+user.Username+"?", a.out) {
		fmt.Fprintln(a.out, "Kept.")
		return
	}

	// Removal shifts the store's backing slice, so the logged-in user's
	// pointer must be re-resolved by name afterwards.
	currentName := ""
	if a.current != nil {
		currentName = a.current.Username
	}

	username := user.Username
	user.DeleteAccount(ctx, a.users)

	a.current = nil
	if currentName != "" && !strings.EqualFold(currentName, username) {
		a.current = auth.FindByUsername(a.users, currentName)
	}
	if a.current == nil {
		a.token = ""
	}
	a.log.Info(ctx, "user deleted by admin", "username", username)
	fmt.Fprintf(a.out, "User %s deleted.\n", username)
}

func (a *App) adminShowLog() {
	data, err := os.ReadFile(a.cfg.LogFile)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot read log file %s: %v\n", a.cfg.LogFile, err)
		return
	}
	if len(data) == 0 {
		fmt.Fprintln(a.out, "Log file is empty.")
		return
	}
	a.out.Write(data)
}
