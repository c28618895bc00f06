package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/autocompare/autocompare/internal/auth"
)

// terminalPrompter drives login and password-reset dialogs over the
// interactive terminal. Empty input cancels the current flow.
type terminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func (p *terminalPrompter) Password(attempt, max int) (string, bool) {
	if attempt > 1 {
		fmt.Fprintf(p.out, "Wrong password, try again (%d of %d).\n", attempt, max)
	}
	pw, err := GetPassword(p.out, "Enter password (empty to cancel): ")
	if err != nil || pw == "" {
		return "", false
	}
	return pw, true
}

func (p *terminalPrompter) Code(channel auth.Method, destination string) (string, bool) {
	fmt.Fprintf(p.out, "A verification code was sent via %s to %s.\n", channel, destination)
	code, err := GetSimpleText(p.reader, "Enter the code (empty to cancel)", p.out)
	if err != nil || code == "" {
		return "", false
	}
	return code, true
}

func (p *terminalPrompter) NewPassword(prev error) (string, bool) {
	if prev != nil {
		fmt.Fprintf(p.out, "Password rejected: %v\n", prev)
	}
	pw, err := GetPassword(p.out, "New password (empty to cancel): ")
	if err != nil || pw == "" {
		return "", false
	}
	return pw, true
}
