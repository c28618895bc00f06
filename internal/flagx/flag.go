// Package flagx contains helpers for parsing a known subset of
// command-line flags without tripping over flags owned by other packages
// (notably the testing framework's -test.* flags).
package flagx

import "strings"

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -u users.json
//  2. Flag and value combined with '=':      -u=users.json
//
// Parameters:
//
//	args         — the command-line arguments (usually os.Args[1:])
//	allowedFlags — list of allowed flag names (e.g. []string{"-u", "-c"})
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "-flag=value" form: keep the whole argument when the name is allowed.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag and, when present, its value.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}
