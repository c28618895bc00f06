package config

import (
	"flag"
	"os"

	"github.com/autocompare/autocompare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   path of the users JSON document (default from Config)
//	-c string   path of the cars JSON document (default from Config)
//	-l string   path of the log file (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-c", "-l"})

	fs := flag.NewFlagSet("autocompare", flag.ContinueOnError)

	fs.StringVar(&cfg.UsersFile, "u", cfg.UsersFile, "path of the users JSON document")
	fs.StringVar(&cfg.CarsFile, "c", cfg.CarsFile, "path of the cars JSON document")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "path of the log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
