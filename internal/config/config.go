// Package config handles configuration for the AutoCompare CLI, including
// defaults, .env/environment overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the AutoCompare application.
//
// Fields:
//   - UsersFile / CarsFile: paths of the JSON documents backing the entity stores.
//   - LogFile: path of the JSON log file (empty means stderr).
//   - SMTPHost / SMTPPort / SMTPEmail / SMTPPassword: outgoing mail settings.
//   - SMSAccountSID / SMSAuthToken / SMSFromNumber / SMSEndpoint: SMS gateway settings.
//   - AIKey / AIModel / AIEndpoint: chat-completions API settings.
//   - SessionSecret: HMAC secret for signing session tokens (HS256).
//   - SessionValidity: lifetime of a session token.
//   - CodeValidity / CodeLength: one-time code lifetime and digit count.
//   - AdminUsername / AdminPassword: credentials for the hidden admin console.
type Config struct {
	UsersFile string
	CarsFile  string
	LogFile   string

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string

	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string
	SMSEndpoint   string

	AIKey      string
	AIModel    string
	AIEndpoint string

	SessionSecret   string
	SessionValidity time.Duration

	CodeValidity time.Duration
	CodeLength   int

	AdminUsername string
	AdminPassword string
}

// LoadDefaults populates c with sensible defaults.
// NOTE: The secrets here are development placeholders and must be overridden.
func (c *Config) LoadDefaults() {
	c.UsersFile = "users.json"
	c.CarsFile = "cars.json"
	c.LogFile = "autocompare.log"
	c.SMTPHost = "smtp.gmail.com"
	c.SMTPPort = 587
	c.SMSEndpoint = "https://api.twilio.com/2010-04-01"
	c.AIModel = "gpt-4o-mini"
	c.AIEndpoint = "https://api.openai.com/v1/chat/completions"
	c.SessionSecret = "secretKey"
	c.SessionValidity = 30 * time.Minute
	c.CodeValidity = 5 * time.Minute
	c.CodeLength = 6
	c.AdminUsername = "admin.autocompare@gmail.com"
	c.AdminPassword = "Admin123!"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
