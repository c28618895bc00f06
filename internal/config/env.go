package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory is loaded first, if present; variables
// already set in the real environment win over the file.
//
// Variable names follow the deployment conventions of the mail/SMS/AI
// providers (SMTP_*, TWILIO_*, OPENAI_API_KEY); application-specific
// settings use the AUTOCOMPARE_ prefix.
func parseEnv(cfg *Config) {
	// Ignore a missing .env; plain environment variables still apply.
	_ = godotenv.Load()

	cfg.UsersFile = getEnv("AUTOCOMPARE_USERS_FILE", cfg.UsersFile)
	cfg.CarsFile = getEnv("AUTOCOMPARE_CARS_FILE", cfg.CarsFile)
	cfg.LogFile = getEnv("AUTOCOMPARE_LOG_FILE", cfg.LogFile)

	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPEmail = getEnv("SMTP_EMAIL", cfg.SMTPEmail)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)

	cfg.SMSAccountSID = getEnv("TWILIO_SID", cfg.SMSAccountSID)
	cfg.SMSAuthToken = getEnv("TWILIO_AUTH_TOKEN", cfg.SMSAuthToken)
	cfg.SMSFromNumber = getEnv("TWILIO_FROM_NUMBER", cfg.SMSFromNumber)
	cfg.SMSEndpoint = getEnv("TWILIO_ENDPOINT", cfg.SMSEndpoint)

	cfg.AIKey = getEnv("OPENAI_API_KEY", cfg.AIKey)
	cfg.AIModel = getEnv("OPENAI_MODEL", cfg.AIModel)
	cfg.AIEndpoint = getEnv("OPENAI_ENDPOINT", cfg.AIEndpoint)

	cfg.SessionSecret = getEnv("AUTOCOMPARE_SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionValidity = getEnvDuration("AUTOCOMPARE_SESSION_VALIDITY", cfg.SessionValidity)
	cfg.CodeValidity = getEnvDuration("AUTOCOMPARE_CODE_VALIDITY", cfg.CodeValidity)
	cfg.CodeLength = getEnvInt("AUTOCOMPARE_CODE_LENGTH", cfg.CodeLength)

	cfg.AdminUsername = getEnv("AUTOCOMPARE_ADMIN_USER", cfg.AdminUsername)
	cfg.AdminPassword = getEnv("AUTOCOMPARE_ADMIN_PASSWORD", cfg.AdminPassword)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
