package config

import "github.com/rs/zerolog/log"

// GetTelegramToken returns the Telegram bot token. The process cannot run
// without it, so a missing value is fatal.
func GetTelegramToken() string {
	value := GetEnvOrDefault("TELEGRAM_TOKEN", "")
	if value == "" {
		log.Fatal().Msg("TELEGRAM_TOKEN environment variable not set")
	}
	return value
}

// GetAdminUserID returns the Telegram user id allowed to run admin commands.
// Zero disables the admin commands entirely.
func GetAdminUserID() int64 {
	return int64(GetEnvInt("ADMIN_USER_ID", 0))
}
