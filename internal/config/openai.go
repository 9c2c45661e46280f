package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

// GetOpenAIKey returns the current OpenAI key
func GetOpenAIKey() string {
	value := GetEnvOrDefault("OPENAI_KEY", "")
	if value == "" {
		log.Fatal().Msg("OPENAI_KEY environment variable not set")
	}
	return value
}

// GetOpenAIBaseURL returns an override for the OpenAI API base URL.
// Empty means the client default.
func GetOpenAIBaseURL() string {
	return GetEnvOrDefault("OPENAI_BASE_URL", "")
}

// GetOpenAIModel returns the completion model identifier
func GetOpenAIModel() string {
	return GetEnvOrDefault("OPENAI_MODEL", "gpt-4")
}

// GetCompletionTimeout returns the timeout applied to each completion call.
// There is no retry after the timeout fires.
func GetCompletionTimeout() time.Duration {
	return GetEnvDuration("COMPLETION_TIMEOUT", 30*time.Second)
}
