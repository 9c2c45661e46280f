package config

// GetTranslateEndpoint returns the translation service base URL.
// Empty disables the /translate command.
func GetTranslateEndpoint() string {
	return GetEnvOrDefault("TRANSLATE_ENDPOINT", "")
}

// GetTranslateAPIKey returns the translation service API key, if any
func GetTranslateAPIKey() string {
	return GetEnvOrDefault("TRANSLATE_API_KEY", "")
}
