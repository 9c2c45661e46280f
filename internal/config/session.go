package config

// GetMaxTurns returns how many user/assistant pairs of history are kept per
// user. The stored history is bounded at twice this value.
func GetMaxTurns() int {
	return GetEnvInt("MAX_TURNS", 5)
}

// GetFreeMessageLimit returns the maximum message length, in characters, for
// users without an active pro grant.
func GetFreeMessageLimit() int {
	return GetEnvInt("FREE_MESSAGE_LIMIT", 250)
}

// ClearHistoryOnLanguageChange reports whether selecting a different language
// also starts a new conversation.
func ClearHistoryOnLanguageChange() bool {
	return GetEnvBool("CLEAR_HISTORY_ON_LANGUAGE_CHANGE", false)
}

// GetDataDir returns the directory holding the flat-file snapshots.
func GetDataDir() string {
	return GetEnvOrDefault("DATA_DIR", "data")
}
