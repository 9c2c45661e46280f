package config

// GetRedisURL returns the Redis address. Empty means snapshots go to flat
// files instead.
func GetRedisURL() string {
	return GetEnvOrDefault("REDIS_URL", "")
}

// GetRedisPassword returns the Redis password, if any
func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
