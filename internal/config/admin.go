package config

import "sync"

var (
	adminJWTSecretMu sync.RWMutex
	// AdminJWTSecret signs bearer tokens for the admin HTTP API.
	// Empty means the admin API is not served.
	AdminJWTSecret = []byte(GetEnvOrDefault("ADMIN_JWT_SECRET", ""))
)

// GetAdminJWTSecret returns the current admin API secret in a thread-safe manner
func GetAdminJWTSecret() []byte {
	adminJWTSecretMu.RLock()
	defer adminJWTSecretMu.RUnlock()
	return AdminJWTSecret
}

// SetAdminJWTSecret temporarily changes the admin API secret and returns a
// function to restore it. This is primarily used for testing.
func SetAdminJWTSecret(secret []byte) func() {
	adminJWTSecretMu.Lock()
	previous := AdminJWTSecret
	AdminJWTSecret = secret
	adminJWTSecretMu.Unlock()

	return func() {
		adminJWTSecretMu.Lock()
		AdminJWTSecret = previous
		adminJWTSecretMu.Unlock()
	}
}

// GetAdminListenAddr returns the listen address for the admin HTTP API
func GetAdminListenAddr() string {
	return GetEnvOrDefault("ADMIN_LISTEN_ADDR", ":8080")
}
