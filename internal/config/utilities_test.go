package config

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     string
	}{
		{"set value wins", "from-env", "fallback", "from-env"},
		{"empty falls back", "", "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BACBOT_TEST_VAR", tt.value)

			if got := GetEnvOrDefault("BACBOT_TEST_VAR", tt.fallback); got != tt.want {
				t.Errorf("GetEnvOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid integer", "7", 7},
		{"empty falls back", "", 5},
		{"garbage falls back", "five", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BACBOT_TEST_VAR", tt.value)

			if got := GetEnvInt("BACBOT_TEST_VAR", 5); got != tt.want {
				t.Errorf("GetEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"valid duration", "45s", 45 * time.Second},
		{"empty falls back", "", 30 * time.Second},
		{"garbage falls back", "soon", 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BACBOT_TEST_VAR", tt.value)

			if got := GetEnvDuration("BACBOT_TEST_VAR", 30*time.Second); got != tt.want {
				t.Errorf("GetEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"true", "true", true},
		{"one", "1", true},
		{"false", "false", false},
		{"empty falls back", "", false},
		{"garbage falls back", "yep", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BACBOT_TEST_VAR", tt.value)

			if got := GetEnvBool("BACBOT_TEST_VAR", false); got != tt.want {
				t.Errorf("GetEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetAdminJWTSecretRestores(t *testing.T) {
	original := GetAdminJWTSecret()

	restore := SetAdminJWTSecret([]byte("temporary"))
	if string(GetAdminJWTSecret()) != "temporary" {
		t.Error("Expected secret to be overridden")
	}

	restore()
	if string(GetAdminJWTSecret()) != string(original) {
		t.Error("Expected secret to be restored")
	}
}
