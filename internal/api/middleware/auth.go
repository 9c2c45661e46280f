package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/vportan/bacbot/internal/config"
	"github.com/vportan/bacbot/pkg/httpext"
)

// RequireAdmin validates the HS256 bearer token on admin API requests.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := config.GetAdminJWTSecret()
		if len(secret) == 0 {
			httpext.JsonError(w, "Admin API not configured", http.StatusServiceUnavailable)
			return
		}

		tokenString := extractToken(r)
		if tokenString == "" {
			httpext.JsonError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected admin API request")
			httpext.JsonError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
