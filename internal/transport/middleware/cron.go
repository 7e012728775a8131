package middleware

import (
	"crypto/subtle"
	"net/http"
)

// CronAuth guards the scheduler-only endpoints. The hosted cron trigger
// sends the shared secret as a bearer token; anything else is rejected
// before the handler runs.
func CronAuth(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
