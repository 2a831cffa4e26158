package middleware

import (
	"context"
	"net/http"

	"wedding-site-backend/internal/services"
)

type contextKey string

const adminUserKey contextKey = "admin_user"

// AdminCookieName is the cookie carrying the admin session token
const AdminCookieName = "admin_token"

// AdminAuth gates a route group behind the admin session cookie. Expired
// and malformed tokens are treated identically: the cookie is proactively
// cleared and the request is rejected.
func AdminAuth(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AdminCookieName)
			if err != nil {
				respondError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			username, err := authService.ValidateSession(cookie.Value)
			if err != nil {
				ClearAdminCookie(w)
				respondError(w, "Invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminUserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUser extracts the authenticated admin username from context
func GetAdminUser(ctx context.Context) string {
	username, ok := ctx.Value(adminUserKey).(string)
	if !ok {
		return ""
	}
	return username
}

// ClearAdminCookie deletes the session cookie on the client
func ClearAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
