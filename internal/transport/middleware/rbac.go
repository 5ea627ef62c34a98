package middleware

import (
	"log/slog"
	"net/http"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

// RequirePermission gates a route on a single (module, action) permission.
// The service layer re-checks authorization on every mutation; this gate
// exists to fail fast and keep denials out of the handlers.
func RequirePermission(module, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasPermission(module, action) {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"role", user.Role,
					"module", module,
					"action", action,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireModule gates a route on module visibility, independent of action
// permissions.
func RequireModule(module string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.CanAccessModule(module) {
				slog.Warn("access denied: module not visible to role",
					"user_id", user.ID,
					"role", user.Role,
					"module", module,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: module not accessible", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireGate gates a route on a role set and permission set combined. Both
// checks must pass when both are supplied; an empty gate passes.
func RequireGate(requiredRoles []accesscontrol.Role, requiredPermissions []accesscontrol.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !accesscontrol.Gate(user.Role, requiredRoles, requiredPermissions) {
				slog.Warn("access denied: gate check failed",
					"user_id", user.ID,
					"role", user.Role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
