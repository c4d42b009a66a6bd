package middleware

import (
	"context"
	"net/http"

	"github.com/arkade-games/adastra-server/internal/api/apierr"
	"github.com/arkade-games/adastra-server/internal/services/session"
)

// SysopTokenHeader carries the pre-shared operator token for console access
const SysopTokenHeader = "X-Sysop-Token"

// Admin creates middleware that admits admin accounts and sysop callers.
// A request passes if it presents the pre-shared sysop token, or a bearer
// token whose account has the admin flag.
func Admin(sessions *session.Service, sysop *session.SysopToken) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if presented := r.Header.Get(SysopTokenHeader); presented != "" {
				if sysop == nil || !sysop.Matches(presented) {
					apierr.WriteError(w, apierr.NewForbiddenError())
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewNoTokenError())
				return
			}

			account, err := sessions.ResolveAdmin(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
