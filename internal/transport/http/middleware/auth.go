package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/requestctx"
)

// Auth attaches the caller identity carried by a bearer token. Requests
// without a usable token pass through anonymously; handlers decide whether
// an identity changes what they return.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				slog.Debug("ignoring bearer token", "err", err, "requestId", GetRequestID(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestctx.WithUser(r.Context(), claims.UserContext)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	return requestctx.GetUser(ctx)
}
