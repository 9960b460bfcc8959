package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token and stores its claims in the
// request context. Failures get a 401 with a WWW-Authenticate challenge.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("bearer token rejected", "error", err)
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, "token expired")
				} else {
					writeBearerError(w, "token verification failed")
				}
				return
			}

			ctx := slogx.With(contextWithAuth(r.Context(), claims),
				"user_id", claims.UserID,
				"username", claims.Username,
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials of an Authorization: Bearer header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "Authentication required.")
}
