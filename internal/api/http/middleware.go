package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/security"
)

type ctxKey int

const principalKey ctxKey = iota

// PrincipalFrom returns the authenticated principal stored by AuthMiddleware.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok
}

// LoggingMiddleware logs method, path, status and duration per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Websocket connections are logged by the hub.
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// CORSMiddleware allows browser clients on any origin; the token check is
// the gate, not the origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware validates the bearer token (or, for websocket upgrades,
// the token query parameter) and stores the principal on the context.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				RespondWithError(w, http.StatusUnauthorized, "authorization token is not provided")
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				RespondWithError(w, http.StatusUnauthorized, "invalid token: "+err.Error())
				return
			}
			if claims.Type != security.TokenTypeAccess {
				RespondWithError(w, http.StatusUnauthorized, security.ErrWrongTokenType.Error())
				return
			}

			principal := domain.Principal{
				Email:       claims.Email,
				DisplayName: claims.Name,
				Role:        claims.Role,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the principal's role claim. This — not a
// client-side redirect — is the authorization boundary.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				RespondWithError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if p.Role != role {
				RespondWithError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	// Browser websocket clients cannot set headers on the upgrade request.
	return r.URL.Query().Get("token")
}
