package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"forumCPT/internal/config"
	"forumCPT/internal/service"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Middleware func(http.Handler) http.Handler

// TokenValidator verifies an access token and returns its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

type contextKey string

const claimsKey contextKey = "claims"

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// RequireAuth rejects requests without a bearer token (401) or with one that
// does not verify (403), and stores the token claims in the request context.
func RequireAuth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				writeMessage(w, "Access token required", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(tokenString)
			if err != nil {
				writeMessage(w, "Invalid token", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns the credential after the scheme, or "" when there is none.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.Claims)
	return claims, ok && claims != nil
}

// WithClaims stores claims the way RequireAuth does.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func CORS(allowedOrigins []string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	})
}

// Stack is the middleware applied to every route, innermost first.
func Stack(cfg *config.Config) []Middleware {
	return []Middleware{
		chimw.Recoverer,
		chimw.Logger,
		chimw.RealIP,
		chimw.RequestID,
		CORS(cfg.CORSAllowedOrigins),
	}
}

// Chain wraps h so that the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
