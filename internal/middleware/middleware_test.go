package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"forumCPT/internal/config"
	"forumCPT/internal/service"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]*service.Claims

func (s stubValidator) ValidateToken(tokenString string) (*service.Claims, error) {
	if claims, ok := s[tokenString]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

func TestRequireAuth(t *testing.T) {
	validator := stubValidator{"good": {ID: 7, Name: "alice"}}

	var seen *service.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(validator)(next)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{"no header", "", http.StatusUnauthorized, "Access token required"},
		{"scheme only", "Bearer", http.StatusUnauthorized, "Access token required"},
		{"invalid token", "Bearer forged", http.StatusForbidden, "Invalid token"},
		{"valid token", "Bearer good", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodPost, "/forum/1/like", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody == "" {
				require.NotNil(t, seen)
				assert.Equal(t, int64(7), seen.ID)
				return
			}

			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.expectedBody, body["message"])
			assert.Nil(t, seen)
		})
	}
}

func TestClaimsFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)

	ctx := WithClaims(req.Context(), &service.Claims{ID: 3})
	claims, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(3), claims.ID)
}

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), tag("inner"), tag("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestStack(t *testing.T) {
	cfg := &config.Config{CORSAllowedOrigins: []string{"http://localhost:5173"}}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, chimw.GetReqID(r.Context()))
		panic("boom")
	}), Stack(cfg)...)

	t.Run("recovers panics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("answers CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/forum/1/like", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
