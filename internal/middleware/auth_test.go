package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccatimbang/todo-api/internal/auth"
	"github.com/ccatimbang/todo-api/internal/models"
)

func newGuardedServer(t *testing.T, tokens *auth.TokenManager) *httptest.Server {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok, "claims missing from context")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"userId": claims.UserID()})
	})

	ts := httptest.NewServer(RequireAuth(tokens, next))
	t.Cleanup(ts.Close)
	return ts
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", "todo-api", time.Hour)
	valid, err := tokens.Issue(models.User{ID: "42", Username: "admin"})
	require.NoError(t, err)

	expired, err := auth.NewTokenManager("secret", "todo-api", -time.Minute).
		Issue(models.User{ID: "42", Username: "admin"})
	require.NoError(t, err)

	badSig, err := auth.NewTokenManager("other-secret", "todo-api", time.Hour).
		Issue(models.User{ID: "42", Username: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"no header", "", http.StatusUnauthorized, "Access token required"},
		{"bare scheme", "Bearer", http.StatusUnauthorized, "Access token required"},
		{"malformed token", "Bearer not.a.jwt", http.StatusForbidden, "Invalid token"},
		{"wrong signature", "Bearer " + badSig, http.StatusForbidden, "Invalid token"},
		{"expired token", "Bearer " + expired, http.StatusForbidden, "Invalid token"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
	}

	ts := newGuardedServer(t, tokens)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tc.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, body["error"])
			} else {
				assert.Equal(t, "42", body["userId"])
			}
		})
	}
}
