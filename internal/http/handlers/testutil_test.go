package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ccatimbang/todo-api/internal/auth"
	"github.com/ccatimbang/todo-api/internal/config"
	"github.com/ccatimbang/todo-api/internal/models"
	"github.com/ccatimbang/todo-api/internal/server"
	"github.com/ccatimbang/todo-api/internal/storage/memory"
)

const testSecret = "handlers-test-secret"

// newTestServer spins up the production routing over a fresh seeded
// in-memory store. Each call gets isolated state.
func newTestServer(t *testing.T) (*httptest.Server, *auth.TokenManager) {
	t.Helper()

	cfg := config.Config{
		JWTSecret:   testSecret,
		JWTIssuer:   "todo-api-test",
		JWTTTL:      time.Hour,
		CORSOrigins: []string{"*"},
	}
	store := memory.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	ts := httptest.NewServer(server.Handler(cfg, store, store, tokens))
	t.Cleanup(ts.Close)
	return ts, tokens
}

// newExpiredToken signs an already-expired token with the test secret.
func newExpiredToken() (string, error) {
	expired := auth.NewTokenManager(testSecret, "todo-api-test", -time.Minute)
	return expired.Issue(models.User{ID: "1", Username: "admin"})
}

// doJSON performs a request with an optional bearer token and JSON body,
// returning the status code and decoded body.
func doJSON(t *testing.T, method, url, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// listItems fetches /items and decodes the array body.
func listItems(t *testing.T, baseURL, token string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/items", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var items []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	return resp.StatusCode, items
}

// loginAdmin logs in as the seeded admin user and returns the bearer token.
func loginAdmin(t *testing.T, baseURL string) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, baseURL+"/login", "", map[string]string{
		"username": "admin",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, status)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response missing token")
	require.NotEmpty(t, token)
	return token
}
