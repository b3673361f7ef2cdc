package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "footprint.test"}

func TestIssueAndParse(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := Issue(testConfig, "ada@example.com", "sess-1", SessionScopes, expires)
	require.NoError(t, err)

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", claims.Subject)
	require.Equal(t, "sess-1", claims.SessionID)
	require.True(t, claims.HasScope(ScopeActivitiesWrite))
	require.True(t, claims.HasScope(ScopeAccountWrite))
	require.False(t, claims.HasScope("admin"))
	require.True(t, expires.Equal(claims.ExpiresAt))
}

func TestParseRejectsBadTokens(t *testing.T) {
	_, err := Parse("  ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = Parse("not-a-jwt", testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)

	token, err := Issue(testConfig, "ada@example.com", "sess-1", nil, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = Parse(token, Config{Secret: "other", Issuer: testConfig.Issuer})
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = Parse(token, Config{Secret: testConfig.Secret, Issuer: "someone-else"})
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, err := Issue(testConfig, "ada@example.com", "sess-1", nil, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = Parse(expired, testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)

	noSession, err := Issue(testConfig, "ada@example.com", "", nil, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = Parse(noSession, testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNilClaimsHaveNoScopes(t *testing.T) {
	var claims *Claims
	require.False(t, claims.HasScope(ScopeActivitiesRead))
}

func TestMiddleware(t *testing.T) {
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	mw := NewMiddleware(testConfig, func(r *http.Request) bool { return r.URL.Path == "/healthz" })
	handler := mw.Wrap(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/activities", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "missing bearer token")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Nil(t, seen)

	token, err := Issue(testConfig, "ada@example.com", "sess-9", SessionScopes, time.Now().Add(time.Hour))
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/v1/activities", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "sess-9", seen.SessionID)

	req = httptest.NewRequest(http.MethodGet, "/v1/activities", nil)
	req.Header.Set("Authorization", "Basic abc")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
