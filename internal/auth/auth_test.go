package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGate() *Gate {
	return NewGate("admin123", "test-secret", time.Hour)
}

func TestLogin_CorrectPassword_IssuesVerifiableToken(t *testing.T) {
	gate := testGate()

	token, err := gate.Login("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := gate.ParseToken(token)
	require.NoError(t, err)
	assert.Contains(t, claims.Roles, "admin")
}

func TestLogin_WrongPassword(t *testing.T) {
	gate := testGate()
	_, err := gate.Login("letmein")
	assert.ErrorIs(t, err, ErrBadPassword)
}

func TestParseToken_RejectsForeignSecret(t *testing.T) {
	other := NewGate("admin123", "other-secret", time.Hour)
	token, err := other.Login("admin123")
	require.NoError(t, err)

	_, err = testGate().ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_RejectsExpiredToken(t *testing.T) {
	gate := NewGate("admin123", "test-secret", -time.Minute)
	token, err := gate.Login("admin123")
	require.NoError(t, err)

	_, err = gate.ParseToken(token)
	assert.Error(t, err)
}

func TestGetBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetBearerToken(r))

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", GetBearerToken(r))

	r.Header.Set("Authorization", "bearer lower.case.ok")
	assert.Equal(t, "lower.case.ok", GetBearerToken(r))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Empty(t, GetBearerToken(r))
}

func TestMiddleware_GatesRequests(t *testing.T) {
	gate := testGate()
	var reached bool
	handler := gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)

	// Valid token.
	token, err := gate.Login("admin123")
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
