package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func signed(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestAuthenticateAndRequireAdmin(t *testing.T) {
	now := time.Now()
	adminToken, err := IssueAdminToken(testSecret, now, time.Hour)
	require.NoError(t, err)

	tests := map[string]struct {
		header string
		want   int
	}{
		"no header":        {header: "", want: http.StatusUnauthorized},
		"not bearer":       {header: "Basic abc", want: http.StatusUnauthorized},
		"garbage token":    {header: "Bearer not-a-jwt", want: http.StatusUnauthorized},
		"valid admin":      {header: "Bearer " + adminToken, want: http.StatusNoContent},
		"wrong secret":     {header: "Bearer " + signed(t, jwt.MapClaims{"role": RoleAdmin, "exp": now.Add(time.Hour).Unix()}, []byte("other")), want: http.StatusUnauthorized},
		"expired":          {header: "Bearer " + signed(t, jwt.MapClaims{"role": RoleAdmin, "exp": now.Add(-time.Hour).Unix()}, testSecret), want: http.StatusUnauthorized},
		"non-admin role":   {header: "Bearer " + signed(t, jwt.MapClaims{"role": "viewer", "exp": now.Add(time.Hour).Unix()}, testSecret), want: http.StatusForbidden},
		"missing role":     {header: "Bearer " + signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}, testSecret), want: http.StatusUnauthorized},
		"lowercase bearer": {header: "bearer " + adminToken, want: http.StatusUnauthorized},
	}

	h := Authenticate(testSecret)(RequireAdmin(okHandler()))
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/teams", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(1, 2)(okHandler())

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/results", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusNoContent, do("10.0.0.1:5001").Code)
	limited := do("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, do("10.0.0.2:5000").Code, "other clients have their own bucket")
}

func TestRateLimit_Disabled(t *testing.T) {
	h := RateLimit(0, 0)(okHandler())
	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}
