package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagex-boxoffice/internal/config"
	"github.com/iliyamo/stagex-boxoffice/internal/logger"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims StaffClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func staffClaims(role string, exp time.Time) StaffClaims {
	return StaffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
}

func protected() *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(testSecret), RequireRole(RoleAdmin, RoleStaff))
	g.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c)+"/"+c.Get("role").(string))
	})
	return e
}

func call(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	e := protected()
	hour := time.Now().Add(time.Hour)

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"staff", sign(t, jwt.SigningMethodHS256, []byte(testSecret), staffClaims("staff", hour)), http.StatusOK},
		{"admin", sign(t, jwt.SigningMethodHS256, []byte(testSecret), staffClaims("ADMIN", hour)), http.StatusOK},
		{"customer", sign(t, jwt.SigningMethodHS256, []byte(testSecret), staffClaims("CUSTOMER", hour)), http.StatusForbidden},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), staffClaims("STAFF", time.Now().Add(-time.Minute))), http.StatusUnauthorized},
		{"wrong key", sign(t, jwt.SigningMethodHS256, []byte("other"), staffClaims("STAFF", hour)), http.StatusUnauthorized},
		{"wrong alg", sign(t, jwt.SigningMethodHS512, []byte(testSecret), staffClaims("STAFF", hour)), http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := call(e, tc.token)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}

	rec := call(e, sign(t, jwt.SigningMethodHS256, []byte(testSecret), staffClaims("staff", hour)))
	assert.Equal(t, "42/STAFF", rec.Body.String())
}

func TestRequestLogger_AssignsID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logger.New(&buf, "INFO", "json")))

	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = logger.RequestID(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, id, seen)
	assert.Contains(t, buf.String(), `"path":"/ping"`)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "scanner-7")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "scanner-7", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRedisMiddlewares_PassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil),
		NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`[]`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `[]`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/TicketScan", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/TicketScan")

	assert.Equal(t, "rl:ip:10.0.0.5", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:ip:10.0.0.5:user:anon:route:POST /api/TicketScan", rateKey(config.RateLimitConfig{Prefix: "rl"}, c))
}
