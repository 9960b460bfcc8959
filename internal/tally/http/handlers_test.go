package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/internal/tally/store/drivers/sqlite"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("handler-test-secret")

var relaxed = httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}

type routerOpts struct {
	requireAuth bool
	limits      *RateLimits
	store       store.Store
}

func newTestRouter(t *testing.T, opts routerOpts) *Router {
	t.Helper()

	st := opts.store
	if st == nil {
		s, err := sqlite.NewStore(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		require.NoError(t, s.ApplyMigrations())
		st = s
	}

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, "tally")

	r := NewRouter(verifier, "test", st, slogx.Discard(), []string{"*"})
	r.RequireAuth = opts.requireAuth
	r.Limits = RateLimits{Auth: relaxed, Finance: relaxed, System: relaxed}
	if opts.limits != nil {
		r.Limits = *opts.limits
	}
	r.AccountService = &service.AccountService{Store: st, Signer: signer, Issuer: "tally", TokenTTL: jwtx.AccessTokenTTL}
	r.FinanceService = &service.FinanceService{Store: st}
	r.ApplyRoutes()
	return r
}

type testResponse struct {
	Code int
	Body string
}

func (tr testResponse) json(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(tr.Body), &out), tr.Body)
	return out
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) testResponse {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return testResponse{Code: rec.Code, Body: rec.Body.String()}
}

func requireError(t *testing.T, res testResponse, code int, msg string) {
	t.Helper()
	require.Equal(t, code, res.Code, res.Body)
	require.Equal(t, map[string]any{"error": msg}, res.json(t))
}

func requireMessage(t *testing.T, res testResponse, code int, msg string) {
	t.Helper()
	require.Equal(t, code, res.Code, res.Body)
	require.Equal(t, msg, res.json(t)["message"])
}

func signupAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	requireMessage(t, do(t, h, "POST", "/signup", `{"username":"`+username+`","password":"secret1"}`),
		http.StatusCreated, MsgRegistered)

	res := do(t, h, "POST", "/login", `{"username":"`+username+`","password":"secret1"}`)
	requireMessage(t, res, http.StatusOK, MsgLoginSuccessful)
	token, _ := res.json(t)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestSignup(t *testing.T) {
	r := newTestRouter(t, routerOpts{})

	requireMessage(t, do(t, r, "POST", "/signup", `{"username":"alice","password":"secret1"}`),
		http.StatusCreated, MsgRegistered)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"duplicate username", `{"username":"alice","password":"other"}`, MsgUsernameTaken},
		{"missing password", `{"username":"bob"}`, MsgCredentialsRequired},
		{"empty username", `{"username":"","password":"x"}`, MsgCredentialsRequired},
		{"empty body", ``, MsgCredentialsRequired},
		{"malformed json", `{"username":`, MsgInvalidJSON},
		{"wrong type", `{"username":5,"password":"x"}`, MsgInvalidJSON},
		{"password too long", `{"username":"carol","password":"` + strings.Repeat("x", 73) + `"}`, MsgPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireError(t, do(t, r, "POST", "/signup", tt.body), http.StatusBadRequest, tt.msg)
		})
	}
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t, routerOpts{})
	token := signupAndLogin(t, r, "alice")

	claims, err := jwtx.NewVerifierHS256(testSecret, "tally").Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)

	t.Run("wrong password", func(t *testing.T) {
		requireError(t, do(t, r, "POST", "/login", `{"username":"alice","password":"nope"}`),
			http.StatusBadRequest, MsgInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		requireError(t, do(t, r, "POST", "/login", `{"username":"ghost","password":"secret1"}`),
			http.StatusBadRequest, MsgInvalidCredentials)
	})

	t.Run("missing field", func(t *testing.T) {
		requireError(t, do(t, r, "POST", "/login", `{"password":"secret1"}`),
			http.StatusBadRequest, MsgCredentialsRequired)
	})

	t.Run("no cache", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("POST", "/login",
			strings.NewReader(`{"username":"alice","password":"secret1"}`)))
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})
}

func TestFinanceEndpoints(t *testing.T) {
	r := newTestRouter(t, routerOpts{})
	signupAndLogin(t, r, "alice")

	res := do(t, r, "GET", "/getfinancedata?username=alice", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `[]`, res.Body)

	requireMessage(t, do(t, r, "POST", "/add-finance",
		`{"username":"alice","month":"2024-01","income":1000,"expenses":400}`),
		http.StatusCreated, MsgEntryAdded)

	requireError(t, do(t, r, "POST", "/add-finance",
		`{"username":"alice","month":"2024-01","income":5,"expenses":5}`),
		http.StatusBadRequest, MsgMonthExists)

	requireMessage(t, do(t, r, "POST", "/add-finance",
		`{"username":"alice","month":"2024-02","income":1000,"expenses":400,"savings":500}`),
		http.StatusCreated, MsgEntryAdded)

	res = do(t, r, "GET", "/getfinancedata?username=alice", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `[
		{"month":"2024-01","income":1000,"expenses":400,"savings":600},
		{"month":"2024-02","income":1000,"expenses":400,"savings":500}
	]`, res.Body)

	requireMessage(t, do(t, r, "PUT", "/update-finance",
		`{"username":"alice","month":"2024-01","income":1200,"expenses":400,"savings":100}`),
		http.StatusOK, MsgEntryUpdated)

	requireError(t, do(t, r, "PUT", "/update-finance",
		`{"username":"alice","month":"2030-01","income":1,"expenses":1}`),
		http.StatusBadRequest, MsgMonthNotFound)

	requireMessage(t, do(t, r, "DELETE", "/delete-finance", `{"username":"alice","month":"2024-02"}`),
		http.StatusOK, MsgEntryDeleted)
	requireMessage(t, do(t, r, "DELETE", "/delete-finance", `{"username":"alice","month":"2024-02"}`),
		http.StatusOK, MsgEntryDeleted)

	res = do(t, r, "GET", "/getfinancedata?username=alice", "")
	require.JSONEq(t, `[{"month":"2024-01","income":1200,"expenses":400,"savings":800}]`, res.Body)
}

func TestFinanceValidation(t *testing.T) {
	r := newTestRouter(t, routerOpts{})
	signupAndLogin(t, r, "alice")

	tests := []struct {
		name   string
		method string
		target string
		body   string
		msg    string
	}{
		{"add missing income", "POST", "/add-finance", `{"username":"alice","month":"2024-01","expenses":1}`, MsgEntryFieldsRequired},
		{"add null expenses", "POST", "/add-finance", `{"username":"alice","month":"2024-01","income":1,"expenses":null}`, MsgEntryFieldsRequired},
		{"add unknown user", "POST", "/add-finance", `{"username":"bob","month":"2024-01","income":1,"expenses":1}`, MsgUserNotFound},
		{"add malformed", "POST", "/add-finance", `{"username":"alice",`, MsgInvalidJSON},
		{"get missing username", "GET", "/getfinancedata", ``, MsgUsernameRequired},
		{"get unknown user", "GET", "/getfinancedata?username=bob", ``, MsgUserNotFound},
		{"update missing month", "PUT", "/update-finance", `{"username":"alice","income":1,"expenses":1}`, MsgEntryFieldsRequired},
		{"update unknown user", "PUT", "/update-finance", `{"username":"bob","month":"m","income":1,"expenses":1}`, MsgUserNotFound},
		{"delete missing month", "DELETE", "/delete-finance", `{"username":"alice"}`, MsgUsernameMonthRequired},
		{"delete unknown user", "DELETE", "/delete-finance", `{"username":"bob","month":"m"}`, MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireError(t, do(t, r, tt.method, tt.target, tt.body), http.StatusBadRequest, tt.msg)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter(t, routerOpts{requireAuth: true})
	aliceToken := signupAndLogin(t, r, "alice")
	bobToken := signupAndLogin(t, r, "bob")

	body := `{"username":"alice","month":"2024-01","income":1000,"expenses":400}`

	t.Run("missing token", func(t *testing.T) {
		res := do(t, r, "POST", "/add-finance", body)
		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		res := do(t, r, "GET", "/getfinancedata?username=alice", "", "Authorization", "Bearer nope")
		require.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("other user's token", func(t *testing.T) {
		requireError(t, do(t, r, "POST", "/add-finance", body, "Authorization", "Bearer "+bobToken),
			http.StatusForbidden, MsgAccessDenied)
		requireError(t, do(t, r, "GET", "/getfinancedata?username=alice", "", "Authorization", "Bearer "+bobToken),
			http.StatusForbidden, MsgAccessDenied)
	})

	t.Run("own token", func(t *testing.T) {
		requireMessage(t, do(t, r, "POST", "/add-finance", body, "Authorization", "Bearer "+aliceToken),
			http.StatusCreated, MsgEntryAdded)

		res := do(t, r, "GET", "/getfinancedata?username=alice", "", "Authorization", "Bearer "+aliceToken)
		require.Equal(t, http.StatusOK, res.Code)
		require.Contains(t, res.Body, `"month":"2024-01"`)
	})

	t.Run("signup and login stay public", func(t *testing.T) {
		requireMessage(t, do(t, r, "POST", "/signup", `{"username":"carol","password":"x"}`),
			http.StatusCreated, MsgRegistered)
	})
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, routerOpts{})

	res := do(t, r, "GET", "/livez", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "ok", res.json(t)["status"])
	require.Equal(t, "test", res.json(t)["version"])

	res = do(t, r, "GET", "/readyz", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "ok", res.json(t)["status"])
	require.Equal(t, map[string]any{"database": "ok"}, res.json(t)["checks"])
}

// downStore behaves like a database that never came up.
type downStore struct{}

var errDown = errors.New("server selection timeout")

func (downStore) Users() store.Users             { return downUsers{} }
func (downStore) ApplyMigrations() error         { return errDown }
func (downStore) Close() error                   { return nil }
func (downStore) Ping(ctx context.Context) error { return errDown }

type downUsers struct{}

func (downUsers) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return domain.User{}, errDown
}
func (downUsers) CreateUser(ctx context.Context, u domain.User) error { return errDown }
func (downUsers) SaveUser(ctx context.Context, u domain.User) error   { return errDown }

func TestStoreDown(t *testing.T) {
	r := newTestRouter(t, routerOpts{store: downStore{}})

	res := do(t, r, "GET", "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, res.Code)
	require.Equal(t, "degraded", res.json(t)["status"])

	requireError(t, do(t, r, "POST", "/signup", `{"username":"alice","password":"secret1"}`),
		http.StatusInternalServerError, MsgInternal)
	requireError(t, do(t, r, "GET", "/getfinancedata?username=alice", ""),
		http.StatusInternalServerError, MsgInternal)

	// Liveness does not depend on the store.
	require.Equal(t, http.StatusOK, do(t, r, "GET", "/livez", "").Code)
}

func TestAuthRateLimit(t *testing.T) {
	limits := RateLimits{
		Auth:    httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2},
		Finance: relaxed,
		System:  relaxed,
	}
	r := newTestRouter(t, routerOpts{limits: &limits})

	for range 2 {
		res := do(t, r, "POST", "/login", `{"username":"x","password":"y"}`)
		require.Equal(t, http.StatusBadRequest, res.Code)
	}

	res := do(t, r, "POST", "/login", `{"username":"x","password":"y"}`)
	requireError(t, res, http.StatusTooManyRequests, "Too many requests. Please try again later.")

	// Other route groups have their own buckets.
	require.Equal(t, http.StatusOK, do(t, r, "GET", "/livez", "").Code)
}

func loginFrom(r *Router, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"x","password":"y"}`))
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	limits := RateLimits{
		Auth:    httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2},
		Finance: relaxed,
		System:  relaxed,
	}
	r := newTestRouter(t, routerOpts{limits: &limits})

	require.Equal(t, http.StatusBadRequest, loginFrom(r, "198.51.100.7:1000", "203.0.113.1"))
	require.Equal(t, http.StatusBadRequest, loginFrom(r, "198.51.100.7:1000", "203.0.113.2"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(r, "198.51.100.7:1000", "203.0.113.3"))
}

func TestAuthRateLimitBehindTrustedProxy(t *testing.T) {
	limits := RateLimits{
		Auth:           httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
		Finance:        relaxed,
		System:         relaxed,
		TrustedProxies: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}
	r := newTestRouter(t, routerOpts{limits: &limits})

	// Distinct clients behind the proxy get their own buckets.
	require.Equal(t, http.StatusBadRequest, loginFrom(r, "10.0.0.5:1000", "203.0.113.1"))
	require.Equal(t, http.StatusBadRequest, loginFrom(r, "10.0.0.5:1000", "203.0.113.2"))
	require.Equal(t, http.StatusTooManyRequests, loginFrom(r, "10.0.0.5:1000", "203.0.113.1"))

	// A client prepending a fake hop is still charged to its real address.
	require.Equal(t, http.StatusTooManyRequests, loginFrom(r, "10.0.0.5:1000", "192.0.2.99, 203.0.113.2"))
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, routerOpts{})

	req := httptest.NewRequest(http.MethodOptions, "/add-finance", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRequestIDEchoed(t *testing.T) {
	r := newTestRouter(t, routerOpts{})

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set(slogx.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))
}
