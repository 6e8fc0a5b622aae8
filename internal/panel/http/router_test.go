package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/internal/panel/store/drivers/sqlite"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/aussiebroadwan/panel/pkg/panelsdk"
	"github.com/aussiebroadwan/panel/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const bootstrapToken = "bootstrap-token-for-tests"

type testServer struct {
	t      *testing.T
	router *Router
	users  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hasher := cryptox.NewPasswordHasher("pepper", cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16})
	signer, verifier, err := jwtx.NewKeys(jwtx.KeyOptions{
		Algorithm: "HS256",
		Secret:    strings.Repeat("s", jwtx.MinSecretLength),
		Verify:    jwtx.VerifyOptions{Issuer: "panel-emb", Audience: []string{"emb-team"}},
	})
	require.NoError(t, err)

	metrics, err := httpx.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	users := &service.UserService{Store: st, Hasher: hasher}
	r := NewRouter(st, slogx.Discard(), Options{
		BuildVersion: "test",
		CORSOrigins:  []string{"http://localhost:3000"},
		Metrics:      metrics,
		// Fresh limiters per server so tests do not share buckets.
		Limiters: func(_ string, cfg httpx.RateLimitConfig) httpx.Limiter { return httpx.NewLocalLimiter(cfg) },
	})
	r.ClientService = service.NewClientService(st, time.Minute)
	r.AuthService = &service.AuthService{
		Store:    st,
		Hasher:   hasher,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "panel-emb",
		Audience: []string{"emb-team"},
	}
	r.BootstrapService = &service.BootstrapService{Store: st, Users: users, Token: bootstrapToken}
	r.ApplyRoutes()

	return &testServer{t: t, router: r, users: users}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	_, err := s.users.Create(s.t.Context(), service.CreateUserInput{Username: username, Password: password})
	require.NoError(s.t, err)

	rec := s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: username, Password: password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var res panelsdk.LoginResponse
	decode(s.t, rec, &res)
	return res.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func requireEnvelope(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	var env panelsdk.ErrorResponse
	decode(t, rec, &env)
	require.False(t, env.Success)
	require.Equal(t, code, env.Error.StatusCode)
	require.Equal(t, http.StatusText(code), env.Error.Error)
	require.NotEmpty(t, env.Error.Timestamp)
	require.NotEmpty(t, env.Error.Path)
	if message != "" {
		require.Equal(t, message, env.Error.Message)
	}
}

func clientRequest(i int) panelsdk.CreateClientRequest {
	return panelsdk.CreateClientRequest{
		Name:    fmt.Sprintf("Cliente %d SL", i),
		Email:   fmt.Sprintf("cliente%d@example.com", i),
		Phone:   fmt.Sprintf("+34 6%02d 123 456", i),
		Address: "Calle Alcala 10, Madrid",
		TaxID:   fmt.Sprintf("%08dZ", i),
	}
}

func TestLoginSetsCookie(t *testing.T) {
	s := newTestServer(t)
	_, err := s.users.Create(t.Context(), service.CreateUserInput{Username: "maria", FullName: "Maria Lopez", Password: "correct horse"})
	require.NoError(t, err)

	rec := s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: "maria", Password: "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)

	var res panelsdk.LoginResponse
	decode(t, rec, &res)
	require.True(t, res.Success)
	require.Equal(t, "Maria Lopez", res.User.FullName)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, AuthCookieName, c.Name)
	require.Equal(t, res.Token, c.Value)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, c.SameSite)
	require.Equal(t, int((24 * time.Hour).Seconds()), c.MaxAge)

	// The cookie alone authenticates.
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.AddCookie(c)
	prof := httptest.NewRecorder()
	s.router.ServeHTTP(prof, req)
	require.Equal(t, http.StatusOK, prof.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.login("maria", "correct horse")

	rec := s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: "maria", Password: "wrong one"})
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageInvalidCredentials)

	rec = s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: "ghost", Password: "wrong one"})
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageInvalidCredentials)

	rec = s.do(http.MethodPost, "/auth/login", "", nil)
	requireEnvelope(t, rec, http.StatusBadRequest, "request body is empty")
}

func TestLoginRateLimitedPerUsername(t *testing.T) {
	s := newTestServer(t)

	var last *httptest.ResponseRecorder
	for range httpx.StrictLimit.Burst + 1 {
		last = s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: "maria", Password: "guess"})
	}
	requireEnvelope(t, last, http.StatusTooManyRequests, "")
	require.NotEmpty(t, last.Header().Get("Retry-After"))

	// Another username from the same address has its own bucket.
	rec := s.do(http.MethodPost, "/auth/login", "", panelsdk.LoginRequest{Username: "pedro", Password: "guess"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardRejectsMissingAndBadTokens(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/clients", "", nil)
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageUnauthorized)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	rec = s.do(http.MethodGet, "/clients", "not-a-jwt", nil)
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageUnauthorized)
}

func TestProfileValidateAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login("maria", "correct horse")

	rec := s.do(http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var prof panelsdk.ProfileResponse
	decode(t, rec, &prof)
	require.Equal(t, "maria", prof.User.Username)
	require.True(t, prof.User.Active)

	rec = s.do(http.MethodGet, "/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var val panelsdk.ValidateResponse
	decode(t, rec, &val)
	require.True(t, val.Valid)

	rec = s.do(http.MethodGet, "/auth/validate", "garbage", nil)
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageInvalidToken)

	rec = s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, -1, cookies[0].MaxAge)

	rec = s.do(http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/auth/validate", token, nil)
	requireEnvelope(t, rec, http.StatusUnauthorized, panelsdk.MessageSessionExpired)

	// Logging out again with a dead token still clears the cookie.
	rec = s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClientLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login("maria", "correct horse")

	rec := s.do(http.MethodPost, "/clients", token, clientRequest(1))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c panelsdk.Client
	decode(t, rec, &c)
	require.Equal(t, "active", c.Status)
	require.Equal(t, "Activo", c.StatusLabel)
	require.Equal(t, "+34601123456", c.Phone)
	require.Equal(t, "601 123 456", c.PhoneDisplay)
	require.True(t, c.CanCreateInvoice)

	rec = s.do(http.MethodPost, "/clients", token, clientRequest(1))
	requireEnvelope(t, rec, http.StatusConflict, "Client with email cliente1@example.com already exists")

	bad := clientRequest(2)
	bad.Phone = "12345"
	rec = s.do(http.MethodPost, "/clients", token, bad)
	requireEnvelope(t, rec, http.StatusBadRequest, "Invalid Spanish phone number format")

	name := "Cliente Uno SL"
	rec = s.do(http.MethodPut, "/clients/"+c.ID, token, panelsdk.UpdateClientRequest{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &c)
	require.Equal(t, name, c.Name)

	rec = s.do(http.MethodPatch, "/clients/"+c.ID+"/deactivate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &c)
	require.Equal(t, "inactive", c.Status)
	require.False(t, c.CanCreateInvoice)

	rec = s.do(http.MethodPatch, "/clients/"+c.ID+"/status", token, panelsdk.ChangeStatusRequest{Status: "bogus"})
	requireEnvelope(t, rec, http.StatusBadRequest, "Invalid status: bogus")

	rec = s.do(http.MethodDelete, "/clients/"+c.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodDelete, "/clients/"+c.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPatch, "/clients/"+c.ID+"/activate", token, nil)
	requireEnvelope(t, rec, http.StatusUnprocessableEntity, "Cannot activate a deleted client")

	rec = s.do(http.MethodGet, "/clients/"+c.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &c)
	require.Equal(t, "deleted", c.Status)

	rec = s.do(http.MethodGet, "/clients/not-a-uuid", token, nil)
	requireEnvelope(t, rec, http.StatusBadRequest, "ClientId must be a valid UUID")

	rec = s.do(http.MethodGet, "/clients/2f1b6c1e-8d4a-4c1e-9f3a-0b6c1d2e3f40", token, nil)
	requireEnvelope(t, rec, http.StatusNotFound, "Client with ID 2f1b6c1e-8d4a-4c1e-9f3a-0b6c1d2e3f40 not found")
}

func TestClientListAndStats(t *testing.T) {
	s := newTestServer(t)
	token := s.login("maria", "correct horse")

	for i := 1; i <= 15; i++ {
		rec := s.do(http.MethodPost, "/clients", token, clientRequest(i))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(http.MethodGet, "/clients?page=2&limit=10&sortBy=name&sortOrder=asc", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list panelsdk.ClientList
	decode(t, rec, &list)
	require.Len(t, list.Clients, 5)
	require.Equal(t, panelsdk.Pagination{Page: 2, Limit: 10, Total: 15, TotalPages: 2, HasNext: false, HasPrevious: true}, list.Pagination)

	rec = s.do(http.MethodGet, "/clients?status=inactive", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Empty(t, list.Clients)
	require.NotNil(t, list.Clients)

	rec = s.do(http.MethodGet, "/clients?page=zero", token, nil)
	requireEnvelope(t, rec, http.StatusBadRequest, "page must be a positive integer")

	rec = s.do(http.MethodGet, "/clients?createdAfter=yesterday", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/clients/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats panelsdk.ClientStats
	decode(t, rec, &stats)
	require.Equal(t, panelsdk.ClientStats{Total: 15, Active: 15}, stats)
}

func TestBootstrapEndpoint(t *testing.T) {
	s := newTestServer(t)
	req := panelsdk.BootstrapRequest{Username: "admin", FullName: "Admin", Password: "admin password"}

	rec := s.do(http.MethodPost, "/bootstrap", "", req)
	requireEnvelope(t, rec, http.StatusUnauthorized, "")

	send := func(token string) *httptest.ResponseRecorder {
		buf, _ := json.Marshal(req)
		r := httptest.NewRequest(http.MethodPost, "/bootstrap", bytes.NewReader(buf))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("X-Bootstrap-Token", token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, r)
		return w
	}

	requireEnvelope(t, send("nope"), http.StatusUnauthorized, "Invalid bootstrap token")

	rec = send(bootstrapToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res panelsdk.BootstrapResponse
	decode(t, rec, &res)
	require.Equal(t, "admin", res.User.Role)

	requireEnvelope(t, send(bootstrapToken), http.StatusConflict, "System has already been bootstrapped")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var health panelsdk.HealthResponse
	decode(t, rec, &health)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "test", health.Version)

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="GET /readyz"`)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/clients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
