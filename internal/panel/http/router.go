package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/service"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/httpx"
	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/aussiebroadwan/panel/pkg/slogx"

	_ "github.com/aussiebroadwan/panel/api/panel" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// AuthCookieName is the cookie the dashboard keeps the token in.
const AuthCookieName = "auth_token"

// Options tune the router. The zero value is usable: in-process limiters,
// no metrics, no CORS, insecure cookies.
type Options struct {
	BuildVersion string
	CORSOrigins  []string

	// SecureCookies sets the Secure attribute on the auth cookie.
	SecureCookies bool
	SessionTTL    time.Duration

	// Limiters builds the limiter behind each rate limit profile. Nil
	// means in-process limiters.
	Limiters httpx.LimiterFactory

	// Metrics enables the /metrics endpoint and request instrumentation.
	Metrics *httpx.Metrics
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	opts      Options
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	ClientService    *service.ClientService
	AuthService      *service.AuthService
	BootstrapService *service.BootstrapService
}

func NewRouter(st store.Store, logger *slog.Logger, opts Options) *Router {
	if opts.Limiters == nil {
		opts.Limiters = httpx.LocalLimiterFactory
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = jwtx.DefaultSessionTTL
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		opts:      opts,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}
	if len(opts.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(opts.CORSOrigins))
	}

	return r
}

// ApplyRoutes registers every endpoint. It must run once, after the
// services are set and before the router serves.
func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerClients()
	r.registerBootstrap()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	// Route labels come from r.Pattern, which the mux only sets on the
	// request it was handed, so the metrics middleware must wrap it directly.
	var inner http.Handler = r.Mux
	if r.opts.Metrics != nil {
		inner = r.opts.Metrics.Middleware(inner)
	}
	r.handler = httpx.Chain(inner, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Panel API
//	@version					0.1.0
//	@description				Back-office API for client management. Every failure uses the same JSON error envelope.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/panel
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3001
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /auth/login. Format: "Bearer {token}". The auth_token cookie is accepted too.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) limiter(name string, cfg httpx.RateLimitConfig) httpx.Limiter {
	return r.opts.Limiters(name, cfg)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(&guard{auth: r.AuthService}, AuthCookieName)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		SecureCookies: r.opts.SecureCookies,
		SessionTTL:    r.opts.SessionTTL,
	}

	// POST /auth/login - strict limit keyed by IP and username
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.limiter("login", httpx.StrictLimit), httpx.StrictLimit, "username"),
		),
	)

	// Logout works with or without a valid token so a stale cookie can
	// always be cleared.
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(r.limiter("logout", httpx.ModerateLimit), httpx.ModerateLimit),
		),
	)

	userLimit := r.limiter("auth-user", httpx.ModerateLimit)
	r.Mux.Handle("GET /auth/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			r.authn(),
			httpx.RateLimitByUser(userLimit, httpx.ModerateLimit),
		),
	)

	// Validate answers with its own verdict instead of the guard's
	// generic 401.
	r.Mux.Handle("GET /auth/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(r.limiter("validate", httpx.ModerateLimit), httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}
	limit := r.limiter("clients", httpx.ModerateLimit)

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RateLimitByUser(limit, httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /clients", secured(h.HandleCreate))
	r.Mux.Handle("GET /clients", secured(h.HandleList))
	r.Mux.Handle("GET /clients/stats", secured(h.HandleStats))
	r.Mux.Handle("GET /clients/{id}", secured(h.HandleGet))
	r.Mux.Handle("GET /clients/{id}/duplicates", secured(h.HandleDuplicates))
	r.Mux.Handle("PUT /clients/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /clients/{id}", secured(h.HandleDelete))
	r.Mux.Handle("PATCH /clients/{id}/status", secured(h.HandleChangeStatus))
	r.Mux.Handle("PATCH /clients/{id}/activate", secured(h.HandleActivate))
	r.Mux.Handle("PATCH /clients/{id}/deactivate", secured(h.HandleDeactivate))
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(r.limiter("bootstrap", httpx.StrictLimit), httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	public := r.limiter("system", httpx.PublicLimit)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.opts.BuildVersion),
			httpx.RateLimitByIP(public, httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.opts.BuildVersion, r.store),
			httpx.RateLimitByIP(public, httpx.PublicLimit),
		),
	)
	if r.opts.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.opts.Metrics.Handler())
	}
}
