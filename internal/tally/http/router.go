package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"

	_ "github.com/aussiebroadwan/tally/api/tally" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RateLimits holds the per-IP profile for each route group. Forwarding
// headers are believed only from TrustedProxies.
type RateLimits struct {
	Auth    httpx.RateLimitConfig
	Finance httpx.RateLimitConfig
	System  httpx.RateLimitConfig

	TrustedProxies []netip.Prefix
}

// DefaultRateLimits returns the httpx default profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Auth:    httpx.AuthLimit,
		Finance: httpx.FinanceLimit,
		System:  httpx.SystemLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// Set before ApplyRoutes.
	RequireAuth bool
	Limits      RateLimits

	AccountService *service.AccountService
	FinanceService *service.FinanceService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Limits:       DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccount()
	r.registerFinance()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Tally Finance Service API
//	@version		0.1.0
//	@description	Account registration and login plus monthly income, expense and savings records.
//	@description
//	@description				Login returns an HS256 JWT valid for one hour. Finance endpoints only
//	@description				require it when the server runs with TALLY_REQUIRE_AUTH=true.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tally
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{AccountService: r.AccountService}

	// Both endpoints take passwords, so they share the strict profile.
	r.Mux.Handle("POST /signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(r.Limits.Auth, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("POST /login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.Limits.Auth, r.Limits.TrustedProxies...),
		),
	)
}

func (r *Router) registerFinance() {
	h := &FinanceHandler{
		FinanceService: r.FinanceService,
		RequireAuth:    r.RequireAuth,
	}

	mws := []httpx.Middleware{httpx.RateLimitByIP(r.Limits.Finance, r.Limits.TrustedProxies...)}
	if r.RequireAuth {
		mws = append(mws,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.Limits.Finance, r.Limits.TrustedProxies...),
		)
	}

	r.Mux.Handle("POST /add-finance", httpx.Chain(http.HandlerFunc(h.HandleAdd), mws...))
	r.Mux.Handle("GET /getfinancedata", httpx.Chain(http.HandlerFunc(h.HandleGet), mws...))
	r.Mux.Handle("PUT /update-finance", httpx.Chain(http.HandlerFunc(h.HandleUpdate), mws...))
	r.Mux.Handle("DELETE /delete-finance", httpx.Chain(http.HandlerFunc(h.HandleDelete), mws...))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.System, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.Limits.System, r.Limits.TrustedProxies...),
		),
	)
	r.Mux.Handle("GET /swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(r.Limits.System, r.Limits.TrustedProxies...),
		),
	)
}
