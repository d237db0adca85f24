package adapthttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"waterbuddy/internal/app"
	"waterbuddy/internal/domain"
)

// OIDCConfig holds the SSO provider wiring. The zero value disables SSO.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// NewOIDCConfig discovers the issuer and builds an OAuth2 code-flow config.
func NewOIDCConfig(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, fmt.Errorf("oidc discovery: %w", err)
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Options configures a Server.
type Options struct {
	Hydration   *app.HydrationService
	History     *app.HistoryService
	Auth        *app.AuthService
	WebDir      string
	Log         zerolog.Logger
	CORSOrigins []string
	OIDC        OIDCConfig
	// Ping reports store health on /api/health when set.
	Ping func(ctx context.Context) error
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	hydration  *app.HydrationService
	history    *app.HistoryService
	authSvc    *app.AuthService
	webDir     string
	log        zerolog.Logger
	origins    []string
	oidcConfig OIDCConfig
	ping       func(ctx context.Context) error

	disableAuth bool
	localUser   *domain.User
}

// New creates a Server wired to the given application services.
func New(opts Options) *Server {
	return &Server{
		hydration:  opts.Hydration,
		history:    opts.History,
		authSvc:    opts.Auth,
		webDir:     opts.WebDir,
		log:        opts.Log.With().Str("component", "http").Logger(),
		origins:    opts.CORSOrigins,
		oidcConfig: opts.OIDC,
		ping:       opts.Ping,
	}
}

// WithoutAuth disables authentication and attributes every request to user.
func (s *Server) WithoutAuth(user *domain.User) *Server {
	s.disableAuth = true
	s.localUser = user
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(metricsMiddleware)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders:   []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/health", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/config", s.handleConfig)
			r.Post("/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Post("/setup", s.handleSetupUser)
			r.Get("/sso/login", s.handleSSOLogin)
			r.Get("/sso/callback", s.handleSSOCallback)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/water/today", s.handleWaterToday)
			r.Post("/water/add", s.handleWaterAdd)
			r.Post("/water/reset", s.handleWaterReset)

			r.Get("/profile", s.handleProfile)
			r.Put("/profile/goal", s.handleSetGoal)
			r.Put("/profile/age-group", s.handleSetAgeGroup)
			r.Put("/profile/preferences", s.handleSetPreferences)

			r.Get("/history", s.handleHistoryRows)
			r.Get("/history/stats", s.handleHistoryStats)
			r.Get("/history/trend", s.handleHistoryTrend)
			r.Get("/history/export", s.handleHistoryExport)

			r.Get("/tips/random", s.handleRandomTip)
		})
	})

	r.Handle("/*", spaFromDisk(s.webDir))

	return withNoCache(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
