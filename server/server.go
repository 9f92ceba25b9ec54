package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-gateway/auth"
	"github.com/jrsteele09/go-auth-gateway/cognito"
	"github.com/jrsteele09/go-auth-gateway/cookies"
	"github.com/jrsteele09/go-auth-gateway/internal/config"
	"github.com/jrsteele09/go-auth-gateway/internal/rate"
	"github.com/jrsteele09/go-auth-gateway/session"
	"github.com/redis/go-redis/v9"
)

// IDTokenVerifier checks a provider-issued ID token and returns the identity
// it asserts. Satisfied by *cognito.Verifier.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (cognito.UserProfile, error)
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	sessions *session.Manager
	cookies  *cookies.Store
	limiter  *rate.Limiter
	verifier IDTokenVerifier
}

// Option modifies the Server during construction.
type Option func(*Server)

// WithVerifier installs an ID-token verifier, enabling the bearer-protected
// routes. Without it those routes report that verification is unconfigured.
func WithVerifier(v IDTokenVerifier) Option {
	return func(s *Server) {
		s.verifier = v
	}
}

// WithRateLimiter replaces the Redis-backed limiter (primarily for tests).
func WithRateLimiter(l *rate.Limiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

func New(cfg config.Config, provider auth.Provider, options ...Option) (*Server, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("[Server New] configuration invalid: %w", err)
	}

	sessions, err := session.NewManager(provider, session.WithFallbackValidity(cfg.GetIDTokenExpiry()))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session manager: %w", err)
	}

	authService, err := auth.NewService(provider, sessions)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	cookieStore, err := cookies.New(cfg, cfg.GetEnv())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create cookie store: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		auth:     authService,
		sessions: sessions,
		cookies:  cookieStore,
	}
	s.env = cfg.GetEnv()

	if cfg.GetEnableRateLimiting() {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		s.limiter = rate.New(redisClient, rate.DefaultConfig())
	}

	for _, opt := range options {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
