package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authhandlers "github.com/sh4ner/streamerpulse/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/sh4ner/streamerpulse/app/modules/auth/infrastructure/jwt"
	"github.com/sh4ner/streamerpulse/config"
)

// ErrMissingSecret is returned when no JWT secret is configured.
var ErrMissingSecret = errors.New("jwt secret is not configured")

// Module owns the bearer token verification shared by every admin route.
type Module struct {
	provider authjwt.Provider
	admin    func(http.Handler) http.Handler
	cors     func(http.Handler) http.Handler
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Module, error) {
	logger.InfoContext(ctx, "Initializing auth module")

	if cfg.JWT.Secret == "" {
		return nil, ErrMissingSecret
	}

	provider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)

	return &Module{
		provider: provider,
		admin:    authhandlers.AdminMiddleware(provider, logger),
		cors:     authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins),
		logger:   logger,
	}, nil
}

// Admin returns the middleware guarding privileged routes.
func (m *Module) Admin() func(http.Handler) http.Handler { return m.admin }

// CORS returns the middleware applied to the whole API.
func (m *Module) CORS() func(http.Handler) http.Handler { return m.cors }

// Provider returns the JWT provider backing Admin.
func (m *Module) Provider() authjwt.Provider { return m.provider }
