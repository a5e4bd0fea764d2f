package auth

import (
	"go.uber.org/zap"

	"shopadmin/internal/config"
)

type Verifier interface {
	Verify(token string) (string, error)
}

// NewModule returns the login controller and the verifier for admin routes.
// The verifier is nil when no secret is configured, which leaves admin
// routes open.
func NewModule(cfg config.AuthConfig, logger *zap.Logger) (*Controller, Verifier) {
	svc := NewService(cfg)
	if !cfg.Enabled() {
		logger.Warn("AUTH_JWT_SECRET is empty, admin routes are not protected")
		return NewController(svc), nil
	}
	return NewController(svc), svc
}
