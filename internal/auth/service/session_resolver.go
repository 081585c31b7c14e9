package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	"go.uber.org/zap"
)

// SessionResolver maps an inbound token to the live user record. The token only
// supplies the lookup key; role and profile always come from the store.
type SessionResolver struct {
	repo   domain.UserRepository
	tokens TokenGenerator
	logger *zap.Logger
	now    func() time.Time
}

func NewSessionResolver(repo domain.UserRepository, tokens TokenGenerator, logger *zap.Logger) *SessionResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionResolver{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// ResolveCurrent returns nil for an anonymous caller: missing, invalid or expired
// tokens and users that no longer exist or are inactive. Only store failures are errors.
func (r *SessionResolver) ResolveCurrent(ctx context.Context, rawToken string) (*domain.User, error) {
	user, err := r.Authenticate(ctx, rawToken)
	if err != nil {
		if isAuthError(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Authenticate is the strict form used by guarded routes.
func (r *SessionResolver) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, autherror.ErrNotAuthenticated
	}

	claims, err := r.tokens.Verify(rawToken, r.now())
	if err != nil {
		r.logger.Debug("token rejected", zap.Error(err))
		return nil, err
	}

	user, err := r.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for token: %w", err)
	}
	if user == nil || !user.Active {
		return nil, autherror.ErrNotAuthenticated
	}

	return user, nil
}

func isAuthError(err error) bool {
	return errors.Is(err, autherror.ErrNotAuthenticated) ||
		errors.Is(err, autherror.ErrTokenInvalid) ||
		errors.Is(err, autherror.ErrTokenExpired)
}
