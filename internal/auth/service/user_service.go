package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	"github.com/egarc258/ecommerce-app/internal/auth/dto"
	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	authconstant "github.com/egarc258/ecommerce-app/pkg/constant"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dummyPasswordHash is compared against when the email is unknown so that a miss
// costs the same bcrypt work as a wrong password.
const dummyPasswordHash = "$2a$10$3y.gq2hG7Fz.i7gY3hI0Aua/R/R1E.AgM1N9.i2fG5XlJ1gY2gGvO"

type UserService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	logger *zap.Logger
	now    func() time.Time
}

func NewUserService(repo domain.UserRepository, hasher PasswordHasher, tokens TokenGenerator, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		s.logger.Info("registration rejected, email taken", zap.String("email", input.Email))
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, autherror.ErrValidation) {
			return nil, autherror.ErrValidation
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()

	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
		Role:         domain.RoleCustomer,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique constraint closes the gap between ExistsByEmail and Save.
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return nil, autherror.ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	resp, err := s.issue(saved, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", saved.ID))
	return resp, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	now := s.now()

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		s.hasher.Verify(input.Password, dummyPasswordHash)
		s.logger.Info("login failed", zap.String("email", input.Email))
		return nil, autherror.ErrAuthenticationFailed
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) || !user.Active {
		s.logger.Info("login failed", zap.String("email", input.Email))
		return nil, autherror.ErrAuthenticationFailed
	}

	resp, err := s.issue(user, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID))
	return resp, nil
}

// issue mints a token for the stored record; the response never echoes caller input.
func (s *UserService) issue(user *domain.User, now time.Time) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, TokenClaims{Email: user.Email, Role: string(user.Role)}, now)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		Type:      authconstant.DefaultTokenType,
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}, nil
}
