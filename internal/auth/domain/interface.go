package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/egarc258/ecommerce-app/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store. Lookups return (nil, nil) when no row matches.
// Save must fail with errors.ErrEmailAlreadyInUse when another user already owns the email.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) (*User, error)
}
