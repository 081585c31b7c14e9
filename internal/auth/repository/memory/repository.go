package memory

import (
	"context"
	"sync"

	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	autherror "github.com/egarc258/ecommerce-app/internal/errors"
)

// Repository keeps users in process memory. The email check and the insert run
// under one lock, so concurrent registrations cannot both win.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return clone(r.byID[id]), nil
}

func (r *Repository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

func (r *Repository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ownerID, ok := r.byEmail[user.Email]; ok && ownerID != user.ID {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	if prev, ok := r.byID[user.ID]; ok && prev.Email != user.Email {
		delete(r.byEmail, prev.Email)
	}

	stored := clone(user)
	r.byID[stored.ID] = stored
	r.byEmail[stored.Email] = stored.ID
	return clone(stored), nil
}

func clone(u *domain.User) *domain.User {
	c := *u
	return &c
}
