package users

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vbreban/accounts-backend/internal/models"
)

// InMemoryRepository is a map-backed Repository used in tests. It mirrors the
// store's behavior for the cases the service depends on, including the email
// uniqueness constraint.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *InMemoryRepository) ByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) ByID(id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(u), nil
}

func (r *InMemoryRepository) ByVerificationToken(token string, onlyUnverified bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.VerificationToken == nil || *u.VerificationToken != token {
			continue
		}
		if onlyUnverified && u.Verify {
			continue
		}
		return clone(u), nil
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *clone(*user)
	return nil
}

func (r *InMemoryRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	r.users[user.ID] = *clone(*user)
	return nil
}

func (r *InMemoryRepository) DeleteByEmail(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.Email == email {
			delete(r.users, id)
			return nil
		}
	}
	return ErrNotFound
}

// clone deep-copies a record so callers never share pointers with the map.
func clone(u models.User) *models.User {
	c := u
	if u.VerificationToken != nil {
		v := *u.VerificationToken
		c.VerificationToken = &v
	}
	if u.Token != nil {
		t := *u.Token
		c.Token = &t
	}
	return &c
}
