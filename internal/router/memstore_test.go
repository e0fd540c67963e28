package router

import (
	"context"
	"sync"
	"time"

	"github.com/vaughan-dsouza/volunteer-auth/internal/models"
	"github.com/vaughan-dsouza/volunteer-auth/internal/store"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]models.User{}}
}

func (m *memStore) CreateUser(_ context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = models.NormalizeEmail(email)
	if _, ok := m.users[email]; ok {
		return nil, store.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u := models.User{
		ID:        int64(len(m.users) + 1),
		Name:      name,
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.users[email] = u
	return &u, nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[models.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}
