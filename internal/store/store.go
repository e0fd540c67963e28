// Package store persists user records.
package store

import (
	"context"
	"errors"

	"github.com/vaughan-dsouza/volunteer-auth/internal/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore is the only persistence surface the handlers see. Records are
// created once and never updated or deleted through it.
type UserStore interface {
	// CreateUser returns ErrDuplicateEmail when the email is already taken.
	CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error)
	// FindUserByEmail returns ErrNotFound when no record matches.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}
