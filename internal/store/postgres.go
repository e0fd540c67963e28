package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/vaughan-dsouza/volunteer-auth/internal/models"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	DB *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	u := &models.User{
		Name:     name,
		Email:    models.NormalizeEmail(email),
		Password: passwordHash,
		Role:     role,
	}

	// No existence pre-check: the unique constraint decides.
	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, string(u.Role)).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	err := s.DB.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, models.NormalizeEmail(email))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

var _ UserStore = (*PostgresStore)(nil)
