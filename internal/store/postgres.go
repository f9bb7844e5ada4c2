package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayush/todo-api/internal/models"
)

// PostgresStore handles user and item CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users and items tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username   VARCHAR(50)  NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id          BIGSERIAL PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			done        BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	return err
}

// CreateUser validates the password against the account policy, hashes it and
// inserts the row. A duplicate email maps to ErrEmailTaken; uniqueness is
// enforced by the database constraint, not by a prior lookup.
func (s *PostgresStore) CreateUser(ctx context.Context, email, username, password string) (*models.User, error) {
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u models.User
	err = s.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, username, email, created_at`,
		username, email, hashed,
	).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, email, password, created_at FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckPassword reports whether the password matches the stored credential for
// the email. An unknown email maps to ErrNotFound.
func (s *PostgresStore) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return comparePassword(u.Password, password), nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, description, done FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Done); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) Create(ctx context.Context, title, description string, done bool) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`INSERT INTO items (title, description, done)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, description, done`,
		title, description, done,
	).Scan(&it.ID, &it.Title, &it.Description, &it.Done)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return &it, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, description, done FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Title, &it.Description, &it.Done)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *PostgresStore) Update(ctx context.Context, item *models.Item) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE items SET title = $2, description = $3, done = $4 WHERE id = $1`,
		item.ID, item.Title, item.Description, item.Done)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item and returns its prior state.
func (s *PostgresStore) Delete(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`DELETE FROM items WHERE id = $1
		 RETURNING id, title, description, done`, id,
	).Scan(&it.ID, &it.Title, &it.Description, &it.Done)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
