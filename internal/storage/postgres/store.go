package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccatimbang/todo-api/internal/models"
	"github.com/ccatimbang/todo-api/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.TodoStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and todos.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store, runs migrations, and seeds the fixture records.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS todos (
			seq BIGSERIAL,
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			user_id TEXT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		// Seed fixture data: username "admin", password "password".
		`INSERT INTO users (id, username, email, password_hash)
			VALUES ('1', 'admin', 'admin@test.com', '$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi')
			ON CONFLICT (id) DO NOTHING;`,
		`INSERT INTO todos (id, title, description, completed, user_id)
			VALUES ('1', 'Learn Testing', 'Study automated testing frameworks', FALSE, '1')
			ON CONFLICT (id) DO NOTHING;`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
	SELECT id, username, email, password_hash, created_at
	FROM users
	WHERE username = $1;
	`
	row := s.pool.QueryRow(ctx, query, username)
	return scanUser(row)
}

// FindByID fetches a user by id.
func (s *Store) FindByID(ctx context.Context, id string) (models.User, error) {
	const query = `
	SELECT id, username, email, password_hash, created_at
	FROM users
	WHERE id = $1;
	`
	row := s.pool.QueryRow(ctx, query, id)
	return scanUser(row)
}

// ListByOwner returns the owner's todos in insertion order.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	const query = `
	SELECT id, title, description, completed, user_id, created_at
	FROM todos
	WHERE user_id = $1
	ORDER BY seq;
	`
	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// Create inserts the todo with a fresh id and creation timestamp.
func (s *Store) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	const query = `
	INSERT INTO todos (id, title, description, completed, user_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, title, description, completed, user_id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, uuid.NewString(), todo.Title, todo.Description, todo.Completed, todo.UserID)
	return scanTodo(row)
}

// Update applies the patch to the matching owned todo. Nil patch fields keep
// the current value; an empty title also keeps the current value.
func (s *Store) Update(ctx context.Context, id, ownerID string, patch storage.TodoPatch) (models.Todo, error) {
	const query = `
	UPDATE todos
	SET title = CASE WHEN $3::TEXT IS NULL OR $3 = '' THEN title ELSE $3 END,
		description = COALESCE($4, description),
		completed = COALESCE($5, completed)
	WHERE id = $1 AND user_id = $2
	RETURNING id, title, description, completed, user_id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Description, patch.Completed)
	return scanTodo(row)
}

// Delete removes the matching owned todo and returns its snapshot.
func (s *Store) Delete(ctx context.Context, id, ownerID string) (models.Todo, error) {
	const query = `
	DELETE FROM todos
	WHERE id = $1 AND user_id = $2
	RETURNING id, title, description, completed, user_id, created_at;
	`
	row := s.pool.QueryRow(ctx, query, id, ownerID)
	return scanTodo(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanTodo(row pgx.Row) (models.Todo, error) {
	var todo models.Todo
	if err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Todo{}, storage.ErrNotFound
		}
		return models.Todo{}, err
	}
	return todo, nil
}
