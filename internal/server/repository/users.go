// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
//
// Есть две реализации хранилища пользователей:
//   - UsersMongoRepository — документная БД (коллекция users), используется по умолчанию
//   - UsersRepository — PostgreSQL (таблица users, миграции golang-migrate)
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-users-service/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-users-service/internal/shared/errors"
)

// код ошибки postgres: unique_violation
const pgUniqueViolation = "23505"

// UsersRepository хранит пользователей в PostgreSQL.
type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewUsersRepository создаёт UsersRepository.
// queryTimeout <= 0 означает, что таймаут берётся только из ctx.
func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, queryTimeout: queryTimeout}
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create сохраняет пользователя и возвращает его id.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят (уникальный индекс users_email_key)
//   - ErrInternal — любая другая ошибка БД
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return "", serr.ErrAlreadyExists
		}
		return "", fmt.Errorf("%w: insert user: %v", serr.ErrInternal, err)
	}

	return id.String(), nil
}

// GetByEmail ищет пользователя по нормализованному email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE email=$1`,
		email,
	)
	return scanUser(row)
}

// GetByID ищет пользователя по id.
// id не в формате UUID трактуется как отсутствующая запись.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at, updated_at
		 FROM users WHERE id=$1`,
		uid,
	)
	return scanUser(row)
}

// UpdateProfile перезаписывает username и email.
//
// Ошибки:
//   - ErrNotFound — пользователя нет
//   - ErrAlreadyExists — email занят другим пользователем
func (r *UsersRepository) UpdateProfile(ctx context.Context, id, username, email string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET username=$2, email=$3, updated_at=now()
		 WHERE id=$1`,
		uid, username, email,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return serr.ErrAlreadyExists
		}
		return fmt.Errorf("%w: update profile: %v", serr.ErrInternal, err)
	}
	return expectAffected(res)
}

// UpdatePassword заменяет хэш пароля.
func (r *UsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET password_hash=$2, updated_at=now()
		 WHERE id=$1`,
		uid, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("%w: update password: %v", serr.ErrInternal, err)
	}
	return expectAffected(res)
}

// Ping проверяет соединение с БД.
func (r *UsersRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping postgres: %v", serr.ErrInternal, err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		id uuid.UUID
		u  models.User
	)
	err := row.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select user: %v", serr.ErrInternal, err)
	}
	u.ID = id.String()
	return &u, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", serr.ErrInternal, err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
