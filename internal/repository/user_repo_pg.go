package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/itemshare/internal/apperr"
	"github.com/Domenick1991/itemshare/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	ShortByID(ctx context.Context, id int64) (*domain.ShortUser, error)
}

type PGUserRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (name, email) VALUES ($1, $2)
		RETURNING id, created_at, updated_at`, user.Name, user.Email).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapUserError(err, user.Email)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, created_at, updated_at FROM users WHERE id=$1`, id)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	row := r.db.QueryRow(ctx, `UPDATE users SET name=$1, email=$2, updated_at=now() WHERE id=$3
		RETURNING updated_at`, user.Name, user.Email, user.ID)
	if err := row.Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user %d not found", user.ID)
		}
		return mapUserError(err, user.Email)
	}
	return nil
}

func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return apperr.Conflict("user %d is referenced by items or bookings", id)
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("user %d not found", id)
	}
	return nil
}

func (r *PGUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGUserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, email).Scan(&taken)
	return taken, err
}

func (r *PGUserRepository) ShortByID(ctx context.Context, id int64) (*domain.ShortUser, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name FROM users WHERE id=$1`, id)
	var u domain.ShortUser
	if err := row.Scan(&u.ID, &u.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %d not found", id)
		}
		return nil, err
	}
	return &u, nil
}

// The unique index on email is the source of truth for uniqueness;
// a violation surfaces as a conflict regardless of the pre-check.
func mapUserError(err error, email string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("email %s already exists", email)
	}
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)
