package pgsql

import (
	"context"
	"errors"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/gestion-app/gestion_backend/internal/models"
	"github.com/gestion-app/gestion_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

func newPgxUserRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectColumns = `
	SELECT user_id, ref, username, name, password_hash,
	       created_at, created_by, last_updated_at, last_updated_by,
	       deleted_at, deleted_by
	FROM users
`

// CreateUser persists an agent, drawing its ref inside the same database
// transaction as the insert. A duplicate username surfaces as a conflict.
func (r *PgxUserRepository) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	user.Ref, err = nextRefInTx(ctx, tx, r.refs, domain.TableUsers)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO users (
			user_id, ref, username, name, password_hash,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	m := mapping.ToModelUser(user)
	_, err = tx.Exec(ctx, query,
		m.UserID, m.Ref, m.Username, m.Name, m.PasswordHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("username " + user.Username + " already taken")
		}
		return nil, apperrors.NewAppError(500, "failed to insert user "+user.UserID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID retrieves an active agent.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := userSelectColumns + ` WHERE user_id = $1 AND deleted_at IS NULL;`
	return r.findUser(ctx, query, userID)
}

// FindUserByUsername retrieves an active agent by login name.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := userSelectColumns + ` WHERE username = $1 AND deleted_at IS NULL;`
	return r.findUser(ctx, query, username)
}

func (r *PgxUserRepository) findUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID, &m.Ref, &m.Username, &m.Name, &m.PasswordHash,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
