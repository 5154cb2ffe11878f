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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxContactRepository struct {
	BaseRepository
	refs portsrepo.ReferenceRepository
}

func newPgxContactRepository(pool *pgxpool.Pool, refs portsrepo.ReferenceRepository) portsrepo.ContactRepositoryFacade {
	return &PgxContactRepository{
		BaseRepository: BaseRepository{Pool: pool},
		refs:           refs,
	}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

// CreateContact persists a contact, drawing its ref from the kind's sequence
// inside the same database transaction as the insert.
func (r *PgxContactRepository) CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	contact.Ref, err = nextRefInTx(ctx, tx, r.refs, contact.Kind.RefTable())
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO contacts (
			contact_id, ref, kind, name, phone, email, address,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	m := mapping.ToModelContact(contact)
	_, err = tx.Exec(ctx, query,
		m.ContactID, m.Ref, m.Kind, m.Name, m.Phone, m.Email, m.Address,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert contact "+contact.ContactID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindContactByID retrieves an active contact.
func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	const query = `
		SELECT contact_id, ref, kind, name, phone, email, address,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM contacts
		WHERE contact_id = $1 AND deleted_at IS NULL;
	`
	var m models.Contact
	err := r.Pool.QueryRow(ctx, query, contactID).Scan(
		&m.ContactID, &m.Ref, &m.Kind, &m.Name, &m.Phone, &m.Email, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.DeletedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contact by ID "+contactID, err)
	}
	contact := mapping.ToDomainContact(m)
	return &contact, nil
}

// ListContacts retrieves active contacts, optionally filtered by kind.
func (r *PgxContactRepository) ListContacts(ctx context.Context, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT contact_id, ref, kind, name, phone, email, address,
		       created_at, created_by, last_updated_at, last_updated_by,
		       deleted_at, deleted_by
		FROM contacts
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	if kind != nil {
		args = append(args, string(*kind))
		query += ` AND kind = $1`
	}
	args = append(args, limit, offset)
	if kind != nil {
		query += ` ORDER BY name LIMIT $2 OFFSET $3;`
	} else {
		query += ` ORDER BY name LIMIT $1 OFFSET $2;`
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contacts", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var m models.Contact
		if err := rows.Scan(
			&m.ContactID, &m.Ref, &m.Kind, &m.Name, &m.Phone, &m.Email, &m.Address,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&m.DeletedAt, &m.DeletedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contact row", err)
		}
		contacts = append(contacts, mapping.ToDomainContact(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contact rows", err)
	}
	return contacts, nil
}
