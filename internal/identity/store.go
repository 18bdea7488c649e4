package identity

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Identity is the credential record owned by the provider. It is deliberately
// separate from the profiles relation: application code never reads password
// hashes.
type Identity struct {
	ID             string
	Email          string
	PasswordHash   string
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type identityStore struct {
	pool *pgxpool.Pool
}

func newIdentityStore(pool *pgxpool.Pool) *identityStore {
	return &identityStore{pool: pool}
}

func (s *identityStore) Create(ctx context.Context, ident *Identity) error {
	const query = `
        INSERT INTO auth_identities (id, email, password_hash, email_confirmed)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	return s.pool.QueryRow(ctx, query,
		ident.ID,
		ident.Email,
		ident.PasswordHash,
		ident.EmailConfirmed,
	).Scan(&ident.CreatedAt, &ident.UpdatedAt)
}

func (s *identityStore) GetByID(ctx context.Context, id string) (*Identity, error) {
	const query = `
        SELECT id, email, password_hash, email_confirmed, created_at, updated_at
        FROM auth_identities WHERE id=$1`

	return s.scanOne(ctx, query, id)
}

func (s *identityStore) GetByEmail(ctx context.Context, email string) (*Identity, error) {
	const query = `
        SELECT id, email, password_hash, email_confirmed, created_at, updated_at
        FROM auth_identities WHERE email=$1`

	return s.scanOne(ctx, query, email)
}

func (s *identityStore) scanOne(ctx context.Context, query string, arg any) (*Identity, error) {
	var ident Identity
	if err := s.pool.QueryRow(ctx, query, arg).Scan(
		&ident.ID,
		&ident.Email,
		&ident.PasswordHash,
		&ident.EmailConfirmed,
		&ident.CreatedAt,
		&ident.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ident, nil
}

func (s *identityStore) SetPassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE auth_identities SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := s.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *identityStore) SetConfirmed(ctx context.Context, id string) error {
	const query = `UPDATE auth_identities SET email_confirmed=true, updated_at=NOW() WHERE id=$1`

	cmd, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *identityStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM auth_identities WHERE id=$1`

	_, err := s.pool.Exec(ctx, query, id)
	return err
}
