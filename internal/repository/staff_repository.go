package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowmart/storefront-service/internal/domain"
)

// StaffRepository handles persistence for staff extension records.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffProfile) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.StaffProfile, error)
	DeleteByAccountID(ctx context.Context, accountID string) error
	TouchLastLogin(ctx context.Context, accountID string) error
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffProfile) error {
	const query = `
        INSERT INTO admin_staff (account_id, department, position)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.AccountID,
		staff.Department,
		staff.Position,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.StaffProfile, error) {
	const query = `
        SELECT id, account_id, department, position, last_login_at, created_at, updated_at
        FROM admin_staff WHERE account_id=$1`

	var staff domain.StaffProfile
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&staff.ID,
		&staff.AccountID,
		&staff.Department,
		&staff.Position,
		&staff.LastLoginAt,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	const query = `DELETE FROM admin_staff WHERE account_id=$1`

	cmd, err := r.pool.Exec(ctx, query, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) TouchLastLogin(ctx context.Context, accountID string) error {
	const query = `UPDATE admin_staff SET last_login_at=NOW(), updated_at=NOW() WHERE account_id=$1`

	cmd, err := r.pool.Exec(ctx, query, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
