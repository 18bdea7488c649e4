package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowmart/storefront-service/internal/domain"
)

// OrderRepository handles persistence for orders.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error)
	SalesTotals(ctx context.Context) (*SalesTotals, error)
}

// OrderFilter defines query params for order listing.
type OrderFilter struct {
	Status *domain.OrderStatus
	Limit  int
	Offset int
}

// SalesTotals summarizes revenue for the sales report.
type SalesTotals struct {
	OrderCount    int64
	RevenueCents  int64
	DeliveredOnly int64
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, account_id, status, total_cents, created_at, updated_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.AccountID,
		&order.Status,
		&order.TotalCents,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	query := `
        SELECT id, account_id, status, total_cents, created_at, updated_at
        FROM orders`
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += " WHERE status=$1"
	}

	query += " ORDER BY created_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	const query = `
        SELECT id, account_id, status, total_cents, created_at, updated_at
        FROM orders WHERE account_id=$1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM orders GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int64)
	for rows.Next() {
		var status domain.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *orderRepository) SalesTotals(ctx context.Context) (*SalesTotals, error) {
	const query = `
        SELECT COUNT(*),
               COALESCE(SUM(total_cents) FILTER (WHERE status NOT IN ('pending', 'cancelled')), 0),
               COUNT(*) FILTER (WHERE status = 'delivered')
        FROM orders`

	var totals SalesTotals
	if err := r.pool.QueryRow(ctx, query).Scan(
		&totals.OrderCount,
		&totals.RevenueCents,
		&totals.DeliveredOnly,
	); err != nil {
		return nil, err
	}
	return &totals, nil
}

func scanOrders(rows pgx.Rows) ([]domain.Order, error) {
	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.AccountID,
			&order.Status,
			&order.TotalCents,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
