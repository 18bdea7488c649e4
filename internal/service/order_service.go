package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

// SalesSummary is the admin sales report.
type SalesSummary struct {
	OrderCount      int64                        `json:"order_count"`
	RevenueCents    int64                        `json:"revenue_cents"`
	DeliveredOrders int64                        `json:"delivered_orders"`
	ByStatus        map[domain.OrderStatus]int64 `json:"by_status"`
}

// OrderService manages order fulfillment and reporting.
type OrderService struct {
	orders repository.OrderRepository
	audit  *AuditService
	logger *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, audit *AuditService, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, audit: audit, logger: logger}
}

// List returns orders for the admin console.
func (s *OrderService) List(ctx context.Context, actor *domain.Account, filter repository.OrderFilter) ([]domain.Order, error) {
	if !authz.Can(actor, authz.ActionViewOrders) {
		return nil, staffAccessDenied(actor)
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orders, nil
}

// ListForAccount returns the account's own order history.
func (s *OrderService) ListForAccount(ctx context.Context, account *domain.Account) ([]domain.Order, error) {
	if account == nil {
		return nil, util.NewSessionInvalid(authz.RedirectShopLogin)
	}
	orders, err := s.orders.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, util.MapError(err)
	}
	return orders, nil
}

// Get returns one order. Customers see only their own orders; staff see all.
func (s *OrderService) Get(ctx context.Context, actor *domain.Account, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}
	if !authz.Can(actor, authz.ActionViewOrders) {
		if actor == nil || order.AccountID != actor.ID {
			return nil, util.NewNotFound("order", map[string]any{"id": id})
		}
	}
	return order, nil
}

// UpdateStatus advances an order through fulfillment. Illegal transitions are
// rejected before any write.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.Account, id string, next domain.OrderStatus) (*domain.Order, error) {
	if !authz.Can(actor, authz.ActionUpdateOrder) {
		return nil, staffAccessDenied(actor)
	}
	if !next.Valid() {
		return nil, util.NewValidationError("unknown order status", map[string]any{"status": next})
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, util.MapError(err)
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, util.NewConflict("invalid status transition", map[string]any{
			"from": order.Status,
			"to":   next,
		})
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, util.MapError(err)
	}
	previous := order.Status
	order.Status = next

	s.audit.Record(ctx, actor.ID, domain.AuditActionUpdateOrderStatus, "order", id, map[string]any{
		"from": previous,
		"to":   next,
	})
	return order, nil
}

// SalesReport summarizes revenue for admin and above.
func (s *OrderService) SalesReport(ctx context.Context, actor *domain.Account) (*SalesSummary, error) {
	if !authz.Can(actor, authz.ActionViewSalesLogs) {
		return nil, util.NewAccessDenied(authz.RedirectAdminHome, map[string]any{
			"required_roles": []domain.Role{domain.RoleAdmin, domain.RoleChiefAdmin},
		})
	}

	totals, err := s.orders.SalesTotals(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	byStatus, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}

	return &SalesSummary{
		OrderCount:      totals.OrderCount,
		RevenueCents:    totals.RevenueCents,
		DeliveredOrders: totals.DeliveredOnly,
		ByStatus:        byStatus,
	}, nil
}
