package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/pkg/util"
)

// DashboardCounts is the admin landing-page summary.
type DashboardCounts struct {
	Customers     int64                        `json:"customers"`
	Staff         int64                        `json:"staff"`
	Products      int64                        `json:"products"`
	OrdersByState map[domain.OrderStatus]int64 `json:"orders_by_state"`
}

// DashboardService aggregates counts for the admin console landing page.
type DashboardService struct {
	accounts repository.AccountRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	logger   *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(
	accounts repository.AccountRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		accounts: accounts,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// Counts returns the dashboard summary for any admin-tier role.
func (s *DashboardService) Counts(ctx context.Context, actor *domain.Account) (*DashboardCounts, error) {
	if !authz.Can(actor, authz.ActionViewDashboard) {
		return nil, staffAccessDenied(actor)
	}

	roleCounts, err := s.accounts.CountByRole(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}
	orderCounts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, util.MapError(err)
	}

	var staffCount int64
	for role, count := range roleCounts {
		if role.IsAdminTier() {
			staffCount += count
		}
	}

	return &DashboardCounts{
		Customers:     roleCounts[domain.RoleCustomer],
		Staff:         staffCount,
		Products:      productCount,
		OrdersByState: orderCounts,
	}, nil
}
