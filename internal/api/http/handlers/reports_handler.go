package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/dto"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/internal/service"
	"github.com/glowmart/storefront-service/pkg/util"
)

// ReportsHandler exposes the dashboard, the activity log and the sales
// report.
type ReportsHandler struct {
	dashboard *service.DashboardService
	audit     *service.AuditService
	orders    *service.OrderService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(dashboard *service.DashboardService, audit *service.AuditService, orders *service.OrderService) *ReportsHandler {
	return &ReportsHandler{dashboard: dashboard, audit: audit, orders: orders}
}

// Dashboard handles GET /admin/dashboard.
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	counts, err := h.dashboard.Counts(c.UserContext(), auth.AccountFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// AuditLog handles GET /admin/audit-log.
func (h *ReportsHandler) AuditLog(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewValidationError("invalid query parameters", nil)
	}

	filter := repository.AuditFilter{Limit: query.Limit, Offset: query.Offset}
	if actorID := c.Query("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if action := c.Query("action"); action != "" {
		a := domain.AuditAction(action)
		filter.Action = &a
	}

	entries, err := h.audit.List(c.UserContext(), auth.AccountFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAuditEntryResponses(entries)})
}

// SalesLog handles GET /admin/sales-log.
func (h *ReportsHandler) SalesLog(c *fiber.Ctx) error {
	summary, err := h.orders.SalesReport(c.UserContext(), auth.AccountFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}
