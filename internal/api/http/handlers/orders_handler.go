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

// OrdersHandler exposes order fulfillment to staff and order history to
// customers.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /admin/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	var query dto.ListQuery
	if err := c.QueryParser(&query); err != nil {
		return util.NewValidationError("invalid query parameters", nil)
	}

	filter := repository.OrderFilter{Limit: query.Limit, Offset: query.Offset}
	if status := c.Query("status"); status != "" {
		s := domain.OrderStatus(status)
		if !s.Valid() {
			return util.NewValidationError("unknown order status", map[string]any{"status": status})
		}
		filter.Status = &s
	}

	orders, err := h.orders.List(c.UserContext(), auth.AccountFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// Get handles GET /admin/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.Get(c.UserContext(), auth.AccountFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// UpdateStatus handles POST /admin/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.UpdateStatus(
		c.UserContext(),
		auth.AccountFromContext(c),
		c.Params("id"),
		domain.OrderStatus(req.Status),
	)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// MyOrders handles GET /account/orders.
func (h *OrdersHandler) MyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListForAccount(c.UserContext(), auth.AccountFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}
