package dto

import (
	"time"

	"github.com/glowmart/storefront-service/internal/domain"
)

// PromoteRequest payload for raising an account to a staff role.
type PromoteRequest struct {
	Role       string `json:"role"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// ProductRequest payload for creating or updating a catalog item.
type ProductRequest struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Stock       int    `json:"stock"`
	IsPublished bool   `json:"is_published"`
}

// OrderStatusRequest payload for advancing fulfillment.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// ProductResponse is the public view of a catalog item.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Stock:       product.Stock,
		IsPublished: product.IsPublished,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// NewProductResponses maps a slice of products.
func NewProductResponses(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, NewProductResponse(&products[i]))
	}
	return result
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		AccountID:  order.AccountID,
		Status:     string(order.Status),
		TotalCents: order.TotalCents,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, NewOrderResponse(&orders[i]))
	}
	return result
}

// AuditEntryResponse is the public view of an activity-log row.
type AuditEntryResponse struct {
	ID           string         `json:"id"`
	ActorID      string         `json:"actor_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Detail       map[string]any `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewAuditEntryResponses maps activity-log entries.
func NewAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	result := make([]AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, AuditEntryResponse{
			ID:           entry.ID,
			ActorID:      entry.ActorID,
			Action:       string(entry.Action),
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			Detail:       entry.Detail,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return result
}

// NewAccountResponses maps a slice of accounts.
func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	result := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		result = append(result, NewAccountResponse(&accounts[i]))
	}
	return result
}
